package community

import (
	"context"

	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/scoring"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

// RiskResponse is what the community risk endpoint returns.
type RiskResponse struct {
	YourAreas      []string     `json:"your_areas"`
	CommunityRisks []RiskRecord `json:"community_risks"`
	TotalFlagged   int          `json:"total_flagged"`
}

// Service handles community risk business logic
type Service struct {
	repo Repository
}

// NewService creates a community service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Risk scopes the correlation to the caller's areas, scores the other
// shops' customers there and runs the correlator over the reports. The
// caller's own customers are excluded so a shop never corroborates
// itself.
func (s *Service) Risk(ctx context.Context, ownerID uuid.UUID) (*RiskResponse, error) {
	areas, err := s.repo.AreasOfOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	resp := &RiskResponse{
		YourAreas:      areas,
		CommunityRisks: make([]RiskRecord, 0),
	}
	if len(areas) == 0 {
		return resp, nil
	}

	neighbors, err := s.repo.NeighborsInAreas(ctx, ownerID, areas)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(neighbors))
	for _, n := range neighbors {
		reports = append(reports, Report{
			Phone:    n.Phone,
			Name:     n.Name,
			Area:     n.Area,
			Score:    scoring.Score(n.Transactions),
			TotalDue: unpaidTotal(n.Transactions),
		})
	}

	resp.CommunityRisks = Correlate(reports)
	resp.TotalFlagged = len(resp.CommunityRisks)
	return resp, nil
}

func unpaidTotal(txns []transaction.Transaction) float64 {
	var total float64
	for _, t := range txns {
		if !t.IsRepaid {
			total += t.Amount
		}
	}
	return total
}
