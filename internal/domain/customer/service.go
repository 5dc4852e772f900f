package customer

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/scoring"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

// Service handles customer business logic
type Service struct {
	repo Repository
}

// NewService creates a customer service
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create registers a new customer for the shop
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateRequest) (*Customer, error) {
	c := &Customer{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Name:      req.Name,
		Phone:     req.Phone,
		Area:      req.Area,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns the shop's customers with derived scores and outstanding
// balances, heaviest debtors first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Summary, error) {
	customers, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]Summary, 0, len(customers))
	for _, c := range customers {
		summaries = append(summaries, Summary{
			ID:                c.ID.String(),
			Name:              c.Name,
			Phone:             c.Phone,
			Area:              c.Area,
			AitbaarScore:      scoring.Score(c.Transactions),
			TotalDue:          unpaidTotal(c.Transactions),
			TotalTransactions: len(c.Transactions),
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalDue > summaries[j].TotalDue
	})

	return summaries, nil
}

// Detail returns one customer with score, outstanding balance and ledger.
func (s *Service) Detail(ctx context.Context, ownerID, id uuid.UUID) (*Detail, error) {
	c, err := s.repo.GetOwnedByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	txns := make([]*transaction.Response, len(c.Transactions))
	for i := range c.Transactions {
		txns[i] = c.Transactions[i].ToResponse()
	}

	return &Detail{
		ID:           c.ID.String(),
		Name:         c.Name,
		Phone:        c.Phone,
		Area:         c.Area,
		AitbaarScore: scoring.Score(c.Transactions),
		TotalDue:     unpaidTotal(c.Transactions),
		Transactions: txns,
	}, nil
}

// Delete removes a customer and their whole ledger
func (s *Service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteOwned(ctx, id, ownerID)
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
