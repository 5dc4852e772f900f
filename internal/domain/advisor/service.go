package advisor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/cashflow"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/customer"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/scoring"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/errorhandler"
	"github.com/Maheenrz/smart-khata-ai/internal/pkg/logger"
)

const (
	// LanguageRomanUrdu and LanguageEnglish select the reminder wording.
	LanguageRomanUrdu = "roman_urdu"
	LanguageEnglish   = "english"

	insightMaxTokens = 200
	messageMaxTokens = 150

	insightCacheTTL = 10 * time.Minute
)

// CustomerSource is the read surface the advisor needs from the
// customer domain.
type CustomerSource interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]customer.Customer, error)
	GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*customer.Customer, error)
}

// TextGenerator produces advisory text from a prompt.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// Service builds cashflow advice and payment reminders. The generator
// is best-effort: every call has a deterministic fallback so the
// numeric data always reaches the shopkeeper.
type Service struct {
	customers CustomerSource
	generator TextGenerator
	cache     *redis.Client
	now       func() time.Time
}

// NewService creates an advisor service. cache may be nil, which
// disables insight caching.
func NewService(customers CustomerSource, generator TextGenerator, cache *redis.Client) *Service {
	return &Service{
		customers: customers,
		generator: generator,
		cache:     cache,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CashflowInsight aggregates the shop's cashflow and attaches an
// advisory paragraph. The snapshot itself is always computed fresh;
// only the generated text is cached.
func (s *Service) CashflowInsight(ctx context.Context, ownerID uuid.UUID, shopName string) (*CashflowInsight, error) {
	customers, err := s.customers.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	scored := make([]cashflow.ScoredCustomer, 0, len(customers))
	for _, c := range customers {
		scored = append(scored, cashflow.ScoredCustomer{
			ID:           c.ID,
			Name:         c.Name,
			Score:        scoring.Score(c.Transactions),
			Transactions: c.Transactions,
		})
	}

	snapshot := cashflow.Aggregate(scored, s.now())

	return &CashflowInsight{
		Snapshot:  *snapshot,
		AIInsight: s.insightText(ctx, ownerID, shopName, snapshot),
	}, nil
}

// ReminderMessage builds a WhatsApp payment reminder for one customer.
// Language defaults to Roman Urdu, the register shopkeepers actually
// message in.
func (s *Service) ReminderMessage(ctx context.Context, ownerID uuid.UUID, shopName string, req *MessageRequest) (*MessageResponse, error) {
	id, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, customer.ErrCustomerNotFound
	}

	c, err := s.customers.GetOwnedByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	totalDue := unpaidTotal(c.Transactions)

	language := req.Language
	if language == "" {
		language = LanguageRomanUrdu
	}

	message, err := s.generator.Complete(ctx, messagePrompt(shopName, c.Name, totalDue, language), messageMaxTokens)
	if err != nil {
		errorhandler.LogExternalServiceError(ctx, "groq", "chat/completions", err)
		message = fallbackReminder(c.Name, totalDue, shopName)
	}

	return &MessageResponse{
		CustomerName: c.Name,
		AmountDue:    totalDue,
		Message:      message,
	}, nil
}

func (s *Service) insightText(ctx context.Context, ownerID uuid.UUID, shopName string, snapshot *cashflow.Snapshot) string {
	cacheKey := "advisor:insight:" + ownerID.String()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached
		}
	}

	insight, err := s.generator.Complete(ctx, insightPrompt(shopName, snapshot), insightMaxTokens)
	if err != nil {
		errorhandler.LogExternalServiceError(ctx, "groq", "chat/completions", err)
		return fallbackInsight(snapshot)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, insight, insightCacheTTL).Err(); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Msg("failed to cache advisor insight")
		}
	}

	return insight
}

func insightPrompt(shopName string, snapshot *cashflow.Snapshot) string {
	return fmt.Sprintf(`You are a financial advisor for a small Pakistani shopkeeper.
Shop: %s
Total outstanding: Rs. %.0f
At risk amount: Rs. %.0f
Shortage warning: %t
Customers at risk: %d

Give 2-3 short practical action points in simple English. Under 80 words. Plain text only.`,
		shopName, snapshot.TotalOutstanding, snapshot.AtRiskAmount, snapshot.ShortageWarning, len(snapshot.CustomersAtRisk))
}

func messagePrompt(shopName, customerName string, amountDue float64, language string) string {
	langInstruction := "Write in Roman Urdu. Keep it friendly and respectful."
	if language == LanguageEnglish {
		langInstruction = "Write in English. Keep it friendly and professional."
	}

	return fmt.Sprintf(`Generate a short WhatsApp reminder for a shopkeeper in Pakistan.
Shop: %s
Customer: %s
Amount due: Rs. %.0f
%s
Under 50 words. Warm tone. Return message text only.`,
		shopName, customerName, amountDue, langInstruction)
}

func fallbackInsight(snapshot *cashflow.Snapshot) string {
	return fmt.Sprintf(
		"AI insight unavailable right now — your data is still accurate. Total outstanding: ₨%s, at-risk amount: ₨%s.",
		formatAmount(snapshot.TotalOutstanding), formatAmount(snapshot.AtRiskAmount))
}

func fallbackReminder(customerName string, amountDue float64, shopName string) string {
	return fmt.Sprintf(
		"Assalam o Alaikum %s bhai, aap ki taraf se ₨%s baaki hain. Meherbani farma ke jald ada kar dein. Shukriya — %s",
		customerName, formatAmount(amountDue), shopName)
}

// formatAmount renders a rupee amount with thousands separators and no
// decimals, the way shopkeepers write figures.
func formatAmount(amount float64) string {
	whole := strconv.FormatFloat(amount, 'f', 0, 64)

	negative := strings.HasPrefix(whole, "-")
	if negative {
		whole = whole[1:]
	}

	var b strings.Builder
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
	}
	for i := lead; i < len(whole); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(whole[i : i+3])
	}

	if negative {
		return "-" + b.String()
	}
	return b.String()
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
