package advisor

import "github.com/Maheenrz/smart-khata-ai/internal/domain/cashflow"

// CashflowInsight is the snapshot plus an advisory paragraph. The
// insight text is best-effort: a provider failure degrades to a
// templated summary, never to an error.
type CashflowInsight struct {
	cashflow.Snapshot
	AIInsight string `json:"ai_insight"`
}

// MessageRequest asks for a payment reminder for one customer.
type MessageRequest struct {
	CustomerID string `json:"customer_id" validate:"required,uuid"`
	Language   string `json:"language" validate:"omitempty,language"`
}

// MessageResponse carries the reminder ready to forward on WhatsApp.
type MessageResponse struct {
	CustomerName string  `json:"customer_name"`
	AmountDue    float64 `json:"amount_due"`
	Message      string  `json:"message"`
}
