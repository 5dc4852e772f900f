package cashflow

import (
	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

// ScoredCustomer is the aggregator's input: one customer with their
// already-computed trust score and fully materialized ledger.
type ScoredCustomer struct {
	ID           uuid.UUID
	Name         string
	Score        int
	Transactions []transaction.Transaction
}

// UpcomingCollection is one expected repayment, soonest first in the
// snapshot.
type UpcomingCollection struct {
	CustomerID      string  `json:"customer_id"`
	CustomerName    string  `json:"customer_name"`
	AmountDue       float64 `json:"amount_due"`
	DaysOutstanding int     `json:"days_credit_outstanding"`
	ExpectedInDays  int     `json:"expected_in_days"`
	ExpectedDate    string  `json:"expected_date"`
	IsOverdue       bool    `json:"is_overdue"`
	OverdueByDays   int     `json:"overdue_by_days"`
}

// AtRiskCustomer is a customer flagged by overdue severity or poor score.
type AtRiskCustomer struct {
	CustomerID       string  `json:"customer_id"`
	CustomerName     string  `json:"customer_name"`
	AmountDue        float64 `json:"amount_due"`
	AitbaarScore     int     `json:"aitbaar_score"`
	OverdueByDays    int     `json:"overdue_by_days"`
	AvgRepaymentDays int     `json:"avg_repayment_days"`
	RiskReason       string  `json:"risk_reason"`
}

// Snapshot is the shop-wide cashflow view. Derived on every call, never
// persisted.
type Snapshot struct {
	TotalOutstanding    float64              `json:"total_outstanding"`
	AtRiskAmount        float64              `json:"at_risk_amount"`
	ShortageWarning     bool                 `json:"shortage_warning"`
	CustomersAtRisk     []AtRiskCustomer     `json:"customers_at_risk"`
	UpcomingCollections []UpcomingCollection `json:"upcoming_collections"`
}

// Risk reasons, in priority order.
const (
	ReasonOverdueAndBadScore = "Seriously overdue and bad score"
	ReasonOverdue            = "Seriously overdue"
	ReasonBadScore           = "Poor repayment history"
)
