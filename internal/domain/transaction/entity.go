package transaction

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind defines supported ledger entry kinds.
type Kind string

const (
	KindCredit  Kind = "credit"
	KindPayment Kind = "payment"
)

// Transaction is a single khata ledger row: credit extended to a customer
// or a payment recorded against them. Rows are immutable except for the
// single is_repaid false→true transition.
type Transaction struct {
	ID         uuid.UUID    `db:"id"`
	CustomerID uuid.UUID    `db:"customer_id"`
	Amount     float64      `db:"amount"`
	Kind       Kind         `db:"kind"`
	DateGiven  time.Time    `db:"date_given"`
	DateRepaid sql.NullTime `db:"date_repaid"`
	IsRepaid   bool         `db:"is_repaid"`
}

// Response represents a transaction in API responses
type Response struct {
	ID         string     `json:"id"`
	Amount     float64    `json:"amount"`
	Kind       string     `json:"kind"`
	DateGiven  time.Time  `json:"date_given"`
	DateRepaid *time.Time `json:"date_repaid,omitempty"`
	IsRepaid   bool       `json:"is_repaid"`
}

// ToResponse converts entity to response
func (t *Transaction) ToResponse() *Response {
	resp := &Response{
		ID:        t.ID.String(),
		Amount:    t.Amount,
		Kind:      string(t.Kind),
		DateGiven: t.DateGiven,
		IsRepaid:  t.IsRepaid,
	}
	if t.DateRepaid.Valid {
		d := t.DateRepaid.Time
		resp.DateRepaid = &d
	}
	return resp
}

// CreateRequest for recording a new ledger entry
type CreateRequest struct {
	CustomerID string  `json:"customer_id" validate:"required,uuid"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Kind       string  `json:"kind" validate:"required,txkind"`
}
