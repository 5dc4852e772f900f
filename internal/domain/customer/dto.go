package customer

import "github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"

// CreateRequest for POST /customers
type CreateRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=100"`
	Phone string `json:"phone" validate:"required,min=7,max=20"`
	Area  string `json:"area" validate:"max=100"`
}

// Summary is the list-view projection: identity plus the derived trust
// score and outstanding balance.
type Summary struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	Phone             string  `json:"phone"`
	Area              string  `json:"area"`
	AitbaarScore      int     `json:"aitbaar_score"`
	TotalDue          float64 `json:"total_due"`
	TotalTransactions int     `json:"total_transactions"`
}

// Detail is the single-customer projection including the full ledger.
type Detail struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Phone        string                  `json:"phone"`
	Area         string                  `json:"area"`
	AitbaarScore int                     `json:"aitbaar_score"`
	TotalDue     float64                 `json:"total_due"`
	Transactions []*transaction.Response `json:"transactions"`
}

// CreateResponse for POST /customers
type CreateResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}
