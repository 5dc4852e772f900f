package transaction

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// CustomerChecker verifies customer ownership; implemented by the customer
// repository and wired in main.
type CustomerChecker interface {
	ExistsOwned(ctx context.Context, customerID, ownerID uuid.UUID) (bool, error)
}

// Service handles ledger business logic
type Service struct {
	repo      Repository
	customers CustomerChecker
}

// NewService creates a transaction service
func NewService(repo Repository, customers CustomerChecker) *Service {
	return &Service{repo: repo, customers: customers}
}

// Record creates a new ledger entry for one of the owner's customers.
// date_given is captured here; new entries always start unpaid.
func (s *Service) Record(ctx context.Context, ownerID, customerID uuid.UUID, amount float64, kind Kind) (*Transaction, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	owned, err := s.customers.ExistsOwned(ctx, customerID, ownerID)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrCustomerNotFound
	}

	t := &Transaction{
		ID:         uuid.New(),
		CustomerID: customerID,
		Amount:     amount,
		Kind:       kind,
		DateGiven:  time.Now().UTC(),
		DateRepaid: sql.NullTime{},
		IsRepaid:   false,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// MarkRepaid flips a ledger row to repaid, stamping date_repaid with now.
func (s *Service) MarkRepaid(ctx context.Context, ownerID, transactionID uuid.UUID) error {
	return s.repo.MarkRepaid(ctx, transactionID, ownerID, time.Now().UTC())
}
