package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const queryTimeout = 3 * time.Second

// Repository provides khata ledger storage operations.
type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Transaction, error)
	MarkRepaid(ctx context.Context, id, ownerID uuid.UUID, repaidAt time.Time) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new transaction repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *Transaction) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO transactions (id, customer_id, amount, kind, date_given, date_repaid, is_repaid)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.CustomerID, t.Amount, t.Kind, t.DateGiven, t.DateRepaid, t.IsRepaid)
	if err != nil {
		return fmt.Errorf("%w: insert transaction", ErrInternal)
	}
	return nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]Transaction, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	txns := make([]Transaction, 0)
	err := r.db.SelectContext(ctx2, &txns, `
		SELECT id, customer_id, amount, kind, date_given, date_repaid, is_repaid
		FROM transactions
		WHERE customer_id = $1
		ORDER BY date_given DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list transactions", ErrInternal)
	}
	return txns, nil
}

// MarkRepaid performs the single allowed mutation on a ledger row.
// Already-repaid rows are left untouched so repeated calls are harmless.
// The owner check rides in the join: rows of other shops' customers are
// reported as not found.
func (r *repository) MarkRepaid(ctx context.Context, id, ownerID uuid.UUID, repaidAt time.Time) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.db.ExecContext(ctx2, `
		UPDATE transactions t
		SET is_repaid = true, date_repaid = $3
		FROM customers c
		WHERE t.id = $1
		  AND t.customer_id = c.id
		  AND c.owner_id = $2
		  AND t.is_repaid = false
	`, id, ownerID, repaidAt)
	if err != nil {
		return fmt.Errorf("%w: mark repaid", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		// Distinguish "already repaid" (no-op) from "not yours / missing"
		var exists bool
		err := r.db.GetContext(ctx2, &exists, `
			SELECT EXISTS(
				SELECT 1 FROM transactions t
				JOIN customers c ON t.customer_id = c.id
				WHERE t.id = $1 AND c.owner_id = $2
			)
		`, id, ownerID)
		if err != nil {
			return fmt.Errorf("%w: check transaction", ErrInternal)
		}
		if !exists {
			return ErrTransactionNotFound
		}
	}
	return nil
}
