package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

const queryTimeout = 3 * time.Second

// Repository provides customer storage operations.
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*Customer, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Customer, error)
	ExistsOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new customer repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Customer) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx2, `
		INSERT INTO customers (id, owner_id, name, phone, area, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, c.ID, c.OwnerID, c.Name, c.Phone, c.Area, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("%w: insert customer", ErrInternal)
	}
	return nil
}

// GetOwnedByID loads one customer with their full ledger. Customers of
// other shops are reported as not found.
func (r *repository) GetOwnedByID(ctx context.Context, id, ownerID uuid.UUID) (*Customer, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var c Customer
	err := r.db.GetContext(ctx2, &c, `
		SELECT id, owner_id, name, phone, area, created_at
		FROM customers
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get customer", ErrInternal)
	}

	txns := make([]transaction.Transaction, 0)
	err = r.db.SelectContext(ctx2, &txns, `
		SELECT id, customer_id, amount, kind, date_given, date_repaid, is_repaid
		FROM transactions
		WHERE customer_id = $1
		ORDER BY date_given DESC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("%w: load customer ledger", ErrInternal)
	}
	c.Transactions = txns

	return &c, nil
}

// ListByOwner loads all of a shop's customers with their ledgers attached.
// Two queries: customers, then one batched transaction fetch.
func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Customer, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	customers := make([]Customer, 0)
	err := r.db.SelectContext(ctx2, &customers, `
		SELECT id, owner_id, name, phone, area, created_at
		FROM customers
		WHERE owner_id = $1
		ORDER BY created_at
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list customers", ErrInternal)
	}
	if len(customers) == 0 {
		return customers, nil
	}

	ids := make([]uuid.UUID, len(customers))
	for i, c := range customers {
		ids[i] = c.ID
	}

	txns := make([]transaction.Transaction, 0)
	err = r.db.SelectContext(ctx2, &txns, `
		SELECT id, customer_id, amount, kind, date_given, date_repaid, is_repaid
		FROM transactions
		WHERE customer_id = ANY($1)
		ORDER BY date_given DESC
	`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("%w: load ledgers", ErrInternal)
	}

	byCustomer := make(map[uuid.UUID][]transaction.Transaction, len(customers))
	for _, t := range txns {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], t)
	}
	for i := range customers {
		if list, ok := byCustomer[customers[i].ID]; ok {
			customers[i].Transactions = list
		} else {
			customers[i].Transactions = []transaction.Transaction{}
		}
	}

	return customers, nil
}

func (r *repository) ExistsOwned(ctx context.Context, id, ownerID uuid.UUID) (bool, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var exists bool
	err := r.db.GetContext(ctx2, &exists, `
		SELECT EXISTS(SELECT 1 FROM customers WHERE id = $1 AND owner_id = $2)
	`, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("%w: check customer", ErrInternal)
	}
	return exists, nil
}

// DeleteOwned removes a customer and cascades their ledger in a single
// database transaction.
func (r *repository) DeleteOwned(ctx context.Context, id, ownerID uuid.UUID) error {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTxx(ctx2, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: begin tx", ErrInternal)
	}
	defer tx.Rollback()

	// Transactions first due to the foreign key constraint
	_, err = tx.ExecContext(ctx2, `
		DELETE FROM transactions
		WHERE customer_id IN (SELECT id FROM customers WHERE id = $1 AND owner_id = $2)
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("%w: delete ledger", ErrInternal)
	}

	result, err := tx.ExecContext(ctx2, `
		DELETE FROM customers WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("%w: delete customer", ErrInternal)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: rows affected", ErrInternal)
	}
	if rows == 0 {
		return ErrCustomerNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit tx", ErrInternal)
	}
	return nil
}
