package community

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/customer"
	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

const queryTimeout = 3 * time.Second

// Repository provides the cross-shop reads the correlator feeds on.
type Repository interface {
	AreasOfOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error)
	NeighborsInAreas(ctx context.Context, ownerID uuid.UUID, areas []string) ([]customer.Customer, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates a new community repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// AreasOfOwner returns the distinct areas the shop's own customers live in.
func (r *repository) AreasOfOwner(ctx context.Context, ownerID uuid.UUID) ([]string, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	areas := make([]string, 0)
	err := r.db.SelectContext(ctx2, &areas, `
		SELECT DISTINCT area
		FROM customers
		WHERE owner_id = $1 AND area <> ''
		ORDER BY area
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list areas", ErrInternal)
	}
	return areas, nil
}

// NeighborsInAreas loads other shops' customers in the given areas with
// their ledgers attached, batched the same way the customer listing is.
func (r *repository) NeighborsInAreas(ctx context.Context, ownerID uuid.UUID, areas []string) ([]customer.Customer, error) {
	ctx2, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	neighbors := make([]customer.Customer, 0)
	err := r.db.SelectContext(ctx2, &neighbors, `
		SELECT id, owner_id, name, phone, area, created_at
		FROM customers
		WHERE area = ANY($1) AND owner_id <> $2
		ORDER BY created_at
	`, pq.Array(areas), ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: list neighbors", ErrInternal)
	}
	if len(neighbors) == 0 {
		return neighbors, nil
	}

	ids := make([]uuid.UUID, len(neighbors))
	for i, c := range neighbors {
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
		return nil, fmt.Errorf("%w: load neighbor ledgers", ErrInternal)
	}

	byCustomer := make(map[uuid.UUID][]transaction.Transaction, len(neighbors))
	for _, t := range txns {
		byCustomer[t.CustomerID] = append(byCustomer[t.CustomerID], t)
	}
	for i := range neighbors {
		if list, ok := byCustomer[neighbors[i].ID]; ok {
			neighbors[i].Transactions = list
		} else {
			neighbors[i].Transactions = []transaction.Transaction{}
		}
	}

	return neighbors, nil
}
