package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/Maheenrz/smart-khata-ai/internal/domain/transaction"
)

// Customer is a khata account holder at one shop. The phone number is the
// identity key used for cross-shop correlation and is deliberately not
// unique: the same person appears as separate rows at different shops.
type Customer struct {
	ID        uuid.UUID `db:"id"`
	OwnerID   uuid.UUID `db:"owner_id"`
	Name      string    `db:"name"`
	Phone     string    `db:"phone"`
	Area      string    `db:"area"`
	CreatedAt time.Time `db:"created_at"`

	// Transactions is loaded separately; not a db column.
	Transactions []transaction.Transaction `db:"-"`
}
