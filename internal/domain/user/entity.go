package user

import (
	"time"

	"github.com/google/uuid"
)

// User represents a shopkeeper account
type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	ShopName     string    `db:"shop_name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	City         string    `db:"city"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
