package account

import (
	"context"

	"github.com/go-faster/errors"
)

// Sentinel errors surfaced by account repositories.
var (
	// ErrNotFound is returned when a requested account does not exist.
	ErrNotFound = errors.New("customer account not found")

	// ErrUsernameTaken is returned when another account already uses the username.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrCustomerNotFound is returned when the owning customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")
)

// Account is a login credential owned by exactly one customer. The password
// is stored as an opaque string; hashing is the concern of whoever issues it.
type Account struct {
	ID         int64
	Username   string
	Password   string
	CustomerID int64
}

// Repository defines persistence operations for customer accounts.
type Repository interface {
	// Create inserts a new account. ErrCustomerNotFound when the referenced
	// customer does not exist, ErrUsernameTaken on username collision.
	Create(ctx context.Context, a *Account) (int64, error)
	GetByID(ctx context.Context, id int64) (*Account, error)
	Update(ctx context.Context, a *Account) error
	Delete(ctx context.Context, id int64) error
}
