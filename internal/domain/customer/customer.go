package customer

import (
	"context"

	"github.com/go-faster/errors"
)

// Sentinel errors surfaced by customer repositories.
var (
	// ErrNotFound is returned when a requested customer does not exist.
	ErrNotFound = errors.New("customer not found")

	// ErrEmailTaken is returned when another customer already uses the email.
	ErrEmailTaken = errors.New("email already exists")

	// ErrHasOrders is returned when deleting a customer that still has orders.
	ErrHasOrders = errors.New("customer has existing orders")
)

// Customer is a registered buyer. A customer owns zero or more accounts and
// zero or more orders.
type Customer struct {
	ID          int64
	Name        string
	Email       string
	PhoneNumber string
}

// Repository defines persistence operations for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) (int64, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
	// Update replaces the full record. ErrNotFound when id is unknown,
	// ErrEmailTaken when the new email collides with another customer.
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
}
