package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
)

// Sentinel errors for order operations.
var (
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = errors.New("order not found")

	// ErrCustomerNotFound is returned when the ordering customer does not exist.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrEmptyItems is returned when an order carries no line items.
	ErrEmptyItems = errors.New("order items required")
)

// ProductNotFoundError indicates a line item references a product that does
// not exist.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product with ID %d not found", e.ProductID)
}

// InsufficientStockError indicates a product's stock level cannot cover the
// requested quantity at the moment the line item is committed.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product ID %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	ProductID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product ID %d", e.ProductID)
}

// Item is a single line item: a product and how many units of it.
type Item struct {
	ProductID int64
	Quantity  int
}

// Order is a placed order owning its line items. Item order within the
// slice is the order the caller supplied them in.
type Order struct {
	ID         int64
	OrderDate  time.Time
	CustomerID int64
	Items      []Item
}

// Repository defines the transactional persistence operations for orders.
// Every mutating call runs as one atomic unit of work: it either fully
// commits (order rows, item rows, and stock adjustments together) or leaves
// the store untouched.
type Repository interface {
	// Create places a new order, decrementing each product's stock level by
	// the item quantity. Items are processed in input order; two items for
	// the same product consume stock cumulatively. ErrCustomerNotFound,
	// *ProductNotFoundError, or *InsufficientStockError abort the whole unit.
	Create(ctx context.Context, customerID int64, items []Item) (*Order, error)

	GetByID(ctx context.Context, id int64) (*Order, error)

	// ReplaceItems swaps the order's line items for the given list. Existing
	// items are removed without restocking them; the new list goes through
	// the same per-item stock checks and decrements as Create.
	ReplaceItems(ctx context.Context, id int64, items []Item) error

	// Delete restocks every product referenced by the order's items and then
	// removes the order and its items.
	Delete(ctx context.Context, id int64) error
}
