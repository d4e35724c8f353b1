package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors surfaced by product repositories.
var (
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")

	// ErrReferenced is returned when deleting a product that order items
	// still reference.
	ErrReferenced = errors.New("product is referenced by existing orders")
)

// Product is a catalog item with an available inventory count. Both the
// order transaction and a storage CHECK constraint keep StockLevel from
// going negative.
type Product struct {
	ID         int64
	Name       string
	Price      decimal.Decimal
	StockLevel int
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) (int64, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	// Update replaces the full record. ErrNotFound when the id is unknown.
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
