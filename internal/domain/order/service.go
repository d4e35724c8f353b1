package order

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/xenking/storefront-api/internal/domain/order"

// Service wraps the order repository with input validation and telemetry.
// All persistence-level invariants (existence checks, stock sufficiency,
// atomicity) live in the repository; the service rejects structurally
// invalid input before any storage round-trip.
type Service struct {
	orders Repository

	tracer       trace.Tracer
	ordersPlaced metric.Int64Counter
	itemsOrdered metric.Int64Counter
}

// NewService creates an order Service backed by the given repository.
func NewService(orders Repository) *Service {
	meter := otel.Meter(instrumentationName)
	ordersPlaced, _ := meter.Int64Counter("orders.placed",
		metric.WithDescription("Number of successfully placed orders"))
	itemsOrdered, _ := meter.Int64Counter("orders.items",
		metric.WithDescription("Total units ordered across all line items"))

	return &Service{
		orders:       orders,
		tracer:       otel.Tracer(instrumentationName),
		ordersPlaced: ordersPlaced,
		itemsOrdered: itemsOrdered,
	}
}

// validateItems rejects empty item lists and non-positive quantities.
func validateItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}
	for _, it := range items {
		if it.Quantity <= 0 {
			return &InvalidQuantityError{ProductID: it.ProductID}
		}
	}
	return nil
}

// Place validates the request and creates the order in one atomic unit of
// work. On success it returns the persisted order with its identifier and
// creation timestamp set.
func (s *Service) Place(ctx context.Context, customerID int64, items []Item) (*Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.place",
		trace.WithAttributes(attribute.Int64("customer.id", customerID)))
	defer span.End()

	if err := validateItems(items); err != nil {
		return nil, err
	}

	o, err := s.orders.Create(ctx, customerID, items)
	if err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	units := int64(0)
	for _, it := range o.Items {
		units += int64(it.Quantity)
	}
	s.ordersPlaced.Add(ctx, 1)
	s.itemsOrdered.Add(ctx, units)

	return o, nil
}

// Get returns the order with the given identifier.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ReplaceItems validates the new item list and swaps the order's contents
// for it. Old items are not restocked; see Repository.ReplaceItems.
func (s *Service) ReplaceItems(ctx context.Context, id int64, items []Item) error {
	ctx, span := s.tracer.Start(ctx, "order.replace_items",
		trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := validateItems(items); err != nil {
		return err
	}
	if err := s.orders.ReplaceItems(ctx, id, items); err != nil {
		return errors.Wrap(err, "replace order items")
	}
	return nil
}

// Delete removes the order, restoring the stock its items had consumed.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "order.delete",
		trace.WithAttributes(attribute.Int64("order.id", id)))
	defer span.End()

	if err := s.orders.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete order")
	}
	return nil
}
