package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-api/internal/domain/order"
)

const (
	customerExistsSQL = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`

	insertOrderSQL = `INSERT INTO orders (customer_id)
		VALUES ($1) RETURNING id, order_date`

	// FOR UPDATE holds a row lock on the product until the transaction ends,
	// so concurrent orders against the same product serialize on the
	// decrement and never observe an intermediate stock value.
	lockProductStockSQL = `SELECT stock_level FROM products WHERE id = $1 FOR UPDATE`

	decrementStockSQL = `UPDATE products SET stock_level = stock_level - $2 WHERE id = $1`

	insertOrderItemSQL = `INSERT INTO order_items (order_id, product_id, quantity)
		VALUES ($1, $2, $3)`

	getOrderByIDSQL = `SELECT id, order_date, customer_id FROM orders WHERE id = $1`

	getOrderItemsSQL = `SELECT product_id, quantity FROM order_items
		WHERE order_id = $1 ORDER BY id`

	lockOrderSQL = `SELECT 1 FROM orders WHERE id = $1 FOR UPDATE`

	deleteOrderItemsSQL = `DELETE FROM order_items WHERE order_id = $1`

	// Quantities are summed per product first: UPDATE ... FROM applies at
	// most one joined row per target row, so duplicate product references
	// within one order must be folded before the increment.
	restockOrderSQL = `UPDATE products p
		SET stock_level = p.stock_level + oi.total
		FROM (
			SELECT product_id, SUM(quantity) AS total
			FROM order_items WHERE order_id = $1
			GROUP BY product_id
		) oi
		WHERE p.id = oi.product_id`

	deleteOrderSQL = `DELETE FROM orders WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL. Every
// mutating method runs as a single transaction: the order row, its items,
// and all stock adjustments commit together or not at all.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create places a new order for the customer, inserting one item row per
// line item and decrementing product stock as it goes. Any missing product
// or shortfall aborts the whole transaction; nothing partial is visible.
func (r *OrderRepository) Create(ctx context.Context, customerID int64, items []order.Item) (*order.Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning order transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var exists bool
	if err := tx.QueryRow(ctx, customerExistsSQL, customerID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("checking customer %d: %w", customerID, err)
	}
	if !exists {
		return nil, order.ErrCustomerNotFound
	}

	o := &order.Order{CustomerID: customerID, Items: items}
	if err := tx.QueryRow(ctx, insertOrderSQL, customerID).Scan(&o.ID, &o.OrderDate); err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}

	if err := applyItems(ctx, tx, o.ID, items); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing order: %w", err)
	}
	return o, nil
}

// applyItems processes line items in caller order within tx: lock the
// product row, check stock, decrement, insert the item row. A later item
// for the same product sees the stock already decremented by earlier items
// in the same transaction.
func applyItems(ctx context.Context, tx pgx.Tx, orderID int64, items []order.Item) error {
	for _, it := range items {
		var stock int
		err := tx.QueryRow(ctx, lockProductStockSQL, it.ProductID).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return &order.ProductNotFoundError{ProductID: it.ProductID}
			}
			return fmt.Errorf("locking product %d: %w", it.ProductID, err)
		}
		if stock < it.Quantity {
			return &order.InsufficientStockError{
				ProductID: it.ProductID,
				Requested: it.Quantity,
				Available: stock,
			}
		}

		if _, err := tx.Exec(ctx, decrementStockSQL, it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("decrementing stock for product %d: %w", it.ProductID, err)
		}
		if _, err := tx.Exec(ctx, insertOrderItemSQL, orderID, it.ProductID, it.Quantity); err != nil {
			return fmt.Errorf("inserting order item for product %d: %w", it.ProductID, err)
		}
	}
	return nil
}

// GetByID returns the order and its line items.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.pool.QueryRow(ctx, getOrderByIDSQL, id).Scan(&o.ID, &o.OrderDate, &o.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	rows, err := r.pool.Query(ctx, getOrderItemsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting items for order %d: %w", id, err)
	}
	o.Items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (order.Item, error) {
		var it order.Item
		err := row.Scan(&it.ProductID, &it.Quantity)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning items for order %d: %w", id, err)
	}
	return &o, nil
}

// ReplaceItems swaps the order's contents for the given list inside one
// transaction. The removed items are not restocked; the new items go
// through the same stock checks and decrements as Create.
func (r *OrderRepository) ReplaceItems(ctx context.Context, id int64, items []order.Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning replace transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var one int
	if err := tx.QueryRow(ctx, lockOrderSQL, id).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.ErrNotFound
		}
		return fmt.Errorf("locking order %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx, deleteOrderItemsSQL, id); err != nil {
		return fmt.Errorf("deleting items for order %d: %w", id, err)
	}

	if err := applyItems(ctx, tx, id, items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing replace for order %d: %w", id, err)
	}
	return nil
}

// Delete restocks every product the order's items reference, then removes
// the order; items cascade with it. Restock and delete commit together.
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning delete transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var one int
	if err := tx.QueryRow(ctx, lockOrderSQL, id).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return order.ErrNotFound
		}
		return fmt.Errorf("locking order %d: %w", id, err)
	}

	if _, err := tx.Exec(ctx, restockOrderSQL, id); err != nil {
		return fmt.Errorf("restocking order %d: %w", id, err)
	}
	if _, err := tx.Exec(ctx, deleteOrderSQL, id); err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing delete for order %d: %w", id, err)
	}
	return nil
}
