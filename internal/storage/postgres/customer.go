package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-api/internal/domain/customer"
)

const (
	createCustomerSQL = `INSERT INTO customers (name, email, phone_number)
		VALUES ($1, $2, $3) RETURNING id`

	getCustomerByIDSQL = `SELECT id, name, email, phone_number
		FROM customers WHERE id = $1`

	updateCustomerSQL = `UPDATE customers
		SET name = $2, email = $3, phone_number = $4 WHERE id = $1`

	deleteCustomerSQL = `DELETE FROM customers WHERE id = $1`
)

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// Create inserts a new customer and returns its generated identifier.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, createCustomerSQL, c.Name, c.Email, c.PhoneNumber).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "customers_email_key") {
			return 0, customer.ErrEmailTaken
		}
		return 0, fmt.Errorf("creating customer: %w", err)
	}
	return id, nil
}

// GetByID returns a single customer by its identifier.
func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	var c customer.Customer
	err := r.pool.QueryRow(ctx, getCustomerByIDSQL, id).
		Scan(&c.ID, &c.Name, &c.Email, &c.PhoneNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("getting customer %d: %w", id, err)
	}
	return &c, nil
}

// Update replaces the full customer record.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.pool.Exec(ctx, updateCustomerSQL, c.ID, c.Name, c.Email, c.PhoneNumber)
	if err != nil {
		if isUniqueViolation(err, "customers_email_key") {
			return customer.ErrEmailTaken
		}
		return fmt.Errorf("updating customer %d: %w", c.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// Delete removes a customer. Accounts cascade; orders restrict, surfaced as
// customer.ErrHasOrders.
func (r *CustomerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteCustomerSQL, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return customer.ErrHasOrders
		}
		return fmt.Errorf("deleting customer %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}
