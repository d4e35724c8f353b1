package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/storefront-api/internal/domain/account"
)

const (
	createAccountSQL = `INSERT INTO customer_accounts (username, password, customer_id)
		VALUES ($1, $2, $3) RETURNING id`

	getAccountByIDSQL = `SELECT id, username, password, customer_id
		FROM customer_accounts WHERE id = $1`

	updateAccountSQL = `UPDATE customer_accounts
		SET username = $2, password = $3 WHERE id = $1`

	deleteAccountSQL = `DELETE FROM customer_accounts WHERE id = $1`
)

var _ account.Repository = (*AccountRepository)(nil)

// AccountRepository implements account.Repository backed by PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns an AccountRepository that uses the given pool.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// Create inserts a new account and returns its generated identifier.
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, createAccountSQL, a.Username, a.Password, a.CustomerID).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err, "customer_accounts_username_key"):
			return 0, account.ErrUsernameTaken
		case isForeignKeyViolation(err):
			return 0, account.ErrCustomerNotFound
		}
		return 0, fmt.Errorf("creating account: %w", err)
	}
	return id, nil
}

// GetByID returns a single account by its identifier.
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	var a account.Account
	err := r.pool.QueryRow(ctx, getAccountByIDSQL, id).
		Scan(&a.ID, &a.Username, &a.Password, &a.CustomerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("getting account %d: %w", id, err)
	}
	return &a, nil
}

// Update replaces the account's credentials. The owning customer is fixed at
// creation time and not updatable.
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	tag, err := r.pool.Exec(ctx, updateAccountSQL, a.ID, a.Username, a.Password)
	if err != nil {
		if isUniqueViolation(err, "customer_accounts_username_key") {
			return account.ErrUsernameTaken
		}
		return fmt.Errorf("updating account %d: %w", a.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}

// Delete removes an account.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteAccountSQL, id)
	if err != nil {
		return fmt.Errorf("deleting account %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrNotFound
	}
	return nil
}
