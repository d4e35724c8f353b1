package order

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock implementation ---

type mockOrderRepo struct {
	created *Order
	err     error

	lastCustomerID int64
	lastItems      []Item
	lastOrderID    int64
}

func (m *mockOrderRepo) Create(_ context.Context, customerID int64, items []Item) (*Order, error) {
	m.lastCustomerID = customerID
	m.lastItems = items
	if m.err != nil {
		return nil, m.err
	}
	if m.created != nil {
		return m.created, nil
	}
	return &Order{ID: 1, OrderDate: time.Now(), CustomerID: customerID, Items: items}, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, _ int64) (*Order, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.created, nil
}

func (m *mockOrderRepo) ReplaceItems(_ context.Context, id int64, items []Item) error {
	m.lastOrderID = id
	m.lastItems = items
	return m.err
}

func (m *mockOrderRepo) Delete(_ context.Context, id int64) error {
	m.lastOrderID = id
	return m.err
}

// --- Tests ---

func TestPlace_EmptyItems(t *testing.T) {
	svc := NewService(&mockOrderRepo{})

	_, err := svc.Place(context.Background(), 1, nil)
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestPlace_InvalidQuantity(t *testing.T) {
	svc := NewService(&mockOrderRepo{})

	_, err := svc.Place(context.Background(), 1, []Item{
		{ProductID: 7, Quantity: 0},
	})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, int64(7), iqErr.ProductID)
}

func TestPlace_NegativeQuantity(t *testing.T) {
	svc := NewService(&mockOrderRepo{})

	_, err := svc.Place(context.Background(), 1, []Item{
		{ProductID: 3, Quantity: 2},
		{ProductID: 4, Quantity: -1},
	})

	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, int64(4), iqErr.ProductID)
}

func TestPlace_CustomerNotFound(t *testing.T) {
	repo := &mockOrderRepo{err: ErrCustomerNotFound}
	svc := NewService(repo)

	_, err := svc.Place(context.Background(), 999, []Item{
		{ProductID: 1, Quantity: 1},
	})

	require.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Equal(t, int64(999), repo.lastCustomerID)
}

func TestPlace_InsufficientStock(t *testing.T) {
	repo := &mockOrderRepo{err: &InsufficientStockError{
		ProductID: 2,
		Requested: 10,
		Available: 3,
	}}
	svc := NewService(repo)

	_, err := svc.Place(context.Background(), 1, []Item{
		{ProductID: 2, Quantity: 10},
	})

	var insErr *InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, "insufficient stock for product ID 2: requested 10, available 3", insErr.Error())
}

func TestPlace_Success(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(repo)

	items := []Item{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}
	o, err := svc.Place(context.Background(), 42, items)

	require.NoError(t, err)
	assert.Equal(t, int64(1), o.ID)
	assert.Equal(t, int64(42), o.CustomerID)
	assert.Equal(t, items, repo.lastItems)
}

func TestPlace_RepoError(t *testing.T) {
	svc := NewService(&mockOrderRepo{err: errors.New("db write failed")})

	_, err := svc.Place(context.Background(), 1, []Item{
		{ProductID: 1, Quantity: 1},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}

func TestReplaceItems_EmptyItems(t *testing.T) {
	svc := NewService(&mockOrderRepo{})

	err := svc.ReplaceItems(context.Background(), 1, []Item{})
	require.ErrorIs(t, err, ErrEmptyItems)
}

func TestReplaceItems_Success(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(repo)

	items := []Item{{ProductID: 5, Quantity: 3}}
	err := svc.ReplaceItems(context.Background(), 17, items)

	require.NoError(t, err)
	assert.Equal(t, int64(17), repo.lastOrderID)
	assert.Equal(t, items, repo.lastItems)
}

func TestReplaceItems_OrderNotFound(t *testing.T) {
	svc := NewService(&mockOrderRepo{err: ErrNotFound})

	err := svc.ReplaceItems(context.Background(), 1, []Item{
		{ProductID: 1, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_Success(t *testing.T) {
	repo := &mockOrderRepo{}
	svc := NewService(repo)

	require.NoError(t, svc.Delete(context.Background(), 9))
	assert.Equal(t, int64(9), repo.lastOrderID)
}

func TestDelete_NotFound(t *testing.T) {
	svc := NewService(&mockOrderRepo{err: ErrNotFound})

	err := svc.Delete(context.Background(), 9)
	require.ErrorIs(t, err, ErrNotFound)
}
