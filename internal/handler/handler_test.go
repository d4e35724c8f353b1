package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xenking/storefront-api/internal/domain/account"
	"github.com/xenking/storefront-api/internal/domain/customer"
	"github.com/xenking/storefront-api/internal/domain/order"
	"github.com/xenking/storefront-api/internal/domain/product"
)

// --- Mock repositories ---

type mockCustomerRepo struct {
	byID      map[int64]*customer.Customer
	createID  int64
	createErr error
	updateErr error
	deleteErr error

	lastCreated *customer.Customer
	lastUpdated *customer.Customer
}

func (m *mockCustomerRepo) Create(_ context.Context, c *customer.Customer) (int64, error) {
	m.lastCreated = c
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := m.byID[id]
	if !ok {
		return nil, customer.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *mockCustomerRepo) Update(_ context.Context, c *customer.Customer) error {
	m.lastUpdated = c
	return m.updateErr
}

func (m *mockCustomerRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return customer.ErrNotFound
	}
	return nil
}

type mockAccountRepo struct {
	byID      map[int64]*account.Account
	createID  int64
	createErr error
	updateErr error

	lastCreated *account.Account
	lastUpdated *account.Account
}

func (m *mockAccountRepo) Create(_ context.Context, a *account.Account) (int64, error) {
	m.lastCreated = a
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id int64) (*account.Account, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, account.ErrNotFound
	}
	ap := *a
	return &ap, nil
}

func (m *mockAccountRepo) Update(_ context.Context, a *account.Account) error {
	m.lastUpdated = a
	return m.updateErr
}

func (m *mockAccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return account.ErrNotFound
	}
	return nil
}

type mockProductRepo struct {
	byID      map[int64]*product.Product
	list      []product.Product
	createID  int64
	createErr error
	updateErr error
	deleteErr error

	lastCreated *product.Product
	lastUpdated *product.Product
}

func (m *mockProductRepo) Create(_ context.Context, p *product.Product) (int64, error) {
	m.lastCreated = p
	if m.createErr != nil {
		return 0, m.createErr
	}
	return m.createID, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	pp := *p
	return &pp, nil
}

func (m *mockProductRepo) List(_ context.Context) ([]product.Product, error) {
	return m.list, nil
}

func (m *mockProductRepo) Update(_ context.Context, p *product.Product) error {
	m.lastUpdated = p
	return m.updateErr
}

func (m *mockProductRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return product.ErrNotFound
	}
	return nil
}

type mockOrderRepo struct {
	byID       map[int64]*order.Order
	createErr  error
	replaceErr error
	deleteErr  error

	lastCustomerID int64
	lastItems      []order.Item
}

func (m *mockOrderRepo) Create(_ context.Context, customerID int64, items []order.Item) (*order.Order, error) {
	m.lastCustomerID = customerID
	m.lastItems = items
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &order.Order{ID: 1, CustomerID: customerID, Items: items}, nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	op := *o
	return &op, nil
}

func (m *mockOrderRepo) ReplaceItems(_ context.Context, id int64, items []order.Item) error {
	m.lastItems = items
	if m.replaceErr != nil {
		return m.replaceErr
	}
	if _, ok := m.byID[id]; !ok {
		return order.ErrNotFound
	}
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.byID[id]; !ok {
		return order.ErrNotFound
	}
	return nil
}

// --- Helpers ---

type testDeps struct {
	customers *mockCustomerRepo
	accounts  *mockAccountRepo
	products  *mockProductRepo
	orders    *mockOrderRepo
}

// newTestRouter builds the full router over mock repositories. Nil mocks
// default to empty ones.
func newTestRouter(d testDeps) http.Handler {
	if d.customers == nil {
		d.customers = &mockCustomerRepo{}
	}
	if d.accounts == nil {
		d.accounts = &mockAccountRepo{}
	}
	if d.products == nil {
		d.products = &mockProductRepo{}
	}
	if d.orders == nil {
		d.orders = &mockOrderRepo{}
	}
	h := New(d.customers, d.accounts, d.products, order.NewService(d.orders))
	return h.Routes()
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}
