package handler

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-api/internal/domain/product"
)

func TestCreateProduct(t *testing.T) {
	repo := &mockProductRepo{createID: 3}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodPost, "/product",
		`{"name":"Widget","price":19.99,"stock_level":100}`)

	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Product created successfully", body["message"])
	assert.Equal(t, float64(3), body["product_id"])

	require.NotNil(t, repo.lastCreated)
	assert.True(t, decimal.RequireFromString("19.99").Equal(repo.lastCreated.Price))
	assert.Equal(t, 100, repo.lastCreated.StockLevel)
}

func TestCreateProduct_StockDefaultsToZero(t *testing.T) {
	repo := &mockProductRepo{createID: 3}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodPost, "/product", `{"name":"Widget","price":5}`)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, repo.lastCreated)
	assert.Equal(t, 0, repo.lastCreated.StockLevel)
}

func TestCreateProduct_MissingFields(t *testing.T) {
	h := newTestRouter(testDeps{})

	w := doRequest(t, h, http.MethodPost, "/product", `{"stock_level":10}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "missing required fields: name, price", body["error"])
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	h := newTestRouter(testDeps{})

	w := doRequest(t, h, http.MethodPost, "/product",
		`{"name":"Widget","price":-1.50}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "price must be non-negative", body["error"])
}

func TestCreateProduct_NegativeStock(t *testing.T) {
	h := newTestRouter(testDeps{})

	w := doRequest(t, h, http.MethodPost, "/product",
		`{"name":"Widget","price":1,"stock_level":-5}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "stock level must be a non-negative integer", body["error"])
}

func TestGetProduct(t *testing.T) {
	repo := &mockProductRepo{byID: map[int64]*product.Product{
		3: {ID: 3, Name: "Widget", Price: decimal.RequireFromString("19.99"), StockLevel: 42},
	}}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodGet, "/product/3", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(3), body["id"])
	assert.Equal(t, "Widget", body["name"])
	assert.Equal(t, 19.99, body["price"])
	assert.Equal(t, float64(42), body["stock_level"])
}

func TestGetProduct_NotFound(t *testing.T) {
	h := newTestRouter(testDeps{})

	w := doRequest(t, h, http.MethodGet, "/product/999", "")

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Product not found", body["error"])
}

func TestListProducts(t *testing.T) {
	repo := &mockProductRepo{list: []product.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99"), StockLevel: 10},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("24.50"), StockLevel: 0},
	}}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodGet, "/products", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t,
		`[
			{"id":1,"name":"Widget","price":9.99,"stock_level":10},
			{"id":2,"name":"Gadget","price":24.5,"stock_level":0}
		]`,
		w.Body.String())
}

func TestListProducts_Empty(t *testing.T) {
	h := newTestRouter(testDeps{})

	w := doRequest(t, h, http.MethodGet, "/products", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateProduct_Partial(t *testing.T) {
	repo := &mockProductRepo{byID: map[int64]*product.Product{
		3: {ID: 3, Name: "Widget", Price: decimal.RequireFromString("19.99"), StockLevel: 42},
	}}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodPut, "/product/3", `{"stock_level":7}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, repo.lastUpdated)
	assert.Equal(t, "Widget", repo.lastUpdated.Name)
	assert.True(t, decimal.RequireFromString("19.99").Equal(repo.lastUpdated.Price))
	assert.Equal(t, 7, repo.lastUpdated.StockLevel)
}

func TestUpdateProduct_NegativePrice(t *testing.T) {
	repo := &mockProductRepo{byID: map[int64]*product.Product{
		3: {ID: 3, Name: "Widget", Price: decimal.RequireFromString("19.99"), StockLevel: 42},
	}}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodPut, "/product/3", `{"price":-2}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, repo.lastUpdated)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	h := newTestRouter(testDeps{})

	w := doRequest(t, h, http.MethodPut, "/product/999", `{"price":1}`)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteProduct(t *testing.T) {
	repo := &mockProductRepo{byID: map[int64]*product.Product{
		3: {ID: 3, Name: "Widget", Price: decimal.RequireFromString("19.99")},
	}}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodDelete, "/product/3", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Product deleted successfully", body["message"])
}

func TestDeleteProduct_Referenced(t *testing.T) {
	repo := &mockProductRepo{deleteErr: product.ErrReferenced}
	h := newTestRouter(testDeps{products: repo})

	w := doRequest(t, h, http.MethodDelete, "/product/3", "")

	require.Equal(t, http.StatusConflict, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "product is referenced by existing orders", body["error"])
}
