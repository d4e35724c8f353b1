// Package handler exposes the CRUD API over HTTP. Handlers decode and
// validate input, call into the domain repositories and the order service,
// and map domain errors onto status codes. No business invariant lives here.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xenking/storefront-api/internal/domain/account"
	"github.com/xenking/storefront-api/internal/domain/customer"
	"github.com/xenking/storefront-api/internal/domain/order"
	"github.com/xenking/storefront-api/internal/domain/product"
)

// Handler holds the per-entity dependencies for the HTTP surface.
type Handler struct {
	customers customer.Repository
	accounts  account.Repository
	products  product.Repository
	orders    *order.Service
}

// New constructs a Handler with the required domain dependencies.
func New(
	customers customer.Repository,
	accounts account.Repository,
	products product.Repository,
	orders *order.Service,
) *Handler {
	return &Handler{
		customers: customers,
		accounts:  accounts,
		products:  products,
		orders:    orders,
	}
}

// Routes returns the router with all API endpoints mounted.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Post("/customer", h.createCustomer)
	r.Get("/customer/{id}", h.getCustomer)
	r.Put("/customer/{id}", h.updateCustomer)
	r.Delete("/customer/{id}", h.deleteCustomer)

	r.Post("/customer_account", h.createAccount)
	r.Get("/customer_account/{id}", h.getAccount)
	r.Put("/customer_account/{id}", h.updateAccount)
	r.Delete("/customer_account/{id}", h.deleteAccount)

	r.Post("/product", h.createProduct)
	r.Get("/product/{id}", h.getProduct)
	r.Put("/product/{id}", h.updateProduct)
	r.Delete("/product/{id}", h.deleteProduct)
	r.Get("/products", h.listProducts)

	r.Post("/order", h.createOrder)
	r.Get("/order/{id}", h.getOrder)
	r.Put("/order/{id}", h.updateOrder)
	r.Delete("/order/{id}", h.deleteOrder)

	return r
}
