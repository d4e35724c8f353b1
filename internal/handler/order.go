package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront-api/internal/domain/order"
	"github.com/xenking/storefront-api/internal/validate"
)

type orderItemRequest struct {
	productID                 int64
	quantity                  int
	hasProductID, hasQuantity bool
}

type orderRequest struct {
	customerID                 int64
	items                      []orderItemRequest
	hasCustomerID, hasItems    bool
}

func decodeOrderRequest(r *http.Request) (*orderRequest, error) {
	var req orderRequest
	err := decodeObject(r, func(d *jx.Decoder, key string) error {
		switch key {
		case "customer_id":
			id, err := d.Int64()
			req.customerID = id
			req.hasCustomerID = true
			return err
		case "order_items":
			req.hasItems = true
			return d.Arr(func(d *jx.Decoder) error {
				var it orderItemRequest
				if err := d.Obj(func(d *jx.Decoder, key string) error {
					var err error
					switch key {
					case "product_id":
						it.productID, err = d.Int64()
						it.hasProductID = true
					case "quantity":
						it.quantity, err = d.Int()
						it.hasQuantity = true
					default:
						err = d.Skip()
					}
					return err
				}); err != nil {
					return err
				}
				req.items = append(req.items, it)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// toItems validates per-item required fields and converts to domain items.
func (req *orderRequest) toItems() ([]order.Item, error) {
	items := make([]order.Item, 0, len(req.items))
	for _, it := range req.items {
		if err := validate.Required(
			validate.Field{Name: "product_id", Present: it.hasProductID},
			validate.Field{Name: "quantity", Present: it.hasQuantity},
		); err != nil {
			return nil, err
		}
		items = append(items, order.Item{ProductID: it.productID, Quantity: it.quantity})
	}
	return items, nil
}

// writeOrderError maps order domain errors onto status codes. Returns false
// when err is not an order domain error.
func writeOrderError(w http.ResponseWriter, err error) bool {
	var (
		pnfErr *order.ProductNotFoundError
		insErr *order.InsufficientStockError
		iqErr  *order.InvalidQuantityError
	)
	switch {
	case errors.Is(err, order.ErrNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
	case errors.Is(err, order.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, "Customer not found")
	case errors.As(err, &pnfErr):
		writeError(w, http.StatusNotFound, pnfErr.Error())
	case errors.As(err, &insErr):
		writeError(w, http.StatusBadRequest, insErr.Error())
	case errors.As(err, &iqErr):
		writeError(w, http.StatusBadRequest, iqErr.Error())
	case errors.Is(err, order.ErrEmptyItems):
		writeError(w, http.StatusBadRequest, order.ErrEmptyItems.Error())
	default:
		return false
	}
	return true
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Required(
		validate.Field{Name: "customer_id", Present: req.hasCustomerID},
		validate.Field{Name: "order_items", Present: req.hasItems},
	); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := req.toItems()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	o, err := h.orders.Place(r.Context(), req.customerID, items)
	if err != nil {
		if !writeOrderError(w, err) {
			internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusCreated, "Order created successfully",
		idField{name: "order_id", value: o.ID})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("order_id", func(e *jx.Encoder) { e.Int64(o.ID) })
			e.Field("order_date", func(e *jx.Encoder) {
				e.Str(o.OrderDate.UTC().Format(time.RFC3339))
			})
			e.Field("customer_id", func(e *jx.Encoder) { e.Int64(o.CustomerID) })
			e.Field("order_items", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, it := range o.Items {
						e.Obj(func(e *jx.Encoder) {
							e.Field("product_id", func(e *jx.Encoder) { e.Int64(it.ProductID) })
							e.Field("quantity", func(e *jx.Encoder) { e.Int(it.Quantity) })
						})
					}
				})
			})
		})
	})
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	req, err := decodeOrderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Required(
		validate.Field{Name: "order_items", Present: req.hasItems},
	); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := req.toItems()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.orders.ReplaceItems(r.Context(), id, items); err != nil {
		if !writeOrderError(w, err) {
			internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Order updated successfully")
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.Delete(r.Context(), id); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Order deleted successfully")
}
