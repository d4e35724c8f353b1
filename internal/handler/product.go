package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-api/internal/domain/product"
	"github.com/xenking/storefront-api/internal/validate"
)

type productRequest struct {
	name                        string
	price                       decimal.Decimal
	stock                       int
	hasName, hasPrice, hasStock bool
}

func decodeProductRequest(r *http.Request) (*productRequest, error) {
	var req productRequest
	err := decodeObject(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			req.name, err = d.Str()
			req.hasName = true
		case "price":
			// Decode the raw number so values like 19.99 survive exactly.
			var num jx.Num
			num, err = d.Num()
			if err == nil {
				req.price, err = decimal.NewFromString(string(num))
			}
			req.hasPrice = true
		case "stock_level":
			req.stock, err = d.Int()
			req.hasStock = true
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (req *productRequest) validateValues() error {
	if req.hasPrice {
		if err := validate.NonNegativePrice(req.price); err != nil {
			return err
		}
	}
	if req.hasStock {
		if err := validate.NonNegativeStock(req.stock); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	req, err := decodeProductRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Required(
		validate.Field{Name: "name", Present: req.hasName},
		validate.Field{Name: "price", Present: req.hasPrice},
	); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validateValues(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// stock_level defaults to zero when omitted.
	id, err := h.products.Create(r.Context(), &product.Product{
		Name:       req.name,
		Price:      req.price,
		StockLevel: req.stock,
	})
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Product created successfully",
		idField{name: "product_id", value: id})
}

func encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Int64(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Float64(p.Price.InexactFloat64()) })
		e.Field("stock_level", func(e *jx.Encoder) { e.Int(p.StockLevel) })
	})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) { encodeProduct(e, *p) })
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Arr(func(e *jx.Encoder) {
			for _, p := range products {
				encodeProduct(e, p)
			}
		})
	})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	req, err := decodeProductRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validateValues(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		internalError(w, r, err)
		return
	}

	if req.hasName {
		p.Name = req.name
	}
	if req.hasPrice {
		p.Price = req.price
	}
	if req.hasStock {
		p.StockLevel = req.stock
	}

	if err := h.products.Update(r.Context(), p); err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Product updated successfully")
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, product.ErrNotFound):
			writeError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, product.ErrReferenced):
			writeError(w, http.StatusConflict, "product is referenced by existing orders")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Product deleted successfully")
}
