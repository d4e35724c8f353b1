package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront-api/internal/domain/customer"
	"github.com/xenking/storefront-api/internal/validate"
)

// customerRequest carries decoded customer fields with presence flags, so
// missing and empty fields can be told apart.
type customerRequest struct {
	name, email, phone          string
	hasName, hasEmail, hasPhone bool
}

func decodeCustomerRequest(r *http.Request) (*customerRequest, error) {
	var req customerRequest
	err := decodeObject(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			req.name, err = d.Str()
			req.hasName = true
		case "email":
			req.email, err = d.Str()
			req.hasEmail = true
		case "phone_number":
			req.phone, err = d.Str()
			req.hasPhone = true
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

// validateFormats checks email and phone shape for whichever fields the
// request supplied.
func (req *customerRequest) validateFormats() error {
	if req.hasEmail {
		if err := validate.Email(req.email); err != nil {
			return err
		}
	}
	if req.hasPhone {
		if err := validate.PhoneNumber(req.phone); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCustomerRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Required(
		validate.Field{Name: "name", Present: req.hasName},
		validate.Field{Name: "email", Present: req.hasEmail},
		validate.Field{Name: "phone_number", Present: req.hasPhone},
	); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := req.validateFormats(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.customers.Create(r.Context(), &customer.Customer{
		Name:        req.name,
		Email:       req.email,
		PhoneNumber: req.phone,
	})
	if err != nil {
		if errors.Is(err, customer.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already exists")
			return
		}
		internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusCreated, "Customer created successfully",
		idField{name: "customer_id", value: id})
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("id", func(e *jx.Encoder) { e.Int64(c.ID) })
			e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
			e.Field("email", func(e *jx.Encoder) { e.Str(c.Email) })
			e.Field("phone_number", func(e *jx.Encoder) { e.Str(c.PhoneNumber) })
		})
	})
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	req, err := decodeCustomerRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.validateFormats(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Partial update: load the record, overlay supplied fields, write back
	// the full record.
	c, err := h.customers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer not found")
			return
		}
		internalError(w, r, err)
		return
	}

	if req.hasName {
		c.Name = req.name
	}
	if req.hasEmail {
		c.Email = req.email
	}
	if req.hasPhone {
		c.PhoneNumber = req.phone
	}

	if err := h.customers.Update(r.Context(), c); err != nil {
		switch {
		case errors.Is(err, customer.ErrNotFound):
			writeError(w, http.StatusNotFound, "Customer not found")
		case errors.Is(err, customer.ErrEmailTaken):
			writeError(w, http.StatusConflict, "email already exists")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Customer updated successfully")
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	if err := h.customers.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, customer.ErrNotFound):
			writeError(w, http.StatusNotFound, "Customer not found")
		case errors.Is(err, customer.ErrHasOrders):
			writeError(w, http.StatusConflict, "customer has existing orders")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Customer deleted successfully")
}
