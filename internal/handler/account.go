package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/storefront-api/internal/domain/account"
	"github.com/xenking/storefront-api/internal/domain/customer"
	"github.com/xenking/storefront-api/internal/validate"
)

type accountRequest struct {
	username, password                     string
	customerID                             int64
	hasUsername, hasPassword, hasCustomerID bool
}

func decodeAccountRequest(r *http.Request) (*accountRequest, error) {
	var req accountRequest
	err := decodeObject(r, func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "username":
			req.username, err = d.Str()
			req.hasUsername = true
		case "password":
			req.password, err = d.Str()
			req.hasPassword = true
		case "customer_id":
			req.customerID, err = d.Int64()
			req.hasCustomerID = true
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

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAccountRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Required(
		validate.Field{Name: "username", Present: req.hasUsername},
		validate.Field{Name: "password", Present: req.hasPassword},
		validate.Field{Name: "customer_id", Present: req.hasCustomerID},
	); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.accounts.Create(r.Context(), &account.Account{
		Username:   req.username,
		Password:   req.password,
		CustomerID: req.customerID,
	})
	if err != nil {
		switch {
		case errors.Is(err, account.ErrCustomerNotFound):
			writeError(w, http.StatusNotFound, "Customer not found")
		case errors.Is(err, account.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username already exists")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusCreated, "Customer account created successfully",
		idField{name: "account_id", value: id})
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	a, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer account not found")
			return
		}
		internalError(w, r, err)
		return
	}

	// The read embeds the owning customer's contact details. The FK
	// guarantees the row exists.
	c, err := h.customers.GetByID(r.Context(), a.CustomerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			// Account row outliving its customer means the cascade is broken.
			internalError(w, r, errors.Errorf("account %d references missing customer %d", a.ID, a.CustomerID))
			return
		}
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("account_id", func(e *jx.Encoder) { e.Int64(a.ID) })
			e.Field("username", func(e *jx.Encoder) { e.Str(a.Username) })
			e.Field("customer", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("name", func(e *jx.Encoder) { e.Str(c.Name) })
					e.Field("email", func(e *jx.Encoder) { e.Str(c.Email) })
					e.Field("phone_number", func(e *jx.Encoder) { e.Str(c.PhoneNumber) })
				})
			})
		})
	})
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	req, err := decodeAccountRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, account.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer account not found")
			return
		}
		internalError(w, r, err)
		return
	}

	if req.hasUsername {
		a.Username = req.username
	}
	if req.hasPassword {
		a.Password = req.password
	}

	if err := h.accounts.Update(r.Context(), a); err != nil {
		switch {
		case errors.Is(err, account.ErrNotFound):
			writeError(w, http.StatusNotFound, "Customer account not found")
		case errors.Is(err, account.ErrUsernameTaken):
			writeError(w, http.StatusConflict, "username already exists")
		default:
			internalError(w, r, err)
		}
		return
	}

	writeMessage(w, http.StatusOK, "Customer account updated successfully")
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	if err := h.accounts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, account.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Customer account not found")
			return
		}
		internalError(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "Customer account deleted successfully")
}
