package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
)

// maxBodyBytes caps request body size; these payloads are tiny.
const maxBodyBytes = 1 << 20

// decodeObject reads the request body and iterates the top-level JSON
// object, calling field for each key. The callback tracks which fields were
// present so handlers can run the required-fields check afterwards.
func decodeObject(r *http.Request, field func(d *jx.Decoder, key string) error) error {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrap(err, "read body")
	}
	d := jx.DecodeBytes(data)
	if err := d.Obj(field); err != nil {
		return errors.Wrap(err, "decode body")
	}
	return nil
}

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// writeJSON encodes a response with the given encoder callback.
func writeJSON(w http.ResponseWriter, status int, encode func(e *jx.Encoder)) {
	var e jx.Encoder
	encode(&e)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

// writeError responds with {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("error", func(e *jx.Encoder) { e.Str(msg) })
		})
	})
}

// writeMessage responds with {"message": msg} and optional id fields.
func writeMessage(w http.ResponseWriter, status int, msg string, fields ...idField) {
	writeJSON(w, status, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
			for _, f := range fields {
				e.Field(f.name, func(e *jx.Encoder) { e.Int64(f.value) })
			}
		})
	})
}

type idField struct {
	name  string
	value int64
}

// internalError logs the failure and responds with a generic 500. Detail
// stays in the logs; callers only learn that the request failed.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	zctx.From(r.Context()).Error("Request failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
