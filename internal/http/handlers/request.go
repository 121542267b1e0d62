package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/adboard-be/internal/apperr"
	"github.com/hongminglow/adboard-be/internal/http/respond"
	"github.com/hongminglow/adboard-be/internal/validate"
)

const maxBodyBytes = 1 << 20

// handlerFunc is an http handler that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts fn to net/http, translating any returned error into the
// uniform error response.
func handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			respond.Error(w, r, err)
		}
	}
}

// decodePayload reads the body as a JSON object. A JSON null decodes to an
// empty payload.
func decodePayload(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, apperr.Validation("invalid JSON payload", "invalid JSON payload")
	}
	if raw == nil {
		raw = map[string]any{}
	}
	return raw, nil
}

// decodeAndValidate decodes the body and checks it against shape.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, shape validate.Shape) (validate.Fields, error) {
	raw, err := decodePayload(w, r)
	if err != nil {
		return nil, err
	}
	fields, err := validate.Payload(raw, shape)
	if err != nil {
		var verr *validate.Error
		if errors.As(err, &verr) {
			return nil, apperr.Validation(verr.Error(), verr.Violations)
		}
		return nil, apperr.Wrap(err, "validate payload")
	}
	return fields, nil
}

// pathID parses the {id} route parameter. Anything but a positive integer
// names no resource and yields notFound.
func pathID(r *http.Request, notFound string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.E(apperr.NotFound, notFound)
	}
	return id, nil
}
