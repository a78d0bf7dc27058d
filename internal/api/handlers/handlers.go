// Package handlers turns HTTP requests into service calls and service
// results into JSON bodies.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/dom/crowd-translate/internal/api/respond"
	"github.com/dom/crowd-translate/internal/validation"
	"github.com/go-chi/chi/v5"
)

var errInvalidID = errors.New("id must be a positive integer")

// ValidationErrorBody is the 400 body for a request that failed validation.
type ValidationErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// decode reads a JSON body into dst and runs struct validation on it. It
// writes the 400 response itself and reports false when the request is bad.
func decode(w http.ResponseWriter, r *http.Request, v *validation.Validator, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if v == nil {
		return true
	}

	if err := v.Validate(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			respond.JSON(w, http.StatusBadRequest, ValidationErrorBody{
				Error:  "validation failed",
				Fields: verr.Fields,
			})
			return false
		}
		respond.Error(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	return true
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}

func urlID(r *http.Request, name string) (uint, error) {
	return parseID(chi.URLParam(r, name))
}

// optionalQueryID returns nil when the query parameter is absent.
func optionalQueryID(r *http.Request, name string) (*uint, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
