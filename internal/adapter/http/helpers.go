// Package http adapts the DealerDesk services to HTTP using chi.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dealerdesk/dealerdesk/internal/domain"
	"github.com/dealerdesk/dealerdesk/internal/query"
)

// bodyLimit caps JSON request bodies.
const bodyLimit = 1 << 20

// readJSON decodes a JSON request body with a size limit.
func readJSON[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var v T
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		} else {
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return v, false
	}
	return v, true
}

// idParam parses a numeric URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", domain.ErrInvalidQuery, name)
	}
	return id, nil
}

// listParams parses the recognized list-query options. Page and limit below
// one are rejected here, before the planner runs.
func listParams(r *http.Request) (query.Params, error) {
	q := r.URL.Query()
	p := query.Params{Sort: q.Get("sort"), Filter: q.Get("filter")}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, fmt.Errorf("%w: page must be a positive integer", domain.ErrInvalidQuery)
		}
		p.Page = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, fmt.Errorf("%w: limit must be a positive integer", domain.ErrInvalidQuery)
		}
		p.Limit = n
	}
	if v := q.Get("includeDeleted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, fmt.Errorf("%w: includeDeleted must be a boolean", domain.ErrInvalidQuery)
		}
		p.IncludeDeleted = b
	}
	return p, nil
}

// listResponse is the envelope for paginated list endpoints.
type listResponse[T any] struct {
	Rows  []T `json:"rows"`
	Total int `json:"total"`
}

func writeList[T any](w http.ResponseWriter, rows []T, total int) {
	if rows == nil {
		rows = []T{}
	}
	writeJSON(w, http.StatusOK, listResponse[T]{Rows: rows, Total: total})
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeDomainError maps the domain sentinel errors to HTTP statuses. Errors
// outside the sentinel set are logged and reported as 500s without leaking
// internals to the client.
func writeDomainError(w http.ResponseWriter, err error, fallbackMsg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, fallbackMsg)
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, trimSentinel(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, trimSentinel(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, trimSentinel(err, domain.ErrInvalidQuery))
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// trimSentinel strips the sentinel prefix from a wrapped error message so
// clients see "price must be positive", not "validation: price must be
// positive".
func trimSentinel(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	if rest, ok := strings.CutSuffix(msg, ": "+sentinel.Error()); ok {
		return rest
	}
	return msg
}
