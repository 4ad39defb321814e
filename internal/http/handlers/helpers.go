package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/squadup/internal/enrollment"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey    ContextKey = "dryRun"
	RequestIDKey ContextKey = "requestID"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// RequestIDFromContext returns the id assigned to the request by the params middleware.
func RequestIDFromContext(r *http.Request) string {
	id, _ := r.Context().Value(RequestIDKey).(string)
	return id
}

// errorResponse is the body of every failed JSON request.
type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StatusFor maps an enrollment error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, enrollment.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, enrollment.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, enrollment.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, enrollment.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, enrollment.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		// driver errors stay in the logs
		message = http.StatusText(status)
	}
	log.Warn("Request failed", "requestID", RequestIDFromContext(r), "url", r.URL.Path, "status", status, "error", err)
	writeJSON(w, status, errorResponse{Kind: enrollment.Kind(err), Message: message})
}

// tournamentID reads the {tournamentID} path segment.
func tournamentID(r *http.Request) (int64, error) {
	return parseID(r.PathValue("tournamentID"))
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid tournament id %q", enrollment.ErrInvalidRequest, raw)
	}
	return id, nil
}
