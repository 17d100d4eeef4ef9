package adapthttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/Geovany-dotcom/Backend2/internal/app"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeServiceError maps the application sentinel errors to HTTP statuses.
// Anything unrecognised is a database or infrastructure fault: it is logged
// server-side and reported as a bare 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrInvalidCredentials), errors.Is(err, app.ErrNotCustomer):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, app.ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, app.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrInsufficientStock), errors.Is(err, app.ErrValidation):
		writeError(w, http.StatusBadRequest, err)
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// clientIP strips the port from the remote address.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
