package util

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// WithBodyAndStatus writes a JSON response with the given status. A nil body
// writes the status line only.
func WithBodyAndStatus(body interface{}, status int, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to encode response body")
	}
}

// WithErrorAndStatus writes the error text as a JSON error envelope.
func WithErrorAndStatus(err error, status int, w http.ResponseWriter) {
	WithBodyAndStatus(map[string]string{"error": err.Error()}, status, w)
}
