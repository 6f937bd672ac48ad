// Package response writes the JSON envelope shared by the API and the
// plain net/http endpoints that sit outside huma.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	domainerrors "github.com/agentraghav/local-library/internal/errors"
)

// Envelope wraps every JSON body. Failures carry Error and usually Code.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Success bool   `json:"success"`
}

// Error writes a failure envelope. code may be empty.
func Error(w http.ResponseWriter, status int, code domainerrors.Code, message string, logger *slog.Logger) {
	write(w, status, Envelope{Error: message, Code: string(code)}, logger)
}

func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, domainerrors.CodeNotFound, message, logger)
}

func write(w http.ResponseWriter, status int, env Envelope, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(env); err != nil && logger != nil {
		logger.Error("encode JSON response", "error", err)
	}
}
