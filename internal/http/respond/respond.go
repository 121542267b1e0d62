package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/adboard-be/internal/apperr"
	"github.com/hongminglow/adboard-be/internal/middleware"
)

// ErrorBody is the uniform error response.
type ErrorBody struct {
	Status  string `json:"status"`
	Message any    `json:"message"`
}

// JSON writes payload as the response body with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Error translates err into a status code and error body. Unclassified
// errors become a 500 whose cause is logged but never sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Wrap(err, "internal server error")
	}

	status := appErr.Kind.Status()
	body := appErr.Body()
	level := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
		body = "internal server error"
	}

	slog.Log(r.Context(), level, "request failed",
		"request_id", middleware.RequestIDFrom(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status", status,
		"kind", appErr.Kind.String(),
		"error", err.Error(),
	)

	JSON(w, status, ErrorBody{Status: "error", Message: body})
}
