package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	appErr "github.com/samims/notification-api/internal/errors"
)

const maxBodyBytes = 1 << 20

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// respondError writes {"error": <kind>, "message": <text>}. Internal
// failures are logged and answered without detail.
func respondError(w http.ResponseWriter, logger *slog.Logger, err error) {
	status := appErr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", slog.Any("error", err))
	}
	respondStatus(w, status, appErr.Message(err))
}

func respondStatus(w http.ResponseWriter, status int, message string) {
	kind := strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	respondJSON(w, status, map[string]string{"error": kind, "message": message})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return appErr.NewValidation("request body is empty")
		}
		return appErr.NewValidation("invalid request body: %v", err)
	}
	return nil
}
