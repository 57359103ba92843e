package response

import (
	"net/http"

	"careerboard/pkg/logger"

	"github.com/goccy/go-json"
)

// ErrorBody is the shape of every error answered by the API.
type ErrorBody struct {
	Detail any `json:"detail"`
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Sugar.Errorf("Failed to encode response: %v", err)
	}
}

// Error writes {"detail": detail} with the given status.
func Error(w http.ResponseWriter, status int, detail any) {
	JSON(w, status, ErrorBody{Detail: detail})
}

// InternalError logs err and answers a generic 500.
func InternalError(w http.ResponseWriter, msg string, err error) {
	logger.Sugar.Errorf("%s: %v", msg, err)
	Error(w, http.StatusInternalServerError, "Internal server error")
}
