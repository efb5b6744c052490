package api

import (
	"encoding/json"
	"errors"

	"github.com/Carma123/Mental-Health-Support-System/internal"
)

// The backend is not consistent about its error envelope: booking routes
// use {"error": ...}, auth and contact routes use {"msg": ...}, and a few
// use {"message": ...}. Try them in that order.
var errorFields = []string{"error", "msg", "message"}

func serverMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, field := range errorFields {
		if v, ok := payload[field].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// ErrorMessage returns the server-reported message when err wraps an
// AppError with one, else the fallback. Transport errors always yield the
// fallback.
func ErrorMessage(err error, fallback string) string {
	var appErr *internal.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
