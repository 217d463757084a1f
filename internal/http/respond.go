package http

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Responses keep the storefront's {success: ...} envelope so existing
// frontend pages keep working unchanged.

func respondJSON(w http.ResponseWriter, log *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn("failed to encode response", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, log *zap.Logger, status int, message string) {
	respondJSON(w, log, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}
