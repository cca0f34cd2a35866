package controller

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"carnes-boutique/apperrors"
	"carnes-boutique/logger"
)

// maxUploadBytes bounds price-list uploads
const maxUploadBytes = 25 << 20

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("❌ Failed to encode response", zap.Error(err))
	}
}

// writeError logs err against the request and writes the mapped HTTP error
func writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	appErr := apperrors.FromError(err)
	if appErr.Code >= http.StatusInternalServerError {
		logger.Error(r.Context(), "❌ "+handler+" failed", err)
	} else {
		logger.Warn(r.Context(), "⚠️  "+handler+" rejected", zap.Int("status", appErr.Code), zap.Error(err))
	}
	apperrors.HandleError(w, appErr)
}
