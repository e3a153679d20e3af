package middleware

import (
	"encoding/json"
	"net/http"

	"shared-finance-go/internal/domain/apperr"
	"shared-finance-go/pkg/logger"
)

func logAppError(log logger.Logger, message string, err error, args ...any) {
	if apperr.IsInternal(err) {
		log.InternalError(message, err, args...)
		return
	}
	log.BusinessError(message, err, args...)
}

func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperr.Classify(err)
	writeError(w, appErr.Kind.HTTPStatus(), string(appErr.Kind), appErr.Code, appErr.Message)
}

func writeError(w http.ResponseWriter, status int, kind, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"kind":    kind,
			"code":    code,
			"message": message,
		},
	})
}
