package common

import (
	"encoding/json"
	"net/http"

	"shared-finance-go/internal/domain/apperr"
	"shared-finance-go/pkg/logger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Kind    apperr.Kind `json:"kind"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// WriteError classifies err, logs it at the level its kind deserves and
// writes the error envelope. Internal details never reach the response.
func WriteError(w http.ResponseWriter, log logger.Logger, message string, err error, args ...any) {
	appErr := apperr.Classify(err)
	if appErr.Kind == apperr.KindInternal {
		log.InternalError(message, err, args...)
	} else {
		log.BusinessError(message, err, args...)
	}
	writeJSON(w, appErr.Kind.HTTPStatus(), errorEnvelope{Error: errorBody{
		Kind:    appErr.Kind,
		Code:    appErr.Code,
		Message: appErr.Message,
	}})
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	writeJSON(w, status, payload)
}

func DecodeJSON(r *http.Request, dst interface{}) error {
	return decodeJSON(r, dst)
}
