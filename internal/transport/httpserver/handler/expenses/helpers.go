package expenses

import (
	"net/http"

	"shared-finance-go/internal/domain/apperr"
	commonhandler "shared-finance-go/internal/transport/httpserver/handler/common"
)

var errInvalidQuery = apperr.New(apperr.KindBadRequest, "invalid_query", "invalid query parameter")

func (h *Handlers) writeError(w http.ResponseWriter, message string, err error, args ...any) {
	commonhandler.WriteError(w, h.log, message, err, args...)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeAndValidate(r *http.Request, dst interface{}) error {
	return commonhandler.DecodeAndValidate(r, dst)
}

func (h *Handlers) scope(w http.ResponseWriter, r *http.Request, op string) (string, string, bool) {
	return commonhandler.RequestScope(w, r, h.log, op)
}
