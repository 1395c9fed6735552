package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/cardforge/server/internal/apperr"
	"github.com/cardforge/server/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a domain error to its HTTP status and a
// {success, message} body, logging backend errors (never returning their
// detail to the caller).
func writeError(w http.ResponseWriter, logs logging.Loggers, err error) {
	if appErr, ok := apperr.As(err); ok {
		if appErr.Kind == apperr.KindBackendError {
			logs.Error.Println(err)
		}
		writeJSON(w, appErr.HTTPStatus(), map[string]interface{}{
			"success": false,
			"message": appErr.Error(),
		})
		return
	}
	logs.Error.Println(err)
	writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
		"success": false,
		"message": "An internal error occurred.",
	})
}
