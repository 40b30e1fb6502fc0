package handler

import (
	"net/http"
	"strings"
)

// errorResponse is the uniform error body: {"error":{"code","message"}}.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError writes the uniform error body with the given status code.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: errorDetail{Code: code, Message: message}})
}

// notFound reports a missing resource. The caller supplies the
// human-readable message (e.g. "place not found") because the handler is
// the layer that knows what was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, "not_found", message)
}

// validation reports a request rejected by business rule validation,
// extracting the human-readable part from the wrapped sentinel error.
func validation(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
}

// badRequest reports a request rejected before reaching the planner
// (e.g. missing or malformed body).
func badRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, "validation_error", message)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "validation error: name is required" → "name is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, marker := range []string{"validation error: ", "import validation error: "} {
		if i := strings.Index(msg, marker); i >= 0 {
			return msg[i+len(marker):]
		}
	}
	return msg
}
