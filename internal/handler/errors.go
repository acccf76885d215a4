package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/pkordes/wanderlust/internal/domain"
)

// ErrorDetail is the body of every error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON envelope for errors: {"error":{"code","message"}}.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// notFoundBody returns an ErrorResponse for a missing resource.
// The caller supplies the human-readable message (e.g. "trip not found")
// because the handler is the layer that knows what was being looked up.
func notFoundBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}}
}

// validationBody returns an ErrorResponse for a domain validation failure.
// The message is extracted from the wrapped domain.ErrValidation error.
func validationBody(err error) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}}
}

// requestBody returns an ErrorResponse for a bad request rejected before
// reaching the service layer (e.g. missing or malformed body).
func requestBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}}
}

func confirmationBody(message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: "confirmation_required", Message: message}}
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel error.
// e.g. "service.TripStore.Create: validation error: start date must be YYYY-MM-DD" → "start date must be YYYY-MM-DD"
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 && len(msg) > i+len(prefix) {
		return msg[i+len(prefix):]
	}
	return msg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a service error onto the envelope. notFound names the
// resource for 404s. Anything unrecognised is logged and becomes a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, notFoundBody(notFound))
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
	case errors.Is(err, domain.ErrConfirmationRequired):
		writeJSON(w, http.StatusConflict, confirmationBody("repeat the request with confirm=true"))
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge,
			ErrorResponse{Error: ErrorDetail{Code: "payload_too_large", Message: "request body too large"}})
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError,
			ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
	}
}

// decodeJSON reads a JSON request body into v. An empty body is rejected
// unless optional is set.
func decodeJSON(r *http.Request, v any, optional bool) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if optional && errors.Is(err, io.EOF) {
			return nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return errors.New("request body is not valid JSON: " + err.Error())
	}
	return nil
}

// rejectBody answers a request whose body could not be decoded.
func (s *Server) rejectBody(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusUnprocessableEntity, requestBody(err.Error()))
}
