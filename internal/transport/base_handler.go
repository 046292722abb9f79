package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/inventory-tracker/internal"
	"github.com/frahmantamala/inventory-tracker/pkg/logger"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response for failures that have no AppError.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)

	errorType := internal.ErrorTypeInternal
	switch status {
	case http.StatusBadRequest:
		errorType = internal.ErrorTypeValidation
	case http.StatusUnauthorized:
		errorType = internal.ErrorTypeUnauthorized
	case http.StatusForbidden:
		errorType = internal.ErrorTypeForbidden
	case http.StatusNotFound:
		errorType = internal.ErrorTypeNotFound
	}

	h.WriteJSON(w, status, internal.Response{Error: &internal.AppError{
		Type:    errorType,
		Code:    internal.ErrorCode(strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))),
		Message: message,
	}})
}

// HandleError maps err onto its HTTP status and error envelope. Anything
// that is not an AppError is reported as an internal error.
func (h *BaseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewInternalError("internal server error", err)
	}

	status, body := appErr.ToHTTPResponse()
	if status >= http.StatusInternalServerError {
		h.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	} else {
		h.Logger.WarnContext(r.Context(), "request rejected", "path", r.URL.Path, "type", appErr.Type, "code", appErr.Code)
	}
	h.WriteJSON(w, status, body)
}

// DecodeJSON reads a JSON request body into dst, rejecting unknown fields.
func (h *BaseHandler) DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return internal.NewValidationError("invalid request body: "+err.Error(), internal.ErrCodeValidationFailed)
	}
	return nil
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}
