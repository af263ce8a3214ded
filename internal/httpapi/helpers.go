package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

const (
	msgInternal      = "Internal server error"
	msgRouteNotFound = "Route not found"
	msgTaskNotFound  = "Task not found"
	msgTableNotFound = "Table not found"
	msgQueryFailed   = "Query execution failed"
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("invalid JSON: empty body")
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON: multiple JSON values")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeValidationErrors(w http.ResponseWriter, ve *validation.ValidationError) {
	writeJSON(w, http.StatusBadRequest, ve)
}

// writeServiceError maps a service failure to a status code and body.
// notFound is the message used when the error is a not-found error.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	if ve, ok := validation.AsValidationError(err); ok {
		writeValidationErrors(w, ve)
		return
	}

	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		writeError(w, http.StatusBadRequest, apperrors.GetUserMessage(err))
	case apperrors.ErrorTypeNotFound:
		writeError(w, http.StatusNotFound, notFound)
	case apperrors.ErrorTypePolicy, apperrors.ErrorTypePermission:
		writeError(w, http.StatusForbidden, apperrors.GetUserMessage(err))
	case apperrors.ErrorTypeNotInitialized:
		writeError(w, http.StatusServiceUnavailable, apperrors.GetUserMessage(err))
	case apperrors.ErrorTypeTimeout:
		s.logError(r, err)
		writeError(w, http.StatusGatewayTimeout, apperrors.GetUserMessage(err))
	default:
		s.logError(r, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

func (s *Server) logError(r *http.Request, err error) {
	if !apperrors.ShouldLogError(err) {
		return
	}
	s.logger.LogAttrs(r.Context(), slog.LevelError, "request failed",
		slog.String("req_id", r.Header.Get(requestIDHeader)),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("code", apperrors.GetErrorCode(err)),
		slog.Any("err", err),
	)
}
