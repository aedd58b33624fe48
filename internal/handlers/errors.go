package handlers

import (
	"errors"
	"net/http"

	"analyze-relay-api/internal/adapters/gemini"
	"analyze-relay-api/internal/models"
	"analyze-relay-api/internal/services"
)

// ErrMethodNotAllowed is returned for methods other than POST and OPTIONS
var ErrMethodNotAllowed = errors.New("method not allowed")

// StatusForError maps a relay error to the HTTP status returned to the caller.
// Upstream failures mirror the upstream status.
func StatusForError(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if upstreamErr, ok := gemini.AsUpstreamError(err); ok {
		return upstreamErr.StatusCode
	}

	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case isValidationError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Caller-facing messages for the relay's own sentinel errors
const (
	MethodNotAllowedMessage     = "Method not allowed"
	ConfigurationMissingMessage = "Missing GEMINI_API_KEY"
)

// ErrorMessage returns the message placed in the error envelope
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return MethodNotAllowedMessage
	case isConfigurationError(err):
		return ConfigurationMissingMessage
	}

	if upstreamErr, ok := gemini.AsUpstreamError(err); ok {
		return upstreamErr.Body
	}

	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}

	return err.Error()
}

// isValidationError checks if an error is a validation error
func isValidationError(err error) bool {
	return models.IsValidationError(err)
}

// isConfigurationError checks if an error is a configuration error
func isConfigurationError(err error) bool {
	return errors.Is(err, services.ErrConfigurationMissing)
}
