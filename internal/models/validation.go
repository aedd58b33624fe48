package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// MissingUserTextMessage is returned when userText is absent, empty or not a string
const MissingUserTextMessage = "Missing userText"

var validate = validator.New()

// ValidationError describes an invalid inbound request
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("validation failed on %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidationError reports whether err is, or wraps, a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateInboundRequest checks struct tags on an InboundRequest
func ValidateInboundRequest(req *InboundRequest) error {
	if req == nil {
		return &ValidationError{Field: "userText", Message: MissingUserTextMessage}
	}

	if err := validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Field() == "UserText" {
				return &ValidationError{Field: "userText", Message: MissingUserTextMessage, Err: err}
			}
			return &ValidationError{Field: fe.Field(), Message: fmt.Sprintf("failed on '%s' rule", fe.Tag()), Err: err}
		}
		return &ValidationError{Field: "body", Message: "Invalid request", Err: err}
	}

	return nil
}
