package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorPayload struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details []FieldError `json:"details,omitempty"`
}

// ErrorResponse is the envelope every non-2xx response uses.
type ErrorResponse struct {
	Error ErrorPayload `json:"error"`
}

func NewError(code, message string, details ...FieldError) ErrorResponse {
	return ErrorResponse{Error: ErrorPayload{Code: code, Message: message, Details: details}}
}

func NotFoundError(message string) ErrorResponse {
	return NewError("NOT_FOUND", message)
}

// InternalError deliberately hides the underlying failure from clients;
// handlers log the cause before responding.
func InternalError() ErrorResponse {
	return NewError("INTERNAL_ERROR", "Internal Server Error")
}

// ValidationError maps a gin binding failure onto the structured
// field-error list clients expect.
func ValidationError(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewError("VALIDATION_ERROR", "Invalid request")
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   strings.ToLower(fe.Field()[:1]) + fe.Field()[1:],
			Message: fieldMessage(fe),
		})
	}
	return NewError("VALIDATION_ERROR", "Invalid request", details...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "datetime":
		return "must match format " + fe.Param()
	default:
		return "is invalid"
	}
}
