package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "construlink/internal/shared/errors"
)

// BindingError converts a gin binding failure into a validation error whose
// details name the offending fields instead of dumping the raw validator
// output at the caller.
func BindingError(err error) *apperrors.AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.NewValidationError("invalid request body", err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		messages = append(messages, fieldErrorMessage(fieldError))
	}

	return apperrors.NewValidationError("invalid request body", strings.Join(messages, "; "))
}

func fieldErrorMessage(fe validator.FieldError) string {
	field := jsonFieldName(fe)
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters long", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation for '%s'", field, fe.Tag())
	}
}

// jsonFieldName lowercases the struct field the way the json tags spell it.
// Gin's binding validator reports Go field names, so snake_case the common
// TwoWord cases rather than registering a tag name function on gin's
// private validator instance.
func jsonFieldName(fe validator.FieldError) string {
	var out strings.Builder
	prevUpper := true
	for _, r := range fe.Field() {
		if r >= 'A' && r <= 'Z' {
			if !prevUpper {
				out.WriteByte('_')
			}
			out.WriteRune(r + ('a' - 'A'))
			prevUpper = true
		} else {
			out.WriteRune(r)
			prevUpper = false
		}
	}
	return out.String()
}
