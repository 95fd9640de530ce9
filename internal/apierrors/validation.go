package apierrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const invalidRequestMessage = "Invalid request"

// tagMessages formats a failed binding tag; %[1]s is the field and %[2]s the tag param
var tagMessages = map[string]string{
	"required": "%[1]s is required",
	"email":    "%[1]s must be a valid email address",
	"url":      "%[1]s must be a valid URL",
	"uuid":     "%[1]s must be a valid UUID",
	"max":      "%[1]s must be at most %[2]s characters",
	"oneof":    "%[1]s must be one of: %[2]s",
}

// ValidationError converts validator errors into a 400 APIError
func ValidationError(err error) *APIError {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return BadRequest(CodeInvalidInput, invalidRequestMessage)
	}
	return BadRequest(CodeInvalidInput, buildValidationMessage(validationErrs))
}

func buildValidationMessage(validationErrs validator.ValidationErrors) string {
	if len(validationErrs) == 1 {
		return fieldMessage(validationErrs[0])
	}

	messages := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		messages = append(messages, fieldMessage(fieldErr))
	}
	return "Validation failed: " + strings.Join(messages, "; ")
}

func fieldMessage(fieldErr validator.FieldError) string {
	format, ok := tagMessages[fieldErr.Tag()]
	if !ok {
		return fmt.Sprintf("%s failed validation (%s)", fieldErr.Field(), fieldErr.Tag())
	}
	if !strings.Contains(format, "%[2]s") {
		return fmt.Sprintf(format, fieldErr.Field())
	}
	return fmt.Sprintf(format, fieldErr.Field(), fieldErr.Param())
}
