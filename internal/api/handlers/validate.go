package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validationDetail turns the first field failure into a response message.
// Malformed input is rejected here, before any storage access.
func validationDetail(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		e := fieldErrs[0]
		switch e.Tag() {
		case "email":
			return "Invalid email address"
		case "min", "max":
			return fmt.Sprintf("Invalid value for field %q", strings.ToLower(e.Field()))
		default:
			return fmt.Sprintf("Field %q is required", strings.ToLower(e.Field()))
		}
	}
	return "Invalid input"
}
