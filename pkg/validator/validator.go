package validator

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/KartikeAnuj/Disaster-Management/pkg/e"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	RegisterCustomValidations(validate)
}

// ValidateStruct runs the registered validations and converts the first
// field error into an e.ValidationError, so handlers can report the
// offending field.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return e.Validation(fieldName(fe), reason(fe))
	}

	return err
}

func fieldName(fe validator.FieldError) string {
	// StructNamespace looks like "CreateAlertRequest.Location.Lat"; drop the
	// root struct segment and lowercase the rest for the wire.
	parts := strings.Split(fe.StructNamespace(), ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "lat":
		return "must be between -90 and 90"
	case "lng":
		return "must be between -180 and 180"
	case "radius_km":
		return "must be non-negative"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
