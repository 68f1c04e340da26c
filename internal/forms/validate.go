// Package forms performs the client-local validation of user input before
// anything is dispatched. A validation failure never reaches the network or
// the stores; it is surfaced inline, per field.
package forms

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"estatehub/client/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire name so messages line up with form inputs.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	v.RegisterValidation("propertystatus", func(fl validator.FieldLevel) bool {
		return models.ValidStatus(fl.Field().String())
	})
	v.RegisterValidation("propertytype", func(fl validator.FieldLevel) bool {
		return models.ValidType(fl.Field().String())
	})
	return v
}

// Validate checks a request struct and returns per-field messages, or nil
// when the input is valid.
func Validate(input interface{}) map[string]string {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"": err.Error()}
	}

	problems := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems[fe.Field()] = message(fe)
	}
	return problems
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "gte":
		return "Must not be negative"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "propertystatus":
		return fmt.Sprintf("Must be one of: %s", strings.Join(models.PropertyStatuses, ", "))
	case "propertytype":
		return fmt.Sprintf("Must be one of: %s", strings.Join(models.PropertyTypes, ", "))
	default:
		return "Invalid value"
	}
}
