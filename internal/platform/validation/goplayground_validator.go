package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type PlaygroundValidator struct {
	v *validator.Validate
}

var _ Validator = (*PlaygroundValidator)(nil)

// NewGoPlaygroundValidator reports fields by their json names.
func NewGoPlaygroundValidator() *PlaygroundValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	return &PlaygroundValidator{
		v: v,
	}
}

// ValidateStruct returns a map of field name to message, or nil when s is valid.
func (va *PlaygroundValidator) ValidateStruct(s any) map[string]string {
	err := va.v.Struct(s)
	if err == nil {
		return nil
	}

	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return map[string]string{"_": err.Error()}
	}

	errMap := make(map[string]string, len(valErrs))
	for _, e := range valErrs {
		errMap[e.Field()] = validationMessage(e)
	}

	return errMap
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", e.Field(), e.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters long", e.Field(), e.Param())
	case "hexadecimal":
		return fmt.Sprintf("%s must be hexadecimal", e.Field())
	case "eqfield":
		return fmt.Sprintf("%s should match %s", e.Field(), strings.ToLower(e.Param()))
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}
