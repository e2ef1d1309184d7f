// Package validation provides struct validation using go-playground/validator
package validation

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	rerrors "github.com/yshengliao/linkroute/errors"
	"github.com/yshengliao/linkroute/router"
)

// Validator wraps go-playground/validator
type Validator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator instance with custom rules
func NewValidator() *Validator {
	v := validator.New()

	// Report fields by their yaml names so messages match the files users edit
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" || name == "" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	RegisterCustomValidators(v)

	return &Validator{
		validator: v,
	}
}

// Validate validates a struct
func (v *Validator) Validate(i any) error {
	if err := v.validator.Struct(i); err != nil {
		return NewValidationError(err)
	}
	return nil
}

// getValidationMessage returns a custom error message for validation errors
func getValidationMessage(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, param)
	case "routepattern":
		return fmt.Sprintf("%s must be a valid route pattern", field)
	case "discriminator":
		return fmt.Sprintf("%s must be a scheme or host name", field)
	case "hostname_port":
		return fmt.Sprintf("%s must be a host:port address", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}

// RegisterCustomValidators registers all custom validation rules
func RegisterCustomValidators(v *validator.Validate) {
	// Route pattern validator: the pattern must compile
	v.RegisterValidation("routepattern", func(fl validator.FieldLevel) bool {
		_, err := router.Compile(fl.Field().String(), nil)
		return err == nil
	})

	// Discriminator validator: a URL scheme or a host name
	v.RegisterValidation("discriminator", func(fl validator.FieldLevel) bool {
		return IsDiscriminator(fl.Field().String())
	})
}

// IsDiscriminator reports whether s can name a scheme or a host.
func IsDiscriminator(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
		case r == '.' || r == '-' || r == '+' || r == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// ValidationError represents a validation error
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

// NewValidationError creates a validation error from validator errors
func NewValidationError(err error) *ValidationError {
	ve := &ValidationError{
		Errors: make(map[string]string),
	}

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrors {
			field := fieldPath(e.Namespace())
			ve.Errors[field] = getValidationMessage(field, e.Tag(), e.Param())
		}
	}

	return ve
}

// fieldPath drops the root type name from a validator namespace
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// Error implements the error interface
func (ve *ValidationError) Error() string {
	if len(ve.Errors) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(ve.Errors))
	for field := range ve.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, ve.Errors[field])
	}
	return strings.Join(msgs, "; ")
}

// AsConfigurationError converts a validation failure into a configuration
// error carrying the failing fields as details.
func AsConfigurationError(err error, message string) *rerrors.ConfigurationError {
	if err == nil {
		return nil
	}
	ce := rerrors.NewConfigurationError(rerrors.CodeValidationFailed, message, err)
	if ve, ok := err.(*ValidationError); ok {
		for field, msg := range ve.Errors {
			ce.WithDetail(field, msg)
		}
	}
	return ce
}
