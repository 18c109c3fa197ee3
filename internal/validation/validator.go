// Package validation checks outbound payloads before they reach the remote
// API, using go-playground/validator with JSON field names in messages.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrValidation is matched by every *Error via errors.Is.
var ErrValidation = errors.New("validation failed")

// Error lists the offending fields, keyed by JSON name.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// Validator wraps go-playground/validator.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the "halfstep" rule registered.
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("halfstep", func(fl validator.FieldLevel) bool {
		return IsHalfStep(fl.Field().Float())
	})

	return &Validator{v: v}
}

// IsHalfStep reports whether f is a whole multiple of 0.5.
func IsHalfStep(f float64) bool {
	doubled := f * 2
	return doubled == math.Trunc(doubled)
}

// Validate validates a struct and returns an *Error on failure.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fields[e.Field()] = friendlyMessage(e)
	}
	return &Error{Fields: fields}
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", e.Param())
	case "halfstep":
		return "must be a multiple of 0.5"
	case "eqfield":
		return "must match " + e.Param()
	default:
		return "is invalid"
	}
}
