// Package validator provides validation infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var countryCodePattern = regexp.MustCompile(`^[A-Za-z]{2}$`)

// Validator wraps the go-playground validator for structured validation.
type Validator struct {
	v *validator.Validate
}

// New creates a new Validator instance with the shared custom rules registered.
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("countrycode", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "" || countryCodePattern.MatchString(value)
	})
	return &Validator{v: v}
}

// Struct validates a struct based on validation tags.
func (val *Validator) Struct(s interface{}) error {
	return val.v.Struct(s)
}

// Var validates a single variable against a tag.
func (val *Validator) Var(field interface{}, tag string) error {
	return val.v.Var(field, tag)
}

// RegisterValidation registers a custom validation function.
func (val *Validator) RegisterValidation(tag string, fn validator.Func) error {
	return val.v.RegisterValidation(tag, fn)
}

// ValidateStruct implements gin's binding.StructValidator so request binding
// and explicit validation share one engine.
func (val *Validator) ValidateStruct(obj interface{}) error {
	if obj == nil {
		return nil
	}
	return val.v.Struct(obj)
}

// Engine returns the underlying validator.
func (val *Validator) Engine() interface{} {
	return val.v
}
