package models

import (
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// NewReadingValidator returns a validator enforcing Reading's write-time invariants
// against the given allow-list.
func NewReadingValidator(allowed Locations) *validator.Validate {
	v := validator.New()

	_ = v.RegisterValidation("allowed_location", func(fl validator.FieldLevel) bool {
		return allowed.Contains(fl.Field().String())
	})

	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		switch field.Kind() {
		case reflect.Float32, reflect.Float64:
			f := field.Float()
			return !math.IsNaN(f) && !math.IsInf(f, 0)
		default:
			return true
		}
	})

	return v
}
