// Package validator registers custom validation rules with Gin's
// binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs all custom validators. Call once at startup before
// the first request is bound.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("month", validateMonth)
	}
}

// validateMonth accepts calendar month numbers 1 through 12.
func validateMonth(fl validator.FieldLevel) bool {
	m := fl.Field().Int()
	return m >= 1 && m <= 12
}
