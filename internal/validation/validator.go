package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/wcarvalho/sms-expense-tracker/internal/models"

	"github.com/go-playground/validator/v10"
)

// isoDatePattern matches calendar dates formatted as YYYY-MM-DD
var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance for use with Echo
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// singleton instance of the validator
var instance *Validator

// GetValidator returns the singleton validator instance
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("transaction_category", validateTransactionCategory)
	_ = v.RegisterValidation("iso_date", validateISODate)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Custom validation functions

// validateTransactionCategory validates that a category is one of the cycle values
func validateTransactionCategory(fl validator.FieldLevel) bool {
	return models.IsValidCategory(fl.Field().String())
}

// validateISODate validates that a date string is formatted as YYYY-MM-DD
func validateISODate(fl validator.FieldLevel) bool {
	return isoDatePattern.MatchString(fl.Field().String())
}
