package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	apperrors "expense-console/internal/errors"
	"expense-console/internal/models"
)

// Validator wraps the go-playground validator with the console's form rules
// and converts failures into field-level error maps.
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

// NewValidator creates a new validator instance with the custom form rules
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("notblank", validateNotBlank)
	_ = v.RegisterValidation("money", validateMoney)
	_ = v.RegisterValidation("simple_email", validateSimpleEmail)
	_ = v.RegisterValidation("role", validateRole)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Struct validates a form draft. On failure it returns a tagged validation
// error carrying one message per failing field; the mutation must not reach
// the backend in that case.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewValidation(map[string]string{"form": err.Error()})
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[fieldError.Field()] = messageForTag(fieldError)
	}
	return apperrors.NewValidation(fields)
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "email", "simple_email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "eqfield":
		return "does not match"
	case "money":
		return "must be a number greater than 0"
	case "role":
		return "must be a valid role"
	default:
		return "is invalid"
	}
}

// Custom validation functions

// validateNotBlank rejects strings that are empty after trimming whitespace
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// validateMoney validates that a raw form amount parses to a number > 0
func validateMoney(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	return amount.IsPositive()
}

// simpleEmailPattern is the deliberately loose local@domain.tld check used by
// the user forms. The stricter RFC check on auth forms comes from the built-in
// "email" tag.
var simpleEmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateSimpleEmail(fl validator.FieldLevel) bool {
	return simpleEmailPattern.MatchString(fl.Field().String())
}

// validateRole validates that a role is one of the known roles
func validateRole(fl validator.FieldLevel) bool {
	return models.IsValidRole(fl.Field().String())
}
