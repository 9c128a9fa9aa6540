package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"ielts-reading/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance. Field names in errors follow the json tags.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// ValidateStruct checks the validate tags of s. It returns nil when s is valid.
func (v *Validator) ValidateStruct(s interface{}) domain.ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{{
			Field:   "body",
			Code:    domain.CodeInvalidFormat,
			Message: err.Error(),
		}}
	}

	var result domain.ValidationErrors
	for _, fe := range fieldErrs {
		result = append(result, toDomainError(fe))
	}
	return result
}

func toDomainError(fe validator.FieldError) domain.ValidationError {
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(fe.Field())
	case "min":
		return domain.ValidationError{
			Field:   fe.Field(),
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at least %s, got %v", fe.Field(), fe.Param(), fe.Value()),
		}
	case "max":
		return domain.ValidationError{
			Field:   fe.Field(),
			Code:    domain.CodeOutOfRange,
			Message: fmt.Sprintf("%s must be at most %s, got %v", fe.Field(), fe.Param(), fe.Value()),
		}
	default:
		return domain.NewInvalidFormatError(fe.Field(), fe.Value())
	}
}

// ValidateTestVariant parses the testType field. The field is reported as missing when blank.
func (v *Validator) ValidateTestVariant(field, value string) (domain.TestVariant, domain.ValidationErrors) {
	if strings.TrimSpace(value) == "" {
		return "", domain.ValidationErrors{domain.NewMissingFieldError(field)}
	}
	variant, err := domain.ParseTestVariant(value)
	if err != nil {
		return "", domain.ValidationErrors{domain.NewInvalidFormatError(field, value)}
	}
	return variant, nil
}

// ValidateLimit parses an optional positive limit query parameter, falling back to def
func (v *Validator) ValidateLimit(raw string, def, max int) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
	}
	if n < 1 || n > max {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("limit", n, 1, max)}
	}
	return n, nil
}
