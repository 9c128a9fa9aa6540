package middleware

import (
	"ielts-reading/internal/repository"
	"ielts-reading/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware
const (
	ValidatedTestTypeKey = "validated_test_type"
	ValidatedLimitKey    = "validated_limit"
)

// DefaultAttemptsLimit is used when the limit query parameter is omitted
const DefaultAttemptsLimit = 20

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateTestTypeParam validates the :testType path parameter
func (vm *ValidationMiddleware) ValidateTestTypeParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		variant, errs := vm.validator.ValidateTestVariant("testType", c.Params("testType"))
		if len(errs) > 0 {
			return errs // This will be handled by ErrorHandler middleware
		}

		c.Locals(ValidatedTestTypeKey, variant)
		return c.Next()
	}
}

// ValidateLimitQuery validates the optional limit query parameter
func (vm *ValidationMiddleware) ValidateLimitQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, errs := vm.validator.ValidateLimit(c.Query("limit"), DefaultAttemptsLimit, repository.MaxAttemptsPage)
		if len(errs) > 0 {
			return errs
		}

		c.Locals(ValidatedLimitKey, limit)
		return c.Next()
	}
}
