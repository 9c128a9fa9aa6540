package middleware

import (
	"errors"
	"net/http"

	"ielts-reading/internal/domain"
	"ielts-reading/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// upstreamErrorKey is the details key that carries the completion provider's message
const upstreamErrorKey = "upstream_error"

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every rejected request field
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// ErrorHandler turns errors returned by reading handlers into JSON responses
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			return writeValidationErrors(c, validationErrs)
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			if domainErr.Code == domain.CodeUpstreamFailure {
				return writeUpstreamFailure(c, domainErr)
			}
			return writeDomainError(c, domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Get().Warn("Fiber error occurred",
				zap.String("path", c.Path()),
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message))
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		logger.Get().Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func writeValidationErrors(c *fiber.Ctx, errs domain.ValidationErrors) error {
	logger.Get().Warn("Request rejected",
		zap.String("path", c.Path()),
		zap.Strings("fields", errs.Fields()))
	return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
		Code:    string(domain.CodeValidation),
		Message: "Request validation failed: " + errs.Error(),
		Status:  http.StatusBadRequest,
		Errors:  errs,
	})
}

// writeUpstreamFailure reports a failed completion call as a 500 whose only detail is the
// provider's message.
func writeUpstreamFailure(c *fiber.Ctx, err *domain.DomainError) error {
	upstream := upstreamMessage(err)
	logger.Get().Error("Completion provider failed",
		zap.String("path", c.Path()),
		zap.String("message", err.Message),
		zap.String(upstreamErrorKey, upstream))

	resp := ErrorResponse{
		Code:    string(domain.CodeUpstreamFailure),
		Message: err.Message,
		Status:  http.StatusInternalServerError,
	}
	if upstream != "" {
		resp.Details = map[string]interface{}{upstreamErrorKey: upstream}
	}
	return c.Status(http.StatusInternalServerError).JSON(resp)
}

func upstreamMessage(err *domain.DomainError) string {
	if msg, ok := err.Context[upstreamErrorKey].(string); ok && msg != "" {
		return msg
	}
	if err.Cause != nil {
		return err.Cause.Error()
	}
	return ""
}

func writeDomainError(c *fiber.Ctx, err *domain.DomainError) error {
	status := statusForCode(err.Code)
	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("code", string(err.Code)),
		zap.String("message", err.Message),
		zap.Error(err.Cause),
	}
	if status >= http.StatusInternalServerError {
		logger.Get().Error("Request failed", fields...)
	} else {
		logger.Get().Info("Request failed", fields...)
	}

	resp := ErrorResponse{
		Code:    string(err.Code),
		Message: err.Message,
		Status:  status,
	}
	if len(err.Context) > 0 {
		resp.Details = err.Context
	}
	return c.Status(status).JSON(resp)
}

func statusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound, domain.CodeResultNotFound:
		return http.StatusNotFound
	case domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
