package middleware

import (
	"errors"
	"net/http"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

// ErrorResponse is the body of every non-validation error
type ErrorResponse struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Status    int                    `json:"status"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse lists every failed field of a request
type ValidationErrorResponse struct {
	Code      string                   `json:"code"`
	Message   string                   `json:"message"`
	Status    int                      `json:"status"`
	RequestID string                   `json:"request_id,omitempty"`
	Errors    []domain.ValidationError `json:"errors"`
}

// ErrorHandler renders validation, domain and fiber errors as JSON. Anything else
// becomes an opaque 500.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			return writeValidationErrors(c, validationErrs)
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return writeDomainError(c, domainErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Get().Warn("Request rejected by router",
				zap.String("path", c.Path()),
				zap.Int("status", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:      "HTTP_ERROR",
				Message:   fiberErr.Message,
				Status:    fiberErr.Code,
				RequestID: requestID(c),
			})
		}

		logger.Get().Error("Unhandled error",
			zap.String("path", c.Path()),
			zap.String("request_id", requestID(c)),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:      string(domain.CodeInternal),
			Message:   "Internal server error",
			Status:    http.StatusInternalServerError,
			RequestID: requestID(c),
		})
	}
}

func writeValidationErrors(c *fiber.Ctx, errs domain.ValidationErrors) error {
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	logger.Get().Warn("Request validation failed",
		zap.String("path", c.Path()),
		zap.Strings("fields", fields),
	)
	return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
		Code:      string(domain.CodeValidation),
		Message:   "Request validation failed",
		Status:    http.StatusBadRequest,
		RequestID: requestID(c),
		Errors:    errs,
	})
}

func writeDomainError(c *fiber.Ctx, domainErr *domain.DomainError) error {
	status := StatusForCode(domainErr.Code)

	fields := []zap.Field{
		zap.String("path", c.Path()),
		zap.String("code", string(domainErr.Code)),
		zap.Int("status", status),
		zap.Error(domainErr.Cause),
	}
	// Client mistakes are expected traffic; only server-side failures are errors
	if status >= http.StatusInternalServerError {
		logger.Get().Error(domainErr.Message, fields...)
	} else {
		logger.Get().Warn(domainErr.Message, fields...)
	}

	resp := ErrorResponse{
		Code:      string(domainErr.Code),
		Message:   domainErr.Message,
		Status:    status,
		RequestID: requestID(c),
	}
	if len(domainErr.Context) > 0 {
		resp.Details = domainErr.Context
	}
	return c.Status(status).JSON(resp)
}

// StatusForCode maps a domain error code to its HTTP status
func StatusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound, domain.CodeQuizNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeScrapeFailed,
		domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.CodeLLMServiceError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// requestID returns the id set by the requestid middleware, or "" when it is not installed
func requestID(c *fiber.Ctx) string {
	rid, _ := c.Locals(requestid.ConfigDefault.ContextKey).(string)
	return rid
}
