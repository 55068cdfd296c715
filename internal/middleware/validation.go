package middleware

import (
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidatedQuizIDKey is the fiber local holding the checked :id parameter
const ValidatedQuizIDKey = "validated_quiz_id"

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

// ValidateQuizID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateQuizID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		quizID := c.Params("id")

		if errors := vm.validator.ValidateQuizID(quizID); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}

		c.Locals(ValidatedQuizIDKey, quizID)
		return c.Next()
	}
}
