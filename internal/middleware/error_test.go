package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"wiki-quiz/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handlerErr error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(requestid.New())
	app.Use(RequestLogger())
	app.Get("/boom", func(c *fiber.Ctx) error {
		return handlerErr
	})
	return app
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"quiz not found", domain.NewQuizNotFoundError("01H"), http.StatusNotFound, "QUIZ_NOT_FOUND"},
		{"scrape failed", domain.NewScrapeFailedError("u", errors.New("404")), http.StatusBadRequest, "SCRAPE_FAILED"},
		{"llm", domain.NewLLMServiceError(errors.New("quota")), http.StatusServiceUnavailable, "LLM_SERVICE_ERROR"},
		{"internal", domain.NewInternalError("db down", errors.New("x")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"wrapped domain error", fmt.Errorf("outer: %w", domain.NewInvalidInputError("bad")), http.StatusBadRequest, "INVALID_INPUT"},
		{"fiber error", fiber.NewError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(tt.err)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
			assert.Equal(t, resp.Header.Get(fiber.HeaderXRequestID), body.RequestID)
		})
	}
}

func TestStatusForCode(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusForCode(domain.CodeNotFound))
	assert.Equal(t, http.StatusBadRequest, StatusForCode(domain.CodeOutOfRange))
	assert.Equal(t, http.StatusServiceUnavailable, StatusForCode(domain.CodeLLMServiceError))
	assert.Equal(t, http.StatusInternalServerError, StatusForCode(domain.ErrorCode("SOMETHING_NEW")))
}

func TestErrorHandler_DomainContext(t *testing.T) {
	app := newTestApp(domain.NewQuizNotFoundError("01HXYZ"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "01HXYZ", body.Details["quiz_id"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	app := newTestApp(domain.ValidationErrors{domain.NewMissingFieldError("url")})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, string(domain.CodeValidation), body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "url", body.Errors[0].Field)
}

func TestValidationMiddleware_ValidateQuizID(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	vm := NewValidationMiddleware()
	app.Get("/quiz/:id", vm.ValidateQuizID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(ValidatedQuizIDKey).(string))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quiz/01HZ3V8Q6J0W9N4C2R7XKQ5B1D", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "01HZ3V8Q6J0W9N4C2R7XKQ5B1D", string(body))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/quiz/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
