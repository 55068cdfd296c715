package handler

import (
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/service"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Root godoc
// @Summary API information
// @Description Lists the available endpoints
// @Tags meta
// @Produce json
// @Success 200 {object} dto.RootResponse
// @Router / [get]
func (h *QuizHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.RootResponse{
		Message: "Welcome to the WikiQuiz API",
		Endpoints: map[string]string{
			"/generate_quiz": "POST - Generate a quiz from a Wikipedia article",
			"/history":       "GET - Fetch all saved quizzes",
			"/history/clear": "DELETE - Clear all saved quizzes",
			"/quiz/{id}":     "GET - Retrieve a quiz by ID",
			"/ping":          "GET - Health check",
		},
	})
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Scrapes a Wikipedia article and builds 10 multiple-choice and 10 fill-in-the-blank questions. The LLM is tried once; any failure falls back to the local generator.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL or title"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errors := h.validator.ValidateGenerateQuizRequest(req.URL); len(errors) > 0 {
		return errors
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), strings.TrimSpace(req.URL))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// GetHistory godoc
// @Summary List saved quizzes
// @Description Returns every stored quiz, newest first, without the questions
// @Tags history
// @Produce json
// @Success 200 {array} dto.HistoryItem
// @Failure 500 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	items, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(items)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns a stored quiz with its full payload
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quizID, ok := c.Locals(middleware.ValidatedQuizIDKey).(string)
	if !ok {
		quizID = c.Params("id")
	}

	quiz, err := h.service.GetQuiz(c.UserContext(), quizID)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// ClearHistory godoc
// @Summary Clear history
// @Description Deletes every stored quiz
// @Tags history
// @Produce json
// @Success 200 {object} dto.ClearHistoryResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /history/clear [delete]
func (h *QuizHandler) ClearHistory(c *fiber.Ctx) error {
	deleted, err := h.service.ClearHistory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.ClearHistoryResponse{
		Message: "All quiz history cleared successfully",
		Deleted: deleted,
	})
}

// Ping godoc
// @Summary Liveness check
// @Tags meta
// @Produce json
// @Success 200 {object} dto.PingResponse
// @Router /ping [get]
func (h *QuizHandler) Ping(c *fiber.Ctx) error {
	return c.JSON(dto.PingResponse{Status: "API running smoothly"})
}

// RegisterRoutes mounts the quiz endpoints on router
func (h *QuizHandler) RegisterRoutes(router fiber.Router) {
	vm := middleware.NewValidationMiddleware()

	router.Get("/", h.Root)
	router.Get("/ping", h.Ping)
	router.Post("/generate_quiz", h.GenerateQuiz)
	router.Get("/history", h.GetHistory)
	router.Delete("/history/clear", h.ClearHistory)
	router.Get("/quiz/:id", vm.ValidateQuizID(), h.GetQuiz)
}
