package quizgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// LangchainQuizGenerator implements domain.QuizGenerator on top of any langchaingo model.
type LangchainQuizGenerator struct {
	llm         llms.Model
	temperature float64
	timeout     time.Duration
}

// NewLangchainQuizGenerator wraps llm. A zero timeout leaves the call bounded only by ctx.
func NewLangchainQuizGenerator(llm llms.Model, temperature float64, timeout time.Duration) (*LangchainQuizGenerator, error) {
	if llm == nil {
		return nil, errors.New("llm model cannot be nil")
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}
	return &LangchainQuizGenerator{
		llm:         llm,
		temperature: temperature,
		timeout:     timeout,
	}, nil
}

// NewGeminiModel creates a Google Gemini model through langchaingo
func NewGeminiModel(ctx context.Context, apiKey, model string) (llms.Model, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key cannot be empty")
	}
	if model == "" {
		return nil, errors.New("Gemini model name cannot be empty")
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return llm, nil
}

// NewOllamaModel creates a local Ollama model through langchaingo. JSON output mode is
// requested so the answer can be parsed directly.
func NewOllamaModel(serverURL, model string, httpClient *http.Client) (llms.Model, error) {
	if serverURL == "" {
		return nil, errors.New("Ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, errors.New("Ollama model name cannot be empty")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithFormat("json"),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	return llm, nil
}

// GenerateQuiz implements domain.QuizGenerator with a single attempt.
func (g *LangchainQuizGenerator) GenerateQuiz(ctx context.Context, title, text string) (*domain.QuizPayload, error) {
	l := logger.Get()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	prompt := BuildPrompt(title, text)
	l.Debug("Calling LLM for quiz generation", zap.String("title", title), zap.Int("prompt_length", len(prompt)))

	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(g.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
		}
		return nil, domain.NewLLMServiceError(fmt.Errorf("LLM call failed: %w", err))
	}
	l.Debug("Raw LLM response received", zap.String("raw_response", completion))

	payload, err := ParseQuizResponse(completion)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	l.Info("LLM generated structured quiz",
		zap.String("title", title),
		zap.Int("mcq", len(payload.MCQ)),
		zap.Int("fill", len(payload.Fill)),
	)
	return payload, nil
}

// Static assertion to ensure LangchainQuizGenerator implements QuizGenerator
var _ domain.QuizGenerator = (*LangchainQuizGenerator)(nil)
