package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIQuizGenerator implements domain.QuizGenerator with the OpenAI chat completions API.
type OpenAIQuizGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewOpenAIQuizGenerator creates a generator for apiKey. baseURL is optional and points the
// client at a compatible endpoint.
func NewOpenAIQuizGenerator(apiKey, model, baseURL string, temperature float64, timeout time.Duration) (*OpenAIQuizGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("openai API key cannot be empty")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	if temperature <= 0 {
		temperature = defaultTemperature
	}

	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return &OpenAIQuizGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: float32(temperature),
		timeout:     timeout,
	}, nil
}

// GenerateQuiz implements domain.QuizGenerator with a single attempt.
func (g *OpenAIQuizGenerator) GenerateQuiz(ctx context.Context, title, text string) (*domain.QuizPayload, error) {
	l := logger.Get()

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(title, text),
			},
		},
		Temperature: g.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, domain.NewLLMServiceError(fmt.Errorf("openai chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, domain.NewLLMServiceError(errors.New("openai returned no choices"))
	}

	payload, err := ParseQuizResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	l.Info("OpenAI generated structured quiz",
		zap.String("title", title),
		zap.String("model", g.model),
		zap.Int("mcq", len(payload.MCQ)),
		zap.Int("fill", len(payload.Fill)),
	)
	return payload, nil
}

var _ domain.QuizGenerator = (*OpenAIQuizGenerator)(nil)
