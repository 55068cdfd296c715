package quizgen

import (
	"context"
	"fmt"
	"net/http"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms"
)

// NewFromConfig returns the generator for the configured provider, or nil when the
// provider is disabled or has no credentials.
func NewFromConfig(ctx context.Context, llmCfg config.LLMConfig) (domain.QuizGenerator, error) {
	if !llmCfg.Enabled() {
		return nil, nil
	}

	switch llmCfg.Provider {
	case "openai":
		g, err := NewOpenAIQuizGenerator(llmCfg.APIKey, llmCfg.Model, llmCfg.ServerURL, llmCfg.Temperature, llmCfg.Timeout)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "gemini":
		return newLangchainFromConfig(llmCfg, func() (llms.Model, error) {
			return NewGeminiModel(ctx, llmCfg.APIKey, llmCfg.Model)
		})
	case "ollama":
		return newLangchainFromConfig(llmCfg, func() (llms.Model, error) {
			return NewOllamaModel(llmCfg.ServerURL, llmCfg.Model, &http.Client{Timeout: llmCfg.Timeout})
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", llmCfg.Provider)
	}
}

func newLangchainFromConfig(llmCfg config.LLMConfig, newModel func() (llms.Model, error)) (domain.QuizGenerator, error) {
	model, err := newModel()
	if err != nil {
		return nil, err
	}
	g, err := NewLangchainQuizGenerator(model, llmCfg.Temperature, llmCfg.Timeout)
	if err != nil {
		return nil, err
	}
	return g, nil
}
