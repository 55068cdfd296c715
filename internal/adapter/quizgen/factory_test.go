package quizgen

import (
	"context"
	"testing"

	"wiki-quiz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled without key", func(t *testing.T) {
		g, err := NewFromConfig(ctx, config.LLMConfig{Provider: "gemini"})
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("none provider", func(t *testing.T) {
		g, err := NewFromConfig(ctx, config.LLMConfig{Provider: "none", APIKey: "k"})
		require.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("openai", func(t *testing.T) {
		g, err := NewFromConfig(ctx, config.LLMConfig{Provider: "openai", APIKey: "k", Model: "gpt-4o-mini"})
		require.NoError(t, err)
		assert.IsType(t, &OpenAIQuizGenerator{}, g)
	})

	t.Run("ollama", func(t *testing.T) {
		g, err := NewFromConfig(ctx, config.LLMConfig{Provider: "ollama", ServerURL: "http://localhost:11434", Model: "llama3"})
		require.NoError(t, err)
		assert.IsType(t, &LangchainQuizGenerator{}, g)
	})

	t.Run("ollama without model", func(t *testing.T) {
		g, err := NewFromConfig(ctx, config.LLMConfig{Provider: "ollama", ServerURL: "http://localhost:11434"})
		assert.Error(t, err)
		assert.Nil(t, g)
	})
}
