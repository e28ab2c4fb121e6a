package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultsToOllama(t *testing.T) {
	client, err := New(ProviderConfig{})
	require.NoError(t, err)
	_, ok := client.(*OllamaClient)
	assert.True(t, ok)
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(ProviderConfig{Provider: "bogus"})
	assert.Error(t, err)
}

func TestNewBuildsEachKnownProvider(t *testing.T) {
	for _, p := range []string{"openai", "anthropic", "gemini", "xai", "openrouter"} {
		client, err := New(ProviderConfig{Provider: p, APIKey: "key"})
		require.NoError(t, err, p)
		assert.NotNil(t, client, p)
	}
}
