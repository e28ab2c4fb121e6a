package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultMatchesDocumentedKeys(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "ollama", cfg.JWright.LLM.Provider)
	assert.Equal(t, 5, cfg.JWright.Tasks.Implement.MaxRetries)
	assert.True(t, cfg.JWright.Tasks.Refactor.Enabled)
	assert.Equal(t, []string{"src/test/java"}, cfg.JWright.Watch.Paths)
	assert.Equal(t, "500ms", cfg.JWright.Watch.Debounce)
}

func TestLoadReturnsDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".jwright"), 0755))
	yamlContent := `
jwright:
  llm:
    provider: anthropic
    anthropic:
      api-key: sk-test
      model: claude-sonnet-4
  tasks:
    implement:
      max-retries: 3
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yamlContent), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.JWright.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.JWright.LLM.Anthropic.APIKey)
	assert.Equal(t, 3, cfg.JWright.Tasks.Implement.MaxRetries)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.JWright.Tasks.Refactor.Enabled)
	assert.Equal(t, []string{"src/test/java"}, cfg.JWright.Watch.Paths)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".jwright"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("not: [valid: yaml"), 0644))

	_, err := Load(dir)
	require.Error(t, err)
}

func TestWriteDefaultThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteDefault(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFileName), path)

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), loaded)
}

func TestParseDurationFallsBackOnEmptyOrInvalid(t *testing.T) {
	assert.Equal(t, defaultDebounce, ParseDuration("", defaultDebounce))
	assert.Equal(t, defaultDebounce, ParseDuration("not-a-duration", defaultDebounce))
}

func TestWatchConfigDebounceDuration(t *testing.T) {
	w := WatchConfig{Debounce: "750ms"}
	assert.Equal(t, 750_000_000, int(w.DebounceDuration()))

	empty := WatchConfig{}
	assert.Equal(t, defaultDebounce, empty.DebounceDuration())
}

func TestLLMConfigProviderConfigSelectsActiveProvider(t *testing.T) {
	cfg := LLMConfig{
		Provider: "openai",
		OpenAI:   ProviderSettings{APIKey: "sk-openai", Model: "gpt-4o", Timeout: "30s"},
		Ollama:   ProviderSettings{Model: "qwen2.5-coder"},
	}
	pc := cfg.ProviderConfig()
	assert.Equal(t, "openai", pc.Provider)
	assert.Equal(t, "sk-openai", pc.APIKey)
	assert.Equal(t, "gpt-4o", pc.Model)
}
