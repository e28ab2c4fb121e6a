// Package config loads jwright's single YAML configuration file and
// supplies the defaults every subsystem falls back to when a key is
// absent.
package config

import (
	"os"
	"path/filepath"
	"time"

	"jwright/internal/jwrighterr"
	"jwright/internal/logging"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the path, relative to a project directory, of the
// config file `init` writes and `Load` reads.
const ConfigFileName = ".jwright/config.yaml"

// Config is the root of the unmarshaled `.jwright/config.yaml` tree.
type Config struct {
	JWright JWrightConfig `yaml:"jwright"`
}

// JWrightConfig groups every recognized top-level section.
type JWrightConfig struct {
	LLM     LLMConfig     `yaml:"llm"`
	Tasks   TasksConfig   `yaml:"tasks"`
	Watch   WatchConfig   `yaml:"watch"`
	Paths   PathsConfig   `yaml:"paths"`
	Logging LoggingConfig `yaml:"logging"`
	History HistoryConfig `yaml:"history"`
}

// ProviderSettings is one LM provider's connection details. Timeout is
// kept as a duration string (e.g. "120s") so a malformed value fails
// config validation rather than YAML unmarshaling.
type ProviderSettings struct {
	URL     string `yaml:"url,omitempty"`
	Model   string `yaml:"model,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
	APIKey  string `yaml:"api-key,omitempty"`
}

// LLMConfig selects the active provider and holds every provider's
// settings, keyed by name the way spec's `jwright.llm.<provider>.*` keys
// are.
type LLMConfig struct {
	Provider   string           `yaml:"provider"`
	Ollama     ProviderSettings `yaml:"ollama,omitempty"`
	OpenAI     ProviderSettings `yaml:"openai,omitempty"`
	Anthropic  ProviderSettings `yaml:"anthropic,omitempty"`
	Gemini     ProviderSettings `yaml:"gemini,omitempty"`
	XAI        ProviderSettings `yaml:"xai,omitempty"`
	OpenRouter ProviderSettings `yaml:"openrouter,omitempty"`
}

// Settings returns the ProviderSettings for the currently selected
// provider.
func (l LLMConfig) Settings() ProviderSettings {
	switch l.Provider {
	case "openai":
		return l.OpenAI
	case "anthropic":
		return l.Anthropic
	case "gemini":
		return l.Gemini
	case "xai":
		return l.XAI
	case "openrouter":
		return l.OpenRouter
	default:
		return l.Ollama
	}
}

// TasksConfig configures the task pipeline's Implement and Refactor
// tasks.
type TasksConfig struct {
	Implement ImplementTaskConfig `yaml:"implement"`
	Refactor  RefactorTaskConfig  `yaml:"refactor"`
}

// ImplementTaskConfig configures the required Implement task.
type ImplementTaskConfig struct {
	MaxRetries int    `yaml:"max-retries"`
	Timeout    string `yaml:"timeout,omitempty"`
}

// RefactorTaskConfig configures the optional Refactor task.
type RefactorTaskConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WatchConfig configures the filesystem watch subsystem.
type WatchConfig struct {
	Paths    []string `yaml:"paths"`
	Ignore   []string `yaml:"ignore,omitempty"`
	Debounce string   `yaml:"debounce"`
}

// PathsConfig names the project's source and test roots.
type PathsConfig struct {
	Source string `yaml:"source"`
	Test   string `yaml:"test"`
}

// LoggingConfig is the ambient logging section internal/logging also
// reads directly during its own bootstrap.
type LoggingConfig struct {
	DebugMode  bool            `yaml:"debug-mode"`
	Categories map[string]bool `yaml:"categories,omitempty"`
	Level      string          `yaml:"level"`
	JSONFormat bool            `yaml:"json-format"`
}

// HistoryConfig names the run-history database file.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// Default returns the configuration jwright uses when no config file is
// present, or when a present file omits a key.
func Default() *Config {
	return &Config{
		JWright: JWrightConfig{
			LLM: LLMConfig{
				Provider: "ollama",
				Ollama: ProviderSettings{
					URL:   "http://localhost:11434",
					Model: "qwen2.5-coder",
				},
			},
			Tasks: TasksConfig{
				Implement: ImplementTaskConfig{MaxRetries: 5},
				Refactor:  RefactorTaskConfig{Enabled: true},
			},
			Watch: WatchConfig{
				Paths:    []string{"src/test/java"},
				Debounce: "500ms",
			},
			Paths: PathsConfig{
				Source: "src/main/java",
				Test:   "src/test/java",
			},
			Logging: LoggingConfig{Level: "info"},
			History: HistoryConfig{Path: ".jwright/history.db"},
		},
	}
}

// Load reads dir's config file over top of Default(). A missing file is
// not an error; a malformed one is, mapped to jwrighterr.ConfigInvalid.
func Load(dir string) (*Config, error) {
	cfg := Default()
	path := filepath.Join(dir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Boot("config file not found, using defaults: %s", path)
			return cfg, nil
		}
		logging.BootError("failed to read config file %s: %v", path, err)
		return nil, jwrighterr.Wrap(jwrighterr.ConfigInvalid, "failed to read config file", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		logging.BootError("failed to parse config file %s: %v", path, err)
		return nil, jwrighterr.Wrap(jwrighterr.ConfigInvalid, "malformed config file "+path, err)
	}

	logging.Boot("config loaded: provider=%s max-retries=%d refactor.enabled=%t",
		cfg.JWright.LLM.Provider, cfg.JWright.Tasks.Implement.MaxRetries, cfg.JWright.Tasks.Refactor.Enabled)
	return cfg, nil
}

// WriteDefault writes Default()'s YAML to dir's config file, creating
// the .jwright directory if needed. It overwrites an existing file;
// callers that need idempotent init behavior should check existence
// first.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", jwrighterr.Wrap(jwrighterr.ConfigInvalid, "failed to create .jwright directory", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", jwrighterr.Wrap(jwrighterr.ConfigInvalid, "failed to marshal default config", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", jwrighterr.Wrap(jwrighterr.ConfigInvalid, "failed to write config file", err)
	}
	return path, nil
}

// ParseDuration parses s, falling back to def on an empty string or a
// parse error. Subsystems use this rather than erroring the whole config
// load over one bad duration field.
func ParseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
