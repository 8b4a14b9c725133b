// Package config loads run configuration from the process environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvOpenAIModelName = "OPENAI_MODEL_NAME"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvGoogleAPIKey    = "GOOGLE_API_KEY"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvOllamaHost      = "OLLAMA_HOST"
	EnvProvider        = "SUPPORTCREW_PROVIDER"
	EnvMemoryURL       = "SUPPORTCREW_MEMORY_URL"

	DefaultOpenAIModel = "gpt-3.5-turbo"
)

// ErrMissingCredential marks a required API key that is unset or empty.
var ErrMissingCredential = errors.New("missing credential")

// Config carries everything the crew needs from the environment. Values are
// passed explicitly into constructors; nothing downstream mutates or re-reads
// the process environment.
type Config struct {
	Provider        string
	OpenAIAPIKey    string
	OpenAIModelName string
	AnthropicAPIKey string
	GoogleAPIKey    string
	OllamaHost      string
	MemoryURL       string
}

// Load reads an optional .env file, then the process environment. Credential
// validation is deferred to Validate so callers can pick the provider first.
func Load() (*Config, error) {
	// A missing .env is fine; only report malformed files.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Provider:        strings.ToLower(strings.TrimSpace(os.Getenv(EnvProvider))),
		OpenAIAPIKey:    os.Getenv(EnvOpenAIAPIKey),
		OpenAIModelName: strings.TrimSpace(os.Getenv(EnvOpenAIModelName)),
		AnthropicAPIKey: os.Getenv(EnvAnthropicAPIKey),
		GoogleAPIKey:    os.Getenv(EnvGoogleAPIKey),
		OllamaHost:      strings.TrimSpace(os.Getenv(EnvOllamaHost)),
		MemoryURL:       strings.TrimSpace(os.Getenv(EnvMemoryURL)),
	}
	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.OpenAIModelName == "" {
		cfg.OpenAIModelName = DefaultOpenAIModel
	}
	if cfg.GoogleAPIKey == "" {
		cfg.GoogleAPIKey = os.Getenv(EnvGeminiAPIKey)
	}
	return cfg, nil
}

// Validate checks that the selected provider has its credential. The error
// wraps ErrMissingCredential and carries remediation text.
func (c *Config) Validate() error {
	switch c.Provider {
	case "openai":
		if strings.TrimSpace(c.OpenAIAPIKey) == "" {
			return missingCredential(EnvOpenAIAPIKey)
		}
	case "anthropic":
		if strings.TrimSpace(c.AnthropicAPIKey) == "" {
			return missingCredential(EnvAnthropicAPIKey)
		}
	case "gemini":
		if strings.TrimSpace(c.GoogleAPIKey) == "" {
			return missingCredential(EnvGoogleAPIKey)
		}
	case "ollama", "dummy":
		// No credential required.
	default:
		return fmt.Errorf("unknown provider %q (want openai, anthropic, gemini, ollama or dummy)", c.Provider)
	}
	return nil
}

// OpenAIKey returns the OpenAI API key, failing with guidance when absent.
func (c *Config) OpenAIKey() (string, error) {
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		return "", missingCredential(EnvOpenAIAPIKey)
	}
	return c.OpenAIAPIKey, nil
}

func missingCredential(name string) error {
	return fmt.Errorf("%w: %s is not set. Set it in your environment, e.g.\nexport %s='YOUR_KEY_HERE'",
		ErrMissingCredential, name, name)
}
