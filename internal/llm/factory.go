package llm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDisabled is returned when the configured provider is "none".
var ErrDisabled = errors.New("llm provider disabled")

const (
	ProviderCopilot  = "copilot"
	ProviderOpenAI   = "openai"
	ProviderOllama   = "ollama"
	ProviderLMStudio = "lmstudio"
	ProviderNone     = "none"
)

// NewClient creates an LLM client based on provider configuration. An empty
// provider means Copilot.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderCopilot:
		return NewCopilotClient(model)
	case ProviderOpenAI:
		return NewOpenAIClient(model, baseURL)
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	case ProviderLMStudio, "lm-studio":
		return NewLMStudioClient(model, baseURL)
	case ProviderNone, "off":
		return nil, ErrDisabled
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
