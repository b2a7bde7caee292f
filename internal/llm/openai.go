package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	defaultOpenAIBaseURL   = "https://api.openai.com/v1"
	defaultLMStudioBaseURL = "http://localhost:1234/v1"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint:
// OpenAI itself, LM Studio and GitHub Copilot.
type OpenAIClient struct {
	client  openai.Client
	name    string
	model   string
	baseURL string
}

func newOpenAIClient(name, model, baseURL string, opts ...option.RequestOption) *OpenAIClient {
	opts = append([]option.RequestOption{option.WithBaseURL(baseURL)}, opts...)
	return &OpenAIClient{
		client:  openai.NewClient(opts...),
		name:    name,
		model:   model,
		baseURL: baseURL,
	}
}

// NewOpenAIClient creates a client for the OpenAI API. The key is read from
// OPENAI_API_KEY.
func NewOpenAIClient(model, baseURL string) (*OpenAIClient, error) {
	if model == "" {
		model = DefaultModel
	}
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}
	return newOpenAIClient(ProviderOpenAI, model, orDefault(baseURL, defaultOpenAIBaseURL), option.WithAPIKey(key)), nil
}

// NewLMStudioClient creates a client for a local LM Studio server. LM Studio
// ignores the key, but the SDK insists on one.
func NewLMStudioClient(model, baseURL string) (*OpenAIClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("lm studio model is required")
	}
	key := orDefault(os.Getenv("LMSTUDIO_API_KEY"), orDefault(os.Getenv("OPENAI_API_KEY"), "lm-studio"))
	return newOpenAIClient(ProviderLMStudio, model, orDefault(baseURL, defaultLMStudioBaseURL), option.WithAPIKey(key)), nil
}

// Chat sends messages to the LLM and returns the response.
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message) (string, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, m := range messages {
		switch m.Role {
		case "system":
			params[i] = openai.SystemMessage(m.Content)
		case "assistant":
			params[i] = openai.AssistantMessage(m.Content)
		default:
			params[i] = openai.UserMessage(m.Content)
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: params,
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", errNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatJSON sends messages and parses the response as JSON into the provided type.
func (c *OpenAIClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := c.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
