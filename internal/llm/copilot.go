package llm

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/openai/openai-go/option"
)

const (
	copilotTokenURL = "https://api.github.com/copilot_internal/v2/token"
	copilotBaseURL  = "https://api.githubcopilot.com"
	copilotAgent    = "Fleetdesk/1.0"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "gpt-4o"
)

// NewCopilotClient creates a client for GitHub Copilot. The GitHub token is
// exchanged for a short-lived Copilot token, so the client should not be
// kept for longer than one session.
func NewCopilotClient(model string) (*OpenAIClient, error) {
	ghToken, err := LoadGitHubToken()
	if err != nil {
		return nil, fmt.Errorf("loading GitHub token: %w", err)
	}

	token, err := exchangeToken(&http.Client{Timeout: 30 * time.Second}, copilotTokenURL, ghToken)
	if err != nil {
		return nil, fmt.Errorf("exchanging token: %w", err)
	}

	return newOpenAIClient(ProviderCopilot, orDefault(model, DefaultModel), copilotBaseURL,
		option.WithAPIKey(token),
		option.WithHeader("Editor-Version", copilotAgent),
		option.WithHeader("Editor-Plugin-Version", copilotAgent),
		option.WithHeader("Copilot-Integration-Id", "vscode-chat"),
	), nil
}

// exchangeToken trades a GitHub OAuth token for a Copilot bearer token.
func exchangeToken(hc *http.Client, url, ghToken string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+ghToken)
	req.Header.Set("User-Agent", copilotAgent)

	resp, err := hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("making request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("token exchange failed (status %d): %s", resp.StatusCode, body)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if out.Token == "" {
		return "", fmt.Errorf("token exchange returned no token")
	}
	return out.Token, nil
}
