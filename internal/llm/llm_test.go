package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "raw json object",
			input:    `{"actions": []}`,
			expected: `{"actions": []}`,
		},
		{
			name:     "json with leading text",
			input:    `Here is the response: {"actions": [{"driver": "Alice"}]}`,
			expected: `{"actions": [{"driver": "Alice"}]}`,
		},
		{
			name:     "json in code block",
			input:    "```json\n{\"actions\": []}\n```",
			expected: `{"actions": []}`,
		},
		{
			name:     "json in plain code block",
			input:    "```\n{\"actions\": []}\n```",
			expected: `{"actions": []}`,
		},
		{
			name:     "json array",
			input:    `[{"id": 1}, {"id": 2}]`,
			expected: `[{"id": 1}, {"id": 2}]`,
		},
		{
			name:     "nested json",
			input:    `{"outer": {"inner": {"deep": true}}}`,
			expected: `{"outer": {"inner": {"deep": true}}}`,
		},
		{
			name: "markdown with explanation",
			input: `Here's my analysis:

` + "```json" + `
{
  "actions": [
    {"driver": "Alice", "hours": 8}
  ]
}
` + "```" + `

Let me know if you need anything else.`,
			expected: `{
  "actions": [
    {"driver": "Alice", "hours": 8}
  ]
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

type fakeClient struct {
	reply    string
	err      error
	messages []Message
}

func (f *fakeClient) Chat(_ context.Context, messages []Message) (string, error) {
	f.messages = messages
	return f.reply, f.err
}

func (f *fakeClient) ChatJSON(ctx context.Context, messages []Message, result any) error {
	content, err := f.Chat(ctx, messages)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func TestAdvisor_Advise(t *testing.T) {
	client := &fakeClient{reply: "```json\n" + `{"headline": "Alice is overbooked",
		"risks": ["Alice double-booked on 2025-03-10"],
		"actions": ["Move the 09:00 airport run to Bob"]}` + "\n```"}

	digest := Digest{
		From: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
		Resources: []Usage{
			{Kind: "driver", Name: "Alice", Hours: 52, Percent: 92.9, Label: "Critical", State: "busy"},
			{Kind: "driver", Name: "Bob", Hours: 4, Percent: 7.1, Label: "Minimal", State: "available"},
		},
		Conflicts: []string{"Alice 2025-03-10 09:00 overlaps 60m"},
	}

	insight, err := NewAdvisor(client).Advise(context.Background(), digest)
	if err != nil {
		t.Fatalf("Advise failed: %v", err)
	}
	if insight.Headline != "Alice is overbooked" {
		t.Errorf("Headline = %q", insight.Headline)
	}
	if len(insight.Risks) != 1 || len(insight.Actions) != 1 {
		t.Errorf("got %d risks, %d actions", len(insight.Risks), len(insight.Actions))
	}

	if len(client.messages) != 2 || client.messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", client.messages)
	}
	prompt := client.messages[1].Content
	for _, want := range []string{"Mon Mar 10", "[driver] Alice  52.0h  93% Critical  now busy", "Double-bookings:", "Alice 2025-03-10 09:00"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, "Idle gaps:") {
		t.Error("prompt lists gaps section without gaps")
	}
}

func TestAdvisor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{"client error", &fakeClient{err: errors.New("offline")}},
		{"not json", &fakeClient{reply: "I cannot help with that"}},
		{"empty insight", &fakeClient{reply: `{"risks": []}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAdvisor(tt.client).Advise(context.Background(), Digest{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestInsightString(t *testing.T) {
	got := Insight{Headline: "Quiet week", Actions: []string{"Offer Van2 to partners"}}.String()
	want := "Quiet week\n  ➜ Offer Van2 to partners\n"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
