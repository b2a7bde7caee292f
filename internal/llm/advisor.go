package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const advisorSystemPrompt = `You are a chauffeur dispatch analyst. Reply with JSON only, no markdown. Be concise and specific.`

const advisorPromptTemplate = `Review this fleet report and reply with EXACTLY this JSON shape:

{"headline": "one sentence on the state of the fleet",
 "risks": ["short risk", "..."],
 "actions": ["concrete dispatch action", "..."]}

Rules:
- At most 3 risks and 3 actions
- Name drivers, vehicles and dates from the data
- Double-bookings come first
- Suggest moving work from critical resources to low ones when possible

Report %s to %s:
%s`

// Usage is the utilization of one resource as shown to the model.
type Usage struct {
	Kind    string
	Name    string
	Hours   float64
	Percent float64
	Label   string
	State   string
}

// Digest is the plain-text friendly summary of a fleet report.
type Digest struct {
	From      time.Time
	To        time.Time
	Resources []Usage
	Conflicts []string
	Gaps      []string
}

// Insight is the advisor's reading of a report.
type Insight struct {
	Headline string   `json:"headline"`
	Risks    []string `json:"risks"`
	Actions  []string `json:"actions"`
}

// String renders the insight as plain text.
func (i Insight) String() string {
	var sb strings.Builder
	sb.WriteString(i.Headline)
	sb.WriteString("\n")
	for _, r := range i.Risks {
		sb.WriteString("  ! " + r + "\n")
	}
	for _, a := range i.Actions {
		sb.WriteString("  ➜ " + a + "\n")
	}
	return sb.String()
}

// Advisor asks an LLM for dispatch advice on a fleet report.
type Advisor struct {
	client Client
}

// NewAdvisor creates an Advisor backed by client.
func NewAdvisor(client Client) *Advisor {
	return &Advisor{client: client}
}

// Advise sends the digest to the model and parses its reply.
func (a *Advisor) Advise(ctx context.Context, d Digest) (*Insight, error) {
	prompt := fmt.Sprintf(advisorPromptTemplate,
		d.From.Format("Mon Jan 2"),
		d.To.Format("Mon Jan 2, 2006"),
		formatDigest(d))

	var insight Insight
	err := a.client.ChatJSON(ctx, []Message{
		{Role: "system", Content: advisorSystemPrompt},
		{Role: "user", Content: prompt},
	}, &insight)
	if err != nil {
		return nil, fmt.Errorf("requesting fleet insight: %w", err)
	}
	if insight.Headline == "" && len(insight.Actions) == 0 {
		return nil, fmt.Errorf("empty fleet insight")
	}
	return &insight, nil
}

// formatDigest lays the digest out in the compact line format the prompt
// describes.
func formatDigest(d Digest) string {
	var sb strings.Builder

	sb.WriteString("Utilization:\n")
	if len(d.Resources) == 0 {
		sb.WriteString("  (no resources)\n")
	}
	for _, u := range d.Resources {
		fmt.Fprintf(&sb, "  [%s] %s  %.1fh  %.0f%% %s  now %s\n",
			u.Kind, u.Name, u.Hours, u.Percent, u.Label, u.State)
	}

	if len(d.Conflicts) > 0 {
		sb.WriteString("\nDouble-bookings:\n")
		for _, c := range d.Conflicts {
			sb.WriteString("  " + c + "\n")
		}
	}

	if len(d.Gaps) > 0 {
		sb.WriteString("\nIdle gaps:\n")
		for _, g := range d.Gaps {
			sb.WriteString("  " + g + "\n")
		}
	}

	return sb.String()
}
