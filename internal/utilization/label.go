package utilization

// Severity classifies a utilization percentage.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityGood     Severity = "good"
	SeverityLow      Severity = "low"
	SeverityMinimal  Severity = "minimal"
)

// Label is the display bucket of a utilization percentage.
type Label struct {
	Text     string
	Severity Severity
	Color    string
}

// Buckets in descending threshold order. Lower bounds are inclusive.
var buckets = []struct {
	min   float64
	label Label
}{
	{90, Label{Text: "Overbooked", Severity: SeverityCritical, Color: "red"}},
	{75, Label{Text: "High", Severity: SeverityHigh, Color: "orange"}},
	{50, Label{Text: "Good", Severity: SeverityGood, Color: "green"}},
	{25, Label{Text: "Low", Severity: SeverityLow, Color: "yellow"}},
}

// LabelFor maps a utilization percentage to its display bucket.
func LabelFor(pct float64) Label {
	for _, b := range buckets {
		if pct >= b.min {
			return b.label
		}
	}
	return Label{Text: "Very Low", Severity: SeverityMinimal, Color: "gray"}
}
