package domain

import "fmt"

// SuggestionPriority orders remediation work.
type SuggestionPriority string

const (
	PriorityCritical SuggestionPriority = "Critical"
	PriorityHigh     SuggestionPriority = "High"
	PriorityMedium   SuggestionPriority = "Medium"
	// PriorityLow is reserved for checks that self-tag as low impact.
	PriorityLow SuggestionPriority = "Low"
)

// rank orders priorities for sorting, lowest number first.
func (p SuggestionPriority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

// Suggestion is one actionable remediation item for a failing or warning
// check.
type Suggestion struct {
	CheckID    string             `json:"check_id"`
	Title      string             `json:"title"`
	Priority   SuggestionPriority `json:"priority"`
	Steps      []string           `json:"steps"`
	Automation string             `json:"automation,omitempty"`
}

// defaultAutomationTable maps well-known check ids to their one-line fix
// commands. This is data, not algorithm: extend it without touching the
// generator.
var defaultAutomationTable = map[string]string{
	"FMT_CHECK":        "cargo fmt",
	"CLIPPY_CHECK":     "cargo clippy --fix --allow-dirty",
	"GOFMT_CHECK":      "gofmt -w .",
	"GO_VET_CHECK":     "go vet ./...",
	"MOD_TIDY_CHECK":   "go mod tidy",
	"LICENSE_HEADERS":  "addlicense -c dodgate .",
	"TOOL_LOCK_UPDATE": "ggen tools lock --update",
}

// RemediationGenerator turns failing and warning results into prioritized
// suggestions.
type RemediationGenerator struct {
	automation map[string]string
}

// NewRemediationGenerator uses the built-in automation table.
func NewRemediationGenerator() *RemediationGenerator {
	return &RemediationGenerator{automation: defaultAutomationTable}
}

// WithAutomationTable swaps the automation lookup table, for callers that
// ship their own check suites.
func (g *RemediationGenerator) WithAutomationTable(table map[string]string) *RemediationGenerator {
	g.automation = table
	return g
}

// Generate emits one suggestion per Fail or Warn result, ordered by
// priority (stable within a tier). Pass and Skip produce nothing.
func (g *RemediationGenerator) Generate(results []DodCheckResult) []Suggestion {
	var out []Suggestion
	for _, r := range results {
		if r.Status != StatusFail && r.Status != StatusWarn {
			continue
		}

		steps := r.Remediation
		if len(steps) == 0 {
			steps = []string{fmt.Sprintf("Investigate %s: %s", r.ID, r.Message)}
		}

		out = append(out, Suggestion{
			CheckID:    r.ID,
			Title:      fmt.Sprintf("Fix %s (%s)", r.ID, r.Category.DisplayName()),
			Priority:   priorityFor(r.Severity),
			Steps:      steps,
			Automation: g.automation[r.ID],
		})
	}

	// Stable insertion sort keeps result order within a priority tier.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Priority.rank() < out[j-1].Priority.rank(); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func priorityFor(sev CheckSeverity) SuggestionPriority {
	switch sev {
	case SeverityFatal:
		return PriorityCritical
	case SeverityWarning:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}
