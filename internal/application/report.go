package application

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dodgate/dodgate/internal/domain"
)

// ReportWriter renders a run into a markdown report on disk.
type ReportWriter struct {
	dir string
}

// NewReportWriter writes reports into dir, creating it on demand.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// Write renders result to <dir>/<YYYY-MM-DD-HHMMSS>.md and returns the path.
func (w *ReportWriter) Write(result *domain.DodValidationResult) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}

	path := filepath.Join(w.dir, result.Timestamp.Format("2006-01-02-150405")+".md")
	if err := os.WriteFile(path, []byte(Render(result)), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// Render produces the markdown report body.
func Render(result *domain.DodValidationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Definition of Done Report\n\n")
	fmt.Fprintf(&b, "**Verdict:** %s  \n", result.Verdict)
	fmt.Fprintf(&b, "**Readiness score:** %.1f/100  \n", result.ReadinessScore)
	fmt.Fprintf(&b, "**Profile:** %s | **Mode:** %s  \n", result.Profile, result.Mode)
	fmt.Fprintf(&b, "**Summary:** %s  \n", result.Summary)
	fmt.Fprintf(&b, "**Duration:** %dms\n\n", result.DurationMS)

	b.WriteString("## Categories\n\n")
	b.WriteString("| Category | Score | Weight | Passed | Failed | Warned | Skipped |\n")
	b.WriteString("|---|---|---|---|---|---|---|\n")
	for _, cat := range domain.AllCategories {
		cs, ok := result.CategoryScores[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %.1f | %.2f | %d | %d | %d | %d |\n",
			cat.DisplayName(), cs.Score, cs.Weight, cs.Passed, cs.Failed, cs.Warned, cs.Skipped)
	}
	b.WriteString("\n")

	b.WriteString("## Checks\n\n")
	for _, r := range result.CheckResults {
		fmt.Fprintf(&b, "- **%s** [%s/%s] %s — %s (%dms)\n",
			r.ID, r.Status, r.Severity, r.Category.DisplayName(), r.Message, r.DurationMS)
	}
	b.WriteString("\n")

	if len(result.Suggestions) > 0 {
		b.WriteString("## Remediation\n\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&b, "### [%s] %s\n\n", s.Priority, s.Title)
			for _, step := range s.Steps {
				fmt.Fprintf(&b, "1. %s\n", step)
			}
			if s.Automation != "" {
				fmt.Fprintf(&b, "\nAutomated fix: `%s`\n", s.Automation)
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}
