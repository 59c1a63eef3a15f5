package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dodgate/dodgate/internal/domain"
)

// ── Claude-inspired warm palette ──
var (
	accent    = lipgloss.Color("#D97706") // amber
	fg        = lipgloss.Color("#E8E6E3") // warm light gray
	dim       = lipgloss.Color("#6B7280") // muted gray
	faint     = lipgloss.Color("#3F3F46") // very dim
	success   = lipgloss.Color("#22C55E") // green
	danger    = lipgloss.Color("#EF4444") // red
	warning   = lipgloss.Color("#F59E0B") // amber-yellow
	skipColor = lipgloss.Color("#4B5563") // dark gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	warnStyle     = lipgloss.NewStyle().Foreground(warning)
	skipStyle     = lipgloss.NewStyle().Foreground(skipColor)
	catNameStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

func verdictColor(v domain.Verdict) lipgloss.Color {
	switch v {
	case domain.VerdictPass:
		return success
	case domain.VerdictPartialPass:
		return warning
	default:
		return danger
	}
}

func statusStyle(s domain.CheckStatus) lipgloss.Style {
	switch s {
	case domain.StatusPass:
		return passStyle
	case domain.StatusFail:
		return failStyle
	case domain.StatusWarn:
		return warnStyle
	default:
		return skipStyle
	}
}

func statusGlyph(s domain.CheckStatus) string {
	switch s {
	case domain.StatusPass:
		return "✓"
	case domain.StatusFail:
		return "✗"
	case domain.StatusWarn:
		return "!"
	default:
		return "-"
	}
}

// RenderResult renders the full validation outcome for the terminal.
func RenderResult(result *domain.DodValidationResult) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("dodgate")
	subtitle := dimStyle.Render("Definition of Done")
	scoreLine := fmt.Sprintf("%.1f / 100", result.ReadinessScore)
	verdictStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColor(result.Verdict)).
		Render(string(result.Verdict))
	scoreStyled := lipgloss.NewStyle().
		Bold(true).
		Foreground(verdictColor(result.Verdict)).
		Render(scoreLine)

	b.WriteString(boxStyle.Render(title + "\n" + subtitle + "\n\n" + scoreStyled + "  " + verdictStyled))
	b.WriteString("\n\n")

	// ── Categories ──
	for _, cat := range domain.AllCategories {
		cs, ok := result.CategoryScores[cat]
		if !ok {
			continue
		}
		b.WriteString(catNameStyle.Render(cat.DisplayName()))
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %.1f (weight %.2f)", cs.Score, cs.Weight)))
		b.WriteString("\n")
	}
	b.WriteString("\n" + separatorLine + "\n")

	// ── Checks ──
	for _, r := range result.CheckResults {
		st := statusStyle(r.Status)
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			st.Render(statusGlyph(r.Status)),
			st.Render(r.ID),
			dimStyle.Render(r.Message)))
	}

	// ── Remediation ──
	if len(result.Suggestions) > 0 {
		b.WriteString("\n" + catNameStyle.Render("Remediation") + "\n")
		for _, s := range result.Suggestions {
			b.WriteString(fmt.Sprintf("  %s %s\n",
				prioStyle(s.Priority).Render("["+string(s.Priority)+"]"), s.Title))
			if s.Automation != "" {
				b.WriteString(dimStyle.Render("    fix: "+s.Automation) + "\n")
			}
		}
	}

	b.WriteString("\n" + dimStyle.Render(result.Summary) + "\n")
	return b.String()
}

func prioStyle(p domain.SuggestionPriority) lipgloss.Style {
	switch p {
	case domain.PriorityCritical:
		return failStyle
	case domain.PriorityHigh:
		return warnStyle
	default:
		return dimStyle
	}
}

// RenderCheckResult renders a single check outcome.
func RenderCheckResult(r *domain.DodCheckResult) string {
	var b strings.Builder
	st := statusStyle(r.Status)

	b.WriteString(fmt.Sprintf("%s %s %s\n",
		st.Render(statusGlyph(r.Status)),
		st.Render(r.ID),
		dimStyle.Render(fmt.Sprintf("(%s, %dms)", r.Category.DisplayName(), r.DurationMS))))
	b.WriteString("  " + r.Message + "\n")

	for _, ev := range r.Evidence {
		b.WriteString(faintStyle.Render(fmt.Sprintf("  [%s] %s", ev.Kind, ev.Content)) + "\n")
	}
	for _, rem := range r.Remediation {
		b.WriteString(dimStyle.Render("  → "+rem) + "\n")
	}
	return b.String()
}

// RenderTamperWarning renders the receipt verification failure banner.
func RenderTamperWarning(path string) string {
	return failStyle.Bold(true).Render("TAMPER WARNING") +
		dimStyle.Render(fmt.Sprintf(" receipt %s does not match its final hash", path))
}
