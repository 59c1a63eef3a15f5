package domain_test

import (
	"testing"

	"github.com/dodgate/dodgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SkipsPassAndSkip(t *testing.T) {
	gen := domain.NewRemediationGenerator()

	out := gen.Generate([]domain.DodCheckResult{
		{ID: "A_CHECK", Status: domain.StatusPass},
		{ID: "B_CHECK", Status: domain.StatusSkip},
	})

	assert.Empty(t, out)
}

func TestGenerate_PriorityFromSeverity(t *testing.T) {
	gen := domain.NewRemediationGenerator()

	out := gen.Generate([]domain.DodCheckResult{
		{ID: "INFO_CHECK", Status: domain.StatusWarn, Severity: domain.SeverityInfo},
		{ID: "WARN_CHECK", Status: domain.StatusWarn, Severity: domain.SeverityWarning},
		{ID: "FATAL_CHECK", Status: domain.StatusFail, Severity: domain.SeverityFatal},
	})

	require.Len(t, out, 3)
	assert.Equal(t, "FATAL_CHECK", out[0].CheckID)
	assert.Equal(t, domain.PriorityCritical, out[0].Priority)
	assert.Equal(t, "WARN_CHECK", out[1].CheckID)
	assert.Equal(t, domain.PriorityHigh, out[1].Priority)
	assert.Equal(t, "INFO_CHECK", out[2].CheckID)
	assert.Equal(t, domain.PriorityMedium, out[2].Priority)
}

func TestGenerate_StableWithinTier(t *testing.T) {
	gen := domain.NewRemediationGenerator()

	out := gen.Generate([]domain.DodCheckResult{
		{ID: "FIRST_FAIL", Status: domain.StatusFail, Severity: domain.SeverityFatal},
		{ID: "SECOND_FAIL", Status: domain.StatusFail, Severity: domain.SeverityFatal},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "FIRST_FAIL", out[0].CheckID)
	assert.Equal(t, "SECOND_FAIL", out[1].CheckID)
}

func TestGenerate_FallbackStepWhenCheckGaveNone(t *testing.T) {
	gen := domain.NewRemediationGenerator()

	out := gen.Generate([]domain.DodCheckResult{
		{ID: "BARE_CHECK", Status: domain.StatusFail, Severity: domain.SeverityFatal, Message: "broke"},
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Steps, 1)
	assert.Contains(t, out[0].Steps[0], "BARE_CHECK")
	assert.Contains(t, out[0].Steps[0], "broke")
}

func TestGenerate_CheckStepsPreferredOverFallback(t *testing.T) {
	gen := domain.NewRemediationGenerator()

	out := gen.Generate([]domain.DodCheckResult{
		{
			ID:          "HINTED_CHECK",
			Status:      domain.StatusWarn,
			Severity:    domain.SeverityWarning,
			Remediation: []string{"step one", "step two"},
		},
	})

	require.Len(t, out, 1)
	assert.Equal(t, []string{"step one", "step two"}, out[0].Steps)
}

func TestGenerate_AutomationLookup(t *testing.T) {
	gen := domain.NewRemediationGenerator()

	out := gen.Generate([]domain.DodCheckResult{
		{ID: "GOFMT_CHECK", Status: domain.StatusWarn, Severity: domain.SeverityWarning},
		{ID: "NO_AUTOMATION", Status: domain.StatusWarn, Severity: domain.SeverityWarning},
	})

	require.Len(t, out, 2)
	assert.Equal(t, "gofmt -w .", out[0].Automation)
	assert.Empty(t, out[1].Automation)
}

func TestGenerate_CustomAutomationTable(t *testing.T) {
	gen := domain.NewRemediationGenerator().WithAutomationTable(map[string]string{
		"HOUSE_STYLE": "make fmt",
	})

	out := gen.Generate([]domain.DodCheckResult{
		{ID: "HOUSE_STYLE", Status: domain.StatusFail, Severity: domain.SeverityWarning},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "make fmt", out[0].Automation)
}
