package checks

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/dodgate/dodgate/internal/domain"
)

const outputEvidenceLimit = 4096

// CommandCheck runs an external command in the workspace root and passes
// on exit code zero. The command inherits the check's context, so a
// timeout kills the process.
type CommandCheck struct {
	CheckID   string
	Cat       domain.CheckCategory
	Sev       domain.CheckSeverity
	Desc      string
	DependsOn []string
	Argv      []string
	Fix       []string

	// FailOnOutput fails the check when the command exits zero but prints
	// anything. List-style linters (gofmt -l) report findings on stdout
	// and keep a zero exit code.
	FailOnOutput bool
}

func (c *CommandCheck) ID() string                     { return c.CheckID }
func (c *CommandCheck) Category() domain.CheckCategory { return c.Cat }
func (c *CommandCheck) Severity() domain.CheckSeverity { return c.Sev }
func (c *CommandCheck) Description() string            { return c.Desc }
func (c *CommandCheck) Dependencies() []string         { return c.DependsOn }

func (c *CommandCheck) Execute(ctx context.Context, cc domain.CheckContext) (*domain.DodCheckResult, error) {
	if len(c.Argv) == 0 {
		return nil, fmt.Errorf("command check %s has no argv", c.CheckID)
	}

	cmd := exec.CommandContext(ctx, c.Argv[0], c.Argv[1:]...)
	cmd.Dir = cc.WorkspaceRoot
	output, err := cmd.CombinedOutput()

	trimmed := string(output)
	if len(trimmed) > outputEvidenceLimit {
		trimmed = trimmed[:outputEvidenceLimit] + "\n... (truncated)"
	}
	ev := domain.NewEvidence("command_output", trimmed)

	cmdline := strings.Join(c.Argv, " ")
	if err != nil {
		return &domain.DodCheckResult{
			Status:   domain.StatusFail,
			Message:  fmt.Sprintf("%q failed: %v", cmdline, err),
			Evidence: []domain.Evidence{ev},
			Remediation: append(append([]string{}, c.Fix...),
				fmt.Sprintf("Run %q locally and fix the reported problems", cmdline)),
		}, nil
	}

	if findings := strings.TrimSpace(string(output)); c.FailOnOutput && findings != "" {
		lines := strings.Split(findings, "\n")
		return &domain.DodCheckResult{
			Status:   domain.StatusFail,
			Message:  fmt.Sprintf("%q flagged %d finding(s): %s", cmdline, len(lines), strings.Join(lines, ", ")),
			Evidence: []domain.Evidence{ev},
			Remediation: append(append([]string{}, c.Fix...),
				fmt.Sprintf("Run %q locally and resolve every reported finding", cmdline)),
		}, nil
	}

	return &domain.DodCheckResult{
		Status:   domain.StatusPass,
		Message:  fmt.Sprintf("%q succeeded", cmdline),
		Evidence: []domain.Evidence{ev},
	}, nil
}
