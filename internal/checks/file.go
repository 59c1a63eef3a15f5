// Package checks provides thin built-in DodCheck implementations. Real
// validation logic is expected to come from plugged-in suites; these cover
// the common filesystem and command gates every workspace needs.
package checks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dodgate/dodgate/internal/domain"
)

// FileCheck passes when every listed workspace-relative file exists.
type FileCheck struct {
	CheckID   string
	Cat       domain.CheckCategory
	Sev       domain.CheckSeverity
	Desc      string
	DependsOn []string
	Paths     []string
	Fix       []string
}

func (c *FileCheck) ID() string                     { return c.CheckID }
func (c *FileCheck) Category() domain.CheckCategory { return c.Cat }
func (c *FileCheck) Severity() domain.CheckSeverity { return c.Sev }
func (c *FileCheck) Description() string            { return c.Desc }
func (c *FileCheck) Dependencies() []string         { return c.DependsOn }

func (c *FileCheck) Execute(_ context.Context, cc domain.CheckContext) (*domain.DodCheckResult, error) {
	var missing []string
	var evidence []domain.Evidence

	for _, rel := range c.Paths {
		path := filepath.Join(cc.WorkspaceRoot, rel)
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, rel)
			continue
		}
		ev := domain.NewEvidence("file", fmt.Sprintf("%s present", rel))
		ev.FilePath = rel
		evidence = append(evidence, ev)
	}

	if len(missing) > 0 {
		return &domain.DodCheckResult{
			Status:   domain.StatusFail,
			Message:  fmt.Sprintf("missing required file(s): %s", strings.Join(missing, ", ")),
			Evidence: evidence,
			Remediation: append(append([]string{}, c.Fix...),
				fmt.Sprintf("Create the missing file(s): %s", strings.Join(missing, ", "))),
		}, nil
	}

	return &domain.DodCheckResult{
		Status:   domain.StatusPass,
		Message:  fmt.Sprintf("all %d required file(s) present", len(c.Paths)),
		Evidence: evidence,
	}, nil
}
