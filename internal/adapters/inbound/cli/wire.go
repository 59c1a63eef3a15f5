package cli

import (
	"path/filepath"

	"github.com/dodgate/dodgate/internal/adapters/outbound/evidence"
	"github.com/dodgate/dodgate/internal/adapters/outbound/gitinfo"
	profileLoader "github.com/dodgate/dodgate/internal/adapters/outbound/profile"
	receiptStore "github.com/dodgate/dodgate/internal/adapters/outbound/receipt"
	"github.com/dodgate/dodgate/internal/application"
	"github.com/dodgate/dodgate/internal/checks"
	"github.com/dodgate/dodgate/internal/domain"
)

// stateDir is where dodgate keeps run artifacts inside a workspace.
const stateDir = ".dodgate"

// newValidator wires the default adapter stack for a workspace.
func newValidator(workspaceRoot string, compress bool) (*application.DodValidator, *evidence.BundleGenerator) {
	bundler := evidence.New(filepath.Join(workspaceRoot, stateDir, "evidence"))
	if compress {
		bundler = bundler.WithCompression()
	}

	validator := application.NewDodValidator(
		checks.DefaultRegistry(),
		profileLoader.New(),
		gitinfo.New(),
		receiptStore.New(filepath.Join(workspaceRoot, stateDir, "receipts")),
		bundler,
		application.NewReportWriter(filepath.Join(workspaceRoot, stateDir, "reports")),
	)
	return validator, bundler
}

// resolveProfile picks an explicit profile by built-in name or file path.
func resolveProfile(name string) (*domain.DodProfile, error) {
	if name == "" {
		return nil, nil
	}
	if p, ok := domain.BuiltinProfiles()[name]; ok {
		return p, nil
	}
	return profileLoader.New().LoadFile(name)
}
