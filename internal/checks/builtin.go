package checks

import "github.com/dodgate/dodgate/internal/domain"

// Builtin ids registered by DefaultRegistry. The default suite targets Go
// workspaces; consumers with other toolchains register their own suite.
const (
	IDWorkspaceLayout = "WORKSPACE_LAYOUT"
	IDBuild           = "BUILD_CHECK"
	IDTestUnit        = "TEST_UNIT"
	IDGofmt           = "GOFMT_CHECK"
	IDGoVet           = "GO_VET_CHECK"
)

// DefaultRegistry returns a registry preloaded with the built-in suite.
func DefaultRegistry() *domain.CheckRegistry {
	reg := domain.NewCheckRegistry()

	reg.Register(&FileCheck{
		CheckID: IDWorkspaceLayout,
		Cat:     domain.CategoryWorkspaceIntegrity,
		Sev:     domain.SeverityFatal,
		Desc:    "Workspace has the minimum expected layout",
		Paths:   []string{"go.mod"},
	})

	reg.Register(&CommandCheck{
		CheckID: IDBuild,
		Cat:     domain.CategoryBuildCorrectness,
		Sev:     domain.SeverityFatal,
		Desc:    "Workspace compiles",
		Argv:    []string{"go", "build", "./..."},
	})

	reg.Register(&CommandCheck{
		CheckID:   IDTestUnit,
		Cat:       domain.CategoryTestTruth,
		Sev:       domain.SeverityFatal,
		Desc:      "Unit tests pass",
		DependsOn: []string{IDBuild},
		Argv:      []string{"go", "test", "./..."},
	})

	reg.Register(&CommandCheck{
		CheckID:      IDGofmt,
		Cat:          domain.CategoryBuildCorrectness,
		Sev:          domain.SeverityWarning,
		Desc:         "Source is gofmt-clean",
		Argv:         []string{"gofmt", "-l", "."},
		Fix:          []string{"Run gofmt -w ."},
		FailOnOutput: true,
	})

	reg.Register(&CommandCheck{
		CheckID:   IDGoVet,
		Cat:       domain.CategorySafetyInvariants,
		Sev:       domain.SeverityWarning,
		Desc:      "go vet reports no problems",
		DependsOn: []string{IDBuild},
		Argv:      []string{"go", "vet", "./..."},
	})

	return reg
}
