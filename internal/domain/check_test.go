package domain_test

import (
	"context"
	"testing"

	"github.com/dodgate/dodgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCheck struct {
	id       string
	category domain.CheckCategory
	tag      string
}

func (s stubCheck) ID() string                     { return s.id }
func (s stubCheck) Category() domain.CheckCategory { return s.category }
func (s stubCheck) Severity() domain.CheckSeverity { return domain.SeverityWarning }
func (s stubCheck) Description() string            { return "stub " + s.id }
func (s stubCheck) Dependencies() []string         { return nil }
func (s stubCheck) Execute(context.Context, domain.CheckContext) (*domain.DodCheckResult, error) {
	return &domain.DodCheckResult{ID: s.id, Status: domain.StatusPass}, nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := domain.NewCheckRegistry()
	reg.Register(stubCheck{id: "BUILD_CHECK", category: domain.CategoryBuildCorrectness})
	reg.Register(stubCheck{id: "TEST_UNIT", category: domain.CategoryTestTruth})

	assert.Equal(t, 2, reg.Len())
	assert.True(t, reg.Has("BUILD_CHECK"))
	assert.False(t, reg.Has("MISSING"))
	assert.Nil(t, reg.Get("MISSING"))

	require.NotNil(t, reg.Get("TEST_UNIT"))
	assert.Equal(t, "TEST_UNIT", reg.Get("TEST_UNIT").ID())
}

func TestRegistry_IDsPreserveInsertionOrder(t *testing.T) {
	reg := domain.NewCheckRegistry()
	for _, id := range []string{"C_CHECK", "A_CHECK", "B_CHECK"} {
		reg.Register(stubCheck{id: id, category: domain.CategoryWorkspaceIntegrity})
	}

	assert.Equal(t, []string{"C_CHECK", "A_CHECK", "B_CHECK"}, reg.IDs())
}

func TestRegistry_ReRegisterKeepsPosition(t *testing.T) {
	reg := domain.NewCheckRegistry()
	reg.Register(stubCheck{id: "A_CHECK", tag: "v1"})
	reg.Register(stubCheck{id: "B_CHECK"})
	reg.Register(stubCheck{id: "A_CHECK", tag: "v2"})

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"A_CHECK", "B_CHECK"}, reg.IDs())

	// Last registration wins.
	got, ok := reg.Get("A_CHECK").(stubCheck)
	require.True(t, ok)
	assert.Equal(t, "v2", got.tag)
}

func TestRegistry_ByCategory(t *testing.T) {
	reg := domain.NewCheckRegistry()
	reg.Register(stubCheck{id: "BUILD_A", category: domain.CategoryBuildCorrectness})
	reg.Register(stubCheck{id: "TEST_A", category: domain.CategoryTestTruth})
	reg.Register(stubCheck{id: "BUILD_B", category: domain.CategoryBuildCorrectness})

	builds := reg.ByCategory(domain.CategoryBuildCorrectness)
	require.Len(t, builds, 2)
	assert.Equal(t, "BUILD_A", builds[0].ID())
	assert.Equal(t, "BUILD_B", builds[1].ID())

	assert.Empty(t, reg.ByCategory(domain.CategorySafetyInvariants))
}
