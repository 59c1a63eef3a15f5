package application_test

import (
	"context"
	"sync"
	"testing"

	"github.com/dodgate/dodgate/internal/application"
	"github.com/dodgate/dodgate/internal/checks"
	"github.com/dodgate/dodgate/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memReceiptStore struct {
	saved []*domain.Receipt
}

func (s *memReceiptStore) Save(r *domain.Receipt) (string, error) {
	s.saved = append(s.saved, r)
	return "mem://receipt", nil
}

func (s *memReceiptStore) Load(string) (*domain.Receipt, error) { return nil, nil }
func (s *memReceiptStore) List() ([]string, error)              { return nil, nil }

type stubLoader struct {
	profile *domain.DodProfile
}

func (l *stubLoader) Load(string) (*domain.DodProfile, error)     { return l.profile, nil }
func (l *stubLoader) LoadFile(string) (*domain.DodProfile, error) { return l.profile, nil }

type countingObserver struct {
	mu    sync.Mutex
	waves int
	done  []string
}

func (o *countingObserver) OnWaveStart(int, []string) {
	o.mu.Lock()
	o.waves++
	o.mu.Unlock()
}

func (o *countingObserver) OnCheckDone(r domain.DodCheckResult) {
	o.mu.Lock()
	o.done = append(o.done, r.ID)
	o.mu.Unlock()
}

func gateProfile(ids ...string) *domain.DodProfile {
	p := domain.DefaultProfile()
	p.RequiredChecks = ids
	p.OptionalChecks = nil
	p.CategoryWeights = map[domain.CheckCategory]float64{
		domain.CategoryBuildCorrectness: 0.5,
		domain.CategoryTestTruth:        0.5,
	}
	return p
}

func gateRegistry(buildPasses bool) *domain.CheckRegistry {
	reg := domain.NewCheckRegistry()
	reg.Register(&checks.Func{
		CheckID: "BUILD_CHECK",
		Cat:     domain.CategoryBuildCorrectness,
		Sev:     domain.SeverityFatal,
		Run: func(context.Context, domain.CheckContext) (*domain.DodCheckResult, error) {
			if buildPasses {
				return &domain.DodCheckResult{Status: domain.StatusPass, Message: "compiles"}, nil
			}
			return &domain.DodCheckResult{Status: domain.StatusFail, Message: "compile error"}, nil
		},
	})
	reg.Register(&checks.Func{
		CheckID:   "TEST_UNIT",
		Cat:       domain.CategoryTestTruth,
		Sev:       domain.SeverityFatal,
		DependsOn: []string{"BUILD_CHECK"},
		Run: func(context.Context, domain.CheckContext) (*domain.DodCheckResult, error) {
			return &domain.DodCheckResult{Status: domain.StatusPass, Message: "all green"}, nil
		},
	})
	return reg
}

func newValidator(t *testing.T, reg *domain.CheckRegistry, store *memReceiptStore) *application.DodValidator {
	t.Helper()
	return application.NewDodValidator(
		reg,
		&stubLoader{profile: gateProfile("BUILD_CHECK", "TEST_UNIT")},
		nil,
		store,
		nil,
		application.NewReportWriter(t.TempDir()),
	)
}

func TestValidate_AllPass(t *testing.T) {
	store := &memReceiptStore{}
	v := newValidator(t, gateRegistry(true), store)

	result, err := v.Validate(context.Background(), t.TempDir(), application.ValidatorOptions{})
	require.NoError(t, err)

	assert.Equal(t, domain.VerdictPass, result.Verdict)
	assert.InDelta(t, 100.0, result.ReadinessScore, 0.01)
	assert.Empty(t, result.Suggestions)
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, domain.ModeFull, result.Mode)
	assert.Contains(t, result.Summary, "2 passed")
	assert.NotEmpty(t, result.ReportPath)

	require.Len(t, store.saved, 1)
	receipt := store.saved[0]
	assert.True(t, domain.VerifyReceipt(receipt))
	assert.Equal(t, result.RunID, receipt.Metadata.RunID)
	assert.Len(t, receipt.CheckHashes, 2)
}

func TestValidate_FatalFailureFailsGate(t *testing.T) {
	store := &memReceiptStore{}
	v := newValidator(t, gateRegistry(false), store)

	result, err := v.Validate(context.Background(), t.TempDir(), application.ValidatorOptions{})
	require.NoError(t, err, "check failures are data, not errors")

	assert.Equal(t, domain.VerdictFail, result.Verdict)

	// TEST_UNIT is skipped behind the fatal build failure; only the build
	// gets a suggestion, at critical priority.
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "BUILD_CHECK", result.Suggestions[0].CheckID)
	assert.Equal(t, domain.PriorityCritical, result.Suggestions[0].Priority)

	require.Len(t, result.CheckResults, 2)
	assert.Equal(t, domain.StatusFail, result.CheckResults[0].Status)
	assert.Equal(t, domain.StatusSkip, result.CheckResults[1].Status)

	require.Len(t, store.saved, 1)
	assert.True(t, domain.VerifyReceipt(store.saved[0]))
}

func TestValidate_ExplicitProfileOverridesLoader(t *testing.T) {
	store := &memReceiptStore{}
	v := newValidator(t, gateRegistry(true), store)

	override := gateProfile("BUILD_CHECK")
	override.Name = "override"

	result, err := v.Validate(context.Background(), t.TempDir(), application.ValidatorOptions{Profile: override})
	require.NoError(t, err)

	assert.Equal(t, "override", result.Profile)
	assert.Len(t, result.CheckResults, 1)
}

func TestValidate_InvalidExplicitProfileRejected(t *testing.T) {
	v := newValidator(t, gateRegistry(true), &memReceiptStore{})

	bad := gateProfile("BUILD_CHECK")
	bad.CategoryWeights = nil

	_, err := v.Validate(context.Background(), t.TempDir(), application.ValidatorOptions{Profile: bad})
	assert.Error(t, err)
}

func TestValidate_ObserverSeesEveryCheck(t *testing.T) {
	obs := &countingObserver{}
	v := newValidator(t, gateRegistry(true), &memReceiptStore{})

	_, err := v.Validate(context.Background(), t.TempDir(), application.ValidatorOptions{Observer: obs})
	require.NoError(t, err)

	assert.Equal(t, 2, obs.waves)
	assert.Equal(t, []string{"BUILD_CHECK", "TEST_UNIT"}, obs.done)
}

func TestValidateSingle(t *testing.T) {
	v := newValidator(t, gateRegistry(true), &memReceiptStore{})

	result, err := v.ValidateSingle(context.Background(), t.TempDir(), "BUILD_CHECK", application.ValidatorOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPass, result.Status)

	_, err = v.ValidateSingle(context.Background(), t.TempDir(), "NOPE", application.ValidatorOptions{})
	assert.ErrorIs(t, err, domain.ErrUnknownCheck)
}
