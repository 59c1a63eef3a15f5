package application

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dodgate/dodgate/internal/domain"
)

// CheckExecutor runs a dependency-ordered, optionally parallel, timeout
// bounded batch of checks from the registry against a check context.
//
// Registry and profile are read-only for the run's duration; the executor
// exclusively owns all in-flight state.
type CheckExecutor struct {
	registry *domain.CheckRegistry
	profile  *domain.DodProfile
	observer domain.Observer
}

// NewCheckExecutor creates an executor over a registry and a validated
// profile.
func NewCheckExecutor(registry *domain.CheckRegistry, profile *domain.DodProfile) *CheckExecutor {
	return &CheckExecutor{registry: registry, profile: profile}
}

// WithObserver attaches an optional lifecycle observer.
func (e *CheckExecutor) WithObserver(o domain.Observer) *CheckExecutor {
	e.observer = o
	return e
}

// ExecuteAll runs the profile's working set in topological waves and
// returns results in deterministic order: waves in sequence, registration
// order within each wave, regardless of completion order.
//
// Unknown check ids and dependency cycles are configuration errors that
// abort before any check runs. Per-check failures never abort the batch.
func (e *CheckExecutor) ExecuteAll(ctx context.Context, cc domain.CheckContext) ([]domain.DodCheckResult, error) {
	ids := e.profile.WorkingSet()
	for _, id := range ids {
		if !e.registry.Has(id) {
			return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCheck, id)
		}
	}

	waves, err := e.buildWaves(ids)
	if err != nil {
		return nil, err
	}

	workers := e.workerBudget()
	results := make([]domain.DodCheckResult, 0, len(ids))

	// blockedBy maps a check id to the fatal-failed ancestor that keeps it
	// from running. Skips propagate so dependents always cite the original
	// failure.
	blockedBy := make(map[string]string)

	for waveNum, wave := range waves {
		if e.observer != nil {
			e.observer.OnWaveStart(waveNum, wave)
		}

		waveResults := make([]domain.DodCheckResult, len(wave))
		sem := make(chan struct{}, workers)
		var wg sync.WaitGroup

		for i, id := range wave {
			check := e.registry.Get(id)

			if origin, blocked := e.blockReason(check, blockedBy); blocked {
				waveResults[i] = skipResult(check, origin)
				continue
			}

			wg.Add(1)
			go func(slot int, c domain.DodCheck) {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()

				waveResults[slot] = e.runOne(ctx, c, cc)
			}(i, check)
		}
		wg.Wait()

		for _, r := range waveResults {
			if r.Status == domain.StatusFail && r.Severity == domain.SeverityFatal {
				blockedBy[r.ID] = r.ID
			}
			if e.observer != nil {
				e.observer.OnCheckDone(r)
			}
			results = append(results, r)
		}
		// Record skip origins after the wave so later dependents inherit them.
		for i, id := range wave {
			if waveResults[i].Status == domain.StatusSkip {
				if origin, ok := e.blockReason(e.registry.Get(id), blockedBy); ok {
					blockedBy[id] = origin
				}
			}
		}
	}

	return results, nil
}

// ExecuteOne runs a single check by id, ignoring dependency resolution and
// skip logic.
func (e *CheckExecutor) ExecuteOne(ctx context.Context, id string, cc domain.CheckContext) (*domain.DodCheckResult, error) {
	check := e.registry.Get(id)
	if check == nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCheck, id)
	}
	result := e.runOne(ctx, check, cc)
	return &result, nil
}

// blockReason returns the fatal-failed ancestor id blocking the check, if
// any. Only (Fail, Fatal) dependencies block; non-fatal failures do not.
func (e *CheckExecutor) blockReason(check domain.DodCheck, blockedBy map[string]string) (string, bool) {
	for _, dep := range check.Dependencies() {
		if origin, ok := blockedBy[dep]; ok {
			return origin, true
		}
	}
	return "", false
}

// workerBudget resolves the parallelism setting to a pool size.
func (e *CheckExecutor) workerBudget() int {
	switch e.profile.Parallelism.Mode {
	case domain.ParallelismSerial:
		return 1
	case domain.ParallelismFixed:
		if e.profile.Parallelism.Workers > 0 {
			return e.profile.Parallelism.Workers
		}
		return 1
	default:
		return runtime.GOMAXPROCS(0)
	}
}

// buildWaves groups the working set into topological batches via Kahn's
// algorithm. Dependency edges pointing outside the working set are treated
// as already settled. A cycle is a configuration error.
func (e *CheckExecutor) buildWaves(ids []string) ([][]string, error) {
	inSet := make(map[string]bool, len(ids))
	for _, id := range ids {
		inSet[id] = true
	}

	indegree := make(map[string]int, len(ids))
	dependents := make(map[string][]string)
	for _, id := range ids {
		indegree[id] = 0
	}
	for _, id := range ids {
		for _, dep := range e.registry.Get(id).Dependencies() {
			if inSet[dep] {
				indegree[id]++
				dependents[dep] = append(dependents[dep], id)
			}
		}
	}

	remaining := len(ids)
	done := make(map[string]bool, len(ids))
	var waves [][]string

	// Iterating registry ids keeps intra-wave registration order.
	for remaining > 0 {
		var wave []string
		for _, id := range e.registry.IDs() {
			if inSet[id] && !done[id] && indegree[id] == 0 {
				wave = append(wave, id)
			}
		}
		if len(wave) == 0 {
			return nil, fmt.Errorf("%w among %d remaining check(s)", domain.ErrDependencyCycle, remaining)
		}

		for _, id := range wave {
			done[id] = true
			remaining--
			for _, dependent := range dependents[id] {
				indegree[dependent]--
			}
		}
		waves = append(waves, wave)
	}

	return waves, nil
}

// runOne executes a single check under its category timeout, converting
// errors, panics and timeouts into Fail results.
func (e *CheckExecutor) runOne(ctx context.Context, check domain.DodCheck, cc domain.CheckContext) domain.DodCheckResult {
	timeout := time.Duration(e.profile.TimeoutFor(check.Category())) * time.Millisecond
	cc.Timeout = timeout

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		result *domain.DodCheckResult
		err    error
	}
	done := make(chan outcome, 1)
	start := time.Now()

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("check panicked: %v", p)}
			}
		}()
		result, err := check.Execute(runCtx, cc)
		done <- outcome{result: result, err: err}
	}()

	select {
	case <-runCtx.Done():
		elapsed := time.Since(start)
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return failResult(check, fmt.Sprintf("check %s timed out after %s", check.ID(), timeout), elapsed)
		}
		return failResult(check, fmt.Sprintf("check %s canceled: %v", check.ID(), runCtx.Err()), elapsed)

	case o := <-done:
		elapsed := time.Since(start)
		if o.err != nil {
			return failResult(check, o.err.Error(), elapsed)
		}
		if o.result == nil {
			return failResult(check, fmt.Sprintf("check %s returned no result", check.ID()), elapsed)
		}
		return normalize(check, *o.result, elapsed)
	}
}

// normalize pins identity fields to the check contract, stamps duration
// and seals the result hash.
func normalize(check domain.DodCheck, r domain.DodCheckResult, elapsed time.Duration) domain.DodCheckResult {
	r.ID = check.ID()
	r.Category = check.Category()
	if r.Severity == "" {
		r.Severity = check.Severity()
	}
	r.DurationMS = elapsed.Milliseconds()
	r.CheckHash = domain.HashCheckResult(r)
	return r
}

func failResult(check domain.DodCheck, message string, elapsed time.Duration) domain.DodCheckResult {
	r := domain.DodCheckResult{
		ID:       check.ID(),
		Category: check.Category(),
		Status:   domain.StatusFail,
		Severity: check.Severity(),
		Message:  message,
	}
	r.DurationMS = elapsed.Milliseconds()
	r.CheckHash = domain.HashCheckResult(r)
	return r
}

func skipResult(check domain.DodCheck, failedDep string) domain.DodCheckResult {
	r := domain.DodCheckResult{
		ID:       check.ID(),
		Category: check.Category(),
		Status:   domain.StatusSkip,
		Severity: check.Severity(),
		Message:  fmt.Sprintf("skipped: dependency %s failed fatally", failedDep),
	}
	r.CheckHash = domain.HashCheckResult(r)
	return r
}
