package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dodgate/dodgate/internal/domain"
)

// ValidatorOptions tune a single validation run.
type ValidatorOptions struct {
	// Profile overrides the loader when set.
	Profile *domain.DodProfile
	Mode    domain.ValidationMode

	// GenerateEvidence assembles the audit bundle after the run.
	GenerateEvidence bool
	Observer         domain.Observer
}

// DodValidator is the composition root: it wires registry, executor,
// scoring, verdict, remediation, report, receipt and evidence generation
// into a single validate call.
type DodValidator struct {
	registry *domain.CheckRegistry
	profiles domain.ProfileLoader
	git      domain.GitInfo
	receipts domain.ReceiptStore
	bundler  domain.EvidenceBundler
	reports  *ReportWriter
	remedy   *domain.RemediationGenerator
}

// NewDodValidator creates a validator with all required collaborators.
// git and bundler may be nil: git metadata is best-effort and evidence
// generation is opt-in.
func NewDodValidator(
	registry *domain.CheckRegistry,
	profiles domain.ProfileLoader,
	git domain.GitInfo,
	receipts domain.ReceiptStore,
	bundler domain.EvidenceBundler,
	reports *ReportWriter,
) *DodValidator {
	return &DodValidator{
		registry: registry,
		profiles: profiles,
		git:      git,
		receipts: receipts,
		bundler:  bundler,
		reports:  reports,
		remedy:   domain.NewRemediationGenerator(),
	}
}

// Validate runs the full pipeline against workspaceRoot.
//
// Check failures are data and always produce a complete result; only
// configuration errors and audit-infrastructure failures return an error.
func (v *DodValidator) Validate(ctx context.Context, workspaceRoot string, opts ValidatorOptions) (*domain.DodValidationResult, error) {
	start := time.Now()

	profile, err := v.resolveProfile(workspaceRoot, opts)
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = domain.ModeFull
	}

	executor := NewCheckExecutor(v.registry, profile)
	if opts.Observer != nil {
		executor = executor.WithObserver(opts.Observer)
	}

	cc := domain.CheckContext{WorkspaceRoot: workspaceRoot, Mode: mode}
	results, err := executor.ExecuteAll(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("executing checks: %w", err)
	}

	scores := domain.ComputeCategoryScores(profile, results)
	readiness := domain.ComputeReadinessScore(scores)
	verdict := domain.OverallVerdict(results, readiness, profile.Thresholds)
	suggestions := v.remedy.Generate(results)

	passed, failed, warned, skipped := domain.Counts(results)
	result := &domain.DodValidationResult{
		RunID:          uuid.New().String(),
		Verdict:        verdict,
		ReadinessScore: readiness,
		Profile:        profile.Name,
		Mode:           mode,
		Summary: fmt.Sprintf("%d passed, %d failed, %d warned, %d skipped",
			passed, failed, warned, skipped),
		CategoryScores: scores,
		CheckResults:   results,
		Suggestions:    suggestions,
		DurationMS:     time.Since(start).Milliseconds(),
		Timestamp:      start,
	}

	if v.reports != nil {
		reportPath, err := v.reports.Write(result)
		if err != nil {
			return nil, fmt.Errorf("writing report: %w", err)
		}
		result.ReportPath = reportPath
	}

	receipt := domain.BuildReceipt(result, v.receiptMetadata(workspaceRoot))
	receiptPath, err := v.receipts.Save(receipt)
	if err != nil {
		return nil, fmt.Errorf("saving receipt: %w", err)
	}
	result.ReceiptPath = receiptPath

	if opts.GenerateEvidence && v.bundler != nil {
		bundlePath, err := v.bundler.Generate(result, workspaceRoot)
		if err != nil {
			return nil, fmt.Errorf("generating evidence bundle: %w", err)
		}
		result.EvidencePath = bundlePath
	}

	return result, nil
}

// ValidateSingle runs one check by id, without dependency resolution.
func (v *DodValidator) ValidateSingle(ctx context.Context, workspaceRoot, checkID string, opts ValidatorOptions) (*domain.DodCheckResult, error) {
	profile, err := v.resolveProfile(workspaceRoot, opts)
	if err != nil {
		return nil, err
	}

	mode := opts.Mode
	if mode == "" {
		mode = domain.ModeFull
	}

	executor := NewCheckExecutor(v.registry, profile)
	return executor.ExecuteOne(ctx, checkID, domain.CheckContext{WorkspaceRoot: workspaceRoot, Mode: mode})
}

func (v *DodValidator) resolveProfile(workspaceRoot string, opts ValidatorOptions) (*domain.DodProfile, error) {
	if opts.Profile != nil {
		if err := opts.Profile.Validate(); err != nil {
			return nil, err
		}
		return opts.Profile, nil
	}

	profile, err := v.profiles.Load(workspaceRoot)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	return profile, nil
}

// receiptMetadata collects best-effort git facts. Any git failure degrades
// to empty fields, never an error: it must not block receipt generation.
func (v *DodValidator) receiptMetadata(workspaceRoot string) domain.ReceiptMetadata {
	meta := domain.ReceiptMetadata{WorkspaceRoot: workspaceRoot}
	if v.git == nil || !v.git.IsGitRepo(workspaceRoot) {
		return meta
	}
	if commit, err := v.git.CommitHash(workspaceRoot); err == nil {
		meta.GitCommit = commit
	}
	if branch, err := v.git.Branch(workspaceRoot); err == nil {
		meta.GitBranch = branch
	}
	return meta
}
