package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/fatih/camelcase"
)

// CheckCategory is the scoring bucket a check belongs to.
type CheckCategory string

const (
	CategoryWorkspaceIntegrity  CheckCategory = "WorkspaceIntegrity"
	CategoryIntentAlignment     CheckCategory = "IntentAlignment"
	CategoryToolRegistry        CheckCategory = "ToolRegistry"
	CategoryBuildCorrectness    CheckCategory = "BuildCorrectness"
	CategoryTestTruth           CheckCategory = "TestTruth"
	CategoryGgenPipeline        CheckCategory = "GgenPipeline"
	CategorySafetyInvariants    CheckCategory = "SafetyInvariants"
	CategoryDeploymentReadiness CheckCategory = "DeploymentReadiness"
)

// AllCategories enumerates every category in report order.
var AllCategories = []CheckCategory{
	CategoryWorkspaceIntegrity,
	CategoryIntentAlignment,
	CategoryToolRegistry,
	CategoryBuildCorrectness,
	CategoryTestTruth,
	CategoryGgenPipeline,
	CategorySafetyInvariants,
	CategoryDeploymentReadiness,
}

// DisplayName splits the CamelCase category name into words for reports.
func (c CheckCategory) DisplayName() string {
	return strings.Join(camelcase.Split(string(c)), " ")
}

// IsValid reports whether c is one of the known categories.
func (c CheckCategory) IsValid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// CheckSeverity determines how much verdict-blocking power a check has.
type CheckSeverity string

const (
	SeverityFatal   CheckSeverity = "Fatal"
	SeverityWarning CheckSeverity = "Warning"
	SeverityInfo    CheckSeverity = "Info"
)

// CheckStatus is the outcome of a single check execution.
type CheckStatus string

const (
	StatusPass CheckStatus = "Pass"
	StatusFail CheckStatus = "Fail"
	StatusWarn CheckStatus = "Warn"
	StatusSkip CheckStatus = "Skip"
)

// Verdict is the top-level gate decision for a run.
type Verdict string

const (
	VerdictPass        Verdict = "Pass"
	VerdictPartialPass Verdict = "PartialPass"
	VerdictFail        Verdict = "Fail"
)

// ValidationMode selects how thorough a run is. The core treats it as an
// opaque label carried into receipts and hashes.
type ValidationMode string

const (
	ModeFull  ValidationMode = "full"
	ModeQuick ValidationMode = "quick"
	ModeCI    ValidationMode = "ci"
)

// Evidence is a single piece of supporting material owned by the result
// that produced it.
type Evidence struct {
	Kind       string `json:"kind"`
	Content    string `json:"content"`
	FilePath   string `json:"file_path,omitempty"`
	LineNumber int    `json:"line_number,omitempty"`
	Hash       string `json:"hash"`
}

// NewEvidence builds an Evidence item with its content hash filled in.
func NewEvidence(kind, content string) Evidence {
	sum := sha256.Sum256([]byte(kind + ":" + content))
	return Evidence{
		Kind:    kind,
		Content: content,
		Hash:    hex.EncodeToString(sum[:]),
	}
}

// DodCheckResult is the immutable outcome of one check execution.
type DodCheckResult struct {
	ID          string        `json:"id"`
	Category    CheckCategory `json:"category"`
	Status      CheckStatus   `json:"status"`
	Severity    CheckSeverity `json:"severity"`
	Message     string        `json:"message"`
	Evidence    []Evidence    `json:"evidence,omitempty"`
	Remediation []string      `json:"remediation,omitempty"`
	DurationMS  int64         `json:"duration_ms"`
	CheckHash   string        `json:"check_hash,omitempty"`
}

// CategoryScore aggregates a single category's check outcomes for one run.
type CategoryScore struct {
	Category CheckCategory `json:"category"`
	Score    float64       `json:"score"`
	Weight   float64       `json:"weight"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Warned   int           `json:"warned"`
	Skipped  int           `json:"skipped"`
}

// DodValidationResult is the top-level output of a validation run.
type DodValidationResult struct {
	RunID          string                          `json:"run_id"`
	Verdict        Verdict                         `json:"verdict"`
	ReadinessScore float64                         `json:"readiness_score"`
	Profile        string                          `json:"profile"`
	Mode           ValidationMode                  `json:"mode"`
	Summary        string                          `json:"summary"`
	CategoryScores map[CheckCategory]CategoryScore `json:"category_scores"`
	CheckResults   []DodCheckResult                `json:"check_results"`
	Suggestions    []Suggestion                    `json:"suggestions,omitempty"`
	ReceiptPath    string                          `json:"receipt_path,omitempty"`
	ReportPath     string                          `json:"report_path,omitempty"`
	EvidencePath   string                          `json:"evidence_path,omitempty"`
	DurationMS     int64                           `json:"duration_ms"`
	Timestamp      time.Time                       `json:"timestamp"`
}

// Counts tallies results by status.
func Counts(results []DodCheckResult) (passed, failed, warned, skipped int) {
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			passed++
		case StatusFail:
			failed++
		case StatusWarn:
			warned++
		case StatusSkip:
			skipped++
		}
	}
	return passed, failed, warned, skipped
}
