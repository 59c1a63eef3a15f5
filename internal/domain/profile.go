package domain

import (
	"fmt"
	"math"
)

// ParallelismMode controls how many checks run concurrently within a wave.
type ParallelismMode string

const (
	ParallelismSerial ParallelismMode = "serial"
	ParallelismAuto   ParallelismMode = "auto"
	ParallelismFixed  ParallelismMode = "fixed"
)

// Parallelism is the worker budget for a run.
type Parallelism struct {
	Mode    ParallelismMode `yaml:"mode"    json:"mode"`
	Workers int             `yaml:"workers" json:"workers,omitempty"`
}

// Thresholds are the soft and hard quality gates of a profile.
type Thresholds struct {
	MinReadinessScore    float64 `yaml:"min_readiness_score"     json:"min_readiness_score"`
	MaxWarnings          int     `yaml:"max_warnings"            json:"max_warnings"`
	RequireAllTestsPass  bool    `yaml:"require_all_tests_pass"  json:"require_all_tests_pass"`
	FailOnClippyWarnings bool    `yaml:"fail_on_clippy_warnings" json:"fail_on_clippy_warnings"`
}

// TimeoutsMS holds per-category timeout buckets in milliseconds.
type TimeoutsMS struct {
	Build   int64 `yaml:"build"   json:"build"`
	Tests   int64 `yaml:"tests"   json:"tests"`
	Ggen    int64 `yaml:"ggen"    json:"ggen"`
	Default int64 `yaml:"default" json:"default"`
}

// DodProfile is the externally authored configuration of a run. It is
// validated before use and immutable for the run's duration.
type DodProfile struct {
	Name            string                    `yaml:"name"             json:"name"`
	Description     string                    `yaml:"description"      json:"description,omitempty"`
	RequiredChecks  []string                  `yaml:"required_checks"  json:"required_checks"`
	OptionalChecks  []string                  `yaml:"optional_checks"  json:"optional_checks,omitempty"`
	CategoryWeights map[CheckCategory]float64 `yaml:"category_weights" json:"category_weights"`
	Thresholds      Thresholds                `yaml:"thresholds"       json:"thresholds"`
	TimeoutsMS      TimeoutsMS                `yaml:"timeouts_ms"      json:"timeouts_ms"`
	Parallelism     Parallelism               `yaml:"parallelism"      json:"parallelism"`
}

const weightTolerance = 0.001

// Validate returns every violated invariant, or nil when the profile is
// usable as-is.
func (p *DodProfile) Validate() error {
	var violations []string

	if p.Name == "" {
		violations = append(violations, "name must not be empty")
	}

	var sum float64
	for cat, w := range p.CategoryWeights {
		if !cat.IsValid() {
			violations = append(violations, fmt.Sprintf("unknown category %q in weights", cat))
		}
		if w < 0 || w > 1 {
			violations = append(violations, fmt.Sprintf("weight for %s out of range [0,1]: %v", cat, w))
		}
		sum += w
	}
	if len(p.CategoryWeights) == 0 {
		violations = append(violations, "category_weights must not be empty")
	} else if math.Abs(sum-1.0) > weightTolerance {
		violations = append(violations, fmt.Sprintf("category weights sum to %.4f, want 1.0 ±%.3f", sum, weightTolerance))
	}

	if p.Thresholds.MinReadinessScore < 0 || p.Thresholds.MinReadinessScore > 100 {
		violations = append(violations, fmt.Sprintf("min_readiness_score out of range [0,100]: %v", p.Thresholds.MinReadinessScore))
	}
	if p.Thresholds.MaxWarnings < 0 {
		violations = append(violations, fmt.Sprintf("max_warnings must be >= 0, got %d", p.Thresholds.MaxWarnings))
	}

	for _, id := range append(append([]string{}, p.RequiredChecks...), p.OptionalChecks...) {
		if !IsWellFormedCheckID(id) {
			violations = append(violations, fmt.Sprintf("malformed check id %q", id))
		}
	}

	for name, ms := range map[string]int64{
		"build":   p.TimeoutsMS.Build,
		"tests":   p.TimeoutsMS.Tests,
		"ggen":    p.TimeoutsMS.Ggen,
		"default": p.TimeoutsMS.Default,
	} {
		if ms <= 0 {
			violations = append(violations, fmt.Sprintf("timeout %s must be > 0, got %d", name, ms))
		}
	}

	switch p.Parallelism.Mode {
	case ParallelismSerial, ParallelismAuto:
	case ParallelismFixed:
		if p.Parallelism.Workers < 1 {
			violations = append(violations, fmt.Sprintf("fixed parallelism needs workers >= 1, got %d", p.Parallelism.Workers))
		}
	default:
		violations = append(violations, fmt.Sprintf("unknown parallelism mode %q", p.Parallelism.Mode))
	}

	if len(violations) > 0 {
		return &ProfileValidationError{Profile: p.Name, Violations: violations}
	}
	return nil
}

// IsWellFormedCheckID reports whether id is a non-empty SCREAMING_SNAKE
// identifier (letters, digits, underscores, starting with a letter).
func IsWellFormedCheckID(id string) bool {
	if id == "" {
		return false
	}
	for i, r := range id {
		switch {
		case r >= 'A' && r <= 'Z':
		case r == '_' && i > 0:
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// WorkingSet returns required ∪ optional check ids, required first,
// duplicates removed.
func (p *DodProfile) WorkingSet() []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range p.RequiredChecks {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range p.OptionalChecks {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// TimeoutFor resolves the timeout bucket for a category in milliseconds.
func (p *DodProfile) TimeoutFor(cat CheckCategory) int64 {
	switch cat {
	case CategoryBuildCorrectness:
		return p.TimeoutsMS.Build
	case CategoryTestTruth:
		return p.TimeoutsMS.Tests
	case CategoryGgenPipeline:
		return p.TimeoutsMS.Ggen
	default:
		return p.TimeoutsMS.Default
	}
}

// DefaultProfile is the lenient built-in profile.
func DefaultProfile() *DodProfile {
	return &DodProfile{
		Name:           "default",
		Description:    "Lenient gate: fatal failures block, warnings are tolerated",
		RequiredChecks: []string{"WORKSPACE_LAYOUT", "BUILD_CHECK", "TEST_UNIT"},
		OptionalChecks: []string{"GOFMT_CHECK"},
		CategoryWeights: map[CheckCategory]float64{
			CategoryWorkspaceIntegrity:  0.10,
			CategoryIntentAlignment:     0.10,
			CategoryToolRegistry:        0.10,
			CategoryBuildCorrectness:    0.20,
			CategoryTestTruth:           0.20,
			CategoryGgenPipeline:        0.10,
			CategorySafetyInvariants:    0.10,
			CategoryDeploymentReadiness: 0.10,
		},
		Thresholds: Thresholds{
			MinReadinessScore: 70,
			MaxWarnings:       10,
		},
		TimeoutsMS: TimeoutsMS{
			Build:   300_000,
			Tests:   600_000,
			Ggen:    120_000,
			Default: 60_000,
		},
		Parallelism: Parallelism{Mode: ParallelismAuto},
	}
}

// EnterpriseProfile is the strict built-in profile.
func EnterpriseProfile() *DodProfile {
	return &DodProfile{
		Name:           "enterprise",
		Description:    "Strict gate: high readiness bar, zero warning budget",
		RequiredChecks: []string{"WORKSPACE_LAYOUT", "BUILD_CHECK", "TEST_UNIT", "GOFMT_CHECK", "GO_VET_CHECK"},
		CategoryWeights: map[CheckCategory]float64{
			CategoryWorkspaceIntegrity:  0.10,
			CategoryIntentAlignment:     0.05,
			CategoryToolRegistry:        0.05,
			CategoryBuildCorrectness:    0.25,
			CategoryTestTruth:           0.25,
			CategoryGgenPipeline:        0.10,
			CategorySafetyInvariants:    0.10,
			CategoryDeploymentReadiness: 0.10,
		},
		Thresholds: Thresholds{
			MinReadinessScore:    90,
			MaxWarnings:          0,
			RequireAllTestsPass:  true,
			FailOnClippyWarnings: true,
		},
		TimeoutsMS: TimeoutsMS{
			Build:   600_000,
			Tests:   900_000,
			Ggen:    300_000,
			Default: 120_000,
		},
		Parallelism: Parallelism{Mode: ParallelismSerial},
	}
}

// BuiltinProfiles returns the canonical profiles by name.
func BuiltinProfiles() map[string]*DodProfile {
	return map[string]*DodProfile{
		"default":    DefaultProfile(),
		"enterprise": EnterpriseProfile(),
	}
}
