package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Configuration errors abort a run before any check executes.
var (
	// ErrUnknownCheck indicates a profile references a check id that is
	// not present in the registry.
	ErrUnknownCheck = errors.New("unknown check id")

	// ErrDependencyCycle indicates the dependency graph of the selected
	// checks contains a cycle.
	ErrDependencyCycle = errors.New("dependency cycle detected")
)

// ProfileValidationError collects every invariant a profile violates,
// not just the first.
type ProfileValidationError struct {
	Profile    string
	Violations []string
}

func (e *ProfileValidationError) Error() string {
	return fmt.Sprintf("invalid profile %q: %s", e.Profile, strings.Join(e.Violations, "; "))
}
