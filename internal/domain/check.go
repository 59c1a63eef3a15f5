package domain

import (
	"context"
	"time"
)

// CheckContext is the immutable execution input handed to every check.
type CheckContext struct {
	WorkspaceRoot string
	Mode          ValidationMode
	Timeout       time.Duration
}

// DodCheck is the contract every pluggable check implements.
//
// ID must be globally unique and stable across releases: receipt hashing
// depends on it. Execute may perform arbitrary I/O but must honor ctx;
// the executor converts errors and panics into Fail results.
type DodCheck interface {
	ID() string
	Category() CheckCategory
	Severity() CheckSeverity
	Description() string
	Dependencies() []string
	Execute(ctx context.Context, cc CheckContext) (*DodCheckResult, error)
}

// CheckRegistry maps check ids to implementations, preserving insertion
// order for deterministic batch output. It is read-only once a run starts.
type CheckRegistry struct {
	checks map[string]DodCheck
	order  []string
}

// NewCheckRegistry creates an empty registry.
func NewCheckRegistry() *CheckRegistry {
	return &CheckRegistry{checks: make(map[string]DodCheck)}
}

// Register inserts a check by id. Re-registering an id replaces the
// implementation but keeps its original position.
func (r *CheckRegistry) Register(check DodCheck) {
	id := check.ID()
	if _, exists := r.checks[id]; !exists {
		r.order = append(r.order, id)
	}
	r.checks[id] = check
}

// Get returns the check registered under id, or nil.
func (r *CheckRegistry) Get(id string) DodCheck {
	return r.checks[id]
}

// Has reports whether id is registered.
func (r *CheckRegistry) Has(id string) bool {
	_, ok := r.checks[id]
	return ok
}

// ByCategory returns all checks in cat, in registration order.
func (r *CheckRegistry) ByCategory(cat CheckCategory) []DodCheck {
	var out []DodCheck
	for _, id := range r.order {
		if c := r.checks[id]; c.Category() == cat {
			out = append(out, c)
		}
	}
	return out
}

// IDs returns every registered id in registration order.
func (r *CheckRegistry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered checks.
func (r *CheckRegistry) Len() int { return len(r.checks) }
