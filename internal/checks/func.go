package checks

import (
	"context"

	"github.com/dodgate/dodgate/internal/domain"
)

// Func adapts a closure into a DodCheck, for callers that want to plug in
// checks without defining a type.
type Func struct {
	CheckID   string
	Cat       domain.CheckCategory
	Sev       domain.CheckSeverity
	Desc      string
	DependsOn []string
	Run       func(ctx context.Context, cc domain.CheckContext) (*domain.DodCheckResult, error)
}

func (f *Func) ID() string                     { return f.CheckID }
func (f *Func) Category() domain.CheckCategory { return f.Cat }
func (f *Func) Severity() domain.CheckSeverity { return f.Sev }
func (f *Func) Description() string            { return f.Desc }
func (f *Func) Dependencies() []string         { return f.DependsOn }

func (f *Func) Execute(ctx context.Context, cc domain.CheckContext) (*domain.DodCheckResult, error) {
	return f.Run(ctx, cc)
}
