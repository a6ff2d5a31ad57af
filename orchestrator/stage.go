package orchestrator

import "context"

// Stage is one pipeline step (spec.md 4.9: "stages expose dependencies,
// constraint_kinds, validate, progress, and undo").
type Stage interface {
	Name() string
	Dependencies() []string
	ConstraintKinds() []Property
	Run(ctx context.Context, progress func(done, total int)) error
	Validate() *ConflictReport
	Undo()
}

// FuncStage adapts a plain run/validate/undo function set into a Stage,
// the same way kernel's NeighborFunc/ScoreFunc/GateFunc adapters keep
// callers decoupled from a concrete type — here decoupling the
// orchestrator from any one generation package.
type FuncStage struct {
	StageName    string
	DependsOn    []string
	Locks        []Property
	RunFunc      func(ctx context.Context, progress func(done, total int)) error
	ValidateFunc func() *ConflictReport
	UndoFunc     func()
}

func (f *FuncStage) Name() string               { return f.StageName }
func (f *FuncStage) Dependencies() []string      { return f.DependsOn }
func (f *FuncStage) ConstraintKinds() []Property { return f.Locks }

func (f *FuncStage) Run(ctx context.Context, progress func(done, total int)) error {
	return f.RunFunc(ctx, progress)
}

func (f *FuncStage) Validate() *ConflictReport {
	if f.ValidateFunc == nil {
		return nil
	}
	return f.ValidateFunc()
}

func (f *FuncStage) Undo() {
	if f.UndoFunc != nil {
		f.UndoFunc()
	}
}
