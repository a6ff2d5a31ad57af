package orchestrator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// MaxRetries bounds spec.md 7's stage-validation retry loop; after this
// many failed validations the last attempt's state is kept and a
// warning logged.
const MaxRetries = 3

// Orchestrator sequences Stages in dependency order, running each
// through the constraint manager's pre/execute/post/validate lifecycle
// (spec.md 4.9) and streaming StageEvents to every registered observer.
type Orchestrator struct {
	stages   map[string]Stage
	order    []string
	events   []chan<- StageEvent
	log      *logrus.Logger
	cancel   chan struct{}
	paused   bool
	states   map[string]StageState
}

// New creates an empty Orchestrator. log may be nil, in which case a
// default logrus.Logger is used (grounded on spec.md 2's ambient
// structured-logging choice).
func New(log *logrus.Logger) *Orchestrator {
	if log == nil {
		log = logrus.New()
	}
	return &Orchestrator{
		stages: make(map[string]Stage),
		log:    log,
		cancel: make(chan struct{}),
		states: make(map[string]StageState),
	}
}

// Register adds a stage; order is resolved lazily by Run via a
// topological sort over Dependencies().
func (o *Orchestrator) Register(s Stage) {
	o.stages[s.Name()] = s
	o.states[s.Name()] = StateNotStarted
}

// Subscribe registers a channel to receive every StageEvent Run emits,
// matching spec.md 6's run(stages) progress stream contract. The caller
// owns draining the channel; Subscribe never blocks Run waiting for a
// slow reader beyond one buffered send (see emit).
func (o *Orchestrator) Subscribe(ch chan<- StageEvent) {
	o.events = append(o.events, ch)
}

func (o *Orchestrator) emit(ev StageEvent) {
	for _, ch := range o.events {
		select {
		case ch <- ev:
		default:
			// Slow observer: drop rather than block the pipeline, matching
			// the teacher's broadcastMeshData which closes unresponsive
			// websocket clients rather than stalling simulation.
		}
	}
}

// Cancel requests cooperative cancellation (spec.md 5: "each stage polls
// a cancellation flag between inner-loop chunks").
func (o *Orchestrator) Cancel() { close(o.cancel) }

// Pause implements spec.md 6's pause(): the next stage boundary will
// observe Paused() and hold before starting a new stage. It does not
// interrupt a stage already in flight (spec.md 5: suspension points are
// only at stage boundaries).
func (o *Orchestrator) Pause() { o.paused = true }

// Resume implements spec.md 6's resume(), clearing a prior Pause.
func (o *Orchestrator) Resume() { o.paused = false }

// Paused reports whether Pause has been called without a matching
// Resume.
func (o *Orchestrator) Paused() bool { return o.paused }

// topoSort resolves a dependency-respecting run order for the requested
// stage names (spec.md 4.9: "drives stages in dependency order").
func (o *Orchestrator) topoSort(names []string) ([]string, error) {
	visited := make(map[string]int) // 0=unvisited,1=visiting,2=done
	var order []string
	var visit func(name string) error
	visit = func(name string) error {
		switch visited[name] {
		case 2:
			return nil
		case 1:
			return &Error{Kind: ErrInternalAssertion, Stage: name, Message: "dependency cycle"}
		}
		visited[name] = 1
		stage, ok := o.stages[name]
		if !ok {
			return &Error{Kind: ErrInvalidParameter, Stage: name, Message: "unknown stage"}
		}
		deps := append([]string(nil), stage.Dependencies()...)
		sort.Strings(deps)
		for _, dep := range deps {
			if err := visit(dep); err != nil {
				return err
			}
		}
		visited[name] = 2
		order = append(order, name)
		return nil
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for _, name := range sorted {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return order, nil
}

// Run implements spec.md 6's run(stages): executes every named stage (in
// dependency order) through the constraint-manager lifecycle, retrying
// up to MaxRetries on validation failure, and returns the first
// unrecoverable error (ErrConstraintConflict pauses rather than aborting;
// ErrCancelled is returned once Cancel has been called).
func (o *Orchestrator) Run(ctx context.Context, names []string) error {
	order, err := o.topoSort(names)
	if err != nil {
		return err
	}

	for _, name := range order {
		select {
		case <-o.cancel:
			o.states[name] = StatePaused
			return &Error{Kind: ErrCancelled, Stage: name, Message: "cancelled before stage start"}
		default:
		}

		for o.paused {
			select {
			case <-o.cancel:
				o.states[name] = StatePaused
				return &Error{Kind: ErrCancelled, Stage: name, Message: "cancelled while paused"}
			case <-time.After(50 * time.Millisecond):
			}
		}

		if err := o.runStage(ctx, o.stages[name]); err != nil {
			return err
		}
	}
	return nil
}

func (o *Orchestrator) runStage(ctx context.Context, stage Stage) error {
	name := stage.Name()
	start := time.Now()
	o.states[name] = StateRunning
	o.emit(StageEvent{Stage: name, State: StateRunning, Elapsed: 0})

	var lastErr error
	for attempt := 0; attempt <= MaxRetries; attempt++ {
		progress := func(done, total int) {
			o.emit(StageEvent{Stage: name, State: StateRunning, TilesDone: done, TilesTotal: total, Elapsed: time.Since(start)})
		}

		runErr := stage.Run(ctx, progress)
		if runErr != nil {
			if oerr, ok := runErr.(*Error); ok && oerr.Kind == ErrCancelled {
				o.states[name] = StatePaused
				o.emit(StageEvent{Stage: name, State: StatePaused, Elapsed: time.Since(start)})
				return oerr
			}
			lastErr = runErr
			o.log.WithFields(logrus.Fields{"stage": name, "attempt": attempt}).WithError(runErr).Warn("stage run failed")
			continue
		}

		if conflict := stage.Validate(); conflict != nil {
			lastErr = &Error{Kind: ErrConstraintConflict, Stage: name, Message: conflict.Reason, Conflict: conflict}
			o.log.WithFields(logrus.Fields{
				"stage": name, "tile": conflict.Tile, "property": conflict.Property,
			}).Warn("constraint conflict; stage paused pending resolution")
			o.states[name] = StatePaused
			o.emit(StageEvent{Stage: name, State: StatePaused, Elapsed: time.Since(start)})
			return lastErr
		}

		o.states[name] = StateCompleted
		o.emit(StageEvent{Stage: name, State: StateCompleted, Elapsed: time.Since(start)})
		return nil
	}

	o.log.WithField("stage", name).WithError(lastErr).Error("stage exhausted retries; keeping last attempt's state")
	o.states[name] = StateFailed
	o.emit(StageEvent{Stage: name, State: StateFailed, Elapsed: time.Since(start)})
	return fmt.Errorf("stage %q failed after %d retries: %w", name, MaxRetries, lastErr)
}

// State reports a stage's last-known lifecycle state.
func (o *Orchestrator) State(name string) StageState { return o.states[name] }

// RedoStage implements spec.md 6's redo_stage(name) by calling Run with
// just that name, so every stage it depends on is run again first,
// whether or not it has already completed.
func (o *Orchestrator) RedoStage(ctx context.Context, name string) error {
	return o.Run(ctx, []string{name})
}
