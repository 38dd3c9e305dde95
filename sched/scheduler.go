// Package sched implements the staged, cycle-tolerant scheduler described
// in spec.md §4.1: declarations are registered as tasks against their stub
// symbols, and analysis proceeds demand-driven as later stages `Require`
// earlier ones.
//
// The scheduling model is single-threaded and cooperative (spec.md §5):
// exactly one task runs at a time, and suspension happens only at an
// explicit Require call. Rather than modeling that with goroutines and
// channels (real preemption this pass must not have), each task is an
// ordinary Go closure and "suspension" is simply a nested call: Require
// recurses into the dependency's task on the same goroutine, using the Go
// call stack as the cooperative task stack. A symbol's Step field is the
// single synchronization signal a dependent task reads — exactly the
// contract spec.md §5 asks for, just expressed with recursion instead of
// fibers.
package sched

import (
	"drift/ir"
	"drift/report"
)

type taskState struct {
	task    func()
	running bool
	done    bool
}

// Scheduler owns the registered tasks and the active requiring chain used
// for cycle detection.
type Scheduler struct {
	tasks map[*ir.Symbol]*taskState
	// order preserves registration order so Terminate drives symbols in a
	// stable, deterministic sequence (siblings' relative order is
	// otherwise unspecified per spec.md §5, but determinism helps tests
	// and diagnostics reproduce).
	order []*ir.Symbol
	stack []*ir.Symbol
}

func New() *Scheduler {
	return &Scheduler{tasks: make(map[*ir.Symbol]*taskState)}
}

// Schedule registers a task that, when run, advances sym's analysis. It
// must be called at most once per symbol.
func (s *Scheduler) Schedule(sym *ir.Symbol, task func()) {
	if _, ok := s.tasks[sym]; ok {
		report.Assert(false, "symbol %s scheduled more than once", sym.Name)
	}
	s.tasks[sym] = &taskState{task: task}
	s.order = append(s.order, sym)
}

// Require returns only once sym.Step >= stage, running (or resuming, via
// recursion) sym's registered task as needed. It panics a CycleError if
// satisfying the request would require sym to depend on its own
// still-in-flight analysis at a stage it has not yet reached.
func (s *Scheduler) Require(sym *ir.Symbol, stage ir.Step) {
	if sym.Step >= stage {
		return
	}

	ts, ok := s.tasks[sym]
	if !ok {
		// No task registered (e.g. a symbol owned by another compilation
		// unit that is assumed already resolved): nothing more to do.
		return
	}

	if ts.running {
		report.Raise(
			report.CycleError,
			sym.Location,
			"cyclic dependency: `%s` requires itself to reach stage %s before it can finish reaching it",
			sym.Name, stage,
		)
	}

	if ts.done {
		// The task ran to whatever completion it could reach and sym.Step
		// is still below stage: the analyze routine has a bug.
		report.Assert(false, "symbol %s's task completed below stage %s (at %s)", sym.Name, stage, sym.Step)
	}

	s.stack = append(s.stack, sym)
	ts.running = true

	ts.task()

	ts.running = false
	s.stack = s.stack[:len(s.stack)-1]
	ts.done = true

	if sym.Step < stage {
		report.Assert(false, "analyze routine for %s returned below requested stage %s (reached %s)", sym.Name, stage, sym.Step)
	}
}

// Terminate drives every scheduled symbol to Processed. New symbols may be
// scheduled while others are being analyzed (template instantiation,
// nested aggregates); Terminate loops until a full pass schedules nothing
// new.
func (s *Scheduler) Terminate() {
	for {
		startLen := len(s.order)
		// Snapshot: s.order may grow as tasks run.
		for i := 0; i < len(s.order); i++ {
			sym := s.order[i]
			s.Require(sym, ir.Processed)
		}
		if len(s.order) == startLen {
			return
		}
	}
}

// Publish advances sym to stage directly. Analyze routines call this at
// each stage boundary they reach so dependents waiting only on that stage
// unblock immediately, even if this task itself continues on toward a
// later one (spec.md §4.1's "publishes intermediate stages as soon as
// reached").
func Publish(sym *ir.Symbol, stage ir.Step) {
	report.Assert(sym.Step <= stage, "symbol %s regressed from %s to %s", sym.Name, sym.Step, stage)
	sym.Step = stage
}
