package sched

import (
	"testing"

	"drift/ir"
	"drift/report"
)

func newSym(name string) *ir.Symbol {
	return &ir.Symbol{Name: name, Step: ir.Parsed}
}

// A task that simply publishes every stage in order, as a real analyze
// routine does at each stage boundary (spec.md §4.1).
func straightThroughTask(sym *ir.Symbol) func() {
	return func() {
		Publish(sym, ir.Populated)
		Publish(sym, ir.Signed)
		Publish(sym, ir.Processed)
	}
}

func TestRequireReachesRequestedStage(t *testing.T) {
	s := New()
	sym := newSym("x")
	s.Schedule(sym, straightThroughTask(sym))

	s.Require(sym, ir.Signed)

	if sym.Step < ir.Signed {
		t.Fatalf("expected step >= Signed after require, got %s", sym.Step)
	}
}

// For any symbol s and stages S1 <= S2: after require(s, S2) returns,
// s.step >= S2 >= S1.
func TestRequireOrderingLaw(t *testing.T) {
	stages := []ir.Step{ir.Populated, ir.Signed, ir.Processed}

	for _, s2 := range stages {
		sym := newSym("s")
		s := New()
		s.Schedule(sym, straightThroughTask(sym))

		s.Require(sym, s2)

		if sym.Step < s2 {
			t.Fatalf("require(%s) returned with step %s", s2, sym.Step)
		}
		for _, s1 := range stages {
			if s1 <= s2 && sym.Step < s1 {
				t.Fatalf("step %s does not dominate lesser stage %s", sym.Step, s1)
			}
		}
	}
}

// Requiring a later stage than a prior requirement never regresses the
// symbol, and requiring an already-reached stage is a no-op.
func TestRequireMonotonic(t *testing.T) {
	s := New()
	sym := newSym("x")
	s.Schedule(sym, straightThroughTask(sym))

	s.Require(sym, ir.Populated)
	first := sym.Step

	s.Require(sym, ir.Populated)
	if sym.Step < first {
		t.Fatalf("step regressed from %s to %s on a repeated require", first, sym.Step)
	}

	s.Require(sym, ir.Processed)
	if sym.Step < first {
		t.Fatalf("step regressed from %s to %s advancing further", first, sym.Step)
	}
}

// A diamond of non-cyclic dependencies terminates and every symbol reaches
// Processed.
func TestRequireTerminatesOnNonCyclicDependencies(t *testing.T) {
	s := New()
	base := newSym("base")
	left := newSym("left")
	right := newSym("right")
	top := newSym("top")

	s.Schedule(base, straightThroughTask(base))
	s.Schedule(left, func() {
		Publish(left, ir.Populated)
		s.Require(base, ir.Processed)
		Publish(left, ir.Signed)
		Publish(left, ir.Processed)
	})
	s.Schedule(right, func() {
		Publish(right, ir.Populated)
		s.Require(base, ir.Processed)
		Publish(right, ir.Signed)
		Publish(right, ir.Processed)
	})
	s.Schedule(top, func() {
		Publish(top, ir.Populated)
		s.Require(left, ir.Processed)
		s.Require(right, ir.Processed)
		Publish(top, ir.Signed)
		Publish(top, ir.Processed)
	})

	s.Require(top, ir.Processed)

	for _, sym := range []*ir.Symbol{base, left, right, top} {
		if sym.Step != ir.Processed {
			t.Fatalf("%s did not reach Processed: %s", sym.Name, sym.Step)
		}
	}
}

// A genuine mutual dependency (a requires b at a stage it is still
// in-flight trying to reach, and b requires a the same way) raises
// CycleError rather than deadlocking or looping forever.
func TestRequireDetectsCycle(t *testing.T) {
	s := New()
	a := newSym("a")
	b := newSym("b")

	s.Schedule(a, func() {
		Publish(a, ir.Populated)
		s.Require(b, ir.Signed)
		Publish(a, ir.Signed)
		Publish(a, ir.Processed)
	})
	s.Schedule(b, func() {
		Publish(b, ir.Populated)
		s.Require(a, ir.Signed)
		Publish(b, ir.Signed)
		Publish(b, ir.Processed)
	})

	reporter := report.NewReporter(report.LogLevelSilent)
	ok := reporter.Catch("", func() {
		s.Require(a, ir.Processed)
	})

	if ok {
		t.Fatalf("expected cyclic dependency to raise a fatal error")
	}
	if !reporter.AnyErrors() {
		t.Fatalf("expected the reporter to record the cycle error")
	}
}

// Publish unblocks a dependent waiting only on an intermediate stage
// before the producer's own task has finished running.
func TestPublishUnblocksDependentAtIntermediateStage(t *testing.T) {
	s := New()
	producer := newSym("producer")
	var sawSignedDuringProducer ir.Step

	dependent := newSym("dependent")
	s.Schedule(dependent, func() {
		Publish(dependent, ir.Populated)
		s.Require(producer, ir.Signed)
		sawSignedDuringProducer = producer.Step
		Publish(dependent, ir.Signed)
		Publish(dependent, ir.Processed)
	})
	s.Schedule(producer, func() {
		Publish(producer, ir.Populated)
		Publish(producer, ir.Signed)
		s.Require(dependent, ir.Processed)
		Publish(producer, ir.Processed)
	})

	s.Require(producer, ir.Processed)

	if sawSignedDuringProducer < ir.Signed {
		t.Fatalf("dependent did not observe producer reaching Signed before producer finished")
	}
	if producer.Step != ir.Processed || dependent.Step != ir.Processed {
		t.Fatalf("both symbols should have reached Processed")
	}
}

func TestTerminateDrivesEverythingToProcessed(t *testing.T) {
	s := New()
	var syms []*ir.Symbol
	for _, name := range []string{"a", "b", "c"} {
		sym := newSym(name)
		syms = append(syms, sym)
		s.Schedule(sym, straightThroughTask(sym))
	}

	s.Terminate()

	for _, sym := range syms {
		if sym.Step != ir.Processed {
			t.Fatalf("%s not processed after Terminate: %s", sym.Name, sym.Step)
		}
	}
}

// Terminate must also drive symbols scheduled mid-pass (template
// instantiation, nested aggregates) to completion.
func TestTerminateDrivesSymbolsScheduledDuringTheRun(t *testing.T) {
	s := New()
	late := newSym("late")

	first := newSym("first")
	s.Schedule(first, func() {
		Publish(first, ir.Populated)
		s.Schedule(late, straightThroughTask(late))
		Publish(first, ir.Signed)
		Publish(first, ir.Processed)
	})

	s.Terminate()

	if late.Step != ir.Processed {
		t.Fatalf("symbol scheduled mid-run did not reach Processed: %s", late.Step)
	}
}

func TestPublishRejectsRegression(t *testing.T) {
	sym := newSym("x")
	Publish(sym, ir.Signed)

	reporter := report.NewReporter(report.LogLevelSilent)
	ok := reporter.Catch("", func() {
		Publish(sym, ir.Populated)
	})
	if ok {
		t.Fatalf("expected regressing Publish to panic")
	}
	if !reporter.AnyErrors() {
		t.Fatalf("expected the regression to be recorded as an internal error")
	}
}
