// Package analyze implements the Declaration Visitor and the Symbol
// Analyzer (spec.md §4.2, §4.3): together they flatten parsed
// declarations into stub symbols, schedule their analysis with the
// scheduler, and drive each symbol through Parsed -> Populated -> Signed
// -> Processed.
//
// The two are one Go package rather than two, because they are mutually
// recursive by construction: the visitor schedules a task that calls back
// into the per-kind analyze routine, and most analyze routines
// (Module/Struct/Union/Class/TemplateInstance) themselves flatten a
// nested declaration list. Splitting them across packages would force an
// import cycle; keeping them together just makes that real dependency
// visible instead of hiding it behind an interface.
package analyze

import (
	"drift/eval"
	"drift/ir"
	"drift/layout"
	"drift/mangle"
	"drift/report"
	"drift/sched"
)

// EvaluatorBuilder constructs an Evaluator bound to a given identifier
// lookup, one of the external collaborators spec.md §6 lists.
type EvaluatorBuilder func(lookup eval.Lookup) eval.Evaluator

// Analyzer is the long-lived state shared by every analyze routine over
// the lifetime of a SemanticPass: the scheduler, the two external
// collaborator factories, the root Object class, and the resolved version
// predicate set used by static-if/version declarations.
type Analyzer struct {
	Sched       *sched.Scheduler
	EvalBuilder EvaluatorBuilder
	Layout      layout.DataLayout
	ObjectClass *ir.Symbol
	Versions    map[string]bool
}

// DefaultVersions is the compile-time predicate set spec.md §6 specifies,
// minus host-OS tags. No host-OS tag is added anywhere in this repository:
// sema.NewSemanticPass uses this set as it is.
func DefaultVersions() map[string]bool {
	return map[string]bool{
		"SDC":    true,
		"D_LP64": true,
		"X86_64": true,
		"Posix":  true,
	}
}

// NewModuleSymbol creates the stub symbol for a freshly visited module.
// Its scope's parent is nil; the implicit `object` import is wired by the
// caller (spec.md §4.3 Module) before flattening the module's own decls.
func NewModuleSymbol(name string) *ir.Symbol {
	sym := &ir.Symbol{Name: name, Kind: ir.KindModule, Linkage: ir.LinkageD}
	sym.Scope = ir.NewScope(nil, sym)
	return sym
}

// require is a small convenience wrapper so analyze routines read the way
// spec.md writes them: `a.require(sym, ir.Signed)`.
func (a *Analyzer) require(sym *ir.Symbol, stage ir.Step) {
	a.Sched.Require(sym, stage)
}

// assignMangle computes and records sym's mangle per spec.md §4.3: `_D` +
// accumulated prefix + type signature for D linkage, or the bare name for
// C linkage. Called no later than the Signed stage for any symbol kind
// that reaches it.
func assignMangle(sym *ir.Symbol, ctx Ctx, ft *ir.FunctionType) {
	switch sym.Linkage {
	case ir.LinkageD:
		sym.Mangle = mangle.DFunction(ctx.ManglePrefix, ft)
	case ir.LinkageC:
		sym.Mangle = mangle.CFunction(sym.Name)
	default:
		report.Raise(report.UnsupportedConstruct, sym.Location, "linkage is not supported for external symbols")
	}
}
