package analyze

import (
	"drift/ast"
	"drift/ir"
	"drift/sched"
)

// AnalyzeModuleEntry is the scheduled entry point sema.SemanticPass.Add
// registers for a freshly admitted module. It is the only way to reach
// analyzeModule: analyzeDecl does not dispatch modules (a module is never
// itself a nested member declaration).
func (a *Analyzer) AnalyzeModuleEntry(mod *ast.Module, sym *ir.Symbol, ctx Ctx) {
	a.analyzeModule(mod, sym, ctx)
}

// analyzeModule implements spec.md §4.3 Module: flatten declarations into
// the module scope (the implicit `object` import is prepended by the
// caller constructing the Module before this task ever runs — see
// sema.SemanticPass.Add) and advance to Processed only once every member has.
func (a *Analyzer) analyzeModule(mod *ast.Module, sym *ir.Symbol, ctx Ctx) {
	ctx = ctx.WithScope(sym.Scope).WithMangle("")

	members := a.Flatten(mod.Decls, sym.Scope, ctx, nil)

	sched.Publish(sym, ir.Populated)

	for _, m := range members {
		a.require(m, ir.Processed)
	}

	sched.Publish(sym, ir.Signed)
	sched.Publish(sym, ir.Processed)
}
