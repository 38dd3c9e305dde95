package analyze

import (
	"drift/ast"
	"drift/ir"
	"drift/mangle"
	"drift/sched"
)

// analyzeInterface implements spec.md §4.3 Interface: presently minimal,
// mangle only. Member signatures and interface inheritance are reserved
// for a future pass; an interface's scope exists so other declarations can
// still resolve its name, but it is left with no fields or methods.
func (a *Analyzer) analyzeInterface(d *ast.InterfaceDecl, sym *ir.Symbol, ctx Ctx) {
	sym.Aggregate = &ir.AggregateData{}
	sym.Type = &ir.AggregateType{Sym: sym}
	sym.Scope = ir.NewScope(ctx.Scope, sym)
	sched.Publish(sym, ir.Populated)

	sym.Mangle = mangle.AggregateTag(sym.Kind) + mangle.AppendIdent(ctx.ManglePrefix, sym.Name)
	sched.Publish(sym, ir.Signed)
	sched.Publish(sym, ir.Processed)
}
