package analyze

import (
	"strconv"

	"drift/ast"
	"drift/ir"
	"drift/mangle"
	"drift/report"
	"drift/sched"
)

// analyzeSymbolAlias implements spec.md §4.3 Aliases: a SymbolAlias
// resolves its target identifier, then adopts the target's mangle at
// Populated and its hasContext flag at Signed.
func (a *Analyzer) analyzeSymbolAlias(d *ast.AliasDecl, sym *ir.Symbol, ctx Ctx) {
	id, ok := d.Target.(*ast.Identifier)
	if !ok {
		report.Raise(report.UnsupportedConstruct, d.Span(), "symbol alias target must be a bare identifier")
	}
	target := a.resolveIdentifier(ctx.Scope, id.Name, d.Span())

	sym.Alias = &ir.AliasData{TargetSymbol: target}
	sym.Type = target.Type
	sym.Mangle = target.Mangle
	sched.Publish(sym, ir.Populated)

	sym.HasContext = target.HasContext
	sched.Publish(sym, ir.Signed)
	sched.Publish(sym, ir.Processed)
}

// analyzeTypeAlias implements spec.md §4.3 Aliases: a TypeAlias resolves
// its named type and mangles the resolved type.
func (a *Analyzer) analyzeTypeAlias(d *ast.AliasDecl, sym *ir.Symbol, ctx Ctx) {
	sched.Publish(sym, ir.Populated)

	t := a.resolveType(d.Type, ctx)
	sym.Alias = &ir.AliasData{TargetType: t}
	sym.Type = t
	sym.Mangle = mangle.Type(t)

	sched.Publish(sym, ir.Signed)
	sched.Publish(sym, ir.Processed)
}

// analyzeValueAlias implements spec.md §4.3 Aliases: a ValueAlias
// compile-time-evaluates its expression and mangles the type and value
// together (the type's mangle, suffixed with the folded value).
func (a *Analyzer) analyzeValueAlias(d *ast.AliasDecl, sym *ir.Symbol, ctx Ctx) {
	sched.Publish(sym, ir.Populated)

	folder := a.EvalBuilder(a.ScopeLookup(ctx.Scope))
	v, err := folder.EvalIntegral(d.Target)
	if err != nil {
		report.Raise(report.CompileTimeEvaluationError, d.Target.Span(), "value alias must be a compile-time constant: %s", err)
	}

	t := &ir.BuiltinType{Kind: ir.Int}
	sym.Alias = &ir.AliasData{TargetType: t, Value: v}
	sym.Type = t
	sym.Mangle = mangle.Type(t) + strconv.FormatUint(v, 10)

	sched.Publish(sym, ir.Signed)
	sched.Publish(sym, ir.Processed)
}
