package analyze

import (
	"drift/ast"
	"drift/cast"
	"drift/ir"
	"drift/report"
	"drift/sched"
	"drift/vrp"
)

// analyzeVariable implements spec.md §4.3 Variable/Field. `auto` types
// resolve the initializer first and infer from it; otherwise the
// declared type is resolved, the initializer is built (default-
// constructed when absent) and implicit-cast-checked against it, and
// global-storage variables are evaluated at compile time. Non-static
// variables of aggregate type are left as a default-init expression
// rather than an evaluated constant, since they have no single scalar
// value to fold.
func (a *Analyzer) analyzeVariable(d *ast.VarDecl, sym *ir.Symbol, ctx Ctx) {
	sched.Publish(sym, ir.Populated)

	var declaredType ir.Type
	if d.Type != nil && !isAutoType(d.Type) {
		declaredType = a.resolveType(d.Type, ctx)
	}

	var initType ir.Type
	var initRange vrp.Range
	hasInit := d.Init != nil

	if hasInit {
		initType = exprType(a, d.Init, ctx)
		initRange = rangeOf(a, d.Init, initType, ctx)
	}

	var finalType ir.Type
	switch {
	case declaredType == nil && hasInit:
		finalType = initType
	case declaredType != nil:
		finalType = declaredType
		if hasInit && !cast.Implicit(initType, finalType, initRange) {
			report.Raise(report.TypeMismatch, d.Init.Span(), "cannot implicitly convert %s to %s", initType.Repr(), finalType.Repr())
		}
	default:
		report.Raise(report.TypeMismatch, d.Span(), "cannot infer type of `%s` without an initializer", d.Name)
	}

	sym.Type = finalType

	if sym.Linkage == ir.LinkageC {
		sym.Mangle = sym.Name
	} else {
		sym.Mangle = ctx.ManglePrefix + "." + d.Name
	}

	sched.Publish(sym, ir.Signed)

	isAggregate := false
	if _, ok := finalType.(*ir.AggregateType); ok {
		isAggregate = true
	}

	if sym.Storage == ir.StorageStatic && !isAggregate {
		if hasInit {
			folder := a.EvalBuilder(a.ScopeLookup(ctx.Scope))
			v, err := folder.EvalIntegral(d.Init)
			if err != nil {
				report.Raise(report.CompileTimeEvaluationError, d.Init.Span(), "global variable initializer must be a compile-time constant: %s", err)
			}
			sym.Var.Value = v
			sym.Var.Immutable = true
		}
	}

	sched.Publish(sym, ir.Processed)
}

// rangeOf computes the VRP range of e at type t, tolerating expression
// shapes VRP does not model by falling back to the full range of t rather
// than aborting the whole variable's analysis — VRP involvement here is
// an optimization (it lets a provably-safe narrowing succeed), not a
// correctness requirement.
func rangeOf(a *Analyzer, e ast.Expr, t ir.Type, ctx Ctx) (r vrp.Range) {
	if _, ok := t.(*ir.BuiltinType); !ok {
		return vrp.Range{}
	}
	defer func() {
		if x := recover(); x != nil {
			if _, ok := x.(*report.CompileError); ok {
				r = vrp.Repack(vrp.Range{Min: 0, Max: ^uint64(0)}, t)
				return
			}
			panic(x)
		}
	}()
	return cast.VisitRange(e, t, cast.Lookup(a.ScopeLookup(ctx.Scope)))
}
