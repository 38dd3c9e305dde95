package analyze

import (
	"drift/ast"
	"drift/cast"
	"drift/ir"
	"drift/mangle"
	"drift/report"
	"drift/sched"
)

// analyzeFunction implements spec.md §4.3 Function/Method: parameter
// resolution, closure context prepending, constructor desugaring, mangle
// prefix accumulation, explicit-vs-auto return type signing, body
// analysis, and auto-return inference.
func (a *Analyzer) analyzeFunction(d *ast.FuncDecl, sym *ir.Symbol, ctx Ctx) {
	fd := sym.Func

	// Step 1: parameter types and defaults.
	params := make([]*ir.Symbol, 0, len(d.Params))
	for _, p := range d.Params {
		pt := a.resolveType(p.Type, ctx)
		psym := &ir.Symbol{
			Name:     p.Name,
			Location: p.Span(),
			Kind:     ir.KindVariable,
			Storage:  ir.StorageLocal,
			Type:     pt,
			Step:     ir.Signed,
			Var:      &ir.VarData{},
		}
		if p.Default != nil {
			folder := a.EvalBuilder(a.ScopeLookup(ctx.Scope))
			if _, err := folder.Evaluate(p.Default); err != nil {
				report.Raise(report.CompileTimeEvaluationError, p.Default.Span(), "default parameter value must be a compile-time constant: %s", err)
			}
		}
		params = append(params, psym)
	}
	fd.Params = params

	// Step 2: closures prepend an implicit __ctx parameter.
	if sym.HasContext {
		ctxParam := &ir.Symbol{
			Name: "__ctx", Kind: ir.KindVariable, Storage: ir.StorageLocal,
			Type: &ir.ContextType{Owner: ctx.CtxSym}, Step: ir.Signed, Var: &ir.VarData{},
		}
		fd.Params = append([]*ir.Symbol{ctxParam}, fd.Params...)
	}

	// Step 3: mangle prefix and constructor desugaring.
	mangled := mangle.AppendIdent(ctx.ManglePrefix, sym.Name)
	thisType := ctx.ThisType

	if fd.IsCtor {
		this := &ir.Symbol{
			Name: "this", Kind: ir.KindVariable, Storage: ir.StorageLocal,
			Type: thisType, Step: ir.Signed, Var: &ir.VarData{},
		}
		fd.Params = append([]*ir.Symbol{this}, fd.Params...)
		fd.ThisType = thisType
	}

	var returnType ir.Type
	explicit := d.ReturnType != nil && !isAutoType(d.ReturnType)

	if fd.IsCtor {
		// Class/struct constructor convention: `ref this` on success.
		returnType = thisType
		explicit = true
	} else if explicit {
		returnType = a.resolveType(d.ReturnType, ctx)
	}

	bodyCtx := ctx.WithMangle(mangled).WithThis(thisType)

	if explicit {
		ft := &ir.FunctionType{Return: returnType, Variadic: d.IsVariadic}
		for _, p := range fd.Params {
			ft.Params = append(ft.Params, ir.ParamType{Type: p.Type})
		}
		sym.Type = ft
		assignMangle(sym, bodyCtx, ft)
		sched.Publish(sym, ir.Signed)
	} else {
		fd.ReturnAuto = true
		sched.Publish(sym, ir.Populated)
	}

	// Step 5: body analysis.
	if d.Body != nil {
		var scope *ir.Scope
		if sym.HasContext {
			scope = ir.NewClosureScope(ctx.Scope, sym)
		} else {
			scope = ir.NewScope(ctx.Scope, sym)
		}
		for _, p := range fd.Params {
			scope.AddSymbol(p)
		}
		sym.Scope = scope

		innerCtx := bodyCtx.WithScope(scope).WithReturn(returnType).WithCtxSym(sym)
		analyzeBody(a, d.Body, innerCtx)

		if fd.ReturnAuto {
			inferred := inferReturnType(a, d.Body, innerCtx)
			ft := &ir.FunctionType{Return: inferred, Variadic: d.IsVariadic}
			for _, p := range fd.Params {
				ft.Params = append(ft.Params, ir.ParamType{Type: p.Type})
			}
			sym.Type = ft
			assignMangle(sym, bodyCtx, ft)
			sched.Publish(sym, ir.Signed)
		}
	} else if fd.ReturnAuto {
		report.Raise(report.TypeMismatch, sym.Location, "function `%s` has no body to infer its `auto` return type from", sym.Name)
	}

	sched.Publish(sym, ir.Processed)
}

// analyzeBody walks a function body. Full flow analysis (closure-capture
// computation, reachability, definite-assignment) is the out-of-scope
// expression/statement walker; this just needs to touch every expression
// so default-value and return-type evaluation below has something to work
// with in the cases this core does handle.
func analyzeBody(a *Analyzer, body *ast.Block, ctx Ctx) {
	for _, stmt := range body.Stmts {
		if ret, ok := stmt.(*ast.ReturnStmt); ok && ret.Value != nil {
			// Touch identifiers so unresolved names are still caught even
			// though general expression type-checking is out of scope.
			if id, ok := ret.Value.(*ast.Identifier); ok {
				a.resolveIdentifier(ctx.Scope, id.Name, id.Span())
			}
		}
	}
}

// inferReturnType computes the highest common type of every top-level
// return-statement expression in body, defaulting to void when there are
// none.
func inferReturnType(a *Analyzer, body *ast.Block, ctx Ctx) ir.Type {
	var types []ir.Type
	for _, stmt := range body.Stmts {
		ret, ok := stmt.(*ast.ReturnStmt)
		if !ok || ret.Value == nil {
			continue
		}
		types = append(types, exprType(a, ret.Value, ctx))
	}

	if len(types) == 0 {
		return &ir.BuiltinType{Kind: ir.Void}
	}

	result := types[0]
	for _, t := range types[1:] {
		var err bool
		result, err = highestCommonType(result, t)
		if err {
			report.Raise(report.TypeMismatch, body.Span(), "incompatible return types in `auto` function")
		}
	}
	return result
}

// highestCommonType returns the narrowest type both a and b implicitly
// convert to, for the limited set of shapes this core can infer across
// (identical types, or a pair of integral builtins where one widens to
// the other). Returns ok=true (the bool return is the error flag) when no
// common type exists.
func highestCommonType(a, b ir.Type) (ir.Type, bool) {
	if a.Equals(b) {
		return a, false
	}
	ap, aok := a.(*ir.BuiltinType)
	bp, bok := b.(*ir.BuiltinType)
	if aok && bok && ap.Kind.IsIntegral() && bp.Kind.IsIntegral() {
		if cast.Exact(a, b) {
			return b, false
		}
		if cast.Exact(b, a) {
			return a, false
		}
	}
	return nil, true
}

// exprType determines an expression's static type for the narrow set of
// shapes the core itself evaluates (identifiers and literals); anything
// else is a TypeMismatch here, since general expression type inference is
// the out-of-scope expression walker's job.
func exprType(a *Analyzer, e ast.Expr, ctx Ctx) ir.Type {
	switch v := e.(type) {
	case *ast.IntLiteral:
		if v.TypeLabel != nil {
			return a.resolveType(v.TypeLabel, ctx)
		}
		return &ir.BuiltinType{Kind: ir.Int}
	case *ast.BoolLiteral:
		return &ir.BuiltinType{Kind: ir.Bool}
	case *ast.Identifier:
		sym := a.resolveIdentifier(ctx.Scope, v.Name, v.Span())
		return sym.Type
	default:
		report.Raise(report.UnsupportedConstruct, e.Span(), "cannot determine the type of this expression without the expression walker")
	}
	panic("unreachable")
}
