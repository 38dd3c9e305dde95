// Package eval defines the compile-time constant-folding interface the
// semantic pass consumes (spec.md §6) and a reference implementation
// sufficient to fold the expression shapes the pass itself needs to fully
// evaluate: enum entry chains, default parameter values, global variable
// initializers, and array-size expressions.
//
// The full constant evaluator (covering arbitrary user expressions,
// function calls, and aggregate construction) is the out-of-scope
// Evaluator back-end; this package's Folder is the subset the core
// exercises directly, grounded on the shape of the teacher's own
// code-generation constant folding in generate/gen_expr.go.
package eval

import (
	"drift/ast"
	"drift/ir"
	"drift/report"
)

// Evaluator is the external collaborator interface the semantic pass
// consumes (spec.md §6): `evaluate` folds an expression to a constant
// expression, `evalIntegral`/`evalString` project the result to a scalar.
type Evaluator interface {
	Evaluate(e ast.Expr) (ast.Expr, error)
	EvalIntegral(e ast.Expr) (uint64, error)
	EvalString(e ast.Expr) (string, error)
}

// Lookup resolves an identifier to its symbol, mirroring cast.Lookup so
// the same closure built by the identifier resolver glue can be handed to
// both.
type Lookup func(name string) *ir.Symbol

// Folder is a minimal reference Evaluator good enough for the core's own
// needs: integer/bool literals, identifier references to already-resolved
// constant symbols, negation, bitwise complement, addition, subtraction,
// and the comma operator. Anything beyond that is
// CompileTimeEvaluationError — the full evaluator is out of scope.
type Folder struct {
	Lookup Lookup
}

func NewFolder(lookup Lookup) *Folder {
	return &Folder{Lookup: lookup}
}

func (f *Folder) Evaluate(e ast.Expr) (ast.Expr, error) {
	v, err := f.EvalIntegral(e)
	if err != nil {
		return nil, err
	}
	return &ast.IntLiteral{Base: ast.NewBase(e.Span()), Value: v}, nil
}

func (f *Folder) EvalIntegral(e ast.Expr) (v uint64, err error) {
	defer func() {
		if x := recover(); x != nil {
			if ce, ok := x.(*report.CompileError); ok {
				err = ce
				return
			}
			panic(x)
		}
	}()

	return f.fold(e), nil
}

func (f *Folder) EvalString(e ast.Expr) (string, error) {
	return "", &report.CompileError{
		Kind:    report.CompileTimeEvaluationError,
		Span:    e.Span(),
		Message: "string constant folding is not implemented by this evaluator",
	}
}

func (f *Folder) fold(e ast.Expr) uint64 {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return v.Value
	case *ast.BoolLiteral:
		if v.Value {
			return 1
		}
		return 0
	case *ast.Identifier:
		sym := f.Lookup(v.Name)
		if sym == nil {
			report.Raise(report.UnresolvedIdentifier, e.Span(), "unresolved identifier: `%s`", v.Name)
		}
		if sym.Kind == ir.KindEnumEntry {
			if iv, ok := sym.EnumEntry.Value.(uint64); ok {
				return iv
			}
		}
		if sym.Var != nil && sym.Var.Immutable {
			if iv, ok := sym.Var.Value.(uint64); ok {
				return iv
			}
		}
		report.Raise(report.CompileTimeEvaluationError, e.Span(), "`%s` is not a compile-time constant", v.Name)
	case *ast.UnaryExpr:
		switch v.Op {
		case ast.UnaryNeg:
			return -f.fold(v.Expr)
		case ast.UnaryBitNot:
			return ^f.fold(v.Expr)
		}
	case *ast.BinaryExpr:
		switch v.Op {
		case ast.OpAdd:
			return f.fold(v.LHS) + f.fold(v.RHS)
		case ast.OpSub:
			return f.fold(v.LHS) - f.fold(v.RHS)
		case ast.OpComma:
			f.fold(v.LHS)
			return f.fold(v.RHS)
		}
	}

	report.Raise(report.CompileTimeEvaluationError, e.Span(), "expression is not a supported compile-time constant")
	panic("unreachable")
}
