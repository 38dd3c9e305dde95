package cast

import (
	"drift/ast"
	"drift/ir"
	"drift/report"
	"drift/vrp"
)

// Lookup resolves an identifier to the symbol it refers to in the current
// scope. It is supplied by the identifier-resolver glue so this visitor
// does not need to know about ir.Scope directly.
type Lookup func(name string) *ir.Symbol

// VisitRange interprets e as an integer expression under the abstract
// domain of package vrp, returning its value range at type t (the
// expression's already-determined static type, supplied by the
// out-of-scope expression walker — VRP does not perform type inference of
// its own). Only the operators spec.md §4.4 lists as supported are
// handled; anything else raises UnsupportedConstruct, matching the design
// note that multiplication, division, modulo, bitwise, shift, and unary
// operators besides negation are reserved rather than silently
// approximated.
func VisitRange(e ast.Expr, t ir.Type, lookup Lookup) vrp.Range {
	switch v := e.(type) {
	case *ast.IntLiteral:
		return vrp.Literal(v.Value, t)

	case *ast.BoolLiteral:
		return vrp.BoolLiteral(v.Value)

	case *ast.Identifier:
		sym := lookup(v.Name)
		if sym == nil {
			report.Raise(report.UnresolvedIdentifier, e.Span(), "unresolved identifier: `%s`", v.Name)
		}
		return variableRange(sym, t)

	case *ast.UnaryExpr:
		if v.Op == ast.UnaryNeg {
			return vrp.Complement(VisitRange(v.Expr, t, lookup), t)
		}
		report.Raise(report.UnsupportedConstruct, e.Span(), "value range propagation does not model this unary operator")

	case *ast.BinaryExpr:
		switch v.Op {
		case ast.OpAdd:
			return vrp.Add(VisitRange(v.LHS, t, lookup), VisitRange(v.RHS, t, lookup), t)
		case ast.OpSub:
			return vrp.Sub(VisitRange(v.LHS, t, lookup), VisitRange(v.RHS, t, lookup), t)
		case ast.OpComma:
			return vrp.Repack(VisitRange(v.RHS, t, lookup), t)
		case ast.OpAssign:
			return vrp.Repack(VisitRange(v.RHS, t, lookup), t)
		default:
			report.Raise(report.UnsupportedConstruct, e.Span(), "value range propagation does not model this binary operator")
		}

	default:
		report.Raise(report.UnsupportedConstruct, e.Span(), "value range propagation does not model this expression")
	}

	panic("unreachable")
}

// variableRange is the "variable reference" rule of spec.md §4.4: an
// enum-storage or immutable variable's range comes from its resolved
// constant value; every other variable gets the full range of its type,
// since VRP must conservatively assume it could hold anything.
func variableRange(sym *ir.Symbol, t ir.Type) vrp.Range {
	if sym.Storage == ir.StorageEnum {
		if sym.Kind == ir.KindEnumEntry {
			if iv, ok := sym.EnumEntry.Value.(uint64); ok {
				return vrp.Literal(iv, t)
			}
		}
	}
	if sym.Var != nil && sym.Var.Immutable {
		if iv, ok := sym.Var.Value.(uint64); ok {
			return vrp.Literal(iv, t)
		}
	}
	return vrp.Repack(vrp.Range{Min: 0, Max: ^uint64(0)}, t)
}
