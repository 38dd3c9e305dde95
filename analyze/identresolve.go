package analyze

import (
	"drift/eval"
	"drift/ir"
	"drift/report"
)

// ScopeLookup adapts an ir.Scope's chain lookup to the simple
// name-to-symbol functions the cast/eval glue packages need. It is the
// identifier-resolver half of the "Glue" component (spec.md §4 table):
// looking a name up may itself force the resolved symbol to Populated, so
// later stages that only need the identity of the target (not its full
// signature) are able to proceed.
func (a *Analyzer) ScopeLookup(scope *ir.Scope) eval.Lookup {
	return func(name string) *ir.Symbol {
		entry := scope.Lookup(name)
		switch v := entry.(type) {
		case *ir.Symbol:
			a.require(v, ir.Populated)
			return v
		case *ir.OverloadSet:
			report.Raise(report.UnsupportedConstruct, nil, "`%s` names an overload set; a single value was expected", name)
		}
		return nil
	}
}

// resolveIdentifier looks a bare name up through the scope chain,
// requiring it to Populated, and raises UnresolvedIdentifier if it is
// absent everywhere.
func (a *Analyzer) resolveIdentifier(scope *ir.Scope, name string, span *report.TextSpan) *ir.Symbol {
	entry := scope.Lookup(name)
	if entry == nil {
		report.Raise(report.UnresolvedIdentifier, span, "unresolved identifier: `%s`", name)
	}
	if sym, ok := entry.(*ir.Symbol); ok {
		a.require(sym, ir.Populated)
		return sym
	}
	report.Raise(report.UnsupportedConstruct, span, "`%s` names an overload set; a single value was expected", name)
	panic("unreachable")
}
