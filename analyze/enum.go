package analyze

import (
	"drift/ast"
	"drift/ir"
	"drift/mangle"
	"drift/report"
	"drift/sched"
)

// analyzeEnum implements spec.md §4.3 Enum: resolve the underlying type
// (default Int), reject anything non-integral and non-bool, then schedule
// each entry with an explicit expression or synthesize `previous + 1` (`0`
// for the first entry). Every entry must reach Signed before the enum
// itself advances to Processed.
func (a *Analyzer) analyzeEnum(d *ast.EnumDecl, sym *ir.Symbol, ctx Ctx) {
	var underlying ir.Type
	if d.Underlying != nil {
		underlying = a.resolveType(d.Underlying, ctx)
	} else {
		underlying = &ir.BuiltinType{Kind: ir.Int}
	}

	if bt, ok := underlying.(*ir.BuiltinType); !ok || !(bt.Kind.IsIntegral() || bt.Kind == ir.Bool) {
		report.Raise(report.TypeMismatch, d.Span(), "enum underlying type must be integral or bool, got %s", underlying.Repr())
	}

	sym.Enum = &ir.EnumData{Underlying: underlying}
	sym.Type = &ir.AggregateType{Sym: sym}
	sched.Publish(sym, ir.Populated)

	mangled := mangle.AggregateTag(sym.Kind) + mangle.AppendIdent(ctx.ManglePrefix, sym.Name)
	sym.Mangle = mangled
	sched.Publish(sym, ir.Signed)

	scope := ir.NewScope(ctx.Scope, sym)
	sym.Scope = scope
	entryCtx := ctx.WithScope(ctx.Scope).WithMangle(mangled)

	var previous *ir.Symbol
	for i, ed := range d.Entries {
		esym := &ir.Symbol{
			Name:     ed.Name,
			Location: ed.Span(),
			Kind:     ir.KindEnumEntry,
			Storage:  ir.StorageEnum,
			Type:     underlying,
			Step:     ir.Parsed,
			EnumEntry: &ir.EnumEntryData{Index: i},
		}
		esym.Mangle = mangle.AppendIdent(mangled, ed.Name)

		if existing := scope.LookupLocal(ed.Name); existing != nil {
			report.Raise(report.DuplicateSymbol, ed.Span(), "enum entry defined multiple times: `%s`", ed.Name)
		}
		scope.AddSymbol(esym)

		entry := ed
		prevForClosure := previous
		a.Sched.Schedule(esym, func() {
			a.analyzeEnumEntry(&entry, esym, prevForClosure, entryCtx)
		})

		sym.Enum.Entries = append(sym.Enum.Entries, esym)
		previous = esym
	}

	for _, e := range sym.Enum.Entries {
		a.require(e, ir.Signed)
	}

	sched.Publish(sym, ir.Processed)
}

// analyzeEnumEntry evaluates a single entry's value: its own expression if
// present, else one past the previous entry's value (zero for the first).
func (a *Analyzer) analyzeEnumEntry(d *ast.EnumEntryDecl, sym *ir.Symbol, previous *ir.Symbol, ctx Ctx) {
	sched.Publish(sym, ir.Populated)

	var v uint64
	if d.Value != nil {
		folder := a.EvalBuilder(a.ScopeLookup(ctx.Scope))
		val, err := folder.EvalIntegral(d.Value)
		if err != nil {
			report.Raise(report.CompileTimeEvaluationError, d.Value.Span(), "enum entry value must be a compile-time constant: %s", err)
		}
		v = val
	} else if previous != nil {
		a.require(previous, ir.Signed)
		pv, _ := previous.EnumEntry.Value.(uint64)
		v = pv + 1
	} else {
		v = 0
	}

	sym.EnumEntry.Value = v
	sched.Publish(sym, ir.Signed)
	sched.Publish(sym, ir.Processed)
}
