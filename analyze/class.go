package analyze

import (
	"drift/ast"
	"drift/cast"
	"drift/ir"
	"drift/mangle"
	"drift/report"
	"drift/sched"
)

// analyzeClass implements spec.md §4.3 Class: the same Struct/Union
// prelude plus inheritance resolution. The root Object class (identified
// by `sym == a.ObjectClass`) has no base and instead synthesizes the
// implicit `__vtbl` field at index 0.
func (a *Analyzer) analyzeClass(d *ast.AggregateDecl, sym *ir.Symbol, ctx Ctx) {
	sym.Aggregate = &ir.AggregateData{}
	sym.Type = &ir.AggregateType{Sym: sym}
	mangled := mangle.AggregateTag(sym.Kind) + mangle.AppendIdent(ctx.ManglePrefix, sym.Name)
	sym.Mangle = mangled
	sched.Publish(sym, ir.Populated)

	isRoot := sym == a.ObjectClass
	idx := &indices{}

	var base *ir.Symbol
	if !isRoot {
		if d.Base_ != nil {
			bt := a.resolveType(d.Base_, ctx)
			agg, ok := bt.(*ir.AggregateType)
			if !ok || agg.Sym.Kind != ir.KindClass {
				report.Raise(report.TypeMismatch, d.Span(), "base of class `%s` must be a class type", sym.Name)
			}
			base = agg.Sym
		} else {
			base = a.ObjectClass
		}
		a.require(base, ir.Processed)
		idx.nextField = base.Aggregate.NextFieldIndex
		idx.nextMethod = base.Aggregate.NextMethodIdx
	}
	sym.Aggregate.Base = base

	scope := ir.NewScope(ctx.Scope, sym)
	sym.Scope = scope

	var baseFields, baseMethods []*ir.Symbol
	if base != nil {
		baseFields = append(baseFields, base.Aggregate.Fields...)
		baseMethods = append(baseMethods, base.Aggregate.Methods...)
		for _, f := range baseFields {
			scope.AddSymbol(f)
		}
		for _, m := range baseMethods {
			scope.AddOverloadableSymbol(m)
		}
	}

	if isRoot {
		vtbl := &ir.Symbol{
			Name: "__vtbl", Kind: ir.KindField, Storage: ir.StorageLocal,
			Type:     &ir.PointerType{Elem: &ir.BuiltinType{Kind: ir.Void}, Qualifier: ir.Const},
			Step:     ir.Processed,
			Location: d.Span(),
			Var:      &ir.VarData{FieldIndex: 0},
		}
		idx.nextField = 1
		scope.AddSymbol(vtbl)
		baseFields = append(baseFields, vtbl)
	}

	bodyCtx := ctx.WithScope(scope).WithThis(sym.Type).WithMangle(mangled)
	newMembers := a.Flatten(d.Members, scope, bodyCtx, idx)

	var newFields, newMethods, others []*ir.Symbol
	for _, m := range newMembers {
		switch m.Kind {
		case ir.KindField:
			newFields = append(newFields, m)
		case ir.KindMethod:
			newMethods = append(newMethods, m)
		default:
			others = append(others, m)
		}
	}

	removed := make(map[*ir.Symbol]bool)
	for _, m := range newMethods {
		a.require(m, ir.Signed)

		var matchedBase *ir.Symbol
		for _, bm := range baseMethods {
			if removed[bm] {
				continue
			}
			if methodsMatchOverride(bm, m) {
				matchedBase = bm
				break
			}
		}

		if matchedBase != nil {
			m.Func.VtableIndex = matchedBase.Func.VtableIndex
			removed[matchedBase] = true
			if !m.Func.IsOverride {
				report.Raise(report.MissingOverrideKeyword, m.Location, "method `%s` overrides `%s.%s` but is not marked `override`", m.Name, base.Name, matchedBase.Name)
			}
			if os, ok := scope.LookupLocal(matchedBase.Name).(*ir.OverloadSet); ok {
				rest := os.Without(matchedBase)
				if rest == nil {
					rest = ir.NewOverloadSet(matchedBase.Name, m)
				} else {
					rest.Add(m)
				}
				scope.Replace(matchedBase.Name, rest)
			}
		} else if m.Func.VtableIndex == 0 {
			// Faithful to the source's behaviour (spec.md §9 design note):
			// a genuinely novel method whose vtable index has not been
			// reassigned is rejected here rather than accepted. Not fixed.
			report.Raise(report.OverrideNotFound, m.Location, "method `%s` does not override a base member", m.Name)
		}
	}

	finalFields := append(append([]*ir.Symbol{}, baseFields...), newFields...)
	var finalMethods []*ir.Symbol
	for _, bm := range baseMethods {
		if !removed[bm] {
			finalMethods = append(finalMethods, bm)
		}
	}
	finalMethods = append(finalMethods, newMethods...)

	sym.Aggregate.Fields = finalFields
	sym.Aggregate.Methods = finalMethods
	sym.Aggregate.Others = others
	sym.Aggregate.NextFieldIndex = idx.nextField
	sym.Aggregate.NextMethodIdx = idx.nextMethod

	for _, f := range newFields {
		a.require(f, ir.Signed)
	}

	initVar := &ir.Symbol{
		Name: "init", Kind: ir.KindVariable, Storage: ir.StorageStatic,
		Type: sym.Type, Step: ir.Processed,
		Var: &ir.VarData{Immutable: true, Value: defaultTuple(finalFields)},
	}
	sym.Aggregate.InitVar = initVar
	scope.AddSymbol(initVar)

	sched.Publish(sym, ir.Signed)

	for _, f := range finalFields {
		a.require(f, ir.Processed)
	}
	for _, m := range finalMethods {
		a.require(m, ir.Processed)
	}
	for _, o := range others {
		a.require(o, ir.Processed)
	}

	sched.Publish(sym, ir.Processed)
}

// methodsMatchOverride implements spec.md §4.3 Class step 5's candidate
// test: identical name, identical variadic flag, equal parameter count,
// identical per-parameter ref flags, and return/parameter types that cast
// exactly (not lossy) from the candidate's to the base method's. Only that
// one direction is checked; override matching compares declared types
// rather than values.
func methodsMatchOverride(base, candidate *ir.Symbol) bool {
	if base.Name != candidate.Name {
		return false
	}
	bft, ok1 := base.Type.(*ir.FunctionType)
	cft, ok2 := candidate.Type.(*ir.FunctionType)
	if !ok1 || !ok2 {
		return false
	}
	if bft.Variadic != cft.Variadic || len(bft.Params) != len(cft.Params) {
		return false
	}
	if !cast.Exact(cft.Return, bft.Return) && !bft.Return.Equals(cft.Return) {
		return false
	}
	for i := range bft.Params {
		if bft.Params[i].IsRef != cft.Params[i].IsRef {
			return false
		}
		if !cast.Exact(cft.Params[i].Type, bft.Params[i].Type) && !bft.Params[i].Type.Equals(cft.Params[i].Type) {
			return false
		}
	}
	return true
}
