package analyze

import (
	"drift/ast"
	"drift/ir"
	"drift/mangle"
	"drift/sched"
)

// aggregatePrelude implements the common Struct/Union opening steps of
// spec.md §4.3: create the aggregate scope (synthesizing a `__ctx` field
// first when the aggregate is nested), flatten members, and partition the
// flattened result into fields versus everything else. Class reuses this
// and layers inheritance resolution on top.
func (a *Analyzer) aggregatePrelude(d *ast.AggregateDecl, sym *ir.Symbol, ctx Ctx, idx *indices) (fields, others []*ir.Symbol) {
	scope := ir.NewScope(ctx.Scope, sym)
	sym.Scope = scope

	if idx == nil {
		idx = &indices{}
	}

	if d.IsNested {
		ctxField := &ir.Symbol{
			Name: "__ctx", Kind: ir.KindField, Storage: ir.StorageLocal,
			Type: &ir.ContextType{Owner: ctx.CtxSym}, Step: ir.Processed,
			Var: &ir.VarData{FieldIndex: idx.nextField},
		}
		idx.nextField++
		scope.AddSymbol(ctxField)
		fields = append(fields, ctxField)
	}

	bodyCtx := ctx.WithScope(scope).WithThis(&ir.AggregateType{Sym: sym}).WithMangle(sym.Mangle)
	members := a.Flatten(d.Members, scope, bodyCtx, idx)

	for _, m := range members {
		if m.Kind == ir.KindField {
			fields = append(fields, m)
		} else {
			others = append(others, m)
		}
	}

	return fields, others
}

// analyzeStruct implements spec.md §4.3 Struct: after the shared prelude,
// every field is required to Signed before the `init` tuple (the compile-
// time default-value tuple members implicitly construct from) is computed,
// then fields are driven to Processed ahead of the other members so a
// method body may reference a field's type/value without cycling back on
// the struct itself.
func (a *Analyzer) analyzeStruct(d *ast.AggregateDecl, sym *ir.Symbol, ctx Ctx) {
	sym.Aggregate = &ir.AggregateData{}
	sym.Type = &ir.AggregateType{Sym: sym}
	mangled := mangle.AggregateTag(sym.Kind) + mangle.AppendIdent(ctx.ManglePrefix, sym.Name)
	sym.Mangle = mangled
	sched.Publish(sym, ir.Populated)

	fields, others := a.aggregatePrelude(d, sym, ctx.WithMangle(mangled), nil)

	for _, f := range fields {
		a.require(f, ir.Signed)
	}

	initVar := &ir.Symbol{
		Name: "init", Kind: ir.KindVariable, Storage: ir.StorageStatic,
		Type: sym.Type, Step: ir.Processed,
		Var: &ir.VarData{Immutable: true, Value: defaultTuple(fields)},
	}
	sym.Aggregate.InitVar = initVar
	sym.Aggregate.Fields = fields
	sym.Aggregate.Others = others
	sym.Scope.AddSymbol(initVar)

	sched.Publish(sym, ir.Signed)

	for _, f := range fields {
		a.require(f, ir.Processed)
	}
	for _, o := range others {
		a.require(o, ir.Processed)
	}

	sched.Publish(sym, ir.Processed)
}

// analyzeUnion mirrors analyzeStruct, except its `init` member is a bare
// void-initializer rather than a per-field default tuple — a union has no
// single set of field values to default-construct.
func (a *Analyzer) analyzeUnion(d *ast.AggregateDecl, sym *ir.Symbol, ctx Ctx) {
	sym.Aggregate = &ir.AggregateData{}
	sym.Type = &ir.AggregateType{Sym: sym}
	mangled := mangle.AggregateTag(sym.Kind) + mangle.AppendIdent(ctx.ManglePrefix, sym.Name)
	sym.Mangle = mangled
	sched.Publish(sym, ir.Populated)

	fields, others := a.aggregatePrelude(d, sym, ctx.WithMangle(mangled), nil)

	for _, f := range fields {
		a.require(f, ir.Signed)
	}

	initVar := &ir.Symbol{
		Name: "init", Kind: ir.KindVariable, Storage: ir.StorageStatic,
		Type: &ir.BuiltinType{Kind: ir.Void}, Step: ir.Processed,
		Var: &ir.VarData{Immutable: true},
	}
	sym.Aggregate.InitVar = initVar
	sym.Aggregate.Fields = fields
	sym.Aggregate.Others = others
	sym.Scope.AddSymbol(initVar)

	sched.Publish(sym, ir.Signed)

	for _, f := range fields {
		a.require(f, ir.Processed)
	}
	for _, o := range others {
		a.require(o, ir.Processed)
	}

	sched.Publish(sym, ir.Processed)
}

// defaultTuple collects each field's compile-time default value in
// declaration order, nil where a field has none (builtin zero-value).
func defaultTuple(fields []*ir.Symbol) []interface{} {
	vals := make([]interface{}, len(fields))
	for i, f := range fields {
		if f.Var != nil {
			vals[i] = f.Var.Value
		}
	}
	return vals
}
