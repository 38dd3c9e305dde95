package analyze

import (
	"drift/ast"
	"drift/ir"
	"drift/report"
	"drift/sched"
)

// analyzeTemplate implements spec.md §4.3 Template: resolve each
// parameter's kind, register its symbol in the template's own scope, and
// advance to Populated. The IFTI hint is cached from the first member
// function whose name matches the template's own name, so a later call
// site can attempt implicit function template instantiation by comparing
// argument types against this shape without re-walking the declaration.
// Templates are never instantiated here; see Instantiate.
func (a *Analyzer) analyzeTemplate(d *ast.TemplateDecl, sym *ir.Symbol, ctx Ctx) {
	scope := ir.NewScope(ctx.Scope, sym)
	sym.Scope = scope

	var params []*ir.Symbol
	for _, p := range d.Params {
		if existing := scope.LookupLocal(p.Name); existing != nil {
			report.Raise(report.DuplicateSymbol, p.Span(), "template parameter defined multiple times: `%s`", p.Name)
		}

		psym := &ir.Symbol{Name: p.Name, Location: p.Span(), Step: ir.Processed}
		switch p.Kind {
		case ast.TemplateParamType:
			psym.Kind = ir.KindTypeTemplateParameter
			psym.Type = &ir.BuiltinType{Kind: ir.None}
		case ast.TemplateParamValue:
			psym.Kind = ir.KindValueTemplateParameter
			if p.Type != nil {
				psym.Type = a.resolveType(p.Type, ctx)
			} else {
				psym.Type = &ir.BuiltinType{Kind: ir.Int}
			}
			psym.TypeParam = &ir.TemplateParamData{Constraint: psym.Type}
		case ast.TemplateParamAlias:
			psym.Kind = ir.KindAliasTemplateParameter
		case ast.TemplateParamTypedAlias:
			psym.Kind = ir.KindTypedAliasTemplateParameter
			if p.Type != nil {
				psym.TypeParam = &ir.TemplateParamData{Constraint: a.resolveType(p.Type, ctx)}
			}
		}

		scope.AddSymbol(psym)
		params = append(params, psym)
	}

	sym.Template.Params = params
	sched.Publish(sym, ir.Populated)

	if fd, ok := d.Member.(*ast.FuncDecl); ok && fd.Name == sym.Name {
		memberCtx := ctx.WithScope(scope)
		hint := make([]ir.Type, len(fd.Params))
		for i, p := range fd.Params {
			hint[i] = a.resolveType(p.Type, memberCtx)
		}
		sym.Template.IFTIHint = hint
	}

	sched.Publish(sym, ir.Signed)
	sched.Publish(sym, ir.Processed)
}

// Instantiate implements spec.md §4.3 TemplateInstance: given a Template
// symbol already Populated and the argument symbols an out-of-scope
// matcher has already bound one-for-one against the template's
// parameters, it builds, schedules, and returns a fresh TemplateInstance
// symbol. instanceMangle is the caller's pre-computed mangle for this
// particular argument combination (spec.md's "mangle prefix from the
// instance's pre-computed mangle").
func (a *Analyzer) Instantiate(tmpl *ir.Symbol, args []*ir.Symbol, instanceMangle string, ctx Ctx) *ir.Symbol {
	a.require(tmpl, ir.Populated)

	sym := &ir.Symbol{
		Name:       tmpl.Name,
		Kind:       ir.KindTemplateInstance,
		Linkage:    tmpl.Linkage,
		Visibility: tmpl.Visibility,
		Location:   tmpl.Location,
		Mangle:     instanceMangle,
		Instance:   &ir.TemplateInstanceData{Origin: tmpl, Args: args},
	}

	a.Sched.Schedule(sym, func() {
		a.analyzeTemplateInstance(sym, ctx)
	})

	return sym
}

func (a *Analyzer) analyzeTemplateInstance(sym *ir.Symbol, ctx Ctx) {
	tmpl := sym.Instance.Origin
	scope := ir.NewScope(ctx.Scope, sym)
	sym.Scope = scope

	for i, p := range tmpl.Template.Params {
		if i >= len(sym.Instance.Args) {
			break
		}
		arg := *sym.Instance.Args[i]
		arg.Name = p.Name
		scope.AddSymbol(&arg)
	}

	sched.Publish(sym, ir.Populated)

	member, ok := tmpl.Template.MemberDecl.(ast.Decl)
	if !ok {
		report.Raise(report.UnsupportedConstruct, sym.Location, "template has no member declaration to instantiate")
	}

	if fd, ok := member.(*ast.FuncDecl); ok && fd.HasContext {
		sym.Storage = ir.StorageLocal
		sym.Instance.CtxSym = ctx.CtxSym
	}

	instCtx := ctx.WithScope(scope).WithMangle(sym.Mangle)
	members := a.Flatten([]ast.Decl{member}, scope, instCtx, nil)
	sym.Instance.Members = members

	sched.Publish(sym, ir.Signed)

	for _, m := range members {
		a.require(m, ir.Processed)
	}

	sched.Publish(sym, ir.Processed)
}
