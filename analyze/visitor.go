package analyze

import (
	"drift/ast"
	"drift/ir"
	"drift/report"
)

// indices tracks the field/method index counters the Declaration Visitor
// assigns to aggregate members in source order, seeded from
// parent-provided counters for a Class's inherited slots (spec.md §4.2).
// It is nil when flattening a non-aggregate scope (module, function body,
// template).
type indices struct {
	nextField  int
	nextMethod int
}

// Flatten consumes a declaration list and a parent scope and produces the
// flat list of stub symbols registered in that scope, expanding
// static-if/version blocks and mixins as it goes (spec.md §4.2). Each
// concrete declaration gets a stub symbol (location/name/linkage only,
// Step = Parsed), is added to scope (overloadable for functions/templates,
// exclusive otherwise — DuplicateSymbol on collision), and scheduled.
func (a *Analyzer) Flatten(decls []ast.Decl, scope *ir.Scope, ctx Ctx, idx *indices) []*ir.Symbol {
	var out []*ir.Symbol

	for _, decl := range decls {
		switch d := decl.(type) {
		case *ast.StaticIfDecl:
			folder := a.EvalBuilder(a.ScopeLookup(scope))
			cond, err := folder.EvalIntegral(d.Cond)
			if err != nil {
				report.Raise(report.CompileTimeEvaluationError, d.Span(), "static if condition must be a compile-time constant: %s", err)
			}
			if cond != 0 {
				out = append(out, a.Flatten(d.Then, scope, ctx, idx)...)
			} else {
				out = append(out, a.Flatten(d.Else, scope, ctx, idx)...)
			}

		case *ast.VersionDecl:
			if a.Versions[d.Tag] {
				out = append(out, a.Flatten(d.Then, scope, ctx, idx)...)
			} else {
				out = append(out, a.Flatten(d.Else, scope, ctx, idx)...)
			}

		case *ast.MixinDecl:
			out = append(out, a.flattenMixin(d, scope, ctx, idx)...)

		default:
			out = append(out, a.visitConcrete(decl, scope, ctx, idx))
		}
	}

	return out
}

// flattenMixin splices a zero-argument template-mixin's wrapped member
// declaration directly into the enclosing scope. Argument substitution
// for parameterized mixins is not implemented: a mixin naming a template
// with parameters raises UnsupportedConstruct rather than guessing at a
// substitution.
func (a *Analyzer) flattenMixin(d *ast.MixinDecl, scope *ir.Scope, ctx Ctx, idx *indices) []*ir.Symbol {
	sym := a.resolveIdentifier(scope, d.TemplateName, d.Span())
	if sym.Kind != ir.KindTemplate {
		report.Raise(report.TypeMismatch, d.Span(), "`%s` is not a template", d.TemplateName)
	}
	a.require(sym, ir.Populated)
	if len(sym.Template.Params) > 0 || len(d.Args) > 0 {
		report.Raise(report.UnsupportedConstruct, d.Span(), "mixin instantiation with template arguments is not supported")
	}
	member, ok := sym.Template.MemberDecl.(ast.Decl)
	if !ok {
		report.Raise(report.UnsupportedConstruct, d.Span(), "mixin template has no splice-able member declaration")
	}
	return a.Flatten([]ast.Decl{member}, scope, ctx, idx)
}

// visitConcrete creates, registers, and schedules the stub symbol for a
// single concrete declaration.
func (a *Analyzer) visitConcrete(decl ast.Decl, scope *ir.Scope, ctx Ctx, idx *indices) *ir.Symbol {
	names := decl.DeclNames()
	var name string
	if len(names) > 0 {
		name = names[0]
	}

	overloadable := false
	switch decl.(type) {
	case *ast.FuncDecl, *ast.TemplateDecl:
		overloadable = true
	}

	if !overloadable {
		if existing := scope.LookupLocal(name); existing != nil {
			report.Raise(report.DuplicateSymbol, decl.Span(), "symbol defined multiple times: `%s`", name)
		}
	}

	sym := newStubSymbol(decl, name)

	if idx != nil {
		assignAggregateIndex(sym, decl, idx)
	}

	if overloadable {
		scope.AddOverloadableSymbol(sym)
	} else {
		scope.AddSymbol(sym)
	}

	a.scheduleDecl(decl, sym, ctx)

	return sym
}

func newStubSymbol(decl ast.Decl, name string) *ir.Symbol {
	sym := &ir.Symbol{Name: name, Location: decl.Span(), Step: ir.Parsed}

	switch d := decl.(type) {
	case *ast.FuncDecl:
		sym.Linkage = toIRLinkage(d.Linkage)
		sym.Visibility = toIRVisibility(d.Visibility)
		sym.HasContext = d.HasContext
		if d.HasThis {
			sym.Kind = ir.KindMethod
		} else {
			sym.Kind = ir.KindFunction
		}
		fd := FuncDataFor(d)
		sym.Func = &fd

	case *ast.VarDecl:
		sym.Linkage = toIRLinkage(d.Linkage)
		sym.Visibility = toIRVisibility(d.Visibility)
		if d.IsField {
			sym.Kind = ir.KindField
		} else {
			sym.Kind = ir.KindVariable
		}
		if d.IsStatic {
			sym.Storage = ir.StorageStatic
		}
		sym.Var = &ir.VarData{IsAuto: isAutoType(d.Type)}

	case *ast.AggregateDecl:
		sym.Linkage = toIRLinkage(d.Linkage)
		sym.Visibility = toIRVisibility(d.Visibility)
		switch d.Kind {
		case ast.AggStruct:
			sym.Kind = ir.KindStruct
		case ast.AggUnion:
			sym.Kind = ir.KindUnion
		case ast.AggClass:
			sym.Kind = ir.KindClass
		}
		sym.Aggregate = &ir.AggregateData{}

	case *ast.InterfaceDecl:
		sym.Linkage = toIRLinkage(d.Linkage)
		sym.Visibility = toIRVisibility(d.Visibility)
		sym.Kind = ir.KindInterface
		sym.Aggregate = &ir.AggregateData{}

	case *ast.EnumDecl:
		sym.Linkage = toIRLinkage(d.Linkage)
		sym.Visibility = toIRVisibility(d.Visibility)
		sym.Kind = ir.KindEnum
		sym.Storage = ir.StorageEnum
		sym.Enum = &ir.EnumData{}

	case *ast.TemplateDecl:
		sym.Linkage = toIRLinkage(d.Linkage)
		sym.Visibility = toIRVisibility(d.Visibility)
		sym.Kind = ir.KindTemplate
		sym.Template = &ir.TemplateData{MemberDecl: d.Member}

	case *ast.AliasDecl:
		sym.Linkage = toIRLinkage(d.Linkage)
		sym.Visibility = toIRVisibility(d.Visibility)
		switch d.Kind {
		case ast.AliasSymbol:
			sym.Kind = ir.KindSymbolAlias
		case ast.AliasType:
			sym.Kind = ir.KindTypeAlias
		case ast.AliasValue:
			sym.Kind = ir.KindValueAlias
		}
		sym.Alias = &ir.AliasData{}
	}

	return sym
}

// FuncDataFor seeds a FuncData payload from its declaration; a plain
// function (not a method) is still built the same way so the analyzer's
// per-symbol-kind routine can treat the two uniformly.
func FuncDataFor(d *ast.FuncDecl) ir.FuncData {
	return ir.FuncData{
		IsCtor:     d.IsCtor,
		IsOverride: d.IsOverride,
		HasThis:    d.HasThis,
		Body:       d.Body != nil,
	}
}

func isAutoType(t ast.TypeLabel) bool {
	if t == nil {
		return true
	}
	_, ok := t.(*ast.AutoTypeLabel)
	return ok
}

func toIRLinkage(l ast.Linkage) ir.Linkage {
	if l == ast.LinkageC {
		return ir.LinkageC
	}
	return ir.LinkageD
}

func toIRVisibility(v ast.Visibility) ir.Visibility {
	switch v {
	case ast.VisProtected:
		return ir.VisProtected
	case ast.VisPrivate:
		return ir.VisPrivate
	case ast.VisPackage:
		return ir.VisPackage
	default:
		return ir.VisPublic
	}
}

// assignAggregateIndex assigns sym its field or method index when
// flattening happens inside an aggregate's member list, starting from
// whatever counters the caller seeded (a Class pre-loads these with one
// past its base's highest indices).
func assignAggregateIndex(sym *ir.Symbol, decl ast.Decl, idx *indices) {
	switch sym.Kind {
	case ir.KindField:
		if sym.Storage != ir.StorageStatic {
			sym.Var.FieldIndex = idx.nextField
			idx.nextField++
		}
	case ir.KindMethod:
		sym.Func.VtableIndex = idx.nextMethod
		idx.nextMethod++
	}
}

// scheduleDecl registers the task that, when run, dispatches to the
// analyze routine matching decl's concrete kind (spec.md §4.1's
// `schedule(declaration, symbol)`).
func (a *Analyzer) scheduleDecl(decl ast.Decl, sym *ir.Symbol, ctx Ctx) {
	a.Sched.Schedule(sym, func() {
		a.analyzeDecl(decl, sym, ctx)
	})
}

// AnalyzeDeclEntry exposes analyzeDecl to callers outside this package
// that must schedule a symbol directly against a known declaration
// without going through Flatten — used once, to bootstrap the implicit
// `object` module's root Object class (see sema.buildObjectModule).
func (a *Analyzer) AnalyzeDeclEntry(decl ast.Decl, sym *ir.Symbol, ctx Ctx) {
	a.analyzeDecl(decl, sym, ctx)
}

// analyzeDecl is the single dispatch point mapping a declaration's
// concrete Go type to its analyze routine, the "dynamic dispatch over
// declaration kinds" design note's exhaustive switch.
func (a *Analyzer) analyzeDecl(decl ast.Decl, sym *ir.Symbol, ctx Ctx) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		a.analyzeFunction(d, sym, ctx)
	case *ast.VarDecl:
		a.analyzeVariable(d, sym, ctx)
	case *ast.AggregateDecl:
		switch d.Kind {
		case ast.AggStruct:
			a.analyzeStruct(d, sym, ctx)
		case ast.AggUnion:
			a.analyzeUnion(d, sym, ctx)
		case ast.AggClass:
			a.analyzeClass(d, sym, ctx)
		}
	case *ast.InterfaceDecl:
		a.analyzeInterface(d, sym, ctx)
	case *ast.EnumDecl:
		a.analyzeEnum(d, sym, ctx)
	case *ast.TemplateDecl:
		a.analyzeTemplate(d, sym, ctx)
	case *ast.AliasDecl:
		switch d.Kind {
		case ast.AliasSymbol:
			a.analyzeSymbolAlias(d, sym, ctx)
		case ast.AliasType:
			a.analyzeTypeAlias(d, sym, ctx)
		case ast.AliasValue:
			a.analyzeValueAlias(d, sym, ctx)
		}
	default:
		report.Raise(report.UnsupportedConstruct, decl.Span(), "unsupported declaration kind")
	}
}
