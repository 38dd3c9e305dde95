package sema

import (
	"drift/analyze"
	"drift/ast"
	"drift/ir"
)

// buildObjectModule synthesizes the builtin `object` module and its root
// Object class, the implicit import spec.md §4.3 Module prepends to every
// admitted module's scope (see SPEC_FULL.md §C), grounded on the
// teacher's implicit-prelude-import pattern (build/prelude.go). It runs
// eagerly, once per SemanticPass, before any user module is admitted,
// since analyze.analyzeClass's root-Object special case is keyed on
// pointer identity against analyzer.ObjectClass.
func buildObjectModule(a *analyze.Analyzer) (mod, objectClass *ir.Symbol) {
	mod = analyze.NewModuleSymbol("object")

	objectClass = &ir.Symbol{
		Name:      "Object",
		Kind:      ir.KindClass,
		Linkage:   ir.LinkageD,
		Visibility: ir.VisPublic,
		Step:      ir.Parsed,
	}
	a.ObjectClass = objectClass
	mod.Scope.AddSymbol(objectClass)

	decl := &ast.AggregateDecl{
		DeclBase: ast.DeclBase{Base: ast.NewBase(nil), Visibility: ast.VisPublic},
		Kind:     ast.AggClass,
		Name:     "Object",
	}

	a.Sched.Schedule(objectClass, func() {
		ctx := analyze.Ctx{Scope: mod.Scope}
		a.AnalyzeDeclEntry(decl, objectClass, ctx)
	})
	a.Sched.Require(objectClass, ir.Processed)

	return mod, objectClass
}
