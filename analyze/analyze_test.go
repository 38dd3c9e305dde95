package analyze

import (
	"testing"

	"drift/ast"
	"drift/eval"
	"drift/ir"
	"drift/layout"
	"drift/sched"
)

func newTestAnalyzer() (*Analyzer, *ir.Symbol) {
	s := sched.New()
	a := &Analyzer{
		Sched:       s,
		EvalBuilder: func(lookup eval.Lookup) eval.Evaluator { return eval.NewFolder(lookup) },
		Layout:      layout.Standard{},
		Versions:    DefaultVersions(),
	}

	objectClass := &ir.Symbol{Name: "Object", Kind: ir.KindClass, Linkage: ir.LinkageD, Visibility: ir.VisPublic, Step: ir.Parsed}
	a.ObjectClass = objectClass

	objMod := NewModuleSymbol("object")
	objMod.Scope.AddSymbol(objectClass)

	decl := &ast.AggregateDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(nil)}, Kind: ast.AggClass, Name: "Object"}
	s.Schedule(objectClass, func() {
		a.AnalyzeDeclEntry(decl, objectClass, Ctx{Scope: objMod.Scope})
	})
	s.Require(objectClass, ir.Processed)

	return a, objMod
}

func runModule(a *Analyzer, objMod *ir.Symbol, decls []ast.Decl) *ir.Symbol {
	mod := NewModuleSymbol("test")
	mod.Scope.AddSymbol(objMod)

	astMod := &ast.Module{FileName: "test.dr", Decls: decls}
	a.Sched.Schedule(mod, func() {
		a.AnalyzeModuleEntry(astMod, mod, Ctx{Scope: mod.Scope})
	})
	a.Sched.Require(mod, ir.Processed)

	return mod
}

func namedType(name string) *ast.NamedTypeLabel {
	return &ast.NamedTypeLabel{Base: ast.NewBase(nil), Name: name}
}

// Scenario 1 of spec.md §8: enum E { A, B, C = 5, D } yields entries
// 0, 1, 5, 6.
func TestEnumEntryDefaultingScenario(t *testing.T) {
	a, objMod := newTestAnalyzer()

	decl := &ast.EnumDecl{
		DeclBase: ast.DeclBase{Base: ast.NewBase(nil)},
		Name:     "E",
		Entries: []ast.EnumEntryDecl{
			{Base: ast.NewBase(nil), Name: "A"},
			{Base: ast.NewBase(nil), Name: "B"},
			{Base: ast.NewBase(nil), Name: "C", Value: &ast.IntLiteral{Base: ast.NewBase(nil), Value: 5}},
			{Base: ast.NewBase(nil), Name: "D"},
		},
	}

	mod := runModule(a, objMod, []ast.Decl{decl})

	eSym, ok := mod.Scope.LookupLocal("E").(*ir.Symbol)
	if !ok {
		t.Fatalf("expected E to resolve to a single symbol")
	}
	if eSym.Step != ir.Processed {
		t.Fatalf("expected E to reach Processed, got %s", eSym.Step)
	}

	want := map[string]uint64{"A": 0, "B": 1, "C": 5, "D": 6}
	for _, entrySym := range eSym.Enum.Entries {
		wantVal, ok := want[entrySym.Name]
		if !ok {
			t.Fatalf("unexpected entry %s", entrySym.Name)
		}
		gotVal, ok := entrySym.EnumEntry.Value.(uint64)
		if !ok || gotVal != wantVal {
			t.Fatalf("entry %s: got %v, want %d", entrySym.Name, entrySym.EnumEntry.Value, wantVal)
		}
	}
	if len(eSym.Enum.Entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(eSym.Enum.Entries))
	}
}

func voidFunc(name string, isOverride bool) *ast.FuncDecl {
	return &ast.FuncDecl{
		DeclBase:   ast.DeclBase{Base: ast.NewBase(nil)},
		Name:       name,
		HasThis:    true,
		IsOverride: isOverride,
		ReturnType: namedType("void"),
		Body:       &ast.Block{Base: ast.NewBase(nil)},
	}
}

// Scenario 5 of spec.md §8: class B : A overriding foo keeps foo's
// vtable index identical between base and derived, and removes A.foo from
// B's own overload set (it is replaced, not duplicated).
func TestClassOverrideKeepsVtableIndexScenario(t *testing.T) {
	a, objMod := newTestAnalyzer()

	classA := &ast.AggregateDecl{
		DeclBase: ast.DeclBase{Base: ast.NewBase(nil)},
		Kind:     ast.AggClass,
		Name:     "A",
		Members:  []ast.Decl{voidFunc("foo", false)},
	}
	classB := &ast.AggregateDecl{
		DeclBase: ast.DeclBase{Base: ast.NewBase(nil)},
		Kind:     ast.AggClass,
		Name:     "B",
		Base_:    namedType("A"),
		Members:  []ast.Decl{voidFunc("foo", true)},
	}

	mod := runModule(a, objMod, []ast.Decl{classA, classB})

	aSym := mod.Scope.LookupLocal("A").(*ir.Symbol)
	bSym := mod.Scope.LookupLocal("B").(*ir.Symbol)

	if aSym.Step != ir.Processed || bSym.Step != ir.Processed {
		t.Fatalf("expected both classes to reach Processed")
	}

	var aFoo, bFoo *ir.Symbol
	for _, m := range aSym.Aggregate.Methods {
		if m.Name == "foo" {
			aFoo = m
		}
	}
	for _, m := range bSym.Aggregate.Methods {
		if m.Name == "foo" {
			bFoo = m
		}
	}
	if aFoo == nil || bFoo == nil {
		t.Fatalf("expected both A and B to carry a foo method")
	}
	if aFoo.Func.VtableIndex != bFoo.Func.VtableIndex {
		t.Fatalf("override must keep the base's vtable index: A.foo=%d, B.foo=%d", aFoo.Func.VtableIndex, bFoo.Func.VtableIndex)
	}
	if aFoo == bFoo {
		t.Fatalf("B's foo must be its own overriding symbol, not a shared reference to A's")
	}

	fooEntry := bSym.Scope.LookupLocal("foo")
	os, ok := fooEntry.(*ir.OverloadSet)
	if ok {
		for _, s := range os.Symbols {
			if s == aFoo {
				t.Fatalf("B's own scope must not still carry A's foo symbol after override resolution")
			}
		}
	} else if sym, ok := fooEntry.(*ir.Symbol); ok && sym == aFoo {
		t.Fatalf("B's own scope must not still carry A's foo symbol after override resolution")
	}
}

// Every field f declared directly on a class C with base B must have
// fieldIndex(f) greater than every field index already used by B.
func TestClassFieldIndicesContinueFromBase(t *testing.T) {
	a, objMod := newTestAnalyzer()

	classA := &ast.AggregateDecl{
		DeclBase: ast.DeclBase{Base: ast.NewBase(nil)},
		Kind:     ast.AggClass,
		Name:     "A",
		Members: []ast.Decl{
			&ast.VarDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(nil)}, Name: "x", Type: namedType("int"), IsField: true},
		},
	}
	classB := &ast.AggregateDecl{
		DeclBase: ast.DeclBase{Base: ast.NewBase(nil)},
		Kind:     ast.AggClass,
		Name:     "B",
		Base_:    namedType("A"),
		Members: []ast.Decl{
			&ast.VarDecl{DeclBase: ast.DeclBase{Base: ast.NewBase(nil)}, Name: "y", Type: namedType("int"), IsField: true},
		},
	}

	mod := runModule(a, objMod, []ast.Decl{classA, classB})

	aSym := mod.Scope.LookupLocal("A").(*ir.Symbol)
	bSym := mod.Scope.LookupLocal("B").(*ir.Symbol)

	var maxBaseIdx int
	for _, f := range aSym.Aggregate.Fields {
		if f.Var.FieldIndex > maxBaseIdx {
			maxBaseIdx = f.Var.FieldIndex
		}
	}

	for _, f := range bSym.Aggregate.Fields {
		if f.Name == "y" && f.Var.FieldIndex <= maxBaseIdx {
			t.Fatalf("new field y's index %d does not exceed base's highest index %d", f.Var.FieldIndex, maxBaseIdx)
		}
	}
}
