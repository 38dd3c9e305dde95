package sema

import (
	"testing"

	"drift/ast"
	"drift/eval"
	"drift/ir"
	"drift/layout"
	"drift/report"
)

func evalBuilder(lookup eval.Lookup) eval.Evaluator {
	return eval.NewFolder(lookup)
}

func namedType(name string) *ast.NamedTypeLabel {
	return &ast.NamedTypeLabel{Base: ast.NewBase(nil), Name: name}
}

func mainFunc() *ast.FuncDecl {
	return &ast.FuncDecl{
		DeclBase:   ast.DeclBase{Base: ast.NewBase(nil)},
		Name:       "main",
		ReturnType: namedType("int"),
		Body: &ast.Block{
			Base: ast.NewBase(nil),
			Stmts: []ast.Stmt{
				&ast.ReturnStmt{Base: ast.NewBase(nil), Value: &ast.IntLiteral{Base: ast.NewBase(nil), Value: 0}},
			},
		},
	}
}

func parserReturning(decls []ast.Decl) Parser {
	return func(_ *Context, filename string, _ map[string]*ir.Symbol) (*ast.Module, error) {
		return &ast.Module{Base: ast.NewBase(nil), FileName: filename, Decls: decls}, nil
	}
}

func TestSemanticPassAddAndTerminate(t *testing.T) {
	ctx := NewContext()
	parser := parserReturning([]ast.Decl{mainFunc()})
	pass := NewSemanticPass(ctx, parser, evalBuilder, layout.Standard{}, nil)
	pass.SetLogLevel(report.LogLevelSilent)

	modules := map[string]*ir.Symbol{}
	mod, err := pass.Add("example", modules)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	modules["example"] = mod

	if !pass.Terminate() {
		t.Fatalf("expected a clean terminate with no diagnostics")
	}

	bootstrap, err := pass.BuildMain([]*ir.Symbol{mod})
	if err != nil {
		t.Fatalf("BuildMain failed: %v", err)
	}
	if bootstrap.Symbol.Mangle != "_Dmain" || bootstrap.Symbol.Linkage != ir.LinkageC {
		t.Fatalf("expected a C-linkage _Dmain bootstrap, got %+v", bootstrap.Symbol)
	}
	if bootstrap.ReturnsVoid {
		t.Fatalf("user main returns int; bootstrap should not discard its result")
	}
	if bootstrap.Target == nil || bootstrap.Target.Name != "main" {
		t.Fatalf("expected bootstrap to target the user's main function")
	}
}

func TestBuildMainReportsMissingMain(t *testing.T) {
	ctx := NewContext()
	parser := parserReturning(nil)
	pass := NewSemanticPass(ctx, parser, evalBuilder, layout.Standard{}, nil)
	pass.SetLogLevel(report.LogLevelSilent)

	modules := map[string]*ir.Symbol{}
	mod, err := pass.Add("empty", modules)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	_, err = pass.BuildMain([]*ir.Symbol{mod})
	if err == nil {
		t.Fatalf("expected an error when no main function is present")
	}
	ce, ok := err.(*report.CompileError)
	if !ok || ce.Kind != report.NoMainFunction {
		t.Fatalf("expected a NoMainFunction CompileError, got %v", err)
	}
}

func TestBuildMainReportsAmbiguousMain(t *testing.T) {
	ctx := NewContext()

	parserA := parserReturning([]ast.Decl{mainFunc()})
	passA := NewSemanticPass(ctx, parserA, evalBuilder, layout.Standard{}, nil)
	passA.SetLogLevel(report.LogLevelSilent)
	modA, err := passA.Add("a", map[string]*ir.Symbol{})
	if err != nil {
		t.Fatalf("Add a failed: %v", err)
	}

	parserB := parserReturning([]ast.Decl{mainFunc()})
	passB := NewSemanticPass(ctx, parserB, evalBuilder, layout.Standard{}, nil)
	passB.SetLogLevel(report.LogLevelSilent)
	modB, err := passB.Add("b", map[string]*ir.Symbol{})
	if err != nil {
		t.Fatalf("Add b failed: %v", err)
	}

	_, err = passA.BuildMain([]*ir.Symbol{modA, modB})
	if err == nil {
		t.Fatalf("expected an error when more than one main function is present")
	}
	ce, ok := err.(*report.CompileError)
	if !ok || ce.Kind != report.AmbiguousMainFunction {
		t.Fatalf("expected an AmbiguousMainFunction CompileError, got %v", err)
	}
}
