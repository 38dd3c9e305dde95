package sema

import (
	"fmt"
	"path/filepath"
	"strings"

	"drift/analyze"
	"drift/ast"
	"drift/ir"
	"drift/layout"
	"drift/report"
	"drift/sched"
)

// Parser is spec.md §6's consumed `Parser` collaborator: `parse(file,
// packages) -> AstModule`. It is out of this repository's scope (lexing
// and parsing are explicit Non-goals) but SemanticPass needs one supplied
// to turn a filename into the ast.Module the Declaration Visitor consumes.
type Parser func(ctx *Context, filename string, packages map[string]*ir.Symbol) (*ast.Module, error)

// SemanticPass is the facade spec.md §6 exposes: new/add/terminate/
// buildMain. It owns the scheduler and the Symbol Analyzer, and threads
// the Context and external collaborators through every module it admits.
type SemanticPass struct {
	ctx      *Context
	parser   Parser
	sched    *sched.Scheduler
	analyzer *analyze.Analyzer
	reporter *report.Reporter

	objectModule *ir.Symbol
	modules      map[string]*ir.Symbol
	includePaths []string
}

// NewSemanticPass implements spec.md §6's `new SemanticPass(context,
// evalBuilder, layoutBuilder, includePaths)`. The reporter is constructed
// at LogLevelVerbose by default; callers that loaded a manifest with an
// explicit log level should call SetLogLevel before the first Add.
func NewSemanticPass(ctx *Context, parser Parser, evalBuilder analyze.EvaluatorBuilder, layoutImpl layout.DataLayout, includePaths []string) *SemanticPass {
	s := sched.New()
	p := &SemanticPass{
		ctx:          ctx,
		parser:       parser,
		sched:        s,
		reporter:     report.NewReporter(report.LogLevelVerbose),
		modules:      make(map[string]*ir.Symbol),
		includePaths: includePaths,
	}

	versions := analyze.DefaultVersions()
	p.analyzer = &analyze.Analyzer{
		Sched:       s,
		EvalBuilder: evalBuilder,
		Layout:      layoutImpl,
		Versions:    versions,
	}

	p.objectModule, p.analyzer.ObjectClass = buildObjectModule(p.analyzer)

	return p
}

// SetLogLevel adjusts the reporter's verbosity (report.LogLevel*).
func (p *SemanticPass) SetLogLevel(level int) {
	p.reporter = report.NewReporter(level)
}

// Add implements spec.md §6's `add(filename, packages) -> Module`: parses
// filename via the configured Parser, builds its module symbol with the
// implicit `object` import prepended, schedules its analysis, and requires
// the module to Populated. Because a scheduled task runs to completion
// once started, that require analyzes the whole module (every member to
// Processed) before Add returns; Terminate then drives anything scheduled
// later, such as template instances.
func (p *SemanticPass) Add(filename string, packages map[string]*ir.Symbol) (mod *ir.Symbol, err error) {
	astMod, perr := p.parser(p.ctx, filename, packages)
	if perr != nil {
		return nil, &report.CompileError{Kind: report.SyntaxUpstream, Message: perr.Error()}
	}

	name := moduleName(filename)
	mod = analyze.NewModuleSymbol(name)
	mod.Scope.AddSymbol(p.objectModule)

	p.modules[name] = mod

	p.sched.Schedule(mod, func() {
		ctx := analyze.Ctx{Scope: mod.Scope}
		p.analyzer.AnalyzeModuleEntry(astMod, mod, ctx)
	})

	ok := p.reporter.Catch(filename, func() {
		p.sched.Require(mod, ir.Populated)
	})
	if !ok {
		return mod, fmt.Errorf("analysis of %s aborted after a fatal error", filename)
	}

	return mod, nil
}

// Terminate implements spec.md §6's `terminate()`: drive every scheduled
// symbol, across every admitted module, to Processed.
func (p *SemanticPass) Terminate() bool {
	ok := p.reporter.Catch("", func() {
		p.sched.Terminate()
	})
	return ok && !p.reporter.AnyErrors()
}

// Reporter exposes the pass's diagnostic sink, e.g. so a CLI driver can
// check AnyErrors after Terminate.
func (p *SemanticPass) Reporter() *report.Reporter {
	return p.reporter
}

func moduleName(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
