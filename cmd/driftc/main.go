// Command driftc is the thin CLI driver spec.md §6/SPEC_FULL.md §A.3
// describes: it loads a project's driftmod.toml manifest, constructs a
// sema.SemanticPass wired to the reference Evaluator and DataLayout, adds
// the one module path given to the `check` subcommand, terminates the
// pass, and reports. Grounded on the teacher's cmd/execute.go; built on
// github.com/ComedicChimera/olive for argument parsing the same way the
// teacher's Execute does.
package main

import (
	"fmt"
	"os"

	"github.com/ComedicChimera/olive"

	"drift/ast"
	"drift/eval"
	"drift/ir"
	"drift/layout"
	"drift/manifest"
	"drift/report"
	"drift/sema"
)

func main() {
	cli := olive.NewCLI("driftc", "driftc analyzes a drift module's semantics", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the analyzer log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("check", "run the semantic pass over a module", true)
	buildCmd.AddPrimaryArg("module-path", "the path to the module directory", true)

	cli.AddSubcommand("version", "print the driftc version", false)

	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "argument error:", err)
		os.Exit(1)
	}

	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		logLevel := logLevelFromName(result.Arguments["loglevel"].(string))
		os.Exit(runCheck(subResult, logLevel))
	case "version":
		fmt.Println("driftc 0.1.0")
	default:
		fmt.Fprintln(os.Stderr, "no subcommand given; see --help")
		os.Exit(1)
	}
}

func logLevelFromName(name string) int {
	switch name {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}

// runCheck executes the `check` subcommand, returning the process exit
// code: 0 on a clean pass, 1 if any diagnostic was fatal.
func runCheck(result *olive.ArgParseResult, logLevel int) int {
	modulePath, _ := result.PrimaryArg()

	mf, err := manifest.Load(modulePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading manifest:", err)
		return 1
	}

	if mf.LogLevel != "" {
		logLevel = logLevelFromName(mf.LogLevel)
	}

	ctx := sema.NewContext()

	pass := sema.NewSemanticPass(ctx, stubParser, evalBuilder, layout.Standard{}, mf.IncludePaths)
	pass.SetLogLevel(logLevel)

	modules := map[string]*ir.Symbol{}

	// The lexer and parser stages are out of scope (spec.md §1 Non-goals);
	// this driver only exercises the manifest/scheduler/analyzer/report
	// stack it does own, per SPEC_FULL.md §A.3 — it does not pretend to
	// read real drift source.
	mod, err := pass.Add(modulePath, modules)
	if err != nil {
		fmt.Fprintln(os.Stderr, "analysis error:", err)
		return 1
	}
	modules[mf.Name] = mod

	if ok := pass.Terminate(); !ok {
		return 1
	}

	if _, err := pass.BuildMain([]*ir.Symbol{mod}); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}

	fmt.Printf("module %s: semantic analysis complete, no fatal errors\n", mf.Name)
	return 0
}

func evalBuilder(lookup eval.Lookup) eval.Evaluator {
	return eval.NewFolder(lookup)
}

// stubParser stands in for the external Parser collaborator spec.md §6
// lists as consumed: an empty module, since no source text actually
// reaches this driver without the out-of-scope lexer/parser wired in.
func stubParser(_ *sema.Context, filename string, _ map[string]*ir.Symbol) (*ast.Module, error) {
	return &ast.Module{FileName: filename}, nil
}
