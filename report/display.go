package report

import (
	"fmt"

	"github.com/pterm/pterm"
)

var (
	errorStyleBG = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	errorColorFG = pterm.FgRed
	warnStyleBG  = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	warnColorFG  = pterm.FgYellow
	iceStyleBG   = pterm.NewStyle(pterm.BgMagenta, pterm.FgWhite)
)

func displayCompileError(file string, err *CompileError) {
	errorStyleBG.Print(" error ")
	if err.Span == nil {
		errorColorFG.Printfln(" %s: %s: %s", file, err.Kind, err.Message)
	} else {
		errorColorFG.Printfln(
			" %s:%d:%d: %s: %s",
			file, err.Span.StartLine+1, err.Span.StartCol+1, err.Kind, err.Message,
		)
	}
}

func displayWarning(file string, span *TextSpan, format string, args ...interface{}) {
	warnStyleBG.Print(" warning ")
	msg := fmt.Sprintf(format, args...)
	if span == nil {
		warnColorFG.Printfln(" %s: %s", file, msg)
	} else {
		warnColorFG.Printfln(" %s:%d:%d: %s", file, span.StartLine+1, span.StartCol+1, msg)
	}
}

func displayICE(message string) {
	iceStyleBG.Print(" internal error ")
	pterm.Println(" " + message)
}
