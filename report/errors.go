package report

import "fmt"

// Kind enumerates the semantic categories of error the pass can raise, per
// the error-kind taxonomy of the semantic pass: each is a fatal,
// location-tagged diagnostic with no attempt at recovery past the file it
// occurred in.
type Kind int

const (
	SyntaxUpstream Kind = iota
	UnresolvedIdentifier
	TypeMismatch
	OverrideNotFound
	MissingOverrideKeyword
	UnsupportedConstruct
	DuplicateSymbol
	CycleError
	CompileTimeEvaluationError
	NoMainFunction
	AmbiguousMainFunction
)

func (k Kind) String() string {
	switch k {
	case SyntaxUpstream:
		return "syntax error"
	case UnresolvedIdentifier:
		return "unresolved identifier"
	case TypeMismatch:
		return "type mismatch"
	case OverrideNotFound:
		return "override not found"
	case MissingOverrideKeyword:
		return "missing override keyword"
	case UnsupportedConstruct:
		return "unsupported construct"
	case DuplicateSymbol:
		return "duplicate symbol"
	case CycleError:
		return "cyclic dependency"
	case CompileTimeEvaluationError:
		return "compile-time evaluation error"
	case NoMainFunction:
		return "no main function"
	case AmbiguousMainFunction:
		return "ambiguous main function"
	default:
		return "error"
	}
}

// CompileError is a single fatal, location-tagged diagnostic. Analysis
// routines signal failure by panicking a *CompileError; the nearest
// Catch unwinds it into a reported message.
type CompileError struct {
	Kind    Kind
	Span    *TextSpan
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Raise constructs and panics a CompileError. It never returns.
func Raise(kind Kind, span *TextSpan, format string, args ...interface{}) {
	panic(&CompileError{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)})
}

// ICE panics with an internal-compiler-error: a violated invariant rather
// than a user mistake. Catch recovers it and reports it as an internal
// error, apart from user-facing CompileErrors.
type ICE struct {
	Message string
}

func (e *ICE) Error() string {
	return "internal error: " + e.Message
}

func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(&ICE{Message: fmt.Sprintf(format, args...)})
	}
}
