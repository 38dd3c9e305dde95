package report

import "sync"

// Enumeration of log levels, most to least quiet.
const (
	LogLevelSilent = iota
	LogLevelError
	LogLevelWarn
	LogLevelVerbose
)

// Reporter collects diagnostics produced over the lifetime of a
// SemanticPass. Its methods are safe to call from multiple goroutines
// even though the pass itself is single-threaded, since drivers may share
// one Reporter across several passes.
type Reporter struct {
	m        sync.Mutex
	logLevel int
	errCount int
}

// NewReporter creates a reporter at the given log level.
func NewReporter(logLevel int) *Reporter {
	return &Reporter{logLevel: logLevel}
}

// AnyErrors reports whether any error has been recorded.
func (r *Reporter) AnyErrors() bool {
	r.m.Lock()
	defer r.m.Unlock()
	return r.errCount > 0
}

// Catch recovers a panicked *CompileError (or *ICE) raised during fn and
// reports it, returning whether fn completed without a fatal error. Any
// other panic value is re-raised: it indicates a genuine bug in the Go
// code, not a modeled error kind.
func (r *Reporter) Catch(file string, fn func()) (ok bool) {
	defer func() {
		if x := recover(); x != nil {
			switch err := x.(type) {
			case *CompileError:
				r.reportCompileError(file, err)
				ok = false
			case *ICE:
				r.reportICE(err)
				ok = false
			default:
				panic(x)
			}
		}
	}()

	fn()
	return true
}

func (r *Reporter) reportCompileError(file string, err *CompileError) {
	r.m.Lock()
	r.errCount++
	level := r.logLevel
	r.m.Unlock()

	if level > LogLevelSilent {
		displayCompileError(file, err)
	}
}

func (r *Reporter) reportICE(err *ICE) {
	r.m.Lock()
	r.errCount++
	r.m.Unlock()

	displayICE(err.Message)
}

// Warn reports a non-fatal diagnostic.
func (r *Reporter) Warn(file string, span *TextSpan, format string, args ...interface{}) {
	r.m.Lock()
	level := r.logLevel
	r.m.Unlock()

	if level >= LogLevelWarn {
		displayWarning(file, span, format, args...)
	}
}
