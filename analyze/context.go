package analyze

import "drift/ir"

// Ctx is the ambient analysis state spec.md §5 calls "the core's single
// most error-prone contract": the accumulated mangle prefix, the enclosing
// `this` type, the expected return type, the symbol a closure/nested
// aggregate may capture, and the current lexical scope.
//
// Rather than a process-global that each analyze routine pushes/pops by
// hand, Ctx is an ordinary value threaded as a parameter. Every analyze
// function receives a Ctx by value and derives a modified copy (via the
// With* helpers below) only for the nested calls it makes; Go's normal
// call-stack semantics then give scoped acquisition/release for free —
// when a nested call returns (even via panic unwinding through a Catch
// boundary), the caller's original Ctx is simply still sitting in its own
// stack frame, untouched. No explicit restore step can be forgotten
// because there is nothing mutable to restore.
type Ctx struct {
	ManglePrefix string
	ThisType     ir.Type
	ReturnType   ir.Type
	CtxSym       *ir.Symbol
	Scope        *ir.Scope
}

func (c Ctx) WithScope(s *ir.Scope) Ctx {
	c.Scope = s
	return c
}

func (c Ctx) WithMangle(prefix string) Ctx {
	c.ManglePrefix = prefix
	return c
}

func (c Ctx) WithThis(t ir.Type) Ctx {
	c.ThisType = t
	return c
}

func (c Ctx) WithReturn(t ir.Type) Ctx {
	c.ReturnType = t
	return c
}

func (c Ctx) WithCtxSym(sym *ir.Symbol) Ctx {
	c.CtxSym = sym
	return c
}
