// Package ast defines the shapes of parsed declarations, expressions, and
// type labels that the semantic pass consumes. The lexer and parser that
// produce these trees are external collaborators, out of scope here.
package ast

import "drift/report"

// Node is the interface implemented by every AST node.
type Node interface {
	Span() *report.TextSpan
}

// Base is embedded by every concrete node to satisfy Node.
type Base struct {
	span *report.TextSpan
}

func NewBase(span *report.TextSpan) Base {
	return Base{span: span}
}

func NewBaseOver(start, end *report.TextSpan) Base {
	return Base{span: report.SpanOver(start, end)}
}

func (b Base) Span() *report.TextSpan {
	return b.span
}

// Module is the root AST node for a single source file handed to
// SemanticPass.Add: a flat list of top-level declarations.
type Module struct {
	Base
	FileName string
	Decls    []Decl
}
