package ast

// TypeLabel is a parsed, not-yet-resolved type reference: `int`, `MyClass`,
// `int*`, `int[4]`, `[]int`, function pointer types, and so on. The
// Declaration Visitor and Symbol Analyzer resolve these into drift/ir.Type.
type TypeLabel interface {
	Node
}

// NamedTypeLabel is an identifier that names a builtin or user-defined type,
// optionally through a qualified path (`pkg.Name`).
type NamedTypeLabel struct {
	Base
	Path []string
	Name string
	// TemplateArgs holds, for a template instantiation like Box!int, the
	// argument type labels.
	TemplateArgs []TypeLabel
}

// PointerTypeLabel is `T*` or `T* const` (Qualifier holds the const-ness).
type PointerTypeLabel struct {
	Base
	Elem      TypeLabel
	Qualifier Qualifier
}

type Qualifier int

const (
	QualMutable Qualifier = iota
	QualConst
)

// SliceTypeLabel is `[]T`.
type SliceTypeLabel struct {
	Base
	Elem TypeLabel
}

// ArrayTypeLabel is `T[N]`; SizeExpr is evaluated at compile time.
type ArrayTypeLabel struct {
	Base
	Elem     TypeLabel
	SizeExpr Expr
}

// FunctionTypeLabel is `fn(T1, T2) -> R` / a function pointer type.
type FunctionTypeLabel struct {
	Base
	Params   []TypeLabel
	ParamRef []bool
	Return   TypeLabel
	Variadic bool
}

// AutoTypeLabel marks `auto`: defer to inference.
type AutoTypeLabel struct {
	Base
}
