package ir

import "drift/report"

// Step is the monotonic stage marker on a Symbol (spec.md §3 Invariants).
// A symbol never regresses in Step.
type Step int

const (
	Parsed Step = iota
	Populated
	Signed
	Processed
)

func (s Step) String() string {
	switch s {
	case Parsed:
		return "parsed"
	case Populated:
		return "populated"
	case Signed:
		return "signed"
	case Processed:
		return "processed"
	default:
		return "?"
	}
}

// Kind tags which variant of the Symbol sum a given *Symbol is. Every
// analyze routine and the scheduler dispatch on Kind via exhaustive
// switches rather than runtime type assertions, per the "dynamic dispatch
// over declaration kinds" design note.
type Kind int

const (
	KindModule Kind = iota
	KindFunction
	KindMethod
	KindVariable
	KindField
	KindStruct
	KindUnion
	KindClass
	KindInterface
	KindEnum
	KindEnumEntry
	KindTemplate
	KindTemplateInstance
	KindTypeAlias
	KindValueAlias
	KindSymbolAlias
	KindOverloadSet
	KindTypeTemplateParameter
	KindValueTemplateParameter
	KindAliasTemplateParameter
	KindTypedAliasTemplateParameter
)

// Storage classifies where a Variable/Field's value lives.
type Storage int

const (
	StorageLocal Storage = iota
	StorageCapture
	StorageStatic
	StorageEnum
)

// Linkage mirrors ast.Linkage after resolution (kept distinct so the ir
// package does not import ast).
type Linkage int

const (
	LinkageD Linkage = iota
	LinkageC
)

type Visibility int

const (
	VisPublic Visibility = iota
	VisProtected
	VisPrivate
	VisPackage
)

// Symbol is the central entity of the semantic pass: every declaration
// materializes as exactly one *Symbol. Common fields are always valid;
// at most one kind-specific payload pointer is non-nil, selected by Kind
// (a Module or a type template parameter carries none).
//
// Symbols are created once by the Declaration Visitor and thereafter
// mutated only by the Symbol Analyzer, which owns advancement through
// Step; nothing else may write to a Symbol's fields.
type Symbol struct {
	Location   *report.TextSpan
	Name       string
	Kind       Kind
	Linkage    Linkage
	Visibility Visibility
	Storage    Storage
	Mangle     string // interned external name; assigned no later than Signed
	Step       Step
	HasContext bool

	Func      *FuncData
	Var       *VarData
	Aggregate *AggregateData
	Enum      *EnumData
	EnumEntry *EnumEntryData
	Template  *TemplateData
	Instance  *TemplateInstanceData
	Alias     *AliasData
	TypeParam *TemplateParamData

	// Type is the resolved Type once available (functions/methods: their
	// FunctionType; variables/fields/aliases: their value type; aggregates
	// and enums: their own AggregateType, self-referentially, once built).
	Type Type

	// Scope is the symbol's owned SymbolScope, if it introduces one
	// (Module, Function, Method, Struct, Union, Class, Interface, Enum,
	// Template, TemplateInstance). Nil otherwise.
	Scope *Scope
}

// FuncData holds the Function/Method-specific payload.
type FuncData struct {
	Params     []*Symbol // Variable symbols, Storage=Local
	ReturnAuto bool      // true until an `auto` return type has been inferred
	IsCtor     bool
	IsOverride bool
	HasThis    bool
	ThisType   Type
	VtableIndex int // Method only; 0 means "not yet assigned / novel"
	Body       bool // whether a body was supplied
}

// VarData holds the Variable/Field-specific payload.
type VarData struct {
	FieldIndex int // Field only
	IsAuto     bool
	Immutable  bool
	Value      interface{} // compile-time evaluated constant, once available
}

// AggregateData holds the Struct/Union/Class/Interface payload.
type AggregateData struct {
	Base           *Symbol   // Class only; nil for the root Object
	Fields         []*Symbol
	Methods        []*Symbol
	Others         []*Symbol
	NextFieldIndex int
	NextMethodIdx  int
	InitVar        *Symbol // the synthesized `init` tuple/void-init member
}

// EnumData holds the Enum-specific payload.
type EnumData struct {
	Underlying Type
	Entries    []*Symbol // KindEnumEntry symbols, in source order
}

// EnumEntryData holds a single enum entry's payload.
type EnumEntryData struct {
	Index int
	Value interface{} // compile-time evaluated constant
}

// TemplateData holds the Template-specific payload.
type TemplateData struct {
	Params      []*Symbol // TemplateParameter symbols
	MemberDecl  interface{} // ast.Decl of the wrapped member; opaque here to avoid an import cycle
	IFTIHint    []Type      // parameter-type shape of the matching member function, if any
}

// TemplateInstanceData holds the TemplateInstance-specific payload.
type TemplateInstanceData struct {
	Origin    *Symbol // the Template this instantiates
	Args      []*Symbol
	CtxSym    *Symbol // enclosing context symbol, if any member HasContext
	Members   []*Symbol
}

// AliasData holds the SymbolAlias/TypeAlias/ValueAlias payload.
type AliasData struct {
	TargetSymbol *Symbol     // SymbolAlias
	TargetType   Type        // TypeAlias
	Value        interface{} // ValueAlias
}

// TemplateParamData holds a template parameter symbol's payload.
type TemplateParamData struct {
	Constraint Type // nil unless the parameter is value/typed-alias-constrained
}
