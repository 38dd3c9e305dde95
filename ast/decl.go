package ast

// Decl is a top-level or member declaration as produced by the parser.
// The Declaration Visitor flattens a []Decl into symbol stubs.
type Decl interface {
	Node
	// DeclNames returns the names this declaration introduces (for
	// duplicate-symbol checking); a template mixin or static-if block
	// returns none of its own, since it expands into other Decls instead.
	DeclNames() []string
}

type DeclBase struct {
	Base
	Linkage    Linkage
	Visibility Visibility
	Annots     map[string]string
}

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

// -----------------------------------------------------------------------------

// StaticIfDecl expands at Declaration Visitor time: the Cond is evaluated
// against the version/constant set, and only the matching branch's Then (or
// Else) declarations are flattened into the enclosing scope.
type StaticIfDecl struct {
	DeclBase
	Cond Expr
	Then []Decl
	Else []Decl
}

func (d *StaticIfDecl) DeclNames() []string { return nil }

// VersionDecl is `version(Tag) { ... } else { ... }`, expanded the same way
// as StaticIfDecl but against the `versions` predicate set (§6).
type VersionDecl struct {
	DeclBase
	Tag  string
	Then []Decl
	Else []Decl
}

func (d *VersionDecl) DeclNames() []string { return nil }

// MixinDecl splices a template-mixin's member declarations directly into
// the enclosing scope at visitation time.
type MixinDecl struct {
	DeclBase
	TemplateName string
	Args         []Expr
}

func (d *MixinDecl) DeclNames() []string { return nil }

// -----------------------------------------------------------------------------

// ParamDecl is a single function/method parameter.
type ParamDecl struct {
	Base
	Name    string
	Type    TypeLabel
	IsRef   bool
	IsFinal bool
	Default Expr // nil if no default value
}

// FuncDecl covers free functions, methods (HasThis true), and closures
// (HasContext true).
type FuncDecl struct {
	DeclBase
	Name        string
	Params      []ParamDecl
	ReturnType  TypeLabel // nil means `auto`
	Body        *Block    // nil for a declaration with no body
	IsCtor      bool
	IsOverride  bool
	HasThis     bool
	HasContext  bool
	IsVariadic  bool
}

func (d *FuncDecl) DeclNames() []string { return []string{d.Name} }

// VarDecl covers globals, locals promoted to symbols, and fields when
// embedded in an aggregate's member list.
type VarDecl struct {
	DeclBase
	Name    string
	Type    TypeLabel // nil means `auto`
	Init    Expr      // nil means default-construct
	IsField bool
	IsStatic bool
}

func (d *VarDecl) DeclNames() []string { return []string{d.Name} }

// AggregateKind distinguishes struct/union/class.
type AggregateKind int

const (
	AggStruct AggregateKind = iota
	AggUnion
	AggClass
)

// AggregateDecl covers struct, union, and class declarations.
type AggregateDecl struct {
	DeclBase
	Kind    AggregateKind
	Name    string
	Base_   TypeLabel // nil for struct/union; nil for a class means "extends Object"
	Members []Decl
	IsNested bool
}

func (d *AggregateDecl) DeclNames() []string { return []string{d.Name} }

// InterfaceDecl is presently minimal per spec.md §4.3: members and
// inheritance are reserved for a future pass.
type InterfaceDecl struct {
	DeclBase
	Name    string
	Members []Decl
}

func (d *InterfaceDecl) DeclNames() []string { return []string{d.Name} }

// EnumEntryDecl is one entry in an EnumDecl's chain.
type EnumEntryDecl struct {
	Base
	Name  string
	Value Expr // nil means "default to previous + 1 (or 0 for the first)"
}

// EnumDecl declares an enumeration with an optional explicit underlying
// type (default Int).
type EnumDecl struct {
	DeclBase
	Name      string
	Underlying TypeLabel // nil means default Int
	Entries   []EnumEntryDecl
}

func (d *EnumDecl) DeclNames() []string { return []string{d.Name} }

// -----------------------------------------------------------------------------

// TemplateParamKind distinguishes the four template parameter kinds.
type TemplateParamKind int

const (
	TemplateParamType TemplateParamKind = iota
	TemplateParamValue
	TemplateParamAlias
	TemplateParamTypedAlias
)

type TemplateParamDecl struct {
	Base
	Name string
	Kind TemplateParamKind
	// Type constrains TemplateParamValue/TemplateParamTypedAlias parameters.
	Type TypeLabel
}

// TemplateDecl wraps a single member declaration (function, aggregate,
// alias, ...) parameterized over TemplateParams.
type TemplateDecl struct {
	DeclBase
	Name    string
	Params  []TemplateParamDecl
	Member  Decl
}

func (d *TemplateDecl) DeclNames() []string { return []string{d.Name} }

// -----------------------------------------------------------------------------

type AliasKind int

const (
	AliasSymbol AliasKind = iota // `alias Name = other.symbol;`
	AliasType                    // `alias Name = SomeType;`
	AliasValue                   // `alias Name = someConstExpr;`
)

type AliasDecl struct {
	DeclBase
	Name   string
	Kind   AliasKind
	Target Expr      // for AliasSymbol/AliasValue
	Type   TypeLabel // for AliasType
}

func (d *AliasDecl) DeclNames() []string { return []string{d.Name} }
