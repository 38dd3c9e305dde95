package analyze

import (
	"drift/ast"
	"drift/ir"
	"drift/report"
)

var builtinByName = map[string]ir.BuiltinKind{
	"void": ir.Void, "auto": ir.None, "bool": ir.Bool, "char": ir.Char,
	"wchar": ir.Wchar, "dchar": ir.Dchar, "byte": ir.Byte, "ubyte": ir.Ubyte,
	"short": ir.Short, "ushort": ir.Ushort, "int": ir.Int, "uint": ir.Uint,
	"long": ir.Long, "ulong": ir.Ulong, "cent": ir.Cent, "ucent": ir.Ucent,
}

// resolveType resolves a parsed type label to its ir.Type, requiring any
// named aggregate it references to reach Populated (enough to know the
// aggregate's own identity and kind, but not necessarily its members).
func (a *Analyzer) resolveType(label ast.TypeLabel, ctx Ctx) ir.Type {
	switch v := label.(type) {
	case *ast.AutoTypeLabel:
		return &ir.BuiltinType{Kind: ir.None}

	case *ast.NamedTypeLabel:
		if len(v.Path) == 0 {
			if k, ok := builtinByName[v.Name]; ok {
				return &ir.BuiltinType{Kind: k}
			}
		}
		sym := a.resolveIdentifier(ctx.Scope, v.Name, v.Span())
		a.require(sym, ir.Populated)
		switch sym.Kind {
		case ir.KindStruct, ir.KindUnion, ir.KindClass, ir.KindInterface, ir.KindEnum, ir.KindTemplateInstance:
			return &ir.AggregateType{Sym: sym}
		case ir.KindTypeAlias:
			a.require(sym, ir.Populated)
			return sym.Alias.TargetType
		case ir.KindTypeTemplateParameter:
			return sym.Type
		default:
			report.Raise(report.TypeMismatch, v.Span(), "`%s` does not name a type", v.Name)
		}

	case *ast.PointerTypeLabel:
		q := ir.Mutable
		if v.Qualifier == ast.QualConst {
			q = ir.Const
		}
		return &ir.PointerType{Elem: a.resolveType(v.Elem, ctx), Qualifier: q}

	case *ast.SliceTypeLabel:
		return &ir.SliceType{Elem: a.resolveType(v.Elem, ctx)}

	case *ast.ArrayTypeLabel:
		folder := a.EvalBuilder(a.ScopeLookup(ctx.Scope))
		size, err := folder.EvalIntegral(v.SizeExpr)
		if err != nil {
			report.Raise(report.CompileTimeEvaluationError, v.Span(), "array size must be a compile-time constant: %s", err)
		}
		return &ir.ArrayType{Elem: a.resolveType(v.Elem, ctx), Size: size}

	case *ast.FunctionTypeLabel:
		ft := &ir.FunctionType{Variadic: v.Variadic, Return: a.resolveType(v.Return, ctx)}
		for i, p := range v.Params {
			ft.Params = append(ft.Params, ir.ParamType{
				Type:  a.resolveType(p, ctx),
				IsRef: i < len(v.ParamRef) && v.ParamRef[i],
			})
		}
		return ft

	default:
		report.Raise(report.UnsupportedConstruct, label.Span(), "unsupported type label")
	}

	panic("unreachable")
}
