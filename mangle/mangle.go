// Package mangle computes the deterministic, external-ABI-visible encoded
// name of a type or symbol (spec.md §4.5). The scheme mirrors D ABI
// mangling conventions: length-prefixed identifiers, nested prefixes for
// lexical enclosure, and single-letter tags for aggregate kinds.
package mangle

import (
	"strconv"
	"strings"

	"drift/ir"
)

// Aggregate tag letters, D-ABI style.
const (
	tagStruct    = "S"
	tagClass     = "C"
	tagInterface = "I"
	tagEnum      = "E"
)

// Ident length-prefixes a single identifier segment: `<len><name>`.
func Ident(name string) string {
	return strconv.Itoa(len(name)) + name
}

// AppendIdent appends a length-prefixed identifier onto an accumulated
// mangle prefix, the operation the Symbol Analyzer performs on entry to
// every Function/Method/aggregate analysis.
func AppendIdent(prefix, name string) string {
	return prefix + Ident(name)
}

// Type produces the mangled encoding of a resolved type. For any two
// types T1, T2, Type(T1) == Type(T2) iff T1 and T2 are structurally
// identical under these rules (spec.md §4.5 contract).
func Type(t ir.Type) string {
	switch v := t.(type) {
	case *ir.BuiltinType:
		return builtinTag(v.Kind)
	case *ir.PointerType:
		if v.Qualifier == ir.Const {
			return "Px" + Type(v.Elem)
		}
		return "P" + Type(v.Elem)
	case *ir.SliceType:
		return "A" + Type(v.Elem)
	case *ir.ArrayType:
		return "G" + strconv.FormatUint(v.Size, 10) + Type(v.Elem)
	case *ir.FunctionType:
		return functionSig(v)
	case *ir.AggregateType:
		return v.Sym.Mangle
	case *ir.ContextType:
		return "Pv" // opaque context pointer
	default:
		panic("mangle.Type: unhandled ir.Type variant")
	}
}

func functionSig(ft *ir.FunctionType) string {
	var sb strings.Builder
	sb.WriteString("F")
	for _, p := range ft.Params {
		if p.IsRef {
			sb.WriteString("K")
		}
		sb.WriteString(Type(p.Type))
	}
	if ft.Variadic {
		sb.WriteString("X")
	}
	sb.WriteString("Z")
	sb.WriteString(Type(ft.Return))
	return sb.String()
}

func builtinTag(k ir.BuiltinKind) string {
	switch k {
	case ir.Void:
		return "v"
	case ir.Bool:
		return "b"
	case ir.Char:
		return "a"
	case ir.Wchar:
		return "u"
	case ir.Dchar:
		return "w"
	case ir.Byte:
		return "g"
	case ir.Ubyte:
		return "h"
	case ir.Short:
		return "s"
	case ir.Ushort:
		return "t"
	case ir.Int:
		return "i"
	case ir.Uint:
		return "k"
	case ir.Long:
		return "l"
	case ir.Ulong:
		return "m"
	case ir.Cent:
		return "z"
	case ir.Ucent:
		return "y"
	case ir.Null:
		return "n"
	default:
		panic("mangle.builtinTag: unmangleable builtin kind (auto/none)")
	}
}

// AggregateTag returns the single-letter tag used to prefix an aggregate's
// own mangle, selected by ir.Kind.
func AggregateTag(kind ir.Kind) string {
	switch kind {
	case ir.KindStruct:
		return tagStruct
	case ir.KindClass:
		return tagClass
	case ir.KindInterface:
		return tagInterface
	case ir.KindUnion:
		return tagStruct
	case ir.KindEnum:
		return tagEnum
	default:
		panic("mangle.AggregateTag: not an aggregate kind")
	}
}

// DFunction computes the full D-linkage mangle of a function/method:
// `_D` + accumulated prefix + signature.
func DFunction(prefix string, ft *ir.FunctionType) string {
	return "_D" + prefix + functionSig(ft)
}

// CFunction computes the C-linkage mangle: just the unqualified name.
func CFunction(name string) string {
	return name
}
