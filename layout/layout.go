// Package layout defines the DataLayout interface consumed by the
// semantic pass (spec.md §6) for sizing resolved types, plus a reference
// implementation. The real data-layout computer (struct packing,
// target-specific alignment, vtable shape) is an out-of-scope back-end
// component; this implementation is the minimal one the core's own
// initializer and VRP-sizing call sites need.
package layout

import "drift/ir"

// DataLayout reports sizes and alignments of resolved types.
type DataLayout interface {
	Size(t ir.Type) int
	Align(t ir.Type) int
}

// PointerWidth is the target's pointer size in bytes.
const PointerWidth = 8

// Standard is a straightforward, non-packed reference DataLayout: fields
// are laid out in declared order with natural alignment padding, matching
// the teacher's PrimitiveType.Size/Align pairing.
type Standard struct{}

func (Standard) Size(t ir.Type) int {
	switch v := t.(type) {
	case *ir.BuiltinType:
		return builtinSize(v.Kind)
	case *ir.PointerType, *ir.FunctionType, *ir.ContextType:
		return PointerWidth
	case *ir.SliceType:
		return PointerWidth * 2 // {ptr, len}
	case *ir.ArrayType:
		return Standard{}.Size(v.Elem) * int(v.Size)
	case *ir.AggregateType:
		return aggregateSize(v.Sym)
	default:
		return 0
	}
}

func (Standard) Align(t ir.Type) int {
	switch v := t.(type) {
	case *ir.BuiltinType:
		return builtinSize(v.Kind)
	case *ir.PointerType, *ir.FunctionType, *ir.ContextType, *ir.SliceType:
		return PointerWidth
	case *ir.ArrayType:
		return Standard{}.Align(v.Elem)
	case *ir.AggregateType:
		return aggregateAlign(v.Sym)
	default:
		return 1
	}
}

func builtinSize(k ir.BuiltinKind) int {
	switch k {
	case ir.Void, ir.None:
		return 0
	case ir.Bool, ir.Char, ir.Byte, ir.Ubyte:
		return 1
	case ir.Wchar, ir.Short, ir.Ushort:
		return 2
	case ir.Dchar, ir.Int, ir.Uint:
		return 4
	case ir.Long, ir.Ulong, ir.Null:
		return 8
	case ir.Cent, ir.Ucent:
		return 16
	default:
		return 8
	}
}

func aggregateSize(sym *ir.Symbol) int {
	if sym.Aggregate == nil {
		return 0
	}
	offset := 0
	for _, f := range sym.Aggregate.Fields {
		a := Standard{}.Align(f.Type)
		if a > 0 {
			offset = align(offset, a)
		}
		offset += Standard{}.Size(f.Type)
	}
	a := aggregateAlign(sym)
	if a > 0 {
		offset = align(offset, a)
	}
	return offset
}

func aggregateAlign(sym *ir.Symbol) int {
	max := 1
	if sym.Aggregate == nil {
		return max
	}
	for _, f := range sym.Aggregate.Fields {
		if a := (Standard{}).Align(f.Type); a > max {
			max = a
		}
	}
	return max
}

func align(offset, alignment int) int {
	if alignment <= 1 {
		return offset
	}
	rem := offset % alignment
	if rem == 0 {
		return offset
	}
	return offset + (alignment - rem)
}
