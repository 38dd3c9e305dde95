// Package vrp implements the Value Range Propagator (spec.md §4.4): a
// conservative abstract interpreter over integer expressions that computes
// a [min, max] interval per expression, used to decide whether an implicit
// narrowing cast is safe.
package vrp

import "drift/ir"

// Range is a pair (Min, Max) of unsigned 64-bit integers interpreted under
// 64-bit unsigned modular arithmetic. Signed values are carried as their
// two's-complement bit pattern; "negative" ranges are simply ranges whose
// bit pattern, once repacked to a signed type, reads as negative.
type Range struct {
	Min, Max uint64
}

// IsFull reports whether r covers every representable 64-bit value: the
// wrap-around case where (Min - Max) mod 2^64 == 1.
func (r Range) IsFull() bool {
	return r.Min-r.Max == 1
}

// Equal implements the equality law of spec.md §8: two ranges are equal
// iff both are full, or Min and Max match exactly.
func Equal(a, b Range) bool {
	if a.IsFull() && b.IsFull() {
		return true
	}
	return a.Min == b.Min && a.Max == b.Max
}

// full returns the maximally imprecise range.
func full() Range {
	return Range{Min: 1, Max: 0}
}

// -----------------------------------------------------------------------------

// GetMask returns the bitmask of T's representable values. Enum types
// recurse into their underlying builtin; pointer-ABI types (pointers,
// classes, function pointers) get the full 64-bit mask; Bool gets 1; char
// types get the mask of their corresponding unsigned integer width;
// everything else gets the unsigned mask of the builtin's bit width.
func GetMask(t ir.Type) uint64 {
	switch v := t.(type) {
	case *ir.BuiltinType:
		return builtinMask(v.Kind)
	case *ir.AggregateType:
		if v.Sym.Kind == ir.KindEnum {
			return GetMask(v.Sym.Enum.Underlying)
		}
		// Class/Struct/Union/Interface handles are pointer-ABI sized.
		return ^uint64(0)
	case *ir.PointerType, *ir.FunctionType, *ir.ContextType:
		return ^uint64(0)
	default:
		panic("vrp.GetMask: unhandled type variant")
	}
}

func builtinMask(k ir.BuiltinKind) uint64 {
	switch k {
	case ir.Bool:
		return 1
	case ir.Void, ir.None:
		return 0
	default:
		width := k.BitWidth()
		if width >= 64 {
			return ^uint64(0)
		}
		return (uint64(1) << uint(width)) - 1
	}
}

// -----------------------------------------------------------------------------

// Repack reduces r to the canonical representation within T's bit-width.
// If Min and Max fall in the same "overflow class" (agree on every bit
// outside the mask), the tight range survives, masked down; otherwise the
// interval has genuinely wrapped and Repack conservatively returns T's full
// range. Repack is idempotent by construction: repacking an
// already-in-range pair is a no-op mask.
func Repack(r Range, t ir.Type) Range {
	mask := GetMask(t)
	if r.Min&^mask == r.Max&^mask {
		return Range{Min: r.Min & mask, Max: r.Max & mask}
	}
	return Range{Min: 0, Max: mask}
}

// Literal is the range of an integer literal v of type T: the singleton
// {v}, repacked to T.
func Literal(v uint64, t ir.Type) Range {
	return Repack(Range{Min: v, Max: v}, t)
}

// BoolLiteral is the range of a boolean literal.
func BoolLiteral(v bool) Range {
	if v {
		return Range{Min: 1, Max: 1}
	}
	return Range{Min: 0, Max: 0}
}

// Complement computes two's-complement negation: `1 + ~r.Max` to
// `1 + ~r.Min`, repacked to T. Swapping min/max is required because
// negation reverses ordering.
func Complement(r Range, t ir.Type) Range {
	return Repack(Range{Min: 1 + ^r.Max, Max: 1 + ^r.Min}, t)
}

// Add computes the sum of two ranges, pessimizing to T's full range when
// the combined spread overflows 64 bits — a conservative overflow
// detector that is kept even though a wider internal representation could
// track the exact sum, so the abstraction stays a fixed-width interval
// over modular integers rather than an arbitrary-precision one.
func Add(a, b Range, t ir.Type) Range {
	ra := a.Max - a.Min
	rb := b.Max - b.Min

	sum := ra + rb
	if sum < ra { // unsigned overflow of the combined spread
		return Repack(full(), t)
	}

	min := a.Min + b.Min
	max := a.Max + b.Max
	return Repack(Range{Min: min, Max: max}, t)
}

// Sub computes a - b as add(a, complement(b, T), T).
func Sub(a, b Range, t ir.Type) Range {
	return Add(a, Complement(b, t), t)
}

// CanFit reports whether r fits within T without truncation: the interval
// does not wrap (Min <= Max) and both bounds lie within [0, mask] in T's
// modular representation. A wrapped range, the full range included, fits
// only a type whose mask covers all 64 bits.
func CanFit(r Range, t ir.Type) bool {
	mask := GetMask(t)
	if mask == ^uint64(0) {
		return true
	}
	return r.Min <= r.Max && r.Max <= mask
}
