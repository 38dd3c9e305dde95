// Package cast is the glue layer spec.md §4.5 calls out: implicit
// conversion rules (grounded on the teacher's types/cast.go), integrated
// with the Value Range Propagator to decide whether an otherwise-lossy
// narrowing cast is provably safe.
package cast

import (
	"drift/ir"
	"drift/vrp"
)

// Implicit reports whether a value of type src may be implicitly
// converted to dest, given the best-known value range of the source
// expression (the full range of its type if unknown — e.g. not a constant
// expression; vrp.Range{} is the singleton 0, not "unknown"). It mirrors the teacher's Cast(src, dest) structural rule
// and adds the VRP narrowing exception spec.md §4.4's CanFit exists for.
func Implicit(src, dest ir.Type, srcRange vrp.Range) bool {
	src = ir.InnerType(src)
	dest = ir.InnerType(dest)

	if src.Equals(dest) {
		return true
	}

	switch d := dest.(type) {
	case *ir.BuiltinType:
		return implicitToBuiltin(src, d, dest, srcRange)
	case *ir.PointerType:
		if s, ok := src.(*ir.PointerType); ok {
			return s.Qualifier == ir.Mutable || d.Qualifier == ir.Const
		}
		if _, ok := src.(*ir.BuiltinType); ok {
			return src.(*ir.BuiltinType).Kind == ir.Null
		}
		return false
	case *ir.AggregateType:
		return implicitToAggregate(src, d)
	}

	return false
}

func implicitToBuiltin(src ir.Type, dpt *ir.BuiltinType, dest ir.Type, srcRange vrp.Range) bool {
	spt, ok := src.(*ir.BuiltinType)
	if !ok {
		return false
	}

	if spt.Kind == dpt.Kind {
		return true
	}

	switch {
	case dpt.Kind == ir.Bool:
		return false
	case spt.Kind == ir.Bool:
		return dpt.Kind.IsIntegral()
	case dpt.Kind.IsIntegral() && spt.Kind.IsIntegral():
		if widens(spt.Kind, dpt.Kind) {
			return true
		}
		// Narrowing: only safe when VRP can prove the value fits.
		return vrp.CanFit(srcRange, dest)
	}

	return false
}

// widens reports whether converting from src to dest never loses
// information irrespective of value (a strictly wider same-signedness
// integral type, or an unsigned type promoting into a strictly wider
// signed one).
func widens(src, dest ir.BuiltinKind) bool {
	if src.BitWidth() >= dest.BitWidth() {
		return false
	}
	if src.IsUnsigned() == dest.IsUnsigned() {
		return true
	}
	// Unsigned -> signed widens safely only if the signed type has more
	// headroom than the unsigned source can ever use.
	return src.IsUnsigned() && !dest.IsUnsigned() && src.BitWidth() < dest.BitWidth()
}

func implicitToAggregate(src ir.Type, dest *ir.AggregateType) bool {
	srcAgg, ok := src.(*ir.AggregateType)
	if !ok {
		return false
	}
	if srcAgg.Sym == dest.Sym {
		return true
	}
	// Upcast along the class hierarchy: a derived class implicitly
	// converts to any of its (transitive) bases.
	if srcAgg.Sym.Kind == ir.KindClass {
		for base := srcAgg.Sym.Aggregate.Base; base != nil; base = base.Aggregate.Base {
			if base == dest.Sym {
				return true
			}
		}
	}
	return false
}

// Exact reports whether src implicitly casts to dest without any
// narrowing at all — the rule spec.md §4.3's override resolution uses to
// decide whether a candidate method's signature matches a base method's
// "exactly (not lossy)". It is deliberately stricter than Implicit: a
// provably-in-range narrowing cast (which Implicit would allow given a
// constant source) still does not count as an exact match, since override
// matching compares types, not values.
func Exact(src, dest ir.Type) bool {
	src = ir.InnerType(src)
	dest = ir.InnerType(dest)

	if src.Equals(dest) {
		return true
	}

	if sp, ok := src.(*ir.BuiltinType); ok {
		if dp, ok := dest.(*ir.BuiltinType); ok {
			return sp.Kind.IsIntegral() && dp.Kind.IsIntegral() && widens(sp.Kind, dp.Kind)
		}
	}

	return false
}
