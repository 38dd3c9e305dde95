package cast

import (
	"testing"

	"drift/ir"
	"drift/vrp"
)

func bt(k ir.BuiltinKind) *ir.BuiltinType { return &ir.BuiltinType{Kind: k} }

func TestImplicitIdentity(t *testing.T) {
	if !Implicit(bt(ir.Int), bt(ir.Int), vrp.Range{}) {
		t.Fatalf("a type must implicitly convert to itself")
	}
}

func TestImplicitWideningIntegral(t *testing.T) {
	if !Implicit(bt(ir.Int), bt(ir.Long), vrp.Range{}) {
		t.Fatalf("int should widen to long unconditionally")
	}
}

func TestImplicitNarrowingRequiresProvenRange(t *testing.T) {
	full := vrp.Range{Min: 1, Max: 0} // wraparound encoding of the full range
	if Implicit(bt(ir.Long), bt(ir.Byte), full) {
		t.Fatalf("narrowing with an unproven range must not be allowed")
	}

	small := vrp.Literal(11, bt(ir.Long))
	if !Implicit(bt(ir.Long), bt(ir.Byte), small) {
		t.Fatalf("narrowing a provably in-range constant should be allowed")
	}
}

func TestImplicitBoolIsNotABuiltinConversionTarget(t *testing.T) {
	if Implicit(bt(ir.Int), bt(ir.Bool), vrp.Range{}) {
		t.Fatalf("nothing implicitly converts to bool")
	}
	if !Implicit(bt(ir.Bool), bt(ir.Int), vrp.Range{}) {
		t.Fatalf("bool should implicitly convert to any integral type")
	}
}

func TestImplicitPointerQualifier(t *testing.T) {
	mutPtr := &ir.PointerType{Elem: bt(ir.Int), Qualifier: ir.Mutable}
	constPtr := &ir.PointerType{Elem: bt(ir.Int), Qualifier: ir.Const}

	if !Implicit(mutPtr, constPtr, vrp.Range{}) {
		t.Fatalf("a mutable pointer should implicitly convert to a const one")
	}
	if Implicit(constPtr, mutPtr, vrp.Range{}) {
		t.Fatalf("a const pointer must not implicitly convert to a mutable one")
	}
}

func TestImplicitNullToPointer(t *testing.T) {
	ptr := &ir.PointerType{Elem: bt(ir.Int), Qualifier: ir.Mutable}
	if !Implicit(bt(ir.Null), ptr, vrp.Range{}) {
		t.Fatalf("null should implicitly convert to any pointer type")
	}
}

func TestImplicitClassUpcast(t *testing.T) {
	base := &ir.Symbol{Name: "Base", Kind: ir.KindClass, Aggregate: &ir.AggregateData{}}
	mid := &ir.Symbol{Name: "Mid", Kind: ir.KindClass, Aggregate: &ir.AggregateData{Base: base}}
	derived := &ir.Symbol{Name: "Derived", Kind: ir.KindClass, Aggregate: &ir.AggregateData{Base: mid}}

	derivedT := &ir.AggregateType{Sym: derived}
	baseT := &ir.AggregateType{Sym: base}

	if !Implicit(derivedT, baseT, vrp.Range{}) {
		t.Fatalf("a derived class should implicitly upcast to a transitive base")
	}
	if Implicit(baseT, derivedT, vrp.Range{}) {
		t.Fatalf("a base class must not implicitly downcast to a derived type")
	}
}

func TestExactStricterThanImplicit(t *testing.T) {
	// A provably in-range narrowing cast is allowed by Implicit but must
	// never count as Exact, since override matching compares types only.
	small := vrp.Literal(11, bt(ir.Long))
	if !Implicit(bt(ir.Long), bt(ir.Byte), small) {
		t.Fatalf("expected the narrowing to be implicit-legal given the proven range")
	}
	if Exact(bt(ir.Long), bt(ir.Byte)) {
		t.Fatalf("Exact must reject a narrowing conversion regardless of provable range")
	}
}

func TestExactAllowsWideningOnly(t *testing.T) {
	if !Exact(bt(ir.Int), bt(ir.Long)) {
		t.Fatalf("Exact should allow a strictly widening integral conversion")
	}
	if Exact(bt(ir.Long), bt(ir.Int)) {
		t.Fatalf("Exact must reject a narrowing conversion")
	}
}
