package mangle

import (
	"testing"

	"drift/ir"
)

func TestIdentLengthPrefixes(t *testing.T) {
	if got, want := Ident("foo"), "3foo"; got != want {
		t.Fatalf("Ident(foo) = %q, want %q", got, want)
	}
	if got, want := Ident(""), "0"; got != want {
		t.Fatalf("Ident(\"\") = %q, want %q", got, want)
	}
}

func TestAppendIdentAccumulates(t *testing.T) {
	prefix := AppendIdent("_D", "mymodule")
	prefix = AppendIdent(prefix, "MyClass")
	if want := "_D8mymodule7MyClass"; prefix != want {
		t.Fatalf("got %q, want %q", prefix, want)
	}
}

// For structurally identical types, mangles are equal (spec.md §8).
func TestTypeStructuralEquality(t *testing.T) {
	a := &ir.PointerType{Elem: &ir.BuiltinType{Kind: ir.Int}, Qualifier: ir.Mutable}
	b := &ir.PointerType{Elem: &ir.BuiltinType{Kind: ir.Int}, Qualifier: ir.Mutable}
	if Type(a) != Type(b) {
		t.Fatalf("structurally identical pointer types mangled differently: %q vs %q", Type(a), Type(b))
	}

	c := &ir.PointerType{Elem: &ir.BuiltinType{Kind: ir.Int}, Qualifier: ir.Const}
	if Type(a) == Type(c) {
		t.Fatalf("mutable and const pointers should not share a mangle")
	}
}

func TestTypeDistinguishesAggregateIdentity(t *testing.T) {
	sym1 := &ir.Symbol{Name: "A", Mangle: "3fooA"}
	sym2 := &ir.Symbol{Name: "A", Mangle: "3barA"}

	t1 := &ir.AggregateType{Sym: sym1}
	t2 := &ir.AggregateType{Sym: sym2}

	if Type(t1) == Type(t2) {
		t.Fatalf("two distinct aggregate symbols sharing a name should not share a mangle")
	}
}

func TestFunctionSigEncodesRefAndVariadic(t *testing.T) {
	plain := &ir.FunctionType{
		Params: []ir.ParamType{{Type: &ir.BuiltinType{Kind: ir.Int}}},
		Return: &ir.BuiltinType{Kind: ir.Void},
	}
	ref := &ir.FunctionType{
		Params: []ir.ParamType{{Type: &ir.BuiltinType{Kind: ir.Int}, IsRef: true}},
		Return: &ir.BuiltinType{Kind: ir.Void},
	}
	if Type(plain) == Type(ref) {
		t.Fatalf("a by-ref parameter must change the mangle")
	}

	variadic := &ir.FunctionType{
		Params:   plain.Params,
		Return:   plain.Return,
		Variadic: true,
	}
	if Type(plain) == Type(variadic) {
		t.Fatalf("variadic must change the mangle")
	}
}

// For a function with D linkage, its mangle begins with `_D` and contains
// its enclosing-scope prefix verbatim (spec.md §8).
func TestDFunctionBeginsWithDPrefixAndContainsScope(t *testing.T) {
	prefix := AppendIdent(AppendIdent("_D", "mymodule"), "doThing")
	ft := &ir.FunctionType{Return: &ir.BuiltinType{Kind: ir.Void}}

	got := DFunction(prefix, ft)
	if len(got) < 2 || got[:2] != "_D" {
		t.Fatalf("D-linkage mangle %q does not begin with _D", got)
	}
	if !containsSubstring(got, prefix) {
		t.Fatalf("D-linkage mangle %q does not contain scope prefix %q verbatim", got, prefix)
	}
}

func TestCFunctionIsUnqualified(t *testing.T) {
	if got, want := CFunction("malloc"), "malloc"; got != want {
		t.Fatalf("CFunction(malloc) = %q, want %q", got, want)
	}
}

func TestAggregateTagPerKind(t *testing.T) {
	cases := []struct {
		kind ir.Kind
		want string
	}{
		{ir.KindStruct, "S"},
		{ir.KindClass, "C"},
		{ir.KindInterface, "I"},
		{ir.KindUnion, "S"},
		{ir.KindEnum, "E"},
	}
	for _, c := range cases {
		if got := AggregateTag(c.kind); got != c.want {
			t.Fatalf("AggregateTag(%v) = %q, want %q", c.kind, got, c.want)
		}
	}
}

func containsSubstring(haystack, needle string) bool {
	if len(needle) == 0 {
		return true
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
