package ir

import "testing"

func TestOverloadSetWithoutDoesNotMutateOriginal(t *testing.T) {
	a := &Symbol{Name: "foo"}
	b := &Symbol{Name: "foo"}
	os := NewOverloadSet("foo", a, b)

	rest := os.Without(a)

	if len(os.Symbols) != 2 {
		t.Fatalf("Without must not mutate the receiver in place, got %d symbols", len(os.Symbols))
	}
	if rest == nil || len(rest.Symbols) != 1 || rest.Symbols[0] != b {
		t.Fatalf("expected a fresh set containing only b, got %+v", rest)
	}
}

func TestOverloadSetWithoutEmptyResultIsNil(t *testing.T) {
	a := &Symbol{Name: "foo"}
	os := NewOverloadSet("foo", a)

	if rest := os.Without(a); rest != nil {
		t.Fatalf("expected nil when every symbol is excluded, got %+v", rest)
	}
}

func TestScopeAddOverloadableSymbolPromotesLoneSymbol(t *testing.T) {
	scope := NewScope(nil, nil)
	a := &Symbol{Name: "foo"}
	b := &Symbol{Name: "foo"}

	scope.AddOverloadableSymbol(a)
	if _, ok := scope.LookupLocal("foo").(*Symbol); !ok {
		t.Fatalf("a single overloadable symbol should be stored bare, not as a set")
	}

	scope.AddOverloadableSymbol(b)
	os, ok := scope.LookupLocal("foo").(*OverloadSet)
	if !ok {
		t.Fatalf("adding a second overload should promote the entry to an OverloadSet")
	}
	if len(os.Symbols) != 2 {
		t.Fatalf("expected 2 symbols in the promoted set, got %d", len(os.Symbols))
	}
}

func TestScopeLookupWalksParentChain(t *testing.T) {
	parent := NewScope(nil, nil)
	sym := &Symbol{Name: "x"}
	parent.AddSymbol(sym)

	child := NewScope(parent, nil)
	if got := child.Lookup("x"); got != interface{}(sym) {
		t.Fatalf("expected child.Lookup to find parent's symbol")
	}
	if got := child.LookupLocal("x"); got != nil {
		t.Fatalf("LookupLocal must not walk the parent chain, got %+v", got)
	}
}

func TestScopeReplaceOverwritesEntry(t *testing.T) {
	scope := NewScope(nil, nil)
	a := &Symbol{Name: "foo"}
	scope.AddSymbol(a)

	fresh := NewOverloadSet("foo", &Symbol{Name: "foo"})
	scope.Replace("foo", fresh)

	if got := scope.LookupLocal("foo"); got != interface{}(fresh) {
		t.Fatalf("Replace should overwrite the existing entry outright")
	}
}
