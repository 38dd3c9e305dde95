package ir

// Scope is a symbol container: name -> *Symbol or name -> *OverloadSet.
// Lookup walks Parent chains. Grounded on the teacher's SymbolTable, but
// simplified to the lexical-scope model spec.md §3 describes instead of
// the teacher's declared-by-usage forward-reference table, since this pass
// is demand-driven through the Scheduler rather than single-pass.
type Scope struct {
	Parent  *Scope
	Owner   *Symbol // the symbol this scope belongs to, if any
	IsClosure bool  // ClosureScope: enclosed symbols may close over Owner

	entries map[string]interface{} // *Symbol | *OverloadSet
}

func NewScope(parent *Scope, owner *Symbol) *Scope {
	return &Scope{Parent: parent, Owner: owner, entries: make(map[string]interface{})}
}

// NewClosureScope creates a scope additionally marked so that symbols
// resolved within it which reference names from an enclosing function may
// close over it (hasContext propagation).
func NewClosureScope(parent *Scope, owner *Symbol) *Scope {
	return &Scope{Parent: parent, Owner: owner, IsClosure: true, entries: make(map[string]interface{})}
}

// Lookup searches this scope and its ancestors for name, returning either
// a *Symbol or an *OverloadSet (or nil if not found).
func (s *Scope) Lookup(name string) interface{} {
	for sc := s; sc != nil; sc = sc.Parent {
		if v, ok := sc.entries[name]; ok {
			return v
		}
	}
	return nil
}

// LookupLocal searches only this scope, not its ancestors.
func (s *Scope) LookupLocal(name string) interface{} {
	return s.entries[name]
}

// AddSymbol registers a non-overloadable symbol. The caller must have
// already checked for a DuplicateSymbol conflict via LookupLocal.
func (s *Scope) AddSymbol(sym *Symbol) {
	s.entries[sym.Name] = sym
}

// AddOverloadableSymbol registers sym at its name: the first symbol is
// stored bare, and a second one promotes the entry into an OverloadSet
// (later ones are added to that set). It returns the set, or nil while the
// name still holds a single symbol.
func (s *Scope) AddOverloadableSymbol(sym *Symbol) *OverloadSet {
	existing := s.entries[sym.Name]
	switch v := existing.(type) {
	case nil:
		s.entries[sym.Name] = sym
		return nil
	case *OverloadSet:
		v.Add(sym)
		return v
	case *Symbol:
		os := NewOverloadSet(sym.Name, v, sym)
		s.entries[sym.Name] = os
		return os
	default:
		panic("unreachable scope entry type")
	}
}

// Replace overwrites the entry at name outright (used when override
// resolution constructs a fresh OverloadSet for a derived class, per
// spec.md §9's "construct a new overload set" reformulation).
func (s *Scope) Replace(name string, entry interface{}) {
	s.entries[name] = entry
}

// Names returns all names directly declared in this scope (not ancestors).
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.entries))
	for n := range s.entries {
		names = append(names, n)
	}
	return names
}
