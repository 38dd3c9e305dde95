// Package sema assembles the Declaration Visitor, Symbol Analyzer,
// Scheduler, Value Range Propagator, and their external collaborators
// into the single SemanticPass facade spec.md §6 exposes: new, add,
// terminate, buildMain.
package sema

import "sync"

// Context implements spec.md §6's consumed `Context` interface: identifier
// interning and source-file registration shared across every module a
// SemanticPass analyzes. Interning canonicalizes repeated identifier
// strings to one backing string per distinct name, mirroring the
// teacher's approach of comparing interned symbol names rather than
// walking byte-for-byte compares at every lookup.
type Context struct {
	mu      sync.Mutex
	names   map[string]string
	files   map[string]int
	nextSrc int
}

// NewContext creates an empty interning/source-registration context.
func NewContext() *Context {
	return &Context{names: make(map[string]string), files: make(map[string]int)}
}

// GetName interns name, returning the single canonical string backing
// every occurrence of that identifier seen by this Context.
func (c *Context) GetName(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.names[name]; ok {
		return existing
	}
	c.names[name] = name
	return name
}

// RegisterFile assigns filename a stable source ID, used by diagnostics
// and by the Parser collaborator to tag spans back to their file.
func (c *Context) RegisterFile(filename string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.files[filename]; ok {
		return id
	}
	id := c.nextSrc
	c.nextSrc++
	c.files[filename] = id
	return id
}
