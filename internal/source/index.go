package source

import "github.com/bldgen/bldgen/internal/typeref"

// Index records which named types in the scanned packages are defined as
// structs. The field-consumer generator consults it: only a known concrete
// struct can safely be handed to a mutation callback as a fresh instance.
type Index struct {
	structs map[string]struct{}
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{structs: make(map[string]struct{})}
}

// AddStruct records a struct definition.
func (ix *Index) AddStruct(n typeref.Named) {
	ix.structs[n.Key()] = struct{}{}
}

// IsStruct reports whether t (unwrapping one pointer level) is a struct type
// defined in the scanned packages.
func (ix *Index) IsStruct(t typeref.TypeRef) bool {
	if p, ok := t.(typeref.Pointer); ok {
		t = p.Elem
	}
	n, ok := t.(typeref.Named)
	if !ok {
		return false
	}
	_, ok = ix.structs[n.Key()]
	return ok
}
