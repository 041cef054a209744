package source

import "github.com/bldgen/bldgen/internal/typeref"

// BuilderInfo describes a builder known to exist for a type in the current
// processing round. The generator chain consults it to decide whether
// nested-builder construction applies to a field.
type BuilderInfo struct {
	Target      typeref.Named
	BuilderName string // e.g. AddressBuilder
	FactoryName string // e.g. NewAddressBuilder
	BuildName   string // e.g. Build, or build when methods are package-scoped
	ReturnsPtr  bool   // Build returns *T rather than T
}

// Registry maps type keys to their known builders. It is populated
// incrementally as annotated types are discovered; the round is
// single-threaded by contract.
type Registry struct {
	byKey map[string]BuilderInfo
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKey: make(map[string]BuilderInfo)}
}

// Add records that target has a generated builder this round.
func (r *Registry) Add(info BuilderInfo) {
	r.byKey[info.Target.Key()] = info
}

// Lookup resolves the builder for t, unwrapping one level of pointer
// indirection: both Address and *Address fields use AddressBuilder.
func (r *Registry) Lookup(t typeref.TypeRef) (BuilderInfo, bool) {
	if p, ok := t.(typeref.Pointer); ok {
		t = p.Elem
	}
	n, ok := t.(typeref.Named)
	if !ok {
		return BuilderInfo{}, false
	}
	info, ok := r.byKey[n.Key()]
	return info, ok
}
