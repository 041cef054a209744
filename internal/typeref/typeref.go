// Package typeref models resolvable type references as a closed tagged union.
// Every consumer of a TypeRef switches over the concrete variants; adding a
// variant breaks those switches at compile time, which is intended.
package typeref

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeRef is a structural, immutable reference to a Go type. Instances are
// compared by Key(), never by identity, so they can be freely aliased and
// used as map keys for deduplication.
type TypeRef interface {
	// Key returns the canonical spelling of the reference. Two TypeRefs
	// describe the same type exactly when their keys are equal.
	Key() string

	sealed()
}

// Named references a defined type, local or imported. PkgPath is empty for
// universe-scope names (error, any) and for the synthetic struct{} leaf.
type Named struct {
	PkgPath string
	Name    string
}

// Generic references an instantiation of a generic named type. A Generic
// with zero Args is a "raw" reference: representable, but every consumer
// must check arity before indexing into Args.
type Generic struct {
	Outer Named
	Args  []TypeRef
}

// Slice references []Elem.
type Slice struct {
	Elem TypeRef
}

// Array references [Len]Elem.
type Array struct {
	Len  int
	Elem TypeRef
}

// Map references map[K]V. A map whose value is EmptyStruct() is treated as a
// set throughout the pipeline.
type Map struct {
	K TypeRef
	V TypeRef
}

// Pointer references *Elem.
type Pointer struct {
	Elem TypeRef
}

// Primitive references a predeclared type (string, int, bool, ...).
type Primitive struct {
	Name string
}

// TypeVar references a type parameter of the enclosing declaration.
type TypeVar struct {
	Name string
}

func (Named) sealed()     {}
func (Generic) sealed()   {}
func (Slice) sealed()     {}
func (Array) sealed()     {}
func (Map) sealed()       {}
func (Pointer) sealed()   {}
func (Primitive) sealed() {}
func (TypeVar) sealed()   {}

func (t Named) Key() string {
	if t.PkgPath == "" {
		return t.Name
	}
	return t.PkgPath + "." + t.Name
}

func (t Generic) Key() string {
	if len(t.Args) == 0 {
		return t.Outer.Key() + "[...]"
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.Key()
	}
	return t.Outer.Key() + "[" + strings.Join(parts, ",") + "]"
}

func (t Slice) Key() string     { return "[]" + t.Elem.Key() }
func (t Array) Key() string     { return "[" + strconv.Itoa(t.Len) + "]" + t.Elem.Key() }
func (t Map) Key() string       { return "map[" + t.K.Key() + "]" + t.V.Key() }
func (t Pointer) Key() string   { return "*" + t.Elem.Key() }
func (t Primitive) Key() string { return t.Name }
func (t TypeVar) Key() string   { return t.Name }

// Equal reports structural equality of two references.
func Equal(a, b TypeRef) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// EmptyStruct returns the struct{} leaf used as the value type of sets.
func EmptyStruct() TypeRef { return Named{Name: "struct{}"} }

// IsEmptyStruct reports whether t is the struct{} leaf.
func IsEmptyStruct(t TypeRef) bool {
	n, ok := t.(Named)
	return ok && n.PkgPath == "" && n.Name == "struct{}"
}

// SimpleName returns the bare type name of the reference, used when a
// conflicting field must be renamed by appending its type name.
func SimpleName(t TypeRef) string {
	switch v := t.(type) {
	case Named:
		return v.Name
	case Generic:
		return v.Outer.Name
	case Slice:
		return SimpleName(v.Elem) + "Slice"
	case Array:
		return SimpleName(v.Elem) + "Array"
	case Map:
		return "Map"
	case Pointer:
		return SimpleName(v.Elem)
	case Primitive:
		return capitalize(v.Name)
	case TypeVar:
		return v.Name
	default:
		return ""
	}
}

// ElemType returns the element type of a slice, array, pointer, set, or
// single-argument generic container. It fails with a descriptive error for
// raw generics and for shapes that have no element.
func ElemType(t TypeRef) (TypeRef, error) {
	switch v := t.(type) {
	case Slice:
		return v.Elem, nil
	case Array:
		return v.Elem, nil
	case Pointer:
		return v.Elem, nil
	case Map:
		if IsEmptyStruct(v.V) {
			return v.K, nil
		}
		return nil, fmt.Errorf("typeref: %s is a map, not an element container; use KeyValueTypes", t.Key())
	case Generic:
		if len(v.Args) == 0 {
			return nil, fmt.Errorf("typeref: raw generic %s carries no type arguments; cannot resolve an element type", v.Outer.Key())
		}
		if len(v.Args) != 1 {
			return nil, fmt.Errorf("typeref: %s has %d type arguments, expected exactly 1", t.Key(), len(v.Args))
		}
		return v.Args[0], nil
	default:
		return nil, fmt.Errorf("typeref: %s has no element type", t.Key())
	}
}

// KeyValueTypes returns the key and value types of a map or two-argument
// generic container, failing fast on raw generics and wrong arity.
func KeyValueTypes(t TypeRef) (TypeRef, TypeRef, error) {
	switch v := t.(type) {
	case Map:
		return v.K, v.V, nil
	case Generic:
		if len(v.Args) == 0 {
			return nil, nil, fmt.Errorf("typeref: raw generic %s carries no type arguments; cannot resolve key/value types", v.Outer.Key())
		}
		if len(v.Args) != 2 {
			return nil, nil, fmt.Errorf("typeref: %s has %d type arguments, expected exactly 2", t.Key(), len(v.Args))
		}
		return v.Args[0], v.Args[1], nil
	default:
		return nil, nil, fmt.Errorf("typeref: %s is not a keyed container", t.Key())
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
