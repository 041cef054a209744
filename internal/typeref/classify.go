package typeref

// collectPath is the runtime collection package. Container classification is
// keyed on the full path so a user-defined generic that happens to be named
// List or Set is not misclassified.
const collectPath = "github.com/bldgen/bldgen/pkg/collect"

// Well-known generic containers from the runtime collect package. A Generic
// over one of these is treated like the matching built-in shape, the same
// way a slice or map literal would be.
var (
	listContainers = map[string]struct{}{collectPath + ".List": {}, collectPath + ".BuilderList": {}}
	setContainers  = map[string]struct{}{collectPath + ".Set": {}, collectPath + ".BuilderSet": {}}
	mapContainers  = map[string]struct{}{collectPath + ".Map": {}}
)

var platformBase = map[string]struct{}{
	"time.Time":     {},
	"time.Duration": {},
	"net/url.URL":   {},
}

// IsPrimitive reports whether t is a predeclared scalar type.
func IsPrimitive(t TypeRef) bool {
	_, ok := t.(Primitive)
	return ok
}

// IsStringLike reports whether t stores as a plain string.
func IsStringLike(t TypeRef) bool {
	p, ok := t.(Primitive)
	return ok && p.Name == "string"
}

// IsOptionalLike reports whether t is a pointer, the Go rendering of an
// optional value.
func IsOptionalLike(t TypeRef) bool {
	_, ok := t.(Pointer)
	return ok
}

// IsOptionalOfString reports whether t is *string.
func IsOptionalOfString(t TypeRef) bool {
	p, ok := t.(Pointer)
	return ok && IsStringLike(p.Elem)
}

// IsListLike reports whether t behaves as an ordered element container:
// a slice, or a known generic list container.
func IsListLike(t TypeRef) bool {
	switch v := t.(type) {
	case Slice:
		return true
	case Generic:
		_, ok := listContainers[v.Outer.Key()]
		return ok
	default:
		return false
	}
}

// IsSetLike reports whether t behaves as an unordered unique-element
// container: map[E]struct{}, or a known generic set container.
func IsSetLike(t TypeRef) bool {
	switch v := t.(type) {
	case Map:
		return IsEmptyStruct(v.V)
	case Generic:
		_, ok := setContainers[v.Outer.Key()]
		return ok
	default:
		return false
	}
}

// IsMapLike reports whether t behaves as a keyed container. Sets are
// excluded even though they share the map representation.
func IsMapLike(t TypeRef) bool {
	switch v := t.(type) {
	case Map:
		return !IsEmptyStruct(v.V)
	case Generic:
		_, ok := mapContainers[v.Outer.Key()]
		return ok
	default:
		return false
	}
}

// IsArray reports whether t is a fixed-size array.
func IsArray(t TypeRef) bool {
	_, ok := t.(Array)
	return ok
}

// IsPlatformBase reports whether t is a predeclared type or one of the
// well-known standard-library value types that never get nested builders.
func IsPlatformBase(t TypeRef) bool {
	switch v := t.(type) {
	case Primitive:
		return true
	case Named:
		_, ok := platformBase[v.Key()]
		return ok
	default:
		return false
	}
}

// IsRawGeneric reports whether t is a generic reference with zero supplied
// type arguments. Such a reference is representable but must be treated as
// non-parameterized by every consumer.
func IsRawGeneric(t TypeRef) bool {
	g, ok := t.(Generic)
	return ok && len(g.Args) == 0
}

// NonNull reports whether a value of t can never be nil: primitives, value
// structs, arrays, and type variables. Pointers, slices, maps, and raw
// generics are nilable.
func NonNull(t TypeRef) bool {
	switch t.(type) {
	case Primitive, Named, Array, TypeVar:
		return true
	default:
		return false
	}
}
