// Package collect provides the small collection builders generated code
// delegates to: chained mutators for slices, sets, and maps, plus variants
// whose Add accepts a per-element builder callback.
package collect

// Builder is the base contract generated builders can declare via the
// baseInterface option.
type Builder[T any] interface {
	Build() T
}

// List accumulates slice elements.
type List[T any] struct {
	items []T
}

// NewList returns an empty List.
func NewList[T any]() *List[T] { return &List[T]{} }

// Add appends one element.
func (l *List[T]) Add(v T) *List[T] {
	l.items = append(l.items, v)
	return l
}

// AddAll appends every element in order.
func (l *List[T]) AddAll(vs ...T) *List[T] {
	l.items = append(l.items, vs...)
	return l
}

// Len returns the number of accumulated elements.
func (l *List[T]) Len() int { return len(l.items) }

// Items returns the accumulated slice.
func (l *List[T]) Items() []T { return l.items }

// Set accumulates unique elements.
type Set[T comparable] struct {
	items map[T]struct{}
}

// NewSet returns an empty Set.
func NewSet[T comparable]() *Set[T] {
	return &Set[T]{items: make(map[T]struct{})}
}

// Add inserts one element.
func (s *Set[T]) Add(v T) *Set[T] {
	s.items[v] = struct{}{}
	return s
}

// AddAll inserts every element.
func (s *Set[T]) AddAll(vs ...T) *Set[T] {
	for _, v := range vs {
		s.items[v] = struct{}{}
	}
	return s
}

// Contains reports membership.
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.items[v]
	return ok
}

// Len returns the number of distinct elements.
func (s *Set[T]) Len() int { return len(s.items) }

// Items returns the accumulated set.
func (s *Set[T]) Items() map[T]struct{} { return s.items }

// Map accumulates key/value pairs.
type Map[K comparable, V any] struct {
	items map[K]V
}

// NewMap returns an empty Map.
func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{items: make(map[K]V)}
}

// Put inserts or replaces one entry.
func (m *Map[K, V]) Put(k K, v V) *Map[K, V] {
	m.items[k] = v
	return m
}

// PutAll inserts every entry of src.
func (m *Map[K, V]) PutAll(src map[K]V) *Map[K, V] {
	for k, v := range src {
		m.items[k] = v
	}
	return m
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return len(m.items) }

// Items returns the accumulated map.
func (m *Map[K, V]) Items() map[K]V { return m.items }

// BuilderList accumulates slice elements constructed through per-element
// builders: Add hands a fresh builder to the callback and stores the built
// value.
type BuilderList[T any, B any] struct {
	factory func() B
	build   func(B) T
	items   []T
}

// NewBuilderList returns an empty BuilderList backed by the element
// builder's factory and build functions.
func NewBuilderList[T any, B any](factory func() B, build func(B) T) *BuilderList[T, B] {
	return &BuilderList[T, B]{factory: factory, build: build}
}

// Add constructs one element through a fresh builder.
func (l *BuilderList[T, B]) Add(fn func(B)) *BuilderList[T, B] {
	b := l.factory()
	fn(b)
	l.items = append(l.items, l.build(b))
	return l
}

// AddValue appends an already-constructed element.
func (l *BuilderList[T, B]) AddValue(v T) *BuilderList[T, B] {
	l.items = append(l.items, v)
	return l
}

// Len returns the number of accumulated elements.
func (l *BuilderList[T, B]) Len() int { return len(l.items) }

// Items returns the accumulated slice.
func (l *BuilderList[T, B]) Items() []T { return l.items }

// BuilderSet is the set counterpart of BuilderList.
type BuilderSet[T comparable, B any] struct {
	factory func() B
	build   func(B) T
	items   map[T]struct{}
}

// NewBuilderSet returns an empty BuilderSet backed by the element builder's
// factory and build functions.
func NewBuilderSet[T comparable, B any](factory func() B, build func(B) T) *BuilderSet[T, B] {
	return &BuilderSet[T, B]{factory: factory, build: build, items: make(map[T]struct{})}
}

// Add constructs one element through a fresh builder.
func (s *BuilderSet[T, B]) Add(fn func(B)) *BuilderSet[T, B] {
	b := s.factory()
	fn(b)
	s.items[s.build(b)] = struct{}{}
	return s
}

// AddValue inserts an already-constructed element.
func (s *BuilderSet[T, B]) AddValue(v T) *BuilderSet[T, B] {
	s.items[v] = struct{}{}
	return s
}

// Len returns the number of distinct elements.
func (s *BuilderSet[T, B]) Len() int { return len(s.items) }

// Items returns the accumulated set.
func (s *BuilderSet[T, B]) Items() map[T]struct{} { return s.items }
