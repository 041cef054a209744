// Package model holds the intermediate representation assembled for each
// annotated target type: fields, their contributed methods, nested helper
// types, and the frozen BuilderDefinition handed to the emitter.
package model

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/bldgen/bldgen/internal/typeref"
)

// Provenance records where a field was discovered.
type Provenance int

const (
	FromConstructor Provenance = iota
	FromSetter
)

// Relative method priorities. They order multiple candidate setters for the
// same field in the generated source; they carry no semantics beyond
// readability of the output.
const (
	PriorityDirect        = 100
	PriorityFormat        = 90
	PriorityVarargs       = 85
	PriorityAdd           = 80
	PriorityUnwrap        = 75
	PrioritySupplier      = 70
	PriorityConsumer      = 50
	PriorityStringBuilder = 40
	PriorityArray         = 30
)

// FieldModel is one settable logical property of the target type. It is
// created once by the extractor and owned exclusively by the definition that
// contains it; after the generator chain finishes it is never mutated again.
type FieldModel struct {
	Name       string // storage name inside the builder (post conflict resolution)
	SourceName string // estimated original name, used for method naming
	Type       typeref.TypeRef
	Getter     string // matching getter method name, "" when absent
	NonNull    bool
	Provenance Provenance

	Methods []*MethodModel
}

// Attach appends fully-formed methods to the field. Partially built methods
// never escape their generator; this is where that invariant is enforced.
func (f *FieldModel) Attach(ms ...*MethodModel) error {
	for _, m := range ms {
		if err := m.wellFormed(); err != nil {
			return fmt.Errorf("field %s: %w", f.Name, err)
		}
		f.Methods = append(f.Methods, m)
	}
	return nil
}

// Param is one method parameter.
type Param struct {
	Name     string
	Type     jen.Code
	Variadic bool
}

// MethodModel is one generated method. Body statements are jennifer nodes so
// the emitter resolves imports for every referenced type. Results is empty
// for chaining methods; the emitter then uses the builder's own pointer type
// as the return type.
type MethodModel struct {
	Name     string
	Doc      string
	Params   []Param
	Results  []jen.Code // empty = returns the builder for chaining
	Priority int
	Body     []jen.Code
}

func (m *MethodModel) wellFormed() error {
	switch {
	case m == nil:
		return fmt.Errorf("nil method model")
	case m.Name == "":
		return fmt.Errorf("method model without a name")
	case len(m.Body) == 0:
		return fmt.Errorf("method %s has an empty body", m.Name)
	default:
		return nil
	}
}

// NestedTypeModel is a helper type emitted next to the builder, such as the
// copy/"with" adapter. Fields are rendered verbatim; methods use a value
// receiver of the nested type.
type NestedTypeModel struct {
	Name    string
	Doc     string
	Fields  []jen.Code
	Methods []*MethodModel
}

// Annotation is a class-level marker rendered as a comment directive on the
// generated type. Deduplicated by Name+Value.
type Annotation struct {
	Name  string
	Value string
}

// Annotation names the emitter knows how to render.
const (
	// AnnotationGenerated marks the output file as machine-generated.
	AnnotationGenerated = "generated"
	// AnnotationLink ties the builder type back to its target type.
	AnnotationLink = "link"
)
