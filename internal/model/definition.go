package model

import (
	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/typeref"
)

// TypeParam is one declared generic parameter of the target, carried through
// to the builder so it can be declared with the same constraint.
type TypeParam struct {
	Name       string
	Constraint typeref.TypeRef
}

// Draft is the mutable accumulator the assembler works on. It is local to
// one processing round for one annotated type; Freeze turns it into the
// BuilderDefinition that downstream consumers cannot reshape.
type Draft struct {
	Target      typeref.Named
	TargetIsPtr bool // constructor returns *T rather than T
	Builder     typeref.Named
	PkgName     string
	FactoryName string
	TypeParams  []TypeParam
	CtorName    string // "" when the target has no designated constructor

	CtorFields   []*FieldModel // constructor parameter order, preserved
	SetterFields []*FieldModel
	CoreMethods  []*MethodModel
	Annotations  []Annotation
	Interfaces   []typeref.TypeRef
	Nested       []*NestedTypeModel
	Doc          string
	Config       config.Options
}

// AddCoreMethod attaches a definition-level method not tied to one field.
func (d *Draft) AddCoreMethod(m *MethodModel) error {
	if err := m.wellFormed(); err != nil {
		return err
	}
	d.CoreMethods = append(d.CoreMethods, m)
	return nil
}

// AddAnnotation records a class-level annotation, ignoring duplicates.
func (d *Draft) AddAnnotation(a Annotation) {
	for _, have := range d.Annotations {
		if have == a {
			return
		}
	}
	d.Annotations = append(d.Annotations, a)
}

// AddInterface records an implemented interface reference, deduplicated by
// structural key.
func (d *Draft) AddInterface(t typeref.TypeRef) {
	for _, have := range d.Interfaces {
		if typeref.Equal(have, t) {
			return
		}
	}
	d.Interfaces = append(d.Interfaces, t)
}

// Fields returns the constructor fields followed by the setter fields.
func (d *Draft) Fields() []*FieldModel {
	out := make([]*FieldModel, 0, len(d.CtorFields)+len(d.SetterFields))
	out = append(out, d.CtorFields...)
	out = append(out, d.SetterFields...)
	return out
}

// Freeze copies the accumulated state into an immutable-in-practice
// BuilderDefinition. The slices are defensive copies; the definition exposes
// read accessors only.
func (d *Draft) Freeze() *BuilderDefinition {
	return &BuilderDefinition{
		target:       d.Target,
		targetIsPtr:  d.TargetIsPtr,
		builder:      d.Builder,
		pkgName:      d.PkgName,
		factoryName:  d.FactoryName,
		typeParams:   append([]TypeParam(nil), d.TypeParams...),
		ctorName:     d.CtorName,
		ctorFields:   append([]*FieldModel(nil), d.CtorFields...),
		setterFields: append([]*FieldModel(nil), d.SetterFields...),
		coreMethods:  append([]*MethodModel(nil), d.CoreMethods...),
		annotations:  append([]Annotation(nil), d.Annotations...),
		interfaces:   append([]typeref.TypeRef(nil), d.Interfaces...),
		nested:       append([]*NestedTypeModel(nil), d.Nested...),
		doc:          d.Doc,
		config:       d.Config,
	}
}

// BuilderDefinition is the root aggregate for one annotated type: everything
// the emitter needs to render the builder source. It is produced exactly
// once per type per round and never mutated afterwards.
type BuilderDefinition struct {
	target       typeref.Named
	targetIsPtr  bool
	builder      typeref.Named
	pkgName      string
	factoryName  string
	typeParams   []TypeParam
	ctorName     string
	ctorFields   []*FieldModel
	setterFields []*FieldModel
	coreMethods  []*MethodModel
	annotations  []Annotation
	interfaces   []typeref.TypeRef
	nested       []*NestedTypeModel
	doc          string
	config       config.Options
}

func (b *BuilderDefinition) Target() typeref.Named      { return b.target }
func (b *BuilderDefinition) TargetIsPtr() bool          { return b.targetIsPtr }
func (b *BuilderDefinition) Builder() typeref.Named     { return b.builder }
func (b *BuilderDefinition) PkgName() string            { return b.pkgName }
func (b *BuilderDefinition) FactoryName() string        { return b.factoryName }
func (b *BuilderDefinition) CtorName() string           { return b.ctorName }
func (b *BuilderDefinition) TypeParams() []TypeParam {
	return append([]TypeParam(nil), b.typeParams...)
}
func (b *BuilderDefinition) Doc() string                { return b.doc }
func (b *BuilderDefinition) Config() config.Options     { return b.config }
func (b *BuilderDefinition) Annotations() []Annotation  { return append([]Annotation(nil), b.annotations...) }
func (b *BuilderDefinition) Nested() []*NestedTypeModel { return append([]*NestedTypeModel(nil), b.nested...) }

// CtorFields returns the constructor-derived fields in the constructor's
// declared parameter order.
func (b *BuilderDefinition) CtorFields() []*FieldModel {
	return append([]*FieldModel(nil), b.ctorFields...)
}

func (b *BuilderDefinition) SetterFields() []*FieldModel {
	return append([]*FieldModel(nil), b.setterFields...)
}

func (b *BuilderDefinition) CoreMethods() []*MethodModel {
	return append([]*MethodModel(nil), b.coreMethods...)
}

func (b *BuilderDefinition) Interfaces() []typeref.TypeRef {
	return append([]typeref.TypeRef(nil), b.interfaces...)
}

// Fields returns constructor fields followed by setter fields.
func (b *BuilderDefinition) Fields() []*FieldModel {
	out := make([]*FieldModel, 0, len(b.ctorFields)+len(b.setterFields))
	out = append(out, b.ctorFields...)
	out = append(out, b.setterFields...)
	return out
}
