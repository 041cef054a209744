package generate

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/bldgen/bldgen/internal/emit"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/source"
	"github.com/bldgen/bldgen/internal/typeref"
)

// The consumer family. All of these accept a callback that mutates something
// (a nested builder, the stored value, a collection builder) and store the
// result. They are alternatives: exactly one applies per field, decided by
// the order in consumerChain.

// builderConsumer applies when the field's type has its own generated builder
// in this round. The callback receives a fresh nested builder; its result is
// built once and stored.
type builderConsumer struct{}

func (builderConsumer) Name() string { return "builder-consumer" }

func (g builderConsumer) AppliesTo(f *model.FieldModel, c *Context) bool {
	if !c.Opts.BuilderConsumers.Bool() {
		return false
	}
	info, ok := c.Registry.Lookup(f.Type)
	if !ok {
		return false
	}
	return usable(info, c)
}

func (builderConsumer) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	info, _ := c.Registry.Lookup(f.Type)
	_, fieldPtr := f.Type.(typeref.Pointer)
	name := c.method(methodBase(f) + "With")

	body := []jen.Code{
		jen.Id("nb").Op(":=").Qual(info.Target.PkgPath, info.FactoryName).Call(),
		jen.Id("fn").Call(jen.Id("nb")),
	}
	built := jen.Id("nb").Dot(info.BuildName).Call()
	switch {
	case fieldPtr == info.ReturnsPtr:
		body = append(body, field(f).Op("=").Add(built))
	case fieldPtr: // builder yields a value, field wants a pointer
		body = append(body,
			jen.Id("v").Op(":=").Add(built),
			field(f).Op("=").Op("&").Id("v"),
		)
	default: // builder yields a pointer, field wants a value
		body = append(body, field(f).Op("=").Op("*").Add(built))
	}
	body = append(body, returnSelf())

	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s sets %s through its own builder.", name, f.Name)),
		Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(builderOf(info))}},
		Priority: model.PriorityConsumer,
		Body:     body,
	}}
}

// fieldConsumer applies to plain struct-typed fields without a builder:
// the callback edits the stored instance in place, so repeated calls are
// cumulative.
type fieldConsumer struct{}

func (fieldConsumer) Name() string { return "field-consumer" }

func (fieldConsumer) AppliesTo(f *model.FieldModel, c *Context) bool {
	if !c.Opts.FieldConsumers.Bool() {
		return false
	}
	// The builder consumer outranks this one, but only when it actually
	// applies; a disabled or unusable builder falls through to the plain
	// field consumer.
	if info, ok := c.Registry.Lookup(f.Type); ok && c.Opts.BuilderConsumers.Bool() && usable(info, c) {
		return false
	}
	if typeref.IsPlatformBase(f.Type) {
		return false
	}
	return c.Index.IsStruct(f.Type)
}

func (fieldConsumer) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	name := c.method(methodBase(f) + "With")

	var body []jen.Code
	if p, ok := f.Type.(typeref.Pointer); ok {
		body = []jen.Code{
			jen.If(field(f).Op("==").Nil()).Block(
				field(f).Op("=").New(emit.GoType(p.Elem)),
			),
			jen.Id("fn").Call(field(f)),
			returnSelf(),
		}
	} else {
		body = []jen.Code{
			jen.Id("fn").Call(jen.Op("&").Add(field(f))),
			returnSelf(),
		}
	}

	inner := f.Type
	if p, ok := inner.(typeref.Pointer); ok {
		inner = p.Elem
	}
	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s edits %s in place.", name, f.Name)),
		Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(jen.Op("*").Add(emit.GoType(inner)))}},
		Priority: model.PriorityConsumer,
		Body:     body,
	}}
}

// listConsumer applies to slice fields. When the element type has its own
// builder and per-element builders are enabled, the callback receives a
// BuilderList so each element can be assembled fluently; otherwise it
// receives a plain List of raw values.
type listConsumer struct{}

func (listConsumer) Name() string { return "list-consumer" }

func (listConsumer) AppliesTo(f *model.FieldModel, c *Context) bool {
	s, ok := f.Type.(typeref.Slice)
	if !ok {
		return false
	}
	if c.Opts.ListBuilderEach.Bool() && elemBuilder(s.Elem, c) != nil {
		return true
	}
	return c.Opts.ListBuilders.Bool()
}

func (listConsumer) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	s := f.Type.(typeref.Slice)
	name := c.method(methodBase(f) + "With")

	if info := elemBuilder(s.Elem, c); c.Opts.ListBuilderEach.Bool() && info != nil {
		return []*model.MethodModel{{
			Name:     name,
			Doc:      c.doc(fmt.Sprintf("%s assembles %s element by element.", name, f.Name)),
			Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(builderCollection("BuilderList", s.Elem, *info))}},
			Priority: model.PriorityConsumer,
			Body: []jen.Code{
				jen.Id("lb").Op(":=").Qual(collectPkg, "NewBuilderList").
					Index(jen.List(emit.GoType(s.Elem), builderOf(*info))).
					Call(jen.Qual(info.Target.PkgPath, info.FactoryName), buildFn(s.Elem, *info)),
				jen.Id("fn").Call(jen.Id("lb")),
				field(f).Op("=").Id("lb").Dot("Items").Call(),
				returnSelf(),
			},
		}}
	}

	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s assembles %s through a list builder.", name, f.Name)),
		Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(jen.Op("*").Qual(collectPkg, "List").Index(emit.GoType(s.Elem)))}},
		Priority: model.PriorityConsumer,
		Body: []jen.Code{
			jen.Id("lb").Op(":=").Qual(collectPkg, "NewList").Index(emit.GoType(s.Elem)).Call(),
			jen.Id("fn").Call(jen.Id("lb")),
			field(f).Op("=").Id("lb").Dot("Items").Call(),
			returnSelf(),
		},
	}}
}

// setConsumer is the set-shaped sibling of listConsumer.
type setConsumer struct{}

func (setConsumer) Name() string { return "set-consumer" }

func (setConsumer) AppliesTo(f *model.FieldModel, c *Context) bool {
	m, ok := f.Type.(typeref.Map)
	if !ok || !typeref.IsEmptyStruct(m.V) {
		return false
	}
	if c.Opts.SetBuilderEach.Bool() && elemBuilder(m.K, c) != nil {
		return true
	}
	return c.Opts.SetBuilders.Bool()
}

func (setConsumer) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	m := f.Type.(typeref.Map)
	name := c.method(methodBase(f) + "With")

	if info := elemBuilder(m.K, c); c.Opts.SetBuilderEach.Bool() && info != nil {
		return []*model.MethodModel{{
			Name:     name,
			Doc:      c.doc(fmt.Sprintf("%s assembles %s element by element.", name, f.Name)),
			Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(builderCollection("BuilderSet", m.K, *info))}},
			Priority: model.PriorityConsumer,
			Body: []jen.Code{
				jen.Id("sb").Op(":=").Qual(collectPkg, "NewBuilderSet").
					Index(jen.List(emit.GoType(m.K), builderOf(*info))).
					Call(jen.Qual(info.Target.PkgPath, info.FactoryName), buildFn(m.K, *info)),
				jen.Id("fn").Call(jen.Id("sb")),
				field(f).Op("=").Id("sb").Dot("Items").Call(),
				returnSelf(),
			},
		}}
	}

	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s assembles %s through a set builder.", name, f.Name)),
		Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(jen.Op("*").Qual(collectPkg, "Set").Index(emit.GoType(m.K)))}},
		Priority: model.PriorityConsumer,
		Body: []jen.Code{
			jen.Id("sb").Op(":=").Qual(collectPkg, "NewSet").Index(emit.GoType(m.K)).Call(),
			jen.Id("fn").Call(jen.Id("sb")),
			field(f).Op("=").Id("sb").Dot("Items").Call(),
			returnSelf(),
		},
	}}
}

// mapConsumer applies to keyed map fields (value type other than struct{}).
type mapConsumer struct{}

func (mapConsumer) Name() string { return "map-consumer" }

func (mapConsumer) AppliesTo(f *model.FieldModel, c *Context) bool {
	m, ok := f.Type.(typeref.Map)
	return c.Opts.MapBuilders.Bool() && ok && !typeref.IsEmptyStruct(m.V)
}

func (mapConsumer) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	m := f.Type.(typeref.Map)
	name := c.method(methodBase(f) + "With")
	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s assembles %s through a map builder.", name, f.Name)),
		Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(jen.Op("*").Qual(collectPkg, "Map").Index(jen.List(emit.GoType(m.K), emit.GoType(m.V))))}},
		Priority: model.PriorityConsumer,
		Body: []jen.Code{
			jen.Id("mb").Op(":=").Qual(collectPkg, "NewMap").Index(jen.List(emit.GoType(m.K), emit.GoType(m.V))).Call(),
			jen.Id("fn").Call(jen.Id("mb")),
			field(f).Op("=").Id("mb").Dot("Items").Call(),
			returnSelf(),
		},
	}}
}

// stringBuilderConsumer is the lowest-priority alternative: string and
// *string fields accept a callback over a strings.Builder and freeze its
// contents.
type stringBuilderConsumer struct{}

func (stringBuilderConsumer) Name() string { return "stringbuilder-consumer" }

func (stringBuilderConsumer) AppliesTo(f *model.FieldModel, c *Context) bool {
	if !c.Opts.StringBuilders.Bool() {
		return false
	}
	return typeref.IsStringLike(f.Type) || typeref.IsOptionalOfString(f.Type)
}

func (stringBuilderConsumer) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	name := c.method(methodBase(f) + "With")

	body := []jen.Code{
		jen.Var().Id("sb").Qual("strings", "Builder"),
		jen.Id("fn").Call(jen.Op("&").Id("sb")),
	}
	if typeref.IsOptionalOfString(f.Type) {
		body = append(body,
			jen.Id("s").Op(":=").Id("sb").Dot("String").Call(),
			field(f).Op("=").Op("&").Id("s"),
		)
	} else {
		body = append(body, field(f).Op("=").Id("sb").Dot("String").Call())
	}
	body = append(body, returnSelf())

	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s composes %s with a strings.Builder.", name, f.Name)),
		Params:   []model.Param{{Name: "fn", Type: jen.Func().Params(jen.Op("*").Qual("strings", "Builder"))}},
		Priority: model.PriorityStringBuilder,
		Body:     body,
	}}
}

// usable reports whether builder info can actually be referenced from the
/// package currently being generated: the factory must exist, and a foreign
// package needs both the factory and the build method to be exported.
func usable(info source.BuilderInfo, c *Context) bool {
	if info.FactoryName == "" {
		return false
	}
	if info.Target.PkgPath == c.Target.PkgPath {
		return true
	}
	return isExported(info.FactoryName) && isExported(info.BuildName) && isExported(info.BuilderName)
}

// elemBuilder resolves the builder for a collection's element type, nil when
// none is usable.
func elemBuilder(elem typeref.TypeRef, c *Context) *source.BuilderInfo {
	info, ok := c.Registry.Lookup(elem)
	if !ok || !usable(info, c) {
		return nil
	}
	return &info
}

// builderOf renders *XBuilder for a registry entry, qualified so foreign
// builders import correctly.
func builderOf(info source.BuilderInfo) *jen.Statement {
	return jen.Op("*").Qual(info.Target.PkgPath, info.BuilderName)
}

// builderCollection renders *collect.<kind>[E, *EBuilder].
func builderCollection(kind string, elem typeref.TypeRef, info source.BuilderInfo) *jen.Statement {
	return jen.Op("*").Qual(collectPkg, kind).Index(jen.List(emit.GoType(elem), builderOf(info)))
}

// buildFn renders the func(*EBuilder) E adapter handed to BuilderList and
// BuilderSet, bridging the builder's own build result onto the element shape.
func buildFn(elem typeref.TypeRef, info source.BuilderInfo) *jen.Statement {
	_, elemPtr := elem.(typeref.Pointer)
	built := jen.Id("eb").Dot(info.BuildName).Call()

	var body []jen.Code
	switch {
	case elemPtr == info.ReturnsPtr:
		body = []jen.Code{jen.Return(built)}
	case elemPtr: // builder yields a value, element is a pointer
		body = []jen.Code{
			jen.Id("v").Op(":=").Add(built),
			jen.Return(jen.Op("&").Id("v")),
		}
	default: // builder yields a pointer, element is a value
		body = []jen.Code{jen.Return(jen.Op("*").Add(built))}
	}
	return jen.Func().Params(jen.Id("eb").Add(builderOf(info))).Add(emit.GoType(elem)).Block(body...)
}

func isExported(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}
