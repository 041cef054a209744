package generate

import (
	"fmt"

	"github.com/dave/jennifer/jen"
	"github.com/jinzhu/inflection"

	"github.com/bldgen/bldgen/internal/emit"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/typeref"
)

// directSetter assigns the value as given. The most natural mutator, so it
// carries the highest priority and leads the field's method group in the
// generated source.
type directSetter struct{}

func (directSetter) Name() string { return "setter" }

func (directSetter) AppliesTo(_ *model.FieldModel, c *Context) bool {
	return c.Opts.Setters.Bool()
}

func (directSetter) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	name := c.setterName(methodBase(f))
	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s sets %s.", name, f.Name)),
		Params:   []model.Param{{Name: "v", Type: emit.GoType(f.Type)}},
		Priority: model.PriorityDirect,
		Body: []jen.Code{
			field(f).Op("=").Id("v"),
			returnSelf(),
		},
	}}
}

// formatHelper builds a string field from a printf-style format.
type formatHelper struct{}

func (formatHelper) Name() string { return "format" }

func (formatHelper) AppliesTo(f *model.FieldModel, c *Context) bool {
	return c.Opts.FormatHelpers.Bool() && typeref.IsStringLike(f.Type)
}

func (formatHelper) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	name := c.method(methodBase(f) + "Format")
	return []*model.MethodModel{{
		Name: name,
		Doc:  c.doc(fmt.Sprintf("%s sets %s from a format string.", name, f.Name)),
		Params: []model.Param{
			{Name: "format", Type: jen.String()},
			{Name: "args", Type: jen.Any(), Variadic: true},
		},
		Priority: model.PriorityFormat,
		Body: []jen.Code{
			field(f).Op("=").Qual("fmt", "Sprintf").Call(jen.Id("format"), jen.Id("args").Op("...")),
			returnSelf(),
		},
	}}
}

// varargsHelper accepts discrete element values for a slice or set field
// instead of an already-built collection.
type varargsHelper struct{}

func (varargsHelper) Name() string { return "varargs" }

func (varargsHelper) AppliesTo(f *model.FieldModel, c *Context) bool {
	if !c.Opts.VarargsHelpers.Bool() {
		return false
	}
	switch f.Type.(type) {
	case typeref.Slice:
		return true
	case typeref.Map:
		return typeref.IsSetLike(f.Type)
	default:
		return false
	}
}

func (varargsHelper) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	elem, err := typeref.ElemType(f.Type)
	if err != nil {
		// AppliesTo admitted slices and set-maps only; both have elements.
		panic(err)
	}
	name := c.method(methodBase(f) + "Of")

	var body []jen.Code
	if _, isSet := f.Type.(typeref.Map); isSet {
		body = []jen.Code{
			jen.Id("m").Op(":=").Make(jen.Map(emit.GoType(elem)).Struct(), jen.Len(jen.Id("vs"))),
			jen.For(jen.List(jen.Id("_"), jen.Id("v")).Op(":=").Range().Id("vs")).Block(
				jen.Id("m").Index(jen.Id("v")).Op("=").Struct().Values(),
			),
			field(f).Op("=").Id("m"),
			returnSelf(),
		}
	} else {
		body = []jen.Code{
			field(f).Op("=").Id("vs"),
			returnSelf(),
		}
	}

	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s replaces %s with the given elements.", name, f.Name)),
		Params:   []model.Param{{Name: "vs", Type: emit.GoType(elem), Variadic: true}},
		Priority: model.PriorityVarargs,
		Body:     body,
	}}
}

// addHelper appends or inserts one element. The method name singularizes the
// field name: Tags gains AddTag.
type addHelper struct{}

func (addHelper) Name() string { return "add" }

func (addHelper) AppliesTo(f *model.FieldModel, c *Context) bool {
	if !c.Opts.AddHelpers.Bool() {
		return false
	}
	switch f.Type.(type) {
	case typeref.Slice:
		return true
	case typeref.Map:
		return typeref.IsSetLike(f.Type)
	default:
		return false
	}
}

func (addHelper) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	elem, err := typeref.ElemType(f.Type)
	if err != nil {
		panic(err)
	}
	name := c.method("Add" + inflection.Singular(methodBase(f)))

	var body []jen.Code
	if _, isSet := f.Type.(typeref.Map); isSet {
		body = []jen.Code{
			jen.If(field(f).Op("==").Nil()).Block(
				field(f).Op("=").Make(jen.Map(emit.GoType(elem)).Struct()),
			),
			field(f).Index(jen.Id("v")).Op("=").Struct().Values(),
			returnSelf(),
		}
	} else {
		body = []jen.Code{
			field(f).Op("=").Append(field(f), jen.Id("v")),
			returnSelf(),
		}
	}

	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s adds one element to %s.", name, f.Name)),
		Params:   []model.Param{{Name: "v", Type: emit.GoType(elem)}},
		Priority: model.PriorityAdd,
		Body:     body,
	}}
}

// supplierSetter computes the value lazily through a zero-argument callback,
// invoked at call time rather than at build time.
type supplierSetter struct{}

func (supplierSetter) Name() string { return "supplier" }

func (supplierSetter) AppliesTo(_ *model.FieldModel, c *Context) bool {
	return c.Opts.Suppliers.Bool()
}

func (supplierSetter) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	name := c.method(methodBase(f) + "By")
	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s sets %s from a supplier callback.", name, f.Name)),
		Params:   []model.Param{{Name: "fn", Type: jen.Func().Params().Add(emit.GoType(f.Type))}},
		Priority: model.PrioritySupplier,
		Body: []jen.Code{
			field(f).Op("=").Id("fn").Call(),
			returnSelf(),
		},
	}}
}

// unwrapHelper accepts the pointed-to value of an optional-shaped field and
// wraps it.
type unwrapHelper struct{}

func (unwrapHelper) Name() string { return "unwrap" }

func (unwrapHelper) AppliesTo(f *model.FieldModel, c *Context) bool {
	return c.Opts.UnwrapHelpers.Bool() && typeref.IsOptionalLike(f.Type)
}

func (unwrapHelper) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	p := f.Type.(typeref.Pointer)
	name := c.method(methodBase(f) + "Val")
	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s sets %s from an unwrapped value.", name, f.Name)),
		Params:   []model.Param{{Name: "v", Type: emit.GoType(p.Elem)}},
		Priority: model.PriorityUnwrap,
		Body: []jen.Code{
			field(f).Op("=").Op("&").Id("v"),
			returnSelf(),
		},
	}}
}

// arrayHelper fills a fixed-size array field from a slice, copying at most
// the array's length.
type arrayHelper struct{}

func (arrayHelper) Name() string { return "array" }

func (arrayHelper) AppliesTo(f *model.FieldModel, c *Context) bool {
	return c.Opts.ArrayHelpers.Bool() && typeref.IsArray(f.Type)
}

func (arrayHelper) Generate(f *model.FieldModel, c *Context) []*model.MethodModel {
	a := f.Type.(typeref.Array)
	name := c.method(methodBase(f) + "From")
	return []*model.MethodModel{{
		Name:     name,
		Doc:      c.doc(fmt.Sprintf("%s fills %s from a slice, truncating extra elements.", name, f.Name)),
		Params:   []model.Param{{Name: "vs", Type: jen.Index().Add(emit.GoType(a.Elem))}},
		Priority: model.PriorityArray,
		Body: []jen.Code{
			jen.Var().Id("a").Add(emit.GoType(f.Type)),
			jen.Copy(jen.Id("a").Index(jen.Op(":")), jen.Id("vs")),
			field(f).Op("=").Id("a"),
			returnSelf(),
		},
	}}
}
