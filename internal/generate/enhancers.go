package generate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/typeref"
)

// Enhancer augments the whole drafted definition after every field has its
// methods. Enhancers only add: core methods, annotations, interfaces, nested
// types, or the class documentation string. They never touch field methods.
type Enhancer interface {
	Name() string
	Priority() int
	AppliesTo(d *model.Draft, c *Context) bool
	Enhance(d *model.Draft, c *Context) error
}

// enhancers returns the statically registered list, highest priority first.
func enhancers() []Enhancer {
	es := []Enhancer{
		interfaceEnhancer{},
		annotationEnhancer{},
		copyWithEnhancer{},
		docEnhancer{},
		conditionalEnhancer{},
	}
	sort.SliceStable(es, func(i, j int) bool { return es[i].Priority() > es[j].Priority() })
	return es
}

// runEnhancers applies every applicable enhancer to the draft in priority
// order.
func runEnhancers(d *model.Draft, c *Context) error {
	for _, e := range enhancers() {
		if !e.AppliesTo(d, c) {
			continue
		}
		if err := e.Enhance(d, c); err != nil {
			return fmt.Errorf("enhancer %s: %w", e.Name(), err)
		}
	}
	return nil
}

// interfaceEnhancer records the base interface the builder asserts itself
// against. The default is the runtime Builder interface parameterized on the
// build result; interfaceName overrides it with a plain named interface.
type interfaceEnhancer struct{}

func (interfaceEnhancer) Name() string  { return "interface" }
func (interfaceEnhancer) Priority() int { return 100 }

func (interfaceEnhancer) AppliesTo(_ *model.Draft, c *Context) bool {
	return c.Opts.BaseInterface.Bool()
}

func (interfaceEnhancer) Enhance(d *model.Draft, c *Context) error {
	if name := c.Opts.InterfaceName; name != "" {
		pkg, bare := "", name
		if i := strings.LastIndex(name, "."); i >= 0 {
			pkg, bare = name[:i], name[i+1:]
		}
		d.AddInterface(typeref.Named{PkgPath: pkg, Name: bare})
		return nil
	}
	var result typeref.TypeRef = d.Target
	if d.TargetIsPtr {
		result = typeref.Pointer{Elem: d.Target}
	}
	d.AddInterface(typeref.Generic{
		Outer: typeref.Named{PkgPath: collectPkg, Name: "Builder"},
		Args:  []typeref.TypeRef{result},
	})
	return nil
}

// annotationEnhancer records the generated-code marker and the directive
// linking the builder back to its target type.
type annotationEnhancer struct{}

func (annotationEnhancer) Name() string  { return "annotations" }
func (annotationEnhancer) Priority() int { return 90 }

func (annotationEnhancer) AppliesTo(_ *model.Draft, c *Context) bool {
	return c.Opts.GeneratedMarker.Bool() || c.Opts.LinkMarker.Bool()
}

func (annotationEnhancer) Enhance(d *model.Draft, c *Context) error {
	if c.Opts.GeneratedMarker.Bool() {
		d.AddAnnotation(model.Annotation{Name: model.AnnotationGenerated, Value: "bldgen"})
	}
	if c.Opts.LinkMarker.Bool() {
		d.AddAnnotation(model.Annotation{Name: model.AnnotationLink, Value: d.Target.Key()})
	}
	return nil
}

// copyWithEnhancer emits the nested copy helper: wrap an existing value,
// obtain a builder seeded from its getters, optionally mutate, rebuild.
type copyWithEnhancer struct{}

func (copyWithEnhancer) Name() string  { return "copy-with" }
func (copyWithEnhancer) Priority() int { return 80 }

func (copyWithEnhancer) AppliesTo(d *model.Draft, c *Context) bool {
	if !c.Opts.CopyWith.Bool() {
		return false
	}
	if len(d.TypeParams) > 0 {
		c.Reporter.Warnf(d.Target.Name, "copy helper is not generated for generic types; wrap values manually")
		return false
	}
	return true
}

func (copyWithEnhancer) Enhance(d *model.Draft, c *Context) error {
	target := d.Target.Name
	helper := target + "With"
	if !c.Opts.BuilderAccess.Exported() {
		helper = d.Builder.Name + "With"
	}

	builderMethod := c.method("Builder")
	withMethod := c.method("With")

	// Builder(): type-check the wrapped value, then seed a fresh builder
	// from every field that has a linked getter. The mismatch message names
	// the helper and both accepted shapes instead of a bare assertion panic.
	seedBody := []jen.Code{
		jen.List(jen.Id("t"), jen.Id("ok")).Op(":=").Id("w").Dot("Value").Assert(jen.Op("*").Id(target)),
		jen.If(jen.Op("!").Id("ok")).Block(
			jen.List(jen.Id("v"), jen.Id("ok2")).Op(":=").Id("w").Dot("Value").Assert(jen.Id(target)),
			jen.If(jen.Op("!").Id("ok2")).Block(
				jen.Panic(jen.Qual("fmt", "Sprintf").Call(
					jen.Lit(helper+": value of type %T cannot seed a builder (want "+target+" or *"+target+")"),
					jen.Id("w").Dot("Value"),
				)),
			),
			jen.Id("t").Op("=").Op("&").Id("v"),
		),
		jen.Id("b").Op(":=").Op("&").Id(d.Builder.Name).Values(),
	}
	for _, f := range d.Fields() {
		if f.Getter == "" {
			continue
		}
		seedBody = append(seedBody, jen.Id("b").Dot(f.Name).Op("=").Id("t").Dot(f.Getter).Call())
	}
	seedBody = append(seedBody, jen.Return(jen.Id("b")))

	buildName := c.method("Build")
	nested := &model.NestedTypeModel{
		Name:   helper,
		Doc:    c.doc(fmt.Sprintf("%s wraps an existing %s for copy-and-modify rebuilds.", helper, target)),
		Fields: []jen.Code{jen.Id("Value").Any()},
		Methods: []*model.MethodModel{
			{
				Name:    builderMethod,
				Doc:     c.doc(fmt.Sprintf("%s returns a builder seeded from the wrapped value.", builderMethod)),
				Results: []jen.Code{c.builderPtr()},
				Body:    seedBody,
			},
			{
				Name:    withMethod,
				Doc:     c.doc(fmt.Sprintf("%s rebuilds the wrapped value after applying fn.", withMethod)),
				Params:  []model.Param{{Name: "fn", Type: c.builderFnType()}},
				Results: []jen.Code{c.targetType()},
				Body: []jen.Code{
					jen.Id("b").Op(":=").Id("w").Dot(builderMethod).Call(),
					jen.Id("fn").Call(jen.Id("b")),
					jen.Return(jen.Id("b").Dot(buildName).Call()),
				},
			},
		},
	}
	d.Nested = append(d.Nested, nested)
	return nil
}

// docEnhancer synthesizes the class documentation from the actual field set.
// It runs late so the example reflects methods the generators really
// produced.
type docEnhancer struct{}

func (docEnhancer) Name() string  { return "doc" }
func (docEnhancer) Priority() int { return 70 }

func (docEnhancer) AppliesTo(d *model.Draft, c *Context) bool {
	return c.Opts.Docs.Bool() && d.Doc == ""
}

func (docEnhancer) Enhance(d *model.Draft, c *Context) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s assembles %s values fluently.", d.Builder.Name, d.Target.Name)

	if c.FactoryName != "" {
		calls := []string{c.FactoryName + "()"}
		for i, f := range d.Fields() {
			if i == 2 {
				break
			}
			if len(f.Methods) == 0 {
				continue
			}
			calls = append(calls, f.Methods[0].Name+"(...)")
		}
		calls = append(calls, c.method("Build")+"()")
		fmt.Fprintf(&b, "\n\nUsage:\n\n\t%s", strings.Join(calls, "."))
	}
	d.Doc = b.String()
	return nil
}

// conditionalEnhancer adds the When and WhenElse core methods so chains can
// branch without leaving the fluent style.
type conditionalEnhancer struct{}

func (conditionalEnhancer) Name() string  { return "conditional" }
func (conditionalEnhancer) Priority() int { return 60 }

func (conditionalEnhancer) AppliesTo(_ *model.Draft, c *Context) bool {
	return c.Opts.Conditionals.Bool()
}

func (conditionalEnhancer) Enhance(d *model.Draft, c *Context) error {
	condType := jen.Func().Params().Bool()
	when := c.method("When")
	whenElse := c.method("WhenElse")

	err := d.AddCoreMethod(&model.MethodModel{
		Name: when,
		Doc:  c.doc(fmt.Sprintf("%s applies then when cond reports true.", when)),
		Params: []model.Param{
			{Name: "cond", Type: condType},
			{Name: "then", Type: c.builderFnType()},
		},
		Body: []jen.Code{
			jen.If(jen.Id("cond").Call()).Block(jen.Id("then").Call(jen.Id("b"))),
			returnSelf(),
		},
	})
	if err != nil {
		return err
	}
	return d.AddCoreMethod(&model.MethodModel{
		Name: whenElse,
		Doc:  c.doc(fmt.Sprintf("%s applies then or els depending on cond.", whenElse)),
		Params: []model.Param{
			{Name: "cond", Type: jen.Func().Params().Bool()},
			{Name: "then", Type: c.builderFnType()},
			{Name: "els", Type: c.builderFnType()},
		},
		Body: []jen.Code{
			jen.If(jen.Id("cond").Call()).Block(
				jen.Id("then").Call(jen.Id("b")),
			).Else().Block(
				jen.Id("els").Call(jen.Id("b")),
			),
			returnSelf(),
		},
	})
}
