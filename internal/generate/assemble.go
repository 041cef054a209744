package generate

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/diag"
	"github.com/bldgen/bldgen/internal/emit"
	"github.com/bldgen/bldgen/internal/extract"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/source"
	"github.com/bldgen/bldgen/internal/typeref"
)

// Assembler sequences the pipeline for every annotated type in a round:
// resolve configuration, extract fields, run the generator chain per field,
// run the enhancer chain, freeze. A failure anywhere is scoped to its type;
// siblings keep processing.
type Assembler struct {
	Resolver *config.Resolver
	Registry *source.Registry
	Index    *source.Index
	Reporter *diag.Reporter
}

// work is one type that survived resolution and extraction, held until every
// sibling has registered its builder.
type work struct {
	target *source.Target
	opts   config.Options
	ext    extract.Result
	info   source.BuilderInfo
}

// AssembleAll processes the round in two passes. The first resolves each
// type's configuration, extracts its fields, and registers its builder, so
// that by the second pass every nested-builder lookup sees the full round
// regardless of declaration order. The error map is keyed by type name.
func (a *Assembler) AssembleAll(targets []*source.Target) ([]*model.BuilderDefinition, map[string]error) {
	errs := make(map[string]error)
	items := make([]work, 0, len(targets))

	for _, t := range targets {
		if t.Err != nil {
			errs[t.Name] = t.Err
			continue
		}
		opts, err := a.Resolver.Resolve(t.Name, t.Directive)
		if err != nil {
			errs[t.Name] = err
			continue
		}
		ext := extract.Fields(t, opts, a.Reporter)
		info := builderNames(t, opts, ext)

		// Generic builders cannot be instantiated on someone else's behalf,
		// so they stay out of the nested-builder registry.
		if len(t.TypeParams) == 0 {
			a.Registry.Add(info)
		}
		items = append(items, work{target: t, opts: opts, ext: ext, info: info})
	}

	defs := make([]*model.BuilderDefinition, 0, len(items))
	for _, w := range items {
		def, err := a.assemble(w)
		if err != nil {
			errs[w.target.Name] = err
			continue
		}
		defs = append(defs, def)
	}
	return defs, errs
}

// builderNames derives the builder type, factory, and build-method names
// under the configured access levels. A private constructor access level
// suppresses the factory entirely; callers then construct the builder some
// other way.
func builderNames(t *source.Target, opts config.Options, ext extract.Result) source.BuilderInfo {
	builderName := t.Name + opts.Suffix
	if !opts.BuilderAccess.Exported() {
		builderName = source.Decap(builderName)
	}

	factory := ""
	switch opts.ConstructorAccess {
	case config.AccessPublic:
		factory = "New" + source.Cap(builderName)
	case config.AccessPackage:
		factory = "new" + source.Cap(builderName)
	}

	buildName := "Build"
	if !opts.MethodAccess.Exported() {
		buildName = "build"
	}

	return source.BuilderInfo{
		Target:      t.Ref(),
		BuilderName: builderName,
		FactoryName: factory,
		BuildName:   buildName,
		ReturnsPtr:  ext.TargetIsPtr,
	}
}

func (a *Assembler) assemble(w work) (*model.BuilderDefinition, error) {
	t := w.target

	typeParams := make([]model.TypeParam, len(t.TypeParams))
	for i, p := range t.TypeParams {
		typeParams[i] = model.TypeParam{Name: p.Name, Constraint: p.Type}
	}

	c := &Context{
		Target:      t.Ref(),
		TargetIsPtr: w.ext.TargetIsPtr,
		Builder:     typeref.Named{PkgPath: t.PkgPath, Name: w.info.BuilderName},
		FactoryName: w.info.FactoryName,
		TypeParams:  typeParams,
		Opts:        w.opts,
		Registry:    a.Registry,
		Index:       a.Index,
		Reporter:    a.Reporter,
	}

	d := &model.Draft{
		Target:       c.Target,
		TargetIsPtr:  c.TargetIsPtr,
		Builder:      c.Builder,
		PkgName:      t.PkgName,
		FactoryName:  w.info.FactoryName,
		TypeParams:   typeParams,
		CtorName:     w.ext.CtorName,
		CtorFields:   w.ext.CtorFields,
		SetterFields: w.ext.SetterFields,
		Doc:          "",
		Config:       w.opts,
	}

	for _, f := range d.Fields() {
		if err := runChains(f, c); err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}
	}
	if err := d.AddCoreMethod(buildMethod(d, c, w.info.BuildName)); err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}
	if err := runEnhancers(d, c); err != nil {
		return nil, fmt.Errorf("%s: %w", t.Name, err)
	}
	return d.Freeze(), nil
}

// buildMethod produces the terminal Build method. With a designated
// constructor the builder re-invokes it with the constructor fields in their
// original positional order, then forwards each setter field through its
// setter. Without one it falls back to a composite literal plus setters.
func buildMethod(d *model.Draft, c *Context, name string) *model.MethodModel {
	targetExpr := emit.GoType(d.Target).Clone()
	if len(c.TypeParams) > 0 {
		targetExpr = targetExpr.Index(jen.List(c.typeParamIdents()...))
	}

	var body []jen.Code
	if d.CtorName != "" {
		ctor := jen.Id(d.CtorName)
		if len(c.TypeParams) > 0 {
			ctor = ctor.Index(jen.List(c.typeParamIdents()...))
		}
		args := make([]jen.Code, len(d.CtorFields))
		for i, f := range d.CtorFields {
			args[i] = field(f)
		}
		body = append(body, jen.Id("t").Op(":=").Add(ctor).Call(args...))
	} else {
		body = append(body, jen.Id("t").Op(":=").Op("&").Add(targetExpr).Values())
	}
	for _, f := range d.SetterFields {
		body = append(body, jen.Id("t").Dot("Set"+f.SourceName).Call(field(f)))
	}
	body = append(body, jen.Return(jen.Id("t")))

	return &model.MethodModel{
		Name:    name,
		Doc:     c.doc(fmt.Sprintf("%s assembles and returns the %s value.", name, d.Target.Name)),
		Results: []jen.Code{c.targetType()},
		Body:    body,
	}
}
