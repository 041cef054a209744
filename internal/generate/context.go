// Package generate turns extracted fields into builder methods: a chain of
// per-field method generators, a chain of whole-definition enhancers, and the
// assembler that sequences them for every annotated type in a round.
package generate

import (
	"github.com/dave/jennifer/jen"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/diag"
	"github.com/bldgen/bldgen/internal/emit"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/source"
	"github.com/bldgen/bldgen/internal/typeref"
)

// collectPkg is the runtime collection-builder package generated code calls
// into.
const collectPkg = "github.com/bldgen/bldgen/pkg/collect"

// Context carries everything generators and enhancers need about the type
// currently being assembled. It is read-only for the chains.
type Context struct {
	Target      typeref.Named
	TargetIsPtr bool // the designated constructor returns *T
	Builder     typeref.Named
	FactoryName string // "" when constructor access is private
	TypeParams  []model.TypeParam
	Opts        config.Options
	Registry    *source.Registry
	Index       *source.Index
	Reporter    *diag.Reporter
}

// method maps a logical method name to its emitted spelling under the
// configured method access level.
func (c *Context) method(base string) string {
	if c.Opts.MethodAccess.Exported() {
		return base
	}
	return source.Decap(base)
}

// setterName is method naming for the direct setter, which additionally
// carries the configured setter suffix.
func (c *Context) setterName(base string) string {
	return c.method(base + c.Opts.SetterSuffix)
}

// methodBase estimates the capitalized name stem methods for f derive from.
// Conflict-renamed fields use their storage name so sibling methods stay
// distinguishable; everything else keeps the original spelling, preserving
// acronyms (URL, not Url).
func methodBase(f *model.FieldModel) string {
	if source.Decap(f.SourceName) == f.Name {
		return source.Cap(f.SourceName)
	}
	return source.Cap(f.Name)
}

// typeParamIdents returns the declared type parameter names as jen
// identifiers, for instantiating the builder or target type.
func (c *Context) typeParamIdents() []jen.Code {
	out := make([]jen.Code, len(c.TypeParams))
	for i, p := range c.TypeParams {
		out[i] = jen.Id(p.Name)
	}
	return out
}

// builderPtr renders *XBuilder (instantiated when the target is generic).
// The builder always lives in the file being emitted, so a bare identifier
// is correct.
func (c *Context) builderPtr() *jen.Statement {
	s := jen.Op("*").Id(c.Builder.Name)
	if len(c.TypeParams) > 0 {
		s = s.Index(jen.List(c.typeParamIdents()...))
	}
	return s
}

// builderFnType renders func(*XBuilder), the mutation-callback parameter
// shape shared by consumers and the conditional helpers.
func (c *Context) builderFnType() *jen.Statement {
	return jen.Func().Params(c.builderPtr())
}

// targetType renders the target type as the constructor produces it: *T when
// the constructor returns a pointer, T otherwise.
func (c *Context) targetType() *jen.Statement {
	t := emit.GoType(c.Target).Clone()
	if len(c.TypeParams) > 0 {
		t = t.Index(jen.List(c.typeParamIdents()...))
	}
	if c.TargetIsPtr {
		return jen.Op("*").Add(t)
	}
	return t
}

// field renders the storage reference b.<name>.
func field(f *model.FieldModel) *jen.Statement {
	return jen.Id("b").Dot(f.Name)
}

// returnSelf is the chaining tail every mutator ends with.
func returnSelf() jen.Code {
	return jen.Return(jen.Id("b"))
}

// doc returns text when docs are enabled and "" otherwise, so generators can
// set MethodModel.Doc unconditionally.
func (c *Context) doc(text string) string {
	if c.Opts.Docs.Bool() {
		return text
	}
	return ""
}
