// Package emit renders frozen builder definitions to Go source. One file is
// produced per target type and written at most once per round.
package emit

import (
	"sort"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/bldgen/bldgen/internal/model"
)

// File renders def into a complete source file for the target's package.
func File(def *model.BuilderDefinition) *jen.File {
	f := jen.NewFilePathName(def.Target().PkgPath, def.PkgName())

	for _, a := range def.Annotations() {
		if a.Name == model.AnnotationGenerated {
			f.HeaderComment("Code generated by " + a.Value + ". DO NOT EDIT.")
		}
	}

	writeTypeDecl(f, def)
	writeAssertions(f, def)
	writeFactory(f, def)

	for _, fld := range def.Fields() {
		ms := append([]*model.MethodModel(nil), fld.Methods...)
		sort.SliceStable(ms, func(i, j int) bool { return ms[i].Priority > ms[j].Priority })
		for _, m := range ms {
			writeMethod(f, def, m)
		}
	}
	for _, m := range def.CoreMethods() {
		writeMethod(f, def, m)
	}
	for _, n := range def.Nested() {
		writeNested(f, def, n)
	}
	return f
}

// writeTypeDecl emits the builder struct together with its documentation and
// the link directive tying it back to the target type.
func writeTypeDecl(f *jen.File, def *model.BuilderDefinition) {
	commentLines(f, def.Doc())
	for _, a := range def.Annotations() {
		if a.Name == model.AnnotationLink {
			f.Comment("//bldgen:for " + a.Value)
		}
	}

	fields := make([]jen.Code, 0, len(def.Fields()))
	for _, fld := range def.Fields() {
		fields = append(fields, jen.Id(fld.Name).Add(GoType(fld.Type)))
	}

	decl := f.Type().Id(def.Builder().Name)
	if tp := typeParamDecls(def); len(tp) > 0 {
		decl = decl.Types(tp...)
	}
	decl.Struct(fields...)
}

// writeAssertions emits compile-time interface checks. Generic builders are
// skipped: there is no single instantiation to assert against.
func writeAssertions(f *jen.File, def *model.BuilderDefinition) {
	if len(def.TypeParams()) > 0 {
		return
	}
	for _, iface := range def.Interfaces() {
		f.Var().Id("_").Add(GoType(iface)).Op("=").
			Parens(jen.Op("*").Id(def.Builder().Name)).Call(jen.Nil())
	}
}

// writeFactory emits the builder constructor unless factory generation was
// suppressed by a private constructor access level.
func writeFactory(f *jen.File, def *model.BuilderDefinition) {
	name := def.FactoryName()
	if name == "" {
		return
	}
	builder := def.Builder().Name

	if def.Config().Docs.Bool() {
		f.Comment(name + " returns an empty " + builder + ".")
	}
	fn := f.Func().Id(name)
	ret := jen.Op("*").Id(builder)
	lit := jen.Op("&").Id(builder)
	if tp := typeParamDecls(def); len(tp) > 0 {
		fn = fn.Types(tp...)
		args := typeParamArgs(def)
		ret = jen.Op("*").Id(builder).Index(args...)
		lit = jen.Op("&").Id(builder).Index(typeParamArgs(def)...)
	}
	fn.Params().Add(ret).Block(jen.Return(lit.Values()))
}

// writeMethod emits one builder method. An empty result list means the
// method chains: it returns the builder's own pointer type.
func writeMethod(f *jen.File, def *model.BuilderDefinition, m *model.MethodModel) {
	commentLines(f, m.Doc)

	recv := jen.Id("b").Op("*").Id(def.Builder().Name)
	if args := typeParamArgs(def); len(args) > 0 {
		recv = recv.Index(args...)
	}

	stmt := f.Func().Params(recv).Id(m.Name).Params(paramDecls(m.Params)...)
	stmt = addResults(stmt, def, m)
	stmt.Block(m.Body...)
}

// writeNested emits a helper type and its value-receiver methods. Bodies of
// nested methods refer to the receiver as w.
func writeNested(f *jen.File, def *model.BuilderDefinition, n *model.NestedTypeModel) {
	commentLines(f, n.Doc)
	f.Type().Id(n.Name).Struct(n.Fields...)

	for _, m := range n.Methods {
		commentLines(f, m.Doc)
		stmt := f.Func().Params(jen.Id("w").Id(n.Name)).Id(m.Name).Params(paramDecls(m.Params)...)
		stmt = addResults(stmt, def, m)
		stmt.Block(m.Body...)
	}
}

func addResults(stmt *jen.Statement, def *model.BuilderDefinition, m *model.MethodModel) *jen.Statement {
	switch len(m.Results) {
	case 0:
		ret := jen.Op("*").Id(def.Builder().Name)
		if args := typeParamArgs(def); len(args) > 0 {
			ret = ret.Index(args...)
		}
		return stmt.Add(ret)
	case 1:
		return stmt.Add(m.Results[0])
	default:
		return stmt.Params(m.Results...)
	}
}

func paramDecls(ps []model.Param) []jen.Code {
	out := make([]jen.Code, len(ps))
	for i, p := range ps {
		d := jen.Id(p.Name)
		if p.Variadic {
			d = d.Op("...")
		}
		out[i] = d.Add(p.Type)
	}
	return out
}

func typeParamDecls(def *model.BuilderDefinition) []jen.Code {
	tps := def.TypeParams()
	out := make([]jen.Code, len(tps))
	for i, p := range tps {
		out[i] = jen.Id(p.Name).Add(GoType(p.Constraint))
	}
	return out
}

func typeParamArgs(def *model.BuilderDefinition) []jen.Code {
	tps := def.TypeParams()
	out := make([]jen.Code, len(tps))
	for i, p := range tps {
		out[i] = jen.Id(p.Name)
	}
	return out
}

// commentLines writes a possibly multi-line doc string as consecutive line
// comments.
func commentLines(f *jen.File, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		f.Comment(line)
	}
}
