package emit_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/require"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/emit"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/typeref"
)

const collectPkg = "github.com/bldgen/bldgen/pkg/collect"

// userDefinition hand-builds a small frozen definition so rendering can be
// checked without running the assembler.
func userDefinition(t *testing.T) *model.BuilderDefinition {
	t.Helper()

	user := typeref.Named{PkgPath: "example.com/m", Name: "User"}
	d := &model.Draft{
		Target:      user,
		TargetIsPtr: true,
		Builder:     typeref.Named{PkgPath: "example.com/m", Name: "UserBuilder"},
		PkgName:     "m",
		FactoryName: "NewUserBuilder",
		CtorName:    "NewUser",
		Config:      config.Defaults(),
		Doc:         "UserBuilder assembles User values fluently.",
	}
	d.AddAnnotation(model.Annotation{Name: model.AnnotationGenerated, Value: "bldgen"})
	d.AddAnnotation(model.Annotation{Name: model.AnnotationLink, Value: user.Key()})
	d.AddInterface(typeref.Generic{
		Outer: typeref.Named{PkgPath: collectPkg, Name: "Builder"},
		Args:  []typeref.TypeRef{typeref.Pointer{Elem: user}},
	})

	name := &model.FieldModel{Name: "name", SourceName: "Name", Type: typeref.Primitive{Name: "string"}}
	require.NoError(t, name.Attach(
		&model.MethodModel{
			Name:     "NameBy",
			Params:   []model.Param{{Name: "fn", Type: jen.Func().Params().String()}},
			Priority: model.PrioritySupplier,
			Body:     []jen.Code{jen.Id("b").Dot("name").Op("=").Id("fn").Call(), jen.Return(jen.Id("b"))},
		},
		&model.MethodModel{
			Name:     "Name",
			Doc:      "Name sets name.",
			Params:   []model.Param{{Name: "v", Type: jen.String()}},
			Priority: model.PriorityDirect,
			Body:     []jen.Code{jen.Id("b").Dot("name").Op("=").Id("v"), jen.Return(jen.Id("b"))},
		},
	))
	d.CtorFields = []*model.FieldModel{name}

	require.NoError(t, d.AddCoreMethod(&model.MethodModel{
		Name:    "Build",
		Doc:     "Build assembles and returns the User value.",
		Results: []jen.Code{jen.Op("*").Qual("example.com/m", "User")},
		Body: []jen.Code{
			jen.Id("t").Op(":=").Id("NewUser").Call(jen.Id("b").Dot("name")),
			jen.Return(jen.Id("t")),
		},
	}))
	return d.Freeze()
}

func render(t *testing.T, def *model.BuilderDefinition) string {
	t.Helper()
	return fmt.Sprintf("%#v", emit.File(def))
}

func TestFileRendering(t *testing.T) {
	src := render(t, userDefinition(t))

	require.Contains(t, src, "Code generated by bldgen. DO NOT EDIT.")
	require.Contains(t, src, "package m")
	require.Contains(t, src, "//bldgen:for example.com/m.User")
	require.Contains(t, src, "UserBuilder assembles User values fluently.")
	require.Contains(t, src, "type UserBuilder struct")
	require.Contains(t, src, "name string")
	require.Contains(t, src, "var _ collect.Builder[*User] = (*UserBuilder)(nil)")
	require.Contains(t, src, "func NewUserBuilder() *UserBuilder")
	require.Contains(t, src, "func (b *UserBuilder) Name(v string) *UserBuilder")
	require.Contains(t, src, "b.name = v")
	require.Contains(t, src, "func (b *UserBuilder) Build() *User")
}

func TestMethodsOrderedByPriority(t *testing.T) {
	// The field attached NameBy before Name; the direct setter still renders
	// first because priorities decide the output order.
	src := render(t, userDefinition(t))

	direct := strings.Index(src, "func (b *UserBuilder) Name(")
	supplier := strings.Index(src, "func (b *UserBuilder) NameBy(")
	require.Greater(t, direct, -1)
	require.Greater(t, supplier, -1)
	require.Less(t, direct, supplier)
}

func TestRenderingLeavesDefinitionIntact(t *testing.T) {
	def := userDefinition(t)
	render(t, def)

	// Priority-sorting for output must not reorder the frozen field methods.
	names := []string{}
	for _, m := range def.Fields()[0].Methods {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"NameBy", "Name"}, names)
}

func TestFileName(t *testing.T) {
	cases := map[string]string{
		"User":       "user_builder_gen.go",
		"URLValue":   "url_value_builder_gen.go",
		"HTTPServer": "http_server_builder_gen.go",
		"ID":         "id_builder_gen.go",
		"apiToken":   "api_token_builder_gen.go",
	}
	for in, want := range cases {
		require.Equal(t, want, emit.FileName(in), in)
	}
}

func TestWriteAll(t *testing.T) {
	dir := t.TempDir()
	def := userDefinition(t)
	w := emit.NewWriter()

	paths, err := w.WriteAll([]*model.BuilderDefinition{def}, func(*model.BuilderDefinition) string { return dir })
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "user_builder_gen.go")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	require.Contains(t, string(data), "Code generated by bldgen. DO NOT EDIT.")

	require.Equal(t, map[string]string{"example.com/m.User": paths[0]}, w.Written())

	_, err = w.WriteAll([]*model.BuilderDefinition{def}, func(*model.BuilderDefinition) string { return dir })
	require.ErrorIs(t, err, emit.ErrDuplicateOutput)
}
