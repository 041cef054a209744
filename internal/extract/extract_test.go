package extract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/diag"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/source"
	"github.com/bldgen/bldgen/internal/typeref"
)

func str() typeref.TypeRef  { return typeref.Primitive{Name: "string"} }
func intT() typeref.TypeRef { return typeref.Primitive{Name: "int"} }

func userTarget() *source.Target {
	return &source.Target{
		Name:    "User",
		PkgPath: "example.com/m",
		PkgName: "m",
	}
}

func TestConstructorFieldOrder(t *testing.T) {
	tests := []struct {
		name   string
		params []source.NamedParam
		want   []string
	}{
		{name: "zero params"},
		{
			name:   "one param",
			params: []source.NamedParam{{Name: "name", Type: str()}},
			want:   []string{"name"},
		},
		{
			name: "many params keep declaration order",
			params: []source.NamedParam{
				{Name: "e", Type: str()},
				{Name: "d", Type: str()},
				{Name: "c", Type: intT()},
				{Name: "b", Type: str()},
				{Name: "a", Type: intT()},
			},
			want: []string{"e", "d", "c", "b", "a"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tgt := userTarget()
			tgt.Funcs = []source.Func{{
				Name:    "NewUser",
				Params:  tt.params,
				Results: []typeref.TypeRef{typeref.Pointer{Elem: tgt.Ref()}},
			}}

			res := Fields(tgt, config.Defaults(), diag.NewReporter(nil))
			require.Equal(t, "NewUser", res.CtorName)
			require.True(t, res.TargetIsPtr)
			require.Len(t, res.CtorFields, len(tt.want))
			for i, f := range res.CtorFields {
				require.Equal(t, tt.want[i], f.Name)
				require.Equal(t, model.FromConstructor, f.Provenance)
			}
		})
	}
}

func TestConstructorOverride(t *testing.T) {
	tgt := userTarget()
	tgt.Funcs = []source.Func{{
		Name:    "MakeUser",
		Params:  []source.NamedParam{{Name: "name", Type: str()}},
		Results: []typeref.TypeRef{tgt.Ref()},
	}}

	opts := config.Defaults()
	opts.Constructor = "MakeUser"
	res := Fields(tgt, opts, diag.NewReporter(nil))
	require.Equal(t, "MakeUser", res.CtorName)
	require.False(t, res.TargetIsPtr)
}

func TestMissingConstructorFallsBack(t *testing.T) {
	tgt := userTarget()
	res := Fields(tgt, config.Defaults(), diag.NewReporter(nil))
	require.Empty(t, res.CtorName)
	require.True(t, res.TargetIsPtr)
	require.Empty(t, res.CtorFields)
}

func TestMultiResultConstructorFallsBack(t *testing.T) {
	// A (T, error) factory cannot back Build; there is nowhere for the
	// error to go, so the target builds via field assignment instead.
	tgt := userTarget()
	tgt.Funcs = []source.Func{{
		Name:   "NewUser",
		Params: []source.NamedParam{{Name: "name", Type: str()}},
		Results: []typeref.TypeRef{
			typeref.Pointer{Elem: tgt.Ref()},
			typeref.Named{Name: "error"},
		},
	}}

	rep := diag.NewReporter(nil)
	res := Fields(tgt, config.Defaults(), rep)
	require.Empty(t, res.CtorName)
	require.Empty(t, res.CtorFields)
	require.True(t, res.TargetIsPtr)

	ds := rep.ForTarget("User")
	require.Len(t, ds, 1)
	require.Contains(t, ds[0].Message, "returns 2 values")
}

func TestSetterFields(t *testing.T) {
	tgt := userTarget()
	tgt.Methods = []source.Func{
		{Name: "SetEmail", Params: []source.NamedParam{{Name: "email", Type: str()}}},
		{Name: "Settings", Params: []source.NamedParam{{Name: "m", Type: str()}}},
		{Name: "SetScore", Params: []source.NamedParam{{Name: "s", Type: intT()}}, Results: []typeref.TypeRef{intT()}},
		{Name: "Set", Params: []source.NamedParam{{Name: "v", Type: str()}}},
	}

	rep := diag.NewReporter(nil)
	res := Fields(tgt, config.Defaults(), rep)

	require.Len(t, res.SetterFields, 1)
	f := res.SetterFields[0]
	require.Equal(t, "email", f.Name)
	require.Equal(t, "Email", f.SourceName)
	require.Equal(t, model.FromSetter, f.Provenance)

	// SetScore has a result, so it is skipped with a diagnostic.
	require.Len(t, rep.ForTarget("User"), 1)
	require.Contains(t, rep.ForTarget("User")[0].Message, "SetScore")
}

func TestConstructorWinsOverSetter(t *testing.T) {
	tgt := userTarget()
	tgt.Funcs = []source.Func{{
		Name:    "NewUser",
		Params:  []source.NamedParam{{Name: "email", Type: str()}},
		Results: []typeref.TypeRef{typeref.Pointer{Elem: tgt.Ref()}},
	}}
	tgt.Methods = []source.Func{
		{Name: "SetEmail", Params: []source.NamedParam{{Name: "email", Type: str()}}},
	}

	res := Fields(tgt, config.Defaults(), diag.NewReporter(nil))
	require.Len(t, res.CtorFields, 1)
	require.Empty(t, res.SetterFields)
}

func TestSetterConflictRenaming(t *testing.T) {
	tgt := userTarget()
	tgt.Methods = []source.Func{
		{Name: "SetValue", Params: []source.NamedParam{{Name: "v", Type: str()}}},
		{Name: "SetValue", Params: []source.NamedParam{{Name: "v", Type: intT()}}},
		{Name: "SetValue", Params: []source.NamedParam{{Name: "v", Type: str()}}},
	}

	rep := diag.NewReporter(nil)
	res := Fields(tgt, config.Defaults(), rep)

	require.Len(t, res.SetterFields, 2)
	require.Equal(t, "value", res.SetterFields[0].Name)
	require.Equal(t, "valueInt", res.SetterFields[1].Name)

	ds := rep.ForTarget("User")
	require.Len(t, ds, 1)
	require.Contains(t, ds[0].Message, "renaming")
}

func TestGetterLinkage(t *testing.T) {
	tgt := userTarget()
	tgt.Methods = []source.Func{
		{Name: "SetEmail", Params: []source.NamedParam{{Name: "email", Type: str()}}},
		{Name: "Email", Results: []typeref.TypeRef{str()}},
		{Name: "SetAge", Params: []source.NamedParam{{Name: "age", Type: intT()}}},
		{Name: "GetAge", Results: []typeref.TypeRef{intT()}},
		{Name: "SetNick", Params: []source.NamedParam{{Name: "nick", Type: str()}}},
		// Wrong result type never links.
		{Name: "Nick", Results: []typeref.TypeRef{intT()}},
	}

	res := Fields(tgt, config.Defaults(), diag.NewReporter(nil))
	byName := map[string]string{}
	for _, f := range res.SetterFields {
		byName[f.Name] = f.Getter
	}
	require.Equal(t, "Email", byName["email"])
	require.Equal(t, "GetAge", byName["age"])
	require.Empty(t, byName["nick"])
}

func TestUnresolvedMembers(t *testing.T) {
	tgt := userTarget()
	tgt.Funcs = []source.Func{{Name: "NewUser", Unresolved: true}}
	tgt.Methods = []source.Func{
		{Name: "SetEmail", Unresolved: true},
	}

	rep := diag.NewReporter(nil)
	res := Fields(tgt, config.Defaults(), rep)
	require.Empty(t, res.CtorName)
	require.True(t, res.TargetIsPtr)
	require.Empty(t, res.SetterFields)
	require.Len(t, rep.ForTarget("User"), 2)
}
