package generate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bldgen/bldgen/internal/config"
	"github.com/bldgen/bldgen/internal/diag"
	"github.com/bldgen/bldgen/internal/model"
	"github.com/bldgen/bldgen/internal/source"
	"github.com/bldgen/bldgen/internal/typeref"
)

// addressTarget declares NewAddress(street, city) Address, a value result.
func addressTarget() *source.Target {
	t := &source.Target{Name: "Address", PkgPath: pkgPath, PkgName: "m"}
	t.Funcs = []source.Func{{
		Name: "NewAddress",
		Params: []source.NamedParam{
			{Name: "street", Type: str()},
			{Name: "city", Type: str()},
		},
		Results: []typeref.TypeRef{t.Ref()},
	}}
	return t
}

func assembleRound(t *testing.T, targets ...*source.Target) map[string]*model.BuilderDefinition {
	t.Helper()
	rep := diag.NewReporter(nil)
	defs, errs := newAssembler(rep).AssembleAll(targets)
	require.Empty(t, errs)
	out := make(map[string]*model.BuilderDefinition, len(defs))
	for _, d := range defs {
		out[d.Target().Name] = d
	}
	return out
}

func TestBuilderConsumerOutranksFieldConsumer(t *testing.T) {
	addr := typeref.Named{PkgPath: pkgPath, Name: "Address"}
	user := userTarget()
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetAddr",
		Params: []source.NamedParam{{Name: "addr", Type: addr}},
	})

	defs := assembleRound(t, user, addressTarget())
	f := fieldByName(t, defs["User"], "addr")

	require.Equal(t, []string{"Addr", "AddrBy", "AddrWith"}, methodNames(f))
	with := f.Methods[2]
	// The callback operates on the nested builder, not on the raw struct.
	require.Contains(t, renderType(with.Params[0].Type), "AddressBuilder")
	// The value-returning nested Build is stored directly.
	require.Contains(t, renderBody(with.Body), "nb.Build()")
}

func TestBuilderConsumerOrderIndependent(t *testing.T) {
	// Address is declared after User; the two-pass round still finds it.
	addr := typeref.Named{PkgPath: pkgPath, Name: "Address"}
	user := userTarget()
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetAddr",
		Params: []source.NamedParam{{Name: "addr", Type: typeref.Pointer{Elem: addr}}},
	})

	defs := assembleRound(t, user, addressTarget())
	f := fieldByName(t, defs["User"], "addr")
	require.Contains(t, methodNames(f), "AddrWith")
}

func TestFieldConsumerWhenBuilderConsumersOff(t *testing.T) {
	// Disabling builderConsumers must not silence the consumer family
	// entirely; the plain field consumer takes over.
	addr := typeref.Named{PkgPath: pkgPath, Name: "Address"}
	user := userTarget()
	user.Directive = mustDirective(t, "builderConsumers=off")
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetAddr",
		Params: []source.NamedParam{{Name: "addr", Type: addr}},
	})

	defs := assembleRound(t, user, addressTarget())
	f := fieldByName(t, defs["User"], "addr")
	require.Equal(t, []string{"Addr", "AddrBy", "AddrWith"}, methodNames(f))

	rendered := renderType(f.Methods[2].Params[0].Type)
	require.Contains(t, rendered, "m.Address")
	require.NotContains(t, rendered, "AddressBuilder")
}

func TestFieldConsumerWhenBuilderUnusable(t *testing.T) {
	// A nested builder without a factory cannot be instantiated from the
	// generated callback, so the field consumer steps in.
	addr := typeref.Named{PkgPath: pkgPath, Name: "Address"}
	user := userTarget()
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetAddr",
		Params: []source.NamedParam{{Name: "addr", Type: addr}},
	})
	address := addressTarget()
	address.Directive = mustDirective(t, "constructorAccess=private")

	defs := assembleRound(t, user, address)
	f := fieldByName(t, defs["User"], "addr")
	require.Contains(t, methodNames(f), "AddrWith")

	rendered := renderType(f.Methods[2].Params[0].Type)
	require.Contains(t, rendered, "m.Address")
	require.NotContains(t, rendered, "AddressBuilder")
}

func TestFieldConsumerWithoutBuilder(t *testing.T) {
	opts := typeref.Named{PkgPath: pkgPath, Name: "Options"}
	user := userTarget()
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetOpts",
		Params: []source.NamedParam{{Name: "opts", Type: opts}},
	})

	defs := assembleRound(t, user)
	f := fieldByName(t, defs["User"], "opts")
	require.Equal(t, []string{"Opts", "OptsBy", "OptsWith"}, methodNames(f))
	// Without a registered builder, the callback edits the struct directly.
	require.Contains(t, renderType(f.Methods[2].Params[0].Type), "m.Options")
}

func TestNoConsumerForUnknownNamedType(t *testing.T) {
	foreign := typeref.Named{PkgPath: "example.com/other", Name: "Thing"}
	user := userTarget()
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetThing",
		Params: []source.NamedParam{{Name: "thing", Type: foreign}},
	})

	defs := assembleRound(t, user)
	f := fieldByName(t, defs["User"], "thing")
	// Not a builder target, not an indexed struct: only setter and supplier.
	require.Equal(t, []string{"Thing", "ThingBy"}, methodNames(f))
}

func TestListBuilderEachUpgrade(t *testing.T) {
	addr := typeref.Named{PkgPath: pkgPath, Name: "Address"}
	user := userTarget()
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetAddrs",
		Params: []source.NamedParam{{Name: "addrs", Type: typeref.Slice{Elem: addr}}},
	})

	defs := assembleRound(t, user, addressTarget())
	f := fieldByName(t, defs["User"], "addrs")
	with := f.Methods[len(f.Methods)-1]
	require.Equal(t, "AddrsWith", with.Name)
	require.Contains(t, renderType(with.Params[0].Type), "BuilderList")
}

func TestListBuilderEachDowngrade(t *testing.T) {
	addr := typeref.Named{PkgPath: pkgPath, Name: "Address"}
	user := userTarget()
	user.Directive = mustDirective(t, "listBuilderEach=off")
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetAddrs",
		Params: []source.NamedParam{{Name: "addrs", Type: typeref.Slice{Elem: addr}}},
	})

	defs := assembleRound(t, user, addressTarget())
	f := fieldByName(t, defs["User"], "addrs")
	with := f.Methods[len(f.Methods)-1]
	require.Equal(t, "AddrsWith", with.Name)
	rendered := renderType(with.Params[0].Type)
	require.NotContains(t, rendered, "BuilderList")
	require.Contains(t, rendered, "List")
}

func TestListBuildersDisabled(t *testing.T) {
	user := userTarget()
	user.Directive = mustDirective(t, "listBuilders=off", "addHelpers=off", "suppliers=off")
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetTags",
		Params: []source.NamedParam{{Name: "tags", Type: typeref.Slice{Elem: str()}}},
	})

	defs := assembleRound(t, user)
	f := fieldByName(t, defs["User"], "tags")
	require.Equal(t, []string{"Tags", "TagsOf"}, methodNames(f))
}

func TestConsumerFlagsDisableFamily(t *testing.T) {
	user := userTarget()
	user.Directive = mustDirective(t, "stringBuilders=off")

	defs := assembleRound(t, user)
	f := fieldByName(t, defs["User"], "name")
	require.Equal(t, []string{"Name", "NameFormat", "NameBy"}, methodNames(f))
}

func TestGenericTargetStaysOutOfRegistry(t *testing.T) {
	box := &source.Target{
		Name:       "Box",
		PkgPath:    pkgPath,
		PkgName:    "m",
		TypeParams: []source.NamedParam{{Name: "T", Type: typeref.Primitive{Name: "any"}}},
	}
	box.Funcs = []source.Func{{
		Name:    "NewBox",
		Params:  []source.NamedParam{{Name: "value", Type: typeref.TypeVar{Name: "T"}}},
		Results: []typeref.TypeRef{typeref.Pointer{Elem: box.Ref()}},
	}}

	user := userTarget()
	user.Methods = append(user.Methods, source.Func{
		Name:   "SetBox",
		Params: []source.NamedParam{{Name: "box", Type: box.Ref()}},
	})

	defs := assembleRound(t, user, box)
	require.Len(t, defs, 2)

	// Box still gets its own builder with the declared type parameter.
	require.Equal(t, "BoxBuilder", defs["Box"].Builder().Name)
	require.Len(t, defs["Box"].TypeParams(), 1)

	// But User cannot consume it through a nested builder.
	f := fieldByName(t, defs["User"], "box")
	require.NotContains(t, methodNames(f), "BoxWith")
}

func TestSiblingFailureIsolation(t *testing.T) {
	bad := userTarget()
	bad.Name = "Broken"
	bad.Err = &source.ShapeError{Target: "Broken", Decl: "a type alias", Message: "builders are generated for defined struct types only"}

	badCfg := addressTarget()
	badCfg.Name = "Rejected"
	badCfg.Directive = config.Directive{
		Inline:    config.Options{BuilderAccess: config.AccessPrivate},
		HasInline: true,
	}

	rep := diag.NewReporter(nil)
	defs, errs := newAssembler(rep).AssembleAll([]*source.Target{bad, badCfg, userTarget()})

	require.Len(t, defs, 1)
	require.Equal(t, "User", defs[0].Target().Name)

	require.Len(t, errs, 2)
	require.ErrorIs(t, errs["Broken"], source.ErrIneligibleType)
	require.ErrorIs(t, errs["Rejected"], config.ErrInvalidConfig)
}
