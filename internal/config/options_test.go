package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeIdentity(t *testing.T) {
	def := Defaults()
	require.Equal(t, def, Merge(def, Options{}))
	require.Equal(t, def, Merge(Options{}, def))
}

func TestMergeRightBias(t *testing.T) {
	base := Defaults()
	overlay := Options{
		Setters:       Disabled,
		CopyWith:      Enabled,
		MethodAccess:  AccessPackage,
		Suffix:        "Maker",
		InterfaceName: "example.com/m.Assembler",
	}

	out := Merge(base, overlay)
	require.Equal(t, Disabled, out.Setters)
	require.Equal(t, Enabled, out.CopyWith)
	require.Equal(t, AccessPackage, out.MethodAccess)
	require.Equal(t, "Maker", out.Suffix)
	require.Equal(t, "example.com/m.Assembler", out.InterfaceName)

	// Everything the overlay leaves unset passes through.
	require.Equal(t, base.FormatHelpers, out.FormatHelpers)
	require.Equal(t, base.BuilderAccess, out.BuilderAccess)
	require.Equal(t, base.Constructor, out.Constructor)
}

func TestMergeAssociative(t *testing.T) {
	a := Options{Setters: Disabled, Suffix: "Maker"}
	b := Options{Setters: Enabled, CopyWith: Enabled}
	c := Options{Suffix: "Forge", MethodAccess: AccessPackage}

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	require.Equal(t, left, right)
}

func TestDefaultsFullyResolved(t *testing.T) {
	def := Defaults()
	m, err := FromMap(nil)
	require.NoError(t, err)
	require.Equal(t, def, Merge(def, m))

	require.Equal(t, Enabled, def.Setters)
	require.Equal(t, Disabled, def.CopyWith)
	require.Equal(t, Disabled, def.BaseInterface)
	require.Equal(t, AccessPublic, def.BuilderAccess)
	require.Equal(t, "Builder", def.Suffix)
}

func TestFromMap(t *testing.T) {
	o, err := FromMap(map[string]string{
		"setters":      "off",
		"copyWith":     "on",
		"methodAccess": "package",
		"suffix":       "Maker",
	})
	require.NoError(t, err)
	require.Equal(t, Disabled, o.Setters)
	require.Equal(t, Enabled, o.CopyWith)
	require.Equal(t, AccessPackage, o.MethodAccess)
	require.Equal(t, "Maker", o.Suffix)

	// Configuration sources may hand keys back lowercased.
	o, err = FromMap(map[string]string{"formathelpers": "off", "builderaccess": "package"})
	require.NoError(t, err)
	require.Equal(t, Disabled, o.FormatHelpers)
	require.Equal(t, AccessPackage, o.BuilderAccess)

	_, err = FromMap(map[string]string{"noSuchOption": "on"})
	require.ErrorContains(t, err, "unknown option")

	_, err = FromMap(map[string]string{"setters": "maybe"})
	require.ErrorContains(t, err, "invalid flag value")
}

func TestParseFlag(t *testing.T) {
	for _, s := range []string{"on", "true", "yes", "1"} {
		f, err := ParseFlag(s)
		require.NoError(t, err)
		require.Equal(t, Enabled, f)
	}
	for _, s := range []string{"off", "false", "no", "0"} {
		f, err := ParseFlag(s)
		require.NoError(t, err)
		require.Equal(t, Disabled, f)
	}
	_, err := ParseFlag("enabled")
	require.Error(t, err)
}

func TestParseAccess(t *testing.T) {
	a, err := ParseAccess("public")
	require.NoError(t, err)
	require.True(t, a.Exported())

	a, err = ParseAccess("package")
	require.NoError(t, err)
	require.False(t, a.Exported())

	a, err = ParseAccess("private")
	require.NoError(t, err)
	require.Equal(t, AccessPrivate, a)

	_, err = ParseAccess("protected")
	require.Error(t, err)
}
