// Package config resolves the effective builder configuration for one target
// type by overlaying built-in defaults, process-wide settings, a named
// template, and the type's own directive options.
package config

import (
	"fmt"
	"sort"
	"strings"
)

// Options is one configuration layer. Flags left Unset (and strings left
// empty) pass the underlying layer's value through during merging. After
// Resolve no flag remains Unset and no access level remains AccessUnset.
type Options struct {
	// Per-field method generators.
	Setters          Flag
	FormatHelpers    Flag
	VarargsHelpers   Flag
	AddHelpers       Flag
	Suppliers        Flag
	UnwrapHelpers    Flag
	BuilderConsumers Flag
	FieldConsumers   Flag
	ListBuilders     Flag
	ListBuilderEach  Flag
	SetBuilders      Flag
	SetBuilderEach   Flag
	MapBuilders      Flag
	StringBuilders   Flag
	ArrayHelpers     Flag

	// Whole-definition enhancers.
	Conditionals    Flag
	CopyWith        Flag
	BaseInterface   Flag
	GeneratedMarker Flag
	LinkMarker      Flag
	Docs            Flag

	// Visibility.
	BuilderAccess     Access
	ConstructorAccess Access
	MethodAccess      Access

	// Naming.
	Suffix        string // builder type name suffix
	SetterSuffix  string // suffix appended to direct setter method names
	Constructor   string // target constructor name, "" means New<Type>
	InterfaceName string // base interface, "" means collect.Builder
}

// Defaults returns the built-in bottom layer. Every flag and access level is
// concrete here, which is what guarantees a fully resolved configuration
// after merging.
func Defaults() Options {
	return Options{
		Setters:          Enabled,
		FormatHelpers:    Enabled,
		VarargsHelpers:   Enabled,
		AddHelpers:       Enabled,
		Suppliers:        Enabled,
		UnwrapHelpers:    Enabled,
		BuilderConsumers: Enabled,
		FieldConsumers:   Enabled,
		ListBuilders:     Enabled,
		ListBuilderEach:  Enabled,
		SetBuilders:      Enabled,
		SetBuilderEach:   Enabled,
		MapBuilders:      Enabled,
		StringBuilders:   Enabled,
		ArrayHelpers:     Enabled,

		Conditionals:    Enabled,
		CopyWith:        Disabled,
		BaseInterface:   Disabled,
		GeneratedMarker: Enabled,
		LinkMarker:      Enabled,
		Docs:            Enabled,

		BuilderAccess:     AccessPublic,
		ConstructorAccess: AccessPublic,
		MethodAccess:      AccessPublic,

		Suffix: "Builder",
	}
}

// Merge overlays b on a and returns the result. It is pure and right-biased:
// every explicit choice in b wins, everything b leaves unset passes through
// from a. Merging with a zero Options is the identity.
func Merge(a, b Options) Options {
	out := a

	overlayFlag := func(dst *Flag, v Flag) {
		if v != Unset {
			*dst = v
		}
	}
	overlayFlag(&out.Setters, b.Setters)
	overlayFlag(&out.FormatHelpers, b.FormatHelpers)
	overlayFlag(&out.VarargsHelpers, b.VarargsHelpers)
	overlayFlag(&out.AddHelpers, b.AddHelpers)
	overlayFlag(&out.Suppliers, b.Suppliers)
	overlayFlag(&out.UnwrapHelpers, b.UnwrapHelpers)
	overlayFlag(&out.BuilderConsumers, b.BuilderConsumers)
	overlayFlag(&out.FieldConsumers, b.FieldConsumers)
	overlayFlag(&out.ListBuilders, b.ListBuilders)
	overlayFlag(&out.ListBuilderEach, b.ListBuilderEach)
	overlayFlag(&out.SetBuilders, b.SetBuilders)
	overlayFlag(&out.SetBuilderEach, b.SetBuilderEach)
	overlayFlag(&out.MapBuilders, b.MapBuilders)
	overlayFlag(&out.StringBuilders, b.StringBuilders)
	overlayFlag(&out.ArrayHelpers, b.ArrayHelpers)
	overlayFlag(&out.Conditionals, b.Conditionals)
	overlayFlag(&out.CopyWith, b.CopyWith)
	overlayFlag(&out.BaseInterface, b.BaseInterface)
	overlayFlag(&out.GeneratedMarker, b.GeneratedMarker)
	overlayFlag(&out.LinkMarker, b.LinkMarker)
	overlayFlag(&out.Docs, b.Docs)

	if b.BuilderAccess != AccessUnset {
		out.BuilderAccess = b.BuilderAccess
	}
	if b.ConstructorAccess != AccessUnset {
		out.ConstructorAccess = b.ConstructorAccess
	}
	if b.MethodAccess != AccessUnset {
		out.MethodAccess = b.MethodAccess
	}

	if b.Suffix != "" {
		out.Suffix = b.Suffix
	}
	if b.SetterSuffix != "" {
		out.SetterSuffix = b.SetterSuffix
	}
	if b.Constructor != "" {
		out.Constructor = b.Constructor
	}
	if b.InterfaceName != "" {
		out.InterfaceName = b.InterfaceName
	}

	return out
}

// optionSetters maps the flat dotted option keys (as read from a directive,
// a template body, or viper) to Options mutations.
var optionSetters = map[string]func(*Options, string) error{
	"setters":          flagKey(func(o *Options) *Flag { return &o.Setters }),
	"formatHelpers":    flagKey(func(o *Options) *Flag { return &o.FormatHelpers }),
	"varargsHelpers":   flagKey(func(o *Options) *Flag { return &o.VarargsHelpers }),
	"addHelpers":       flagKey(func(o *Options) *Flag { return &o.AddHelpers }),
	"suppliers":        flagKey(func(o *Options) *Flag { return &o.Suppliers }),
	"unwrapHelpers":    flagKey(func(o *Options) *Flag { return &o.UnwrapHelpers }),
	"builderConsumers": flagKey(func(o *Options) *Flag { return &o.BuilderConsumers }),
	"fieldConsumers":   flagKey(func(o *Options) *Flag { return &o.FieldConsumers }),
	"listBuilders":     flagKey(func(o *Options) *Flag { return &o.ListBuilders }),
	"listBuilderEach":  flagKey(func(o *Options) *Flag { return &o.ListBuilderEach }),
	"setBuilders":      flagKey(func(o *Options) *Flag { return &o.SetBuilders }),
	"setBuilderEach":   flagKey(func(o *Options) *Flag { return &o.SetBuilderEach }),
	"mapBuilders":      flagKey(func(o *Options) *Flag { return &o.MapBuilders }),
	"stringBuilders":   flagKey(func(o *Options) *Flag { return &o.StringBuilders }),
	"arrayHelpers":     flagKey(func(o *Options) *Flag { return &o.ArrayHelpers }),
	"conditionals":     flagKey(func(o *Options) *Flag { return &o.Conditionals }),
	"copyWith":         flagKey(func(o *Options) *Flag { return &o.CopyWith }),
	"baseInterface":    flagKey(func(o *Options) *Flag { return &o.BaseInterface }),
	"generatedMarker":  flagKey(func(o *Options) *Flag { return &o.GeneratedMarker }),
	"linkMarker":       flagKey(func(o *Options) *Flag { return &o.LinkMarker }),
	"docs":             flagKey(func(o *Options) *Flag { return &o.Docs }),

	"builderAccess":     accessKey(func(o *Options) *Access { return &o.BuilderAccess }),
	"constructorAccess": accessKey(func(o *Options) *Access { return &o.ConstructorAccess }),
	"methodAccess":      accessKey(func(o *Options) *Access { return &o.MethodAccess }),

	"suffix":        stringKey(func(o *Options) *string { return &o.Suffix }),
	"setterSuffix":  stringKey(func(o *Options) *string { return &o.SetterSuffix }),
	"constructor":   stringKey(func(o *Options) *string { return &o.Constructor }),
	"interfaceName": stringKey(func(o *Options) *string { return &o.InterfaceName }),
}

func flagKey(sel func(*Options) *Flag) func(*Options, string) error {
	return func(o *Options, v string) error {
		f, err := ParseFlag(v)
		if err != nil {
			return err
		}
		*sel(o) = f
		return nil
	}
}

func accessKey(sel func(*Options) *Access) func(*Options, string) error {
	return func(o *Options, v string) error {
		a, err := ParseAccess(v)
		if err != nil {
			return err
		}
		*sel(o) = a
		return nil
	}
}

func stringKey(sel func(*Options) *string) func(*Options, string) error {
	return func(o *Options, v string) error {
		*sel(o) = v
		return nil
	}
}

// Keys returns every recognized option key, sorted, for help output.
func Keys() []string {
	out := make([]string, 0, len(optionSetters))
	for k := range optionSetters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FromMap builds an Options layer from a flat string-keyed map, the contract
// with the process-wide configuration source. Unknown keys and malformed
// values are reported as errors rather than silently dropped. Lookup is
// case-insensitive because viper normalizes configuration keys to lower case.
func FromMap(m map[string]string) (Options, error) {
	var o Options
	for k, v := range m {
		set, ok := optionSetters[k]
		if !ok {
			for name, s := range optionSetters {
				if strings.EqualFold(name, k) {
					set, ok = s, true
					break
				}
			}
		}
		if !ok {
			return Options{}, fmt.Errorf("unknown option %q", k)
		}
		if err := set(&o, v); err != nil {
			return Options{}, fmt.Errorf("option %q: %w", k, err)
		}
	}
	return o, nil
}
