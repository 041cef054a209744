package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bldgen/bldgen/internal/diag"
)

// ErrInvalidConfig is the sentinel matched by every ConfigError.
var ErrInvalidConfig = errors.New("bldgen: invalid configuration")

// ConfigError reports a contradictory or unusable configuration for one
// target type. Processing of that type aborts; sibling types continue.
type ConfigError struct {
	Target  string
	Option  string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("bldgen: invalid configuration")
	if e.Target != "" {
		b.WriteString(" for ")
		b.WriteString(e.Target)
	}
	if e.Option != "" {
		fmt.Fprintf(&b, ": option %s=%s", e.Option, e.Value)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is matches the ErrInvalidConfig sentinel.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// Directive is the parsed form of a //bldgen:builder comment.
type Directive struct {
	Template  string  // template= reference, if any
	Inline    Options // directly attached options
	HasInline bool    // true when at least one non-template option is present
}

// ParseDirective parses the key=value arguments following the
// //bldgen:builder marker. target names the annotated type for error scoping.
func ParseDirective(target string, args []string) (Directive, error) {
	var d Directive
	for _, arg := range args {
		if arg == "" {
			continue
		}
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return Directive{}, &ConfigError{Target: target, Option: arg, Message: "directive options must be key=value pairs"}
		}
		if k == "template" {
			d.Template = v
			continue
		}
		set, known := optionSetters[k]
		if !known {
			return Directive{}, &ConfigError{Target: target, Option: k, Value: v, Message: "unknown option"}
		}
		if err := set(&d.Inline, v); err != nil {
			return Directive{}, &ConfigError{Target: target, Option: k, Value: v, Message: err.Error()}
		}
		d.HasInline = true
	}
	return d, nil
}

// Resolver merges the configuration layers for each target type in a round.
type Resolver struct {
	ProcessWide Options
	Templates   map[string]Options
	Reporter    *diag.Reporter
}

// Resolve produces the effective configuration for target. The layering,
// lowest first: built-in defaults, process-wide options, the named template
// (only when no inline options are present), inline options. Inline options
// and a template reference are mutually exclusive; when both are present the
// inline options win entirely and the template is ignored with a diagnostic.
func (r *Resolver) Resolve(target string, d Directive) (Options, error) {
	eff := Merge(Defaults(), r.ProcessWide)

	if d.Template != "" {
		if d.HasInline {
			r.Reporter.Warnf(target, "directive names template %q alongside inline options; the template is ignored", d.Template)
		} else {
			tpl, ok := r.Templates[d.Template]
			if !ok {
				return Options{}, &ConfigError{Target: target, Option: "template", Value: d.Template, Message: "unknown template"}
			}
			eff = Merge(eff, tpl)
		}
	}

	eff = Merge(eff, d.Inline)

	if err := validate(target, eff); err != nil {
		return Options{}, err
	}
	return eff, nil
}

// validate rejects configurations that would make the generated builder or
// its methods unreachable. Private constructor access is valid: it forces
// callers through a factory other than the generated one.
func validate(target string, o Options) error {
	if o.BuilderAccess == AccessPrivate {
		return &ConfigError{
			Target: target, Option: "builderAccess", Value: o.BuilderAccess.String(),
			Message: "a generated top-level builder type cannot be private; use package or public",
		}
	}
	if o.MethodAccess == AccessPrivate {
		return &ConfigError{
			Target: target, Option: "methodAccess", Value: o.MethodAccess.String(),
			Message: "private methods would make every generated setter unreachable; use package or public",
		}
	}
	return nil
}
