package config

import "fmt"

// Flag is a tri-state option value. The zero value is Unset so that a plain
// Options literal overlays cleanly during merging.
type Flag int

const (
	Unset Flag = iota
	Enabled
	Disabled
)

// Bool collapses the flag to a boolean. It must only be called on a resolved
// configuration, where Unset can no longer occur.
func (f Flag) Bool() bool { return f == Enabled }

func (f Flag) String() string {
	switch f {
	case Enabled:
		return "on"
	case Disabled:
		return "off"
	default:
		return "unset"
	}
}

// ParseFlag interprets the stringified forms accepted in directives and the
// process-wide option map.
func ParseFlag(s string) (Flag, error) {
	switch s {
	case "on", "true", "yes", "1":
		return Enabled, nil
	case "off", "false", "no", "0":
		return Disabled, nil
	default:
		return Unset, fmt.Errorf("invalid flag value %q (want on/off)", s)
	}
}

// Access is a visibility level for generated declarations. Public maps to an
// exported identifier, Package to an unexported one. Private is expressible
// only for the builder factory function, where it forces callers through a
// different entry point; for the builder type and its methods it is rejected
// during validation.
type Access int

const (
	AccessUnset Access = iota
	AccessPublic
	AccessPackage
	AccessPrivate
)

func (a Access) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessPackage:
		return "package"
	case AccessPrivate:
		return "private"
	default:
		return "unset"
	}
}

// Exported reports whether identifiers at this level keep their exported
// spelling.
func (a Access) Exported() bool { return a == AccessPublic }

// ParseAccess interprets a stringified access level.
func ParseAccess(s string) (Access, error) {
	switch s {
	case "public":
		return AccessPublic, nil
	case "package":
		return AccessPackage, nil
	case "private":
		return AccessPrivate, nil
	default:
		return AccessUnset, fmt.Errorf("invalid access level %q (want public/package/private)", s)
	}
}
