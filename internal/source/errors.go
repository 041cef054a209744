package source

import (
	"errors"
	"fmt"
)

// ErrIneligibleType is the sentinel matched by every ShapeError.
var ErrIneligibleType = errors.New("bldgen: ineligible declaration")

// ShapeError reports a builder directive attached to a declaration the
// pipeline cannot process. It is raised during validation, before any
// extraction work begins, and aborts processing of that one type only.
type ShapeError struct {
	Target  string
	Decl    string // the declaration kind actually found
	Message string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("bldgen: %s: directive applied to %s: %s", e.Target, e.Decl, e.Message)
}

// Is matches the ErrIneligibleType sentinel.
func (e *ShapeError) Is(target error) bool { return target == ErrIneligibleType }
