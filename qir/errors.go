package qir

import (
	"errors"
	"fmt"
)

// ErrEmptyRegisterName is returned when a register entry has no name.
var ErrEmptyRegisterName = errors.New("register name is empty")

// NameCollisionError reports two register entries with the same canonical
// name.
type NameCollisionError struct {
	Name     string
	Existing Register
	Incoming Register
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("canonical name %q of %s register %s collides with %s register %s",
		e.Name,
		e.Incoming.Kind, describe(e.Incoming),
		e.Existing.Kind, describe(e.Existing))
}

func describe(r Register) string {
	if r.Kind == Quantum {
		return Ref(r.Name, r.Index).String()
	}
	return fmt.Sprintf("%s(%d)", r.Name, r.Size)
}
