package core

import (
	"fmt"
	"strings"
)

// ArityMismatchError reports a wrong number of operands. What is "argument"
// for qubit operands and "parameter" for angle parameters.
type ArityMismatchError struct {
	What     string
	Expected int
	Actual   int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("wrong number of %ss: expected %d, got %d",
		e.What, e.Expected, e.Actual)
}

// TypeMismatchError reports an operand of the wrong kind.
type TypeMismatchError struct {
	Description string
}

func (e *TypeMismatchError) Error() string {
	return "type mismatch: " + e.Description
}

// UnsupportedGateError reports a gate name with no table entry.
type UnsupportedGateError struct {
	Name string
}

func (e *UnsupportedGateError) Error() string {
	return fmt.Sprintf("unsupported gate %q", e.Name)
}

// UnsupportedNodeError reports a node kind the dispatcher does not lower.
// It is only raised in strict node mode.
type UnsupportedNodeError struct {
	Kind string
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported statement kind %q", e.Kind)
}

// Position locates a node in a program.
type Position struct {
	Group int
	Node  int
}

func (p Position) String() string {
	return fmt.Sprintf("group %d, node %d", p.Group, p.Node)
}

// Diagnostic is a failure of one statement.
type Diagnostic struct {
	Position
	NodeKind  string
	Statement string
	Err       error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s (%s): %v", d.Position, d.Statement, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// Diagnostics are the failures collected over one translation.
type Diagnostics []Diagnostic

func (ds Diagnostics) Error() string {
	if len(ds) == 1 {
		return ds[0].Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d statements failed:", len(ds))
	for _, d := range ds {
		b.WriteString("\n\t")
		b.WriteString(d.Error())
	}
	return b.String()
}

func (ds Diagnostics) Unwrap() []error {
	errs := make([]error, len(ds))
	for i, d := range ds {
		errs[i] = d
	}
	return errs
}
