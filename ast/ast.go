// Package ast defines the parsed OpenQASM nodes that the translator consumes.
//
// The front-end produces a Program: an ordered list of statement groups, each
// an ordered list of nodes. Only register declarations, gate applications and
// measurements carry instructions. Every other kind is kept so that a
// translation can skip it without losing its position.
package ast

import (
	"fmt"
	"strings"
)

// Program is the ordered sequence of statement groups of one source file.
type Program [][]Node

// NumNodes counts the nodes in all groups.
func (p Program) NumNodes() int {
	n := 0
	for _, group := range p {
		n += len(group)
	}
	return n
}

// Node is one parsed statement.
type Node interface {
	// Kind names the node kind, e.g. "qreg" or "barrier".
	Kind() string
	String() string
}

// QReg declares a quantum register of Size qubits.
type QReg struct {
	Name string
	Size int
}

func (QReg) Kind() string { return "qreg" }

func (n QReg) String() string {
	return fmt.Sprintf("qreg %s[%d]", n.Name, n.Size)
}

// CReg declares a classical register of Size bits.
type CReg struct {
	Name string
	Size int
}

func (CReg) Kind() string { return "creg" }

func (n CReg) String() string {
	return fmt.Sprintf("creg %s[%d]", n.Name, n.Size)
}

// ApplyGate applies a named gate. Params are the angle expressions between
// parentheses, Args the qubit operands.
type ApplyGate struct {
	Name   string
	Args   []Argument
	Params []string
}

func (ApplyGate) Kind() string { return "gate" }

func (n ApplyGate) String() string {
	s := n.Name
	if len(n.Params) > 0 {
		s += "(" + strings.Join(n.Params, ",") + ")"
	}
	if len(n.Args) == 0 {
		return s
	}
	return s + " " + joinArgs(n.Args)
}

// Measure measures Qubit into the classical bit Target.
type Measure struct {
	Qubit  Argument
	Target Argument
}

func (Measure) Kind() string { return "measure" }

func (n Measure) String() string {
	return fmt.Sprintf("measure %s -> %s", n.Qubit, n.Target)
}

// Barrier is a scheduling barrier over its operands.
type Barrier struct {
	Args []Argument
}

func (Barrier) Kind() string { return "barrier" }

func (n Barrier) String() string { return "barrier " + joinArgs(n.Args) }

// Reset is the reset statement form. Resetting through a gate application
// ("reset q[0]" lowered as ApplyGate) is the form that produces instructions.
type Reset struct {
	Arg Argument
}

func (Reset) Kind() string { return "reset" }

func (n Reset) String() string { return "reset " + n.Arg.String() }

// Opaque declares a gate without a body.
type Opaque struct {
	Name   string
	Args   []string
	Params []string
}

func (Opaque) Kind() string { return "opaque" }

func (n Opaque) String() string {
	return "opaque " + n.Name + " " + strings.Join(n.Args, ",")
}

// GateDef defines a gate in terms of other gates.
type GateDef struct {
	Name   string
	Args   []string
	Params []string
	Body   []Node
}

func (GateDef) Kind() string { return "gatedef" }

func (n GateDef) String() string {
	return fmt.Sprintf("gate %s %s { %d statements }",
		n.Name, strings.Join(n.Args, ","), len(n.Body))
}

// If guards Body with a comparison of a classical register against Value.
type If struct {
	Register string
	Value    int
	Body     Node
}

func (If) Kind() string { return "if" }

func (n If) String() string {
	return fmt.Sprintf("if(%s==%d) %v", n.Register, n.Value, n.Body)
}

// Include is a file inclusion the front-end chose not to expand.
type Include struct {
	Path string
}

func (Include) Kind() string { return "include" }

func (n Include) String() string { return fmt.Sprintf("include %q", n.Path) }

func joinArgs(args []Argument) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, ",")
}
