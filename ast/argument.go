package ast

import "fmt"

// ArgKind tells what an argument refers to.
type ArgKind int

const (
	// ArgQubit is an indexed qubit, e.g. q[0].
	ArgQubit ArgKind = iota
	// ArgClassical is an indexed classical bit, e.g. c[0].
	ArgClassical
	// ArgRegister is a whole register without an index, e.g. q.
	ArgRegister
	// ArgLiteral is a numeric literal in operand position.
	ArgLiteral
)

func (k ArgKind) String() string {
	switch k {
	case ArgQubit:
		return "qubit"
	case ArgClassical:
		return "classical bit"
	case ArgRegister:
		return "register"
	case ArgLiteral:
		return "literal"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

// Argument is one operand of a statement.
type Argument struct {
	Kind  ArgKind
	Name  string
	Index int
	// Literal holds the source text of an ArgLiteral.
	Literal string
}

// Qubit builds an indexed qubit argument.
func Qubit(name string, index int) Argument {
	return Argument{Kind: ArgQubit, Name: name, Index: index}
}

// Classical builds an indexed classical bit argument.
func Classical(name string, index int) Argument {
	return Argument{Kind: ArgClassical, Name: name, Index: index}
}

// Register builds a whole-register argument.
func Register(name string) Argument {
	return Argument{Kind: ArgRegister, Name: name}
}

// Literal builds a literal argument.
func Literal(text string) Argument {
	return Argument{Kind: ArgLiteral, Literal: text}
}

// Indexed reports whether the argument addresses a single slot.
func (a Argument) Indexed() bool {
	return a.Kind == ArgQubit || a.Kind == ArgClassical
}

func (a Argument) String() string {
	switch a.Kind {
	case ArgQubit, ArgClassical:
		return fmt.Sprintf("%s[%d]", a.Name, a.Index)
	case ArgRegister:
		return a.Name
	default:
		return a.Literal
	}
}
