package qir

import "fmt"

// Kind is the operation an instruction performs.
type Kind string

const (
	H           Kind = "H"
	X           Kind = "X"
	Y           Kind = "Y"
	Z           Kind = "Z"
	S           Kind = "S"
	SAdj        Kind = "SAdj"
	T           Kind = "T"
	TAdj        Kind = "TAdj"
	Reset       Kind = "Reset"
	Rx          Kind = "Rx"
	Ry          Kind = "Ry"
	Rz          Kind = "Rz"
	Cx          Kind = "Cx"
	Cz          Kind = "Cz"
	M           Kind = "M"
	DumpMachine Kind = "DumpMachine"
)

// Instruction is one operation of the model. Implementations are values;
// an appended instruction is never changed.
type Instruction interface {
	Kind() Kind
	// Operands lists the referenced slots in operand order.
	Operands() []RegisterRef
	String() string
}

// Single is a one-qubit gate without parameters.
type Single struct {
	Op    Kind
	Qubit RegisterRef
}

// NewSingle builds a Single instruction.
func NewSingle(kind Kind, qubit RegisterRef) Single {
	return Single{Op: kind, Qubit: qubit}
}

func (s Single) Kind() Kind { return s.Op }

func (s Single) Operands() []RegisterRef { return []RegisterRef{s.Qubit} }

func (s Single) String() string {
	return fmt.Sprintf("%s(%s)", s.Op, s.Qubit.QIRName())
}

// Controlled is a two-qubit controlled gate.
type Controlled struct {
	Op      Kind
	Control RegisterRef
	Target  RegisterRef
}

// NewControlled builds a Controlled instruction.
func NewControlled(kind Kind, control, target RegisterRef) Controlled {
	return Controlled{Op: kind, Control: control, Target: target}
}

func (c Controlled) Kind() Kind { return c.Op }

func (c Controlled) Operands() []RegisterRef {
	return []RegisterRef{c.Control, c.Target}
}

func (c Controlled) String() string {
	return fmt.Sprintf("%s(control=%s, target=%s)",
		c.Op, c.Control.QIRName(), c.Target.QIRName())
}

// Rotated is a single-qubit rotation by Theta radians.
type Rotated struct {
	Op    Kind
	Theta float64
	Qubit RegisterRef
}

// NewRotated builds a Rotated instruction.
func NewRotated(kind Kind, theta float64, qubit RegisterRef) Rotated {
	return Rotated{Op: kind, Theta: theta, Qubit: qubit}
}

func (r Rotated) Kind() Kind { return r.Op }

func (r Rotated) Operands() []RegisterRef { return []RegisterRef{r.Qubit} }

func (r Rotated) String() string {
	return fmt.Sprintf("%s(%g, %s)", r.Op, r.Theta, r.Qubit.QIRName())
}

// Measured measures Qubit into the classical bit Target.
type Measured struct {
	Qubit  RegisterRef
	Target RegisterRef
}

// NewMeasured builds a Measured instruction.
func NewMeasured(qubit, target RegisterRef) Measured {
	return Measured{Qubit: qubit, Target: target}
}

func (Measured) Kind() Kind { return M }

func (m Measured) Operands() []RegisterRef {
	return []RegisterRef{m.Qubit, m.Target}
}

func (m Measured) String() string {
	return fmt.Sprintf("M(%s -> %s)", m.Qubit.QIRName(), m.Target.QIRName())
}

// Dump prints the simulator state. It has no operands.
type Dump struct{}

func (Dump) Kind() Kind { return DumpMachine }

func (Dump) Operands() []RegisterRef { return nil }

func (Dump) String() string { return string(DumpMachine) }
