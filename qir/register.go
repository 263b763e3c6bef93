// Package qir holds the semantic model that the translator builds and the
// emitter lowers into QIR.
package qir

import "strconv"

// RegisterRef identifies one addressable slot of a register.
type RegisterRef struct {
	Namespace string
	Index     int
}

// Ref builds a RegisterRef.
func Ref(namespace string, index int) RegisterRef {
	return RegisterRef{Namespace: namespace, Index: index}
}

// QIRName is the operand identifier used in emitted QIR, e.g. "q2".
func (r RegisterRef) QIRName() string {
	return r.Namespace + strconv.Itoa(r.Index)
}

func (r RegisterRef) String() string {
	return r.Namespace + "[" + strconv.Itoa(r.Index) + "]"
}

// RegisterKind distinguishes quantum and classical register entries.
type RegisterKind int

const (
	Quantum RegisterKind = iota
	Classical
)

func (k RegisterKind) String() string {
	if k == Quantum {
		return "quantum"
	}
	return "classical"
}

// Register is one entry of the register table. A quantum entry is a single
// qubit (Index is meaningful, Size is 1). A classical entry is the whole
// register (Size is meaningful).
type Register struct {
	Kind  RegisterKind
	Name  string
	Index int
	Size  int
}

// QIRName is the canonical name of the entry. It must be unique in a model.
func (r Register) QIRName() string {
	if r.Kind == Quantum {
		return Ref(r.Name, r.Index).QIRName()
	}
	return r.Name
}

// QuantumRegister is one qubit of a declared quantum register.
type QuantumRegister struct {
	Name  string
	Index int
}

// AsRegister converts to a register table entry.
func (q QuantumRegister) AsRegister() Register {
	return Register{Kind: Quantum, Name: q.Name, Index: q.Index, Size: 1}
}

// ClassicalRegister is a whole classical register.
type ClassicalRegister struct {
	Name string
	Size int
}

// AsRegister converts to a register table entry.
func (c ClassicalRegister) AsRegister() Register {
	return Register{Kind: Classical, Name: c.Name, Size: c.Size}
}
