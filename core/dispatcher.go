package core

import (
	"fmt"

	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/qir"
)

// Dispatcher lowers one AST node at a time into the model it owns.
type Dispatcher struct {
	model *qir.SemanticModel
	gates *GateTable

	// StrictGates reports unknown gate names as UnsupportedGateError. When
	// false they are dropped.
	StrictGates bool
	// StrictNodes reports node kinds without a lowering as
	// UnsupportedNodeError. When false they are skipped.
	StrictNodes bool
}

// NewDispatcher creates a dispatcher with strict gates and lenient nodes.
func NewDispatcher(model *qir.SemanticModel, gates *GateTable) *Dispatcher {
	if gates == nil {
		gates = DefaultGateTable()
	}

	return &Dispatcher{
		model:       model,
		gates:       gates,
		StrictGates: true,
	}
}

// Model returns the model being built.
func (d *Dispatcher) Model() *qir.SemanticModel { return d.model }

// Gates returns the gate table in use.
func (d *Dispatcher) Gates() *GateTable { return d.gates }

// Dispatch lowers a node. On error nothing is appended.
func (d *Dispatcher) Dispatch(node ast.Node) error {
	if node == nil {
		return &UnsupportedNodeError{Kind: "<nil>"}
	}

	switch n := node.(type) {
	case ast.QReg:
		return d.AddQuantumRegister(n.Name, n.Size)
	case ast.CReg:
		return d.AddClassicalRegister(n.Name, n.Size)
	case ast.ApplyGate:
		return d.ApplyGate(n.Name, n.Args, n.Params)
	case ast.Measure:
		return d.Measure(n.Qubit, n.Target)
	}

	if d.StrictNodes {
		return &UnsupportedNodeError{Kind: node.Kind()}
	}

	Trace("Node", "Behavior", "Skip", "Kind", node.Kind())
	return nil
}

// AddQuantumRegister registers one entry per qubit, in index order.
func (d *Dispatcher) AddQuantumRegister(name string, size int) error {
	if err := checkSize(name, size); err != nil {
		return err
	}

	regs := make([]qir.Register, 0, size)
	for index := 0; index < size; index++ {
		regs = append(regs, qir.QuantumRegister{Name: name, Index: index}.AsRegister())
	}

	if err := d.model.AddRegs(regs...); err != nil {
		return err
	}

	for _, r := range regs {
		Trace("Register", "Behavior", "AddQuantum", "Name", qir.Ref(r.Name, r.Index))
	}
	return nil
}

// AddClassicalRegister registers the whole register as one entry.
func (d *Dispatcher) AddClassicalRegister(name string, size int) error {
	if err := checkSize(name, size); err != nil {
		return err
	}

	reg := qir.ClassicalRegister{Name: name, Size: size}.AsRegister()
	if err := d.model.AddReg(reg); err != nil {
		return err
	}

	Trace("Register", "Behavior", "AddClassical", "Name", name, "Size", size)
	return nil
}

func checkSize(name string, size int) error {
	if size < 0 {
		return &TypeMismatchError{
			Description: fmt.Sprintf("register %s has negative size %d", name, size),
		}
	}
	return nil
}

// ApplyGate lowers a gate application through the gate table.
func (d *Dispatcher) ApplyGate(name string, args []ast.Argument, params []string) error {
	spec, ok := d.gates.Lookup(name)
	if !ok {
		if d.StrictGates {
			return &UnsupportedGateError{Name: name}
		}

		Trace("Gate", "Behavior", "Drop", "Name", name)
		return nil
	}

	operands, err := Resolve(args, spec.Arity, QubitOperand...)
	if err != nil {
		return err
	}

	angles, err := d.angles(params, spec.Params)
	if err != nil {
		return err
	}

	d.append(spec.Build(operands, angles))
	return nil
}

func (d *Dispatcher) angles(params []string, want int) ([]float64, error) {
	if len(params) != want {
		return nil, &ArityMismatchError{
			What:     "parameter",
			Expected: want,
			Actual:   len(params),
		}
	}

	angles := make([]float64, len(params))
	for i, p := range params {
		a, err := ParseAngle(p)
		if err != nil {
			return nil, err
		}
		angles[i] = a
	}

	return angles, nil
}

// Measure lowers a measurement of qubit into the classical bit target.
func (d *Dispatcher) Measure(qubit, target ast.Argument) error {
	q, err := ResolveOne([]ast.Argument{qubit}, QubitOperand...)
	if err != nil {
		return err
	}

	c, err := ResolveOne([]ast.Argument{target}, BitOperand...)
	if err != nil {
		return err
	}

	d.append(qir.NewMeasured(q, c))
	return nil
}

func (d *Dispatcher) append(inst qir.Instruction) {
	d.model.AddInst(inst)
	Trace("Inst", "Behavior", string(inst.Kind()), "Operands", operandNames(inst))
}
