package core

import (
	"fmt"
	"sort"

	"github.com/sarchlab/qasm2qir/qir"
)

// GateSpec describes how a gate name lowers into an instruction. Build
// receives exactly Arity operands and Params angles.
type GateSpec struct {
	Arity  int
	Params int
	Build  func(operands []qir.RegisterRef, angles []float64) qir.Instruction
}

// GateTable maps gate names to their lowering.
type GateTable struct {
	name    string
	entries map[string]GateSpec
}

// NewGateTable creates an empty table.
func NewGateTable(name string) *GateTable {
	return &GateTable{
		name:    name,
		entries: make(map[string]GateSpec),
	}
}

// Name returns the table name.
func (t *GateTable) Name() string { return t.name }

// Register adds or replaces a gate.
func (t *GateTable) Register(name string, spec GateSpec) {
	t.entries[name] = spec
}

// Alias makes alias lower exactly like target.
func (t *GateTable) Alias(alias, target string) error {
	spec, ok := t.entries[target]
	if !ok {
		return fmt.Errorf("cannot alias %q: %w", alias, &UnsupportedGateError{Name: target})
	}
	t.entries[alias] = spec
	return nil
}

// Lookup finds the lowering of a gate name.
func (t *GateTable) Lookup(name string) (GateSpec, bool) {
	spec, ok := t.entries[name]
	return spec, ok
}

// Names lists the known gate names in sorted order.
func (t *GateTable) Names() []string {
	names := make([]string, 0, len(t.entries))
	for n := range t.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone copies the table so that aliases can be added without touching the
// original.
func (t *GateTable) Clone() *GateTable {
	c := NewGateTable(t.name)
	for n, spec := range t.entries {
		c.entries[n] = spec
	}
	return c
}

func single(kind qir.Kind) GateSpec {
	return GateSpec{
		Arity: 1,
		Build: func(ops []qir.RegisterRef, _ []float64) qir.Instruction {
			return qir.NewSingle(kind, ops[0])
		},
	}
}

func rotation(kind qir.Kind) GateSpec {
	return GateSpec{
		Arity:  1,
		Params: 1,
		Build: func(ops []qir.RegisterRef, angles []float64) qir.Instruction {
			return qir.NewRotated(kind, angles[0], ops[0])
		},
	}
}

func controlled(kind qir.Kind) GateSpec {
	return GateSpec{
		Arity: 2,
		Build: func(ops []qir.RegisterRef, _ []float64) qir.Instruction {
			return qir.NewControlled(kind, ops[0], ops[1])
		},
	}
}

// DefaultGateTable returns a fresh table with the supported gate set.
func DefaultGateTable() *GateTable {
	t := NewGateTable("qasm2qir")

	t.Register("h", single(qir.H))
	t.Register("x", single(qir.X))
	t.Register("y", single(qir.Y))
	t.Register("z", single(qir.Z))
	t.Register("s", single(qir.S))
	t.Register("sdg", single(qir.SAdj))
	t.Register("t", single(qir.T))
	t.Register("tdg", single(qir.TAdj))
	t.Register("reset", single(qir.Reset))

	t.Register("rx", rotation(qir.Rx))
	t.Register("ry", rotation(qir.Ry))
	t.Register("rz", rotation(qir.Rz))

	t.Register("cx", controlled(qir.Cx))
	t.Register("cz", controlled(qir.Cz))

	t.Register("dump_machine", GateSpec{
		Build: func(_ []qir.RegisterRef, _ []float64) qir.Instruction {
			return qir.Dump{}
		},
	})

	for alias, target := range map[string]string{
		"CX":          "cx",
		"s_adj":       "sdg",
		"t_adj":       "tdg",
		"dumpmachine": "dump_machine",
	} {
		if err := t.Alias(alias, target); err != nil {
			panic(err)
		}
	}

	return t
}
