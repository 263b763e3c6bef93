package qir

import "log/slog"

// RegisterPolicy decides what happens when a registration reuses a canonical
// name that is already taken.
type RegisterPolicy int

const (
	// RejectCollisions fails the registration with a NameCollisionError.
	RejectCollisions RegisterPolicy = iota
	// ReplaceOnCollision lets the later entry replace the earlier one. The
	// replaced entry keeps its position in the table.
	ReplaceOnCollision
)

func (p RegisterPolicy) String() string {
	if p == ReplaceOnCollision {
		return "replace"
	}
	return "reject"
}

// SemanticModel is the accumulated output of one translation unit: its
// registers and instructions in program order.
type SemanticModel struct {
	Name string

	policy       RegisterPolicy
	registers    []Register
	byName       map[string]int
	instructions []Instruction
}

// NewSemanticModel creates an empty model that rejects name collisions.
func NewSemanticModel(name string) *SemanticModel {
	return &SemanticModel{
		Name:   name,
		byName: make(map[string]int),
	}
}

// SetRegisterPolicy changes how later registrations treat collisions.
func (m *SemanticModel) SetRegisterPolicy(p RegisterPolicy) {
	m.policy = p
}

// RegisterPolicy returns the collision policy in effect.
func (m *SemanticModel) RegisterPolicy() RegisterPolicy {
	return m.policy
}

// AddReg registers a single entry.
func (m *SemanticModel) AddReg(reg Register) error {
	return m.AddRegs(reg)
}

// AddRegs registers entries in order. Under RejectCollisions either every
// entry is registered or none is.
func (m *SemanticModel) AddRegs(regs ...Register) error {
	if err := m.checkRegs(regs); err != nil {
		return err
	}

	for _, reg := range regs {
		name := reg.QIRName()
		if at, ok := m.byName[name]; ok {
			slog.Debug("Register replaced",
				"Name", name, "Old", m.registers[at], "New", reg)
			m.registers[at] = reg
			continue
		}

		m.byName[name] = len(m.registers)
		m.registers = append(m.registers, reg)
	}

	return nil
}

func (m *SemanticModel) checkRegs(regs []Register) error {
	batch := make(map[string]Register, len(regs))
	for _, reg := range regs {
		if reg.Name == "" {
			return ErrEmptyRegisterName
		}

		if m.policy == ReplaceOnCollision {
			continue
		}

		name := reg.QIRName()
		if at, ok := m.byName[name]; ok {
			return &NameCollisionError{
				Name:     name,
				Existing: m.registers[at],
				Incoming: reg,
			}
		}
		if prev, ok := batch[name]; ok {
			return &NameCollisionError{Name: name, Existing: prev, Incoming: reg}
		}
		batch[name] = reg
	}

	return nil
}

// AddInst appends an instruction.
func (m *SemanticModel) AddInst(inst Instruction) {
	m.instructions = append(m.instructions, inst)
}

// Instruction returns the i-th instruction.
func (m *SemanticModel) Instruction(i int) Instruction {
	return m.instructions[i]
}

// Lookup finds a register entry by canonical name.
func (m *SemanticModel) Lookup(name string) (Register, bool) {
	at, ok := m.byName[name]
	if !ok {
		return Register{}, false
	}
	return m.registers[at], true
}

// Registers returns a copy of the register table in registration order.
func (m *SemanticModel) Registers() []Register {
	out := make([]Register, len(m.registers))
	copy(out, m.registers)
	return out
}

// Instructions returns a copy of the instruction sequence.
func (m *SemanticModel) Instructions() []Instruction {
	out := make([]Instruction, len(m.instructions))
	copy(out, m.instructions)
	return out
}

func (m *SemanticModel) NumRegisters() int { return len(m.registers) }

func (m *SemanticModel) NumInstructions() int { return len(m.instructions) }

// QuantumRegisters returns the quantum entries in registration order.
func (m *SemanticModel) QuantumRegisters() []Register {
	return m.filter(Quantum)
}

// ClassicalRegisters returns the classical entries in registration order.
func (m *SemanticModel) ClassicalRegisters() []Register {
	return m.filter(Classical)
}

func (m *SemanticModel) filter(kind RegisterKind) []Register {
	var out []Register
	for _, r := range m.registers {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}
