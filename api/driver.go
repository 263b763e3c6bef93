// Package api defines the driver API of the translator.
package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/core"
	"github.com/sarchlab/qasm2qir/qir"
)

// Emitter turns a finished model into QIR.
type Emitter interface {
	// IRString renders the model as text.
	IRString(m *qir.SemanticModel) (string, error)

	// WriteFile renders the model and persists it at path.
	WriteFile(m *qir.SemanticModel, path string) error
}

// ErrorPolicy decides what the driver does when a statement fails.
type ErrorPolicy int

const (
	// CollectErrors records a diagnostic, skips the statement, and keeps
	// translating.
	CollectErrors ErrorPolicy = iota
	// AbortOnFirstError stops at the first failing statement. The model is
	// left partially populated and should not be emitted.
	AbortOnFirstError
)

func (p ErrorPolicy) String() string {
	if p == AbortOnFirstError {
		return "abort"
	}
	return "collect"
}

// Hook positions invoked by the driver. Detail is always the core.Position
// of the node.
var (
	// HookPosNodeStart fires before a node is dispatched. Item is the node.
	HookPosNodeStart = &sim.HookPos{Name: "NodeStart"}
	// HookPosInstAppended fires once per instruction a node appended. Item
	// is the qir.Instruction.
	HookPosInstAppended = &sim.HookPos{Name: "InstAppended"}
	// HookPosNodeFailed fires when a node fails. Item is the
	// core.Diagnostic.
	HookPosNodeFailed = &sim.HookPos{Name: "NodeFailed"}
)

// Driver walks a program and owns the model of one translation unit.
type Driver interface {
	sim.Hookable

	// Name returns the translation unit name.
	Name() string

	// Translate dispatches every node of the program in file order. Under
	// CollectErrors it returns core.Diagnostics if any statement failed.
	// Under AbortOnFirstError it returns the first core.Diagnostic.
	Translate(program ast.Program) error

	// Model returns the model built so far.
	Model() *qir.SemanticModel

	// Diagnostics returns every failure recorded so far.
	Diagnostics() core.Diagnostics

	// GetIRString renders the model through the emitter.
	GetIRString() (string, error)

	// WriteModelToFile persists the model through the emitter.
	WriteModelToFile(path string) error
}

type driverImpl struct {
	*sim.HookableBase

	name        string
	model       *qir.SemanticModel
	dispatcher  *core.Dispatcher
	emitter     Emitter
	policy      ErrorPolicy
	diagnostics core.Diagnostics
}

func (d *driverImpl) Name() string { return d.name }

func (d *driverImpl) Model() *qir.SemanticModel { return d.model }

func (d *driverImpl) Diagnostics() core.Diagnostics {
	out := make(core.Diagnostics, len(d.diagnostics))
	copy(out, d.diagnostics)
	return out
}

// Translate runs the dispatcher once per node.
func (d *driverImpl) Translate(program ast.Program) error {
	var failed core.Diagnostics

	for g, group := range program {
		for i, node := range group {
			pos := core.Position{Group: g, Node: i}

			diag, ok := d.translateNode(pos, node)
			if ok {
				continue
			}

			if d.policy == AbortOnFirstError {
				return diag
			}
			failed = append(failed, diag)
		}
	}

	if len(failed) > 0 {
		return failed
	}
	return nil
}

func (d *driverImpl) translateNode(
	pos core.Position,
	node ast.Node,
) (core.Diagnostic, bool) {
	d.invoke(HookPosNodeStart, node, pos)

	before := d.model.NumInstructions()

	err := d.dispatcher.Dispatch(node)
	if err != nil {
		diag := core.Diagnostic{Position: pos, Err: err}
		if node != nil {
			diag.NodeKind = node.Kind()
			diag.Statement = node.String()
		}

		core.Trace("Node",
			"Behavior", "Fail",
			"Group", pos.Group,
			"Node", pos.Node,
			"Error", err.Error(),
		)

		d.diagnostics = append(d.diagnostics, diag)
		d.invoke(HookPosNodeFailed, diag, pos)

		return diag, false
	}

	if d.NumHooks() > 0 {
		for i := before; i < d.model.NumInstructions(); i++ {
			d.invoke(HookPosInstAppended, d.model.Instruction(i), pos)
		}
	}

	return core.Diagnostic{}, true
}

func (d *driverImpl) invoke(pos *sim.HookPos, item interface{}, at core.Position) {
	if d.NumHooks() == 0 {
		return
	}

	d.InvokeHook(sim.HookCtx{
		Domain: d,
		Pos:    pos,
		Item:   item,
		Detail: at,
	})
}

// GetIRString returns the emitter's rendering unchanged.
func (d *driverImpl) GetIRString() (string, error) {
	return d.emitter.IRString(d.model)
}

// WriteModelToFile returns the emitter's result unchanged.
func (d *driverImpl) WriteModelToFile(path string) error {
	return d.emitter.WriteFile(d.model, path)
}
