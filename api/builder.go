package api

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/qasm2qir/core"
	"github.com/sarchlab/qasm2qir/emit"
	"github.com/sarchlab/qasm2qir/qir"
)

// DriverBuilder creates a new instance of Driver. The zero value builds a
// driver that collects errors, rejects register name collisions, reports
// unknown gates, skips unknown statements, and renders with
// emit.TextEmitter.
type DriverBuilder struct {
	emitter        Emitter
	gates          *core.GateTable
	aliases        map[string]string
	policy         ErrorPolicy
	registerPolicy qir.RegisterPolicy
	lenientGates   bool
	strictNodes    bool
	hooks          []sim.Hook
}

// WithEmitter sets the emitter that renders and writes the model.
func (b DriverBuilder) WithEmitter(emitter Emitter) DriverBuilder {
	b.emitter = emitter
	return b
}

// WithGateTable replaces the default gate table.
func (b DriverBuilder) WithGateTable(gates *core.GateTable) DriverBuilder {
	b.gates = gates
	return b
}

// WithGateAlias makes alias lower like the gate target. The target must
// exist in the gate table; Build panics otherwise. config.Config.Validate
// checks aliases before they reach the builder.
func (b DriverBuilder) WithGateAlias(alias, target string) DriverBuilder {
	aliases := make(map[string]string, len(b.aliases)+1)
	for k, v := range b.aliases {
		aliases[k] = v
	}
	aliases[alias] = target
	b.aliases = aliases
	return b
}

// WithErrorPolicy sets what happens when a statement fails.
func (b DriverBuilder) WithErrorPolicy(policy ErrorPolicy) DriverBuilder {
	b.policy = policy
	return b
}

// WithRegisterPolicy sets how register name collisions are handled.
func (b DriverBuilder) WithRegisterPolicy(policy qir.RegisterPolicy) DriverBuilder {
	b.registerPolicy = policy
	return b
}

// WithStrictGates sets whether unknown gate names are errors. When false
// they are dropped silently.
func (b DriverBuilder) WithStrictGates(strict bool) DriverBuilder {
	b.lenientGates = !strict
	return b
}

// WithStrictNodes sets whether statement kinds without a lowering are
// errors. When false they are skipped.
func (b DriverBuilder) WithStrictNodes(strict bool) DriverBuilder {
	b.strictNodes = strict
	return b
}

// WithHook attaches a hook to the driver.
func (b DriverBuilder) WithHook(hook sim.Hook) DriverBuilder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// Build creates a driver for the translation unit called name. It panics if
// a gate alias targets a gate the table does not know.
func (b DriverBuilder) Build(name string) Driver {
	gates := b.gates
	if gates == nil {
		gates = core.DefaultGateTable()
	}
	if len(b.aliases) > 0 {
		gates = gates.Clone()
		for alias, target := range b.aliases {
			if err := gates.Alias(alias, target); err != nil {
				panic(err)
			}
		}
	}

	emitter := b.emitter
	if emitter == nil {
		emitter = emit.NewTextEmitter()
	}

	model := qir.NewSemanticModel(name)
	model.SetRegisterPolicy(b.registerPolicy)

	dispatcher := core.NewDispatcher(model, gates)
	dispatcher.StrictGates = !b.lenientGates
	dispatcher.StrictNodes = b.strictNodes

	d := &driverImpl{
		HookableBase: sim.NewHookableBase(),
		name:         name,
		model:        model,
		dispatcher:   dispatcher,
		emitter:      emitter,
		policy:       b.policy,
	}

	for _, h := range b.hooks {
		d.AcceptHook(h)
	}

	return d
}
