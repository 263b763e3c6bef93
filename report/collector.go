package report

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/qasm2qir/api"
	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/qir"
)

// Collector is a driver hook that counts what a translation did.
type Collector struct {
	Nodes  int
	Failed int
	// ByNode counts dispatched nodes per node kind.
	ByNode map[string]int
	// ByKind counts appended instructions per instruction kind.
	ByKind map[qir.Kind]int
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		ByNode: make(map[string]int),
		ByKind: make(map[qir.Kind]int),
	}
}

// Func implements sim.Hook.
func (c *Collector) Func(ctx sim.HookCtx) {
	switch ctx.Pos {
	case api.HookPosNodeStart:
		c.Nodes++
		if n, ok := ctx.Item.(ast.Node); ok {
			c.ByNode[n.Kind()]++
		}
	case api.HookPosInstAppended:
		if inst, ok := ctx.Item.(qir.Instruction); ok {
			c.ByKind[inst.Kind()]++
		}
	case api.HookPosNodeFailed:
		c.Failed++
	}
}
