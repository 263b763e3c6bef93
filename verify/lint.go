package verify

import (
	"fmt"

	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/core"
)

// RunLint performs static checks on a program without building a model.
// It validates declarations (STRUCT), operand scope (SCOPE), and gate
// usage against the table (GATE). Nodes that the translator skips are only
// checked for scope. A nil table means core.DefaultGateTable.
func RunLint(program ast.Program, gates *core.GateTable) []Issue {
	if gates == nil {
		gates = core.DefaultGateTable()
	}

	l := &linter{gates: gates, decls: newDeclared()}
	for g, group := range program {
		for i, node := range group {
			l.group, l.node = g, i
			l.check(node)
		}
	}
	return l.issues
}

type linter struct {
	gates  *core.GateTable
	decls  *declared
	issues []Issue

	group, node int
}

func (l *linter) report(t IssueType, details map[string]interface{}, format string, args ...any) {
	l.issues = append(l.issues, Issue{
		Type:    t,
		Group:   l.group,
		Node:    l.node,
		Message: fmt.Sprintf(format, args...),
		Details: details,
	})
}

func (l *linter) check(node ast.Node) {
	switch n := node.(type) {
	case ast.QReg:
		l.declare(n.Name, n.Size, l.decls.quantum)
	case ast.CReg:
		l.declare(n.Name, n.Size, l.decls.classical)
	case ast.ApplyGate:
		l.gate(n)
	case ast.Measure:
		l.operand(n.Qubit)
		l.operand(n.Target)
	case ast.Barrier:
		for _, a := range n.Args {
			l.operand(a)
		}
	case ast.Reset:
		l.operand(n.Arg)
	case ast.If:
		if _, ok := l.decls.classical[n.Register]; !ok {
			l.report(IssueScope, map[string]interface{}{"register": n.Register},
				"condition on undeclared classical register %s", n.Register)
		}
		if n.Body != nil {
			l.check(n.Body)
		}
	}
}

func (l *linter) declare(name string, size int, into map[string]int) {
	if size <= 0 {
		l.report(IssueStruct, map[string]interface{}{"register": name, "size": size},
			"register %s has non-positive size %d", name, size)
	}
	if _, ok := l.decls.size(name); ok {
		l.report(IssueStruct, map[string]interface{}{"register": name},
			"register %s is declared twice", name)
		return
	}
	into[name] = size
}

func (l *linter) gate(n ast.ApplyGate) {
	spec, ok := l.gates.Lookup(n.Name)
	if !ok {
		l.report(IssueGate, map[string]interface{}{"gate": n.Name},
			"gate %s is not supported", n.Name)
	} else {
		if len(n.Args) != spec.Arity {
			l.report(IssueGate,
				map[string]interface{}{"gate": n.Name, "expected": spec.Arity, "actual": len(n.Args)},
				"gate %s takes %d operands, got %d", n.Name, spec.Arity, len(n.Args))
		}
		if len(n.Params) != spec.Params {
			l.report(IssueGate,
				map[string]interface{}{"gate": n.Name, "expected": spec.Params, "actual": len(n.Params)},
				"gate %s takes %d parameters, got %d", n.Name, spec.Params, len(n.Params))
		}
		for _, p := range n.Params {
			if _, err := core.ParseAngle(p); err != nil {
				l.report(IssueGate, map[string]interface{}{"gate": n.Name, "param": p},
					"%v", err)
			}
		}
	}

	for _, a := range n.Args {
		l.operand(a)
	}
}

func (l *linter) operand(a ast.Argument) {
	switch a.Kind {
	case ast.ArgLiteral:
		return
	case ast.ArgRegister:
		if _, ok := l.decls.size(a.Name); !ok {
			l.report(IssueScope, map[string]interface{}{"register": a.Name},
				"register %s is not declared", a.Name)
		}
		return
	}

	size, ok := l.decls.size(a.Name)
	if !ok {
		l.report(IssueScope, map[string]interface{}{"register": a.Name},
			"operand %s names an undeclared register", a)
		return
	}
	if a.Index < 0 || a.Index >= size {
		l.report(IssueScope,
			map[string]interface{}{"register": a.Name, "index": a.Index, "size": size},
			"operand %s is outside register %s of size %d", a, a.Name, size)
	}
}
