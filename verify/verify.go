// Package verify runs static checks over a program before it is translated.
package verify

import (
	"fmt"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Declaration error (bad size, redeclared name)
	IssueScope  IssueType = "SCOPE"  // Operand names an undeclared register or bit
	IssueGate   IssueType = "GATE"   // Unknown gate or wrong operand count
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	Group   int
	Node    int
	Message string
	Details map[string]interface{}
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] group %d, node %d: %s", i.Type, i.Group, i.Node, i.Message)
}

// declared tracks the registers seen so far in file order.
type declared struct {
	quantum   map[string]int
	classical map[string]int
}

func newDeclared() *declared {
	return &declared{
		quantum:   make(map[string]int),
		classical: make(map[string]int),
	}
}

func (d *declared) size(name string) (int, bool) {
	if n, ok := d.quantum[name]; ok {
		return n, true
	}
	n, ok := d.classical[name]
	return n, ok
}
