package ast

import (
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// A serialized program is a YAML list of statement groups. Each node is a
// mapping with exactly one key naming its kind:
//
//	- - qreg: {name: q, size: 2}
//	  - creg: {name: c, size: 2}
//	  - gate: {name: h, args: ["q[0]"]}
//	  - gate: {name: rx, params: ["pi/2"], args: ["q[1]"]}
//	  - measure: {qubit: "q[1]", target: "c[0]"}
//	  - barrier: {args: [q]}
//
// Indexed operands naming a register declared by an earlier creg decode as
// classical bits, all other indexed operands as qubits.
type yamlNode struct {
	QReg    *yamlReg      `yaml:"qreg"`
	CReg    *yamlReg      `yaml:"creg"`
	Gate    *yamlGate     `yaml:"gate"`
	Measure *yamlMeasure  `yaml:"measure"`
	Barrier *yamlGate     `yaml:"barrier"`
	Reset   *string       `yaml:"reset"`
	Opaque  *yamlGateDecl `yaml:"opaque"`
	GateDef *yamlGateDecl `yaml:"gatedef"`
	If      *yamlIf       `yaml:"if"`
	Include *string       `yaml:"include"`
}

type yamlReg struct {
	Name string `yaml:"name"`
	Size int    `yaml:"size"`
}

type yamlGate struct {
	Name   string   `yaml:"name"`
	Args   []string `yaml:"args"`
	Params []string `yaml:"params"`
}

type yamlMeasure struct {
	Qubit  string `yaml:"qubit"`
	Target string `yaml:"target"`
}

type yamlGateDecl struct {
	Name   string     `yaml:"name"`
	Args   []string   `yaml:"args"`
	Params []string   `yaml:"params"`
	Body   []yamlNode `yaml:"body"`
}

type yamlIf struct {
	Register string   `yaml:"register"`
	Value    int      `yaml:"value"`
	Then     yamlNode `yaml:"then"`
}

var indexedOperand = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\[(\d+)\]$`)

type decoder struct {
	cregs map[string]bool
}

// Decode reads a serialized program.
func Decode(r io.Reader) (Program, error) {
	var raw [][]yamlNode
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if err == io.EOF {
			return Program{}, nil
		}
		return nil, errors.Wrap(err, "decoding program")
	}

	d := &decoder{cregs: make(map[string]bool)}
	prog := make(Program, 0, len(raw))
	for g, group := range raw {
		nodes := make([]Node, 0, len(group))
		for i := range group {
			node, err := d.node(&group[i])
			if err != nil {
				return nil, errors.Wrapf(err, "group %d, node %d", g, i)
			}
			nodes = append(nodes, node)
		}
		prog = append(prog, nodes)
	}

	return prog, nil
}

// DecodeFile reads a serialized program from path.
func DecodeFile(path string) (Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening program")
	}
	defer f.Close()

	prog, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return prog, nil
}

func (n *yamlNode) kinds() []string {
	var kinds []string
	for _, k := range []struct {
		name string
		set  bool
	}{
		{"qreg", n.QReg != nil},
		{"creg", n.CReg != nil},
		{"gate", n.Gate != nil},
		{"measure", n.Measure != nil},
		{"barrier", n.Barrier != nil},
		{"reset", n.Reset != nil},
		{"opaque", n.Opaque != nil},
		{"gatedef", n.GateDef != nil},
		{"if", n.If != nil},
		{"include", n.Include != nil},
	} {
		if k.set {
			kinds = append(kinds, k.name)
		}
	}
	return kinds
}

func (d *decoder) node(n *yamlNode) (Node, error) {
	if kinds := n.kinds(); len(kinds) > 1 {
		return nil, errors.Errorf("node has more than one kind: %s",
			strings.Join(kinds, ", "))
	}

	switch {
	case n.QReg != nil:
		return QReg{Name: n.QReg.Name, Size: n.QReg.Size}, nil
	case n.CReg != nil:
		d.cregs[n.CReg.Name] = true
		return CReg{Name: n.CReg.Name, Size: n.CReg.Size}, nil
	case n.Gate != nil:
		args, err := d.args(n.Gate.Args)
		if err != nil {
			return nil, err
		}
		return ApplyGate{
			Name:   n.Gate.Name,
			Args:   args,
			Params: n.Gate.Params,
		}, nil
	case n.Measure != nil:
		qubit, err := d.arg(n.Measure.Qubit)
		if err != nil {
			return nil, err
		}
		target, err := d.arg(n.Measure.Target)
		if err != nil {
			return nil, err
		}
		return Measure{Qubit: qubit, Target: target}, nil
	case n.Barrier != nil:
		args, err := d.args(n.Barrier.Args)
		if err != nil {
			return nil, err
		}
		return Barrier{Args: args}, nil
	case n.Reset != nil:
		arg, err := d.arg(*n.Reset)
		if err != nil {
			return nil, err
		}
		return Reset{Arg: arg}, nil
	case n.Opaque != nil:
		return Opaque{
			Name:   n.Opaque.Name,
			Args:   n.Opaque.Args,
			Params: n.Opaque.Params,
		}, nil
	case n.GateDef != nil:
		body := make([]Node, 0, len(n.GateDef.Body))
		for i := range n.GateDef.Body {
			b, err := d.node(&n.GateDef.Body[i])
			if err != nil {
				return nil, errors.Wrapf(err, "gate %s body", n.GateDef.Name)
			}
			body = append(body, b)
		}
		return GateDef{
			Name:   n.GateDef.Name,
			Args:   n.GateDef.Args,
			Params: n.GateDef.Params,
			Body:   body,
		}, nil
	case n.If != nil:
		body, err := d.node(&n.If.Then)
		if err != nil {
			return nil, errors.Wrap(err, "if body")
		}
		return If{Register: n.If.Register, Value: n.If.Value, Body: body}, nil
	case n.Include != nil:
		return Include{Path: *n.Include}, nil
	}

	return nil, errors.New("node has no recognized kind")
}

func (d *decoder) args(texts []string) ([]Argument, error) {
	args := make([]Argument, len(texts))
	for i, t := range texts {
		a, err := d.arg(t)
		if err != nil {
			return nil, err
		}
		args[i] = a
	}
	return args, nil
}

func (d *decoder) arg(text string) (Argument, error) {
	text = strings.TrimSpace(text)

	if m := indexedOperand.FindStringSubmatch(text); m != nil {
		index, err := strconv.Atoi(m[2])
		if err != nil {
			return Argument{}, errors.Wrapf(err, "operand %s", text)
		}
		if d.cregs[m[1]] {
			return Classical(m[1], index), nil
		}
		return Qubit(m[1], index), nil
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return Literal(text), nil
	}

	return Register(text), nil
}
