package main

import (
	"flag"
	"fmt"

	"github.com/sarchlab/qasm2qir/api"
	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/qir"
	"github.com/tebeka/atexit"
)

// ghz builds an n-qubit GHZ circuit with a final rotation on the last qubit.
func ghz(n int) ast.Program {
	decls := []ast.Node{
		ast.QReg{Name: "q", Size: n},
		ast.CReg{Name: "c", Size: n},
	}

	body := []ast.Node{
		ast.ApplyGate{Name: "h", Args: []ast.Argument{ast.Qubit("q", 0)}},
	}
	for i := 1; i < n; i++ {
		body = append(body, ast.ApplyGate{
			Name: "cx",
			Args: []ast.Argument{ast.Qubit("q", i-1), ast.Qubit("q", i)},
		})
	}
	body = append(body,
		ast.ApplyGate{
			Name:   "rz",
			Params: []string{"pi/4"},
			Args:   []ast.Argument{ast.Qubit("q", n-1)},
		},
		ast.ApplyGate{Name: "dump_machine"},
	)
	for i := 0; i < n; i++ {
		body = append(body, ast.Measure{
			Qubit:  ast.Qubit("q", i),
			Target: ast.Classical("c", i),
		})
	}

	return ast.Program{decls, body}
}

func main() {
	n := flag.Int("n", 4, "number of qubits")
	flag.Parse()

	if *n < 1 {
		atexit.Fatalf("need at least one qubit, got %d", *n)
	}

	driver := api.DriverBuilder{}.
		WithErrorPolicy(api.AbortOnFirstError).
		WithRegisterPolicy(qir.RejectCollisions).
		Build(fmt.Sprintf("ghz%d", *n))

	if err := driver.Translate(ghz(*n)); err != nil {
		atexit.Fatalf("%v", err)
	}

	ir, err := driver.GetIRString()
	if err != nil {
		atexit.Fatalf("%v", err)
	}
	fmt.Print(ir)

	atexit.Exit(0)
}
