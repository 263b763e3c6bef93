package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/sarchlab/qasm2qir/api"
	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/report"
	"github.com/tebeka/atexit"
)

//go:embed bell.yaml
var bellProgram string

func main() {
	program, err := ast.Decode(strings.NewReader(bellProgram))
	if err != nil {
		atexit.Fatalf("%v", err)
	}

	stats := report.NewCollector()
	driver := api.DriverBuilder{}.
		WithHook(stats).
		Build("bell")

	if err := driver.Translate(program); err != nil {
		atexit.Fatalf("%v", err)
	}

	ir, err := driver.GetIRString()
	if err != nil {
		atexit.Fatalf("%v", err)
	}
	fmt.Print(ir)

	report.GenerateReport(driver, stats).WriteReport(os.Stderr)

	atexit.Exit(0)
}
