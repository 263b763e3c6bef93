// Command qasm2qir translates a serialized OpenQASM AST into QIR.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/config"
	"github.com/sarchlab/qasm2qir/core"
	"github.com/sarchlab/qasm2qir/report"
	"github.com/sarchlab/qasm2qir/verify"
	"github.com/tebeka/atexit"
)

func main() {
	astPath := flag.String("ast", "", "serialized AST to translate (YAML)")
	cfgPath := flag.String("config", "", "translator configuration (YAML)")
	output := flag.String("o", "", "output file, - for stdout (overrides the config)")
	reportPath := flag.String("report", "", "write a translation report to this file")
	lint := flag.Bool("lint", false, "check the program statically and stop")
	verbose := flag.Bool("v", false, "trace every register and instruction")
	flag.Parse()

	setupLogging(*verbose)

	if *astPath == "" {
		flag.Usage()
		atexit.Exit(2)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		cfg, err = config.Load(*cfgPath)
		if err != nil {
			atexit.Fatalf("Failed to load config: %v", err)
		}
	}
	if *output != "" {
		cfg.Output = *output
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(*astPath), filepath.Ext(*astPath))
	}

	program, err := ast.DecodeFile(*astPath)
	if err != nil {
		atexit.Fatalf("Failed to load program: %v", err)
	}

	if *lint {
		runLint(cfg, program, *reportPath)
	}

	builder, err := cfg.DriverBuilder()
	if err != nil {
		atexit.Fatalf("Invalid config: %v", err)
	}

	stats := report.NewCollector()
	driver := builder.WithHook(stats).Build(cfg.Name)

	translateErr := driver.Translate(program)

	rep := report.GenerateReport(driver, stats)
	if *reportPath != "" {
		if err := rep.SaveReportToFile(*reportPath); err != nil {
			atexit.Fatalf("Failed to save report: %v", err)
		}
	} else if translateErr != nil {
		rep.WriteReport(os.Stderr)
	}

	if translateErr != nil {
		atexit.Fatalf("Translation of %s failed with %d diagnostics",
			*astPath, len(driver.Diagnostics()))
	}

	if cfg.Output == "" || cfg.Output == "-" {
		ir, err := driver.GetIRString()
		if err != nil {
			atexit.Fatalf("%v", err)
		}
		fmt.Print(ir)
	} else if err := driver.WriteModelToFile(cfg.Output); err != nil {
		atexit.Fatalf("%v", err)
	}

	atexit.Exit(0)
}

func runLint(cfg config.Config, program ast.Program, reportPath string) {
	gates, err := cfg.GateTable()
	if err != nil {
		atexit.Fatalf("Invalid config: %v", err)
	}

	rep := verify.GenerateReport(program, gates)
	if reportPath != "" {
		if err := rep.SaveReportToFile(reportPath); err != nil {
			atexit.Fatalf("Failed to save report: %v", err)
		}
	} else {
		rep.WriteReport(os.Stdout)
	}

	if !rep.OK() {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = core.LevelTrace
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
