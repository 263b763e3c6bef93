package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/core"
)

// LintReport groups the issues of one program by type.
type LintReport struct {
	NodeCount    int
	Issues       []Issue
	StructIssues []Issue
	ScopeIssues  []Issue
	GateIssues   []Issue
}

// GenerateReport lints the program and sorts the issues.
func GenerateReport(program ast.Program, gates *core.GateTable) *LintReport {
	report := &LintReport{
		NodeCount: program.NumNodes(),
		Issues:    RunLint(program, gates),
	}

	for _, issue := range report.Issues {
		switch issue.Type {
		case IssueStruct:
			report.StructIssues = append(report.StructIssues, issue)
		case IssueScope:
			report.ScopeIssues = append(report.ScopeIssues, issue)
		case IssueGate:
			report.GateIssues = append(report.GateIssues, issue)
		}
	}

	return report
}

// OK reports whether the program is free of issues.
func (r *LintReport) OK() bool {
	return len(r.Issues) == 0
}

// WriteReport writes a formatted report to a writer
func (r *LintReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)
	dash := strings.Repeat("-", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "LINT REPORT")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Statements checked: %d\n", r.NodeCount)
	fmt.Fprintln(w, dash)

	if r.OK() {
		fmt.Fprintln(w, "✓ No issues found")
		fmt.Fprintln(w, separator)
		return
	}

	sections := []struct {
		title  string
		issues []Issue
	}{
		{"Declaration issues", r.StructIssues},
		{"Scope issues", r.ScopeIssues},
		{"Gate issues", r.GateIssues},
	}
	for _, s := range sections {
		if len(s.issues) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s (%d):\n", s.title, len(s.issues))
		for _, issue := range s.issues {
			fmt.Fprintf(w, "  ✗ %s\n", issue)
		}
		fmt.Fprintln(w, dash)
	}

	fmt.Fprintf(w, "Total: %d issues\n", len(r.Issues))
	fmt.Fprintln(w, separator)
}

// SaveReportToFile writes the report to filename.
func (r *LintReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create report file")
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
