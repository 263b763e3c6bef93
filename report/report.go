// Package report summarizes a translation for humans.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/sarchlab/qasm2qir/api"
	"github.com/sarchlab/qasm2qir/core"
	"github.com/sarchlab/qasm2qir/qir"
)

// TranslationReport is a snapshot of a driver after translation.
type TranslationReport struct {
	Name         string
	Registers    []qir.Register
	Instructions []qir.Instruction
	Diagnostics  core.Diagnostics
	Stats        *Collector
}

// GenerateReport captures the driver state. stats may be nil.
func GenerateReport(d api.Driver, stats *Collector) *TranslationReport {
	m := d.Model()
	return &TranslationReport{
		Name:         d.Name(),
		Registers:    m.Registers(),
		Instructions: m.Instructions(),
		Diagnostics:  d.Diagnostics(),
		Stats:        stats,
	}
}

// OK reports whether every statement translated.
func (r *TranslationReport) OK() bool {
	return len(r.Diagnostics) == 0
}

// WriteReport writes a formatted report to a writer.
func (r *TranslationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "TRANSLATION REPORT: %s\n", r.Name)
	fmt.Fprintln(w, separator)

	fmt.Fprintln(w, r.registerTable())
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.instructionTable())
	fmt.Fprintln(w)

	if r.Stats != nil {
		fmt.Fprintln(w, r.statsTable())
		fmt.Fprintln(w)
	}

	if r.OK() {
		fmt.Fprintln(w, "✓ No diagnostics")
	} else {
		fmt.Fprintln(w, r.diagnosticTable())
	}

	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Registers: %d, Instructions: %d, Diagnostics: %d\n",
		len(r.Registers), len(r.Instructions), len(r.Diagnostics))
}

func (r *TranslationReport) registerTable() string {
	t := table.NewWriter()
	t.SetTitle("Registers")
	t.AppendHeader(table.Row{"#", "Name", "Kind", "Size"})
	for i, reg := range r.Registers {
		t.AppendRow(table.Row{i, reg.QIRName(), reg.Kind, reg.Size})
	}
	return t.Render()
}

func (r *TranslationReport) instructionTable() string {
	t := table.NewWriter()
	t.SetTitle("Instructions")
	t.AppendHeader(table.Row{"#", "Kind", "Operands", "Text"})
	for i, inst := range r.Instructions {
		ops := make([]string, 0, 2)
		for _, ref := range inst.Operands() {
			ops = append(ops, ref.QIRName())
		}
		t.AppendRow(table.Row{i, inst.Kind(), strings.Join(ops, ", "), inst.String()})
	}
	return t.Render()
}

func (r *TranslationReport) statsTable() string {
	t := table.NewWriter()
	t.SetTitle("Statistics")
	t.AppendHeader(table.Row{"Counter", "Value"})
	t.AppendRow(table.Row{"Nodes", r.Stats.Nodes})
	t.AppendRow(table.Row{"Failed", r.Stats.Failed})

	nodeKinds := make([]string, 0, len(r.Stats.ByNode))
	for k := range r.Stats.ByNode {
		nodeKinds = append(nodeKinds, k)
	}
	sort.Strings(nodeKinds)
	for _, k := range nodeKinds {
		t.AppendRow(table.Row{"node:" + k, r.Stats.ByNode[k]})
	}

	instKinds := make([]string, 0, len(r.Stats.ByKind))
	for k := range r.Stats.ByKind {
		instKinds = append(instKinds, string(k))
	}
	sort.Strings(instKinds)
	for _, k := range instKinds {
		t.AppendRow(table.Row{"inst:" + k, r.Stats.ByKind[qir.Kind(k)]})
	}

	return t.Render()
}

func (r *TranslationReport) diagnosticTable() string {
	t := table.NewWriter()
	t.SetTitle(fmt.Sprintf("Diagnostics (%d)", len(r.Diagnostics)))
	t.AppendHeader(table.Row{"Group", "Node", "Statement", "Error"})
	for _, d := range r.Diagnostics {
		t.AppendRow(table.Row{d.Group, d.Node, d.Statement, d.Err})
	}
	return t.Render()
}

// SaveReportToFile writes the report to filename.
func (r *TranslationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "failed to create report file")
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}
