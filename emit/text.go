// Package emit renders a semantic model as textual QIR.
package emit

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sarchlab/qasm2qir/qir"
)

var intrinsics = map[qir.Kind]string{
	qir.H:           "__quantum__qis__h__body",
	qir.X:           "__quantum__qis__x__body",
	qir.Y:           "__quantum__qis__y__body",
	qir.Z:           "__quantum__qis__z__body",
	qir.S:           "__quantum__qis__s__body",
	qir.SAdj:        "__quantum__qis__s__adj",
	qir.T:           "__quantum__qis__t__body",
	qir.TAdj:        "__quantum__qis__t__adj",
	qir.Reset:       "__quantum__qis__reset__body",
	qir.Rx:          "__quantum__qis__rx__body",
	qir.Ry:          "__quantum__qis__ry__body",
	qir.Rz:          "__quantum__qis__rz__body",
	qir.Cx:          "__quantum__qis__cnot__body",
	qir.Cz:          "__quantum__qis__cz__body",
	qir.M:           "__quantum__qis__m__body",
	qir.DumpMachine: "__quantum__qis__dumpmachine__body",
}

var signatures = map[string]string{
	"__quantum__qis__h__body":                     "void (%Qubit*)",
	"__quantum__qis__x__body":                     "void (%Qubit*)",
	"__quantum__qis__y__body":                     "void (%Qubit*)",
	"__quantum__qis__z__body":                     "void (%Qubit*)",
	"__quantum__qis__s__body":                     "void (%Qubit*)",
	"__quantum__qis__s__adj":                      "void (%Qubit*)",
	"__quantum__qis__t__body":                     "void (%Qubit*)",
	"__quantum__qis__t__adj":                      "void (%Qubit*)",
	"__quantum__qis__reset__body":                 "void (%Qubit*)",
	"__quantum__qis__rx__body":                    "void (double, %Qubit*)",
	"__quantum__qis__ry__body":                    "void (double, %Qubit*)",
	"__quantum__qis__rz__body":                    "void (double, %Qubit*)",
	"__quantum__qis__cnot__body":                  "void (%Qubit*, %Qubit*)",
	"__quantum__qis__cz__body":                    "void (%Qubit*, %Qubit*)",
	"__quantum__qis__m__body":                     "%Result* (%Qubit*)",
	"__quantum__qis__dumpmachine__body":           "void (i8*)",
	"__quantum__rt__qubit_allocate":               "%Qubit* ()",
	"__quantum__rt__qubit_release":                "void (%Qubit*)",
	"__quantum__rt__array_create_1d":              "%Array* (i32, i64)",
	"__quantum__rt__array_get_element_ptr_1d":     "i8* (%Array*, i64)",
	"__quantum__rt__array_update_reference_count": "void (%Array*, i32)",
}

var (
	unsafeSymbol = regexp.MustCompile(`[^A-Za-z0-9_.]`)
	// Register names must not contain '.', which keeps them apart from the
	// res.N measurement results.
	registerSymbol = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// TextEmitter renders models as LLVM assembly using the QIR runtime and QIS
// intrinsics. Each quantum entry becomes an allocated qubit, each classical
// entry a result array.
type TextEmitter struct {
	// EntryPoint overrides the name of the generated function. The model
	// name is used when empty.
	EntryPoint string
}

// NewTextEmitter creates a TextEmitter.
func NewTextEmitter() *TextEmitter {
	return &TextEmitter{}
}

// IRString renders the model.
func (e *TextEmitter) IRString(m *qir.SemanticModel) (string, error) {
	w := &writer{
		model:    m,
		declared: make(map[string]bool),
	}

	body, err := w.body()
	if err != nil {
		return "", &EmissionError{Op: "render", Err: err}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "; ModuleID = '%s'\n", m.Name)
	fmt.Fprintf(&b, "source_filename = \"%s\"\n\n", m.Name)
	b.WriteString("%Qubit = type opaque\n")
	b.WriteString("%Result = type opaque\n")
	b.WriteString("%Array = type opaque\n\n")
	fmt.Fprintf(&b, "define void @%s() #0 {\n", e.entryPoint(m))
	b.WriteString("entry:\n")
	b.WriteString(body)
	b.WriteString("  ret void\n")
	b.WriteString("}\n")

	names := make([]string, 0, len(w.declared))
	for n := range w.declared {
		names = append(names, n)
	}
	sort.Strings(names)
	if len(names) > 0 {
		b.WriteString("\n")
	}
	for _, n := range names {
		sig := signatures[n]
		ret, params, _ := strings.Cut(sig, " ")
		fmt.Fprintf(&b, "declare %s @%s%s\n", ret, n, params)
	}

	b.WriteString("\nattributes #0 = { \"EntryPoint\" }\n")

	return b.String(), nil
}

// WriteFile renders the model and writes it to path.
func (e *TextEmitter) WriteFile(m *qir.SemanticModel, path string) error {
	ir, err := e.IRString(m)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(ir), 0o644); err != nil {
		return &EmissionError{Op: "write", Path: path, Err: errors.WithStack(err)}
	}
	return nil
}

func (e *TextEmitter) entryPoint(m *qir.SemanticModel) string {
	name := e.EntryPoint
	if name == "" {
		name = m.Name
	}
	name = unsafeSymbol.ReplaceAllString(name, "_")
	if name == "" {
		return "main"
	}
	return name
}

type writer struct {
	model    *qir.SemanticModel
	declared map[string]bool
	lines    []string
	results  int
}

func (w *writer) emit(format string, args ...any) {
	w.lines = append(w.lines, "  "+fmt.Sprintf(format, args...))
}

func (w *writer) call(fn string, args ...string) {
	w.declared[fn] = true
	w.emit("call void @%s(%s)", fn, strings.Join(args, ", "))
}

func (w *writer) body() (string, error) {
	for _, r := range w.model.Registers() {
		if err := w.allocate(r); err != nil {
			return "", err
		}
	}

	for _, inst := range w.model.Instructions() {
		if err := w.instruction(inst); err != nil {
			return "", err
		}
	}

	for _, r := range w.model.Registers() {
		w.release(r)
	}

	if len(w.lines) == 0 {
		return "", nil
	}
	return strings.Join(w.lines, "\n") + "\n", nil
}

func (w *writer) allocate(r qir.Register) error {
	if !registerSymbol.MatchString(r.Name) {
		return errors.Errorf("register name %q is not a valid symbol", r.Name)
	}

	switch r.Kind {
	case qir.Quantum:
		w.declared["__quantum__rt__qubit_allocate"] = true
		w.emit("%%%s = call %%Qubit* @__quantum__rt__qubit_allocate()", r.QIRName())
	case qir.Classical:
		if r.Size < 0 {
			return errors.Errorf("classical register %s has negative size %d", r.Name, r.Size)
		}
		w.declared["__quantum__rt__array_create_1d"] = true
		w.emit("%%%s = call %%Array* @__quantum__rt__array_create_1d(i32 8, i64 %d)",
			r.QIRName(), r.Size)
	}

	return nil
}

func (w *writer) release(r qir.Register) {
	switch r.Kind {
	case qir.Quantum:
		w.call("__quantum__rt__qubit_release", w.qubitOperand(r.QIRName()))
	case qir.Classical:
		w.call("__quantum__rt__array_update_reference_count",
			"%Array* %"+r.QIRName(), "i32 -1")
	}
}

func (w *writer) qubitOperand(name string) string {
	return "%Qubit* %" + name
}

func (w *writer) qubit(ref qir.RegisterRef) (string, error) {
	name := ref.QIRName()
	r, ok := w.model.Lookup(name)
	if !ok || r.Kind != qir.Quantum {
		return "", errors.Errorf("qubit %s is not declared", ref)
	}
	return w.qubitOperand(name), nil
}

func (w *writer) instruction(inst qir.Instruction) error {
	fn, ok := intrinsics[inst.Kind()]
	if !ok {
		return errors.Errorf("no intrinsic for %s", inst.Kind())
	}

	switch i := inst.(type) {
	case qir.Single:
		q, err := w.qubit(i.Qubit)
		if err != nil {
			return err
		}
		w.call(fn, q)
	case qir.Rotated:
		q, err := w.qubit(i.Qubit)
		if err != nil {
			return err
		}
		w.call(fn, "double "+formatDouble(i.Theta), q)
	case qir.Controlled:
		c, err := w.qubit(i.Control)
		if err != nil {
			return err
		}
		t, err := w.qubit(i.Target)
		if err != nil {
			return err
		}
		w.call(fn, c, t)
	case qir.Measured:
		return w.measure(fn, i)
	case qir.Dump:
		w.call(fn, "i8* null")
	default:
		return errors.Errorf("cannot render %T", inst)
	}

	return nil
}

func (w *writer) measure(fn string, m qir.Measured) error {
	q, err := w.qubit(m.Qubit)
	if err != nil {
		return err
	}

	reg, ok := w.model.Lookup(m.Target.Namespace)
	if !ok || reg.Kind != qir.Classical {
		return errors.Errorf("classical register %s is not declared", m.Target.Namespace)
	}
	if m.Target.Index < 0 || m.Target.Index >= reg.Size {
		return errors.Errorf("bit %s is outside register %s of size %d",
			m.Target, reg.Name, reg.Size)
	}

	res := fmt.Sprintf("res.%d", w.results)
	w.results++

	w.declared[fn] = true
	w.declared["__quantum__rt__array_get_element_ptr_1d"] = true
	w.emit("%%%s = call %%Result* @%s(%s)", res, fn, q)
	w.emit("%%%s.slot = call i8* @__quantum__rt__array_get_element_ptr_1d(%%Array* %%%s, i64 %d)",
		res, reg.QIRName(), m.Target.Index)
	w.emit("%%%s.ptr = bitcast i8* %%%s.slot to %%Result**", res, res)
	w.emit("store %%Result* %%%s, %%Result** %%%s.ptr", res, res)

	return nil
}

// formatDouble writes the exact bit pattern, which LLVM accepts for every
// double value.
func formatDouble(f float64) string {
	return fmt.Sprintf("0x%016X", math.Float64bits(f))
}
