package emit_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qasm2qir/emit"
	"github.com/sarchlab/qasm2qir/qir"
)

var _ = Describe("TextEmitter", func() {
	var (
		m       *qir.SemanticModel
		emitter *emit.TextEmitter
	)

	declareQubits := func(name string, n int) {
		for i := 0; i < n; i++ {
			Expect(m.AddReg(qir.QuantumRegister{Name: name, Index: i}.AsRegister())).
				To(Succeed())
		}
	}

	countCalls := func(ir, fn string) int {
		return strings.Count(ir, "@"+fn+"(")
	}

	BeforeEach(func() {
		m = qir.NewSemanticModel("bell")
		emitter = emit.NewTextEmitter()
	})

	It("should render an empty model", func() {
		ir, err := emitter.IRString(m)

		Expect(err).NotTo(HaveOccurred())
		Expect(ir).To(HavePrefix("; ModuleID = 'bell'\n"))
		Expect(ir).To(ContainSubstring("define void @bell() #0 {\nentry:\n  ret void\n}"))
		Expect(ir).NotTo(ContainSubstring("declare"))
		Expect(ir).To(ContainSubstring(`attributes #0 = { "EntryPoint" }`))
	})

	It("should emit one call per instruction in order", func() {
		declareQubits("q", 2)
		Expect(m.AddReg(qir.ClassicalRegister{Name: "c", Size: 2}.AsRegister())).To(Succeed())
		m.AddInst(qir.NewSingle(qir.H, qir.Ref("q", 0)))
		m.AddInst(qir.NewControlled(qir.Cx, qir.Ref("q", 0), qir.Ref("q", 1)))
		m.AddInst(qir.NewRotated(qir.Rz, math.Pi, qir.Ref("q", 1)))
		m.AddInst(qir.NewMeasured(qir.Ref("q", 1), qir.Ref("c", 1)))

		ir, err := emitter.IRString(m)

		Expect(err).NotTo(HaveOccurred())
		Expect(countCalls(ir, "__quantum__rt__qubit_allocate")).To(Equal(2))
		Expect(countCalls(ir, "__quantum__rt__array_create_1d")).To(Equal(1))
		Expect(countCalls(ir, "__quantum__qis__h__body")).To(Equal(1))
		Expect(countCalls(ir, "__quantum__qis__cnot__body")).To(Equal(1))
		Expect(countCalls(ir, "__quantum__qis__rz__body")).To(Equal(1))
		Expect(countCalls(ir, "__quantum__qis__m__body")).To(Equal(1))
		Expect(countCalls(ir, "__quantum__rt__qubit_release")).To(Equal(2))

		Expect(ir).To(ContainSubstring(
			"call void @__quantum__qis__cnot__body(%Qubit* %q0, %Qubit* %q1)"))
		Expect(ir).To(ContainSubstring(
			"call void @__quantum__qis__rz__body(double 0x400921FB54442D18, %Qubit* %q1)"))
		Expect(ir).To(ContainSubstring(
			"@__quantum__rt__array_get_element_ptr_1d(%Array* %c, i64 1)"))
		Expect(strings.Index(ir, "__quantum__qis__h__body(")).
			To(BeNumerically("<", strings.Index(ir, "__quantum__qis__cnot__body(")))

		Expect(ir).To(ContainSubstring("declare void @__quantum__qis__h__body(%Qubit*)"))
		Expect(ir).To(ContainSubstring("declare %Result* @__quantum__qis__m__body(%Qubit*)"))
		Expect(ir).NotTo(ContainSubstring("declare void @__quantum__qis__x__body"))
	})

	It("should use the configured entry point", func() {
		emitter.EntryPoint = "my-circuit"

		ir, err := emitter.IRString(m)

		Expect(err).NotTo(HaveOccurred())
		Expect(ir).To(ContainSubstring("define void @my_circuit() #0"))
	})

	It("should refuse an undeclared qubit", func() {
		m.AddInst(qir.NewSingle(qir.X, qir.Ref("q", 0)))

		_, err := emitter.IRString(m)

		var emission *emit.EmissionError
		Expect(errors.As(err, &emission)).To(BeTrue())
		Expect(emission.Op).To(Equal("render"))
		Expect(err.Error()).To(ContainSubstring("q[0]"))
	})

	It("should refuse a bit outside its register", func() {
		declareQubits("q", 1)
		Expect(m.AddReg(qir.ClassicalRegister{Name: "c", Size: 1}.AsRegister())).To(Succeed())
		m.AddInst(qir.NewMeasured(qir.Ref("q", 0), qir.Ref("c", 3)))

		_, err := emitter.IRString(m)

		Expect(err).To(BeAssignableToTypeOf(&emit.EmissionError{}))
	})

	DescribeTable("registers that cannot become symbols",
		func(reg qir.Register, want string) {
			Expect(m.AddReg(reg)).To(Succeed())

			_, err := emitter.IRString(m)

			var emission *emit.EmissionError
			Expect(errors.As(err, &emission)).To(BeTrue())
			Expect(emission.Op).To(Equal("render"))
			Expect(err.Error()).To(ContainSubstring(want))
		},
		Entry("negative size",
			qir.ClassicalRegister{Name: "c", Size: -3}.AsRegister(), "negative size"),
		Entry("name shaped like a result",
			qir.ClassicalRegister{Name: "res.0", Size: 1}.AsRegister(), `"res.0"`),
		Entry("name with spaces",
			qir.QuantumRegister{Name: "my q", Index: 0}.AsRegister(), `"my q"`),
		Entry("name starting with a digit",
			qir.ClassicalRegister{Name: "0c", Size: 1}.AsRegister(), `"0c"`),
	)

	Context("writing files", func() {
		It("should write the rendering to disk", func() {
			declareQubits("q", 1)
			m.AddInst(qir.NewSingle(qir.H, qir.Ref("q", 0)))
			path := filepath.Join(GinkgoT().TempDir(), "bell.ll")

			Expect(emitter.WriteFile(m, path)).To(Succeed())

			content, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			ir, _ := emitter.IRString(m)
			Expect(string(content)).To(Equal(ir))
		})

		It("should report a path that cannot be written", func() {
			path := filepath.Join(GinkgoT().TempDir(), "missing", "bell.ll")

			err := emitter.WriteFile(m, path)

			var emission *emit.EmissionError
			Expect(errors.As(err, &emission)).To(BeTrue())
			Expect(emission.Op).To(Equal("write"))
			Expect(emission.Path).To(Equal(path))
			Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		})
	})
})
