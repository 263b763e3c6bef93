package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qasm2qir/ast"
	"github.com/sarchlab/qasm2qir/core"
	"github.com/sarchlab/qasm2qir/qir"
)

var _ = Describe("Dispatcher", func() {
	var (
		model      *qir.SemanticModel
		dispatcher *core.Dispatcher
	)

	BeforeEach(func() {
		model = qir.NewSemanticModel("test")
		dispatcher = core.NewDispatcher(model, nil)
	})

	It("should expand a quantum register into one entry per qubit", func() {
		Expect(dispatcher.Dispatch(ast.QReg{Name: "q", Size: 3})).To(Succeed())

		names := []string{}
		for _, r := range model.Registers() {
			Expect(r.Kind).To(Equal(qir.Quantum))
			names = append(names, r.QIRName())
		}
		Expect(names).To(Equal([]string{"q0", "q1", "q2"}))
	})

	It("should register a classical register as one aggregate entry", func() {
		Expect(dispatcher.Dispatch(ast.CReg{Name: "c", Size: 3})).To(Succeed())

		Expect(model.Registers()).To(Equal([]qir.Register{
			{Kind: qir.Classical, Name: "c", Size: 3},
		}))
	})

	DescribeTable("negative register sizes are rejected",
		func(node ast.Node) {
			err := dispatcher.Dispatch(node)

			Expect(err).To(BeAssignableToTypeOf(&core.TypeMismatchError{}))
			Expect(err.Error()).To(ContainSubstring("negative size"))
			Expect(model.NumRegisters()).To(BeZero())
		},
		Entry("qreg", ast.QReg{Name: "q", Size: -2}),
		Entry("creg", ast.CReg{Name: "c", Size: -3}),
	)

	It("should accept an empty quantum register", func() {
		Expect(dispatcher.Dispatch(ast.QReg{Name: "q", Size: 0})).To(Succeed())
		Expect(model.NumRegisters()).To(BeZero())
	})

	DescribeTable("single-qubit gates",
		func(gate string, kind qir.Kind) {
			before := model.NumInstructions()

			err := dispatcher.Dispatch(ast.ApplyGate{
				Name: gate,
				Args: []ast.Argument{ast.Qubit("q", 1)},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(model.NumInstructions()).To(Equal(before + 1))
			Expect(model.Instruction(before)).
				To(Equal(qir.NewSingle(kind, qir.Ref("q", 1))))
		},
		Entry("h", "h", qir.H),
		Entry("x", "x", qir.X),
		Entry("y", "y", qir.Y),
		Entry("z", "z", qir.Z),
		Entry("s", "s", qir.S),
		Entry("sdg", "sdg", qir.SAdj),
		Entry("t", "t", qir.T),
		Entry("tdg", "tdg", qir.TAdj),
		Entry("reset", "reset", qir.Reset),
		Entry("s_adj alias", "s_adj", qir.SAdj),
		Entry("t_adj alias", "t_adj", qir.TAdj),
	)

	DescribeTable("rotations take the angle from the parameters",
		func(gate string, kind qir.Kind) {
			err := dispatcher.ApplyGate(gate,
				[]ast.Argument{ast.Qubit("q", 0)}, []string{"0.5"})

			Expect(err).NotTo(HaveOccurred())
			Expect(model.Instructions()).To(Equal([]qir.Instruction{
				qir.NewRotated(kind, 0.5, qir.Ref("q", 0)),
			}))
		},
		Entry("rx", "rx", qir.Rx),
		Entry("ry", "ry", qir.Ry),
		Entry("rz", "rz", qir.Rz),
	)

	It("should keep control and target order", func() {
		a := ast.Qubit("q", 0)
		b := ast.Qubit("q", 1)

		Expect(dispatcher.ApplyGate("cx", []ast.Argument{a, b}, nil)).To(Succeed())
		Expect(dispatcher.ApplyGate("cx", []ast.Argument{b, a}, nil)).To(Succeed())
		Expect(dispatcher.ApplyGate("cz", []ast.Argument{a, b}, nil)).To(Succeed())

		insts := model.Instructions()
		Expect(insts[0]).To(Equal(qir.NewControlled(qir.Cx, qir.Ref("q", 0), qir.Ref("q", 1))))
		Expect(insts[1]).To(Equal(qir.NewControlled(qir.Cx, qir.Ref("q", 1), qir.Ref("q", 0))))
		Expect(insts[0]).NotTo(Equal(insts[1]))
		Expect(insts[2].Kind()).To(Equal(qir.Cz))
	})

	It("should accept the upper-case CX spelling", func() {
		Expect(dispatcher.ApplyGate("CX",
			[]ast.Argument{ast.Qubit("q", 0), ast.Qubit("q", 1)}, nil)).To(Succeed())
		Expect(model.Instruction(0).Kind()).To(Equal(qir.Cx))
	})

	It("should lower dump_machine without operands", func() {
		Expect(dispatcher.ApplyGate("dump_machine", nil, nil)).To(Succeed())
		Expect(model.Instructions()).To(Equal([]qir.Instruction{qir.Dump{}}))
	})

	It("should lower a measurement", func() {
		err := dispatcher.Dispatch(ast.Measure{
			Qubit:  ast.Qubit("q", 1),
			Target: ast.Classical("c", 0),
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(model.Instructions()).To(Equal([]qir.Instruction{
			qir.NewMeasured(qir.Ref("q", 1), qir.Ref("c", 0)),
		}))
	})

	It("should reject a measurement of a classical bit", func() {
		err := dispatcher.Measure(ast.Classical("c", 0), ast.Classical("c", 1))

		var mismatch *core.TypeMismatchError
		Expect(err).To(BeAssignableToTypeOf(mismatch))
		Expect(model.NumInstructions()).To(BeZero())
	})

	DescribeTable("arity mismatches append nothing",
		func(gate string, args []ast.Argument, params []string, what string) {
			err := dispatcher.ApplyGate(gate, args, params)

			var arity *core.ArityMismatchError
			Expect(err).To(BeAssignableToTypeOf(arity))
			Expect(err.(*core.ArityMismatchError).What).To(Equal(what))
			Expect(model.NumInstructions()).To(BeZero())
		},
		Entry("h with two qubits", "h",
			[]ast.Argument{ast.Qubit("q", 0), ast.Qubit("q", 1)}, nil, "argument"),
		Entry("cx with one qubit", "cx",
			[]ast.Argument{ast.Qubit("q", 0)}, nil, "argument"),
		Entry("dump_machine with a qubit", "dump_machine",
			[]ast.Argument{ast.Qubit("q", 0)}, nil, "argument"),
		Entry("rx without angle", "rx",
			[]ast.Argument{ast.Qubit("q", 0)}, nil, "parameter"),
		Entry("h with an angle", "h",
			[]ast.Argument{ast.Qubit("q", 0)}, []string{"pi"}, "parameter"),
	)

	It("should report a literal operand as a type mismatch", func() {
		err := dispatcher.ApplyGate("x", []ast.Argument{ast.Literal("1")}, nil)

		Expect(err).To(BeAssignableToTypeOf(&core.TypeMismatchError{}))
		Expect(model.NumInstructions()).To(BeZero())
	})

	It("should report an unparsable angle as a type mismatch", func() {
		err := dispatcher.ApplyGate("rz", []ast.Argument{ast.Qubit("q", 0)}, []string{"theta"})

		Expect(err).To(BeAssignableToTypeOf(&core.TypeMismatchError{}))
		Expect(model.NumInstructions()).To(BeZero())
	})

	Context("unknown gates", func() {
		It("should report them by default", func() {
			err := dispatcher.ApplyGate("ccx", []ast.Argument{
				ast.Qubit("q", 0), ast.Qubit("q", 1), ast.Qubit("q", 2),
			}, nil)

			Expect(err).To(Equal(&core.UnsupportedGateError{Name: "ccx"}))
			Expect(model.NumInstructions()).To(BeZero())
		})

		It("should drop them when gates are lenient", func() {
			dispatcher.StrictGates = false

			Expect(dispatcher.ApplyGate("ccx", nil, nil)).To(Succeed())
			Expect(model.NumInstructions()).To(BeZero())
		})
	})

	Context("other statements", func() {
		others := []ast.Node{
			ast.Barrier{Args: []ast.Argument{ast.Register("q")}},
			ast.Reset{Arg: ast.Qubit("q", 0)},
			ast.Include{Path: "qelib1.inc"},
			ast.Opaque{Name: "magic", Args: []string{"a"}},
			ast.GateDef{Name: "bell", Args: []string{"a", "b"}},
			ast.If{Register: "c", Value: 1, Body: ast.ApplyGate{Name: "x"}},
		}

		BeforeEach(func() {
			Expect(dispatcher.Dispatch(ast.QReg{Name: "q", Size: 1})).To(Succeed())
			Expect(dispatcher.ApplyGate("h", []ast.Argument{ast.Qubit("q", 0)}, nil)).To(Succeed())
		})

		It("should skip them by default", func() {
			regs := model.Registers()
			insts := model.Instructions()

			for _, n := range others {
				Expect(dispatcher.Dispatch(n)).To(Succeed())
			}

			Expect(model.Registers()).To(Equal(regs))
			Expect(model.Instructions()).To(Equal(insts))
		})

		It("should report them when nodes are strict", func() {
			dispatcher.StrictNodes = true

			for _, n := range others {
				Expect(dispatcher.Dispatch(n)).
					To(Equal(&core.UnsupportedNodeError{Kind: n.Kind()}))
			}
			Expect(model.NumInstructions()).To(Equal(1))
		})
	})

	It("should reject a redeclared register without registering any of it", func() {
		Expect(dispatcher.AddQuantumRegister("q", 2)).To(Succeed())

		err := dispatcher.AddQuantumRegister("q", 4)

		Expect(err).To(BeAssignableToTypeOf(&qir.NameCollisionError{}))
		Expect(model.NumRegisters()).To(Equal(2))
	})
})
