package qir_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qasm2qir/qir"
)

var _ = Describe("RegisterRef", func() {
	It("should concatenate namespace and index", func() {
		Expect(qir.Ref("q", 2).QIRName()).To(Equal("q2"))
		Expect(qir.Ref("anc", 10).QIRName()).To(Equal("anc10"))
		Expect(qir.Ref("q", 2).QIRName()).To(Equal(qir.Ref("q", 2).QIRName()))
	})
})

var _ = Describe("SemanticModel", func() {
	var m *qir.SemanticModel

	q := func(name string, index int) qir.Register {
		return qir.QuantumRegister{Name: name, Index: index}.AsRegister()
	}
	c := func(name string, size int) qir.Register {
		return qir.ClassicalRegister{Name: name, Size: size}.AsRegister()
	}

	BeforeEach(func() {
		m = qir.NewSemanticModel("unit")
	})

	It("should start empty", func() {
		Expect(m.Name).To(Equal("unit"))
		Expect(m.NumRegisters()).To(BeZero())
		Expect(m.NumInstructions()).To(BeZero())
		Expect(m.RegisterPolicy()).To(Equal(qir.RejectCollisions))
	})

	It("should keep registration and instruction order", func() {
		Expect(m.AddRegs(q("q", 0), q("q", 1))).To(Succeed())
		Expect(m.AddReg(c("c", 2))).To(Succeed())
		m.AddInst(qir.NewSingle(qir.H, qir.Ref("q", 0)))
		m.AddInst(qir.NewMeasured(qir.Ref("q", 0), qir.Ref("c", 1)))

		Expect(m.Registers()).To(Equal([]qir.Register{q("q", 0), q("q", 1), c("c", 2)}))
		Expect(m.QuantumRegisters()).To(HaveLen(2))
		Expect(m.ClassicalRegisters()).To(Equal([]qir.Register{c("c", 2)}))
		Expect(m.Instruction(1).Kind()).To(Equal(qir.M))
	})

	It("should hand out copies", func() {
		Expect(m.AddReg(q("q", 0))).To(Succeed())
		m.AddInst(qir.Dump{})

		regs := m.Registers()
		regs[0].Name = "changed"
		insts := m.Instructions()
		insts[0] = qir.NewSingle(qir.X, qir.Ref("q", 0))

		Expect(m.Registers()[0].Name).To(Equal("q"))
		Expect(m.Instruction(0)).To(Equal(qir.Dump{}))
	})

	It("should refuse empty names", func() {
		Expect(m.AddReg(c("", 1))).To(MatchError(qir.ErrEmptyRegisterName))
		Expect(m.NumRegisters()).To(BeZero())
	})

	Context("when rejecting collisions", func() {
		It("should reject a duplicate declaration", func() {
			Expect(m.AddReg(c("c", 1))).To(Succeed())

			err := m.AddReg(c("c", 4))

			var collision *qir.NameCollisionError
			Expect(errors.As(err, &collision)).To(BeTrue())
			Expect(collision.Name).To(Equal("c"))
			Expect(collision.Existing.Size).To(Equal(1))
			Expect(collision.Incoming.Size).To(Equal(4))
		})

		It("should reject a clash between different registers", func() {
			Expect(m.AddRegs(q("q", 0), q("q", 1))).To(Succeed())

			err := m.AddReg(c("q1", 1))

			Expect(err).To(BeAssignableToTypeOf(&qir.NameCollisionError{}))
			Expect(err.Error()).To(ContainSubstring(`"q1"`))
			Expect(m.NumRegisters()).To(Equal(2))
		})

		It("should register nothing of a failing batch", func() {
			Expect(m.AddReg(c("r1", 1))).To(Succeed())

			err := m.AddRegs(q("r", 0), q("r", 1), q("r", 2))

			Expect(err).To(HaveOccurred())
			Expect(m.Registers()).To(Equal([]qir.Register{c("r1", 1)}))
		})

		It("should reject duplicates inside one batch", func() {
			err := m.AddRegs(q("q", 0), q("q", 0))

			Expect(err).To(BeAssignableToTypeOf(&qir.NameCollisionError{}))
			Expect(m.NumRegisters()).To(BeZero())
		})
	})

	Context("when replacing on collision", func() {
		BeforeEach(func() {
			m.SetRegisterPolicy(qir.ReplaceOnCollision)
		})

		It("should let the last declaration win in place", func() {
			Expect(m.AddReg(c("c", 1))).To(Succeed())
			Expect(m.AddReg(q("q", 0))).To(Succeed())

			Expect(m.AddReg(c("c", 8))).To(Succeed())

			Expect(m.Registers()).To(Equal([]qir.Register{c("c", 8), q("q", 0)}))
			r, ok := m.Lookup("c")
			Expect(ok).To(BeTrue())
			Expect(r.Size).To(Equal(8))
		})
	})
})
