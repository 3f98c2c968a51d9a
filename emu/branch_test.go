package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32i-go/rv32i/emu"
)

var _ = Describe("BranchUnit", func() {
	var (
		r *emu.RegFile
		b *emu.BranchUnit
	)

	BeforeEach(func() {
		r = &emu.RegFile{}
		b = emu.NewBranchUnit(r)
	})

	It("JAL writes the return address and returns the jump target", func() {
		target := b.JAL(1, 0x100, 8)
		Expect(target).To(Equal(uint32(0x108)))
		Expect(r.ReadReg(1)).To(Equal(uint32(0x104)))
	})

	It("JALR clears the low bit of the computed target", func() {
		r.WriteReg(2, 0x205)
		target := b.JALR(1, 2, 0x100, 4)
		Expect(target).To(Equal(uint32(0x208)))
		Expect(r.ReadReg(1)).To(Equal(uint32(0x104)))
	})

	Describe("conditional branches", func() {
		It("BEQ is taken when the operands are equal", func() {
			r.WriteReg(1, 5)
			r.WriteReg(2, 5)
			target, taken := b.BEQ(1, 2, 0x100, -4)
			Expect(taken).To(BeTrue())
			Expect(target).To(Equal(uint32(0xFC)))
		})

		It("BNE is not taken when the operands are equal", func() {
			r.WriteReg(1, 5)
			r.WriteReg(2, 5)
			_, taken := b.BNE(1, 2, 0x100, -4)
			Expect(taken).To(BeFalse())
		})

		It("BLT uses a signed comparison", func() {
			r.WriteReg(1, 0xFFFFFFFF) // -1
			r.WriteReg(2, 1)
			_, taken := b.BLT(1, 2, 0x100, 8)
			Expect(taken).To(BeTrue())
		})

		It("BLTU uses an unsigned comparison", func() {
			r.WriteReg(1, 0xFFFFFFFF)
			r.WriteReg(2, 1)
			_, taken := b.BLTU(1, 2, 0x100, 8)
			Expect(taken).To(BeFalse())
		})

		It("BGE and BGEU agree when both operands are non-negative", func() {
			r.WriteReg(1, 5)
			r.WriteReg(2, 5)
			_, takenSigned := b.BGE(1, 2, 0x100, 8)
			_, takenUnsigned := b.BGEU(1, 2, 0x100, 8)
			Expect(takenSigned).To(BeTrue())
			Expect(takenUnsigned).To(BeTrue())
		})
	})
})
