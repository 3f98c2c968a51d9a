package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32i-go/rv32i/emu"
)

var _ = Describe("RegFile", func() {
	var r *emu.RegFile

	BeforeEach(func() {
		r = &emu.RegFile{}
	})

	It("reads x0 as zero even after a write", func() {
		r.WriteReg(0, 0xDEADBEEF)
		Expect(r.ReadReg(0)).To(Equal(uint32(0)))
	})

	It("reads back a value written to a non-zero register", func() {
		r.WriteReg(5, 0x12345678)
		Expect(r.ReadReg(5)).To(Equal(uint32(0x12345678)))
	})

	It("starts with all registers zeroed", func() {
		snap := r.Snapshot()
		for i, v := range snap {
			Expect(v).To(Equal(uint32(0)), "register %d should start at zero", i)
		}
	})

	It("Snapshot includes x0 even though it is unwritable", func() {
		snap := r.Snapshot()
		Expect(snap[0]).To(Equal(uint32(0)))
	})
})
