package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32i-go/rv32i/emu"
)

var _ = Describe("Memory", func() {
	var m *emu.Memory

	BeforeEach(func() {
		m = emu.NewMemory()
	})

	It("defaults to a 64KiB size", func() {
		Expect(m.Size()).To(Equal(uint32(1 << 16)))
	})

	It("round-trips a byte", func() {
		m.Write8(0x10, 0xAB)
		Expect(m.Read8(0x10)).To(Equal(byte(0xAB)))
	})

	It("round-trips a halfword little-endian", func() {
		m.Write16(0x10, 0xBEEF)
		Expect(m.Read8(0x10)).To(Equal(byte(0xEF)))
		Expect(m.Read8(0x11)).To(Equal(byte(0xBE)))
		Expect(m.Read16(0x10)).To(Equal(uint16(0xBEEF)))
	})

	It("round-trips a word little-endian", func() {
		m.Write32(0x10, 0xDEADBEEF)
		Expect(m.Read8(0x10)).To(Equal(byte(0xEF)))
		Expect(m.Read8(0x13)).To(Equal(byte(0xDE)))
		Expect(m.Read32(0x10)).To(Equal(uint32(0xDEADBEEF)))
	})

	Describe("InRange", func() {
		It("accepts an access entirely within bounds", func() {
			Expect(m.InRange(m.Size()-4, 4)).To(BeTrue())
		})

		It("rejects an access that runs past the end", func() {
			Expect(m.InRange(m.Size()-2, 4)).To(BeFalse())
		})
	})

	Describe("NewMemorySized", func() {
		It("accepts a power-of-two size", func() {
			mem, err := emu.NewMemorySized(4096)
			Expect(err).NotTo(HaveOccurred())
			Expect(mem.Size()).To(Equal(uint32(4096)))
		})

		It("rejects a non-power-of-two size", func() {
			_, err := emu.NewMemorySized(100)
			Expect(err).To(HaveOccurred())
		})
	})
})
