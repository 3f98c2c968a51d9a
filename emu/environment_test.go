package emu_test

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32i-go/rv32i/emu"
)

var _ = Describe("DefaultEnvironmentHandler", func() {
	var (
		r      *emu.RegFile
		mem    *emu.Memory
		stdout *bytes.Buffer
		stderr *bytes.Buffer
		h      *emu.DefaultEnvironmentHandler
	)

	BeforeEach(func() {
		r = &emu.RegFile{}
		mem = emu.NewMemory()
		stdout = &bytes.Buffer{}
		stderr = &bytes.Buffer{}
		h = emu.NewDefaultEnvironmentHandler(r, mem, stdout, stderr)
	})

	Describe("exit", func() {
		It("reports Exited with the value in a0", func() {
			r.WriteReg(17, emu.SyscallExit)
			r.WriteReg(10, 7)
			result := h.Handle()
			Expect(result.Exited).To(BeTrue())
			Expect(result.ExitCode).To(Equal(int32(7)))
		})
	})

	Describe("write", func() {
		It("writes count bytes from the buffer at a1 to stdout", func() {
			msg := "hi"
			for i, c := range []byte(msg) {
				mem.Write8(0x10+uint32(i), c)
			}
			r.WriteReg(17, emu.SyscallWrite)
			r.WriteReg(10, 1)
			r.WriteReg(11, 0x10)
			r.WriteReg(12, uint32(len(msg)))

			result := h.Handle()
			Expect(result.Exited).To(BeFalse())
			Expect(stdout.String()).To(Equal("hi"))
			Expect(r.ReadReg(10)).To(Equal(uint32(len(msg))))
		})

		It("writes to stderr for fd 2", func() {
			mem.Write8(0x10, 'x')
			r.WriteReg(17, emu.SyscallWrite)
			r.WriteReg(10, 2)
			r.WriteReg(11, 0x10)
			r.WriteReg(12, 1)
			h.Handle()
			Expect(stderr.String()).To(Equal("x"))
		})

		It("sets an EBADF-style error for an unknown fd", func() {
			r.WriteReg(17, emu.SyscallWrite)
			r.WriteReg(10, 99)
			h.Handle()
			Expect(int32(r.ReadReg(10))).To(Equal(int32(-emu.EBADF)))
		})
	})

	Describe("read", func() {
		It("reads from the configured stdin into the buffer at a1", func() {
			h.SetStdin(strings.NewReader("go"))
			r.WriteReg(17, emu.SyscallRead)
			r.WriteReg(10, 0)
			r.WriteReg(11, 0x20)
			r.WriteReg(12, 2)

			h.Handle()
			Expect(mem.Read8(0x20)).To(Equal(byte('g')))
			Expect(mem.Read8(0x21)).To(Equal(byte('o')))
			Expect(r.ReadReg(10)).To(Equal(uint32(2)))
		})

		It("returns zero bytes read when stdin is not configured", func() {
			r.WriteReg(17, emu.SyscallRead)
			r.WriteReg(10, 0)
			result := h.Handle()
			Expect(result.Exited).To(BeFalse())
			Expect(r.ReadReg(10)).To(Equal(uint32(0)))
		})
	})

	Describe("unknown syscall", func() {
		It("sets an ENOSYS-style error", func() {
			r.WriteReg(17, 0xFFFF)
			h.Handle()
			Expect(int32(r.ReadReg(10))).To(Equal(int32(-emu.ENOSYS)))
		})
	})
})
