package emu

import "fmt"

// DecodeFault reports a decode failure (unknown opcode or illegal
// funct3/funct7 combination) encountered while fetching at PC.
type DecodeFault struct {
	PC   uint32
	Word uint32
	Err  error
}

func (f *DecodeFault) Error() string {
	return fmt.Sprintf("decode fault at pc=0x%08x word=0x%08x: %v", f.PC, f.Word, f.Err)
}

func (f *DecodeFault) Unwrap() error { return f.Err }

// MemoryFault reports a load or store address outside [0, memory size).
type MemoryFault struct {
	PC    uint32
	Addr  uint32
	Width uint32
	Op    string // "fetch", "load", or "store"
}

func (f *MemoryFault) Error() string {
	return fmt.Sprintf("memory fault at pc=0x%08x: %s of width %d at addr=0x%08x out of range",
		f.PC, f.Op, f.Width, f.Addr)
}

// EnvironmentEvent reports an environment event raised by the running
// program. Emulator.execute raises it only for EBREAK (Kind "ebreak",
// ExitCode 0); ECALL is passed to the EnvironmentHandler and never
// produces an EnvironmentEvent.
type EnvironmentEvent struct {
	PC       uint32
	Kind     string
	ExitCode int32
}

func (f *EnvironmentEvent) Error() string {
	return fmt.Sprintf("environment event %q at pc=0x%08x (exit code %d)", f.Kind, f.PC, f.ExitCode)
}
