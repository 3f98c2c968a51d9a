package emu

import (
	"fmt"
	"io"
	"os"

	"github.com/rv32i-go/rv32i/isa"
)

// Policy selects the driver loop's termination condition.
type Policy uint8

const (
	// RunUntilNOP fetches/decodes/executes until a NOP is executed.
	RunUntilNOP Policy = iota
	// RunUntilFault continues past NOPs, terminating only on decode
	// failure, memory fault, EBREAK, an ECALL exit, or the
	// WithMaxInstructions limit.
	RunUntilFault
)

// StepResult is the outcome of executing a single instruction.
type StepResult struct {
	// Exited is true if the driver loop should stop after this step
	// (NOP reached under RunUntilNOP, an ECALL exit, or a fault under
	// either policy).
	Exited bool
	// ExitCode is the process exit status: 0 for a normal NOP-triggered
	// stop, the ECALL exit code for an environment exit, 1 otherwise.
	ExitCode int
	// Err is non-nil when Exited was caused by a fault rather than a
	// clean termination.
	Err error
}

// Emulator executes RV32I instructions functionally: fetch at PC, decode,
// execute, advance PC, repeat. It owns the register file and memory as
// explicit values, with no global mutable state.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *isa.Decoder

	alu     *ALU
	lsu     *LoadStoreUnit
	branch  *BranchUnit
	environ EnvironmentHandler

	policy          Policy
	maxInstructions uint64

	pc               uint32
	instructionCount uint64
	lastInstruction  *isa.Instruction

	trace func(pc uint32, in *isa.Instruction)

	stdout io.Writer
	stderr io.Writer
}

// Option configures an Emulator at construction time.
type Option func(*Emulator)

// WithPolicy sets the driver loop's termination policy (default
// RunUntilNOP).
func WithPolicy(p Policy) Option {
	return func(e *Emulator) { e.policy = p }
}

// WithMaxInstructions bounds the number of instructions Run will
// execute; 0 (the default) means unbounded.
func WithMaxInstructions(max uint64) Option {
	return func(e *Emulator) { e.maxInstructions = max }
}

// WithEnvironmentHandler overrides the ECALL handler (default: exit,
// write, and read over os.Stdout/os.Stderr with no stdin configured).
func WithEnvironmentHandler(h EnvironmentHandler) Option {
	return func(e *Emulator) { e.environ = h }
}

// WithStdout overrides the writer used by the default environment
// handler's write syscall for fd 1.
func WithStdout(w io.Writer) Option {
	return func(e *Emulator) { e.stdout = w }
}

// WithStderr overrides the writer used by the default environment
// handler's write syscall for fd 2.
func WithStderr(w io.Writer) Option {
	return func(e *Emulator) { e.stderr = w }
}

// WithMemory boots the emulator with a caller-supplied memory instead of
// a fresh DefaultMemorySize one — used to load a program before running.
func WithMemory(m *Memory) Option {
	return func(e *Emulator) { e.memory = m }
}

// WithTrace installs a hook invoked with the PC and decoded instruction
// immediately before each execute step; used by the CLI's -v mode.
func WithTrace(fn func(pc uint32, in *isa.Instruction)) Option {
	return func(e *Emulator) { e.trace = fn }
}

// NewEmulator creates an RV32I emulator with all state zeroed and PC at 0.
func NewEmulator(opts ...Option) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		memory:  NewMemory(),
		decoder: isa.NewDecoder(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.wireUnits()
	if e.environ == nil {
		e.environ = NewDefaultEnvironmentHandler(e.regFile, e.memory, e.stdout, e.stderr)
	}
	return e
}

func (e *Emulator) wireUnits() {
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
	e.branch = NewBranchUnit(e.regFile)
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile { return e.regFile }

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory { return e.memory }

// PC returns the current program counter.
func (e *Emulator) PC() uint32 { return e.pc }

// SetPC sets the program counter, e.g. to the loader's entry address
// before the first Run/Step.
func (e *Emulator) SetPC(pc uint32) { e.pc = pc }

// InstructionCount returns the number of instructions executed so far.
func (e *Emulator) InstructionCount() uint64 { return e.instructionCount }

// LastInstruction returns the most recently executed instruction, or nil
// before the first Step.
func (e *Emulator) LastInstruction() *isa.Instruction { return e.lastInstruction }

// Step fetches, decodes, and executes a single instruction at the
// current PC, mutating registers, memory, and PC, then returns whether
// the driver loop should stop.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{Exited: true, ExitCode: 1, Err: fmt.Errorf("emu: max instructions (%d) reached", e.maxInstructions)}
	}

	pcPre := e.pc
	if !e.memory.InRange(pcPre, 4) {
		return e.fault(&MemoryFault{PC: pcPre, Addr: pcPre, Width: 4, Op: "fetch"})
	}
	word := e.memory.Read32(pcPre)

	in, err := e.decoder.Decode(word)
	if err != nil {
		return e.fault(&DecodeFault{PC: pcPre, Word: word, Err: err})
	}
	e.lastInstruction = in
	e.instructionCount++

	if e.trace != nil {
		e.trace(pcPre, in)
	}

	if e.policy == RunUntilNOP && in.IsNOP() {
		return StepResult{Exited: true, ExitCode: 0}
	}

	result := e.execute(in, pcPre)
	if result.Exited {
		return result
	}
	return StepResult{}
}

func (e *Emulator) fault(err error) StepResult {
	return StepResult{Exited: true, ExitCode: 1, Err: err}
}

// execute dispatches a decoded instruction to its execution unit and
// returns the step's outcome. When the instruction does not stop the run,
// e.pc has been advanced on return to the next instruction's address
// (pcPre+4 by default, or the branch or jump target when one was taken);
// a fault, an ECALL exit, or EBREAK returns with e.pc left at pcPre.
func (e *Emulator) execute(in *isa.Instruction, pcPre uint32) StepResult {
	nextPC := pcPre + 4

	switch in.Op {
	case isa.OpLUI:
		e.alu.LUI(in.Rd, in.Imm)
	case isa.OpAUIPC:
		e.alu.AUIPC(in.Rd, pcPre, in.Imm)

	case isa.OpJAL:
		nextPC = e.branch.JAL(in.Rd, pcPre, in.Imm)
	case isa.OpJALR:
		nextPC = e.branch.JALR(in.Rd, in.Rs1, pcPre, in.Imm)

	case isa.OpBEQ:
		target, taken := e.branch.BEQ(in.Rs1, in.Rs2, pcPre, in.Imm)
		if taken {
			nextPC = target
		}
	case isa.OpBNE:
		target, taken := e.branch.BNE(in.Rs1, in.Rs2, pcPre, in.Imm)
		if taken {
			nextPC = target
		}
	case isa.OpBLT:
		target, taken := e.branch.BLT(in.Rs1, in.Rs2, pcPre, in.Imm)
		if taken {
			nextPC = target
		}
	case isa.OpBGE:
		target, taken := e.branch.BGE(in.Rs1, in.Rs2, pcPre, in.Imm)
		if taken {
			nextPC = target
		}
	case isa.OpBLTU:
		target, taken := e.branch.BLTU(in.Rs1, in.Rs2, pcPre, in.Imm)
		if taken {
			nextPC = target
		}
	case isa.OpBGEU:
		target, taken := e.branch.BGEU(in.Rs1, in.Rs2, pcPre, in.Imm)
		if taken {
			nextPC = target
		}

	case isa.OpLB, isa.OpLH, isa.OpLW, isa.OpLBU, isa.OpLHU:
		width := loadWidth(in.Op)
		addr := e.lsu.Addr(in.Rs1, in.Imm)
		if !e.memory.InRange(addr, width) {
			return e.fault(&MemoryFault{PC: pcPre, Addr: addr, Width: width, Op: "load"})
		}
		switch in.Op {
		case isa.OpLB:
			e.lsu.LB(in.Rd, addr)
		case isa.OpLH:
			e.lsu.LH(in.Rd, addr)
		case isa.OpLW:
			e.lsu.LW(in.Rd, addr)
		case isa.OpLBU:
			e.lsu.LBU(in.Rd, addr)
		case isa.OpLHU:
			e.lsu.LHU(in.Rd, addr)
		}

	case isa.OpSB, isa.OpSH, isa.OpSW:
		width := storeWidth(in.Op)
		addr := e.lsu.Addr(in.Rs1, in.Imm)
		if !e.memory.InRange(addr, width) {
			return e.fault(&MemoryFault{PC: pcPre, Addr: addr, Width: width, Op: "store"})
		}
		switch in.Op {
		case isa.OpSB:
			e.lsu.SB(in.Rs2, addr)
		case isa.OpSH:
			e.lsu.SH(in.Rs2, addr)
		case isa.OpSW:
			e.lsu.SW(in.Rs2, addr)
		}

	case isa.OpADDI:
		e.alu.ADDI(in.Rd, in.Rs1, in.Imm)
	case isa.OpSLTI:
		e.alu.SLTI(in.Rd, in.Rs1, in.Imm)
	case isa.OpSLTIU:
		e.alu.SLTIU(in.Rd, in.Rs1, in.Imm)
	case isa.OpXORI:
		e.alu.XORI(in.Rd, in.Rs1, in.Imm)
	case isa.OpORI:
		e.alu.ORI(in.Rd, in.Rs1, in.Imm)
	case isa.OpANDI:
		e.alu.ANDI(in.Rd, in.Rs1, in.Imm)
	case isa.OpSLLI:
		e.alu.SLLI(in.Rd, in.Rs1, in.Shamt)
	case isa.OpSRLI:
		e.alu.SRLI(in.Rd, in.Rs1, in.Shamt)
	case isa.OpSRAI:
		e.alu.SRAI(in.Rd, in.Rs1, in.Shamt)

	case isa.OpADD:
		e.alu.ADD(in.Rd, in.Rs1, in.Rs2)
	case isa.OpSUB:
		e.alu.SUB(in.Rd, in.Rs1, in.Rs2)
	case isa.OpSLL:
		e.alu.SLL(in.Rd, in.Rs1, in.Rs2)
	case isa.OpSLT:
		e.alu.SLT(in.Rd, in.Rs1, in.Rs2)
	case isa.OpSLTU:
		e.alu.SLTU(in.Rd, in.Rs1, in.Rs2)
	case isa.OpXOR:
		e.alu.XOR(in.Rd, in.Rs1, in.Rs2)
	case isa.OpSRL:
		e.alu.SRL(in.Rd, in.Rs1, in.Rs2)
	case isa.OpSRA:
		e.alu.SRA(in.Rd, in.Rs1, in.Rs2)
	case isa.OpOR:
		e.alu.OR(in.Rd, in.Rs1, in.Rs2)
	case isa.OpAND:
		e.alu.AND(in.Rd, in.Rs1, in.Rs2)

	case isa.OpFENCE:
		// No-op: this emulator has a single, sequential memory, so FENCE
		// has nothing to order.

	case isa.OpECALL:
		result := e.environ.Handle()
		if result.Exited {
			return StepResult{Exited: true, ExitCode: int(result.ExitCode)}
		}
	case isa.OpEBREAK:
		return StepResult{Exited: true, ExitCode: 1, Err: &EnvironmentEvent{PC: pcPre, Kind: "ebreak"}}

	default:
		return e.fault(&DecodeFault{PC: pcPre, Word: in.Raw, Err: fmt.Errorf("emu: unexecutable op %s", in.Op)})
	}

	e.pc = nextPC
	return StepResult{}
}

func loadWidth(op isa.Op) uint32 {
	switch op {
	case isa.OpLB, isa.OpLBU:
		return 1
	case isa.OpLH, isa.OpLHU:
		return 2
	default:
		return 4
	}
}

func storeWidth(op isa.Op) uint32 {
	switch op {
	case isa.OpSB:
		return 1
	case isa.OpSH:
		return 2
	default:
		return 4
	}
}

// Run executes instructions until the configured policy's termination
// condition is reached. It returns the process exit status (0 for a
// clean NOP-triggered stop or an explicit ECALL exit(0); non-zero
// otherwise) and, on a fault, the error describing it.
func (e *Emulator) Run() (int, error) {
	for {
		result := e.Step()
		if result.Exited {
			return result.ExitCode, result.Err
		}
	}
}
