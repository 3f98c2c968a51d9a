// Package isa decodes RV32I instruction words into typed operations with
// fully sign-extended immediates, and re-encodes them for round-trip
// testing and disassembly.
package isa

// Op identifies one of the 40 RV32I mnemonics, FENCE and the two SYSTEM
// instructions (ECALL, EBREAK) included.
type Op uint8

// RV32I opcodes.
const (
	OpUnknown Op = iota
	OpLUI
	OpAUIPC
	OpJAL
	OpJALR
	OpBEQ
	OpBNE
	OpBLT
	OpBGE
	OpBLTU
	OpBGEU
	OpLB
	OpLH
	OpLW
	OpLBU
	OpLHU
	OpSB
	OpSH
	OpSW
	OpADDI
	OpSLTI
	OpSLTIU
	OpXORI
	OpORI
	OpANDI
	OpSLLI
	OpSRLI
	OpSRAI
	OpADD
	OpSUB
	OpSLL
	OpSLT
	OpSLTU
	OpXOR
	OpSRL
	OpSRA
	OpOR
	OpAND
	OpFENCE
	OpECALL
	OpEBREAK
)

// String returns the assembler mnemonic for op.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "unknown"
}

var opNames = map[Op]string{
	OpLUI: "lui", OpAUIPC: "auipc", OpJAL: "jal", OpJALR: "jalr",
	OpBEQ: "beq", OpBNE: "bne", OpBLT: "blt", OpBGE: "bge",
	OpBLTU: "bltu", OpBGEU: "bgeu",
	OpLB: "lb", OpLH: "lh", OpLW: "lw", OpLBU: "lbu", OpLHU: "lhu",
	OpSB: "sb", OpSH: "sh", OpSW: "sw",
	OpADDI: "addi", OpSLTI: "slti", OpSLTIU: "sltiu",
	OpXORI: "xori", OpORI: "ori", OpANDI: "andi",
	OpSLLI: "slli", OpSRLI: "srli", OpSRAI: "srai",
	OpADD: "add", OpSUB: "sub", OpSLL: "sll", OpSLT: "slt", OpSLTU: "sltu",
	OpXOR: "xor", OpSRL: "srl", OpSRA: "sra", OpOR: "or", OpAND: "and",
	OpFENCE: "fence", OpECALL: "ecall", OpEBREAK: "ebreak",
}

// Format identifies the encoding format that carries an instruction's
// fields: R/I/S/B/U/J plus the FENCE and SYSTEM sub-forms.
type Format uint8

// RV32I instruction formats.
const (
	FormatUnknown Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
	FormatFence
	FormatSystem
)

// Instruction is a decoded RV32I instruction: an operation tag plus the
// fields of whichever format carries it. All immediates are already
// sign-extended to their final signed 32-bit value.
type Instruction struct {
	Op     Op
	Format Format

	Rd, Rs1, Rs2 uint8
	Funct3       uint8
	Funct7       uint8

	// Imm holds the sign-extended immediate for I/S/B/J formats and the
	// already-shifted upper-bits value for U format.
	Imm int32

	// Shamt is the shift amount (low 5 bits) for SLLI/SRLI/SRAI.
	Shamt uint8

	// Pred/Succ are the FENCE predecessor/successor bitmasks (4 bits each).
	Pred, Succ uint8

	// Raw is the original 32-bit word, retained only for diagnostics.
	Raw uint32
}

// IsNOP reports whether in is the canonical NOP (ADDI x0, x0, 0).
func (in *Instruction) IsNOP() bool {
	return in.Op == OpADDI && in.Rd == 0 && in.Rs1 == 0 && in.Imm == 0
}
