package isa

import "fmt"

// Encode re-assembles a decoded instruction into its 32-bit word. It is the
// inverse of Decode: decoding the result of Encode(in) recovers an
// instruction with the same Op and fields (subject to don't-care bits,
// e.g. funct7 on I-format ops, being zero).
func Encode(in *Instruction) (uint32, error) {
	switch in.Format {
	case FormatR:
		return encodeR(in), nil
	case FormatI:
		return encodeI(in), nil
	case FormatS:
		return encodeS(in), nil
	case FormatB:
		return encodeB(in), nil
	case FormatU:
		return encodeU(in), nil
	case FormatJ:
		return encodeJ(in), nil
	case FormatFence:
		return encodeFence(in), nil
	case FormatSystem:
		return encodeSystem(in), nil
	default:
		return 0, fmt.Errorf("isa: cannot encode instruction with format %v", in.Format)
	}
}

func opcodeFor(op Op) uint32 {
	switch op {
	case OpLUI:
		return opcodeLUI
	case OpAUIPC:
		return opcodeAUIPC
	case OpJAL:
		return opcodeJAL
	case OpJALR:
		return opcodeJALR
	case OpBEQ, OpBNE, OpBLT, OpBGE, OpBLTU, OpBGEU:
		return opcodeBRANCH
	case OpLB, OpLH, OpLW, OpLBU, OpLHU:
		return opcodeLOAD
	case OpSB, OpSH, OpSW:
		return opcodeSTORE
	case OpADDI, OpSLTI, OpSLTIU, OpXORI, OpORI, OpANDI, OpSLLI, OpSRLI, OpSRAI:
		return opcodeOPIMM
	case OpADD, OpSUB, OpSLL, OpSLT, OpSLTU, OpXOR, OpSRL, OpSRA, OpOR, OpAND:
		return opcodeOP
	case OpFENCE:
		return opcodeFENCE
	case OpECALL, OpEBREAK:
		return opcodeSYSTEM
	default:
		return 0
	}
}

func encodeR(in *Instruction) uint32 {
	return uint32(in.Funct7)<<25 | uint32(in.Rs2)<<20 | uint32(in.Rs1)<<15 |
		uint32(in.Funct3)<<12 | uint32(in.Rd)<<7 | opcodeFor(in.Op)
}

func encodeI(in *Instruction) uint32 {
	switch in.Op {
	case OpSLLI:
		return uint32(in.Shamt)<<20 | uint32(in.Rs1)<<15 | uint32(in.Funct3)<<12 | uint32(in.Rd)<<7 | opcodeFor(in.Op)
	case OpSRLI:
		return uint32(in.Shamt)<<20 | uint32(in.Rs1)<<15 | uint32(in.Funct3)<<12 | uint32(in.Rd)<<7 | opcodeFor(in.Op)
	case OpSRAI:
		return uint32(0b0100000)<<25 | uint32(in.Shamt)<<20 | uint32(in.Rs1)<<15 | uint32(in.Funct3)<<12 | uint32(in.Rd)<<7 | opcodeFor(in.Op)
	default:
		imm := uint32(in.Imm) & 0xFFF
		return imm<<20 | uint32(in.Rs1)<<15 | uint32(in.Funct3)<<12 | uint32(in.Rd)<<7 | opcodeFor(in.Op)
	}
}

func encodeS(in *Instruction) uint32 {
	imm := uint32(in.Imm) & 0xFFF
	return (imm>>5)<<25 | uint32(in.Rs2)<<20 | uint32(in.Rs1)<<15 |
		uint32(in.Funct3)<<12 | (imm&0x1F)<<7 | opcodeFor(in.Op)
}

func encodeB(in *Instruction) uint32 {
	imm := uint32(in.Imm) & 0x1FFF
	bit12 := (imm >> 12) & 1
	bit11 := (imm >> 11) & 1
	bits10_5 := (imm >> 5) & 0x3F
	bits4_1 := (imm >> 1) & 0xF
	return bit12<<31 | bits10_5<<25 | uint32(in.Rs2)<<20 | uint32(in.Rs1)<<15 |
		uint32(in.Funct3)<<12 | bits4_1<<8 | bit11<<7 | opcodeFor(in.Op)
}

func encodeU(in *Instruction) uint32 {
	return uint32(in.Imm)&0xFFFFF000 | uint32(in.Rd)<<7 | opcodeFor(in.Op)
}

func encodeJ(in *Instruction) uint32 {
	imm := uint32(in.Imm) & 0x1FFFFF
	bit20 := (imm >> 20) & 1
	bits19_12 := (imm >> 12) & 0xFF
	bit11 := (imm >> 11) & 1
	bits10_1 := (imm >> 1) & 0x3FF
	return bit20<<31 | bits10_1<<21 | bit11<<20 | bits19_12<<12 | uint32(in.Rd)<<7 | opcodeFor(in.Op)
}

func encodeFence(in *Instruction) uint32 {
	return uint32(in.Pred)<<24 | uint32(in.Succ)<<20 | opcodeFENCE
}

func encodeSystem(in *Instruction) uint32 {
	if in.Op == OpEBREAK {
		return 1<<20 | opcodeSYSTEM
	}
	return opcodeSYSTEM
}

// Disassemble renders a decoded instruction as a single assembler-like
// mnemonic line, used by the CLI's verbose trace and by test diagnostics.
func Disassemble(in *Instruction) string {
	switch in.Format {
	case FormatR:
		return fmt.Sprintf("%s x%d, x%d, x%d", in.Op, in.Rd, in.Rs1, in.Rs2)
	case FormatI:
		switch in.Op {
		case OpSLLI, OpSRLI, OpSRAI:
			return fmt.Sprintf("%s x%d, x%d, %d", in.Op, in.Rd, in.Rs1, in.Shamt)
		case OpJALR:
			return fmt.Sprintf("jalr x%d, %d(x%d)", in.Rd, in.Imm, in.Rs1)
		case OpLB, OpLH, OpLW, OpLBU, OpLHU:
			return fmt.Sprintf("%s x%d, %d(x%d)", in.Op, in.Rd, in.Imm, in.Rs1)
		default:
			return fmt.Sprintf("%s x%d, x%d, %d", in.Op, in.Rd, in.Rs1, in.Imm)
		}
	case FormatS:
		return fmt.Sprintf("%s x%d, %d(x%d)", in.Op, in.Rs2, in.Imm, in.Rs1)
	case FormatB:
		return fmt.Sprintf("%s x%d, x%d, %d", in.Op, in.Rs1, in.Rs2, in.Imm)
	case FormatU:
		return fmt.Sprintf("%s x%d, 0x%x", in.Op, in.Rd, uint32(in.Imm)>>12)
	case FormatJ:
		return fmt.Sprintf("%s x%d, %d", in.Op, in.Rd, in.Imm)
	case FormatFence:
		return "fence"
	case FormatSystem:
		return in.Op.String()
	default:
		return fmt.Sprintf("<unknown 0x%08x>", in.Raw)
	}
}
