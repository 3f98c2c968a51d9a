package isa

import "fmt"

// RV32I opcodes (low 7 bits of the instruction word).
const (
	opcodeLUI    = 0b0110111
	opcodeAUIPC  = 0b0010111
	opcodeJAL    = 0b1101111
	opcodeJALR   = 0b1100111
	opcodeBRANCH = 0b1100011
	opcodeLOAD   = 0b0000011
	opcodeSTORE  = 0b0100011
	opcodeOPIMM  = 0b0010011
	opcodeOP     = 0b0110011
	opcodeFENCE  = 0b0001111
	opcodeSYSTEM = 0b1110011
)

// ErrUnknownOpcode is the sentinel wrapped when a word's low 7 bits do not
// match any recognised RV32I opcode.
var ErrUnknownOpcode = fmt.Errorf("isa: unknown opcode")

// ErrIllegalFunct is the sentinel wrapped when an opcode is recognised but
// its funct3/funct7 combination is not.
var ErrIllegalFunct = fmt.Errorf("isa: illegal funct3/funct7 combination")

// Decoder decodes RV32I instruction words. It carries no state and has no
// side effects: the same word always decodes to the same instruction.
type Decoder struct{}

// NewDecoder creates an RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RV32I instruction word, or returns a decode
// failure wrapping ErrUnknownOpcode or ErrIllegalFunct. The all-zero word
// is a special case: it is not a real illegal encoding, but is recognised
// directly as the canonical NOP (ADDI x0, x0, 0).
func (d *Decoder) Decode(word uint32) (*Instruction, error) {
	if word == 0 {
		return &Instruction{Op: OpADDI, Format: FormatI, Raw: word}, nil
	}

	opcode := bits(word, 6, 0)
	in := &Instruction{Raw: word}

	switch opcode {
	case opcodeLUI:
		decodeU(word, in)
		in.Op = OpLUI
	case opcodeAUIPC:
		decodeU(word, in)
		in.Op = OpAUIPC
	case opcodeJAL:
		decodeJ(word, in)
		in.Op = OpJAL
	case opcodeJALR:
		decodeI(word, in)
		if in.Funct3 != 0b000 {
			return nil, fmt.Errorf("%w: opcode 0x%02x funct3 0x%x", ErrIllegalFunct, opcode, in.Funct3)
		}
		in.Op = OpJALR
	case opcodeBRANCH:
		decodeB(word, in)
		op, ok := branchOps[in.Funct3]
		if !ok {
			return nil, fmt.Errorf("%w: opcode 0x%02x funct3 0x%x", ErrIllegalFunct, opcode, in.Funct3)
		}
		in.Op = op
	case opcodeLOAD:
		decodeI(word, in)
		op, ok := loadOps[in.Funct3]
		if !ok {
			return nil, fmt.Errorf("%w: opcode 0x%02x funct3 0x%x", ErrIllegalFunct, opcode, in.Funct3)
		}
		in.Op = op
	case opcodeSTORE:
		decodeS(word, in)
		op, ok := storeOps[in.Funct3]
		if !ok {
			return nil, fmt.Errorf("%w: opcode 0x%02x funct3 0x%x", ErrIllegalFunct, opcode, in.Funct3)
		}
		in.Op = op
	case opcodeOPIMM:
		if err := decodeOpImm(word, in); err != nil {
			return nil, err
		}
	case opcodeOP:
		if err := decodeOp(word, in); err != nil {
			return nil, err
		}
	case opcodeFENCE:
		decodeFence(word, in)
		in.Op = OpFENCE
	case opcodeSYSTEM:
		if err := decodeSystem(word, in); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownOpcode, opcode)
	}

	return in, nil
}

var branchOps = map[uint8]Op{
	0b000: OpBEQ, 0b001: OpBNE, 0b100: OpBLT,
	0b101: OpBGE, 0b110: OpBLTU, 0b111: OpBGEU,
}

var loadOps = map[uint8]Op{
	0b000: OpLB, 0b001: OpLH, 0b010: OpLW, 0b100: OpLBU, 0b101: OpLHU,
}

var storeOps = map[uint8]Op{
	0b000: OpSB, 0b001: OpSH, 0b010: OpSW,
}

// decodeR fills the R-format fields: rd, rs1, rs2, funct3, funct7.
func decodeR(word uint32, in *Instruction) {
	in.Format = FormatR
	in.Rd = uint8(bits(word, 11, 7))
	in.Funct3 = uint8(bits(word, 14, 12))
	in.Rs1 = uint8(bits(word, 19, 15))
	in.Rs2 = uint8(bits(word, 24, 20))
	in.Funct7 = uint8(bits(word, 31, 25))
}

// decodeI fills the I-format fields: rd, rs1, funct3, sign-extended imm.
func decodeI(word uint32, in *Instruction) {
	in.Format = FormatI
	in.Rd = uint8(bits(word, 11, 7))
	in.Funct3 = uint8(bits(word, 14, 12))
	in.Rs1 = uint8(bits(word, 19, 15))
	in.Imm = signExtend(bits(word, 31, 20), 12)
}

// decodeS fills the S-format fields: rs1, rs2, funct3, sign-extended imm.
func decodeS(word uint32, in *Instruction) {
	in.Format = FormatS
	in.Funct3 = uint8(bits(word, 14, 12))
	in.Rs1 = uint8(bits(word, 19, 15))
	in.Rs2 = uint8(bits(word, 24, 20))
	raw := bits(word, 31, 25)<<5 | bits(word, 11, 7)
	in.Imm = signExtend(raw, 12)
}

// decodeB fills the B-format fields: rs1, rs2, funct3, sign-extended imm
// (branch offset, low bit always zero).
func decodeB(word uint32, in *Instruction) {
	in.Format = FormatB
	in.Funct3 = uint8(bits(word, 14, 12))
	in.Rs1 = uint8(bits(word, 19, 15))
	in.Rs2 = uint8(bits(word, 24, 20))
	raw := bit(word, 31)<<12 | bit(word, 7)<<11 | bits(word, 30, 25)<<5 | bits(word, 11, 8)<<1
	in.Imm = signExtend(raw, 13)
}

// decodeU fills the U-format fields: rd, imm (upper 20 bits, low 12 zero).
func decodeU(word uint32, in *Instruction) {
	in.Format = FormatU
	in.Rd = uint8(bits(word, 11, 7))
	in.Imm = int32(word &^ 0xFFF)
}

// decodeJ fills the J-format fields: rd, sign-extended imm (low bit zero).
func decodeJ(word uint32, in *Instruction) {
	in.Format = FormatJ
	in.Rd = uint8(bits(word, 11, 7))
	raw := bit(word, 31)<<20 | bits(word, 19, 12)<<12 | bit(word, 20)<<11 | bits(word, 30, 21)<<1
	in.Imm = signExtend(raw, 21)
}

// decodeFence fills the FENCE sub-form: predecessor/successor bitmasks.
func decodeFence(word uint32, in *Instruction) {
	in.Format = FormatFence
	in.Pred = uint8(bits(word, 27, 24))
	in.Succ = uint8(bits(word, 23, 20))
}

// decodeOpImm decodes opcode 0010011: ADDI/SLTI/SLTIU/XORI/ORI/ANDI and
// the shift-immediate instructions SLLI/SRLI/SRAI, discriminated by bit 30
// of the word when funct3 is 101.
func decodeOpImm(word uint32, in *Instruction) error {
	decodeI(word, in)
	switch in.Funct3 {
	case 0b000:
		in.Op = OpADDI
	case 0b010:
		in.Op = OpSLTI
	case 0b011:
		in.Op = OpSLTIU
	case 0b100:
		in.Op = OpXORI
	case 0b110:
		in.Op = OpORI
	case 0b111:
		in.Op = OpANDI
	case 0b001:
		if bits(word, 31, 25) != 0 {
			return fmt.Errorf("%w: opcode 0x%02x SLLI with non-zero bits[31:25]", ErrIllegalFunct, opcodeOPIMM)
		}
		in.Op = OpSLLI
		in.Shamt = uint8(bits(word, 24, 20))
	case 0b101:
		in.Shamt = uint8(bits(word, 24, 20))
		switch bit(word, 30) {
		case 0:
			in.Op = OpSRLI
		case 1:
			in.Op = OpSRAI
		}
	default:
		return fmt.Errorf("%w: opcode 0x%02x funct3 0x%x", ErrIllegalFunct, opcodeOPIMM, in.Funct3)
	}
	return nil
}

// decodeOp decodes opcode 0110011: the register-register ALU operations,
// discriminated by (funct3, funct7).
func decodeOp(word uint32, in *Instruction) error {
	decodeR(word, in)
	switch {
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b000:
		in.Op = OpADD
	case in.Funct7 == 0b0100000 && in.Funct3 == 0b000:
		in.Op = OpSUB
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b001:
		in.Op = OpSLL
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b010:
		in.Op = OpSLT
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b011:
		in.Op = OpSLTU
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b100:
		in.Op = OpXOR
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b101:
		in.Op = OpSRL
	case in.Funct7 == 0b0100000 && in.Funct3 == 0b101:
		in.Op = OpSRA
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b110:
		in.Op = OpOR
	case in.Funct7 == 0b0000000 && in.Funct3 == 0b111:
		in.Op = OpAND
	default:
		return fmt.Errorf("%w: opcode 0x%02x funct3 0x%x funct7 0x%02x",
			ErrIllegalFunct, opcodeOP, in.Funct3, in.Funct7)
	}
	return nil
}

// decodeSystem decodes opcode 1110011: ECALL (imm=0) and EBREAK (imm=1).
func decodeSystem(word uint32, in *Instruction) error {
	decodeI(word, in)
	in.Format = FormatSystem
	switch in.Imm {
	case 0:
		in.Op = OpECALL
	case 1:
		in.Op = OpEBREAK
	default:
		return fmt.Errorf("%w: opcode 0x%02x SYSTEM imm %d", ErrIllegalFunct, opcodeSYSTEM, in.Imm)
	}
	return nil
}
