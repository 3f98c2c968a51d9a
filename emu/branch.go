package emu

// BranchUnit implements the RV32I control-flow instructions: the
// unconditional jumps JAL/JALR and the six conditional branches. All
// targets are computed relative to PC_pre, the address of the branch or
// jump instruction itself (before the default +4 advance).
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// JAL writes pcPre+4 to rd (the return address) and returns the jump
// target pcPre+imm.
func (b *BranchUnit) JAL(rd uint8, pcPre uint32, imm int32) uint32 {
	b.regFile.WriteReg(rd, pcPre+4)
	return pcPre + uint32(imm)
}

// JALR writes pcPre+4 to rd and returns the jump target
// (rs1 + imm) with its low bit cleared.
func (b *BranchUnit) JALR(rd, rs1 uint8, pcPre uint32, imm int32) uint32 {
	target := (b.regFile.ReadReg(rs1) + uint32(imm)) &^ 1
	b.regFile.WriteReg(rd, pcPre+4)
	return target
}

// BEQ returns (target, taken): taken is true when rs1 == rs2.
func (b *BranchUnit) BEQ(rs1, rs2 uint8, pcPre uint32, imm int32) (uint32, bool) {
	return pcPre + uint32(imm), b.regFile.ReadReg(rs1) == b.regFile.ReadReg(rs2)
}

// BNE returns (target, taken): taken is true when rs1 != rs2.
func (b *BranchUnit) BNE(rs1, rs2 uint8, pcPre uint32, imm int32) (uint32, bool) {
	return pcPre + uint32(imm), b.regFile.ReadReg(rs1) != b.regFile.ReadReg(rs2)
}

// BLT returns (target, taken) using a signed comparison of rs1 and rs2.
func (b *BranchUnit) BLT(rs1, rs2 uint8, pcPre uint32, imm int32) (uint32, bool) {
	taken := int32(b.regFile.ReadReg(rs1)) < int32(b.regFile.ReadReg(rs2))
	return pcPre + uint32(imm), taken
}

// BGE returns (target, taken) using a signed comparison of rs1 and rs2.
func (b *BranchUnit) BGE(rs1, rs2 uint8, pcPre uint32, imm int32) (uint32, bool) {
	taken := int32(b.regFile.ReadReg(rs1)) >= int32(b.regFile.ReadReg(rs2))
	return pcPre + uint32(imm), taken
}

// BLTU returns (target, taken) using an unsigned comparison of rs1 and rs2.
func (b *BranchUnit) BLTU(rs1, rs2 uint8, pcPre uint32, imm int32) (uint32, bool) {
	taken := b.regFile.ReadReg(rs1) < b.regFile.ReadReg(rs2)
	return pcPre + uint32(imm), taken
}

// BGEU returns (target, taken) using an unsigned comparison of rs1 and rs2.
func (b *BranchUnit) BGEU(rs1, rs2 uint8, pcPre uint32, imm int32) (uint32, bool) {
	taken := b.regFile.ReadReg(rs1) >= b.regFile.ReadReg(rs2)
	return pcPre + uint32(imm), taken
}
