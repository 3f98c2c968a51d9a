package emu

// LoadStoreUnit implements the RV32I load and store instructions. It
// does not itself perform bounds checking — that is the Emulator's job
// (see the Memory.InRange checks in Emulator.execute), so that a MemoryFault always carries
// the faulting PC and can be reported per the error-handling design
// without the unit needing to know about PC.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{regFile: regFile, memory: memory}
}

// Addr computes the effective address rs1 + imm for a load or store.
func (lsu *LoadStoreUnit) Addr(rs1 uint8, imm int32) uint32 {
	return lsu.regFile.ReadReg(rs1) + uint32(imm)
}

// LB loads a byte from addr, sign-extended to 32 bits, into rd.
func (lsu *LoadStoreUnit) LB(rd uint8, addr uint32) {
	value := lsu.memory.Read8(addr)
	lsu.regFile.WriteReg(rd, uint32(int32(int8(value))))
}

// LBU loads a byte from addr, zero-extended to 32 bits, into rd.
func (lsu *LoadStoreUnit) LBU(rd uint8, addr uint32) {
	lsu.regFile.WriteReg(rd, uint32(lsu.memory.Read8(addr)))
}

// LH loads a halfword from addr, sign-extended to 32 bits, into rd.
func (lsu *LoadStoreUnit) LH(rd uint8, addr uint32) {
	value := lsu.memory.Read16(addr)
	lsu.regFile.WriteReg(rd, uint32(int32(int16(value))))
}

// LHU loads a halfword from addr, zero-extended to 32 bits, into rd.
func (lsu *LoadStoreUnit) LHU(rd uint8, addr uint32) {
	lsu.regFile.WriteReg(rd, uint32(lsu.memory.Read16(addr)))
}

// LW loads a word from addr into rd.
func (lsu *LoadStoreUnit) LW(rd uint8, addr uint32) {
	lsu.regFile.WriteReg(rd, lsu.memory.Read32(addr))
}

// SB stores the low byte of rs2 at addr.
func (lsu *LoadStoreUnit) SB(rs2 uint8, addr uint32) {
	lsu.memory.Write8(addr, byte(lsu.regFile.ReadReg(rs2)))
}

// SH stores the low halfword of rs2 at addr.
func (lsu *LoadStoreUnit) SH(rs2 uint8, addr uint32) {
	lsu.memory.Write16(addr, uint16(lsu.regFile.ReadReg(rs2)))
}

// SW stores all 32 bits of rs2 at addr.
func (lsu *LoadStoreUnit) SW(rs2 uint8, addr uint32) {
	lsu.memory.Write32(addr, lsu.regFile.ReadReg(rs2))
}
