package pipeline_test

import (
	"github.com/zjxcpu/rv32tomasulo/emu"
	"github.com/zjxcpu/rv32tomasulo/isa"
)

// A tiny RV32I assembler used only to build test programs. It mirrors the
// bit layouts isa.Decode expects, encoded independently so a bug in one
// does not mask a matching bug in the other.

func rType(opcode, funct3, funct7 uint32, rd, rs1, rs2 uint8) uint32 {
	return funct7<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opcode
}

func iType(opcode, funct3 uint32, rd, rs1 uint8, imm int32) uint32 {
	return (uint32(imm)&0xFFF)<<20 | uint32(rs1)<<15 | funct3<<12 | uint32(rd)<<7 | opcode
}

func sType(opcode, funct3 uint32, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm) & 0xFFF
	hi := (u >> 5) & 0x7F
	lo := u & 0x1F
	return hi<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 | lo<<7 | opcode
}

func bType(opcode, funct3 uint32, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm) & 0x1FFF
	b12 := (u >> 12) & 1
	b11 := (u >> 11) & 1
	b10_5 := (u >> 5) & 0x3F
	b4_1 := (u >> 1) & 0xF
	return b12<<31 | b10_5<<25 | uint32(rs2)<<20 | uint32(rs1)<<15 | funct3<<12 | b4_1<<8 | b11<<7 | opcode
}

func jType(opcode uint32, rd uint8, imm int32) uint32 {
	u := uint32(imm) & 0x1FFFFF
	b20 := (u >> 20) & 1
	b19_12 := (u >> 12) & 0xFF
	b11 := (u >> 11) & 1
	b10_1 := (u >> 1) & 0x3FF
	return b20<<31 | b10_1<<21 | b11<<20 | b19_12<<12 | uint32(rd)<<7 | opcode
}

func asmADDI(rd, rs1 uint8, imm int32) uint32 { return iType(0b0010011, 0b000, rd, rs1, imm) }
func asmADD(rd, rs1, rs2 uint8) uint32        { return rType(0b0110011, 0b000, 0b0000000, rd, rs1, rs2) }
func asmBEQ(rs1, rs2 uint8, imm int32) uint32 { return bType(0b1100011, 0b000, rs1, rs2, imm) }
func asmSW(rs1, rs2 uint8, imm int32) uint32  { return sType(0b0100011, 0b010, rs1, rs2, imm) }
func asmLW(rd, rs1 uint8, imm int32) uint32   { return iType(0b0000011, 0b010, rd, rs1, imm) }
func asmJAL(rd uint8, imm int32) uint32       { return jType(0b1101111, rd, imm) }

const asmHALT uint32 = isa.Termination

// loadProgram writes words into memory starting at address 0, one word
// per instruction slot.
func loadProgram(memory *emu.Memory, words []uint32) {
	for i, word := range words {
		memory.Store(uint32(i*4), word, isa.ModeWord)
	}
}
