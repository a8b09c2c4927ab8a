package emu

import "github.com/zjxcpu/rv32tomasulo/isa"

// Memory is byte-addressable RV32I data memory. It is sparse: any address
// never written reads as zero, exactly like the zero-initialized
// unordered_map the reference implementation loads its memory image into.
type Memory struct {
	bytes map[uint32]byte
}

// NewMemory creates an empty memory image.
func NewMemory() *Memory {
	return &Memory{bytes: make(map[uint32]byte)}
}

// ReadByte returns the byte at addr, or 0 if it was never written.
func (m *Memory) ReadByte(addr uint32) byte {
	return m.bytes[addr]
}

// WriteByte sets the byte at addr.
func (m *Memory) WriteByte(addr uint32, value byte) {
	m.bytes[addr] = value
}

// Load reads a value at addr according to mode, applying the sign or zero
// extension the access mode calls for, and returns it as a 32-bit word.
func (m *Memory) Load(addr uint32, mode isa.MemoryAccessMode) uint32 {
	switch mode {
	case isa.ModeByte:
		return uint32(int32(int8(m.ReadByte(addr))))
	case isa.ModeByteUnsigned:
		return uint32(m.ReadByte(addr))
	case isa.ModeHalfWord:
		return uint32(int32(int16(m.readHalfWord(addr))))
	case isa.ModeHalfWordUnsigned:
		return uint32(m.readHalfWord(addr))
	default:
		return m.readWord(addr)
	}
}

// Store writes value at addr according to mode, truncating to the
// access width.
func (m *Memory) Store(addr uint32, value uint32, mode isa.MemoryAccessMode) {
	m.WriteByte(addr, byte(value))
	switch mode {
	case isa.ModeByte, isa.ModeByteUnsigned:
		return
	case isa.ModeHalfWord, isa.ModeHalfWordUnsigned:
		m.WriteByte(addr+1, byte(value>>8))
		return
	default:
		m.WriteByte(addr+1, byte(value>>8))
		m.WriteByte(addr+2, byte(value>>16))
		m.WriteByte(addr+3, byte(value>>24))
	}
}

func (m *Memory) readHalfWord(addr uint32) uint16 {
	return uint16(m.ReadByte(addr)) | uint16(m.ReadByte(addr+1))<<8
}

func (m *Memory) readWord(addr uint32) uint32 {
	return uint32(m.ReadByte(addr)) |
		uint32(m.ReadByte(addr+1))<<8 |
		uint32(m.ReadByte(addr+2))<<16 |
		uint32(m.ReadByte(addr+3))<<24
}

// LoadInstruction fetches the little-endian 32-bit word at addr, used by
// fetch to read an instruction out of the same memory image data lives in.
func (m *Memory) LoadInstruction(addr uint32) uint32 {
	return m.readWord(addr)
}
