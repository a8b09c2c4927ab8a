// Package isa decodes RV32I instruction words into the opcode, operand
// registers, destination register and sign-extended immediate that the
// pipeline's fetch/rename stage needs. It has no notion of pipelines,
// registers of flight, or memory — it is a pure function of a 32-bit word.
package isa

import "github.com/zjxcpu/rv32tomasulo/bits"

// Op identifies one decoded RV32I operation.
type Op int

// The 37 RV32I integer operations plus the catch-all Unknown.
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
)

// Format identifies the RV32I instruction encoding used to form the
// immediate and select which fields carry source/destination registers.
type Format int

const (
	FormatR Format = iota
	FormatI1
	FormatI2
	FormatS
	FormatB
	FormatU
	FormatJ
)

// NoOperation is the instruction word for `ADDI x0, x0, 0`, the no-op that
// Unknown encodings are replaced by.
const NoOperation uint32 = 0b0010011

// Termination is the sentinel instruction word that halts the simulator
// when it commits.
const Termination uint32 = 0x0ff00513

// Instruction is the fully decoded form of one instruction word.
type Instruction struct {
	Op     Op
	Format Format
	Rs1    uint8
	Rs2    uint8
	Rd     uint8
	Imm    int32
	Halt   bool
}

// Decoder decodes raw instruction words. It carries no mutable state; a
// single Decoder can be shared by every fetch.
type Decoder struct{}

// NewDecoder creates a RV32I decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes word into an Instruction. Unrecognized encodings decode
// as `ADDI x0, x0, 0` with Op set to OpADDI, matching the no-op fallback
// the pipeline relies on to keep draining on malformed input. The
// termination sentinel is recognized before the opcode switch and marked
// Halt, but otherwise decodes the same way (it is itself a valid ADDI
// encoding).
func (d *Decoder) Decode(word uint32) *Instruction {
	halt := word == Termination

	op := decodeOp(word)
	if op == OpUnknown {
		word = NoOperation
		op = OpADDI
	}

	inst := &Instruction{
		Op:     op,
		Format: formatOf(op),
		Rs1:    uint8(bits.Field(word, 19, 15)),
		Rs2:    uint8(bits.Field(word, 24, 20)),
		Rd:     uint8(bits.Field(word, 11, 7)),
		Halt:   halt,
	}
	inst.Imm = immediateOf(inst.Format, word)
	return inst
}

func decodeOp(word uint32) Op {
	opcode := bits.Field(word, 6, 0)
	funct3 := bits.Field(word, 14, 12)
	funct7 := bits.Field(word, 31, 25)

	switch opcode {
	case 0b0110111:
		return OpLUI
	case 0b0010111:
		return OpAUIPC
	case 0b1101111:
		return OpJAL
	case 0b1100111:
		return OpJALR
	case 0b1100011:
		switch funct3 {
		case 0b000:
			return OpBEQ
		case 0b001:
			return OpBNE
		case 0b100:
			return OpBLT
		case 0b101:
			return OpBGE
		case 0b110:
			return OpBLTU
		case 0b111:
			return OpBGEU
		default:
			return OpUnknown
		}
	case 0b0000011:
		switch funct3 {
		case 0b000:
			return OpLB
		case 0b001:
			return OpLH
		case 0b010:
			return OpLW
		case 0b100:
			return OpLBU
		case 0b101:
			return OpLHU
		default:
			return OpUnknown
		}
	case 0b0100011:
		switch funct3 {
		case 0b000:
			return OpSB
		case 0b001:
			return OpSH
		case 0b010:
			return OpSW
		default:
			return OpUnknown
		}
	case 0b0010011:
		switch funct3 {
		case 0b000:
			return OpADDI
		case 0b010:
			return OpSLTI
		case 0b011:
			return OpSLTIU
		case 0b100:
			return OpXORI
		case 0b110:
			return OpORI
		case 0b111:
			return OpANDI
		case 0b001:
			if funct7 == 0b0000000 {
				return OpSLLI
			}
			return OpUnknown
		case 0b101:
			switch funct7 {
			case 0b0000000:
				return OpSRLI
			case 0b0100000:
				return OpSRAI
			default:
				return OpUnknown
			}
		default:
			return OpUnknown
		}
	case 0b0110011:
		switch funct3 {
		case 0b000:
			switch funct7 {
			case 0b0000000:
				return OpADD
			case 0b0100000:
				return OpSUB
			default:
				return OpUnknown
			}
		case 0b001:
			if funct7 == 0b0000000 {
				return OpSLL
			}
			return OpUnknown
		case 0b010:
			if funct7 == 0b0000000 {
				return OpSLT
			}
			return OpUnknown
		case 0b011:
			if funct7 == 0b0000000 {
				return OpSLTU
			}
			return OpUnknown
		case 0b100:
			if funct7 == 0b0000000 {
				return OpXOR
			}
			return OpUnknown
		case 0b101:
			switch funct7 {
			case 0b0000000:
				return OpSRL
			case 0b0100000:
				return OpSRA
			default:
				return OpUnknown
			}
		case 0b110:
			if funct7 == 0b0000000 {
				return OpOR
			}
			return OpUnknown
		case 0b111:
			if funct7 == 0b0000000 {
				return OpAND
			}
			return OpUnknown
		default:
			return OpUnknown
		}
	default:
		return OpUnknown
	}
}

func formatOf(op Op) Format {
	switch op {
	case OpLUI, OpAUIPC:
		return FormatU
	case OpJAL:
		return FormatJ
	case OpJALR, OpLB, OpLH, OpLW, OpLBU, OpLHU,
		OpADDI, OpSLTI, OpSLTIU, OpXORI, OpORI, OpANDI:
		return FormatI1
	case OpSLLI, OpSRLI, OpSRAI:
		return FormatI2
	case OpBEQ, OpBNE, OpBLT, OpBGE, OpBLTU, OpBGEU:
		return FormatB
	case OpSB, OpSH, OpSW:
		return FormatS
	default:
		// ADD/SUB/SLL/SLT/SLTU/XOR/SRL/SRA/OR/AND
		return FormatR
	}
}

func immediateOf(format Format, word uint32) int32 {
	switch format {
	case FormatR:
		return 0
	case FormatI1:
		return bits.SignExtend(bits.Field(word, 31, 20), 12)
	case FormatI2:
		return int32(bits.Field(word, 24, 20))
	case FormatS:
		hi := bits.Field(word, 31, 25)
		lo := bits.Field(word, 11, 7)
		return bits.SignExtend(hi<<5|lo, 12)
	case FormatB:
		b11 := bits.Bit(word, 7)
		b4_1 := bits.Field(word, 11, 8)
		b10_5 := bits.Field(word, 30, 25)
		b12 := bits.Bit(word, 31)
		raw := b12<<12 | b11<<11 | b10_5<<5 | b4_1<<1
		return bits.SignExtend(raw, 13)
	case FormatU:
		return int32(bits.Field(word, 31, 12) << 12)
	case FormatJ:
		b19_12 := bits.Field(word, 19, 12)
		b11 := bits.Bit(word, 20)
		b10_1 := bits.Field(word, 30, 21)
		b20 := bits.Bit(word, 31)
		raw := b20<<20 | b19_12<<12 | b11<<11 | b10_1<<1
		return bits.SignExtend(raw, 21)
	default:
		return 0
	}
}

// IsBranch reports whether op is one of the six conditional branches.
func IsBranch(op Op) bool {
	switch op {
	case OpBEQ, OpBNE, OpBLT, OpBGE, OpBLTU, OpBGEU:
		return true
	default:
		return false
	}
}

// IsLoad reports whether op reads memory.
func IsLoad(op Op) bool {
	switch op {
	case OpLB, OpLH, OpLW, OpLBU, OpLHU:
		return true
	default:
		return false
	}
}

// IsStore reports whether op writes memory.
func IsStore(op Op) bool {
	switch op {
	case OpSB, OpSH, OpSW:
		return true
	default:
		return false
	}
}

// OperandCount returns how many source operands an instruction of the
// given format reads before it can execute.
func OperandCount(format Format) int {
	switch format {
	case FormatR, FormatS, FormatB:
		return 2
	case FormatI1, FormatI2:
		return 1
	default:
		// FormatU, FormatJ: no register source operands.
		return 0
	}
}

// WritesRegister reports whether op writes an architectural destination
// register (as opposed to a store or a branch, whose "result" is not an
// architectural register value).
func WritesRegister(op Op) bool {
	return !IsStore(op) && !IsBranch(op)
}

// MemoryAccessMode describes the width and signedness of a load or store.
type MemoryAccessMode int

const (
	ModeByte MemoryAccessMode = iota
	ModeByteUnsigned
	ModeHalfWord
	ModeHalfWordUnsigned
	ModeWord
)

// AccessModeOf returns the memory access mode for a load or store op.
func AccessModeOf(op Op) MemoryAccessMode {
	switch op {
	case OpLB, OpSB:
		return ModeByte
	case OpLBU:
		return ModeByteUnsigned
	case OpLH, OpSH:
		return ModeHalfWord
	case OpLHU:
		return ModeHalfWordUnsigned
	default:
		return ModeWord
	}
}
