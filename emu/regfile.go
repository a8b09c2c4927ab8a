// Package emu provides the architectural state the Tomasulo core commits
// into: the integer register file, byte-addressable memory, and the
// multi-cycle memory port that arbitrates access to it.
package emu

// RegisterCount is the number of RV32I integer registers, x0 through x31.
const RegisterCount = 32

// RegFile holds the 32 architectural integer registers. Reads and writes
// to x0 are no-ops that always observe zero, matching the ISA's hardwired
// zero register.
type RegFile struct {
	X [RegisterCount]uint32
}

// Read returns the value of register reg. Register 0 always reads as 0.
func (r *RegFile) Read(reg uint8) uint32 {
	if reg == 0 {
		return 0
	}
	return r.X[reg]
}

// Write stores value into register reg. Writes to register 0 are
// discarded.
func (r *RegFile) Write(reg uint8, value uint32) {
	if reg == 0 {
		return
	}
	r.X[reg] = value
}
