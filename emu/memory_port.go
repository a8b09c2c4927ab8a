package emu

import "github.com/zjxcpu/rv32tomasulo/isa"

// DefaultPortLatency is the number of cycles a load or store spends in
// flight through the memory port when no explicit latency is configured.
const DefaultPortLatency = 3

// MemoryPort is the single multi-cycle memory access path the core issues
// at most one load or store through at a time. It is modeled as a phase
// counter that walks down to zero for a load and up to zero for a store,
// firing the access itself only once the counter reaches zero — the same
// shape as the reference design's phase register, generalized to a
// configurable latency instead of a fixed cycle count.
type MemoryPort struct {
	memory  *Memory
	latency int

	phase int
	addr  uint32
	mode  isa.MemoryAccessMode

	storeValue uint32

	loadResult uint32
	resultUp   bool
	storeUp    bool
}

// NewMemoryPort creates a port over memory with the given per-access
// latency in cycles. A latency of 0 or less falls back to
// DefaultPortLatency.
func NewMemoryPort(memory *Memory, latency int) *MemoryPort {
	if latency <= 0 {
		latency = DefaultPortLatency
	}
	return &MemoryPort{memory: memory, latency: latency}
}

// Idle reports whether the port can accept a new load or store.
func (p *MemoryPort) Idle() bool {
	return p.phase == 0
}

// IssueLoad starts a load of addr under mode. The caller must check Idle
// first; issuing onto a busy port overwrites the in-flight request.
func (p *MemoryPort) IssueLoad(addr uint32, mode isa.MemoryAccessMode) {
	p.addr = addr
	p.mode = mode
	p.phase = p.latency
	p.resultUp = false
}

// IssueStore starts a store of value to addr under mode.
func (p *MemoryPort) IssueStore(addr uint32, value uint32, mode isa.MemoryAccessMode) {
	p.addr = addr
	p.mode = mode
	p.storeValue = value
	p.phase = -p.latency
	p.storeUp = false
}

// Tick advances the phase counter by one cycle. On the cycle the counter
// reaches zero, a load reads memory into its result and a store writes
// memory, and the corresponding completion flag is raised for this cycle
// only — callers must observe TakeLoadResult/StoreCompleted before the
// next Tick.
func (p *MemoryPort) Tick() {
	switch {
	case p.phase > 0:
		p.phase--
		if p.phase == 0 {
			p.loadResult = p.memory.Load(p.addr, p.mode)
			p.resultUp = true
		}
	case p.phase < 0:
		p.phase++
		if p.phase == 0 {
			p.memory.Store(p.addr, p.storeValue, p.mode)
			p.storeUp = true
		}
	}
}

// TakeLoadResult returns the completed load's value and clears the
// completion flag. ok is false if no load completed this cycle.
func (p *MemoryPort) TakeLoadResult() (value uint32, ok bool) {
	if !p.resultUp {
		return 0, false
	}
	p.resultUp = false
	return p.loadResult, true
}

// StoreCompleted reports whether the in-flight store finished this cycle,
// clearing the flag on read.
func (p *MemoryPort) StoreCompleted() bool {
	if !p.storeUp {
		return false
	}
	p.storeUp = false
	return true
}

// Flush cancels whatever is in flight without letting a load's result or
// a store's write take effect, used when a misprediction flush discards
// everything newer than the branch that was resolved.
func (p *MemoryPort) Flush() {
	p.phase = 0
	p.resultUp = false
	p.storeUp = false
}
