// Package pipeline implements the Tomasulo-style out-of-order core: a
// single instruction is fetched and renamed per cycle, the oldest
// in-flight instruction whose operands have resolved executes (at most
// one per cycle), and the oldest instruction commits in program order
// once it is ready. The stages run one after another within Tick —
// memory port, execute, commit, load issue, fetch — and each sees the
// changes the earlier ones made in the same Tick: commit can retire a
// result executed this cycle, and fetch sees an alias that commit
// cleared this cycle. There are no separate current/next copies of the
// state; only the broadcast of newly resolved results to waiting
// operands is deferred to the very end of Tick.
package pipeline

import (
	"github.com/zjxcpu/rv32tomasulo/emu"
	"github.com/zjxcpu/rv32tomasulo/isa"
	"github.com/zjxcpu/rv32tomasulo/timing/latency"
	"github.com/zjxcpu/rv32tomasulo/timing/predictor"
	"github.com/zjxcpu/rv32tomasulo/timing/rob"
)

// Statistics holds the core's running diagnostics.
type Statistics struct {
	// Cycles is the total number of ticks simulated.
	Cycles uint64
	// Committed is the number of instructions retired.
	Committed uint64
	// Flushes is the number of times a misprediction or JALR discarded
	// everything younger than the instruction that resolved it.
	Flushes uint64
	// BranchPredictions is the number of conditional branches committed.
	BranchPredictions uint64
	// BranchCorrect is the number of those whose predicted direction
	// matched the resolved outcome.
	BranchCorrect uint64
	// BranchMispredictions is the number that did not.
	BranchMispredictions uint64
}

// BranchAccuracy returns the fraction of committed branches predicted
// correctly, as a percentage.
func (s Statistics) BranchAccuracy() float64 {
	if s.BranchPredictions == 0 {
		return 0
	}
	return float64(s.BranchCorrect) / float64(s.BranchPredictions) * 100
}

// CPI returns cycles per committed instruction.
func (s Statistics) CPI() float64 {
	if s.Committed == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Committed)
}

// Core is the Tomasulo pipeline: fetch/rename, execute, memory issue,
// and commit all advance by one cycle per call to Tick.
type Core struct {
	pc uint32

	regs      *emu.RegFile
	aliases   *emu.AliasTable
	memory    *emu.Memory
	port      *emu.MemoryPort
	predictor *predictor.Predictor
	rob       *rob.Queue
	decoder   *isa.Decoder

	// portOwner is the reorder-buffer slot whose load or store currently
	// occupies the memory port, or -1 if the port is unclaimed.
	portOwner int

	// flushing and flushTarget record a pending flush raised by commit
	// this cycle: the global clear, and the PC it redirects fetch to,
	// are deferred to the start of the next Tick, so the cycle on which
	// commit detects the misprediction or JALR still fetches and
	// executes normally, and only the following cycle is the dedicated
	// flush cycle with no fetch or execute work.
	flushing    bool
	flushTarget uint32

	halted   bool
	exitCode uint32

	stats Statistics
}

// NewCore creates a core over memory, configured from table's memory
// port latency and predictor table size, with PC starting at 0.
func NewCore(memory *emu.Memory, table *latency.Table) *Core {
	return &Core{
		regs:      &emu.RegFile{},
		aliases:   emu.NewAliasTable(),
		memory:    memory,
		port:      emu.NewMemoryPort(memory, int(table.MemoryPortLatency())),
		predictor: predictor.New(predictor.Config{TableSize: uint32(table.PredictorTableSize())}),
		rob:       rob.NewQueue(),
		decoder:   isa.NewDecoder(),
		portOwner: -1,
	}
}

// PC returns the current fetch program counter.
func (c *Core) PC() uint32 {
	return c.pc
}

// SetPC sets the fetch program counter, used to start execution at an
// address other than 0.
func (c *Core) SetPC(pc uint32) {
	c.pc = pc
}

// Registers returns the architectural register file.
func (c *Core) Registers() *emu.RegFile {
	return c.regs
}

// Memory returns the data memory backing this core.
func (c *Core) Memory() *emu.Memory {
	return c.memory
}

// Halted reports whether the halt sentinel has retired.
func (c *Core) Halted() bool {
	return c.halted
}

// ExitCode returns the low 8 bits of x10 as they stood when the halt
// sentinel committed.
func (c *Core) ExitCode() uint32 {
	return c.exitCode
}

// Stats returns the core's running diagnostics.
func (c *Core) Stats() Statistics {
	return c.stats
}

// PredictorStats returns the branch predictor's running accuracy
// statistics.
func (c *Core) PredictorStats() predictor.Stats {
	return c.predictor.Stats()
}

// Run ticks the core until it halts and returns the exit code.
func (c *Core) Run() uint32 {
	for !c.halted {
		c.Tick()
	}
	return c.exitCode
}

// Reset clears all architectural and in-flight state back to a fresh
// core: registers, memory aliases, the reorder buffer, the memory port,
// halt status, and statistics. The branch predictor's trained counters
// survive a reset, the same way a real predictor's history outlives any
// one program run. Memory contents are left untouched; the caller owns
// loading a new image.
func (c *Core) Reset() {
	c.pc = 0
	c.regs = &emu.RegFile{}
	c.aliases.Reset()
	c.rob.Reset()
	c.port.Flush()
	c.portOwner = -1
	c.flushing = false
	c.flushTarget = 0
	c.halted = false
	c.exitCode = 0
	c.stats = Statistics{}
}

// RunCycles ticks the core up to cycles times or until it halts,
// whichever comes first. It reports whether the core halted.
func (c *Core) RunCycles(cycles uint64) bool {
	for i := uint64(0); i < cycles; i++ {
		if c.halted {
			return true
		}
		c.Tick()
	}
	return c.halted
}

type resolution struct {
	slot  int
	value uint32
}

// Tick advances the core by one cycle. A cycle on which a pending flush
// is consumed performs only the global clear spec.md §4.7 describes —
// reorder buffer, aliases, memory port, and PC — and does no fetch,
// execute, issue, commit, or broadcast work; normal fetch resumes the
// cycle after that.
func (c *Core) Tick() {
	if c.halted {
		return
	}
	c.stats.Cycles++

	if c.flushing {
		c.rob.Reset()
		c.aliases.Reset()
		c.port.Flush()
		c.portOwner = -1
		c.pc = c.flushTarget
		c.flushing = false
		return
	}

	c.port.Tick()

	var resolved []resolution

	if value, ok := c.port.TakeLoadResult(); ok {
		if c.portOwner >= 0 {
			slot := c.rob.At(c.portOwner)
			slot.Result = value
			slot.Ready = true
			resolved = append(resolved, resolution{c.portOwner, value})
		}
		c.portOwner = -1
	}
	storeCompleted := c.port.StoreCompleted()

	c.executeStage(&resolved)
	c.commitStage(storeCompleted)
	c.issueLoadsStage()
	c.fetchStage()
	c.broadcastStage(resolved)
}

// executeStage resolves at most one non-memory, not-yet-ready
// instruction per cycle — the oldest in-flight instruction whose
// operands are already available — appending its result to resolved for
// later broadcast if it writes a register. Only one ALU dispatches per
// Tick, matching the single combinational ALU the reference design
// shares across every in-flight instruction.
func (c *Core) executeStage(resolved *[]resolution) {
	n := c.rob.Len()
	head := c.rob.HeadIndex()
	for i := 0; i < n; i++ {
		idx := (head + i) % rob.Capacity
		slot := c.rob.At(idx)
		if slot.Ready || slot.IsLoad || slot.IsStore {
			continue
		}
		if !operandsReady(slot) {
			continue
		}

		result, taken := executeALU(slot.Op, slot.PC, slot.Immediate,
			slot.Operands[0].Value, slot.Operands[1].Value)
		slot.Result = result
		slot.BranchTaken = taken
		slot.Ready = true

		if slot.WritesReg {
			*resolved = append(*resolved, resolution{idx, result})
		}
		return
	}
}

// issueLoadsStage sends the oldest eligible load to the memory port: its
// base register must be resolved, no earlier store may still be
// in-flight (memory ordering), and the port must be free. Store issuance
// happens only at commit, so it runs first in Tick and this stage simply
// observes whatever port state that left behind.
func (c *Core) issueLoadsStage() {
	if c.portOwner != -1 || !c.port.Idle() {
		return
	}
	c.rob.InFlight(func(idx int, slot *rob.Slot) {
		if c.portOwner != -1 {
			return
		}
		if !slot.IsLoad || slot.Ready || slot.MemIssued {
			return
		}
		if !slot.Operands[0].Ready {
			return
		}
		if c.rob.HasEarlierStore(idx) {
			return
		}
		addr := uint32(int32(slot.Operands[0].Value) + slot.Immediate)
		c.port.IssueLoad(addr, isa.AccessModeOf(slot.Op))
		slot.MemIssued = true
		c.portOwner = idx
	})
}

func operandsReady(slot *rob.Slot) bool {
	return slot.Operands[0].Ready && slot.Operands[1].Ready
}
