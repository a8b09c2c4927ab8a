package pipeline

import (
	"github.com/zjxcpu/rv32tomasulo/isa"
	"github.com/zjxcpu/rv32tomasulo/timing/rob"
)

// commitStage retires the oldest in-flight instruction once it is ready.
// A store only issues to the memory port here, never earlier, so a write
// can never become visible before every older instruction has committed.
// storeCompleted reports whether the store this slot previously issued
// finished on the memory port this cycle.
func (c *Core) commitStage(storeCompleted bool) {
	if c.rob.Empty() {
		return
	}
	idx := c.rob.HeadIndex()
	slot := c.rob.Head()

	switch {
	case slot.Halt:
		if !slot.Ready {
			return
		}
		c.exitCode = c.regs.Read(10) & 0xFF
		c.halted = true
		c.stats.Committed++
		c.rob.PopHead()

	case slot.IsStore:
		c.commitStore(idx, slot, storeCompleted)

	case slot.IsBranch:
		if !slot.Ready {
			return
		}
		c.commitBranch(slot)

	default:
		if !slot.Ready {
			return
		}
		c.commitRegisterWrite(idx, slot)
	}
}

func (c *Core) commitStore(idx int, slot *rob.Slot, storeCompleted bool) {
	if !operandsReady(slot) {
		return
	}
	if !slot.MemIssued {
		if !c.port.Idle() {
			return
		}
		addr := uint32(int32(slot.Operands[0].Value) + slot.Immediate)
		c.port.IssueStore(addr, slot.Operands[1].Value, isa.AccessModeOf(slot.Op))
		slot.MemIssued = true
		c.portOwner = idx
		return
	}
	if c.portOwner != idx || !storeCompleted {
		return
	}
	c.portOwner = -1
	c.stats.Committed++
	c.rob.PopHead()
}

func (c *Core) commitBranch(slot *rob.Slot) {
	c.stats.BranchPredictions++
	c.predictor.Update(slot.PC, slot.BranchTaken)

	if slot.BranchTaken == slot.PredictedTaken {
		c.stats.BranchCorrect++
		c.stats.Committed++
		c.rob.PopHead()
		return
	}

	c.stats.BranchMispredictions++
	c.stats.Committed++
	target := slot.PC + 4
	if slot.BranchTaken {
		target = branchTarget(slot.PC, slot.Immediate)
	}
	c.rob.PopHead()
	c.requestFlush(target)
}

func (c *Core) commitRegisterWrite(idx int, slot *rob.Slot) {
	if slot.WritesReg {
		c.regs.Write(slot.DestReg, slot.Result)
		c.aliases.ClearIfOwner(slot.DestReg, idx)
	}
	c.stats.Committed++

	if slot.Op == isa.OpJALR {
		target := jalrTarget(slot.Operands[0].Value, slot.Immediate)
		c.rob.PopHead()
		c.requestFlush(target)
		return
	}
	c.rob.PopHead()
}

// requestFlush records that a flush is due, without performing it: the
// committing instruction that triggered it has already retired above,
// but everything else still in flight, the alias table, the memory
// port, and the fetch PC are only cleared at the start of the next
// Tick, which spends that entire cycle on the clear and does no fetch
// or execute work, per spec.md §4.7. Used once a branch resolves
// against its prediction or a JALR's target becomes known.
func (c *Core) requestFlush(target uint32) {
	c.flushing = true
	c.flushTarget = target
	c.stats.Flushes++
}
