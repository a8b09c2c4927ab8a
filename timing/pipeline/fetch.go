package pipeline

import (
	"github.com/zjxcpu/rv32tomasulo/isa"
	"github.com/zjxcpu/rv32tomasulo/timing/rob"
)

// fetchStage fetches and renames a single instruction per cycle, unless
// the reorder buffer has no room left or the core just halted in this
// same cycle's commit stage.
func (c *Core) fetchStage() {
	if c.halted || c.rob.Full() {
		return
	}

	word := c.memory.LoadInstruction(c.pc)
	inst := c.decoder.Decode(word)

	predictedTaken := false
	nextPC := c.pc + 4
	switch {
	case isa.IsBranch(inst.Op):
		predictedTaken = c.predictor.Predict(c.pc)
		if predictedTaken {
			nextPC = branchTarget(c.pc, inst.Imm)
		}
	case inst.Op == isa.OpJAL:
		nextPC = branchTarget(c.pc, inst.Imm)
	}

	slot := rob.Slot{
		PC:             c.pc,
		Op:             inst.Op,
		Halt:           inst.Halt,
		Immediate:      inst.Imm,
		DestReg:        inst.Rd,
		WritesReg:      isa.WritesRegister(inst.Op) && !inst.Halt,
		IsBranch:       isa.IsBranch(inst.Op),
		IsLoad:         isa.IsLoad(inst.Op),
		IsStore:        isa.IsStore(inst.Op),
		PredictedTaken: predictedTaken,
	}

	operandCount := isa.OperandCount(inst.Format)
	slot.Operands[0] = c.renameOperand(inst.Rs1, operandCount >= 1)
	slot.Operands[1] = c.renameOperand(inst.Rs2, operandCount >= 2)

	idx := c.rob.Push(slot)
	if slot.WritesReg {
		c.aliases.Rename(slot.DestReg, idx)
	}
	c.pc = nextPC
}

// renameOperand resolves one source register against the alias table: a
// register that is not pending reads straight from the register file, a
// register pending on a producer that has already computed its result is
// read directly from that slot, and everything else waits for the
// producer's result to be broadcast. used is false for a format that does
// not read this operand at all, in which case it is simply marked ready
// with a value of zero so the execute stage never stalls on it.
func (c *Core) renameOperand(reg uint8, used bool) rob.Operand {
	if !used || reg == 0 {
		return rob.Operand{Ready: true}
	}
	alias := c.aliases.Lookup(reg)
	if !alias.Pending {
		return rob.Operand{Ready: true, Value: c.regs.Read(reg)}
	}
	producer := c.rob.At(alias.Producer)
	if producer.Valid && producer.Ready {
		return rob.Operand{Ready: true, Value: producer.Result}
	}
	return rob.Operand{Producer: alias.Producer}
}

// broadcastStage pushes every result resolved this cycle into the
// operand slots of every other in-flight instruction still waiting on
// it. A waiting consumer always picks up the result exactly one cycle
// after its producer resolves, since this runs once per Tick after the
// execute stage that produced resolved.
func (c *Core) broadcastStage(resolved []resolution) {
	if len(resolved) == 0 {
		return
	}
	c.rob.InFlight(func(_ int, slot *rob.Slot) {
		for _, r := range resolved {
			for i := range slot.Operands {
				if !slot.Operands[i].Ready && slot.Operands[i].Producer == r.slot {
					slot.Operands[i] = rob.Operand{Ready: true, Value: r.value}
				}
			}
		}
	})
}
