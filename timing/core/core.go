// Package core provides the cycle-accurate CPU core model. It wraps the
// Tomasulo pipeline implementation to provide a high-level interface.
package core

import (
	"github.com/zjxcpu/rv32tomasulo/emu"
	"github.com/zjxcpu/rv32tomasulo/timing/latency"
	"github.com/zjxcpu/rv32tomasulo/timing/pipeline"
)

// Stats holds performance statistics for the core.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// Flushes is the number of pipeline flushes.
	Flushes uint64
	// BranchPredictions is the number of conditional branches committed.
	BranchPredictions uint64
	// BranchCorrect is the number of those predicted correctly.
	BranchCorrect uint64
	// BranchMispredictions is the number of those predicted incorrectly.
	BranchMispredictions uint64
}

// Core represents the Tomasulo out-of-order core model. It wraps the
// underlying pipeline and provides a simple interface for simulation.
type Core struct {
	// Pipeline is the underlying out-of-order engine.
	Pipeline *pipeline.Core

	memory *emu.Memory
}

// NewCore creates a Core over memory, timed according to table.
func NewCore(memory *emu.Memory, table *latency.Table) *Core {
	return &Core{
		Pipeline: pipeline.NewCore(memory, table),
		memory:   memory,
	}
}

// SetPC sets the program counter execution will start from.
func (c *Core) SetPC(pc uint32) {
	c.Pipeline.SetPC(pc)
}

// Tick executes one cycle.
func (c *Core) Tick() {
	c.Pipeline.Tick()
}

// Halted reports whether the core has retired the halt sentinel.
func (c *Core) Halted() bool {
	return c.Pipeline.Halted()
}

// ExitCode returns the low byte of x10 as it stood when the halt
// sentinel committed.
func (c *Core) ExitCode() uint32 {
	return c.Pipeline.ExitCode()
}

// Stats returns performance statistics for the core.
func (c *Core) Stats() Stats {
	pipeStats := c.Pipeline.Stats()
	return Stats{
		Cycles:               pipeStats.Cycles,
		Instructions:         pipeStats.Committed,
		Flushes:              pipeStats.Flushes,
		BranchPredictions:    pipeStats.BranchPredictions,
		BranchCorrect:        pipeStats.BranchCorrect,
		BranchMispredictions: pipeStats.BranchMispredictions,
	}
}

// Run executes the core until it halts and returns the exit code.
func (c *Core) Run() uint32 {
	return c.Pipeline.Run()
}

// RunCycles executes the core for up to cycles cycles. Returns true if
// the core halted during that span, false if it is still running.
func (c *Core) RunCycles(cycles uint64) bool {
	return c.Pipeline.RunCycles(cycles)
}

// Reset clears all core state.
func (c *Core) Reset() {
	c.Pipeline.Reset()
}
