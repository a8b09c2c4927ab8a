// Package latency provides the core's timing parameters: the memory
// port's configurable access latency, and classification helpers the
// issue/commit stages use to decide when that latency applies.
package latency

import "github.com/zjxcpu/rv32tomasulo/isa"

// Table provides timing lookups over a TimingConfig. Every RV32I
// instruction this core implements other than a load or a store
// executes in a single cycle once its operands are ready; the memory
// port's latency is the only multi-cycle cost in the model.
type Table struct {
	config *TimingConfig
}

// NewTable creates a latency table with default timing values.
func NewTable() *Table {
	return &Table{config: DefaultTimingConfig()}
}

// NewTableWithConfig creates a latency table from a custom
// configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{config: config}
}

// MemoryPortLatency returns the configured number of cycles a load or
// store spends in flight through the memory port.
func (t *Table) MemoryPortLatency() uint64 {
	return t.config.MemoryPortLatency
}

// PredictorTableSize returns the configured branch history table size.
func (t *Table) PredictorTableSize() uint64 {
	return t.config.PredictorTableSize
}

// IsMemoryOp reports whether op accesses memory.
func (t *Table) IsMemoryOp(op isa.Op) bool {
	return isa.IsLoad(op) || isa.IsStore(op)
}

// IsLoadOp reports whether op is a load.
func (t *Table) IsLoadOp(op isa.Op) bool {
	return isa.IsLoad(op)
}

// IsStoreOp reports whether op is a store.
func (t *Table) IsStoreOp(op isa.Op) bool {
	return isa.IsStore(op)
}

// IsBranchOp reports whether op is a conditional branch.
func (t *Table) IsBranchOp(op isa.Op) bool {
	return isa.IsBranch(op)
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
