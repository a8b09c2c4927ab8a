package emu

// AliasEntry records which in-flight instruction, if any, will produce the
// next value for one architectural register. It mirrors the reference
// design's per-register pending flag and pending-instruction slot, but
// renamed to describe what it does in an out-of-order core: renaming a
// source operand means following this alias instead of reading the
// register file directly.
type AliasEntry struct {
	Pending  bool
	Producer int
}

// AliasTable is the register alias table (RAT): one entry per
// architectural register, naming the reorder-buffer slot that will next
// write it, if any. Register 0 is never pending; it always resolves to
// the constant zero no matter what the table says, exactly as the
// reference register file hardwires it.
type AliasTable struct {
	entries [RegisterCount]AliasEntry
}

// NewAliasTable creates an alias table with no registers pending.
func NewAliasTable() *AliasTable {
	return &AliasTable{}
}

// Lookup returns the alias entry for reg as it stands right now. Callers
// renaming a source operand must call this before any rename-write in the
// same cycle lands, so that sources see alias state as it stood at the
// start of the cycle.
func (t *AliasTable) Lookup(reg uint8) AliasEntry {
	if reg == 0 {
		return AliasEntry{}
	}
	return t.entries[reg]
}

// Rename marks reg as pending on producer, the reorder-buffer slot that
// will supply its next value. Renaming register 0 is a no-op.
func (t *AliasTable) Rename(reg uint8, producer int) {
	if reg == 0 {
		return
	}
	t.entries[reg] = AliasEntry{Pending: true, Producer: producer}
}

// ClearIfOwner clears reg's pending flag only if it is still pointing at
// producer. A later instruction may have renamed the same register again
// before this one commits, in which case that newer alias must survive
// and this call is a no-op.
func (t *AliasTable) ClearIfOwner(reg uint8, producer int) {
	if reg == 0 {
		return
	}
	if t.entries[reg].Pending && t.entries[reg].Producer == producer {
		t.entries[reg] = AliasEntry{}
	}
}

// Reset clears every alias, returning all registers to non-pending. Used
// on a misprediction flush: nothing newer than the resolving branch can
// still own a pending alias once it is discarded.
func (t *AliasTable) Reset() {
	t.entries = [RegisterCount]AliasEntry{}
}
