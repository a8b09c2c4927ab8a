// Package engine drives a timing/core.Core with Akita's discrete-event
// ticking discipline instead of a bare `for !Halted() { Tick() }` loop.
// The core's own concurrency model — "single-threaded, cooperative,
// strictly tick-driven... one conceptual suspension point: the tick
// boundary" — is exactly what akita/v4/sim.TickingComponent formalizes,
// so this package wraps the core as a sim.Ticker and lets a sim.Engine
// schedule its cycles.
package engine

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/zjxcpu/rv32tomasulo/timing/core"
)

// Driver wraps a Core so it can be ticked by an Akita engine, one cycle
// per scheduled event, exactly as many cycles as the core itself would
// run under a bare loop.
type Driver struct {
	*sim.TickingComponent

	core *core.Core
}

// NewDriver creates a Driver named name, ticking c once per cycle of
// freq on engine.
func NewDriver(name string, eng sim.Engine, freq sim.Freq, c *core.Core) *Driver {
	d := &Driver{core: c}
	d.TickingComponent = sim.NewTickingComponent(name, eng, freq, d)
	return d
}

// Tick advances the wrapped core by one cycle and reports whether the
// component made progress — it returns false once the core has retired
// the halt sentinel, so the engine stops rescheduling this component and
// Run below returns.
func (d *Driver) Tick() bool {
	if d.core.Halted() {
		return false
	}
	d.core.Tick()
	return true
}

// Run drives c to completion on a fresh serial engine and returns its
// exit code. This is the timing/engine equivalent of core.Core.Run,
// used by cmd/rv32tomasulo unless -no-akita selects the bare loop. The
// engine's event queue drains by itself: the driver reschedules its own
// next tick for as long as Tick reports progress, and stops the moment
// the core halts.
func Run(c *core.Core) uint32 {
	eng := sim.NewSerialEngine()
	driver := NewDriver("RV32Tomasulo.Core", eng, 1*sim.GHz, c)
	driver.TickLater()

	if err := eng.Run(); err != nil {
		panic(err)
	}

	return c.ExitCode()
}
