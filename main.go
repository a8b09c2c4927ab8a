// Command rv32tomasulo (root) is a thin alias for the full CLI.
// For the complete flag set, use: go run ./cmd/rv32tomasulo
package main

import (
	"fmt"
	"os"

	"github.com/zjxcpu/rv32tomasulo/emu"
	"github.com/zjxcpu/rv32tomasulo/loader"
	"github.com/zjxcpu/rv32tomasulo/timing/core"
	"github.com/zjxcpu/rv32tomasulo/timing/latency"
)

func main() {
	if len(os.Args) > 1 {
		fmt.Fprintln(os.Stderr, "rv32tomasulo: flags are only accepted by ./cmd/rv32tomasulo; run that instead for -config/-v/-pc/-no-akita")
		os.Exit(1)
	}

	memory := emu.NewMemory()
	if err := loader.LoadInto(os.Stdin, memory); err != nil {
		fmt.Fprintf(os.Stderr, "rv32tomasulo: %v\n", err)
		os.Exit(1)
	}

	c := core.NewCore(memory, latency.NewTable())
	fmt.Println(c.Run())
}
