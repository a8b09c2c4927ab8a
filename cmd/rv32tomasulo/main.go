// Command rv32tomasulo runs the Tomasulo RV32I simulator: it reads a
// memory image off stdin, executes until the halt sentinel retires, and
// writes the low byte of x10 to stdout.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zjxcpu/rv32tomasulo/emu"
	"github.com/zjxcpu/rv32tomasulo/loader"
	"github.com/zjxcpu/rv32tomasulo/timing/core"
	"github.com/zjxcpu/rv32tomasulo/timing/engine"
	"github.com/zjxcpu/rv32tomasulo/timing/latency"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a timing configuration JSON file (default: built-in defaults)")
		verbose    = flag.Bool("v", false, "print retired-instruction count, tick count, and branch prediction accuracy to stderr")
		pc         = flag.Uint("pc", 0, "initial program counter")
		noAkita    = flag.Bool("no-akita", false, "drive the core with a bare tick loop instead of the Akita engine")
	)
	flag.Parse()

	if flag.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "rv32tomasulo: unexpected arguments: %v\n", flag.Args())
		flag.PrintDefaults()
		os.Exit(1)
	}

	table, err := loadTimingTable(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rv32tomasulo: %v\n", err)
		os.Exit(1)
	}

	memory := emu.NewMemory()
	if err := loader.LoadInto(os.Stdin, memory); err != nil {
		fmt.Fprintf(os.Stderr, "rv32tomasulo: %v\n", err)
		os.Exit(1)
	}

	c := core.NewCore(memory, table)
	c.SetPC(uint32(*pc))

	var exitCode uint32
	if *noAkita {
		exitCode = c.Run()
	} else {
		exitCode = engine.Run(c)
	}

	fmt.Println(exitCode)

	if *verbose {
		printDiagnostics(c)
	}
}

func loadTimingTable(path string) (*latency.Table, error) {
	if path == "" {
		return latency.NewTable(), nil
	}
	config, err := latency.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load timing config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timing config: %w", err)
	}
	return latency.NewTableWithConfig(config), nil
}

func printDiagnostics(c *core.Core) {
	stats := c.Stats()
	fmt.Fprintf(os.Stderr, "cycles:      %d\n", stats.Cycles)
	fmt.Fprintf(os.Stderr, "committed:   %d\n", stats.Instructions)
	fmt.Fprintf(os.Stderr, "flushes:     %d\n", stats.Flushes)

	var accuracy float64
	if stats.BranchPredictions > 0 {
		accuracy = float64(stats.BranchCorrect) / float64(stats.BranchPredictions) * 100
	}
	fmt.Fprintf(os.Stderr, "branches:    %d (%.2f%% predicted correctly)\n", stats.BranchPredictions, accuracy)
}
