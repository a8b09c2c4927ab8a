package latency

import (
	"encoding/json"
	"fmt"
	"os"
)

// TimingConfig holds the core's configurable timing parameters. The
// reference implementation hardcodes its memory port to a fixed number
// of phase-steps; this config makes that latency tunable from a JSON
// file instead, following the same load/save shape the teacher used for
// its own (much larger) per-instruction-class timing table.
type TimingConfig struct {
	// MemoryPortLatency is the number of cycles a load or store spends
	// in flight through the memory port before it completes. Default: 3
	// cycles.
	MemoryPortLatency uint64 `json:"memory_port_latency"`

	// PredictorTableSize is the number of entries in the branch
	// predictor's history table. Must be a power of 2. Default: 1024.
	PredictorTableSize uint64 `json:"predictor_table_size"`
}

// DefaultTimingConfig returns a TimingConfig with spec-mandated
// defaults.
func DefaultTimingConfig() *TimingConfig {
	return &TimingConfig{
		MemoryPortLatency:  3,
		PredictorTableSize: 1024,
	}
}

// LoadConfig loads a TimingConfig from a JSON file.
func LoadConfig(path string) (*TimingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timing config file: %w", err)
	}

	config := DefaultTimingConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse timing config: %w", err)
	}

	return config, nil
}

// SaveConfig writes a TimingConfig to a JSON file.
func (c *TimingConfig) SaveConfig(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize timing config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timing config file: %w", err)
	}

	return nil
}

// Validate checks that the configured timing values are usable.
func (c *TimingConfig) Validate() error {
	if c.MemoryPortLatency == 0 {
		return fmt.Errorf("memory_port_latency must be > 0")
	}
	if c.PredictorTableSize == 0 {
		return fmt.Errorf("predictor_table_size must be > 0")
	}
	if c.PredictorTableSize&(c.PredictorTableSize-1) != 0 {
		return fmt.Errorf("predictor_table_size must be a power of 2")
	}
	return nil
}

// Clone returns a deep copy of the TimingConfig.
func (c *TimingConfig) Clone() *TimingConfig {
	return &TimingConfig{
		MemoryPortLatency:  c.MemoryPortLatency,
		PredictorTableSize: c.PredictorTableSize,
	}
}
