// Package predictor implements the branch direction predictor the fetch
// stage consults before a conditional branch's operands are even known.
// RV32I branch targets are always pc+immediate, computable the instant
// the instruction is decoded, so unlike a target-address predictor this
// one only ever needs to guess taken or not-taken.
package predictor

// Config configures a Predictor's branch history table.
type Config struct {
	// TableSize is the number of entries in the branch history table.
	// Must be a power of 2. Default is 1024.
	TableSize uint32
}

// DefaultConfig returns the default predictor configuration.
func DefaultConfig() Config {
	return Config{TableSize: 1024}
}

// Stats holds running prediction accuracy counters.
type Stats struct {
	Predictions    uint64
	Correct        uint64
	Mispredictions uint64
}

// Accuracy returns the prediction accuracy as a percentage.
func (s Stats) Accuracy() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Predictions) * 100
}

// MispredictionRate returns the misprediction rate as a percentage.
func (s Stats) MispredictionRate() float64 {
	if s.Predictions == 0 {
		return 0
	}
	return float64(s.Mispredictions) / float64(s.Predictions) * 100
}

// Predictor is a direct-mapped table of 2-bit saturating counters (the
// classic bimodal predictor), indexed by the low bits of the branch's PC.
// Counter states: 0=strongly not-taken, 1=weakly not-taken, 2=weakly
// taken, 3=strongly taken.
type Predictor struct {
	table []uint8
	size  uint32
	stats Stats
}

// New creates a predictor with the given configuration. Every counter
// starts weakly taken, matching the reference bias towards predicting
// branches taken.
func New(config Config) *Predictor {
	size := config.TableSize
	if size == 0 {
		size = 1024
	}

	p := &Predictor{
		table: make([]uint8, size),
		size:  size,
	}
	for i := range p.table {
		p.table[i] = 2
	}
	return p
}

func (p *Predictor) index(pc uint32) uint32 {
	return (pc >> 2) & (p.size - 1)
}

// Predict returns whether the branch at pc is predicted taken. It does
// not update statistics by itself; Update does that once the real
// outcome is known.
func (p *Predictor) Predict(pc uint32) bool {
	return p.table[p.index(pc)] >= 2
}

// Update records the actual outcome of the branch at pc, adjusting its
// saturating counter and the accuracy statistics.
func (p *Predictor) Update(pc uint32, taken bool) {
	idx := p.index(pc)
	counter := p.table[idx]

	predicted := counter >= 2
	if predicted == taken {
		p.stats.Correct++
	} else {
		p.stats.Mispredictions++
	}
	p.stats.Predictions++

	switch {
	case taken && counter < 3:
		p.table[idx] = counter + 1
	case !taken && counter > 0:
		p.table[idx] = counter - 1
	}
}

// Stats returns the predictor's running accuracy statistics.
func (p *Predictor) Stats() Stats {
	return p.stats
}

// Reset clears every counter back to weakly taken and zeroes statistics.
func (p *Predictor) Reset() {
	for i := range p.table {
		p.table[i] = 2
	}
	p.stats = Stats{}
}
