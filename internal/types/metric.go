package types

import "math"

// WeightedMetric accumulates task volume and volume-weighted handle time.
// It is the single aggregation primitive reused at every grouping level
// (global, employee, team lead, shift, day, task type).
type WeightedMetric struct {
	Volume       int
	WeightedTime float64
}

// Accumulate adds count units handled at the given average handle time
func (m *WeightedMetric) Accumulate(count int, aht float64) {
	m.Volume += count
	m.WeightedTime += float64(count) * aht
}

// Merge folds another accumulator into this one
func (m *WeightedMetric) Merge(other WeightedMetric) {
	m.Volume += other.Volume
	m.WeightedTime += other.WeightedTime
}

// AHT returns the volume-weighted average handle time at full precision,
// or 0 when no volume has been accumulated
func (m WeightedMetric) AHT() float64 {
	if m.Volume <= 0 {
		return 0
	}
	return m.WeightedTime / float64(m.Volume)
}

// RoundedAHT returns the AHT rounded to two decimals. Rounding is applied
// only at the response boundary; accumulators keep full precision.
func (m WeightedMetric) RoundedAHT() float64 {
	return Round2(m.AHT())
}

// Round2 rounds a float to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
