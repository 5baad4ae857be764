package cassette

import (
	"math"
	"sort"
)

type signalLevel int

const (
	signalHigh signalLevel = iota
	signalLow
)

// demodulator reproduces the Apple II cassette read circuit's zero-crossing
// frequency counter: rather than an FFT, it times successive sign changes
// of the signal and infers the tone frequency from the elapsed samples.
// All state is scoped to a single decode call.
type demodulator struct {
	signal                 signalLevel
	lastCrossingTime       float64
	lastAmplitude          int32
	lastRecordedFrequency  uint32
	frequencyMap           map[int]uint32
}

func newDemodulator() *demodulator {
	return &demodulator{
		signal:       signalHigh,
		frequencyMap: make(map[int]uint32),
	}
}

// run feeds every sample through handleSample in order; the demodulator's
// zero-crossing state is only valid under strictly increasing sample order.
func (d *demodulator) run(samples []byte, sampleRate uint32) {
	for i := range samples {
		d.handleSample(i, samples, sampleRate)
	}
}

func (d *demodulator) handleSample(i int, samples []byte, sampleRate uint32) {
	v := int32(samples[i]) - int32(sampleMidline)
	s := signalHigh
	if v < 0 {
		s = signalLow
	}
	if s == d.signal {
		d.lastAmplitude = v
		return
	}

	totalDelta := float64(v - d.lastAmplitude)
	var fraction float64
	if totalDelta != 0 {
		fraction = math.Abs(float64(v) / totalDelta)
	}
	fixedTime := float64(i) - fraction

	dtSamples := fixedTime - d.lastCrossingTime
	secondsPerFullCycle := 2 * dtSamples / float64(sampleRate)
	f := 1 / secondsPerFullCycle

	if math.IsInf(f, 0) || math.IsNaN(f) {
		d.lastCrossingTime = fixedTime
		d.lastAmplitude = v
		return
	}

	fc := snapToKnownFrequency(f)
	if uint32(fc) != d.lastRecordedFrequency {
		halfCycleSamples := math.Ceil(float64(sampleRate) / (fc / 0.5))
		start := i - (int(halfCycleSamples) - 1)
		if start < 0 {
			start = 0
		}
		d.frequencyMap[start] = uint32(fc)
		d.lastRecordedFrequency = uint32(fc)
	}

	d.signal = s
	d.lastCrossingTime = fixedTime
	d.lastAmplitude = v
}

func snapToKnownFrequency(f float64) float64 {
	best := f
	bestDiff := math.Inf(1)
	for _, kf := range knownFrequencies {
		diff := math.Abs(f - kf)
		if diff < bestDiff {
			bestDiff = diff
			best = kf
		}
	}
	if bestDiff <= snapTolerance {
		return best
	}
	return f
}

// sortedKeys returns the frequencyMap's sample-index keys in ascending
// order.
func (d *demodulator) sortedKeys() []int {
	keys := make([]int, 0, len(d.frequencyMap))
	for k := range d.frequencyMap {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// optimizedFrequencyMap builds, in a single linear sweep, an array where
// entry j holds the largest frequencyMap key at or before j (or -1 before
// the first recorded tone).
func (d *demodulator) optimizedFrequencyMap(numSamples int) []int {
	keys := d.sortedKeys()
	optimized := make([]int, numSamples)
	ki := 0
	current := -1
	for j := 0; j < numSamples; j++ {
		for ki < len(keys) && keys[ki] <= j {
			current = keys[ki]
			ki++
		}
		optimized[j] = current
	}
	return optimized
}

// inferredFrequencyFunc returns a lookup closure bound to a freshly built
// optimized map, matching the decoder's frame-parsing pseudocode
// (`inferredFrequency(i) = frequencyMap[optimizedFrequencyMap[i]]`).
func (d *demodulator) inferredFrequencyFunc(numSamples int) func(int) (uint32, bool) {
	optimized := d.optimizedFrequencyMap(numSamples)
	return func(i int) (uint32, bool) {
		if i < 0 || i >= len(optimized) {
			return 0, false
		}
		k := optimized[i]
		if k < 0 {
			return 0, false
		}
		f, ok := d.frequencyMap[k]
		return f, ok
	}
}

// leaderSamples returns the sample indices, in ascending order, where a
// 770 Hz leader tone was first recorded.
func (d *demodulator) leaderSamples() []int {
	var leaders []int
	for _, k := range d.sortedKeys() {
		if d.frequencyMap[k] == leaderFrequency {
			leaders = append(leaders, k)
		}
	}
	return leaders
}

// hasRecordedFrequenciesAfter reports whether anything other than the
// archive's closing trailer (a 2000 Hz run optionally followed by a final
// 770 Hz run, or just the final 770 Hz run) remains at or after sample i.
// A real data block's bits are a changing mix of bit frequencies, which
// this shape can never produce, so it disambiguates "no data block" from
// "data block present" without relying on exact sample-position arithmetic
// against the trailer's own, separately synthesized, timing.
func (d *demodulator) hasRecordedFrequenciesAfter(i int) bool {
	keys := d.sortedKeys()
	start := sort.Search(len(keys), func(k int) bool { return keys[k] >= i })
	remaining := keys[start:]

	switch len(remaining) {
	case 0:
		return false
	case 1:
		return d.frequencyMap[remaining[0]] != leaderFrequency
	case 2:
		return !(d.frequencyMap[remaining[0]] == bitZeroFrequency && d.frequencyMap[remaining[1]] == leaderFrequency)
	default:
		return true
	}
}

// trailerBoundary returns the sample index at which the archive's closing
// trailer begins, scanning forward from i, or -1 if no such boundary is
// recorded before the end of the signal. A data block's bit-reader uses
// this so it stops at the trailer instead of folding the trailer's leading
// 2000 Hz run into the block as extra zero bits — that run is, in
// isolation, indistinguishable from a real "0" bit.
func (d *demodulator) trailerBoundary(i int) int {
	keys := d.sortedKeys()
	start := sort.Search(len(keys), func(k int) bool { return keys[k] >= i })
	for _, k := range keys[start:] {
		if !d.hasRecordedFrequenciesAfter(k) {
			return k
		}
	}
	return -1
}
