package cassette

// Tone frequencies, all in Hz. Apple's cassette ROM code produces these
// exact values; the demodulator snaps noisy measurements back onto this
// set (see snapToKnownFrequency).
const (
	leaderFrequency   = 770
	syncHighFrequency = 2500
	syncLowFrequency  = 2000

	bitOneFrequency  = 1000
	bitZeroFrequency = 2000

	bitOneFrequencyHigh  = 6000
	bitZeroFrequencyHigh = 12000
)

// knownFrequencies is the full set the zero-crossing demodulator snaps
// onto, within snapTolerance.
var knownFrequencies = []float64{770, 1000, 1500, 2000, 2250, 2500, 6000, 12000}

const snapTolerance = 250.0

const (
	leaderCycles   = 3080
	trailingLow    = 2000
	trailingLowN   = 10
	trailingHighN  = 10
	innerBlockGapBits = 5
)
