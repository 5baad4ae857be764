package cassette

import "math"

const (
	sampleAmplitude = 93.0
	sampleMidline   = 128.0
)

// tone is a span of the output signal at a fixed frequency for a given
// number of cycles (cycles may be fractional, e.g. 0.5 for a sync
// half-cycle). Invert starts the waveform a half-cycle out of phase,
// matching the inverted half-cycle Apple's sync bit specifies.
type tone struct {
	frequency float64
	cycles    float64
	invert    bool
}

// samples renders the tone to 8-bit unsigned PCM at sampleRate.
func (t tone) samples(sampleRate uint32) []byte {
	numSamples := int(math.Ceil(float64(sampleRate) / (t.frequency / t.cycles)))
	phaseOffset := 0.0
	if t.invert {
		phaseOffset = math.Ceil(float64(sampleRate) / (t.frequency / 0.5))
	}
	out := make([]byte, numSamples)
	for i := 0; i < numSamples; i++ {
		radians := 2 * math.Pi * t.frequency * (float64(i) + phaseOffset) / float64(sampleRate)
		v := math.Round(math.Sin(radians)*sampleAmplitude) + sampleMidline
		out[i] = byte(v)
	}
	return out
}

// appendTones renders each tone in order and appends the samples to buf.
func appendTones(buf []byte, sampleRate uint32, tones ...tone) []byte {
	for _, t := range tones {
		buf = append(buf, t.samples(sampleRate)...)
	}
	return buf
}

// encodeBits renders one full cycle per bit, most-significant bit first,
// using the low-frequency pair unless highFreq selects the high-frequency
// pair used for data-block records.
func encodeBits(data []byte, highFreq bool, sampleRate uint32) []byte {
	oneHz, zeroHz := float64(bitOneFrequency), float64(bitZeroFrequency)
	if highFreq {
		oneHz, zeroHz = float64(bitOneFrequencyHigh), float64(bitZeroFrequencyHigh)
	}
	var buf []byte
	for _, b := range data {
		for bit := 7; bit >= 0; bit-- {
			if (b>>uint(bit))&1 == 1 {
				buf = appendTones(buf, sampleRate, tone{frequency: oneHz, cycles: 1})
			} else {
				buf = appendTones(buf, sampleRate, tone{frequency: zeroHz, cycles: 1})
			}
		}
	}
	return buf
}
