package cassette

import (
	"a2cas-core-dx/internal/byteutil"
	"a2cas-core-dx/internal/debug"
	"a2cas-core-dx/internal/wave"
)

// autoRunByte is written into the length record when the archive should
// cause the Apple II to run the program immediately after loading.
const autoRunByte = 0xD5

// Encode synthesizes a complete WAVE file for a tokenized BASIC program
// (and an optional trailing data block), framed the way the Apple II
// cassette ROM routines frame a SAVE.
func Encode(program []byte, data []byte, autoRun bool, sampleRate uint32) []byte {
	return EncodeWithOptions(program, data, autoRun, sampleRate, Options{})
}

// EncodeWithOptions is Encode with a caller-supplied debug.Logger; logs the
// record layout decisions (length, presence of a data block) at
// LogLevelDebug when a logger is set, and threads the same logger into the
// WAVE container write.
func EncodeWithOptions(program []byte, data []byte, autoRun bool, sampleRate uint32, opts Options) []byte {
	if opts.Logger != nil {
		opts.Logger.LogEncoderf(debug.LogLevelDebug, "encoding program (%d bytes, autoRun=%t) with data block: %t", len(program), autoRun, len(data) > 0)
	}
	samples := encodeSamples(program, data, autoRun, sampleRate)
	return wave.EncodeWithOptions(sampleRate, samples, wave.Options{Logger: opts.Logger})
}

// encodeSamples renders the raw PCM body without the WAVE header: it
// builds the checksummed record bodies and hands them to encodeFrames.
func encodeSamples(program []byte, data []byte, autoRun bool, sampleRate uint32) []byte {
	lengthBody := buildLengthRecord(len(program), autoRun)
	programBody := buildChecksummedRecord(program)
	dataBody := buildChecksummedRecord(data)
	return encodeFrames(lengthBody, programBody, dataBody, sampleRate)
}

// encodeFrames lays out the already-checksummed record bodies into the
// leader/sync/body/trailer frame sequence. Kept separate from
// encodeSamples so tests can synthesize an archive from a deliberately
// corrupted record body.
func encodeFrames(lengthBody, programBody, dataBody []byte, sampleRate uint32) []byte {
	var buf []byte
	buf = appendHeaderAndBits(buf, sampleRate, lengthBody, false)
	buf = appendHeaderAndBits(buf, sampleRate, programBody, false)
	if len(dataBody) > 0 {
		buf = appendTones(buf, sampleRate, gapBits(innerBlockGapBits)...)
		buf = append(buf, encodeBits(dataBody, true, sampleRate)...)
	}
	buf = appendTones(buf, sampleRate,
		tone{frequency: trailingLow, cycles: trailingLowN},
		tone{frequency: leaderFrequency, cycles: trailingHighN},
	)
	return buf
}

// buildLengthRecord is the 4-byte length record body: the program's byte
// count, the auto-run flag, and a checksum over those first three bytes.
func buildLengthRecord(programLength int, autoRun bool) []byte {
	body := make([]byte, 3)
	byteutil.WriteU16LE(body, 0, uint16(programLength))
	if autoRun {
		body[2] = autoRunByte
	}
	return append(body, byteutil.XORChecksum(body))
}

// buildChecksummedRecord appends a trailing XOR checksum to payload. An
// empty payload yields an empty record (no block is emitted for it).
func buildChecksummedRecord(payload []byte) []byte {
	if len(payload) == 0 {
		return nil
	}
	return append(append([]byte{}, payload...), byteutil.XORChecksum(payload))
}

// appendHeaderAndBits emits one leader+sync+body frame: the 770 Hz leader,
// the inverted 2500/2000 Hz sync bit, then body encoded one cycle per bit.
func appendHeaderAndBits(buf []byte, sampleRate uint32, body []byte, highFreq bool) []byte {
	buf = appendTones(buf, sampleRate,
		tone{frequency: leaderFrequency, cycles: leaderCycles},
		tone{frequency: syncHighFrequency, cycles: 0.5},
		tone{frequency: syncLowFrequency, cycles: 0.5, invert: true},
	)
	buf = append(buf, encodeBits(body, highFreq, sampleRate)...)
	return buf
}

// gapBits renders n silent-of-meaning full cycles at the low bit-zero
// frequency, used as the empirically measured spacer between a program
// block's checksum and a following data block.
func gapBits(n int) []tone {
	tones := make([]tone, n)
	for i := range tones {
		tones[i] = tone{frequency: bitZeroFrequency, cycles: 1}
	}
	return tones
}
