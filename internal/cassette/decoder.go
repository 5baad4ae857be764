package cassette

import (
	"math"

	"github.com/pkg/errors"

	"a2cas-core-dx/internal/byteutil"
	"a2cas-core-dx/internal/debug"
	"a2cas-core-dx/internal/wave"
)

// Options configures a single encode or decode run. The zero value runs
// with logging disabled, matching basic.Options.
type Options struct {
	Logger *debug.Logger
}

// Decode parses a WAVE file produced by Encode (or a compatible cassette
// archive) back into the tokenized BASIC program it carries, any trailing
// data block, and the auto-run flag from the length record.
func Decode(waveFile []byte) (program []byte, data []byte, autoRun bool, err error) {
	return DecodeWithOptions(waveFile, Options{})
}

// DecodeWithOptions is Decode with a caller-supplied debug.Logger; decoder
// framing milestones (leader found, sync located, block boundary crossed)
// are logged at LogLevelDebug when a logger is set.
func DecodeWithOptions(waveFile []byte, opts Options) (program []byte, data []byte, autoRun bool, err error) {
	f, err := wave.DecodeWithOptions(waveFile, wave.Options{Logger: opts.Logger})
	if err != nil {
		return nil, nil, false, errors.Wrap(err, "decoding WAVE container")
	}
	return decodeSamples(f.Samples, f.SampleRate, opts.Logger)
}

func decodeSamples(samples []byte, sampleRate uint32, logger *debug.Logger) (program []byte, data []byte, autoRun bool, err error) {
	d := newDemodulator()
	d.run(samples, sampleRate)
	freq := d.inferredFrequencyFunc(len(samples))
	leaders := d.leaderSamples()
	if logger != nil {
		logger.LogDecoderf(debug.LogLevelDebug, "found %d leader tone(s) at samples %v", len(leaders), leaders)
	}

	lengthStart, err := findBlockBodyStartLogged(leaders, 0, freq, sampleRate, logger)
	if err != nil {
		return nil, nil, false, err
	}
	lengthBits, _, err := readBitsUntilBlockEnd(lengthStart, samples, freq, sampleRate)
	if err != nil {
		return nil, nil, false, err
	}
	lengthBytes, err := byteutil.BitsToBytesValidated(lengthBits)
	if err != nil {
		return nil, nil, false, errors.Wrap(wrapChecksum(err), "length record")
	}
	if len(lengthBytes) != 3 {
		return nil, nil, false, errors.Wrapf(ErrTruncatedBitStream, "length record decoded to %d bytes, want 3", len(lengthBytes))
	}
	programLength := uint16(lengthBytes[0]) | uint16(lengthBytes[1])<<8
	autoRun = lengthBytes[2] == autoRunByte

	programStart, err := findBlockBodyStartLogged(leaders, 1, freq, sampleRate, logger)
	if err != nil {
		return nil, nil, false, err
	}
	programBits, afterProgram, err := readExactBits(programStart, int(programLength+1)*8, samples, freq, sampleRate)
	if err != nil {
		return nil, nil, false, err
	}
	program, err = byteutil.BitsToBytesValidated(programBits)
	if err != nil {
		return nil, nil, false, errors.Wrap(wrapChecksum(err), "program record")
	}
	if logger != nil {
		logger.LogDecoderf(debug.LogLevelDebug, "program block boundary crossed at sample %d", afterProgram)
	}

	data, err = decodeOptionalDataBlock(d, afterProgram, samples, freq, sampleRate, logger)
	if err != nil {
		return nil, nil, false, err
	}

	return program, data, autoRun, nil
}

func findBlockBodyStartLogged(leaders []int, which int, freq func(int) (uint32, bool), sampleRate uint32, logger *debug.Logger) (int, error) {
	start, err := findBlockBodyStart(leaders, which, freq, sampleRate)
	if err != nil {
		return 0, err
	}
	if logger != nil {
		logger.LogDecoderf(debug.LogLevelDebug, "sync bit for leader %d located, body starts at sample %d", which, start)
	}
	return start, nil
}

// decodeOptionalDataBlock attempts to read a trailing data-block record
// past the program block's checksum. Encode emits one only when given a
// non-empty data slice (a2cas.EncodeWave never passes one). Its
// absence — nothing left but the archive's closing trailer, or nothing left
// at all — is not an error; data is simply empty.
func decodeOptionalDataBlock(d *demodulator, i int, samples []byte, freq func(int) (uint32, bool), sampleRate uint32, logger *debug.Logger) ([]byte, error) {
	if !d.hasRecordedFrequenciesAfter(i) {
		return nil, nil
	}

	afterGap, err := advanceBits(i, innerBlockGapBits, samples, freq, sampleRate)
	if err != nil {
		return nil, nil
	}
	boundary := d.trailerBoundary(afterGap)
	if logger != nil {
		logger.LogDecoderf(debug.LogLevelDebug, "data block detected after sample %d, trailer boundary at %d", i, boundary)
	}
	dataBits, _, err := readBitsUntilBoundary(afterGap, boundary, samples, freq, sampleRate)
	if err != nil {
		return nil, err
	}
	if len(dataBits) == 0 {
		return nil, nil
	}
	data, err := byteutil.BitsToBytesValidated(dataBits)
	if err != nil {
		return nil, errors.Wrap(wrapChecksum(err), "data record")
	}
	return data, nil
}

func wrapChecksum(err error) error {
	if errors.Is(err, byteutil.ErrChecksumMismatch) {
		return ErrChecksumMismatch
	}
	return err
}

// findBlockBodyStart locates the k-th leader's sync bit and returns the
// sample index where the block's bit stream begins, just past the
// 2500 Hz/2000 Hz sync half-cycles and a small safety margin.
func findBlockBodyStart(leaders []int, which int, freq func(int) (uint32, bool), sampleRate uint32) (int, error) {
	if which >= len(leaders) {
		return 0, errors.Wrapf(ErrNoHeaderFound, "leader %d not found", which)
	}
	leaderSample := leaders[which]

	syncStart := -1
	for i := leaderSample; ; i++ {
		f, ok := freq(i)
		if !ok {
			break
		}
		if f == syncHighFrequency {
			syncStart = i
			break
		}
		if f != leaderFrequency {
			break
		}
	}
	if syncStart < 0 {
		return 0, errors.Wrapf(ErrNoHeaderFound, "sync bit for leader %d not found", which)
	}
	bodyStart := syncStart + int(math.Ceil(float64(sampleRate)/2250.0)) + 2
	return bodyStart, nil
}

// readBitsUntilBlockEnd reads bits one full cycle at a time until a leader
// or sync tone (or the end of the signal) marks the end of the block.
func readBitsUntilBlockEnd(i int, samples []byte, freq func(int) (uint32, bool), sampleRate uint32) ([]int, int, error) {
	var bits []int
	for {
		f, ok := freq(i)
		if !ok || f == leaderFrequency || f == syncHighFrequency {
			return bits, i, nil
		}
		bit, err := bitForFrequency(f, i)
		if err != nil {
			return nil, i, err
		}
		bits = append(bits, bit)
		i += cyclesSamples(f, sampleRate)
		if i >= len(samples) {
			return bits, i, nil
		}
	}
}

// readBitsUntilBoundary is readBitsUntilBlockEnd with an additional,
// precomputed stopping point (see demodulator.trailerBoundary); boundary
// -1 disables it and the function behaves identically to
// readBitsUntilBlockEnd.
func readBitsUntilBoundary(i int, boundary int, samples []byte, freq func(int) (uint32, bool), sampleRate uint32) ([]int, int, error) {
	var bits []int
	for {
		if boundary >= 0 && i >= boundary {
			return bits, i, nil
		}
		f, ok := freq(i)
		if !ok || f == leaderFrequency || f == syncHighFrequency {
			return bits, i, nil
		}
		bit, err := bitForFrequency(f, i)
		if err != nil {
			return nil, i, err
		}
		bits = append(bits, bit)
		i += cyclesSamples(f, sampleRate)
		if i >= len(samples) {
			return bits, i, nil
		}
	}
}

// readExactBits reads exactly n bits, failing with ErrTruncatedBitStream if
// the signal ends or a framing tone appears first.
func readExactBits(i int, n int, samples []byte, freq func(int) (uint32, bool), sampleRate uint32) ([]int, int, error) {
	bits := make([]int, 0, n)
	for len(bits) < n {
		f, ok := freq(i)
		if !ok {
			return nil, i, errors.Wrapf(ErrTruncatedBitStream, "expected %d bits, got %d", n, len(bits))
		}
		if f == leaderFrequency || f == syncHighFrequency {
			return nil, i, errors.Wrapf(ErrTruncatedBitStream, "block ended early at %d/%d bits", len(bits), n)
		}
		bit, err := bitForFrequency(f, i)
		if err != nil {
			return nil, i, err
		}
		bits = append(bits, bit)
		i += cyclesSamples(f, sampleRate)
		if i >= len(samples) && len(bits) < n {
			return nil, i, errors.Wrapf(ErrTruncatedBitStream, "expected %d bits, got %d", n, len(bits))
		}
	}
	return bits, i, nil
}

// advanceBits walks forward exactly n bit-cycles without collecting their
// values, used to skip the fixed gap between the program and data blocks.
func advanceBits(i int, n int, samples []byte, freq func(int) (uint32, bool), sampleRate uint32) (int, error) {
	for k := 0; k < n; k++ {
		f, ok := freq(i)
		if !ok {
			return i, errors.Wrapf(ErrTruncatedBitStream, "gap ended early at bit %d/%d", k, n)
		}
		i += cyclesSamples(f, sampleRate)
		if i >= len(samples) {
			return i, errors.Wrapf(ErrTruncatedBitStream, "gap ended early at bit %d/%d", k, n)
		}
	}
	return i, nil
}

func bitForFrequency(f uint32, sample int) (int, error) {
	switch f {
	case bitOneFrequency, bitOneFrequencyHigh:
		return 1, nil
	case bitZeroFrequency, bitZeroFrequencyHigh:
		return 0, nil
	default:
		return 0, errors.Wrapf(ErrUnexpectedFrequency, "unexpected frequency %dHz at sample %d", f, sample)
	}
}

func cyclesSamples(f uint32, sampleRate uint32) int {
	return int(math.Ceil(float64(sampleRate) / float64(f)))
}
