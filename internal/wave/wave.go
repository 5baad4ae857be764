// Package wave hand-lays-out the 44-byte canonical WAVE/RIFF PCM container
// used to carry cassette audio: 8-bit unsigned mono samples at a
// caller-supplied rate. A generic chunk-walking WAV library would happily
// read and write files that are RIFF-valid but not byte-identical to what
// real Apple II cassette utilities expect (different chunk ordering,
// optional chunks); the decoder in this toolkit has to parse exactly this
// fixed layout back out, so the header is written field by field at fixed
// offsets with encoding/binary, the same way the ROM header builder this
// package is descended from lays out its own fixed-format binary header.
package wave

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"a2cas-core-dx/internal/debug"
)

// Options configures a single Encode or Decode call. The zero value logs
// nothing, matching basic.Options and cassette.Options.
type Options struct {
	Logger *debug.Logger
}

const (
	// HeaderSize is the fixed size of a canonical WAVE header.
	HeaderSize = 44

	bitsPerSample = 8
	numChannels   = 1
)

// ErrNotWave is returned by Decode when the buffer does not start with a
// recognizable RIFF/WAVE header.
var ErrNotWave = errors.New("not a WAVE file")

// ErrHeaderTruncated is returned by Decode when the buffer is shorter than
// a full header.
var ErrHeaderTruncated = errors.New("WAVE header truncated")

// File is a decoded 8-bit unsigned mono WAVE file.
type File struct {
	SampleRate uint32
	Samples    []byte
}

// Encode writes samples out as an 8-bit unsigned mono WAVE file at the
// given sample rate.
func Encode(sampleRate uint32, samples []byte) []byte {
	return EncodeWithOptions(sampleRate, samples, Options{})
}

// EncodeWithOptions is Encode with a caller-supplied debug.Logger; logs the
// container's size and sample rate at LogLevelDebug when a logger is set.
func EncodeWithOptions(sampleRate uint32, samples []byte, opts Options) []byte {
	if opts.Logger != nil {
		opts.Logger.LogWavef(debug.LogLevelDebug, "encoding %d samples at %d Hz", len(samples), sampleRate)
	}
	dataSize := uint32(len(samples))
	byteRate := sampleRate * numChannels * bitsPerSample / 8
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	out := make([]byte, HeaderSize+len(samples))
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], 36+dataSize)
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16) // fmt chunk size
	binary.LittleEndian.PutUint16(out[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(out[22:24], numChannels)
	binary.LittleEndian.PutUint32(out[24:28], sampleRate)
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], bitsPerSample)
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], dataSize)
	copy(out[44:], samples)
	return out
}

// Decode parses a canonical 44-byte-header WAVE file, returning its sample
// rate and raw 8-bit unsigned sample bytes.
func Decode(buf []byte) (File, error) {
	return DecodeWithOptions(buf, Options{})
}

// DecodeWithOptions is Decode with a caller-supplied debug.Logger; logs the
// parsed sample rate and data size at LogLevelDebug when a logger is set.
func DecodeWithOptions(buf []byte, opts Options) (File, error) {
	f, err := decode(buf)
	if err == nil && opts.Logger != nil {
		opts.Logger.LogWavef(debug.LogLevelDebug, "decoded %d samples at %d Hz", len(f.Samples), f.SampleRate)
	}
	return f, err
}

func decode(buf []byte) (File, error) {
	if len(buf) < HeaderSize {
		return File{}, errors.Wrapf(ErrHeaderTruncated, "got %d bytes, need at least %d", len(buf), HeaderSize)
	}
	if string(buf[0:4]) != "RIFF" || string(buf[8:12]) != "WAVE" {
		return File{}, errors.Wrap(ErrNotWave, "missing RIFF/WAVE markers")
	}
	if string(buf[12:16]) != "fmt " || string(buf[36:40]) != "data" {
		return File{}, errors.Wrap(ErrNotWave, "missing fmt/data chunk markers")
	}

	sampleRate32 := binary.LittleEndian.Uint32(buf[24:28])
	dataSize := binary.LittleEndian.Uint32(buf[40:44])
	if HeaderSize+int(dataSize) > len(buf) {
		return File{}, errors.Wrapf(ErrHeaderTruncated, "data chunk declares %d bytes, only %d available", dataSize, len(buf)-HeaderSize)
	}

	samples := make([]byte, dataSize)
	copy(samples, buf[HeaderSize:HeaderSize+int(dataSize)])
	return File{SampleRate: sampleRate32, Samples: samples}, nil
}
