package cassette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"a2cas-core-dx/internal/wave"
)

const testSampleRate = 48000

func TestEncodeDecodeRoundTripNoAutoRun(t *testing.T) {
	program := []byte{0xAD, '"', 'H', 'I', '"', 0x00}
	wav := Encode(program, nil, false, testSampleRate)

	gotProgram, gotData, autoRun, err := Decode(wav)
	require.NoError(t, err)
	assert.Equal(t, program, gotProgram)
	assert.Empty(t, gotData)
	assert.False(t, autoRun)
}

func TestEncodeDecodeRoundTripAutoRun(t *testing.T) {
	program := []byte{0x81, 'I', 0xC7, '1', 0x00}
	wav := Encode(program, nil, true, testSampleRate)

	gotProgram, _, autoRun, err := Decode(wav)
	require.NoError(t, err)
	assert.Equal(t, program, gotProgram)
	assert.True(t, autoRun)
}

func TestEncodeDecodeRoundTripWithDataBlock(t *testing.T) {
	program := []byte{0x80}
	data := []byte{0x01, 0x02, 0x03, 0x04}
	lengthBody := buildLengthRecord(len(program), false)
	programBody := buildChecksummedRecord(program)
	dataBody := buildChecksummedRecord(data)

	// Built without the closing trailer tones: the data block's own bits
	// legitimately end the signal, the same shape a third-party archive
	// that never recorded a trailer would have.
	var buf []byte
	buf = appendHeaderAndBits(buf, testSampleRate, lengthBody, false)
	buf = appendHeaderAndBits(buf, testSampleRate, programBody, false)
	buf = appendTones(buf, testSampleRate, gapBits(innerBlockGapBits)...)
	buf = append(buf, encodeBits(dataBody, true, testSampleRate)...)

	wav := wave.Encode(testSampleRate, buf)
	gotProgram, gotData, _, err := Decode(wav)
	require.NoError(t, err)
	assert.Equal(t, program, gotProgram)
	assert.Equal(t, data, gotData)
}

func TestDecodeChecksumMismatch(t *testing.T) {
	program := []byte{0xAD, 'H', 'I'}
	programBody := buildChecksummedRecord(program)
	corrupted := append([]byte{}, programBody...)
	corrupted[0] ^= 0xFF // flip a payload byte, leaving the checksum stale

	lengthBody := buildLengthRecord(len(program), false)
	pcm := encodeFrames(lengthBody, corrupted, nil, testSampleRate)
	wav := wave.Encode(testSampleRate, pcm)

	_, _, _, err := Decode(wav)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestDecodeNoHeaderFound(t *testing.T) {
	silence := make([]byte, 4800)
	for i := range silence {
		silence[i] = 128
	}
	wav := wave.Encode(testSampleRate, silence)

	_, _, _, err := Decode(wav)
	assert.ErrorIs(t, err, ErrNoHeaderFound)
}

func TestDecodeTruncatedBitStream(t *testing.T) {
	program := []byte{0xAD, 'H', 'I', 'G', 'R'}
	lengthBody := buildLengthRecord(len(program), false)
	programBody := buildChecksummedRecord(program)

	var buf []byte
	buf = appendHeaderAndBits(buf, testSampleRate, lengthBody, false)
	buf = appendTones(buf, testSampleRate,
		tone{frequency: leaderFrequency, cycles: leaderCycles},
		tone{frequency: syncHighFrequency, cycles: 0.5},
		tone{frequency: syncLowFrequency, cycles: 0.5, invert: true},
	)
	programBits := encodeBits(programBody, false, testSampleRate)
	buf = append(buf, programBits[:len(programBits)/2]...) // stop mid-block

	wav := wave.Encode(testSampleRate, buf)
	_, _, _, err := Decode(wav)
	assert.ErrorIs(t, err, ErrTruncatedBitStream)
}
