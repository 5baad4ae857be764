// Package cassette synthesizes and demodulates the Apple II cassette
// interface's audio encoding of a tokenized BASIC program: leader/sync
// framing, FSK-style tone bits, and XOR-checksummed record blocks.
package cassette

import "github.com/pkg/errors"

// ErrChecksumMismatch is surfaced (via byteutil) when a decoded block's
// trailing checksum byte does not match its payload.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ErrUnexpectedFrequency is returned when a tone outside the known bit/sync
// set appears in the middle of a block.
var ErrUnexpectedFrequency = errors.New("unexpected frequency")

// ErrNoHeaderFound is returned when the requested leader/sync pair could
// not be located in the signal.
var ErrNoHeaderFound = errors.New("no header found")

// ErrTruncatedBitStream is returned when the signal ends before a block's
// declared bit count is satisfied.
var ErrTruncatedBitStream = errors.New("truncated bit stream")
