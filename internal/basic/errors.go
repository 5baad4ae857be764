package basic

import "github.com/pkg/errors"

// ErrInvalidLineNumber is wrapped when a source line's leading atom is
// missing, not a non-negative integer, or falls outside [0, 63999) (63999
// itself is rejected).
var ErrInvalidLineNumber = errors.New("invalid line number")

// ErrTruncatedInput is wrapped when the disassembler would need to read
// past the end of the supplied byte buffer.
var ErrTruncatedInput = errors.New("truncated input")

const (
	minLineNumber = 0
	maxLineNumber = 63999
	loadAddress   = 0x0800

	// minRecordLength is the shortest record encodeRecord ever produces: a
	// 4-byte header, an empty body, and the terminator, plus the encoder's
	// off-by-one that stretches the sliced record by one more byte (see
	// encodeRecord in assembler.go). A declared length shorter than this
	// cannot have come from a well-formed record.
	minRecordLength = 6
)
