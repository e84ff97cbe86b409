package bitstream

import "errors"

// Stream errors
var (
	// ErrTruncatedStream is returned when a read needs more bits than remain
	// in the frame. The cursor is left where it was before the read.
	ErrTruncatedStream = errors.New("bitstream: truncated stream")

	ErrInvalidWidth       = errors.New("bitstream: bit width must be between 1 and 64")
	ErrCollectionTooLarge = errors.New("bitstream: collection count exceeds limit")
	ErrWriterClosed       = errors.New("bitstream: writer already flushed")
)

// MaxCollectionCount caps length prefixes of repeated fields.
const MaxCollectionCount = 100_000
