package modem

import "errors"

var (
	// ErrInvalidBitVector reports a bit buffer holding a value other than 0 or 1.
	ErrInvalidBitVector = errors.New("invalid bit vector")

	// ErrInvalidLength reports a buffer whose length does not fit the requested grouping.
	ErrInvalidLength = errors.New("invalid length")

	// ErrFrameKind reports a frame whose sample type does not match the stage consuming it.
	ErrFrameKind = errors.New("unexpected frame kind")
)
