package modem

import (
	"fmt"
	"strings"
)

// Bits is an ordered sequence of binary values, one value per element.
type Bits []uint8

// Validate returns ErrInvalidBitVector if any element is neither 0 nor 1.
func Validate(bits Bits) error {
	for i, b := range bits {
		if b > 1 {
			return fmt.Errorf("%w: value %d at position %d", ErrInvalidBitVector, b, i)
		}
	}
	return nil
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, bit := range b {
		if bit == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// Preview renders the first n bits, followed by "..." when the sequence is longer.
func (b Bits) Preview(n int) string {
	if len(b) <= n {
		return b.String()
	}
	return b[:n].String() + "..."
}
