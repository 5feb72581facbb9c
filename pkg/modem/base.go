package modem

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// Modem maps bit groups to baseband symbols and back.
//
// Modulate returns the number of zero bits appended to complete the last
// symbol; the same value must be handed back to Demodulate, which drops
// that many bits from the end of its output.
type Modem interface {
	Scheme() Scheme
	Modulate(inputBits Bits) (Frame, int, error)
	Demodulate(symbols Frame, padding int) (Bits, error)
}

type Scheme int

const (
	SchemeAntipodal Scheme = iota
	SchemeQuadrature
)

// ParseScheme accepts the scheme names and their conventional aliases, case-insensitively.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "antipodal", "bpsk":
		return SchemeAntipodal, nil
	case "quadrature", "qpsk":
		return SchemeQuadrature, nil
	default:
		return 0, fmt.Errorf("unknown modulation scheme %q", name)
	}
}

func (s Scheme) String() string {
	switch s {
	case SchemeAntipodal:
		return "antipodal"
	case SchemeQuadrature:
		return "quadrature"
	default:
		return fmt.Sprintf("Scheme(%d)", int(s))
	}
}

// Label is the short name used in reports.
func (s Scheme) Label() string {
	switch s {
	case SchemeAntipodal:
		return "BPSK"
	case SchemeQuadrature:
		return "QPSK"
	default:
		return s.String()
	}
}

// BitsPerSymbol is the number of coded bits carried by one symbol.
func (s Scheme) BitsPerSymbol() int {
	if s == SchemeQuadrature {
		return 2
	}
	return 1
}

// New returns the modem implementing s.
func New(s Scheme, logger *log.Logger) (Modem, error) {
	switch s {
	case SchemeAntipodal:
		return Antipodal{Logger: logger}, nil
	case SchemeQuadrature:
		return Quadrature{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown modulation scheme %v", s)
	}
}

// trimPadding drops the last padding bits of b.
func trimPadding(b Bits, padding int) (Bits, error) {
	if padding < 0 || padding > len(b) {
		return nil, fmt.Errorf("%w: padding %d for %d bits", ErrInvalidLength, padding, len(b))
	}
	return b[:len(b)-padding], nil
}
