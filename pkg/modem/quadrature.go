package modem

import (
	"fmt"
	"math"

	"BERSim/internel/utils"

	"github.com/charmbracelet/log"
)

// Gray mapping indexed by bit0<<1 | bit1; neighbouring quadrants differ in one bit.
var quadratureSymbolMap = [4]complex128{
	0b00: complex(1/math.Sqrt2, 1/math.Sqrt2),
	0b01: complex(-1/math.Sqrt2, 1/math.Sqrt2),
	0b11: complex(-1/math.Sqrt2, -1/math.Sqrt2),
	0b10: complex(1/math.Sqrt2, -1/math.Sqrt2),
}

// Quadrature maps bit pairs onto four unit-power complex points.
type Quadrature struct {
	Logger *log.Logger
}

func (Quadrature) Scheme() Scheme { return SchemeQuadrature }

// Modulate pads an odd-length input with a single zero bit and reports the
// padding it added.
func (m Quadrature) Modulate(inputBits Bits) (Frame, int, error) {
	if err := Validate(inputBits); err != nil {
		return Frame{}, 0, err
	}

	padding := len(inputBits) % 2
	symbols := make([]complex128, (len(inputBits)+padding)/2)
	for i := range symbols {
		bit0 := inputBits[2*i]
		var bit1 uint8
		if 2*i+1 < len(inputBits) {
			bit1 = inputBits[2*i+1]
		}
		symbols[i] = quadratureSymbolMap[bit0<<1|bit1]
	}
	frame := ComplexFrame(symbols)

	utils.OrDiscard(m.Logger).Debug("quadrature modulation",
		"bits", inputBits.Preview(16), "symbols", frame.Preview(8), "len", len(symbols), "padding", padding)
	return frame, padding, nil
}

// Demodulate decides the quadrant of each symbol and drops the last padding bits.
func (m Quadrature) Demodulate(symbols Frame, padding int) (Bits, error) {
	if symbols.Kind != KindComplex {
		return nil, fmt.Errorf("quadrature demodulation of %v frame: %w", symbols.Kind, ErrFrameKind)
	}

	outputBits := make(Bits, 0, 2*len(symbols.Complex))
	for _, s := range symbols.Complex {
		re, im := real(s), imag(s)
		switch {
		case re >= 0 && im >= 0:
			outputBits = append(outputBits, 0, 0)
		case re < 0 && im >= 0:
			outputBits = append(outputBits, 0, 1)
		case re < 0 && im < 0:
			outputBits = append(outputBits, 1, 1)
		default:
			outputBits = append(outputBits, 1, 0)
		}
	}

	outputBits, err := trimPadding(outputBits, padding)
	if err != nil {
		return nil, err
	}

	utils.OrDiscard(m.Logger).Debug("quadrature demodulation",
		"symbols", symbols.Preview(8), "bits", outputBits.Preview(16), "len", len(outputBits))
	return outputBits, nil
}
