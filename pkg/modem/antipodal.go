package modem

import (
	"fmt"

	"BERSim/internel/utils"

	"github.com/charmbracelet/log"
)

// Antipodal maps one bit to one real symbol: 0 to -1 and 1 to +1.
type Antipodal struct {
	Logger *log.Logger
}

func (Antipodal) Scheme() Scheme { return SchemeAntipodal }

func (m Antipodal) Modulate(inputBits Bits) (Frame, int, error) {
	if err := Validate(inputBits); err != nil {
		return Frame{}, 0, err
	}

	symbols := make([]float64, len(inputBits))
	for i, bit := range inputBits {
		symbols[i] = 2*float64(bit) - 1
	}
	frame := RealFrame(symbols)

	utils.OrDiscard(m.Logger).Debug("antipodal modulation",
		"bits", inputBits.Preview(16), "symbols", frame.Preview(16), "len", len(symbols))
	return frame, 0, nil
}

// Demodulate decides each symbol against a zero threshold; a symbol of exactly
// zero decides 1.
func (m Antipodal) Demodulate(symbols Frame, padding int) (Bits, error) {
	if symbols.Kind != KindReal {
		return nil, fmt.Errorf("antipodal demodulation of %v frame: %w", symbols.Kind, ErrFrameKind)
	}

	outputBits := make(Bits, len(symbols.Real))
	for i, s := range symbols.Real {
		if s >= 0 {
			outputBits[i] = 1
		}
	}

	outputBits, err := trimPadding(outputBits, padding)
	if err != nil {
		return nil, err
	}

	utils.OrDiscard(m.Logger).Debug("antipodal demodulation",
		"symbols", symbols.Preview(16), "bits", outputBits.Preview(16), "len", len(outputBits))
	return outputBits, nil
}
