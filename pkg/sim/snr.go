package sim

import (
	"math"

	"BERSim/pkg/modem"
)

// SymbolSNR converts a per-information-bit Eb/N0 into the per-symbol Es/N0
// seen by the channel. One symbol carries BitsPerSymbol coded bits, and line
// coding spends two coded bits per information bit, so
//
//	Es/N0 = Eb/N0 + 10*log10(bitsPerSymbol / expansion)
//
// which is -3.01 dB for antipodal with line coding, 0 dB for antipodal
// without it and for quadrature with it, and +3.01 dB for plain quadrature.
func SymbolSNR(ebN0dB float64, scheme modem.Scheme, lineCoding bool) float64 {
	infoBitsPerSymbol := float64(scheme.BitsPerSymbol())
	if lineCoding {
		infoBitsPerSymbol /= 2
	}
	return ebN0dB + 10*math.Log10(infoBitsPerSymbol)
}
