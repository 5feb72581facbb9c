package channel

import (
	"math"

	"BERSim/internel/utils"
	"BERSim/pkg/modem"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"
)

// Noise is a buffer of unit-variance Gaussian samples drawn once and then
// scaled for each SNR it is applied at. Frames use a prefix of the buffer,
// so every SNR sees the same noise shape.
type Noise struct {
	I, Q []float64

	rand   *rand.Rand
	Logger *log.Logger
}

// NewNoise draws n in-phase and n quadrature samples from r.
func NewNoise(r *rand.Rand, n int) *Noise {
	noise := &Noise{rand: r}
	noise.Grow(n)
	return noise
}

func (n *Noise) Len() int { return len(n.I) }

// Grow extends the buffer to at least size samples, keeping the samples
// already drawn.
func (n *Noise) Grow(size int) {
	for len(n.I) < size {
		n.I = append(n.I, n.rand.NormFloat64())
		n.Q = append(n.Q, n.rand.NormFloat64())
	}
}

// Apply scales the buffer to the noise power required by snrDB and adds it
// to f. Real frames get variance N from I alone; complex frames get N/2 on
// each of I and Q. A frame with zero power is returned unchanged.
func (n *Noise) Apply(f modem.Frame, snrDB float64) modem.Frame {
	signalPower := f.Power()
	if signalPower == 0 {
		return f
	}
	n.Grow(f.Len())

	noisePower := signalPower / DBToLinear(snrDB)

	out := modem.Frame{Kind: f.Kind, SamplesPerSymbol: f.SamplesPerSymbol}
	switch f.Kind {
	case modem.KindComplex:
		sigma := math.Sqrt(noisePower / 2)
		out.Complex = make([]complex128, len(f.Complex))
		for i, v := range f.Complex {
			out.Complex[i] = v + complex(sigma*n.I[i], sigma*n.Q[i])
		}
	default:
		sigma := math.Sqrt(noisePower)
		out.Real = make([]float64, len(f.Real))
		for i, v := range f.Real {
			out.Real[i] = v + sigma*n.I[i]
		}
	}

	utils.OrDiscard(n.Logger).Debug("noise added",
		"snr_db", snrDB, "signal_power", signalPower, "noise_power", noisePower,
		"received", out.Preview(8), "len", out.Len())
	return out
}
