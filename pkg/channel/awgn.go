// Package channel corrupts frames with additive white Gaussian noise.
//
// The channel works on symbol-level SNR (Es/N0). Converting from the
// per-bit Eb/N0 is left to the caller.
package channel

import (
	"math"

	"BERSim/pkg/modem"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"
)

// DBToLinear converts a power ratio in decibels to a linear ratio.
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/10)
}

// AWGN draws fresh noise from Rand on every call.
type AWGN struct {
	Rand   *rand.Rand
	Logger *log.Logger
}

func New(r *rand.Rand, logger *log.Logger) *AWGN {
	return &AWGN{Rand: r, Logger: logger}
}

// AddNoise returns f plus zero-mean Gaussian noise whose power is
// Power(f)/10^(snrDB/10). A frame with zero power is returned unchanged.
func (c *AWGN) AddNoise(f modem.Frame, snrDB float64) modem.Frame {
	if f.Power() == 0 {
		return f
	}
	noise := NewNoise(c.Rand, f.Len())
	noise.Logger = c.Logger
	return noise.Apply(f, snrDB)
}
