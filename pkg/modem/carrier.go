package modem

import (
	"fmt"
	"math"

	"BERSim/internel/utils"

	"github.com/charmbracelet/log"
)

// CarrierConfig describes a sampled sinusoid. Time is measured in symbol
// periods, so Freq is in cycles per symbol and SampleRate in samples per symbol.
type CarrierConfig struct {
	Amplitude  float64
	Freq       float64
	Phase      float64
	SampleRate float64
	Size       int
}

func (p CarrierConfig) New() []float64 {
	signal := make([]float64, p.Size)
	for i := 0; i < p.Size; i++ {
		t := float64(i) / p.SampleRate
		signal[i] = p.Amplitude * math.Sin(2*math.Pi*p.Freq*t+p.Phase)
	}
	return signal
}

// Mixer moves a baseband symbol stream onto a real carrier and back.
type Mixer struct {
	CarrierFreq      float64 // cycles per symbol period
	SamplesPerSymbol int

	// PulseShaping interpolates linearly between symbols; otherwise each
	// symbol is held for SamplesPerSymbol samples.
	PulseShaping bool
	// Filtering applies a moving-average low-pass of SamplesPerSymbol taps
	// before decimation on receive.
	Filtering bool

	Logger *log.Logger
}

func NewMixer(carrierFreq float64, samplesPerSymbol int, logger *log.Logger) *Mixer {
	return &Mixer{
		CarrierFreq:      carrierFreq,
		SamplesPerSymbol: samplesPerSymbol,
		PulseShaping:     true,
		Filtering:        true,
		Logger:           logger,
	}
}

// references returns the cos and sin carriers for n samples starting at t=0.
func (m *Mixer) references(n int) (cos, sin []float64) {
	carrier := CarrierConfig{
		Amplitude:  1,
		Freq:       m.CarrierFreq,
		SampleRate: float64(m.SamplesPerSymbol),
		Size:       n,
	}
	sin = carrier.New()
	carrier.Phase = math.Pi / 2
	cos = carrier.New()
	return cos, sin
}

func (m *Mixer) checkRate() error {
	if m.SamplesPerSymbol < 1 {
		return fmt.Errorf("%w: %d samples per symbol", ErrInvalidLength, m.SamplesPerSymbol)
	}
	return nil
}

// AddCarrier upsamples the symbols and mixes them onto the carrier, producing
// a real passband frame: I*cos(2*pi*fc*t) for real input and
// I*cos(2*pi*fc*t) - Q*sin(2*pi*fc*t) for complex input.
func (m *Mixer) AddCarrier(symbols Frame) (Frame, error) {
	if err := m.checkRate(); err != nil {
		return Frame{}, err
	}

	sps := m.SamplesPerSymbol
	baseband := ToComplex(symbols)
	inPhase := make([]float64, len(baseband.Complex))
	quadrature := make([]float64, len(baseband.Complex))
	for i, s := range baseband.Complex {
		inPhase[i], quadrature[i] = real(s), imag(s)
	}
	inPhase, quadrature = m.shape(inPhase), m.shape(quadrature)

	cos, sin := m.references(len(inPhase))
	passband := make([]float64, len(inPhase))
	for i := range passband {
		passband[i] = inPhase[i] * cos[i]
		if symbols.Kind == KindComplex {
			passband[i] -= quadrature[i] * sin[i]
		}
	}

	frame := Frame{Kind: KindReal, Real: passband, SamplesPerSymbol: sps}
	utils.OrDiscard(m.Logger).Debug("carrier added",
		"fc", m.CarrierFreq, "fs", sps, "symbols", symbols.Preview(8), "passband", frame.Preview(16), "len", len(passband))
	return frame, nil
}

// RemoveCarrier mixes a real passband frame down with cos and -sin
// references, low-pass filters both branches and keeps one sample per symbol:
// the symbol instant for interpolated pulses, the middle of the hold otherwise.
func (m *Mixer) RemoveCarrier(signal Frame) (Frame, error) {
	if err := m.checkRate(); err != nil {
		return Frame{}, err
	}
	if signal.Kind != KindReal {
		return Frame{}, fmt.Errorf("carrier removal of %v frame: %w", signal.Kind, ErrFrameKind)
	}

	sps := m.SamplesPerSymbol
	cos, sin := m.references(len(signal.Real))
	inPhase := make([]float64, len(signal.Real))
	quadrature := make([]float64, len(signal.Real))
	for i, x := range signal.Real {
		inPhase[i] = x * cos[i]
		quadrature[i] = -x * sin[i]
	}

	if m.Filtering {
		inPhase = movingAverage(inPhase, sps)
		quadrature = movingAverage(quadrature, sps)
	}

	// Interpolated symbols peak at i*sps. Held symbols are read at the sample
	// whose centred window spans exactly [i*sps, (i+1)*sps).
	phase := 0
	if !m.PulseShaping {
		phase = sps / 2
	}
	symbols := make([]complex128, len(signal.Real)/sps)
	for i := range symbols {
		symbols[i] = complex(inPhase[i*sps+phase], quadrature[i*sps+phase])
	}

	frame := ComplexFrame(symbols)
	utils.OrDiscard(m.Logger).Debug("carrier removed",
		"fc", m.CarrierFreq, "passband", signal.Preview(16), "symbols", frame.Preview(8), "len", len(symbols))
	return frame, nil
}

func (m *Mixer) shape(values []float64) []float64 {
	if m.PulseShaping {
		return interpolate(values, m.SamplesPerSymbol)
	}
	return repeat(values, m.SamplesPerSymbol)
}

// repeat holds every value for n samples.
func repeat(values []float64, n int) []float64 {
	output := make([]float64, 0, len(values)*n)
	for _, v := range values {
		for j := 0; j < n; j++ {
			output = append(output, v)
		}
	}
	return output
}

// interpolate places value i at sample i*n and fills the gaps linearly.
// Samples after the last value hold it.
func interpolate(values []float64, n int) []float64 {
	output := make([]float64, len(values)*n)
	for i, v := range values {
		next := v
		if i+1 < len(values) {
			next = values[i+1]
		}
		for j := 0; j < n; j++ {
			frac := float64(j) / float64(n)
			output[i*n+j] = v + (next-v)*frac
		}
	}
	return output
}

// movingAverage convolves x with a rectangular window of size taps normalized
// to unity gain, keeping the centred len(x) samples.
func movingAverage(x []float64, size int) []float64 {
	if size < 2 {
		return x
	}

	prefix := make([]float64, len(x)+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	offset := (size - 1) / 2
	output := make([]float64, len(x))
	for i := range output {
		hi := min(i+offset, len(x)-1)
		lo := max(i+offset-size+1, 0)
		if hi >= lo {
			output[i] = (prefix[hi+1] - prefix[lo]) / float64(size)
		}
	}
	return output
}
