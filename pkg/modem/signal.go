package modem

import (
	"fmt"
	"strings"
)

type Kind int

const (
	KindReal Kind = iota
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindComplex:
		return "complex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Frame is a transmitted or received waveform. Exactly one of Real and
// Complex carries samples, selected by Kind.
type Frame struct {
	Kind    Kind
	Real    []float64
	Complex []complex128

	// SamplesPerSymbol is 1 for baseband symbol streams and the
	// oversampling factor for passband frames.
	SamplesPerSymbol int
}

func RealFrame(samples []float64) Frame {
	return Frame{Kind: KindReal, Real: samples, SamplesPerSymbol: 1}
}

func ComplexFrame(samples []complex128) Frame {
	return Frame{Kind: KindComplex, Complex: samples, SamplesPerSymbol: 1}
}

func (f Frame) Len() int {
	if f.Kind == KindComplex {
		return len(f.Complex)
	}
	return len(f.Real)
}

// Power returns the mean of |x|^2 over the frame, or 0 for an empty frame.
func (f Frame) Power() float64 {
	n := f.Len()
	if n == 0 {
		return 0
	}
	sum := 0.0
	switch f.Kind {
	case KindComplex:
		for _, v := range f.Complex {
			sum += real(v)*real(v) + imag(v)*imag(v)
		}
	default:
		for _, v := range f.Real {
			sum += v * v
		}
	}
	return sum / float64(n)
}

// Preview renders the first n samples, followed by "..." when the frame is longer.
func (f Frame) Preview(n int) string {
	var sb strings.Builder
	count := min(n, f.Len())
	for i := 0; i < count; i++ {
		if i > 0 {
			sb.WriteByte(' ')
		}
		if f.Kind == KindComplex {
			fmt.Fprintf(&sb, "%+.2f%+.2fj", real(f.Complex[i]), imag(f.Complex[i]))
		} else {
			fmt.Fprintf(&sb, "%+.2f", f.Real[i])
		}
	}
	if f.Len() > count {
		sb.WriteString("...")
	}
	return sb.String()
}
