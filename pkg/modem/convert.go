package modem

// RealPart returns a real frame holding the in-phase component of f.
// Real frames are returned unchanged.
func RealPart(f Frame) Frame {
	if f.Kind == KindReal {
		return f
	}
	output := make([]float64, len(f.Complex))
	for i, v := range f.Complex {
		output[i] = real(v)
	}
	return Frame{Kind: KindReal, Real: output, SamplesPerSymbol: f.SamplesPerSymbol}
}

// ToComplex returns a complex frame with a zero quadrature component for real input.
// Complex frames are returned unchanged.
func ToComplex(f Frame) Frame {
	if f.Kind == KindComplex {
		return f
	}
	output := make([]complex128, len(f.Real))
	for i, v := range f.Real {
		output[i] = complex(v, 0)
	}
	return Frame{Kind: KindComplex, Complex: output, SamplesPerSymbol: f.SamplesPerSymbol}
}
