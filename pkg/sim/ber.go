package sim

import "BERSim/pkg/modem"

// Compare counts mismatched positions over the shorter of the two sequences.
// The ratio is 0 when nothing could be compared.
func Compare(original, received modem.Bits) (ber float64, errors, compared int) {
	compared = min(len(original), len(received))
	if compared == 0 {
		return 0, 0, 0
	}
	for i := 0; i < compared; i++ {
		if original[i] != received[i] {
			errors++
		}
	}
	return float64(errors) / float64(compared), errors, compared
}
