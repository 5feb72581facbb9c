// Package linecode implements the Manchester line code: every bit becomes a
// two-level transition, doubling the length of the stream.
package linecode

import (
	"fmt"

	"BERSim/internel/utils"
	"BERSim/pkg/modem"

	"github.com/charmbracelet/log"
)

type Manchester struct {
	Logger *log.Logger
}

// Encode turns each bit b into the pair (1-b, b): 0 becomes 1,0 and 1 becomes 0,1.
func (m Manchester) Encode(inputBits modem.Bits) (modem.Bits, error) {
	if err := modem.Validate(inputBits); err != nil {
		return nil, err
	}

	coded := make(modem.Bits, 2*len(inputBits))
	for i, bit := range inputBits {
		coded[2*i] = 1 - bit
		coded[2*i+1] = bit
	}

	utils.OrDiscard(m.Logger).Debug("manchester encode",
		"before", inputBits.Preview(16), "after", coded.Preview(32), "len", len(coded))
	return coded, nil
}

// Decode keeps the second element of every pair. Valid pairs (1,0) and (0,1)
// decode to 0 and 1; the non-transition pairs (0,0) and (1,1) left by noise
// decode to 0 and 1 as well, without being reported as violations.
func (m Manchester) Decode(coded modem.Bits) (modem.Bits, error) {
	if len(coded)%2 != 0 {
		return nil, fmt.Errorf("%w: manchester stream of %d bits", modem.ErrInvalidLength, len(coded))
	}
	if err := modem.Validate(coded); err != nil {
		return nil, err
	}

	decoded := make(modem.Bits, len(coded)/2)
	for i := range decoded {
		decoded[i] = coded[2*i+1]
	}

	utils.OrDiscard(m.Logger).Debug("manchester decode",
		"before", coded.Preview(32), "after", decoded.Preview(16), "len", len(decoded))
	return decoded, nil
}
