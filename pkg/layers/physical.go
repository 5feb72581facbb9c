// Package layers assembles the transmit and receive halves of the link from
// the line coder, the modem and the optional carrier mixer.
package layers

import (
	"fmt"

	"BERSim/internel/utils"
	"BERSim/pkg/modem"

	"github.com/charmbracelet/log"
)

// LineCoder is a reversible bit-level code applied before modulation.
type LineCoder interface {
	Encode(inputBits modem.Bits) (modem.Bits, error)
	Decode(coded modem.Bits) (modem.Bits, error)
}

// PhysicalLayer runs the stages of one link. A nil LineCoder disables line
// coding and a nil Mixer keeps the link at baseband.
type PhysicalLayer struct {
	LineCoder LineCoder
	Modem     modem.Modem
	Mixer     *modem.Mixer

	Logger *log.Logger
}

// Transmission is what Transmit puts on the channel.
type Transmission struct {
	Frame   modem.Frame
	Padding int // bits appended by the modem, handed back to Receive
	Symbols int // baseband symbols before any carrier upsampling
}

func (p *PhysicalLayer) LineCoding() bool { return p.LineCoder != nil }

func (p *PhysicalLayer) Passband() bool { return p.Mixer != nil }

// Transmit line-codes, modulates and, for passband links, mixes bits onto the carrier.
func (p *PhysicalLayer) Transmit(inputBits modem.Bits) (Transmission, error) {
	coded := inputBits
	if p.LineCoder != nil {
		var err error
		if coded, err = p.LineCoder.Encode(inputBits); err != nil {
			return Transmission{}, fmt.Errorf("line encode: %w", err)
		}
	}

	symbols, padding, err := p.Modem.Modulate(coded)
	if err != nil {
		return Transmission{}, fmt.Errorf("modulate: %w", err)
	}

	tx := Transmission{Frame: symbols, Padding: padding, Symbols: symbols.Len()}
	if p.Mixer != nil {
		if tx.Frame, err = p.Mixer.AddCarrier(symbols); err != nil {
			return Transmission{}, fmt.Errorf("add carrier: %w", err)
		}
	}

	utils.OrDiscard(p.Logger).Debug("transmit",
		"scheme", p.Modem.Scheme(), "bits", len(inputBits), "coded", len(coded),
		"symbols", tx.Symbols, "samples", tx.Frame.Len(), "padding", padding)
	return tx, nil
}

// Receive undoes Transmit on a received frame: carrier removal, demodulation
// and line decoding. Antipodal links keep only the in-phase component of the
// mixer output.
func (p *PhysicalLayer) Receive(received modem.Frame, padding int) (modem.Bits, error) {
	symbols := received
	if p.Mixer != nil {
		var err error
		if symbols, err = p.Mixer.RemoveCarrier(received); err != nil {
			return nil, fmt.Errorf("remove carrier: %w", err)
		}
	}
	if p.Modem.Scheme() == modem.SchemeAntipodal {
		symbols = modem.RealPart(symbols)
	}

	coded, err := p.Modem.Demodulate(symbols, padding)
	if err != nil {
		return nil, fmt.Errorf("demodulate: %w", err)
	}

	if p.LineCoder == nil {
		return coded, nil
	}
	decoded, err := p.LineCoder.Decode(coded)
	if err != nil {
		return nil, fmt.Errorf("line decode: %w", err)
	}
	return decoded, nil
}
