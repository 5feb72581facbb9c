package sim

import (
	"context"
	"fmt"

	"BERSim/internel/utils"
	"BERSim/pkg/channel"
	"BERSim/pkg/layers"
	"BERSim/pkg/linecode"
	"BERSim/pkg/modem"
	"BERSim/pkg/textcodec"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"
)

// TrialResult is the outcome of one trial at one (curve, SNR) point.
type TrialResult struct {
	Curve    int
	SNRIndex int
	EbN0     float64
	EsN0     float64
	Errors   int
	Compared int
	BER      float64
}

// Simulator runs single trials of a campaign. It holds no per-trial state
// and may be shared by concurrent trials.
type Simulator struct {
	Message string
	Sweep   []float64
	Curves  []Curve

	links         []*layers.PhysicalLayer
	logger        *log.Logger
	channelLogger *log.Logger
}

// NewSimulator builds one link per curve of c.
func NewSimulator(c Campaign, logger *log.Logger) (*Simulator, error) {
	logger = utils.OrDiscard(logger)
	if _, err := textcodec.TextToBits(c.Message); err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}

	s := &Simulator{
		Message:       c.Message,
		Sweep:         c.Sweep,
		Curves:        c.Curves(),
		logger:        logger.WithPrefix("sim"),
		channelLogger: logger.WithPrefix("channel"),
	}

	for _, curve := range s.Curves {
		m, err := modem.New(curve.Scheme, logger.WithPrefix("modem"))
		if err != nil {
			return nil, err
		}
		link := &layers.PhysicalLayer{Modem: m, Logger: logger.WithPrefix("link")}
		if c.LineCoding {
			link.LineCoder = linecode.Manchester{Logger: logger.WithPrefix("linecode")}
		}
		if curve.Carrier {
			mixer := modem.NewMixer(c.Carrier.Freq, c.Carrier.SamplesPerSymbol, logger.WithPrefix("mixer"))
			mixer.PulseShaping = c.Carrier.PulseShaping
			mixer.Filtering = c.Carrier.Filtering
			link.Mixer = mixer
		}
		s.links = append(s.links, link)
	}
	return s, nil
}

// RunTrial sends the message over every curve's link at every SNR of the
// sweep. All SNR points and curves share one noise realization drawn from r,
// scaled to each point's Es/N0.
func (s *Simulator) RunTrial(ctx context.Context, trial int, r *rand.Rand) ([]TrialResult, error) {
	original, err := textcodec.TextToBits(s.Message)
	if err != nil {
		return nil, fmt.Errorf("message: %w", err)
	}

	noise := channel.NewNoise(r, 0)
	noise.Logger = s.channelLogger

	results := make([]TrialResult, 0, len(s.links)*len(s.Sweep))
	for ci, link := range s.links {
		name := s.Curves[ci].Name

		tx, err := link.Transmit(original)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		for si, ebN0 := range s.Sweep {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			esN0 := SymbolSNR(ebN0, link.Modem.Scheme(), link.LineCoding())
			received, err := link.Receive(noise.Apply(tx.Frame, esN0), tx.Padding)
			if err != nil {
				return nil, fmt.Errorf("%s at %.1f dB: %w", name, ebN0, err)
			}

			ber, errors, compared := Compare(original, received)
			s.logger.Debug("point done",
				"trial", trial, "curve", name, "eb_n0", ebN0, "es_n0", esN0,
				"errors", errors, "bits", compared, "ber", ber,
				"sent", original.Preview(16), "received", received.Preview(16),
				"message", textcodec.Display(received, 50))

			results = append(results, TrialResult{
				Curve:    ci,
				SNRIndex: si,
				EbN0:     ebN0,
				EsN0:     esN0,
				Errors:   errors,
				Compared: compared,
				BER:      ber,
			})
		}
	}
	return results, nil
}
