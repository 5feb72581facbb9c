package sim

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"
	"unicode/utf8"

	"BERSim/internel/utils"
	"BERSim/pkg/modem"
	"BERSim/pkg/textcodec"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

type CarrierConfig struct {
	// Enabled runs every scheme through the passband mixer.
	Enabled bool
	// Compare runs every scheme both at baseband and through the mixer.
	Compare bool

	Freq             float64 // cycles per symbol period
	SamplesPerSymbol int
	PulseShaping     bool
	Filtering        bool
}

func (c CarrierConfig) passband() bool { return c.Enabled || c.Compare }

func (c CarrierConfig) baseband() bool { return !c.Enabled || c.Compare }

// Campaign is the immutable description of a Monte Carlo run.
type Campaign struct {
	Message    string
	Sweep      []float64 // Eb/N0 in dB, in output order
	Iterations int
	Schemes    []modem.Scheme
	LineCoding bool
	Carrier    CarrierConfig

	// Seed feeds the master source from which every trial's seed is drawn.
	Seed uint64
	// Workers bounds the number of concurrent trials; 0 means GOMAXPROCS.
	Workers int
}

// Curve is one BER curve of a campaign: a scheme, at baseband or on a carrier.
type Curve struct {
	Name    string
	Scheme  modem.Scheme
	Carrier bool
}

// Curves lists the curves c produces, baseband curves first.
func (c Campaign) Curves() []Curve {
	var curves []Curve
	if c.Carrier.baseband() {
		for _, s := range c.Schemes {
			curves = append(curves, Curve{Name: s.Label(), Scheme: s})
		}
	}
	if c.Carrier.passband() {
		for _, s := range c.Schemes {
			curves = append(curves, Curve{Name: s.Label() + "+carrier", Scheme: s, Carrier: true})
		}
	}
	return curves
}

func (c Campaign) Validate() error {
	var errs []error
	if c.Message == "" {
		errs = append(errs, errors.New("message is empty"))
	}
	if len(c.Sweep) == 0 {
		errs = append(errs, errors.New("snr sweep is empty"))
	}
	seen := make(map[float64]bool, len(c.Sweep))
	for _, snr := range c.Sweep {
		if seen[snr] {
			errs = append(errs, fmt.Errorf("snr %v dB appears more than once in the sweep", snr))
		}
		seen[snr] = true
	}
	if c.Iterations < 1 {
		errs = append(errs, fmt.Errorf("iterations must be at least 1, got %d", c.Iterations))
	}
	if len(c.Schemes) == 0 {
		errs = append(errs, errors.New("no modulation scheme selected"))
	}
	schemes := make(map[modem.Scheme]bool, len(c.Schemes))
	for _, s := range c.Schemes {
		if schemes[s] {
			errs = append(errs, fmt.Errorf("scheme %v selected more than once", s))
		}
		schemes[s] = true
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.Carrier.passband() && c.Carrier.SamplesPerSymbol < 1 {
		errs = append(errs, fmt.Errorf("samples per symbol must be at least 1, got %d", c.Carrier.SamplesPerSymbol))
	}
	return errors.Join(errs...)
}

// Result holds the per-trial matrix of a finished campaign and its averages.
// BER, StdDev, Errors and Compared are indexed [curve][snr].
type Result struct {
	Sweep  []float64
	Curves []Curve
	Trials int
	Seed   uint64
	Bits   int // information bits per trial

	BER      [][]float64
	StdDev   [][]float64
	Errors   [][]int
	Compared [][]int

	// cells is indexed [curve][snr][trial]; every cell is written by one trial only.
	cells [][][]TrialResult
}

func newResult(c Campaign) *Result {
	r := &Result{
		Sweep:  append([]float64(nil), c.Sweep...),
		Curves: c.Curves(),
		Trials: c.Iterations,
		Seed:   c.Seed,
		Bits:   utf8.RuneCountInString(c.Message) * textcodec.CharWidth,
	}
	r.cells = make([][][]TrialResult, len(r.Curves))
	for i := range r.cells {
		r.cells[i] = make([][]TrialResult, len(r.Sweep))
		for j := range r.cells[i] {
			r.cells[i][j] = make([]TrialResult, r.Trials)
		}
	}
	return r
}

// TrialBER returns the BER of every trial at one (curve, SNR) point.
func (r *Result) TrialBER(curve, snr int) []float64 {
	out := make([]float64, r.Trials)
	for t, cell := range r.cells[curve][snr] {
		out[t] = cell.BER
	}
	return out
}

// CurveIndex finds a curve by name.
func (r *Result) CurveIndex(name string) (int, bool) {
	for i, c := range r.Curves {
		if c.Name == name {
			return i, true
		}
	}
	return 0, false
}

func (r *Result) finalize() {
	r.BER = make([][]float64, len(r.Curves))
	r.StdDev = make([][]float64, len(r.Curves))
	r.Errors = make([][]int, len(r.Curves))
	r.Compared = make([][]int, len(r.Curves))
	for c := range r.Curves {
		r.BER[c] = make([]float64, len(r.Sweep))
		r.StdDev[c] = make([]float64, len(r.Sweep))
		r.Errors[c] = make([]int, len(r.Sweep))
		r.Compared[c] = make([]int, len(r.Sweep))
		for s := range r.Sweep {
			ber := r.TrialBER(c, s)
			r.BER[c][s] = stat.Mean(ber, nil)
			if len(ber) > 1 {
				r.StdDev[c][s] = stat.StdDev(ber, nil)
			}
			for _, cell := range r.cells[c][s] {
				r.Errors[c][s] += cell.Errors
				r.Compared[c][s] += cell.Compared
			}
		}
	}
}

// Run executes c.Iterations independent trials and averages their BER over
// the trial axis. Trial seeds are drawn from c.Seed before any trial starts,
// so the result does not depend on the number of workers.
func Run(ctx context.Context, c Campaign, logger *log.Logger) (*Result, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid campaign: %w", err)
	}
	logger = utils.OrDiscard(logger)

	simulator, err := NewSimulator(c, logger)
	if err != nil {
		return nil, err
	}

	workers := c.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	master := rand.New(rand.NewSource(c.Seed))
	seeds := make([]uint64, c.Iterations)
	for i := range seeds {
		seeds[i] = master.Uint64()
	}

	result := newResult(c)
	logger = logger.WithPrefix("campaign")
	logger.Info("campaign started",
		"message_bits", result.Bits, "snr_db", c.Sweep, "trials", c.Iterations,
		"curves", len(result.Curves), "line_coding", c.LineCoding, "workers", workers, "seed", c.Seed)
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for trial := 0; trial < c.Iterations; trial++ {
		g.Go(func() error {
			rows, err := simulator.RunTrial(ctx, trial, rand.New(rand.NewSource(seeds[trial])))
			if err != nil {
				return fmt.Errorf("trial %d: %w", trial, err)
			}
			for _, row := range rows {
				result.cells[row.Curve][row.SNRIndex][trial] = row
			}
			logger.Debug("trial done", "trial", trial)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.finalize()
	logger.Info("campaign finished", "elapsed", time.Since(start).Round(time.Millisecond))
	return result, nil
}
