package sim

import (
	"context"
	"testing"

	"BERSim/pkg/modem"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolSNR(t *testing.T) {
	tests := []struct {
		name       string
		scheme     modem.Scheme
		lineCoding bool
		offset     float64
	}{
		{"BPSK+LC", modem.SchemeAntipodal, true, -3.0103},
		{"BPSK", modem.SchemeAntipodal, false, 0},
		{"QPSK+LC", modem.SchemeQuadrature, true, 0},
		{"QPSK", modem.SchemeQuadrature, false, 3.0103},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, 4+tt.offset, SymbolSNR(4, tt.scheme, tt.lineCoding), 1e-4)
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     modem.Bits
		ber      float64
		errors   int
		compared int
	}{
		{"equal", modem.Bits{1, 0, 1, 1}, modem.Bits{1, 0, 1, 1}, 0, 0, 4},
		{"one error", modem.Bits{1, 0, 1, 1}, modem.Bits{1, 1, 1, 1}, 0.25, 1, 4},
		{"shorter", modem.Bits{1, 0, 1, 1}, modem.Bits{0, 1}, 1, 2, 2},
		{"empty", modem.Bits{}, modem.Bits{1}, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ber, errors, compared := Compare(tt.a, tt.b)
			assert.Equal(t, tt.ber, ber)
			assert.Equal(t, tt.errors, errors)
			assert.Equal(t, tt.compared, compared)
		})
	}
}

func campaign() Campaign {
	return Campaign{
		Message:    "Trabalho de Comunicacao Digital",
		Sweep:      []float64{0, 4, 10},
		Iterations: 8,
		Schemes:    []modem.Scheme{modem.SchemeAntipodal, modem.SchemeQuadrature},
		LineCoding: true,
		Carrier:    CarrierConfig{Freq: 1, SamplesPerSymbol: 10, PulseShaping: true, Filtering: true},
		Seed:       42,
	}
}

func TestCurves(t *testing.T) {
	c := campaign()
	names := func() []string {
		var out []string
		for _, curve := range c.Curves() {
			out = append(out, curve.Name)
		}
		return out
	}

	assert.Equal(t, []string{"BPSK", "QPSK"}, names())

	c.Carrier.Enabled = true
	assert.Equal(t, []string{"BPSK+carrier", "QPSK+carrier"}, names())

	c.Carrier.Compare = true
	assert.Equal(t, []string{"BPSK", "QPSK", "BPSK+carrier", "QPSK+carrier"}, names())
}

func TestValidate(t *testing.T) {
	assert.NoError(t, campaign().Validate())

	tests := []struct {
		name   string
		modify func(*Campaign)
		msg    string
	}{
		{"empty message", func(c *Campaign) { c.Message = "" }, "message is empty"},
		{"empty sweep", func(c *Campaign) { c.Sweep = nil }, "sweep is empty"},
		{"duplicate snr", func(c *Campaign) { c.Sweep = []float64{1, 1} }, "more than once"},
		{"no iterations", func(c *Campaign) { c.Iterations = 0 }, "iterations"},
		{"no schemes", func(c *Campaign) { c.Schemes = nil }, "no modulation scheme"},
		{"negative workers", func(c *Campaign) { c.Workers = -1 }, "workers"},
		{"carrier rate", func(c *Campaign) {
			c.Carrier.Enabled = true
			c.Carrier.SamplesPerSymbol = 0
		}, "samples per symbol"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := campaign()
			tt.modify(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestRunNoiselessMessage(t *testing.T) {
	c := Campaign{
		Message:    "Hi",
		Sweep:      []float64{20},
		Iterations: 1,
		Schemes:    []modem.Scheme{modem.SchemeAntipodal},
		LineCoding: true,
		Seed:       1,
	}
	result, err := Run(context.Background(), c, nil)
	require.NoError(t, err)

	assert.Equal(t, 16, result.Bits)
	require.Len(t, result.BER, 1)
	assert.Equal(t, []float64{0}, result.BER[0])
	assert.Equal(t, []int{0}, result.Errors[0])
	assert.Equal(t, []int{16}, result.Compared[0])
	assert.Equal(t, []float64{0}, result.StdDev[0])
}

func TestRunCarrierHighSNR(t *testing.T) {
	c := campaign()
	c.Sweep = []float64{20}
	c.Iterations = 3
	c.Carrier.Compare = true

	result, err := Run(context.Background(), c, nil)
	require.NoError(t, err)
	require.Len(t, result.Curves, 4)
	for i, curve := range result.Curves {
		assert.Zero(t, result.BER[i][0], curve.Name)
	}
}

func TestRunCarrierHoldShaping(t *testing.T) {
	for _, filtering := range []bool{true, false} {
		c := campaign()
		c.Sweep = []float64{30}
		c.Iterations = 3
		c.Carrier.Enabled = true
		c.Carrier.PulseShaping = false
		c.Carrier.Filtering = filtering

		result, err := Run(context.Background(), c, nil)
		require.NoError(t, err)
		require.Len(t, result.Curves, 2)
		for i, curve := range result.Curves {
			if !filtering && curve.Scheme == modem.SchemeQuadrature {
				// Without the low-pass the quadrature branch is sampled at a
				// zero of the sine reference.
				continue
			}
			assert.Zero(t, result.BER[i][0], "%s filtering=%v", curve.Name, filtering)
		}
	}
}

func TestRunStatistics(t *testing.T) {
	c := campaign()
	c.Iterations = 20
	result, err := Run(context.Background(), c, nil)
	require.NoError(t, err)

	assert.Equal(t, c.Sweep, result.Sweep)
	assert.Equal(t, 20, result.Trials)
	assert.Equal(t, uint64(42), result.Seed)
	assert.Equal(t, 248, result.Bits)

	for ci, curve := range result.Curves {
		for si := range result.Sweep {
			ber := result.BER[ci][si]
			assert.GreaterOrEqual(t, ber, 0.0)
			assert.LessOrEqual(t, ber, 1.0)
			assert.Len(t, result.TrialBER(ci, si), 20)
			assert.Equal(t, 20*248, result.Compared[ci][si])
			assert.InDelta(t, ber, float64(result.Errors[ci][si])/float64(result.Compared[ci][si]), 1e-12)
		}
		for si := 1; si < len(result.Sweep); si++ {
			assert.LessOrEqual(t, result.BER[ci][si], result.BER[ci][si-1]+0.01,
				"%s: BER rises from %.1f to %.1f dB", curve.Name, result.Sweep[si-1], result.Sweep[si])
		}
		assert.Greater(t, result.BER[ci][0], result.BER[ci][2], curve.Name)
		assert.Greater(t, result.BER[ci][0], 0.0, curve.Name)
	}

	bpsk, ok := result.CurveIndex("BPSK")
	require.True(t, ok)
	_, ok = result.CurveIndex("16QAM")
	assert.False(t, ok)
	assert.Equal(t, 0, bpsk)
}

func TestRunDeterministic(t *testing.T) {
	c := campaign()
	c.Workers = 1
	serial, err := Run(context.Background(), c, nil)
	require.NoError(t, err)

	c.Workers = 4
	parallel, err := Run(context.Background(), c, nil)
	require.NoError(t, err)

	assert.Equal(t, serial.BER, parallel.BER)
	assert.Equal(t, serial.Errors, parallel.Errors)

	c.Seed = 43
	other, err := Run(context.Background(), c, nil)
	require.NoError(t, err)
	assert.NotEqual(t, serial.Errors, other.Errors)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, campaign(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunInvalid(t *testing.T) {
	c := campaign()
	c.Iterations = 0
	_, err := Run(context.Background(), c, nil)
	assert.Error(t, err)

	c = campaign()
	c.Message = "π"
	_, err = Run(context.Background(), c, nil)
	assert.Error(t, err)
}

func TestNewSeed(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b, err := NewSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
