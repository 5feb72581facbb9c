package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"BERSim/pkg/modem"
	"BERSim/pkg/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	c, err := cfg.Campaign()
	require.NoError(t, err)
	assert.Equal(t, "Trabalho de Comunicacao Digital", c.Message)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, c.Sweep)
	assert.Equal(t, 50, c.Iterations)
	assert.Equal(t, []modem.Scheme{modem.SchemeAntipodal, modem.SchemeQuadrature}, c.Schemes)
	assert.True(t, c.LineCoding)
	assert.False(t, c.Carrier.Enabled)
	assert.Equal(t, 10, c.Carrier.SamplesPerSymbol)
	assert.Equal(t, filepath.Join("output", "ber_results.tsv"), cfg.TablePath())
	assert.Equal(t, filepath.Join("output", "ber_curve.png"), cfg.ChartPath())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bersim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
message: Hi
snr_db: [1, 3]
schemes: [qpsk]
carrier:
  enabled: true
  samples_per_symbol: 8
output:
  chart: ""
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi", cfg.Message)
	assert.Equal(t, []float64{1, 3}, cfg.SNRdB)
	assert.Equal(t, []string{"qpsk"}, cfg.Schemes)
	assert.True(t, cfg.Carrier.Enabled)
	assert.Equal(t, 8, cfg.Carrier.SamplesPerSymbol)
	assert.Equal(t, 1.0, cfg.Carrier.Freq)
	assert.True(t, cfg.Carrier.Filtering)
	assert.Equal(t, 50, cfg.Iterations)
	assert.Empty(t, cfg.ChartPath())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: [1"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestExampleConfig(t *testing.T) {
	cfg, err := LoadConfig("bersim.yaml")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseEnv(t *testing.T) {
	t.Setenv("BERSIM_MESSAGE", "env message")
	t.Setenv("BERSIM_SNR_DB", "2,4.5")
	t.Setenv("BERSIM_SCHEMES", "bpsk")
	t.Setenv("BERSIM_ITERATIONS", "3")
	t.Setenv("BERSIM_CARRIER_COMPARE", "true")
	t.Setenv("BERSIM_OUTPUT_DIR", "results")
	t.Setenv("BERSIM_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, ParseEnv(cfg))
	assert.Equal(t, "env message", cfg.Message)
	assert.Equal(t, []float64{2, 4.5}, cfg.SNRdB)
	assert.Equal(t, []string{"bpsk"}, cfg.Schemes)
	assert.Equal(t, 3, cfg.Iterations)
	assert.True(t, cfg.Carrier.Compare)
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.LineCoding)

	t.Setenv("BERSIM_ITERATIONS", "many")
	assert.Error(t, ParseEnv(Default()))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Schemes = []string{"16qam"}
	cfg.Log.Level = "loud"
	cfg.Iterations = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "16qam")
	assert.Contains(t, err.Error(), "log.level")

	cfg = Default()
	cfg.Iterations = 0
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "iterations")
}

func TestCreateSinks(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()
	sinks := CreateSinks(cfg, &buf)
	require.Len(t, sinks, 3)
	assert.IsType(t, report.TableWriter{}, sinks[0])
	assert.IsType(t, report.ChartWriter{}, sinks[1])
	assert.IsType(t, report.SummaryWriter{}, sinks[2])

	cfg.Output.Table = ""
	cfg.Output.Summary = false
	sinks = CreateSinks(cfg, &buf)
	require.Len(t, sinks, 1)
	assert.Equal(t, cfg.ChartPath(), sinks[0].Name())
}
