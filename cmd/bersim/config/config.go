package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"BERSim/pkg/modem"
	"BERSim/pkg/report"
	"BERSim/pkg/sim"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ParseEnv.
const EnvPrefix = "BERSIM_"

type Config struct {
	Message    string    `yaml:"message" env:"MESSAGE"`
	SNRdB      []float64 `yaml:"snr_db" env:"SNR_DB" envSeparator:","`
	Iterations int       `yaml:"iterations" env:"ITERATIONS"`
	Seed       uint64    `yaml:"seed" env:"SEED"`
	Workers    int       `yaml:"workers" env:"WORKERS"`
	Schemes    []string  `yaml:"schemes" env:"SCHEMES" envSeparator:","`
	LineCoding bool      `yaml:"line_coding" env:"LINE_CODING"`

	Carrier struct {
		Enabled          bool    `yaml:"enabled" env:"ENABLED"`
		Compare          bool    `yaml:"compare" env:"COMPARE"`
		Freq             float64 `yaml:"freq" env:"FREQ"`
		SamplesPerSymbol int     `yaml:"samples_per_symbol" env:"SAMPLES_PER_SYMBOL"`
		PulseShaping     bool    `yaml:"pulse_shaping" env:"PULSE_SHAPING"`
		Filtering        bool    `yaml:"filtering" env:"FILTERING"`
	} `yaml:"carrier" envPrefix:"CARRIER_"`

	Output struct {
		Dir     string `yaml:"dir" env:"DIR"`
		Table   string `yaml:"table" env:"TABLE"`
		Chart   string `yaml:"chart" env:"CHART"`
		Summary bool   `yaml:"summary" env:"SUMMARY"`
	} `yaml:"output" envPrefix:"OUTPUT_"`

	Log struct {
		Level string `yaml:"level" env:"LEVEL"`
	} `yaml:"log" envPrefix:"LOG_"`
}

// Default returns a new configuration holding the reference campaign.
func Default() *Config {
	var config Config
	config.Message = "Trabalho de Comunicacao Digital"
	config.SNRdB = []float64{0, 2, 4, 6, 8, 10}
	config.Iterations = 50
	config.Schemes = []string{"antipodal", "quadrature"}
	config.LineCoding = true

	config.Carrier.Freq = 1.0
	config.Carrier.SamplesPerSymbol = 10
	config.Carrier.PulseShaping = true
	config.Carrier.Filtering = true

	config.Output.Dir = "output"
	config.Output.Table = "ber_results.tsv"
	config.Output.Chart = "ber_curve.png"
	config.Output.Summary = true

	config.Log.Level = "info"
	return &config
}

// LoadConfig reads a YAML file over the defaults; keys missing from the file
// keep their default values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	return config, nil
}

// ParseEnv overrides config with the BERSIM_* environment variables that are set.
func ParseEnv(config *Config) error {
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) schemes() ([]modem.Scheme, error) {
	schemes := make([]modem.Scheme, 0, len(c.Schemes))
	for _, name := range c.Schemes {
		s, err := modem.ParseScheme(name)
		if err != nil {
			return nil, err
		}
		schemes = append(schemes, s)
	}
	return schemes, nil
}

// Campaign converts the configuration into the simulation's campaign value.
func (c *Config) Campaign() (sim.Campaign, error) {
	schemes, err := c.schemes()
	if err != nil {
		return sim.Campaign{}, err
	}
	return sim.Campaign{
		Message:    c.Message,
		Sweep:      append([]float64(nil), c.SNRdB...),
		Iterations: c.Iterations,
		Schemes:    schemes,
		LineCoding: c.LineCoding,
		Carrier: sim.CarrierConfig{
			Enabled:          c.Carrier.Enabled,
			Compare:          c.Carrier.Compare,
			Freq:             c.Carrier.Freq,
			SamplesPerSymbol: c.Carrier.SamplesPerSymbol,
			PulseShaping:     c.Carrier.PulseShaping,
			Filtering:        c.Carrier.Filtering,
		},
		Seed:    c.Seed,
		Workers: c.Workers,
	}, nil
}

func (c *Config) Validate() error {
	var errs []error
	campaign, err := c.Campaign()
	if err != nil {
		errs = append(errs, fmt.Errorf("schemes: %w", err))
	} else if err := campaign.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// TablePath is where the results table goes, or "" when disabled.
func (c *Config) TablePath() string {
	if c.Output.Table == "" {
		return ""
	}
	return filepath.Join(c.Output.Dir, c.Output.Table)
}

// ChartPath is where the chart goes, or "" when disabled.
func (c *Config) ChartPath() string {
	if c.Output.Chart == "" {
		return ""
	}
	return filepath.Join(c.Output.Dir, c.Output.Chart)
}

// CreateSinks returns the report sinks enabled by the configuration.
func CreateSinks(config *Config, stdout io.Writer) []report.Sink {
	var sinks []report.Sink
	if path := config.TablePath(); path != "" {
		sinks = append(sinks, report.TableWriter{Path: path})
	}
	if path := config.ChartPath(); path != "" {
		title := "BER x SNR"
		if config.LineCoding {
			title += " (Manchester)"
		}
		sinks = append(sinks, report.ChartWriter{Path: path, Title: title})
	}
	if config.Output.Summary {
		sinks = append(sinks, report.SummaryWriter{Out: stdout})
	}
	return sinks
}
