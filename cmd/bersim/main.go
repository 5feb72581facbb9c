package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"BERSim/cmd/bersim/config"
	"BERSim/internel/utils"
	"BERSim/pkg/report"
	"BERSim/pkg/sim"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	flags *pflag.FlagSet

	configPath string
	message    string
	snr        []float64
	iterations int
	seed       uint64
	workers    int
	schemes    []string
	lineCoding bool
	carrier    bool
	compare    bool
	fc         float64
	fs         int
	output     string
	summary    bool
	level      string
	help       bool
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	o := &options{flags: pflag.NewFlagSet("bersim", pflag.ContinueOnError)}
	f := o.flags
	f.SetOutput(stderr)

	f.StringVarP(&o.configPath, "config", "c", "", "YAML campaign file.")
	f.StringVarP(&o.message, "message", "m", "", "Message to transmit.")
	f.Float64SliceVar(&o.snr, "snr", nil, "Eb/N0 sweep in dB, e.g. 0,2,4.")
	f.IntVarP(&o.iterations, "iterations", "n", 0, "Independent trials per point.")
	f.Uint64Var(&o.seed, "seed", 0, "Master seed. 0 draws one at start-up.")
	f.IntVarP(&o.workers, "workers", "w", 0, "Concurrent trials. 0 uses every CPU.")
	f.StringSliceVar(&o.schemes, "schemes", nil, "Modulation schemes: antipodal, quadrature.")
	f.BoolVar(&o.lineCoding, "line-coding", true, "Apply Manchester line coding.")
	f.BoolVar(&o.carrier, "carrier", false, "Send every scheme through the passband mixer.")
	f.BoolVar(&o.compare, "carrier-compare", false, "Run every scheme both at baseband and on the carrier.")
	f.Float64Var(&o.fc, "fc", 0, "Carrier frequency in cycles per symbol.")
	f.IntVar(&o.fs, "fs", 0, "Samples per symbol on the carrier.")
	f.StringVarP(&o.output, "output", "o", "", "Output directory.")
	f.BoolVar(&o.summary, "summary", true, "Print the summary table.")
	f.StringVarP(&o.level, "log-level", "l", "", "Log level: debug, info, warn, error.")
	f.BoolVarP(&o.help, "help", "h", false, "Display help text.")

	f.Usage = func() {
		fmt.Fprintf(stderr, "bersim - bit error rate of BPSK and QPSK over AWGN.\n\n")
		fmt.Fprintf(stderr, "Usage: bersim [options]\n\n")
		fmt.Fprintf(stderr, "Options may also be set in a YAML file (--config) or with %s* variables.\n\n", config.EnvPrefix)
		f.PrintDefaults()
	}

	if err := f.Parse(args); err != nil {
		return nil, err
	}
	if f.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", f.Arg(0))
	}
	return o, nil
}

// apply copies every flag given on the command line over cfg.
func (o *options) apply(cfg *config.Config) {
	changed := o.flags.Changed
	if changed("message") {
		cfg.Message = o.message
	}
	if changed("snr") {
		cfg.SNRdB = o.snr
	}
	if changed("iterations") {
		cfg.Iterations = o.iterations
	}
	if changed("seed") {
		cfg.Seed = o.seed
	}
	if changed("workers") {
		cfg.Workers = o.workers
	}
	if changed("schemes") {
		cfg.Schemes = o.schemes
	}
	if changed("line-coding") {
		cfg.LineCoding = o.lineCoding
	}
	if changed("carrier") {
		cfg.Carrier.Enabled = o.carrier
	}
	if changed("carrier-compare") {
		cfg.Carrier.Compare = o.compare
	}
	if changed("fc") {
		cfg.Carrier.Freq = o.fc
	}
	if changed("fs") {
		cfg.Carrier.SamplesPerSymbol = o.fs
	}
	if changed("output") {
		cfg.Output.Dir = o.output
	}
	if changed("summary") {
		cfg.Output.Summary = o.summary
	}
	if changed("log-level") {
		cfg.Log.Level = o.level
	}
}

func loadConfig(o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(o.configPath); err != nil {
			return nil, err
		}
	}
	if err := config.ParseEnv(cfg); err != nil {
		return nil, err
	}
	o.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	o, err := parseArgs(args, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if o.help {
		o.flags.Usage()
		return 0
	}

	cfg, err := loadConfig(o)
	if err != nil {
		fmt.Fprintf(stderr, "invalid configuration: %v\n", err)
		return 1
	}

	logger, err := utils.NewLogger(stderr, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	campaign, err := cfg.Campaign()
	if err != nil {
		logger.Error("invalid campaign", "err", err)
		return 1
	}
	if campaign.Seed == 0 {
		if campaign.Seed, err = sim.NewSeed(); err != nil {
			logger.Error("draw seed", "err", err)
			return 1
		}
		logger.Info("drew random seed", "seed", campaign.Seed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := sim.Run(ctx, campaign, logger)
	if err != nil {
		logger.Error("simulation failed", "err", err)
		return 1
	}

	if err := report.Publish(result, logger, config.CreateSinks(cfg, stdout)...); err != nil {
		logger.Error("report failed", "err", err)
		return 1
	}
	return 0
}
