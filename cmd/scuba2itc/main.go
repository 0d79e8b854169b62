package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/eaobservatory/scuba2-itc/core"
	"github.com/eaobservatory/scuba2-itc/internal/logging"
	"github.com/eaobservatory/scuba2-itc/internal/observability"
	"github.com/eaobservatory/scuba2-itc/itc"
	"github.com/eaobservatory/scuba2-itc/model"
)

type options struct {
	listModes bool

	mode    string
	filter  int
	tau225  float64
	airmass float64
	dec     float64
	rms     float64
	timeS   float64
	pixel   float64
	extra   bool

	airmassSet bool
	decSet     bool
	rmsSet     bool
	timeSet    bool
	pixelSet   bool
}

func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("scuba2itc", flag.ContinueOnError)

	fs.BoolVar(&opts.listModes, "list-modes", false, "list supported observing modes and exit")
	fs.StringVar(&opts.mode, "mode", "", "observing mode, e.g. daisy or pong1800")
	fs.IntVar(&opts.filter, "filter", 850, "filter wavelength in micrometres (850 or 450)")
	fs.Float64Var(&opts.tau225, "tau225", 0, "225 GHz zenith opacity")
	fs.Float64Var(&opts.airmass, "airmass", 0, "measured airmass (>= 1)")
	fs.Float64Var(&opts.dec, "dec", 0, "target declination in degrees; estimates the airmass instead of -airmass")
	fs.Float64Var(&opts.rms, "rms", 0, "target RMS in mJy/beam; solves for time")
	fs.Float64Var(&opts.timeS, "time", 0, "elapsed observing time in seconds; solves for RMS")
	fs.Float64Var(&opts.pixel, "pixel", 0, "requested map pixel size in arcsec (defaults to the band's default pixel)")
	fs.BoolVar(&opts.extra, "extra", false, "print diagnostic quantities alongside the result")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "airmass":
			opts.airmassSet = true
		case "dec":
			opts.decSet = true
		case "rms":
			opts.rmsSet = true
		case "time":
			opts.timeSet = true
		case "pixel":
			opts.pixelSet = true
		}
	})

	if opts.listModes {
		return opts, nil
	}
	if opts.mode == "" {
		return options{}, errors.New("missing -mode")
	}
	if opts.airmassSet == opts.decSet {
		return options{}, errors.New("exactly one of -airmass and -dec is required")
	}
	if opts.rmsSet == opts.timeSet {
		return options{}, errors.New("exactly one of -rms and -time is required")
	}
	return opts, nil
}

func run(ctx context.Context, calc *itc.SCUBA2ITC, opts options, out io.Writer) error {
	if opts.listModes {
		for _, mode := range calc.Modes() {
			fmt.Fprintf(out, "%-10s %s\n", mode.Name, mode.Description)
		}
		return nil
	}

	band := model.FilterBand(opts.filter)

	airmass := opts.airmass
	if opts.decSet {
		var err error
		airmass, err = calc.EstimateAirmass(opts.dec)
		if err != nil {
			return err
		}
	}

	sampling, err := samplingFactors(opts)
	if err != nil {
		return err
	}

	req := model.Request{
		Mode:            opts.mode,
		Filter:          band,
		Tau225:          opts.tau225,
		Airmass:         airmass,
		SamplingFactors: sampling,
	}

	var value float64
	var diag itc.Diagnostics
	if opts.rmsSet {
		req.TargetRMS = opts.rms
		value, diag, err = calc.CalculateTotalTime(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Integration time: %.1f s (%.2f h)\n", value, value/3600)
	} else {
		req.TargetTime = opts.timeS
		value, diag, err = calc.CalculateRMSForTotalTime(ctx, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "RMS: %.3f mJy/beam\n", value)
	}

	if opts.extra {
		printDiagnostics(out, diag)
	}
	return nil
}

func samplingFactors(opts options) (map[model.FilterBand]float64, error) {
	repo := core.NewCalibrationRepository()

	factors := make(map[model.FilterBand]float64)
	for _, band := range model.Bands() {
		cal, err := repo.Filter(band)
		if err != nil {
			return nil, err
		}
		if opts.pixelSet {
			factors[band] = cal.SamplingFactor(opts.pixel)
		} else {
			factors[band] = 1
		}
	}
	return factors, nil
}

func printDiagnostics(out io.Writer, diag itc.Diagnostics) {
	fmt.Fprintf(out, "  airmass:              %.4f\n", diag.Airmass)
	fmt.Fprintf(out, "  band opacity:         %.4f\n", diag.BandOpacity)
	fmt.Fprintf(out, "  transmission:         %.4f\n", diag.Transmission)
	fmt.Fprintf(out, "  effective NEFD:       %.1f mJy s^1/2\n", diag.EffectiveNEFD)
	fmt.Fprintf(out, "  sampling factor:      %.4f\n", diag.SamplingFactor)
	fmt.Fprintf(out, "  efficiency:           %.6f\n", diag.Efficiency)
	fmt.Fprintf(out, "  overhead:             %.2f\n", diag.Overhead)
	fmt.Fprintf(out, "  effective efficiency: %.6f\n", diag.EffectiveEfficiency)
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	collector, err := observability.NewITCCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	calc := itc.New(
		itc.WithLogger(log),
		itc.WithCollector(collector),
	)

	if err := run(ctx, calc, opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
