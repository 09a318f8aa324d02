// plot-histogram renders one gnuplot plot per parameter of a histogram file
// generated from MultiNest output.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"

	"github.com/fabienbaron/simtoi"
	"github.com/fabienbaron/simtoi/internal/config"
	"github.com/fabienbaron/simtoi/internal/gnuplot"
)

type Options struct {
	Labels  string `long:"labels" description:"Labels used for X-axis of generated plots"`
	Offsets string `long:"offsets" description:"Zero point offsets applied to X-axis data"`
	Term    string `long:"term" description:"Output terminal (for gnuplot) [default: postscript enhanced color]"`
	Ext     string `long:"ext" description:"Extension for output file, use when --term is specified [default: eps]"`
	Size    string `long:"size" description:"Output plot size (for gnuplot) [default: 5in,3.5in]"`
	XRange  string `long:"xrange" value-name:"LO:HI" description:"X-axis range, autoscaled if unset"`
	YRange  string `long:"yrange" value-name:"LO:HI" description:"Y-axis range, autoscaled if unset"`
	XLabel  string `long:"xlabel" description:"X-axis label"`
	Config  string `short:"c" long:"config" description:"TOML or YAML file with default plot options"`
	Gnuplot string `long:"gnuplot" default:"gnuplot" description:"gnuplot binary, looked up on PATH"`
	DryRun  bool   `long:"dry-run" description:"Print the gnuplot commands instead of running gnuplot"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging"`

	Args struct {
		Filename string `positional-arg-name:"filename"`
	} `positional-args:"yes"`
}

// Explicit flags take precedence over the config file.
func (o *Options) apply(cfg *config.Config) {
	overrides := []struct {
		flag   string
		target *string
	}{
		{o.Term, &cfg.Plot.Term},
		{o.Ext, &cfg.Plot.Ext},
		{o.Size, &cfg.Plot.Size},
		{o.XRange, &cfg.Plot.XRange},
		{o.YRange, &cfg.Plot.YRange},
		{o.XLabel, &cfg.Plot.XLabel},
	}

	for _, override := range overrides {
		if override.flag != "" {
			*override.target = override.flag
		}
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts Options

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "plot-histogram"
	parser.Usage = "[options] filename"

	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stdout, flagsErr.Message)
			return nil
		}
		return err
	}

	logrus.SetOutput(stderr)
	if opts.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	if opts.Args.Filename == "" {
		fmt.Fprintln(stdout, "No filename specified, exiting.")
		return nil
	}

	cfg, err := config.LoadConfig(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.apply(cfg)

	plotOptions, err := cfg.PlotOptions()
	if err != nil {
		return err
	}

	if labels := simtoi.SplitList(opts.Labels); len(labels) > 0 {
		logrus.WithField("labels", labels).Warn("--labels is accepted but not applied, use --xlabel")
	}
	if offsets := simtoi.SplitList(opts.Offsets); len(offsets) > 0 {
		logrus.WithField("offsets", offsets).Warn("--offsets is accepted but not applied")
	}

	newEngine := gnuplot.Factory(opts.Gnuplot)
	if opts.DryRun {
		newEngine = simtoi.ScriptEngineFactory(stdout)
	}

	plotter := simtoi.NewHistogramPlotter(simtoi.NewHistogramReader(simtoi.DefaultSeparator), newEngine)
	_, err = plotter.PlotAll(opts.Args.Filename, plotOptions)
	if errors.Is(err, simtoi.ErrNotEnoughColumns) {
		fmt.Fprintln(stdout, "Not enough columns in the input file.  Exiting.")
		return nil
	}

	return err
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		logrus.WithError(err).Fatal("plot-histogram failed")
	}
}
