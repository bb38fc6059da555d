package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jacoelho/ringbuf"
	"github.com/jacoelho/ringbuf/internal/trace"
	"github.com/jacoelho/ringbuf/ringmetrics"
)

var (
	version = ""
)

type options struct {
	Capacity int
	Output   string
	Verbose  bool
	Metrics  bool
}

func main() {
	if err := newRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out io.Writer) *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:          "ringtrace TRACE_FILE",
		Short:        "Replay a push/pop trace against a fixed-capacity ring buffer",
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(out, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.Capacity, "capacity", "c", -1, "override the trace capacity (-1 keeps the trace value)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", trace.OutputTable,
		fmt.Sprintf("Output mode: %v", trace.Outputs))
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
	cmd.Flags().BoolVar(&opts.Metrics, "metrics", false, "print Prometheus metrics after the replay")
	cmd.AddCommand(&cobra.Command{Use: "completion", Hidden: true})

	return cmd
}

func run(out io.Writer, path string, opts options) error {
	logger, err := newLogger(opts.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	tr, err := trace.Load(path)
	if err != nil {
		return err
	}
	if opts.Capacity >= 0 {
		tr.Capacity = opts.Capacity
		if err := tr.Validate(); err != nil {
			return err
		}
	}

	name := filepath.Base(path)
	reg := prometheus.NewRegistry()
	buf, err := ringmetrics.New[int](ringbuf.New[int](tr.Capacity), reg, name, ringmetrics.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("replaying trace",
		zap.String("trace", name),
		zap.Int("capacity", tr.Capacity),
		zap.Int("ops", len(tr.Ops)),
	)
	steps := trace.Replay(tr, buf, logger)
	if err := trace.Render(out, steps, opts.Output); err != nil {
		return err
	}

	if opts.Metrics {
		return writeMetrics(out, reg)
	}
	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func writeMetrics(out io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
