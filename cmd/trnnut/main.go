package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/MrEthical07/trnnut"
	otelexport "github.com/MrEthical07/trnnut/metrics/export/otel"
	"github.com/MrEthical07/trnnut/metrics/export/prometheus"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type command struct {
	name    string
	summary string
	run     func(env *env, args []string) error
}

type env struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	logger   *zap.Logger
	codec    *trnnut.Codec
	// observer is nil unless -otel is set.
	observer trnnut.Observer
}

var commands = []command{
	{name: "encode", summary: "encode a JSON token document to hex", run: runEncode},
	{name: "decode", summary: "decode a hex token to a JSON document", run: runDecode},
	{name: "module", summary: "look up a module by key", run: runModule},
	{name: "contract", summary: "look up a contract by address", run: runContract},
	{name: "verify", summary: "check a contract or runtime call, optionally against cooldowns", run: runVerify},
	{name: "digest", summary: "print the Keccak-256 digest of a token", run: runDigest},
	{name: "save", summary: "store a token in Redis and print its id", run: runSave},
	{name: "load", summary: "load a token from Redis by id", run: runLoad},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("trnnut", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("v", false, "debug logging")
	showMetrics := fs.Bool("metrics", false, "print codec metrics to stderr in Prometheus text format")
	showOTel := fs.Bool("otel", false, "print OpenTelemetry codec and cooldown instruments to stderr")
	fs.Usage = func() { usage(stderr) }
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		usage(stderr)
		return 2
	}

	cfg := trnnut.DefaultConfig()
	cfg.Metrics.EnableLatencyHistograms = *showMetrics
	var (
		codecOpts []trnnut.CodecOption
		reader    *sdkmetric.ManualReader
		recorder  *otelexport.Recorder
	)
	if *showOTel {
		reader = sdkmetric.NewManualReader()
		provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
		var err error
		recorder, err = otelexport.NewRecorder(provider.Meter("github.com/MrEthical07/trnnut/cmd/trnnut"))
		if err != nil {
			fmt.Fprintf(stderr, "trnnut: %v\n", err)
			return 1
		}
		codecOpts = append(codecOpts, trnnut.WithCodecObserver(recorder))
	}
	codec, err := trnnut.NewCodec(cfg, codecOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "trnnut: %v\n", err)
		return 1
	}

	e := &env{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		logger: newLogger(stderr, *verbose),
		codec:  codec,
	}
	defer func() { _ = e.logger.Sync() }()
	if *showMetrics {
		defer func() {
			fmt.Fprint(stderr, prometheus.NewPrometheusExporter(codec.Metrics()).Render())
		}()
	}
	if recorder != nil {
		e.observer = recorder
		defer func() {
			if err := writeOTel(stderr, reader); err != nil {
				fmt.Fprintf(stderr, "trnnut: collect otel metrics: %v\n", err)
			}
		}()
	}

	name := fs.Arg(0)
	for _, c := range commands {
		if c.name != name {
			continue
		}
		if err := c.run(e, fs.Args()[1:]); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
			var ue usageError
			if errors.As(err, &ue) {
				fmt.Fprintf(stderr, "%s: %v\n", name, ue.err)
				return 2
			}
			e.logger.Debug("command failed", zap.String("command", name), zap.Error(err))
			fmt.Fprintf(stderr, "%s: %v\n", name, err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stderr, "unknown command %q\n", name)
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: trnnut [-v] [-metrics] [-otel] <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core)
}

// writeOTel prints one "name{attrs} value" line per collected data point.
func writeOTel(w io.Writer, reader *sdkmetric.ManualReader) error {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		return err
	}
	enc := attribute.DefaultEncoder()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					fmt.Fprintf(w, "%s{%s} %d\n", m.Name, dp.Attributes.Encoded(enc), dp.Value)
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					fmt.Fprintf(w, "%s{%s} count=%d sum=%g\n", m.Name, dp.Attributes.Encoded(enc), dp.Count, dp.Sum)
				}
			}
		}
	}
	return nil
}

// usageError marks bad flags or arguments; run exits 2 for it.
type usageError struct {
	err error
}

func (u usageError) Error() string { return u.err.Error() }

func usagef(format string, args ...any) error {
	return usageError{err: fmt.Errorf(format, args...)}
}
