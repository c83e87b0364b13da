package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/crimson-sun/journal/internal/config"
	"github.com/crimson-sun/journal/internal/connector"
	"github.com/crimson-sun/journal/internal/engine"
	"github.com/crimson-sun/journal/internal/engine/dispatch"
	"github.com/crimson-sun/journal/internal/logging"
	"github.com/crimson-sun/journal/internal/metrics"
	"github.com/crimson-sun/journal/internal/output"
	"github.com/crimson-sun/journal/internal/output/async"
	"github.com/crimson-sun/journal/internal/output/file"
	"github.com/crimson-sun/journal/internal/output/multi"
	"github.com/crimson-sun/journal/internal/output/sqlite"
	"github.com/crimson-sun/journal/internal/output/stdout"
	"github.com/crimson-sun/journal/internal/output/webhook"
	"github.com/crimson-sun/journal/internal/pipeline"

	// Register connector implementations.
	_ "github.com/crimson-sun/journal/internal/connector/file"
	_ "github.com/crimson-sun/journal/internal/connector/remote"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "journal: %v\n", err)
		os.Exit(2)
	}
	if err := applyFlags(&cfg, os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if cfg.ShowVersion {
		fmt.Println("journal", config.Version)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "journal: invalid configuration:\n%v\n", err)
		os.Exit(2)
	}

	// Results go to stdout, so logs go to stderr as JSON.
	logging.Init(os.Stderr, true, logging.ParseLevel(cfg.LogLevel))

	// Set up graceful shutdown.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		slog.Error("journal failed", "error", err)
		os.Exit(1)
	}
}

// applyFlags lets command-line flags override the environment.
func applyFlags(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print the version and exit")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "query (read once) or stream (follow)")
	fs.StringVar(&cfg.Connector.Endpoint, "path", cfg.Connector.Endpoint, "journal directory, file or URL")
	fs.StringVar(&cfg.Output.Format, "format", cfg.Output.Format, "json, yaml or debug")
	fs.StringVar(&cfg.Output.Verbosity, "verbosity", cfg.Output.Verbosity, "minimal, standard or full")
	fs.BoolVar(&cfg.Output.Pretty, "pretty", cfg.Output.Pretty, "indent JSON output")
	return fs.Parse(args)
}

// run builds the pipeline from cfg and scans until the source is exhausted
// (query mode) or ctx is cancelled (stream mode).
func run(ctx context.Context, cfg config.Config, w io.Writer) error {
	eng, err := buildEngine(cfg.Engine)
	if err != nil {
		return err
	}

	out, err := buildOutput(cfg.Output, w)
	if err != nil {
		return err
	}

	ctor, err := connector.Get(cfg.Connector.Provider)
	if err != nil {
		out.Close()
		return err
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		srv := metrics.NewServer(cfg.MetricsAddr, m)
		go func() {
			if err := srv.Serve(); err != nil {
				slog.Error("metrics server failed", "addr", cfg.MetricsAddr, "error", err)
			}
		}()
		defer shutdownMetrics(srv, cfg.ShutdownTimeout)
	}

	opts := append(pipelineOptions(cfg.Pipeline), pipeline.WithRecorder(m))
	p := pipeline.New(ctor(), eng, out, opts...)
	defer closeWithTimeout(p, cfg.ShutdownTimeout)

	connCfg := connector.ConnectorConfig{
		Provider: cfg.Connector.Provider,
		APIKey:   cfg.Connector.APIKey,
		Endpoint: cfg.Connector.Endpoint,
		Extra:    cfg.Connector.Extra(),
	}

	slog.Info("journal starting",
		"version", config.Version,
		"mode", cfg.Mode,
		"connector", cfg.Connector.Provider,
		"endpoint", cfg.Connector.Endpoint,
		"schemas", eng.Dispatcher().Tags(),
	)

	switch cfg.Mode {
	case "stream":
		err = p.Stream(ctx, connCfg)
	default:
		err = p.Query(ctx, connCfg, connector.QueryParams{Limit: cfg.Connector.Limit})
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func buildEngine(cfg config.EngineConfig) (*engine.Engine, error) {
	d := dispatch.Default()
	if len(cfg.Schemas) > 0 {
		var err error
		if d, err = dispatch.Only(cfg.Schemas...); err != nil {
			return nil, err
		}
	}
	var opts []engine.Option
	if cfg.Workers > 0 {
		opts = append(opts, engine.WithWorkers(cfg.Workers))
	}
	return engine.New(d, opts...), nil
}

// buildOutput writes to w, plus a rotating file, a SQLite database and a
// webhook when configured. Secondary outputs are async so a slow sink does not stall the
// scan.
func buildOutput(cfg config.OutputConfig, w io.Writer) (output.Output, error) {
	verbosity, err := output.ParseVerbosity(cfg.Verbosity)
	if err != nil {
		return nil, err
	}
	format, err := stdout.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}

	outputs := []output.Output{stdout.NewWriter(w, verbosity, format, cfg.Pretty)}

	if cfg.FilePath != "" {
		var opts []file.Option
		if cfg.FileMaxSize > 0 {
			opts = append(opts, file.WithMaxSize(cfg.FileMaxSize))
		}
		opts = append(opts, file.WithMaxBackups(cfg.FileMaxBackups))
		f, err := file.New(cfg.FilePath, verbosity, opts...)
		if err != nil {
			closeAll(outputs)
			return nil, err
		}
		outputs = append(outputs, async.New(f, async.WithBufferSize(cfg.BufferSize)))
	}

	if cfg.SQLitePath != "" {
		db, err := sqlite.Open(cfg.SQLitePath, verbosity)
		if err != nil {
			closeAll(outputs)
			return nil, err
		}
		outputs = append(outputs, async.New(db, async.WithBufferSize(cfg.BufferSize)))
	}

	if cfg.WebhookURL != "" {
		wh := webhook.New(cfg.WebhookURL, webhook.WithHeaders(cfg.WebhookHeaders), webhook.WithVerbosity(verbosity))
		outputs = append(outputs, async.New(wh, async.WithBufferSize(cfg.BufferSize), async.WithDropOnFull()))
	}

	if len(outputs) == 1 {
		return outputs[0], nil
	}
	return multi.New(outputs...), nil
}

func closeAll(outputs []output.Output) {
	for _, o := range outputs {
		if err := o.Close(); err != nil {
			slog.Warn("close error", "error", err)
		}
	}
}

func pipelineOptions(cfg config.PipelineConfig) []pipeline.Option {
	var opts []pipeline.Option
	if f := pipeline.NewFilter(cfg.Include, cfg.Exclude); f != nil {
		opts = append(opts, pipeline.WithFilter(f))
	}
	if cfg.MaxErrors > 0 {
		opts = append(opts, pipeline.WithMaxErrors(cfg.MaxErrors))
	}
	if cfg.SkipErrors {
		opts = append(opts, pipeline.WithSkipErrors())
	}
	if cfg.BatchWindow > 0 {
		opts = append(opts, pipeline.WithBatching(cfg.BatchWindow, cfg.MaxBatchSize))
	}
	return opts
}

// closeWithTimeout closes the pipeline, giving up after timeout so a stuck
// output cannot hang shutdown.
func closeWithTimeout(p *pipeline.Pipeline, timeout time.Duration) {
	done := make(chan error, 1)
	go func() { done <- p.Close() }()

	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	select {
	case err := <-done:
		if err != nil {
			slog.Warn("close error", "error", err)
		}
	case <-time.After(timeout):
		slog.Warn("shutdown timed out", "timeout", timeout)
	}
}

func shutdownMetrics(srv *metrics.Server, timeout time.Duration) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Warn("metrics shutdown error", "error", err)
	}
}
