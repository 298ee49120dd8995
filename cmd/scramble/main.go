// Command scramble pipes a byte stream through nested scramble wrappers and
// checks that it comes out unchanged.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/squadracorsepolito/bulkio/internal"
	"github.com/squadracorsepolito/bulkio/internal/telemetry"
)

func main() {
	cfg := newDefaultConfig()

	flag.StringVar(&cfg.in, "in", "", "input file (default stdin)")
	flag.StringVar(&cfg.out, "out", "", "write the transferred bytes to this file")
	flag.Uint64Var(&cfg.seed, "seed", cfg.seed, "seed of the generated scripts")
	flag.IntVar(&cfg.depth, "depth", cfg.depth, "scramble wrappers on each side")
	flag.IntVar(&cfg.capacity, "capacity", cfg.capacity, "maximum staging capacity of a wrapper")
	flag.BoolVar(&cfg.compress, "compress", false, "lz4 compress the output file")
	flag.BoolVar(&cfg.otel, "otel", false, "export traces and metrics over OTLP")
	flag.Parse()

	l := internal.NewLogger("cli", "scramble")

	if err := execute(cfg, l); err != nil {
		l.Error("transfer failed", err)
		os.Exit(1)
	}
}

func execute(cfg *config, l *internal.Logger) error {
	ctx, cancelCtx := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancelCtx()

	if cfg.otel {
		shutdown, err := telemetry.Init(ctx, "bulkio-scramble")
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}

		defer func() {
			if err := shutdown(context.Background()); err != nil {
				l.Error("failed to shutdown telemetry", err)
			}
		}()
	}

	return runFromFiles(ctx, cfg)
}

func runFromFiles(ctx context.Context, cfg *config) error {
	in := os.Stdin
	if cfg.in != "" {
		f, err := os.Open(cfg.in)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	if cfg.out == "" {
		_, err := run(ctx, cfg, in, nil)
		return err
	}

	out, err := os.Create(cfg.out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}

	if _, err := run(ctx, cfg, in, out); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
