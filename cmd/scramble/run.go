package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/pierrec/lz4/v4"
	"github.com/squadracorsepolito/bulkio"
	"github.com/squadracorsepolito/bulkio/endpoint"
	"github.com/squadracorsepolito/bulkio/internal"
	"github.com/squadracorsepolito/bulkio/scramble"
	"go.opentelemetry.io/otel/attribute"
)

const (
	readBufferSize = 4096
	scriptSeedSize = 1024
)

type config struct {
	in  string
	out string

	seed     uint64
	depth    int
	capacity int

	compress bool
	otel     bool
}

func newDefaultConfig() *config {
	return &config{
		seed:     1,
		depth:    2,
		capacity: scramble.MaxWindow,
	}
}

type result struct {
	bytes        int
	inputDigest  uint64
	outputDigest uint64
}

// countingReader stops at context cancellation and feeds the stats.
type countingReader struct {
	ctx   context.Context
	r     io.Reader
	stats *internal.Stats
}

func (cr *countingReader) Read(p []byte) (int, error) {
	if err := cr.ctx.Err(); err != nil {
		return 0, err
	}

	n, err := cr.r.Read(p)
	cr.stats.IncrementByteCountBy(n)

	return n, err
}

// scripts generates the scramble scripts and staging capacities from the seed.
type scripts struct {
	rng         *rand.Rand
	maxCapacity int
}

func newScripts(seed uint64, maxCapacity int) *scripts {
	return &scripts{
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		maxCapacity: min(max(maxCapacity, 1), scramble.MaxWindow),
	}
}

func (s *scripts) source() *scramble.ByteSource {
	data := make([]byte, scriptSeedSize)
	for i := range data {
		data[i] = byte(s.rng.UintN(256))
	}
	return scramble.NewByteSource(data)
}

func (s *scripts) produce() (scramble.ProduceOperations, int) {
	for {
		src := s.source()
		if ops, err := scramble.DecodeProduceOperations(src); err == nil {
			return ops, src.IntRange(1, s.maxCapacity)
		}
	}
}

func (s *scripts) consume() (scramble.ConsumeOperations, int) {
	for {
		src := s.source()
		if ops, err := scramble.DecodeConsumeOperations(src); err == nil {
			return ops, src.IntRange(1, s.maxCapacity)
		}
	}
}

// run transfers in through cfg.depth scramble wrappers on each side, writes
// the transferred bytes to out when not nil, and verifies that the input
// and output digests match.
func run(ctx context.Context, cfg *config, in io.Reader, out io.Writer) (*result, error) {
	tel := internal.NewTelemetry("cli", "scramble")

	ctx, span := tel.NewTrace(ctx, "transfer")
	defer span.End()

	stats := internal.NewStats(tel.Logger(), time.Second)
	statsCtx, cancelStats := context.WithCancel(ctx)
	defer cancelStats()
	go stats.RunStats(statsCtx)

	inputHash := xxhash.New()
	reader := &countingReader{
		ctx:   ctx,
		r:     io.TeeReader(in, inputHash),
		stats: stats,
	}

	gen := newScripts(cfg.seed, cfg.capacity)

	var src bulkio.BulkProducer[byte] = endpoint.NewReaderProducer(reader, readBufferSize)
	for range max(cfg.depth, 0) {
		ops, capacity := gen.produce()
		tel.LogDebug("wrapping producer", "script", ops.String(), "capacity", capacity)
		src = scramble.NewProducer[byte](src, ops, capacity)
	}

	sink := endpoint.NewCollector[byte]()
	var dst bulkio.BulkConsumer[byte] = sink
	for range max(cfg.depth, 0) {
		ops, capacity := gen.consume()
		tel.LogDebug("wrapping consumer", "script", ops.String(), "capacity", capacity)
		dst = scramble.NewConsumer[byte](dst, ops, capacity)
	}

	if err := bulkio.BulkConsumeAll(src, dst); !bulkio.IsEnd(err) {
		return nil, fmt.Errorf("transfer: %w", err)
	}
	if err := dst.Flush(); err != nil {
		return nil, fmt.Errorf("flush: %w", err)
	}

	data := sink.Items()
	stats.IncrementItemCountBy(len(data))

	res := &result{
		bytes:        len(data),
		inputDigest:  inputHash.Sum64(),
		outputDigest: xxhash.Sum64(data),
	}

	span.SetAttributes(
		attribute.Int("bulkio.bytes", res.bytes),
		attribute.Bool("bulkio.match", res.inputDigest == res.outputDigest),
	)

	if res.inputDigest != res.outputDigest {
		return res, fmt.Errorf("digest mismatch: input %016x, output %016x", res.inputDigest, res.outputDigest)
	}

	tel.LogInfo("transfer verified", "bytes", res.bytes, "digest", fmt.Sprintf("%016x", res.outputDigest))

	if out != nil {
		if err := writeOutput(out, data, cfg.compress); err != nil {
			return res, fmt.Errorf("write output: %w", err)
		}
	}

	return res, nil
}

func writeOutput(out io.Writer, data []byte, compress bool) error {
	if !compress {
		_, err := out.Write(data)
		return err
	}

	zw := lz4.NewWriter(out)
	if _, err := zw.Write(data); err != nil {
		return err
	}
	return zw.Close()
}
