package internal

import (
	"context"
	"sync/atomic"
	"time"
)

// Stats periodically logs the throughput of a transfer.
type Stats struct {
	l *Logger

	interval time.Duration

	itemCount atomic.Uint64
	byteCount atomic.Uint64

	totalItems atomic.Uint64
	totalBytes atomic.Uint64
}

func NewStats(l *Logger, interval time.Duration) *Stats {
	if interval <= 0 {
		interval = time.Second
	}

	return &Stats{
		l: l,

		interval: interval,
	}
}

func (s *Stats) RunStats(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			itemCount := s.itemCount.Swap(0)
			byteCount := s.byteCount.Swap(0)

			if itemCount == 0 && byteCount == 0 {
				continue
			}

			perSec := float64(time.Second) / float64(s.interval)
			s.l.Info("stats",
				"items_per_sec", uint64(float64(itemCount)*perSec),
				"bytes_per_sec", uint64(float64(byteCount)*perSec),
			)
		}
	}
}

func (s *Stats) IncrementItemCountBy(n int) {
	s.itemCount.Add(uint64(n))
	s.totalItems.Add(uint64(n))
}

func (s *Stats) IncrementByteCountBy(n int) {
	s.byteCount.Add(uint64(n))
	s.totalBytes.Add(uint64(n))
}

// Totals returns the number of items and bytes counted since creation.
func (s *Stats) Totals() (items, bytes uint64) {
	return s.totalItems.Load(), s.totalBytes.Load()
}
