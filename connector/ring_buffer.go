package connector

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/squadracorsepolito/bulkio"
	"github.com/squadracorsepolito/bulkio/internal"
	"github.com/squadracorsepolito/bulkio/ringbuffer"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sys/cpu"
)

var _ Connector[int] = (*RingBuffer[int])(nil)

// Storage is a buffer usable by a [RingBuffer]. It must report a full or empty
// state with an error wrapping [bulkio.ErrUnavailable].
type Storage[T any] interface {
	bulkio.BulkProducer[T]
	bulkio.BulkConsumer[T]
}

// RingBuffer implements a [Connector] by guarding a [Storage] with a mutex.
// Writers wait while the storage is full, readers while it is empty.
type RingBuffer[T any] struct {
	// closed is used to indicate that the buffer is closed.
	closed atomic.Bool

	// used to avoid false sharing
	_ cpu.CacheLinePad

	mux      sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond

	storage Storage[T]

	tel    *internal.Telemetry
	queued metric.Int64UpDownCounter
}

// NewRingBuffer returns a [RingBuffer] over storage, which must not be used
// elsewhere afterwards.
func NewRingBuffer[T any](storage Storage[T]) *RingBuffer[T] {
	rb := &RingBuffer[T]{
		storage: storage,
	}

	rb.notEmpty = sync.NewCond(&rb.mux)
	rb.notFull = sync.NewCond(&rb.mux)

	return rb
}

// NewRingBufferFromConfig returns a [RingBuffer] over a [ringbuffer.Elastic]
// holding up to cfg.MaxSize items.
func NewRingBufferFromConfig[T any](cfg *Config) *RingBuffer[T] {
	var storage Storage[T] = ringbuffer.NewElasticFromConfig[T](&ringbuffer.ElasticConfig{
		MaxSize: cfg.MaxSize,
		Name:    cfg.Name,
	})

	rb := NewRingBuffer(storage)

	if cfg.Name != "" {
		rb.tel = internal.NewTelemetry("connector", cfg.Name)
		rb.queued = rb.tel.NewUpDownCounter("queued_items")
	}

	return rb
}

func (rb *RingBuffer[T]) track(delta int) {
	if rb.tel == nil {
		return
	}
	rb.queued.Add(context.Background(), int64(delta))
}

// Write adds an item to the [RingBuffer].
// It blocks until the storage has room for it.
//
// Returns [ErrClosed] if the [RingBuffer] is closed.
func (rb *RingBuffer[T]) Write(item T) error {
	rb.mux.Lock()
	defer rb.mux.Unlock()

	for {
		if rb.closed.Load() {
			return ErrClosed
		}

		err := rb.storage.Consume(item)
		if err == nil {
			break
		}

		if !bulkio.IsUnavailable(err) {
			return err
		}

		// Full, wait for a reader
		rb.notFull.Wait()
	}

	rb.notEmpty.Signal()
	rb.track(1)

	return nil
}

// WriteBulk adds as many items as the storage can take at once.
// It blocks until at least one item is written, and returns how many were.
func (rb *RingBuffer[T]) WriteBulk(items []T) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	rb.mux.Lock()
	defer rb.mux.Unlock()

	for {
		if rb.closed.Load() {
			return 0, ErrClosed
		}

		n, err := rb.storage.BulkConsume(items)
		if err == nil {
			rb.notEmpty.Broadcast()
			rb.track(n)
			return n, nil
		}

		if !bulkio.IsUnavailable(err) {
			return 0, err
		}

		rb.notFull.Wait()
	}
}

// Read retrieves an item from the [RingBuffer].
// It blocks until an item is available.
//
// Once the [RingBuffer] is closed, it keeps returning the queued items
// and then [ErrClosed].
func (rb *RingBuffer[T]) Read() (T, error) {
	rb.mux.Lock()
	defer rb.mux.Unlock()

	for {
		item, err := rb.storage.Produce()
		if err == nil {
			rb.notFull.Signal()
			rb.track(-1)
			return item, nil
		}

		if !bulkio.IsUnavailable(err) {
			return item, err
		}

		if rb.closed.Load() {
			return item, ErrClosed
		}

		// Empty, wait for a writer
		rb.notEmpty.Wait()
	}
}

// ReadBulk retrieves up to len(buf) items at once.
// It blocks until at least one item is read, and returns how many were.
func (rb *RingBuffer[T]) ReadBulk(buf []T) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	rb.mux.Lock()
	defer rb.mux.Unlock()

	for {
		n, err := rb.storage.BulkProduce(buf)
		if err == nil {
			rb.notFull.Broadcast()
			rb.track(-n)
			return n, nil
		}

		if !bulkio.IsUnavailable(err) {
			return 0, err
		}

		if rb.closed.Load() {
			return 0, ErrClosed
		}

		rb.notEmpty.Wait()
	}
}

// Close marks the [RingBuffer] as closed and wakes up every waiting goroutine.
func (rb *RingBuffer[T]) Close() {
	if !rb.closed.CompareAndSwap(false, true) {
		return
	}

	rb.mux.Lock()
	rb.notEmpty.Broadcast()
	rb.notFull.Broadcast()
	rb.mux.Unlock()
}

// Producer returns a view of rb reading with [RingBuffer.Read].
func (rb *RingBuffer[T]) Producer() bulkio.Producer[T] {
	return &producerView[T]{rb: rb}
}

// Consumer returns a view of rb writing with [RingBuffer.Write].
func (rb *RingBuffer[T]) Consumer() bulkio.Consumer[T] {
	return &consumerView[T]{rb: rb}
}

type producerView[T any] struct {
	rb *RingBuffer[T]
}

func (pv *producerView[T]) Produce() (T, error) {
	return pv.rb.Read()
}

func (pv *producerView[T]) Slurp() error {
	return nil
}

type consumerView[T any] struct {
	rb *RingBuffer[T]
}

func (cv *consumerView[T]) Consume(item T) error {
	return cv.rb.Write(item)
}

func (cv *consumerView[T]) Flush() error {
	return nil
}
