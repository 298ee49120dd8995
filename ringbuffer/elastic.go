package ringbuffer

import (
	"context"
	"slices"

	"github.com/squadracorsepolito/bulkio"
	"github.com/squadracorsepolito/bulkio/internal"
	"go.opentelemetry.io/otel/metric"
)

var (
	_ bulkio.BulkProducer[int] = (*Elastic[int])(nil)
	_ bulkio.BulkConsumer[int] = (*Elastic[int])(nil)
)

// Elastic is a ring buffer holding up to MaxSize items, that allocates
// its storage as it fills up and releases it as it drains.
//
// The allocated capacity doubles (up to MaxSize) when a write finds the buffer full.
// After a read, the storage shrinks to the number of stored items if they fell
// below half the level recorded at the last resize.
// Reading and writing n items is amortized O(n), with a worst case of O(MaxSize).
type Elastic[T any] struct {
	ring ring[T]

	maxSize         int
	shrinkThreshold int

	tel         *internal.Telemetry
	growCount   metric.Int64Counter
	shrinkCount metric.Int64Counter
}

// NewElastic returns an empty [Elastic] buffer that will hold up to maxSize items.
// A maxSize lower than 1 is treated as 1.
func NewElastic[T any](maxSize int) *Elastic[T] {
	return NewElasticWithCapacity[T](maxSize, 0)
}

// NewElasticWithCapacity is like [NewElastic], but allocates capacity slots upfront.
func NewElasticWithCapacity[T any](maxSize, capacity int) *Elastic[T] {
	maxSize = max(maxSize, 1)

	return &Elastic[T]{
		ring: ring[T]{
			data: make([]T, min(max(capacity, 0), maxSize)),
		},

		maxSize: maxSize,
	}
}

// NewElasticFromSlice is like [NewElastic], but reuses the capacity of storage
// as its initial allocation.
func NewElasticFromSlice[T any](maxSize int, storage []T) *Elastic[T] {
	maxSize = max(maxSize, 1)

	return &Elastic[T]{
		ring: ring[T]{
			data: storage[:min(cap(storage), maxSize)],
		},

		maxSize: maxSize,
	}
}

// NewElasticFromConfig returns an [Elastic] buffer configured by cfg.
func NewElasticFromConfig[T any](cfg *ElasticConfig) *Elastic[T] {
	e := NewElasticWithCapacity[T](cfg.MaxSize, cfg.InitialCapacity)

	if cfg.Name != "" {
		e.tel = internal.NewTelemetry("ringbuffer", cfg.Name)
		e.growCount = e.tel.NewCounter("grows")
		e.shrinkCount = e.tel.NewCounter("shrinks")
	}

	return e
}

// Len returns the number of items stored in the buffer.
func (e *Elastic[T]) Len() int {
	return e.ring.amount
}

// Cap returns the number of slots currently allocated.
func (e *Elastic[T]) Cap() int {
	return e.ring.capacity()
}

// MaxSize returns the maximum number of items the buffer can hold.
func (e *Elastic[T]) MaxSize() int {
	return e.maxSize
}

func (e *Elastic[T]) IsEmpty() bool {
	return e.ring.isEmpty()
}

func (e *Elastic[T]) IsFull() bool {
	return e.ring.amount >= e.maxSize
}

// reserve makes sure at least one slot is free, growing the storage if needed.
func (e *Elastic[T]) reserve() error {
	if e.IsFull() {
		return ErrFull
	}

	if e.ring.isFull() {
		e.grow(min(max(e.ring.capacity()*2, 1), e.maxSize))
	}

	return nil
}

func (e *Elastic[T]) grow(size int) {
	from := e.ring.capacity()

	if e.ring.isContiguous() {
		// The items do not wrap, so the new slots can simply be appended
		e.ring.data = slices.Grow(e.ring.data, size-from)[:size]
	} else {
		e.ring.linearize(make([]T, size))
	}

	e.shrinkThreshold = e.ring.amount

	if e.tel != nil {
		e.growCount.Add(context.Background(), 1)
		e.tel.LogDebug("grown", "from", from, "to", size, "items", e.ring.amount)
	}
}

func (e *Elastic[T]) shrinkIfNeeded() {
	if e.ring.amount*2 >= e.shrinkThreshold {
		return
	}

	from := e.ring.capacity()
	size := e.ring.amount

	e.ring.linearize(make([]T, size))
	e.shrinkThreshold = size

	if e.tel != nil {
		e.shrinkCount.Add(context.Background(), 1)
		e.tel.LogDebug("shrunk", "from", from, "to", size)
	}
}

// Consume stores a single item. It returns [ErrFull] if MaxSize items are stored.
func (e *Elastic[T]) Consume(item T) error {
	if err := e.reserve(); err != nil {
		return err
	}
	return e.ring.push(item)
}

func (e *Elastic[T]) Flush() error {
	return nil
}

// ConsumerSlots returns the first contiguous run of free slots, growing the
// storage if it is full. It returns [ErrFull] if MaxSize items are stored.
func (e *Elastic[T]) ConsumerSlots() ([]T, error) {
	if err := e.reserve(); err != nil {
		return nil, err
	}
	return e.ring.writable(), nil
}

func (e *Elastic[T]) DidConsume(amount int) {
	e.ring.didConsume(amount)
}

func (e *Elastic[T]) BulkConsume(data []T) (int, error) {
	return bulkio.DefaultBulkConsume[T](e, data)
}

// Produce takes the oldest item. It returns [ErrEmpty] if there are no items.
func (e *Elastic[T]) Produce() (T, error) {
	item, err := e.ring.pop()
	if err != nil {
		return item, err
	}

	e.shrinkIfNeeded()

	return item, nil
}

func (e *Elastic[T]) Slurp() error {
	return nil
}

// ProducerSlots returns the first contiguous run of stored items.
// It returns [ErrEmpty] if there are no items.
func (e *Elastic[T]) ProducerSlots() ([]T, error) {
	return e.ring.producerSlots()
}

func (e *Elastic[T]) DidProduce(amount int) {
	e.ring.didProduce(amount)
	e.shrinkIfNeeded()
}

func (e *Elastic[T]) BulkProduce(buf []T) (int, error) {
	return bulkio.DefaultBulkProduce[T](e, buf)
}
