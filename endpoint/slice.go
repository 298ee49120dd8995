package endpoint

import (
	"fmt"

	"github.com/squadracorsepolito/bulkio"
)

var (
	_ bulkio.BulkProducer[int] = (*SliceProducer[int])(nil)
	_ bulkio.BulkConsumer[int] = (*SliceConsumer[int])(nil)
)

// SliceProducer produces the items of a slice, in order.
// It returns [bulkio.ErrEnd] once all of them have been produced.
type SliceProducer[T any] struct {
	items []T
	pos   int
}

func NewSliceProducer[T any](items []T) *SliceProducer[T] {
	return &SliceProducer[T]{
		items: items,
	}
}

// Slice returns the whole underlying slice.
func (sp *SliceProducer[T]) Slice() []T {
	return sp.items
}

// Position returns the number of items produced so far.
func (sp *SliceProducer[T]) Position() int {
	return sp.pos
}

func (sp *SliceProducer[T]) Remaining() int {
	return len(sp.items) - sp.pos
}

func (sp *SliceProducer[T]) Produce() (T, error) {
	if sp.pos == len(sp.items) {
		return *new(T), bulkio.ErrEnd
	}

	item := sp.items[sp.pos]
	sp.pos++

	return item, nil
}

func (sp *SliceProducer[T]) Slurp() error {
	return nil
}

func (sp *SliceProducer[T]) ProducerSlots() ([]T, error) {
	if sp.pos == len(sp.items) {
		return nil, bulkio.ErrEnd
	}
	return sp.items[sp.pos:], nil
}

func (sp *SliceProducer[T]) DidProduce(amount int) {
	if amount < 1 || amount > sp.Remaining() {
		panic(fmt.Sprintf("endpoint: did produce %d items out of %d", amount, sp.Remaining()))
	}
	sp.pos += amount
}

func (sp *SliceProducer[T]) BulkProduce(buf []T) (int, error) {
	return bulkio.DefaultBulkProduce[T](sp, buf)
}

// SliceConsumer writes consumed items into a slice, in order.
// It returns [bulkio.ErrEnd] once the slice is full.
type SliceConsumer[T any] struct {
	dst []T
	pos int
}

func NewSliceConsumer[T any](dst []T) *SliceConsumer[T] {
	return &SliceConsumer[T]{
		dst: dst,
	}
}

// Slice returns the whole underlying slice.
func (sc *SliceConsumer[T]) Slice() []T {
	return sc.dst
}

// Written returns the number of items consumed so far.
func (sc *SliceConsumer[T]) Written() int {
	return sc.pos
}

func (sc *SliceConsumer[T]) Consume(item T) error {
	if sc.pos == len(sc.dst) {
		return bulkio.ErrEnd
	}

	sc.dst[sc.pos] = item
	sc.pos++

	return nil
}

func (sc *SliceConsumer[T]) Flush() error {
	return nil
}

func (sc *SliceConsumer[T]) ConsumerSlots() ([]T, error) {
	if sc.pos == len(sc.dst) {
		return nil, bulkio.ErrEnd
	}
	return sc.dst[sc.pos:], nil
}

func (sc *SliceConsumer[T]) DidConsume(amount int) {
	if free := len(sc.dst) - sc.pos; amount < 1 || amount > free {
		panic(fmt.Sprintf("endpoint: did consume %d items into %d free slots", amount, free))
	}
	sc.pos += amount
}

func (sc *SliceConsumer[T]) BulkConsume(data []T) (int, error) {
	return bulkio.DefaultBulkConsume[T](sc, data)
}
