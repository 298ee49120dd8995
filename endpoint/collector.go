package endpoint

import (
	"fmt"
	"slices"

	"github.com/squadracorsepolito/bulkio"
)

var _ bulkio.BulkConsumer[int] = (*Collector[int])(nil)

// Collector accumulates every consumed item into a growable slice.
// It never fails.
type Collector[T any] struct {
	items []T
}

func NewCollector[T any]() *Collector[T] {
	return &Collector[T]{}
}

// NewCollectorWithCapacity returns a [Collector] with room for capacity items.
func NewCollectorWithCapacity[T any](capacity int) *Collector[T] {
	return &Collector[T]{
		items: make([]T, 0, max(capacity, 0)),
	}
}

// Items returns the items collected so far. The slice is still owned by the collector.
func (c *Collector[T]) Items() []T {
	return c.items
}

func (c *Collector[T]) Len() int {
	return len(c.items)
}

// Take returns the collected items and resets the collector.
func (c *Collector[T]) Take() []T {
	items := c.items
	c.items = nil
	return items
}

func (c *Collector[T]) Consume(item T) error {
	c.items = append(c.items, item)
	return nil
}

func (c *Collector[T]) Flush() error {
	return nil
}

// ConsumerSlots returns the spare capacity of the underlying slice,
// doubling it when there is none.
func (c *Collector[T]) ConsumerSlots() ([]T, error) {
	if len(c.items) == cap(c.items) {
		c.items = slices.Grow(c.items, max(cap(c.items), 1))
	}
	return c.items[len(c.items):cap(c.items)], nil
}

func (c *Collector[T]) DidConsume(amount int) {
	if free := cap(c.items) - len(c.items); amount < 1 || amount > free {
		panic(fmt.Sprintf("endpoint: did consume %d items into %d free slots", amount, free))
	}
	c.items = c.items[:len(c.items)+amount]
}

func (c *Collector[T]) BulkConsume(data []T) (int, error) {
	return bulkio.DefaultBulkConsume[T](c, data)
}
