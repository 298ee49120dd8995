package ringbuffer

import "github.com/squadracorsepolito/bulkio"

// Len returns the number of items stored in the buffer.
func (r *ring[T]) Len() int {
	return r.amount
}

// Cap returns the number of items the buffer can hold.
func (r *ring[T]) Cap() int {
	return r.capacity()
}

// IsEmpty states whether there are no items to read.
func (r *ring[T]) IsEmpty() bool {
	return r.isEmpty()
}

// IsFull states whether there is no space to write.
func (r *ring[T]) IsFull() bool {
	return r.isFull()
}

// Consume stores a single item. It returns [ErrFull] if there is no space.
func (r *ring[T]) Consume(item T) error {
	return r.push(item)
}

func (r *ring[T]) Flush() error {
	return nil
}

// ConsumerSlots returns the first contiguous run of free slots.
// It returns [ErrFull] if there is no space.
func (r *ring[T]) ConsumerSlots() ([]T, error) {
	return r.consumerSlots()
}

func (r *ring[T]) DidConsume(amount int) {
	r.didConsume(amount)
}

func (r *ring[T]) BulkConsume(data []T) (int, error) {
	return bulkio.DefaultBulkConsume[T](r, data)
}

// Produce takes the oldest item. It returns [ErrEmpty] if there are no items.
func (r *ring[T]) Produce() (T, error) {
	return r.pop()
}

func (r *ring[T]) Slurp() error {
	return nil
}

// ProducerSlots returns the first contiguous run of stored items.
// It returns [ErrEmpty] if there are no items.
func (r *ring[T]) ProducerSlots() ([]T, error) {
	return r.producerSlots()
}

func (r *ring[T]) DidProduce(amount int) {
	r.didProduce(amount)
}

func (r *ring[T]) BulkProduce(buf []T) (int, error) {
	return bulkio.DefaultBulkProduce[T](r, buf)
}
