package ringbuffer

import "github.com/squadracorsepolito/bulkio"

var (
	_ bulkio.BulkProducer[int] = (*Fixed[int])(nil)
	_ bulkio.BulkConsumer[int] = (*Fixed[int])(nil)
)

// Fixed is a ring buffer holding up to a fixed number of items.
// Its storage is allocated once, when the buffer is created.
type Fixed[T any] struct {
	ring[T]
}

// NewFixed returns a [Fixed] buffer with the given capacity.
// A capacity lower than 1 is treated as 1.
func NewFixed[T any](capacity int) *Fixed[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &Fixed[T]{
		ring: ring[T]{
			data: make([]T, capacity),
		},
	}
}
