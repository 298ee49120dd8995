package ringbuffer

import "github.com/squadracorsepolito/bulkio"

var (
	_ bulkio.BulkProducer[int] = (*Static[int])(nil)
	_ bulkio.BulkConsumer[int] = (*Static[int])(nil)
)

// Static is a ring buffer working on storage provided by the caller,
// usually a fixed size array:
//
//	var storage [64]byte
//	buf := ringbuffer.NewStatic(storage[:])
//
// It never allocates, grows or shrinks.
type Static[T any] struct {
	ring[T]
}

// NewStatic returns a [Static] buffer using storage as its backing memory.
// The capacity of the buffer is the length of storage, which must not be empty.
func NewStatic[T any](storage []T) Static[T] {
	if len(storage) == 0 {
		panic("ringbuffer: static buffer with empty storage")
	}

	return Static[T]{
		ring: ring[T]{
			data: storage,
		},
	}
}
