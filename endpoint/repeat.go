package endpoint

import "github.com/squadracorsepolito/bulkio"

var _ bulkio.BulkProducer[int] = (*Repeat[int])(nil)

// Repeat endlessly produces the same pattern of items. It never fails.
type Repeat[T any] struct {
	pattern []T
	pos     int
}

// NewRepeat returns a [Repeat] producer cycling over pattern, which must not be empty.
func NewRepeat[T any](pattern ...T) *Repeat[T] {
	if len(pattern) == 0 {
		panic("endpoint: repeat of an empty pattern")
	}

	return &Repeat[T]{
		pattern: pattern,
	}
}

func (r *Repeat[T]) Produce() (T, error) {
	item := r.pattern[r.pos]
	r.pos = (r.pos + 1) % len(r.pattern)
	return item, nil
}

func (r *Repeat[T]) Slurp() error {
	return nil
}

func (r *Repeat[T]) ProducerSlots() ([]T, error) {
	return r.pattern[r.pos:], nil
}

func (r *Repeat[T]) DidProduce(amount int) {
	r.pos = (r.pos + amount) % len(r.pattern)
}

func (r *Repeat[T]) BulkProduce(buf []T) (int, error) {
	return bulkio.DefaultBulkProduce[T](r, buf)
}
