package bulkio

// Producer produces items one by one.
//
// After any method has returned an error, all further method calls have
// unspecified semantics.
type Producer[T any] interface {
	// Produce returns a single item.
	Produce() (T, error)

	// Slurp asks the producer to move as much data as possible from its data
	// source into its internal buffer. A no-op is a valid implementation.
	Slurp() error
}

// BulkProducer is a [Producer] that can expose several items at a time.
type BulkProducer[T any] interface {
	Producer[T]

	// ProducerSlots returns a non-empty window of items that can be read.
	// The items are not consumed until DidProduce is called.
	// The window must not be modified by the caller.
	ProducerSlots() ([]T, error)

	// DidProduce tells the producer that the first amount items of the last
	// window returned by ProducerSlots have been taken.
	// The amount must be between 1 and the length of that window.
	DidProduce(amount int)

	// BulkProduce copies a non-zero number of items into buf and returns how many.
	// The buf must not be empty.
	BulkProduce(buf []T) (int, error)
}

// DefaultBulkProduce implements BulkProduce on top of ProducerSlots and DidProduce.
func DefaultBulkProduce[T any](p BulkProducer[T], buf []T) (int, error) {
	if len(buf) == 0 {
		panic("bulkio: bulk produce into an empty buffer")
	}

	slots, err := p.ProducerSlots()
	if err != nil {
		return 0, err
	}

	amount := copy(buf, slots)
	p.DidProduce(amount)

	return amount, nil
}
