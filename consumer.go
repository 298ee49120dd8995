package bulkio

// Consumer consumes items one by one.
//
// After any method has returned an error, all further method calls have
// unspecified semantics.
type Consumer[T any] interface {
	// Consume accepts a single item.
	Consume(item T) error

	// Flush triggers the processing of all the data the consumer has buffered
	// so far. A no-op is a valid implementation.
	Flush() error
}

// BulkConsumer is a [Consumer] that can accept several items at a time.
type BulkConsumer[T any] interface {
	Consumer[T]

	// ConsumerSlots returns a non-empty window into which items can be placed.
	// The content of the window is indeterminate.
	ConsumerSlots() ([]T, error)

	// DidConsume tells the consumer that the first amount slots of the last
	// window returned by ConsumerSlots now hold valid items.
	// The amount must be between 1 and the length of that window.
	DidConsume(amount int)

	// BulkConsume copies a non-zero number of items from data and returns how many.
	// The data must not be empty.
	BulkConsume(data []T) (int, error)
}

// DefaultBulkConsume implements BulkConsume on top of ConsumerSlots and DidConsume.
func DefaultBulkConsume[T any](c BulkConsumer[T], data []T) (int, error) {
	if len(data) == 0 {
		panic("bulkio: bulk consume from an empty buffer")
	}

	slots, err := c.ConsumerSlots()
	if err != nil {
		return 0, err
	}

	amount := copy(slots, data)
	c.DidConsume(amount)

	return amount, nil
}
