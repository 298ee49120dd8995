package scramble

import (
	"github.com/squadracorsepolito/bulkio"
	"github.com/squadracorsepolito/bulkio/ringbuffer"
)

var _ bulkio.BulkConsumer[int] = (*Consumer[int, bulkio.BulkConsumer[int]])(nil)

// Consumer stages consumed items into a fixed size buffer and forwards them
// to the wrapped consumer by replaying its script, one operation each time
// space is needed or the staged items have to be flushed.
type Consumer[T any, C bulkio.BulkConsumer[T]] struct {
	inner C
	buf   *ringbuffer.Fixed[T]

	ops   []ConsumeOperation
	opIdx int
}

// NewConsumer wraps inner with a staging buffer of the given capacity
// (at least 1), replaying ops cyclically.
func NewConsumer[T any, C bulkio.BulkConsumer[T]](inner C, ops ConsumeOperations, capacity int) *Consumer[T, C] {
	if ops.Len() == 0 {
		panic(ErrEmptyScript)
	}

	return &Consumer[T, C]{
		inner: inner,
		buf:   ringbuffer.NewFixed[T](capacity),

		ops: ops.ops,
	}
}

// Inner returns the wrapped consumer, which stays owned by c.
func (c *Consumer[T, C]) Inner() C {
	return c.inner
}

// Unwrap returns the wrapped consumer. Staged items are not forwarded,
// call Flush first to deliver them.
func (c *Consumer[T, C]) Unwrap() C {
	return c.inner
}

// Len returns the number of staged items.
func (c *Consumer[T, C]) Len() int {
	return c.buf.Len()
}

// performOperation runs the next scripted operation.
// It must be called only when at least one item is staged.
func (c *Consumer[T, C]) performOperation() error {
	op := c.ops[c.opIdx]

	switch op.Kind {
	case OpConsume:
		staged, _ := c.buf.ProducerSlots()
		if err := c.inner.Consume(staged[0]); err != nil {
			return err
		}
		c.buf.DidProduce(1)

	case OpConsumerSlots:
		slots, err := c.inner.ConsumerSlots()
		if err != nil {
			return err
		}

		amount, _ := c.buf.BulkProduce(slots[:min(len(slots), op.Window)])
		c.inner.DidConsume(amount)

	case OpBulkConsume:
		staged, _ := c.buf.ProducerSlots()

		amount, err := c.inner.BulkConsume(staged[:min(len(staged), op.Window)])
		if err != nil {
			return err
		}
		c.buf.DidProduce(amount)

	case OpFlush:
		if err := c.inner.Flush(); err != nil {
			return err
		}
	}

	c.opIdx = (c.opIdx + 1) % len(c.ops)

	return nil
}

// makeRoom performs operations until at least one slot is free.
func (c *Consumer[T, C]) makeRoom() error {
	for c.buf.IsFull() {
		if err := c.performOperation(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Consumer[T, C]) Consume(item T) error {
	if err := c.makeRoom(); err != nil {
		return err
	}
	return c.buf.Consume(item)
}

// Flush forwards every staged item, then flushes the wrapped consumer.
func (c *Consumer[T, C]) Flush() error {
	for !c.buf.IsEmpty() {
		if err := c.performOperation(); err != nil {
			return err
		}
	}
	return c.inner.Flush()
}

func (c *Consumer[T, C]) ConsumerSlots() ([]T, error) {
	if err := c.makeRoom(); err != nil {
		return nil, err
	}
	return c.buf.ConsumerSlots()
}

func (c *Consumer[T, C]) DidConsume(amount int) {
	c.buf.DidConsume(amount)
}

func (c *Consumer[T, C]) BulkConsume(data []T) (int, error) {
	return bulkio.DefaultBulkConsume[T](c, data)
}
