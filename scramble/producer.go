package scramble

import (
	"github.com/squadracorsepolito/bulkio"
	"github.com/squadracorsepolito/bulkio/ringbuffer"
)

var _ bulkio.BulkProducer[int] = (*Producer[int, bulkio.BulkProducer[int]])(nil)

// Producer stages items pulled from the wrapped producer into a fixed size
// buffer by replaying its script, one operation each time the buffer runs
// empty or a slurp asks to fill it.
//
// An error of the wrapped producer is never reported while staged items remain:
// it is kept and returned once they have all been produced.
type Producer[T any, P bulkio.BulkProducer[T]] struct {
	inner P
	buf   *ringbuffer.Fixed[T]

	// err is the first error of the inner producer.
	// Once set, the inner producer is not called anymore.
	err error

	ops   []ProduceOperation
	opIdx int
}

// NewProducer wraps inner with a staging buffer of the given capacity
// (at least 1), replaying ops cyclically.
func NewProducer[T any, P bulkio.BulkProducer[T]](inner P, ops ProduceOperations, capacity int) *Producer[T, P] {
	if ops.Len() == 0 {
		panic(ErrEmptyScript)
	}

	return &Producer[T, P]{
		inner: inner,
		buf:   ringbuffer.NewFixed[T](capacity),

		ops: ops.ops,
	}
}

// Inner returns the wrapped producer, which stays owned by p.
func (p *Producer[T, P]) Inner() P {
	return p.inner
}

// Unwrap returns the wrapped producer. Staged items are lost.
func (p *Producer[T, P]) Unwrap() P {
	return p.inner
}

// Len returns the number of staged items.
func (p *Producer[T, P]) Len() int {
	return p.buf.Len()
}

// performOperation runs the next scripted operation.
// It must be called only when at least one slot is free.
func (p *Producer[T, P]) performOperation() error {
	op := p.ops[p.opIdx]

	switch op.Kind {
	case OpProduce:
		item, err := p.inner.Produce()
		if err != nil {
			return err
		}
		_ = p.buf.Consume(item)

	case OpProducerSlots:
		slots, err := p.inner.ProducerSlots()
		if err != nil {
			return err
		}

		amount, _ := p.buf.BulkConsume(slots[:min(len(slots), op.Window)])
		p.inner.DidProduce(amount)

	case OpBulkProduce:
		free, _ := p.buf.ConsumerSlots()

		amount, err := p.inner.BulkProduce(free[:min(len(free), op.Window)])
		if err != nil {
			return err
		}
		p.buf.DidConsume(amount)

	case OpSlurp:
		if err := p.inner.Slurp(); err != nil {
			return err
		}
	}

	p.opIdx = (p.opIdx + 1) % len(p.ops)

	return nil
}

// stage performs operations until at least one item is staged.
func (p *Producer[T, P]) stage() error {
	for p.buf.IsEmpty() {
		if p.err != nil {
			return p.err
		}

		if err := p.performOperation(); err != nil {
			p.err = err
		}
	}
	return nil
}

func (p *Producer[T, P]) Produce() (T, error) {
	if err := p.stage(); err != nil {
		return *new(T), err
	}
	return p.buf.Produce()
}

// Slurp fills the staging buffer, then slurps the wrapped producer.
// An error met while filling is reported by Slurp only if nothing is staged.
func (p *Producer[T, P]) Slurp() error {
	for p.err == nil && !p.buf.IsFull() {
		if err := p.performOperation(); err != nil {
			p.err = err
		}
	}

	if p.err != nil {
		if p.buf.IsEmpty() {
			return p.err
		}
		return nil
	}

	if err := p.inner.Slurp(); err != nil {
		p.err = err
		if p.buf.IsEmpty() {
			return err
		}
	}

	return nil
}

func (p *Producer[T, P]) ProducerSlots() ([]T, error) {
	if err := p.stage(); err != nil {
		return nil, err
	}
	return p.buf.ProducerSlots()
}

func (p *Producer[T, P]) DidProduce(amount int) {
	p.buf.DidProduce(amount)
}

func (p *Producer[T, P]) BulkProduce(buf []T) (int, error) {
	return bulkio.DefaultBulkProduce[T](p, buf)
}
