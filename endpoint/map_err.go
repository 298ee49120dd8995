package endpoint

import "github.com/squadracorsepolito/bulkio"

var (
	_ bulkio.BulkProducer[int] = (*MapErrProducer[int, bulkio.BulkProducer[int]])(nil)
	_ bulkio.BulkConsumer[int] = (*MapErrConsumer[int, bulkio.BulkConsumer[int]])(nil)
)

// MapErrProducer wraps a producer and maps each of its errors through a function.
// Everything else is forwarded untouched.
type MapErrProducer[T any, P bulkio.BulkProducer[T]] struct {
	inner P
	fn    func(error) error
}

// MapProducerErr returns a [MapErrProducer] applying fn to the errors of inner.
func MapProducerErr[T any, P bulkio.BulkProducer[T]](inner P, fn func(error) error) *MapErrProducer[T, P] {
	return &MapErrProducer[T, P]{
		inner: inner,
		fn:    fn,
	}
}

func (mp *MapErrProducer[T, P]) mapErr(err error) error {
	if err == nil {
		return nil
	}
	return mp.fn(err)
}

func (mp *MapErrProducer[T, P]) Inner() P {
	return mp.inner
}

// Unwrap returns the wrapped producer.
func (mp *MapErrProducer[T, P]) Unwrap() P {
	return mp.inner
}

func (mp *MapErrProducer[T, P]) Produce() (T, error) {
	item, err := mp.inner.Produce()
	return item, mp.mapErr(err)
}

func (mp *MapErrProducer[T, P]) Slurp() error {
	return mp.mapErr(mp.inner.Slurp())
}

func (mp *MapErrProducer[T, P]) ProducerSlots() ([]T, error) {
	slots, err := mp.inner.ProducerSlots()
	return slots, mp.mapErr(err)
}

func (mp *MapErrProducer[T, P]) DidProduce(amount int) {
	mp.inner.DidProduce(amount)
}

func (mp *MapErrProducer[T, P]) BulkProduce(buf []T) (int, error) {
	n, err := mp.inner.BulkProduce(buf)
	return n, mp.mapErr(err)
}

// MapErrConsumer wraps a consumer and maps each of its errors through a function.
// Everything else is forwarded untouched.
type MapErrConsumer[T any, C bulkio.BulkConsumer[T]] struct {
	inner C
	fn    func(error) error
}

// MapConsumerErr returns a [MapErrConsumer] applying fn to the errors of inner.
func MapConsumerErr[T any, C bulkio.BulkConsumer[T]](inner C, fn func(error) error) *MapErrConsumer[T, C] {
	return &MapErrConsumer[T, C]{
		inner: inner,
		fn:    fn,
	}
}

func (mc *MapErrConsumer[T, C]) mapErr(err error) error {
	if err == nil {
		return nil
	}
	return mc.fn(err)
}

func (mc *MapErrConsumer[T, C]) Inner() C {
	return mc.inner
}

// Unwrap returns the wrapped consumer.
func (mc *MapErrConsumer[T, C]) Unwrap() C {
	return mc.inner
}

func (mc *MapErrConsumer[T, C]) Consume(item T) error {
	return mc.mapErr(mc.inner.Consume(item))
}

func (mc *MapErrConsumer[T, C]) Flush() error {
	return mc.mapErr(mc.inner.Flush())
}

func (mc *MapErrConsumer[T, C]) ConsumerSlots() ([]T, error) {
	slots, err := mc.inner.ConsumerSlots()
	return slots, mc.mapErr(err)
}

func (mc *MapErrConsumer[T, C]) DidConsume(amount int) {
	mc.inner.DidConsume(amount)
}

func (mc *MapErrConsumer[T, C]) BulkConsume(data []T) (int, error) {
	n, err := mc.inner.BulkConsume(data)
	return n, mc.mapErr(err)
}
