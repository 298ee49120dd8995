package bulkio

// Pipe moves items one at a time from p into c until either side fails,
// and returns that first error. It neither flushes nor slurps.
func Pipe[T any](p Producer[T], c Consumer[T]) error {
	for {
		item, err := p.Produce()
		if err != nil {
			return err
		}

		if err := c.Consume(item); err != nil {
			return err
		}
	}
}

// BulkProduceAll fills the windows of c by calling BulkProduce on p,
// until either side fails. It neither flushes nor slurps.
func BulkProduceAll[T any](p BulkProducer[T], c BulkConsumer[T]) error {
	for {
		slots, err := c.ConsumerSlots()
		if err != nil {
			return err
		}

		amount, err := p.BulkProduce(slots)
		if err != nil {
			return err
		}

		c.DidConsume(amount)
	}
}

// BulkConsumeAll drains the windows of p by calling BulkConsume on c,
// until either side fails. It neither flushes nor slurps.
func BulkConsumeAll[T any](p BulkProducer[T], c BulkConsumer[T]) error {
	for {
		slots, err := p.ProducerSlots()
		if err != nil {
			return err
		}

		amount, err := c.BulkConsume(slots)
		if err != nil {
			return err
		}

		p.DidProduce(amount)
	}
}
