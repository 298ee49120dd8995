package endpoint

import (
	"errors"
	"io"

	"github.com/squadracorsepolito/bulkio"
	"github.com/squadracorsepolito/bulkio/ringbuffer"
)

// maxConsecutiveEmptyReads is the number of (0, nil) reads tolerated
// before giving up with [io.ErrNoProgress].
const maxConsecutiveEmptyReads = 100

var (
	_ bulkio.BulkProducer[byte] = (*ReaderProducer)(nil)
	_ bulkio.BulkConsumer[byte] = (*WriterConsumer)(nil)
)

// ReaderProducer produces the bytes of an [io.Reader], staging them
// into a fixed size ring buffer.
//
// A read error is kept until every byte read before it has been produced.
// [io.EOF] is reported as [bulkio.ErrEnd].
type ReaderProducer struct {
	r   io.Reader
	buf *ringbuffer.Fixed[byte]
	err error
}

func NewReaderProducer(r io.Reader, bufSize int) *ReaderProducer {
	return &ReaderProducer{
		r:   r,
		buf: ringbuffer.NewFixed[byte](bufSize),
	}
}

// fill performs a single read into the free space of the buffer.
func (rp *ReaderProducer) fill() {
	slots, err := rp.buf.ConsumerSlots()
	if err != nil {
		return
	}

	for range maxConsecutiveEmptyReads {
		n, err := rp.r.Read(slots)
		if n > 0 {
			rp.buf.DidConsume(n)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				err = bulkio.ErrEnd
			}
			rp.err = err
			return
		}

		if n > 0 {
			return
		}
	}

	rp.err = io.ErrNoProgress
}

func (rp *ReaderProducer) ensureData() error {
	for rp.buf.IsEmpty() {
		if rp.err != nil {
			return rp.err
		}
		rp.fill()
	}
	return nil
}

func (rp *ReaderProducer) Produce() (byte, error) {
	if err := rp.ensureData(); err != nil {
		return 0, err
	}
	return rp.buf.Produce()
}

// Slurp reads until the staging buffer is full or the reader fails.
// A failure is reported once the buffered bytes have been produced.
func (rp *ReaderProducer) Slurp() error {
	for !rp.buf.IsFull() && rp.err == nil {
		rp.fill()
	}

	if rp.buf.IsEmpty() {
		return rp.err
	}
	return nil
}

func (rp *ReaderProducer) ProducerSlots() ([]byte, error) {
	if err := rp.ensureData(); err != nil {
		return nil, err
	}
	return rp.buf.ProducerSlots()
}

func (rp *ReaderProducer) DidProduce(amount int) {
	rp.buf.DidProduce(amount)
}

func (rp *ReaderProducer) BulkProduce(buf []byte) (int, error) {
	return bulkio.DefaultBulkProduce[byte](rp, buf)
}

// WriterConsumer consumes bytes into an [io.Writer], staging them
// into a fixed size ring buffer that is written out when full or flushed.
// If the writer has a Flush method, Flush calls it after writing the buffered bytes.
type WriterConsumer struct {
	w   io.Writer
	buf *ringbuffer.Fixed[byte]
}

func NewWriterConsumer(w io.Writer, bufSize int) *WriterConsumer {
	return &WriterConsumer{
		w:   w,
		buf: ringbuffer.NewFixed[byte](bufSize),
	}
}

// drain writes the first run of buffered bytes.
func (wc *WriterConsumer) drain() error {
	slots, err := wc.buf.ProducerSlots()
	if err != nil {
		return nil
	}

	n, err := wc.w.Write(slots)
	if n > 0 {
		wc.buf.DidProduce(min(n, len(slots)))
	}

	if err != nil {
		return err
	}

	if n < len(slots) {
		return io.ErrShortWrite
	}

	return nil
}

func (wc *WriterConsumer) ensureSpace() error {
	for wc.buf.IsFull() {
		if err := wc.drain(); err != nil {
			return err
		}
	}
	return nil
}

func (wc *WriterConsumer) Consume(item byte) error {
	if err := wc.ensureSpace(); err != nil {
		return err
	}
	return wc.buf.Consume(item)
}

func (wc *WriterConsumer) Flush() error {
	for !wc.buf.IsEmpty() {
		if err := wc.drain(); err != nil {
			return err
		}
	}

	if f, ok := wc.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}

	return nil
}

func (wc *WriterConsumer) ConsumerSlots() ([]byte, error) {
	if err := wc.ensureSpace(); err != nil {
		return nil, err
	}
	return wc.buf.ConsumerSlots()
}

func (wc *WriterConsumer) DidConsume(amount int) {
	wc.buf.DidConsume(amount)
}

func (wc *WriterConsumer) BulkConsume(data []byte) (int, error) {
	return bulkio.DefaultBulkConsume[byte](wc, data)
}
