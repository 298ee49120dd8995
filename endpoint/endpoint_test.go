package endpoint

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/squadracorsepolito/bulkio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMapped = errors.New("mapped")

func Test_SliceProducer(t *testing.T) {
	assert := assert.New(t)

	sp := NewSliceProducer([]int{1, 2, 3})

	item, err := sp.Produce()
	assert.NoError(err)
	assert.Equal(1, item)

	slots, err := sp.ProducerSlots()
	assert.NoError(err)
	assert.Equal([]int{2, 3}, slots)
	sp.DidProduce(2)

	assert.Equal(3, sp.Position())
	assert.Equal(0, sp.Remaining())

	_, err = sp.Produce()
	assert.ErrorIs(err, bulkio.ErrEnd)
	_, err = sp.ProducerSlots()
	assert.ErrorIs(err, bulkio.ErrEnd)

	assert.Panics(func() { sp.DidProduce(1) })
}

func Test_SliceConsumer(t *testing.T) {
	assert := assert.New(t)

	sc := NewSliceConsumer(make([]int, 3))
	assert.NoError(sc.Consume(7))

	n, err := sc.BulkConsume([]int{8, 9, 10})
	assert.NoError(err)
	assert.Equal(2, n)

	assert.ErrorIs(sc.Consume(11), bulkio.ErrEnd)
	assert.Equal([]int{7, 8, 9}, sc.Slice())
	assert.Equal(3, sc.Written())
	assert.NoError(sc.Flush())
}

func Test_Collector(t *testing.T) {
	assert := assert.New(t)

	c := NewCollector[byte]()
	assert.NoError(c.Consume('a'))

	for range 10 {
		n, err := c.BulkConsume([]byte("bcd"))
		assert.NoError(err)
		assert.Positive(n)
	}

	slots, err := c.ConsumerSlots()
	assert.NoError(err)
	assert.NotEmpty(slots)

	items := c.Take()
	assert.Equal(byte('a'), items[0])
	assert.Equal(0, c.Len())
	assert.Empty(c.Items())
}

func Test_Collector_BulkProduceAll(t *testing.T) {
	assert := assert.New(t)

	data := []byte(strings.Repeat("0123456789", 50))

	c := NewCollectorWithCapacity[byte](3)
	err := bulkio.BulkProduceAll(NewSliceProducer(data), c)
	assert.ErrorIs(err, bulkio.ErrEnd)
	assert.Equal(data, c.Items())
}

func Test_MapErr(t *testing.T) {
	assert := assert.New(t)

	wrap := func(err error) error {
		return errors.Join(errMapped, err)
	}

	mp := MapProducerErr[int](NewSliceProducer([]int{1}), wrap)
	item, err := mp.Produce()
	assert.NoError(err)
	assert.Equal(1, item)
	assert.NoError(mp.Slurp())

	_, err = mp.Produce()
	assert.ErrorIs(err, errMapped)
	assert.ErrorIs(err, bulkio.ErrEnd)
	_, err = mp.ProducerSlots()
	assert.ErrorIs(err, errMapped)
	assert.Equal(1, mp.Unwrap().Position())

	mc := MapConsumerErr[int](NewSliceConsumer(make([]int, 1)), wrap)
	n, err := mc.BulkConsume([]int{4, 5})
	assert.NoError(err)
	assert.Equal(1, n)
	assert.NoError(mc.Flush())

	err = mc.Consume(6)
	assert.ErrorIs(err, errMapped)
	_, err = mc.ConsumerSlots()
	assert.ErrorIs(err, errMapped)
	assert.Equal([]int{4}, mc.Inner().Slice())
}

func Test_Repeat(t *testing.T) {
	assert := assert.New(t)

	r := NewRepeat(1, 2, 3)

	buf := make([]int, 2)
	n, err := r.BulkProduce(buf)
	assert.NoError(err)
	assert.Equal(2, n)
	assert.Equal([]int{1, 2}, buf)

	n, err = r.BulkProduce(buf)
	assert.NoError(err)
	assert.Equal(1, n)
	assert.Equal(3, buf[0])

	dst := NewSliceConsumer(make([]int, 7))
	assert.ErrorIs(bulkio.Pipe(r, dst), bulkio.ErrEnd)
	assert.Equal([]int{1, 2, 3, 1, 2, 3, 1}, dst.Slice())

	assert.Panics(func() { NewRepeat[int]() })
}

func Test_ReaderProducer(t *testing.T) {
	assert := assert.New(t)

	data := []byte(strings.Repeat("bulkio", 100))

	rp := NewReaderProducer(iotest.OneByteReader(bytes.NewReader(data)), 16)
	c := NewCollector[byte]()

	assert.ErrorIs(bulkio.BulkConsumeAll(rp, c), bulkio.ErrEnd)
	assert.Equal(data, c.Items())
}

func Test_ReaderProducer_DeferredError(t *testing.T) {
	assert := assert.New(t)

	errRead := errors.New("read failure")
	r := io.MultiReader(strings.NewReader("abc"), iotest.ErrReader(errRead))

	rp := NewReaderProducer(r, 8)
	assert.NoError(rp.Slurp())

	for _, expected := range []byte("abc") {
		item, err := rp.Produce()
		assert.NoError(err)
		assert.Equal(expected, item)
	}

	_, err := rp.Produce()
	assert.ErrorIs(err, errRead)
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) {
	return 0, nil
}

func Test_ReaderProducer_NoProgress(t *testing.T) {
	rp := NewReaderProducer(emptyReader{}, 8)

	_, err := rp.Produce()
	assert.ErrorIs(t, err, io.ErrNoProgress)
}

type failingWriter struct {
	limit int
	buf   bytes.Buffer
}

func (fw *failingWriter) Write(p []byte) (int, error) {
	if fw.buf.Len()+len(p) > fw.limit {
		n, _ := fw.buf.Write(p[:fw.limit-fw.buf.Len()])
		return n, io.ErrClosedPipe
	}
	return fw.buf.Write(p)
}

func Test_WriterConsumer(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	data := []byte(strings.Repeat("0123456789", 40))

	var out bytes.Buffer
	bw := bufio.NewWriter(&out)
	wc := NewWriterConsumer(bw, 7)

	require.ErrorIs(bulkio.Pipe(NewSliceProducer(data), wc), bulkio.ErrEnd)
	require.NoError(wc.Flush())

	assert.Equal(data, out.Bytes())
}

func Test_WriterConsumer_Error(t *testing.T) {
	assert := assert.New(t)

	fw := &failingWriter{limit: 10}
	wc := NewWriterConsumer(fw, 4)

	err := bulkio.BulkConsumeAll(NewSliceProducer([]byte(strings.Repeat("x", 64))), wc)
	assert.ErrorIs(err, io.ErrClosedPipe)
	assert.Equal(10, fw.buf.Len())
}
