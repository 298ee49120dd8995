package scramble

import (
	"errors"
	"io"
	"math/rand/v2"
	"testing"

	"github.com/squadracorsepolito/bulkio"
	"github.com/squadracorsepolito/bulkio/endpoint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Operations(t *testing.T) {
	assert := assert.New(t)

	_, err := NewConsumeOperations()
	assert.ErrorIs(err, ErrEmptyScript)

	_, err = NewConsumeOperations(Flush(), Flush())
	assert.ErrorIs(err, ErrPassThroughScript)

	_, err = NewConsumeOperations(Consume(), BulkConsume(0))
	assert.ErrorIs(err, ErrInvalidWindow)

	_, err = NewConsumeOperations(ConsumeOperation{Kind: 42})
	assert.ErrorIs(err, ErrInvalidOperation)

	_, err = NewProduceOperations()
	assert.ErrorIs(err, ErrEmptyScript)

	_, err = NewProduceOperations(Slurp())
	assert.ErrorIs(err, ErrPassThroughScript)

	_, err = NewProduceOperations(ProducerSlots(-1))
	assert.ErrorIs(err, ErrInvalidWindow)

	script, err := NewConsumeOperations(BulkConsume(2), Consume(), Flush())
	assert.NoError(err)
	assert.Equal(3, script.Len())
	assert.Equal("[bulk-consume(2) consume flush]", script.String())

	assert.Panics(func() { MustProduceOperations() })
	assert.Panics(func() { NewConsumer[int](endpoint.NewCollector[int](), ConsumeOperations{}, 4) })
}

func Test_Decode(t *testing.T) {
	assert := assert.New(t)

	// Without bytes everything decodes as its minimum: a single Consume.
	consumeScript, err := DecodeConsumeOperations(NewByteSource(nil))
	assert.NoError(err)
	assert.Equal([]ConsumeOperation{Consume()}, consumeScript.Operations())

	produceScript, err := DecodeProduceOperations(NewByteSource(nil))
	assert.NoError(err)
	assert.Equal([]ProduceOperation{Produce()}, produceScript.Operations())

	// One operation, kind 3 (flush).
	_, err = DecodeConsumeOperations(NewByteSource([]byte{0, 3}))
	assert.ErrorIs(err, ErrPassThroughScript)

	// Two operations: bulk-consume with a small window of 1+5, then consume.
	consumeScript, err = DecodeConsumeOperations(NewByteSource([]byte{1, 2, 1, 5, 0}))
	assert.NoError(err)
	assert.Equal([]ConsumeOperation{BulkConsume(6), Consume()}, consumeScript.Operations())

	src := NewByteSource([]byte{0xff, 0xff, 7})
	assert.Equal(MaxWindow, src.IntRange(1, MaxWindow))
	assert.Equal(1, src.Len())
	assert.True(src.Bool())
	assert.Equal(0, src.Len())
	assert.Empty(src.Bytes(4))
}

func Test_Consumer(t *testing.T) {
	assert := assert.New(t)

	sink := endpoint.NewCollector[int]()
	script := MustConsumeOperations(BulkConsume(2), Consume(), Flush())
	c := NewConsumer[int](sink, script, 3)

	for _, item := range []int{9, 8, 7, 6, 5} {
		assert.NoError(c.Consume(item))
	}
	assert.Equal([]int{9, 8}, sink.Items())
	assert.Equal(3, c.Len())

	assert.NoError(c.Flush())
	assert.Equal(0, c.Len())
	assert.Equal([]int{9, 8, 7, 6, 5}, sink.Items())
	assert.Same(sink, c.Unwrap())
}

func Test_Consumer_InnerError(t *testing.T) {
	assert := assert.New(t)

	dst := endpoint.NewSliceConsumer(make([]int, 3))
	c := NewConsumer[int](dst, MustConsumeOperations(Consume()), 2)

	var err error
	accepted := 0
	for i := range 10 {
		if err = c.Consume(i); err != nil {
			break
		}
		accepted++
	}

	assert.ErrorIs(err, bulkio.ErrEnd)
	assert.Equal(5, accepted)
	assert.Equal(3, dst.Written())
	assert.Equal(2, c.Len())
	assert.Equal([]int{0, 1, 2}, dst.Slice())
}

func Test_Producer_DeferredError(t *testing.T) {
	assert := assert.New(t)

	src := endpoint.NewSliceProducer([]int{1, 2, 3})
	p := NewProducer[int](src, MustProduceOperations(Produce()), 4)

	// The end of src is met while filling, but three items are staged.
	assert.NoError(p.Slurp())
	assert.Equal(3, p.Len())

	for _, expected := range []int{1, 2, 3} {
		item, err := p.Produce()
		assert.NoError(err)
		assert.Equal(expected, item)
	}

	_, err := p.Produce()
	assert.ErrorIs(err, bulkio.ErrEnd)
	_, err = p.ProducerSlots()
	assert.ErrorIs(err, bulkio.ErrEnd)
	assert.ErrorIs(p.Slurp(), bulkio.ErrEnd)

	assert.Equal(3, src.Position())
}

func Test_Producer_MappedError(t *testing.T) {
	assert := assert.New(t)

	errBroken := errors.New("broken source")
	src := endpoint.MapProducerErr[int](endpoint.NewSliceProducer([]int{1, 2}), func(error) error {
		return errBroken
	})
	p := NewProducer[int](src, MustProduceOperations(BulkProduce(8), Slurp()), 8)

	out := endpoint.NewCollector[int]()
	assert.ErrorIs(bulkio.Pipe(p, out), errBroken)
	assert.Equal([]int{1, 2}, out.Items())
}

// transfer moves every item of data from a scrambled producer into a
// scrambled consumer and returns what reached the sink.
func transfer(t *testing.T, data []byte, produceOps ProduceOperations, consumeOps ConsumeOperations, capacity, depth int) []byte {
	t.Helper()

	var src bulkio.BulkProducer[byte] = endpoint.NewSliceProducer(data)
	for range depth {
		src = NewProducer[byte](src, produceOps, capacity)
	}

	sink := endpoint.NewCollector[byte]()
	var dst bulkio.BulkConsumer[byte] = sink
	for range depth {
		dst = NewConsumer[byte](dst, consumeOps, capacity)
	}

	err := bulkio.BulkConsumeAll(src, dst)
	require.ErrorIs(t, err, bulkio.ErrEnd)
	require.NoError(t, dst.Flush())

	return sink.Items()
}

// equalBytes treats a nil and an empty slice alike.
func equalBytes(t *testing.T, expected, actual []byte) bool {
	t.Helper()

	if len(expected) == 0 {
		return assert.Empty(t, actual)
	}
	return assert.Equal(t, expected, actual)
}

func randomBytes(rng *rand.Rand, n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(rng.UintN(256))
	}
	return data
}

func Test_Fidelity(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for i := range 200 {
		src := NewByteSource(randomBytes(rng, 256))

		produceOps, err := DecodeProduceOperations(src)
		if err != nil {
			produceOps = MustProduceOperations(Produce())
		}
		consumeOps, err := DecodeConsumeOperations(src)
		if err != nil {
			consumeOps = MustConsumeOperations(Consume())
		}

		capacity := src.IntRange(1, MaxWindow)
		depth := 1 + i%2
		data := randomBytes(rng, rng.IntN(4096))

		items := transfer(t, data, produceOps, consumeOps, capacity, depth)
		if !equalBytes(t, data, items) {
			t.Logf("produce %s, consume %s, capacity %d, depth %d", produceOps, consumeOps, capacity, depth)
			return
		}
	}
}

func Test_Fidelity_ReaderWriter(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewPCG(3, 5))
	data := randomBytes(rng, 10_000)

	produceOps := MustProduceOperations(ProducerSlots(3), Produce(), Slurp(), BulkProduce(700))
	consumeOps := MustConsumeOperations(ConsumerSlots(5), Flush(), Consume(), BulkConsume(1000))

	src := NewProducer[byte](endpoint.NewReaderProducer(newChunkReader(data, 13), 64), produceOps, 100)

	var out chunkWriter
	wc := endpoint.NewWriterConsumer(&out, 32)
	dst := NewConsumer[byte](wc, consumeOps, 50)

	assert.ErrorIs(bulkio.Pipe(src, dst), bulkio.ErrEnd)
	assert.NoError(dst.Flush())
	assert.Equal(data, out.data)
}

type chunkReader struct {
	data  []byte
	chunk int
}

func newChunkReader(data []byte, chunk int) *chunkReader {
	return &chunkReader{data: data, chunk: chunk}
}

func (cr *chunkReader) Read(p []byte) (int, error) {
	if len(cr.data) == 0 {
		return 0, io.EOF
	}
	n := copy(p[:min(len(p), cr.chunk)], cr.data)
	cr.data = cr.data[n:]
	return n, nil
}

type chunkWriter struct {
	data []byte
}

func (cw *chunkWriter) Write(p []byte) (int, error) {
	cw.data = append(cw.data, p...)
	return len(p), nil
}

func fuzzSeeds(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{4, 0, 1, 1, 200, 2, 0, 9, 3, 1, 2, 3, 4, 5, 6, 7, 8, 9})
	f.Add([]byte("the quick brown fox jumps over the lazy dog"))
}

func FuzzScrambleConsumer(f *testing.F) {
	fuzzSeeds(f)

	f.Fuzz(func(t *testing.T, raw []byte) {
		src := NewByteSource(raw)

		ops, err := DecodeConsumeOperations(src)
		if err != nil {
			t.Skip()
		}
		capacity := src.IntRange(1, MaxWindow)
		data := src.Bytes(src.Len())

		sink := endpoint.NewCollector[byte]()
		c := NewConsumer[byte](sink, ops, capacity)

		require.ErrorIs(t, bulkio.BulkProduceAll(endpoint.NewSliceProducer(data), c), bulkio.ErrEnd)
		require.NoError(t, c.Flush())
		equalBytes(t, data, sink.Items())
	})
}

func FuzzScrambleProducer(f *testing.F) {
	fuzzSeeds(f)

	f.Fuzz(func(t *testing.T, raw []byte) {
		src := NewByteSource(raw)

		ops, err := DecodeProduceOperations(src)
		if err != nil {
			t.Skip()
		}
		capacity := src.IntRange(1, MaxWindow)
		data := src.Bytes(src.Len())

		p := NewProducer[byte](endpoint.NewSliceProducer(data), ops, capacity)
		sink := endpoint.NewCollector[byte]()

		require.ErrorIs(t, bulkio.BulkConsumeAll(p, sink), bulkio.ErrEnd)
		equalBytes(t, data, sink.Items())
	})
}

func FuzzScrambleNested(f *testing.F) {
	fuzzSeeds(f)

	f.Fuzz(func(t *testing.T, raw []byte) {
		src := NewByteSource(raw)

		produceOps, err := DecodeProduceOperations(src)
		if err != nil {
			t.Skip()
		}
		consumeOps, err := DecodeConsumeOperations(src)
		if err != nil {
			t.Skip()
		}
		capacity := src.IntRange(1, MaxWindow)
		data := src.Bytes(src.Len())

		equalBytes(t, data, transfer(t, data, produceOps, consumeOps, capacity, 2))
	})
}
