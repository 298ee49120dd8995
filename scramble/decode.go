package scramble

import "encoding/binary"

const (
	// MaxScriptLen is the maximum number of operations of a decoded script.
	MaxScriptLen = 32
	// MaxWindow is the maximum window of a decoded operation.
	MaxWindow = 2048
)

// ByteSource deterministically turns raw bytes, typically fuzzer input,
// into values. Once the bytes run out, every value decodes as its minimum.
type ByteSource struct {
	data []byte
}

func NewByteSource(data []byte) *ByteSource {
	return &ByteSource{
		data: data,
	}
}

// Len returns the number of bytes left.
func (s *ByteSource) Len() int {
	return len(s.data)
}

func (s *ByteSource) Byte() byte {
	if len(s.data) == 0 {
		return 0
	}

	b := s.data[0]
	s.data = s.data[1:]

	return b
}

func (s *ByteSource) Uint16() uint16 {
	if len(s.data) < 2 {
		return uint16(s.Byte())
	}

	v := binary.LittleEndian.Uint16(s.data)
	s.data = s.data[2:]

	return v
}

// IntRange returns a value in [lo, hi]. The bound hi-lo must fit in 16 bits.
func (s *ByteSource) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}

	span := hi - lo + 1
	if span <= 1<<8 {
		return lo + int(s.Byte())%span
	}
	return lo + int(s.Uint16())%span
}

func (s *ByteSource) Bool() bool {
	return s.Byte()&1 == 1
}

// Bytes returns the next n bytes, or fewer if the source runs out.
func (s *ByteSource) Bytes(n int) []byte {
	n = min(max(n, 0), len(s.data))

	b := s.data[:n]
	s.data = s.data[n:]

	return b
}

// window favours small windows, which exercise the wrap around
// of the staging buffer more often than large ones.
func (s *ByteSource) window() int {
	if s.Bool() {
		return s.IntRange(1, 16)
	}
	return s.IntRange(1, MaxWindow)
}

// DecodeConsumeOperations decodes a [Consumer] script from src.
// It fails with [ErrPassThroughScript] when every decoded operation is a flush.
func DecodeConsumeOperations(src *ByteSource) (ConsumeOperations, error) {
	ops := make([]ConsumeOperation, src.IntRange(1, MaxScriptLen))

	for i := range ops {
		kind := ConsumeKind(src.Byte() % 4)

		switch kind {
		case OpConsumerSlots, OpBulkConsume:
			ops[i] = ConsumeOperation{Kind: kind, Window: src.window()}
		default:
			ops[i] = ConsumeOperation{Kind: kind}
		}
	}

	return NewConsumeOperations(ops...)
}

// DecodeProduceOperations decodes a [Producer] script from src.
// It fails with [ErrPassThroughScript] when every decoded operation is a slurp.
func DecodeProduceOperations(src *ByteSource) (ProduceOperations, error) {
	ops := make([]ProduceOperation, src.IntRange(1, MaxScriptLen))

	for i := range ops {
		kind := ProduceKind(src.Byte() % 4)

		switch kind {
		case OpProducerSlots, OpBulkProduce:
			ops[i] = ProduceOperation{Kind: kind, Window: src.window()}
		default:
			ops[i] = ProduceOperation{Kind: kind}
		}
	}

	return NewProduceOperations(ops...)
}
