package scramble

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrEmptyScript is returned when a script has no operations.
	ErrEmptyScript = errors.New("scramble: empty script")
	// ErrPassThroughScript is returned when a script is made only of flush
	// (or slurp) operations, which never move any item.
	ErrPassThroughScript = errors.New("scramble: script without any moving operation")
	// ErrInvalidWindow is returned when a windowed operation has a window lower than 1.
	ErrInvalidWindow = errors.New("scramble: window must be at least 1")
	// ErrInvalidOperation is returned for an unknown operation kind.
	ErrInvalidOperation = errors.New("scramble: invalid operation kind")
)

type ConsumeKind uint8

const (
	// OpConsume forwards a single staged item with Consume.
	OpConsume ConsumeKind = iota
	// OpConsumerSlots copies staged items into the window returned by ConsumerSlots.
	OpConsumerSlots
	// OpBulkConsume hands staged items to BulkConsume.
	OpBulkConsume
	// OpFlush calls Flush.
	OpFlush
)

func (k ConsumeKind) String() string {
	switch k {
	case OpConsume:
		return "consume"
	case OpConsumerSlots:
		return "consumer-slots"
	case OpBulkConsume:
		return "bulk-consume"
	case OpFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// ConsumeOperation is a single step of a [Consumer] script.
// Window bounds the number of items moved by OpConsumerSlots and OpBulkConsume.
type ConsumeOperation struct {
	Kind   ConsumeKind
	Window int
}

func (op ConsumeOperation) String() string {
	switch op.Kind {
	case OpConsumerSlots, OpBulkConsume:
		return fmt.Sprintf("%s(%d)", op.Kind, op.Window)
	default:
		return op.Kind.String()
	}
}

func (op ConsumeOperation) validate() error {
	switch op.Kind {
	case OpConsume, OpFlush:
		return nil
	case OpConsumerSlots, OpBulkConsume:
		if op.Window < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidWindow, op)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidOperation, op.Kind)
	}
}

func Consume() ConsumeOperation {
	return ConsumeOperation{Kind: OpConsume}
}

func ConsumerSlots(window int) ConsumeOperation {
	return ConsumeOperation{Kind: OpConsumerSlots, Window: window}
}

func BulkConsume(window int) ConsumeOperation {
	return ConsumeOperation{Kind: OpBulkConsume, Window: window}
}

func Flush() ConsumeOperation {
	return ConsumeOperation{Kind: OpFlush}
}

// ConsumeOperations is a validated, non-empty [Consumer] script
// containing at least one operation other than OpFlush.
type ConsumeOperations struct {
	ops []ConsumeOperation
}

func NewConsumeOperations(ops ...ConsumeOperation) (ConsumeOperations, error) {
	if len(ops) == 0 {
		return ConsumeOperations{}, ErrEmptyScript
	}

	moving := false
	for _, op := range ops {
		if err := op.validate(); err != nil {
			return ConsumeOperations{}, err
		}

		if op.Kind != OpFlush {
			moving = true
		}
	}

	if !moving {
		return ConsumeOperations{}, ErrPassThroughScript
	}

	return ConsumeOperations{ops: slices.Clone(ops)}, nil
}

// MustConsumeOperations is like [NewConsumeOperations] but panics on an invalid script.
func MustConsumeOperations(ops ...ConsumeOperation) ConsumeOperations {
	script, err := NewConsumeOperations(ops...)
	if err != nil {
		panic(err)
	}
	return script
}

func (o ConsumeOperations) Len() int {
	return len(o.ops)
}

// Operations returns a copy of the operations of the script.
func (o ConsumeOperations) Operations() []ConsumeOperation {
	return slices.Clone(o.ops)
}

func (o ConsumeOperations) String() string {
	return fmt.Sprint(o.ops)
}

type ProduceKind uint8

const (
	// OpProduce stages a single item obtained with Produce.
	OpProduce ProduceKind = iota
	// OpProducerSlots stages items from the window returned by ProducerSlots.
	OpProducerSlots
	// OpBulkProduce stages items obtained with BulkProduce.
	OpBulkProduce
	// OpSlurp calls Slurp.
	OpSlurp
)

func (k ProduceKind) String() string {
	switch k {
	case OpProduce:
		return "produce"
	case OpProducerSlots:
		return "producer-slots"
	case OpBulkProduce:
		return "bulk-produce"
	case OpSlurp:
		return "slurp"
	default:
		return "unknown"
	}
}

// ProduceOperation is a single step of a [Producer] script.
// Window bounds the number of items moved by OpProducerSlots and OpBulkProduce.
type ProduceOperation struct {
	Kind   ProduceKind
	Window int
}

func (op ProduceOperation) String() string {
	switch op.Kind {
	case OpProducerSlots, OpBulkProduce:
		return fmt.Sprintf("%s(%d)", op.Kind, op.Window)
	default:
		return op.Kind.String()
	}
}

func (op ProduceOperation) validate() error {
	switch op.Kind {
	case OpProduce, OpSlurp:
		return nil
	case OpProducerSlots, OpBulkProduce:
		if op.Window < 1 {
			return fmt.Errorf("%w: %s", ErrInvalidWindow, op)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidOperation, op.Kind)
	}
}

func Produce() ProduceOperation {
	return ProduceOperation{Kind: OpProduce}
}

func ProducerSlots(window int) ProduceOperation {
	return ProduceOperation{Kind: OpProducerSlots, Window: window}
}

func BulkProduce(window int) ProduceOperation {
	return ProduceOperation{Kind: OpBulkProduce, Window: window}
}

func Slurp() ProduceOperation {
	return ProduceOperation{Kind: OpSlurp}
}

// ProduceOperations is a validated, non-empty [Producer] script
// containing at least one operation other than OpSlurp.
type ProduceOperations struct {
	ops []ProduceOperation
}

func NewProduceOperations(ops ...ProduceOperation) (ProduceOperations, error) {
	if len(ops) == 0 {
		return ProduceOperations{}, ErrEmptyScript
	}

	moving := false
	for _, op := range ops {
		if err := op.validate(); err != nil {
			return ProduceOperations{}, err
		}

		if op.Kind != OpSlurp {
			moving = true
		}
	}

	if !moving {
		return ProduceOperations{}, ErrPassThroughScript
	}

	return ProduceOperations{ops: slices.Clone(ops)}, nil
}

// MustProduceOperations is like [NewProduceOperations] but panics on an invalid script.
func MustProduceOperations(ops ...ProduceOperation) ProduceOperations {
	script, err := NewProduceOperations(ops...)
	if err != nil {
		panic(err)
	}
	return script
}

func (o ProduceOperations) Len() int {
	return len(o.ops)
}

// Operations returns a copy of the operations of the script.
func (o ProduceOperations) Operations() []ProduceOperation {
	return slices.Clone(o.ops)
}

func (o ProduceOperations) String() string {
	return fmt.Sprint(o.ops)
}
