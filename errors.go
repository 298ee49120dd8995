package bulkio

import "errors"

var (
	// ErrUnavailable signals that an operation cannot complete right now,
	// e.g. a full or empty buffer. Retrying later may succeed.
	ErrUnavailable = errors.New("bulkio: currently unavailable")

	// ErrEnd signals that a producer is exhausted or a consumer cannot take any more items.
	ErrEnd = errors.New("bulkio: end of stream")
)

// IsUnavailable reports whether err is a transient [ErrUnavailable] condition.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsEnd reports whether err marks the end of the stream.
func IsEnd(err error) bool {
	return errors.Is(err, ErrEnd)
}
