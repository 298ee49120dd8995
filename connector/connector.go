// Package connector moves items between goroutines on top of the
// non-blocking buffers of the ringbuffer package.
package connector

import (
	"fmt"

	"github.com/squadracorsepolito/bulkio"
)

// ErrClosed is returned by a closed [Connector]. It wraps [bulkio.ErrEnd],
// so a pipe reading from a closed connector ends like any other source.
var ErrClosed = fmt.Errorf("%w: connector is closed", bulkio.ErrEnd)

// Connector is a goroutine-safe queue with blocking reads and writes.
type Connector[T any] interface {
	Write(item T) error
	Read() (T, error)
	Close()
}
