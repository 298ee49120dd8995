package ringbuffer

import (
	"fmt"

	"github.com/squadracorsepolito/bulkio"
)

var (
	// ErrFull is returned when there is currently no space for writing.
	ErrFull = fmt.Errorf("%w: ring buffer is full", bulkio.ErrUnavailable)
	// ErrEmpty is returned when there are currently no items to read.
	ErrEmpty = fmt.Errorf("%w: ring buffer is empty", bulkio.ErrUnavailable)
)
