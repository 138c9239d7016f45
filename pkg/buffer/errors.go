package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by Buffer operations. They are always wrapped with the
// operation name and the requested and available byte counts; use errors.Is
// to test for them.
var (
	// ErrInsufficientReadable is returned when an operation needs more bytes
	// than are currently readable. Retrying after more data is appended is
	// the usual way out.
	ErrInsufficientReadable = errors.New("buffer: insufficient readable bytes")

	// ErrPrependOverflow is returned when a prepend is larger than the
	// prependable region. The prepend reserve never grows on demand.
	ErrPrependOverflow = errors.New("buffer: prepend overflow")

	// ErrInsufficientWritable is returned by HasWritten when asked to commit
	// more bytes than the writable region holds.
	ErrInsufficientWritable = errors.New("buffer: insufficient writable bytes")

	// ErrNegativeCount is returned when a byte count is negative.
	ErrNegativeCount = errors.New("buffer: negative count")
)

func errReadable(op string, want, have int) error {
	return fmt.Errorf("buffer: %s %d bytes with %d readable: %w", op, want, have, ErrInsufficientReadable)
}

func errWritable(op string, want, have int) error {
	return fmt.Errorf("buffer: %s %d bytes with %d writable: %w", op, want, have, ErrInsufficientWritable)
}

func errPrepend(want, have int) error {
	return fmt.Errorf("buffer: prepend %d bytes with %d prependable: %w", want, have, ErrPrependOverflow)
}

func errNegative(op string, n int) error {
	return fmt.Errorf("buffer: %s %d: %w", op, n, ErrNegativeCount)
}
