package syntax

import (
	"provcheck/internal/source"
)

// Error describes why a file could not be turned into a Stream.
type Error struct {
	Kind string
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Is makes errors.Is(err, ErrUnparsable) hold for every *Error.
func (e *Error) Is(target error) bool {
	return target == ErrUnparsable
}
