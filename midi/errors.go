package midi

import (
	"errors"
	"fmt"
)

// Error kinds returned by the registry, message setters and the text parser.
// Callers match them with errors.Is; the wrapped message carries the detail.
var (
	ErrUnknownType       = errors.New("unknown message type")
	ErrInvalidField      = errors.New("invalid field")
	ErrType              = errors.New("wrong value type")
	ErrRange             = errors.New("value out of range")
	ErrReadOnly          = errors.New("read only")
	ErrEmpty             = errors.New("empty message text")
	ErrMalformedArgument = errors.New("malformed argument")
	ErrDuplicateArgument = errors.New("duplicate argument")
	ErrMalformedData     = errors.New("malformed data")
)

// LineError is a parse failure reported by ParseStream.
type LineError struct {
	Line int // 1-based input line
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}
