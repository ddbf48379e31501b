package wire

import (
	"errors"
	"fmt"
)

var (
	// ErrNilStream indicates that a cursor or stream wrapper was
	// constructed over a nil stream.
	ErrNilStream = errors.New("wire: nil stream")

	// ErrDuplicateFormat indicates that Register was called for a
	// (type, FormatID) pair that already has a codec. The first
	// registration stays active.
	ErrDuplicateFormat = errors.New("wire: format already registered for type")

	// ErrUnknownFormat indicates that no codec is registered for the
	// requested (type, FormatID) pair.
	ErrUnknownFormat = errors.New("wire: no codec registered for type and format")

	// ErrMalformed indicates inconsistent framing in decoded data: a bad
	// tag or presence byte, a varint that overflows, a declared length
	// past the configured ceiling. Never recovered silently.
	ErrMalformed = errors.New("wire: malformed data")

	// ErrValueType indicates a value whose dynamic type does not match
	// the codec it was dispatched to.
	ErrValueType = errors.New("wire: value type does not match codec")

	// ErrInvalidWrite indicates that a Writer returned an impossible
	// count from Write.
	ErrInvalidWrite = errors.New("wire: writer returned invalid count from Write")

	// ErrInvalidRead indicates that a Reader returned an impossible
	// count from Read.
	ErrInvalidRead = errors.New("wire: reader returned invalid count from Read")
)

// ErrFrameTooLarge is returned before any allocation when a decoded
// length prefix exceeds Options.MaxFrameLength. It wraps ErrMalformed: an
// untrusted length past the ceiling is corrupt framing, not a request to
// allocate.
var ErrFrameTooLarge = fmt.Errorf("%w: declared frame length exceeds configured maximum", ErrMalformed)
