package wire

// DefaultMaxFrame bounds length-prefixed allocations when the caller does
// not supply a ceiling.
const DefaultMaxFrame = 16 << 20 // 16 MiB

// Options configures a Registry and the cursors it produces.
// A nil *Options means defaults everywhere.
type Options struct {
	// MaxFrameLength caps every variable-length-framed allocation: byte
	// blobs, strings, element counts and CBOR bodies. A decoded length
	// prefix past this ceiling fails with ErrFrameTooLarge before any
	// buffer is allocated. Zero means DefaultMaxFrame.
	MaxFrameLength int

	// DefaultFormat is the FormatID used when a caller passes an empty
	// one. Empty means FormatFixed.
	DefaultFormat FormatID
}

func (o *Options) norm() Options {
	out := Options{MaxFrameLength: DefaultMaxFrame, DefaultFormat: FormatFixed}
	if o == nil {
		return out
	}
	if o.MaxFrameLength > 0 {
		out.MaxFrameLength = o.MaxFrameLength
	}
	if o.DefaultFormat != "" {
		out.DefaultFormat = o.DefaultFormat
	}
	return out
}
