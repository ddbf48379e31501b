// Package wire implements asynchronous streaming serialization with
// pluggable, per-call formats. Values are encoded into and decoded from
// byte streams in bounded chunks, so the full encoded representation never
// has to exist in memory at once.
//
// A Codec is a stateless encode/decode strategy for exactly one
// (type, FormatID) pair. Codecs are held by a Registry keyed by that pair,
// so a single type may carry any number of wire layouts and the caller
// picks one per call. Primitive codecs are ordinary registry entries built
// on the same Codec surface as user types; the core carries no knowledge
// of any concrete type.
package wire

import "fmt"

// FormatID identifies one serialization format for one logical type.
// Identifiers are stable: once data encoded under an identifier has been
// persisted or transmitted, changing that layout is a breaking change and
// requires a new identifier instead.
type FormatID string

// Built-in format identifiers.
const (
	// FormatFixed is the little-endian fixed-width layout for integers
	// and booleans. It is the default format of a fresh Registry.
	FormatFixed FormatID = "fixed/le"

	// FormatFixedBE is the big-endian counterpart of FormatFixed,
	// registered for the same types under a distinct identifier.
	FormatFixedBE FormatID = "fixed/be"

	// FormatFramed is the uvarint-length-prefixed layout for byte
	// sequences and strings.
	FormatFramed FormatID = "framed"

	// FormatCBOR frames a CBOR document per value. See CBOR.
	FormatCBOR FormatID = "cbor"
)

// Codec is the encode/decode contract for one (type, FormatID) pair.
//
// Implementations must be stateless: all per-operation state lives in the
// Encoder/Decoder cursors, so one codec value may serve any number of
// concurrent operations. Encode writes a self-delimiting representation
// using only bounded writes and must not assume the output supports
// seeking. Decode reads exactly the bytes a matching Encode produced,
// and no more.
type Codec[T any] interface {
	Encode(e *Encoder, v T) error
	Decode(d *Decoder) (T, error)
}

// CodecFunc pairs two functions into a Codec.
type CodecFunc[T any] struct {
	EncodeFunc func(e *Encoder, v T) error
	DecodeFunc func(d *Decoder) (T, error)
}

func (c CodecFunc[T]) Encode(e *Encoder, v T) error { return c.EncodeFunc(e, v) }
func (c CodecFunc[T]) Decode(d *Decoder) (T, error) { return c.DecodeFunc(d) }

// anyCodec is the type-erased form a Registry stores.
type anyCodec interface {
	encodeAny(e *Encoder, v any) error
	decodeAny(d *Decoder) (any, error)
}

// erased wraps a typed codec for registry storage. Lookup recovers the
// typed codec by asserting back to erased[T].
type erased[T any] struct{ c Codec[T] }

func (x erased[T]) encodeAny(e *Encoder, v any) error {
	t, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: have %T", ErrValueType, v)
	}
	return x.c.Encode(e, t)
}

func (x erased[T]) decodeAny(d *Decoder) (any, error) {
	return x.c.Decode(d)
}
