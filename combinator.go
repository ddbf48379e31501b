package wire

import "fmt"

// Composite codec combinators. Each is generic over its element codecs,
// adds no buffering beyond the element in flight, and frames itself with
// the same uvarint scheme the primitives use.

// sliceAllocStep caps the initial capacity reserved from a decoded
// element count. The declared count is validated against the frame
// ceiling, but elements arrive one at a time, so growth stays tied to
// data actually read rather than to the prefix alone.
const sliceAllocStep = 4096

// SliceCodec returns a codec for []T: a uvarint element count followed
// by each element's encoding in order. Decode reads the count, checks it
// against the ceiling, then loops exactly that many times, propagating
// the first element failure. A nil slice round-trips as an empty one.
func SliceCodec[T any](elem Codec[T]) Codec[[]T] {
	return CodecFunc[[]T]{
		EncodeFunc: func(e *Encoder, vs []T) error {
			e.WriteUvarint(uint64(len(vs)))
			for i := range vs {
				if err := elem.Encode(e, vs[i]); err != nil {
					return err
				}
			}
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) ([]T, error) {
			n := d.ReadUvarint()
			if err := d.Err(); err != nil {
				return nil, err
			}
			if n > uint64(d.MaxFrame()) {
				return nil, d.fail(fmt.Errorf("%w: declared %d elements, maximum %d", ErrFrameTooLarge, n, d.MaxFrame()))
			}
			out := make([]T, 0, min(int(n), sliceAllocStep))
			for i := uint64(0); i < n; i++ {
				v, err := elem.Decode(d)
				if err != nil {
					return nil, err
				}
				out = append(out, v)
			}
			return out, nil
		},
	}
}

// OptionalCodec returns a codec for *T: one presence byte, then the
// payload iff present. A nil pointer encodes as absent; decode of an
// absent value yields nil.
func OptionalCodec[T any](elem Codec[T]) Codec[*T] {
	return CodecFunc[*T]{
		EncodeFunc: func(e *Encoder, v *T) error {
			if v == nil {
				e.WriteUint8(0)
				return e.Err()
			}
			e.WriteUint8(1)
			if err := e.Err(); err != nil {
				return err
			}
			return elem.Encode(e, *v)
		},
		DecodeFunc: func(d *Decoder) (*T, error) {
			var present uint8
			d.ReadUint8(&present)
			if err := d.Err(); err != nil {
				return nil, err
			}
			switch present {
			case 0:
				return nil, nil
			case 1:
				v, err := elem.Decode(d)
				if err != nil {
					return nil, err
				}
				return &v, nil
			default:
				return nil, d.fail(fmt.Errorf("%w: presence byte 0x%02x", ErrMalformed, present))
			}
		},
	}
}

// UnionCodec returns a codec for a closed set of variants of T. tagOf
// maps a value to its variant index; encode writes the uvarint tag and
// dispatches to that variant's codec, decode reads the tag back and
// does the same. Tags 0 through 127 occupy a single byte.
//
// A value tagOf cannot place fails ErrValueType on encode; a decoded
// tag outside the variant range is malformed.
func UnionCodec[T any](tagOf func(T) (uint64, bool), variants ...Codec[T]) Codec[T] {
	return CodecFunc[T]{
		EncodeFunc: func(e *Encoder, v T) error {
			tag, ok := tagOf(v)
			if !ok || tag >= uint64(len(variants)) {
				return e.fail(fmt.Errorf("%w: no variant for value %v", ErrValueType, v))
			}
			e.WriteUvarint(tag)
			if err := e.Err(); err != nil {
				return err
			}
			return variants[tag].Encode(e, v)
		},
		DecodeFunc: func(d *Decoder) (T, error) {
			var zero T
			tag := d.ReadUvarint()
			if err := d.Err(); err != nil {
				return zero, err
			}
			if tag >= uint64(len(variants)) {
				return zero, d.fail(fmt.Errorf("%w: variant tag %d out of range (%d variants)", ErrMalformed, tag, len(variants)))
			}
			return variants[tag].Decode(d)
		},
	}
}

// PairCodec returns a codec for a two-field composite, encoded first
// then second with no extra framing. Self-delimitation comes from the
// element codecs.
func PairCodec[A, B any](first Codec[A], second Codec[B]) Codec[Pair[A, B]] {
	return CodecFunc[Pair[A, B]]{
		EncodeFunc: func(e *Encoder, v Pair[A, B]) error {
			if err := first.Encode(e, v.First); err != nil {
				return err
			}
			return second.Encode(e, v.Second)
		},
		DecodeFunc: func(d *Decoder) (Pair[A, B], error) {
			var out Pair[A, B]
			a, err := first.Decode(d)
			if err != nil {
				return out, err
			}
			b, err := second.Decode(d)
			if err != nil {
				return out, err
			}
			out.First, out.Second = a, b
			return out, nil
		},
	}
}

// Pair is the value type of PairCodec.
type Pair[A, B any] struct {
	First  A
	Second B
}
