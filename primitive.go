package wire

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

// The primitive codec set. Each constructor returns an ordinary Codec
// that a Registry holds like any user codec: fixed-width integers are a
// single bounded write of exactly their width, byte sequences and
// strings are uvarint-length-framed, booleans are one strict 0/1 byte.

// castCodec adapts a codec through a lossless integer conversion. The
// signed fixed-width codecs reuse the unsigned implementations this way.
func castCodec[T, U constraints.Integer](inner Codec[U]) Codec[T] {
	return CodecFunc[T]{
		EncodeFunc: func(e *Encoder, v T) error { return inner.Encode(e, U(v)) },
		DecodeFunc: func(d *Decoder) (T, error) {
			u, err := inner.Decode(d)
			return T(u), err
		},
	}
}

// Uint8Codec returns the one-byte codec for uint8. Byte order does not
// apply at this width.
func Uint8Codec() Codec[uint8] {
	return CodecFunc[uint8]{
		EncodeFunc: func(e *Encoder, v uint8) error {
			e.WriteUint8(v)
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (uint8, error) {
			var v uint8
			d.ReadUint8(&v)
			return v, d.Err()
		},
	}
}

// Uint16Codec returns the two-byte fixed-width codec for uint16 in the
// given byte order.
func Uint16Codec(order binary.ByteOrder) Codec[uint16] {
	return CodecFunc[uint16]{
		EncodeFunc: func(e *Encoder, v uint16) error {
			var buf [2]byte
			order.PutUint16(buf[:], v)
			e.WriteBytes(buf[:])
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (uint16, error) {
			var buf [2]byte
			d.ReadBytesTo(buf[:])
			if err := d.Err(); err != nil {
				return 0, err
			}
			return order.Uint16(buf[:]), nil
		},
	}
}

// Uint32Codec returns the four-byte fixed-width codec for uint32 in the
// given byte order.
func Uint32Codec(order binary.ByteOrder) Codec[uint32] {
	return CodecFunc[uint32]{
		EncodeFunc: func(e *Encoder, v uint32) error {
			var buf [4]byte
			order.PutUint32(buf[:], v)
			e.WriteBytes(buf[:])
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (uint32, error) {
			var buf [4]byte
			d.ReadBytesTo(buf[:])
			if err := d.Err(); err != nil {
				return 0, err
			}
			return order.Uint32(buf[:]), nil
		},
	}
}

// Uint64Codec returns the eight-byte fixed-width codec for uint64 in the
// given byte order.
func Uint64Codec(order binary.ByteOrder) Codec[uint64] {
	return CodecFunc[uint64]{
		EncodeFunc: func(e *Encoder, v uint64) error {
			var buf [8]byte
			order.PutUint64(buf[:], v)
			e.WriteBytes(buf[:])
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (uint64, error) {
			var buf [8]byte
			d.ReadBytesTo(buf[:])
			if err := d.Err(); err != nil {
				return 0, err
			}
			return order.Uint64(buf[:]), nil
		},
	}
}

func Int8Codec() Codec[int8] { return castCodec[int8](Uint8Codec()) }

func Int16Codec(order binary.ByteOrder) Codec[int16] {
	return castCodec[int16](Uint16Codec(order))
}

func Int32Codec(order binary.ByteOrder) Codec[int32] {
	return castCodec[int32](Uint32Codec(order))
}

func Int64Codec(order binary.ByteOrder) Codec[int64] {
	return castCodec[int64](Uint64Codec(order))
}

// UvarintCodec returns a codec for uint64 in base-128 continuation
// encoding, one to ten bytes depending on magnitude.
func UvarintCodec() Codec[uint64] {
	return CodecFunc[uint64]{
		EncodeFunc: func(e *Encoder, v uint64) error {
			e.WriteUvarint(v)
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (uint64, error) {
			v := d.ReadUvarint()
			return v, d.Err()
		},
	}
}

// BoolCodec returns the one-byte boolean codec. On decode only 0 and 1
// are accepted; anything else is malformed.
func BoolCodec() Codec[bool] {
	return CodecFunc[bool]{
		EncodeFunc: func(e *Encoder, v bool) error {
			e.WriteBool(v)
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (bool, error) {
			var v bool
			d.ReadBool(&v)
			return v, d.Err()
		},
	}
}

// BytesCodec returns the uvarint-length-framed codec for byte slices.
// Decode enforces the frame ceiling before allocating.
func BytesCodec() Codec[[]byte] {
	return CodecFunc[[]byte]{
		EncodeFunc: func(e *Encoder, v []byte) error {
			e.WriteFrame(v)
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) ([]byte, error) {
			v := d.ReadFrame()
			return v, d.Err()
		},
	}
}

// StringCodec returns the uvarint-length-framed codec for strings.
func StringCodec() Codec[string] {
	return CodecFunc[string]{
		EncodeFunc: func(e *Encoder, v string) error {
			e.WriteString(v)
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (string, error) {
			v := d.ReadString()
			return v, d.Err()
		},
	}
}

// FixedBytesCodec returns a codec for exactly n raw bytes with no
// prefix, for fields whose width is fixed by the protocol.
func FixedBytesCodec(n int) Codec[[]byte] {
	if n < 0 {
		panic(fmt.Sprintf("wire: FixedBytesCodec with negative width %d", n))
	}
	return CodecFunc[[]byte]{
		EncodeFunc: func(e *Encoder, v []byte) error {
			if len(v) != n {
				return e.fail(fmt.Errorf("%w: have %d bytes, codec is fixed at %d", ErrValueType, len(v), n))
			}
			e.WriteBytes(v)
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) ([]byte, error) {
			v := d.ReadBytes(n)
			return v, d.Err()
		},
	}
}
