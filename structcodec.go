package wire

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/puzpuzpuz/xsync/v4"
)

// sizeCache avoids the reflection cost of binary.Size on every call.
// Keyed by reflect.Type, shared process-wide.
var sizeCache = xsync.NewMap[reflect.Type, int]()

// StructCodec returns a codec for a struct type composed entirely of
// fixed-width fields, derived via encoding/binary in the given byte
// order. The encoded form is exactly the struct's packed size, written
// in one bounded write.
//
// Constraint: T must not contain variable-size fields (slices, maps,
// strings). StructCodec panics for such types at construction, so a bad
// derivation fails at registration time rather than mid-stream.
func StructCodec[T any](order binary.ByteOrder) Codec[T] {
	size := structSize[T]()
	if size < 0 {
		panic(fmt.Sprintf("wire: StructCodec for %s, which has variable-size fields", typeOf[T]()))
	}
	return structCodec[T]{order: order, size: size}
}

func structSize[T any]() int {
	t := typeOf[T]()
	if size, ok := sizeCache.Load(t); ok {
		return size
	}
	var v T
	size := binary.Size(&v)
	sizeCache.Store(t, size)
	return size
}

type structCodec[T any] struct {
	order binary.ByteOrder
	size  int
}

func (c structCodec[T]) Encode(e *Encoder, v T) error {
	buf := make([]byte, c.size)
	if _, err := binary.Encode(buf, c.order, &v); err != nil {
		return e.fail(err)
	}
	e.WriteBytes(buf)
	return e.Err()
}

func (c structCodec[T]) Decode(d *Decoder) (T, error) {
	var v T
	buf := make([]byte, c.size)
	d.ReadBytesTo(buf)
	if err := d.Err(); err != nil {
		return v, err
	}
	if _, err := binary.Decode(buf, c.order, &v); err != nil {
		return v, d.fail(fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	return v, nil
}
