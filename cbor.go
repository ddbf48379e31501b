package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// CBORCodec returns a codec that frames one CBOR document per value: a
// uvarint body length followed by the CBOR encoding. It gives any Go
// type a self-describing format without hand-written stream logic, at
// the cost of buffering the single document being processed; the frame
// ceiling caps that buffer on both sides. This is the bridge for
// schemaless values, not the bulk path.
//
// The conventional registration is under FormatCBOR.
func CBORCodec[T any]() Codec[T] {
	return CodecFunc[T]{
		EncodeFunc: func(e *Encoder, v T) error {
			body, err := cbor.Marshal(v)
			if err != nil {
				return e.fail(err)
			}
			e.WriteFrame(body)
			return e.Err()
		},
		DecodeFunc: func(d *Decoder) (T, error) {
			var v T
			body := d.ReadFrame()
			if err := d.Err(); err != nil {
				return v, err
			}
			if err := cbor.Unmarshal(body, &v); err != nil {
				return v, d.fail(fmt.Errorf("%w: %v", ErrMalformed, err))
			}
			return v, nil
		},
	}
}
