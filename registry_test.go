package wire

import (
	"context"
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryDuplicateRegistration(t *testing.T) {
	reg := NewRegistry(nil)

	// uint32 under the little-endian fixed format is a built-in; a second
	// binding for the same pair must fail and leave the first active.
	err := Register(reg, FormatFixed, Uint32Codec(BE))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateFormat)

	buf := &Buffer{}
	enc, _ := reg.NewEncoder(context.Background(), buf)
	require.NoError(t, EncodeValue(reg, enc, FormatFixed, uint32(300)))
	assert.Equal(t, []byte{0x2C, 0x01, 0x00, 0x00}, buf.Bytes(),
		"the first registration must stay active")
}

func TestRegistryUnknownFormat(t *testing.T) {
	reg := NewRegistry(nil)

	_, err := Lookup[uint32](reg, "no-such-format")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	// A type with no codec at all.
	_, err = Lookup[float64](reg, FormatFixed)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)

	// Registering resolves the miss.
	f64 := CodecFunc[float64]{
		EncodeFunc: func(e *Encoder, v float64) error {
			return Uint64Codec(LE).Encode(e, math.Float64bits(v))
		},
		DecodeFunc: func(d *Decoder) (float64, error) {
			bits, err := Uint64Codec(LE).Decode(d)
			return math.Float64frombits(bits), err
		},
	}
	require.NoError(t, Register(reg, FormatFixed, f64))
	_, err = Lookup[float64](reg, FormatFixed)
	assert.NoError(t, err)
}

func TestRegistryDefaultFormat(t *testing.T) {
	reg := NewRegistry(nil)

	buf := &Buffer{}
	enc, _ := reg.NewEncoder(context.Background(), buf)
	require.NoError(t, EncodeValue(reg, enc, "", uint32(300)),
		"an empty FormatID selects the registry default")
	assert.Equal(t, []byte{0x2C, 0x01, 0x00, 0x00}, buf.Bytes())

	dec, _ := reg.NewDecoder(context.Background(), buf)
	v, err := DecodeValue[uint32](reg, dec, "")
	require.NoError(t, err)
	assert.Equal(t, uint32(300), v)
}

func TestRegistryConfiguredDefaultFormat(t *testing.T) {
	reg := NewRegistry(&Options{DefaultFormat: FormatFixedBE})

	buf := &Buffer{}
	enc, _ := reg.NewEncoder(context.Background(), buf)
	require.NoError(t, EncodeValue(reg, enc, "", uint32(300)))
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x2C}, buf.Bytes())
}

func TestRegistryManyFormatsPerType(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	le := &Buffer{}
	enc, _ := reg.NewEncoder(ctx, le)
	require.NoError(t, EncodeValue(reg, enc, FormatFixed, uint32(0x11223344)))

	be := &Buffer{}
	enc, _ = reg.NewEncoder(ctx, be)
	require.NoError(t, EncodeValue(reg, enc, FormatFixedBE, uint32(0x11223344)))

	assert.Equal(t, []byte{0x44, 0x33, 0x22, 0x11}, le.Bytes())
	assert.Equal(t, []byte{0x11, 0x22, 0x33, 0x44}, be.Bytes())

	dec, _ := reg.NewDecoder(ctx, le)
	v, err := DecodeValue[uint32](reg, dec, FormatFixed)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x11223344), v)

	dec, _ = reg.NewDecoder(ctx, be)
	v, err = DecodeValue[uint32](reg, dec, FormatFixedBE)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x11223344), v)
}

func TestRegistryDynamicDispatch(t *testing.T) {
	reg := NewRegistry(nil)
	ctx := context.Background()

	buf := &Buffer{}
	enc, _ := reg.NewEncoder(ctx, buf)
	require.NoError(t, reg.Encode(enc, FormatFixed, uint32(300)))
	require.NoError(t, reg.Encode(enc, FormatFramed, "ok"))

	dec, _ := reg.NewDecoder(ctx, buf)
	n, err := reg.Decode(dec, reflect.TypeOf(uint32(0)), FormatFixed)
	require.NoError(t, err)
	assert.Equal(t, uint32(300), n)

	s, err := reg.Decode(dec, reflect.TypeOf(""), FormatFramed)
	require.NoError(t, err)
	assert.Equal(t, "ok", s)
}

func TestRegistryUserType(t *testing.T) {
	type point struct {
		X, Y int32
	}

	reg := NewRegistry(nil)
	require.NoError(t, Register(reg, FormatFixed, StructCodec[point](LE)))

	// Same surface as the primitives: a second binding is refused.
	err := Register(reg, FormatFixed, StructCodec[point](LE))
	assert.ErrorIs(t, err, ErrDuplicateFormat)

	ctx := context.Background()
	buf := &Buffer{}
	enc, _ := reg.NewEncoder(ctx, buf)
	require.NoError(t, EncodeValue(reg, enc, FormatFixed, point{X: -1, Y: 2}))

	dec, _ := reg.NewDecoder(ctx, buf)
	v, err := DecodeValue[point](reg, dec, FormatFixed)
	require.NoError(t, err)
	assert.Equal(t, point{X: -1, Y: 2}, v)
}

func TestRegistryValueTypeMismatch(t *testing.T) {
	reg := NewRegistry(nil)
	buf := &Buffer{}
	enc, _ := reg.NewEncoder(context.Background(), buf)

	// The dynamic surface dispatches on the value's runtime type; an
	// unregistered one cannot resolve.
	err := reg.Encode(enc, FormatFixed, 3.14)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
