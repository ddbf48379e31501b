package wire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type document struct {
	Name   string   `cbor:"name"`
	Count  int64    `cbor:"count"`
	Labels []string `cbor:"labels,omitempty"`
}

func TestCBORCodecRoundTrip(t *testing.T) {
	reg := NewRegistry(nil)
	require.NoError(t, Register(reg, FormatCBOR, CBORCodec[document]()))

	ctx := context.Background()
	buf := &Buffer{}
	in := document{Name: "job", Count: -3, Labels: []string{"a", "b"}}

	enc, _ := reg.NewEncoder(ctx, buf)
	require.NoError(t, EncodeValue(reg, enc, FormatCBOR, in))

	dec, _ := reg.NewDecoder(ctx, buf)
	out, err := DecodeValue[document](reg, dec, FormatCBOR)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Zero(t, buf.Len(), "the frame must delimit the document exactly")
}

func TestCBORCodecFramingLaw(t *testing.T) {
	c := CBORCodec[document]()

	buf := &Buffer{}
	enc, _ := NewEncoder(context.Background(), buf, nil)
	require.NoError(t, c.Encode(enc, document{Name: "one"}))
	require.NoError(t, c.Encode(enc, document{Name: "two"}))

	dec, _ := NewDecoder(context.Background(), buf, nil)
	d1, err := c.Decode(dec)
	require.NoError(t, err)
	d2, err := c.Decode(dec)
	require.NoError(t, err)
	assert.Equal(t, "one", d1.Name)
	assert.Equal(t, "two", d2.Name)
}

func TestCBORCodecMalformedBody(t *testing.T) {
	c := CBORCodec[document]()

	// A frame whose body is not CBOR.
	dec, _ := NewDecoder(context.Background(), NewBuffer([]byte{0x03, 0xFF, 0xFF, 0xFF}), nil)
	_, err := c.Decode(dec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCBORCodecCeiling(t *testing.T) {
	c := CBORCodec[document]()

	// Encode side: the document exceeds the configured ceiling.
	enc, _ := NewEncoder(context.Background(), &Buffer{}, &Options{MaxFrameLength: 8})
	err := c.Encode(enc, document{Name: "far too long for eight bytes"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFrameTooLarge)

	// Decode side: hostile prefix refused before the body is buffered.
	dec, _ := NewDecoder(context.Background(), NewBuffer([]byte{0xFF, 0xFF, 0x03}), &Options{MaxFrameLength: 8})
	_, err = c.Decode(dec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}
