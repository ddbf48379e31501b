package wire

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// roundTripCompressed encodes a few framed values through a compressing
// writer and reads them back through the matching reader, checking that
// framing survives the nested stream.
func roundTripCompressed(t *testing.T, wrap func(Writer) (Writer, func(context.Context) error), unwrap func(Reader) (Reader, error)) {
	t.Helper()
	reg := NewRegistry(nil)
	ctx := context.Background()
	buf := &Buffer{}

	cw, closeFn := wrap(buf)
	enc, err := reg.NewEncoder(ctx, cw)
	require.NoError(t, err)
	require.NoError(t, EncodeValue(reg, enc, FormatFramed, "compressed stream"))
	require.NoError(t, EncodeValue(reg, enc, FormatFixed, uint32(300)))
	require.NoError(t, EncodeValue(reg, enc, FormatFramed, "second value"))
	require.NoError(t, closeFn(ctx))

	cr, err := unwrap(buf)
	require.NoError(t, err)
	dec, err := reg.NewDecoder(ctx, cr)
	require.NoError(t, err)

	s1, err := DecodeValue[string](reg, dec, FormatFramed)
	require.NoError(t, err)
	n, err := DecodeValue[uint32](reg, dec, FormatFixed)
	require.NoError(t, err)
	s2, err := DecodeValue[string](reg, dec, FormatFramed)
	require.NoError(t, err)

	assert.Equal(t, "compressed stream", s1)
	assert.Equal(t, uint32(300), n)
	assert.Equal(t, "second value", s2)
}

func TestZstdStreamRoundTrip(t *testing.T) {
	roundTripCompressed(t,
		func(w Writer) (Writer, func(context.Context) error) {
			zw, err := NewZstdWriter(w)
			require.NoError(t, err)
			return zw, zw.Close
		},
		func(r Reader) (Reader, error) {
			zr, err := NewZstdReader(r)
			if err != nil {
				return nil, err
			}
			t.Cleanup(zr.Close)
			return zr, nil
		},
	)
}

func TestLZ4StreamRoundTrip(t *testing.T) {
	roundTripCompressed(t,
		func(w Writer) (Writer, func(context.Context) error) {
			lw, err := NewLZ4Writer(w)
			require.NoError(t, err)
			return lw, lw.Close
		},
		func(r Reader) (Reader, error) {
			return NewLZ4Reader(r)
		},
	)
}

func TestCompressConstructorsRejectNil(t *testing.T) {
	_, err := NewZstdWriter(nil)
	assert.ErrorIs(t, err, ErrNilStream)
	_, err = NewZstdReader(nil)
	assert.ErrorIs(t, err, ErrNilStream)
	_, err = NewLZ4Writer(nil)
	assert.ErrorIs(t, err, ErrNilStream)
	_, err = NewLZ4Reader(nil)
	assert.ErrorIs(t, err, ErrNilStream)
}

func TestSumStreams(t *testing.T) {
	ctx := context.Background()
	buf := &Buffer{}

	sw := NewSumWriter(buf)
	enc, err := NewEncoder(ctx, sw, nil)
	require.NoError(t, err)
	enc.WriteString("hash me")
	enc.WriteUint64(0x0102030405060708)
	require.NoError(t, enc.Err())
	written := sw.Sum()

	sr := NewSumReader(buf)
	dec, err := NewDecoder(ctx, sr, nil)
	require.NoError(t, err)
	assert.Equal(t, "hash me", dec.ReadString())
	var v uint64
	dec.ReadUint64(&v)
	require.NoError(t, dec.Err())
	assert.Equal(t, uint64(0x0102030405060708), v)

	// The digests agree because both wrappers saw the same bytes.
	assert.Equal(t, written, sr.Sum())
	assert.Len(t, written, 32)
}
