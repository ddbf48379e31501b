package wire

import (
	"context"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compressed stream providers. These wrap a stream capability with a
// compression codec from the ecosystem; the core never depends on them,
// they are external collaborators implementing the same Reader/Writer
// contract the codecs run on.
//
// The compressors themselves speak io, so each wrapper carries a rebind:
// an io view of the underlying capability whose context is swapped per
// call. A stream handle is exclusively owned by one in-flight operation,
// so the swap is not a race.

type rebind struct {
	ctx context.Context
	w   Writer
	r   Reader
}

func (b *rebind) Write(p []byte) (int, error) { return WriteFull(b.ctx, b.w, p) }
func (b *rebind) Read(p []byte) (int, error)  { return b.r.Read(b.ctx, p) }

// ZstdWriter compresses bytes written through it onto an underlying
// stream with zstd. Until Close the underlying stream does not hold a
// complete zstd frame.
type ZstdWriter struct {
	zw   *zstd.Encoder
	sink *rebind
}

// NewZstdWriter creates a compressing writer over w.
func NewZstdWriter(w Writer) (*ZstdWriter, error) {
	if w == nil {
		return nil, ErrNilStream
	}
	sink := &rebind{ctx: context.Background(), w: w}
	zw, err := zstd.NewWriter(sink)
	if err != nil {
		return nil, err
	}
	return &ZstdWriter{zw: zw, sink: sink}, nil
}

// Write implements the Writer capability.
func (z *ZstdWriter) Write(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	z.sink.ctx = ctx
	return z.zw.Write(p)
}

// Close flushes buffered data and the zstd trailer through to the
// underlying stream. The underlying stream itself is not closed.
func (z *ZstdWriter) Close(ctx context.Context) error {
	z.sink.ctx = ctx
	return z.zw.Close()
}

// ZstdReader decompresses bytes read through it from an underlying
// stream carrying a zstd frame.
type ZstdReader struct {
	zr  *zstd.Decoder
	src *rebind
}

// NewZstdReader creates a decompressing reader over r.
func NewZstdReader(r Reader) (*ZstdReader, error) {
	if r == nil {
		return nil, ErrNilStream
	}
	src := &rebind{ctx: context.Background(), r: r}
	zr, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return &ZstdReader{zr: zr, src: src}, nil
}

// Read implements the Reader capability.
func (z *ZstdReader) Read(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	z.src.ctx = ctx
	return z.zr.Read(p)
}

// Close releases the decoder. The underlying stream is not closed.
func (z *ZstdReader) Close() {
	z.zr.Close()
}

// LZ4Writer compresses bytes written through it onto an underlying
// stream in the lz4 frame format.
type LZ4Writer struct {
	lw   *lz4.Writer
	sink *rebind
}

// NewLZ4Writer creates a compressing writer over w.
func NewLZ4Writer(w Writer) (*LZ4Writer, error) {
	if w == nil {
		return nil, ErrNilStream
	}
	sink := &rebind{ctx: context.Background(), w: w}
	return &LZ4Writer{lw: lz4.NewWriter(sink), sink: sink}, nil
}

// Write implements the Writer capability.
func (l *LZ4Writer) Write(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.sink.ctx = ctx
	return l.lw.Write(p)
}

// Close flushes the lz4 frame trailer through to the underlying stream,
// which itself is not closed.
func (l *LZ4Writer) Close(ctx context.Context) error {
	l.sink.ctx = ctx
	return l.lw.Close()
}

// LZ4Reader decompresses bytes read through it from an underlying
// stream carrying an lz4 frame.
type LZ4Reader struct {
	lr  *lz4.Reader
	src *rebind
}

// NewLZ4Reader creates a decompressing reader over r.
func NewLZ4Reader(r Reader) (*LZ4Reader, error) {
	if r == nil {
		return nil, ErrNilStream
	}
	src := &rebind{ctx: context.Background(), r: r}
	return &LZ4Reader{lr: lz4.NewReader(src), src: src}, nil
}

// Read implements the Reader capability.
func (l *LZ4Reader) Read(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	l.src.ctx = ctx
	return l.lr.Read(p)
}
