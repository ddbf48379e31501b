package wire

import (
	"context"
	"io"
)

// Reader is the read half of the stream capability the codecs run on.
//
// Read fills p with at most len(p) bytes and returns the number obtained,
// with 0 and io.EOF at end of stream. It suspends the calling goroutine,
// not a thread, until at least one byte is available, the stream ends, or
// ctx is cancelled. On cancellation the stream stays safe to close.
type Reader interface {
	Read(ctx context.Context, p []byte) (int, error)
}

// Writer is the write half of the stream capability.
//
// Write queues a bounded buffer for transmission and returns once the
// reported prefix is durably queued, suspending the caller while the
// transport is not ready. Nothing beyond the returned count is queued,
// including on cancellation.
type Writer interface {
	Write(ctx context.Context, p []byte) (int, error)
}

// Stream combines both capabilities, as implemented by Buffer.
type Stream interface {
	Reader
	Writer
}

// WriteFull writes all of p to w, retrying short writes. It reports the
// bytes queued before any failure.
func WriteFull(ctx context.Context, w Writer, p []byte) (int, error) {
	var total int
	for len(p) > 0 {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := w.Write(ctx, p)
		if n < 0 || n > len(p) {
			return total, ErrInvalidWrite
		}
		total += n
		p = p[n:]
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// ReadFull reads exactly len(p) bytes from r. A stream that ends short of
// len(p) fails with io.ErrUnexpectedEOF; a partial value is different
// from a clean end of stream.
func ReadFull(ctx context.Context, r Reader, p []byte) (int, error) {
	var total int
	for total < len(p) {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := r.Read(ctx, p[total:])
		if n < 0 || n > len(p)-total {
			return total, ErrInvalidRead
		}
		total += n
		if err != nil {
			if err == io.EOF {
				if total == len(p) {
					return total, nil
				}
				return total, io.ErrUnexpectedEOF
			}
			return total, err
		}
		if n == 0 {
			return total, io.ErrNoProgress
		}
	}
	return total, nil
}

// --- Bridges to and from the io world ---

// FromReader adapts a blocking io.Reader to the Reader capability. The
// context is checked before each read; a read already in flight on the
// underlying transport is interrupted only as well as that transport
// allows (net.Conn deadlines, file closure). Pipe provides a fully
// cancellable in-process transport.
func FromReader(r io.Reader) Reader {
	if r == nil {
		panic("wire: FromReader called with a nil io.Reader")
	}
	return ioReader{r}
}

// FromWriter adapts a blocking io.Writer to the Writer capability.
// Cancellation responsiveness follows the underlying transport, as with
// FromReader.
func FromWriter(w io.Writer) Writer {
	if w == nil {
		panic("wire: FromWriter called with a nil io.Writer")
	}
	return ioWriter{w}
}

type ioReader struct{ r io.Reader }

func (a ioReader) Read(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return a.r.Read(p)
}

type ioWriter struct{ w io.Writer }

func (a ioWriter) Write(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return a.w.Write(p)
}

// ToReader binds ctx to r, recovering a plain io.Reader for libraries
// that speak io. The binding is valid for the lifetime of ctx only.
func ToReader(ctx context.Context, r Reader) io.Reader {
	return boundReader{ctx, r}
}

// ToWriter binds ctx to w, recovering a plain io.Writer. Writes through
// the binding are full writes.
func ToWriter(ctx context.Context, w Writer) io.Writer {
	return boundWriter{ctx, w}
}

type boundReader struct {
	ctx context.Context
	r   Reader
}

func (b boundReader) Read(p []byte) (int, error) { return b.r.Read(b.ctx, p) }

type boundWriter struct {
	ctx context.Context
	w   Writer
}

func (b boundWriter) Write(p []byte) (int, error) { return WriteFull(b.ctx, b.w, p) }
