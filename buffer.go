package wire

import (
	"context"
	"io"
)

// Buffer is an in-memory stream implementing both capabilities: writes
// append, reads consume in FIFO order. The zero value is ready to use.
// A Buffer is a single stream handle and is not safe for concurrent
// operations; exclusive ownership per in-flight operation is the
// caller's contract.
type Buffer struct {
	b   []byte
	off int
}

// NewBuffer creates a Buffer whose initial unread content is b. The
// slice is owned by the Buffer afterwards.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Read implements the Reader capability. It returns io.EOF once all
// written bytes have been consumed.
func (b *Buffer) Read(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if b.off >= len(b.b) {
		return 0, io.EOF
	}
	n := copy(p, b.b[b.off:])
	b.off += n
	return n, nil
}

// Write implements the Writer capability.
func (b *Buffer) Write(ctx context.Context, p []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	b.b = append(b.b, p...)
	return len(p), nil
}

// Bytes returns the unread portion of the buffer, valid until the next
// write or reset.
func (b *Buffer) Bytes() []byte { return b.b[b.off:] }

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return len(b.b) - b.off }

// Reset discards all content, keeping the underlying storage for reuse.
func (b *Buffer) Reset() {
	b.b = b.b[:0]
	b.off = 0
}
