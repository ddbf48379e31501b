package wire

import (
	"context"

	"github.com/zeebo/blake3"
)

// Integrity-hashing stream wrappers. They fold every byte crossing the
// stream through BLAKE3 while forwarding unchanged, so a producer can
// append a digest trailer and a consumer can verify it against the
// bytes actually read. The core framing never depends on them.

// SumWriter forwards writes to an underlying stream while hashing the
// bytes it successfully queues.
type SumWriter struct {
	w Writer
	h *blake3.Hasher
}

// NewSumWriter creates a hashing writer over w.
func NewSumWriter(w Writer) *SumWriter {
	if w == nil {
		panic("wire: NewSumWriter called with a nil Writer")
	}
	return &SumWriter{w: w, h: blake3.New()}
}

// Write implements the Writer capability. Only the queued prefix is
// hashed, so the digest always matches what the stream carries.
func (s *SumWriter) Write(ctx context.Context, p []byte) (int, error) {
	n, err := s.w.Write(ctx, p)
	if n > 0 {
		s.h.Write(p[:n]) // never errors
	}
	return n, err
}

// Sum returns the BLAKE3 digest of all bytes queued so far.
func (s *SumWriter) Sum() []byte { return s.h.Sum(nil) }

// SumReader forwards reads from an underlying stream while hashing the
// bytes it delivers.
type SumReader struct {
	r Reader
	h *blake3.Hasher
}

// NewSumReader creates a hashing reader over r.
func NewSumReader(r Reader) *SumReader {
	if r == nil {
		panic("wire: NewSumReader called with a nil Reader")
	}
	return &SumReader{r: r, h: blake3.New()}
}

// Read implements the Reader capability.
func (s *SumReader) Read(ctx context.Context, p []byte) (int, error) {
	n, err := s.r.Read(ctx, p)
	if n > 0 {
		s.h.Write(p[:n])
	}
	return n, err
}

// Sum returns the BLAKE3 digest of all bytes delivered so far.
func (s *SumReader) Sum() []byte { return s.h.Sum(nil) }
