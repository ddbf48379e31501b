package wire

import (
	"context"
	"encoding/binary"
	"fmt"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the default byte order for fixed-width encodings.
	Order = LE
)

// Encoder is the cursor driving one encode operation. It wraps a Writer
// capability together with the operation context and tracks the total
// bytes queued plus the first error; after an error every subsequent
// operation becomes a no-op, so codecs can chain writes and check once.
//
// An Encoder lives for exactly one logical encode call and is discarded
// when the call returns.
type Encoder struct {
	ctx   context.Context
	w     Writer
	count int64 // total bytes queued
	err   error // first error encountered
	order binary.ByteOrder
	opts  Options
}

// NewEncoder creates an encode cursor over w. A nil opts means defaults.
func NewEncoder(ctx context.Context, w Writer, opts *Options) (*Encoder, error) {
	if w == nil {
		return nil, ErrNilStream
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Encoder{ctx: ctx, w: w, order: Order, opts: opts.norm()}, nil
}

// WithByteOrder sets a custom byte order and returns the configured
// cursor for chaining.
func (e *Encoder) WithByteOrder(order binary.ByteOrder) *Encoder {
	e.order = order
	return e
}

// Context returns the operation context the cursor was created with.
func (e *Encoder) Context() context.Context { return e.ctx }

func (e *Encoder) Count() int64 { return e.count }
func (e *Encoder) Err() error   { return e.err }

// MaxFrame returns the configured frame ceiling.
func (e *Encoder) MaxFrame() int { return e.opts.MaxFrameLength }

// Result returns the total bytes queued and the final error state.
func (e *Encoder) Result() (int64, error) {
	return e.count, e.err
}

// setError records the first non-nil error. This preserves the root
// cause of a failure chain instead of a later, less relevant error.
func (e *Encoder) setError(err error) {
	if e.err == nil && err != nil {
		e.err = err
	}
}

// fail latches err and returns the cursor's (possibly earlier) error.
func (e *Encoder) fail(err error) error {
	e.setError(err)
	return e.err
}

// write queues all of p, suspending at each chunk boundary. The context
// is checked before every write so a cancelled operation stops at the
// next boundary without touching the transport again.
func (e *Encoder) write(p []byte) {
	if e.err != nil || len(p) == 0 {
		return
	}
	n, err := WriteFull(e.ctx, e.w, p)
	e.count += int64(n)
	e.setError(err)
}

// WriteBytes writes a raw byte slice with no framing.
func (e *Encoder) WriteBytes(p []byte) {
	e.write(p)
}

// WriteFrame writes a uvarint length prefix followed by p. Frames past
// the configured ceiling are rejected on encode too, keeping the encoded
// stream decodable under the same Options.
func (e *Encoder) WriteFrame(p []byte) {
	if e.err != nil {
		return
	}
	if len(p) > e.opts.MaxFrameLength {
		e.setError(fmt.Errorf("%w: %d bytes, maximum %d", ErrFrameTooLarge, len(p), e.opts.MaxFrameLength))
		return
	}
	e.WriteUvarint(uint64(len(p)))
	e.write(p)
}

// WriteString writes s as a uvarint-framed byte sequence.
func (e *Encoder) WriteString(s string) {
	if e.err != nil {
		return
	}
	if len(s) > e.opts.MaxFrameLength {
		e.setError(fmt.Errorf("%w: %d bytes, maximum %d", ErrFrameTooLarge, len(s), e.opts.MaxFrameLength))
		return
	}
	e.WriteUvarint(uint64(len(s)))
	e.write([]byte(s))
}

// WriteUvarint writes v in base-128 continuation encoding, one to ten
// bytes.
func (e *Encoder) WriteUvarint(v uint64) {
	if e.err != nil {
		return
	}
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	e.write(buf[:n])
}

// --- Primitive Write Operations ---

func (e *Encoder) WriteBool(v bool) {
	if v {
		e.WriteUint8(1)
	} else {
		e.WriteUint8(0)
	}
}

func (e *Encoder) WriteUint8(v uint8) {
	var buf = [1]byte{v}
	e.write(buf[:])
}

func (e *Encoder) WriteUint16(v uint16) {
	if e.err != nil {
		return
	}
	var buf [2]byte
	e.order.PutUint16(buf[:], v)
	e.write(buf[:])
}

func (e *Encoder) WriteUint32(v uint32) {
	if e.err != nil {
		return
	}
	var buf [4]byte
	e.order.PutUint32(buf[:], v)
	e.write(buf[:])
}

func (e *Encoder) WriteUint64(v uint64) {
	if e.err != nil {
		return
	}
	var buf [8]byte
	e.order.PutUint64(buf[:], v)
	e.write(buf[:])
}

func (e *Encoder) WriteInt8(v int8)   { e.WriteUint8(uint8(v)) }
func (e *Encoder) WriteInt16(v int16) { e.WriteUint16(uint16(v)) }
func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }
func (e *Encoder) WriteInt64(v int64) { e.WriteUint64(uint64(v)) }
