package wire

import (
	"context"
	"encoding/binary"
	"fmt"
)

// Decoder is the cursor driving one decode operation. Like Encoder it
// latches the first error and turns subsequent operations into no-ops,
// tracks the bytes consumed, and carries the operation context across
// suspension points.
//
// A stream that ends inside a value surfaces io.ErrUnexpectedEOF; a
// partial value is different from a clean end of stream.
type Decoder struct {
	ctx   context.Context
	r     Reader
	count int64 // total bytes consumed
	err   error // first error encountered
	order binary.ByteOrder
	opts  Options
}

// NewDecoder creates a decode cursor over r. A nil opts means defaults.
func NewDecoder(ctx context.Context, r Reader, opts *Options) (*Decoder, error) {
	if r == nil {
		return nil, ErrNilStream
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &Decoder{ctx: ctx, r: r, order: Order, opts: opts.norm()}, nil
}

// WithByteOrder sets a custom byte order and returns the configured
// cursor for chaining.
func (d *Decoder) WithByteOrder(order binary.ByteOrder) *Decoder {
	d.order = order
	return d
}

// Context returns the operation context the cursor was created with.
func (d *Decoder) Context() context.Context { return d.ctx }

func (d *Decoder) Count() int64 { return d.count }
func (d *Decoder) Err() error   { return d.err }

// MaxFrame returns the configured frame ceiling. Combinators consult it
// before allocating for decoded counts.
func (d *Decoder) MaxFrame() int { return d.opts.MaxFrameLength }

// Result returns the total bytes consumed and the final error state.
func (d *Decoder) Result() (int64, error) {
	return d.count, d.err
}

// setError records the first non-nil error.
func (d *Decoder) setError(err error) {
	if d.err == nil && err != nil {
		d.err = err
	}
}

// fail latches err and returns the cursor's (possibly earlier) error.
func (d *Decoder) fail(err error) error {
	d.setError(err)
	return d.err
}

// readFull fills p exactly, suspending at chunk boundaries. EOF inside
// the read is mapped to io.ErrUnexpectedEOF.
func (d *Decoder) readFull(p []byte) bool {
	if d.err != nil {
		return false
	}
	n, err := ReadFull(d.ctx, d.r, p)
	d.count += int64(n)
	if err != nil {
		d.setError(err)
		return false
	}
	return true
}

// ReadBytes reads n bytes into a new slice.
func (d *Decoder) ReadBytes(n int) []byte {
	if n <= 0 || d.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if !d.readFull(buf) {
		return nil
	}
	return buf
}

// ReadBytesTo fills dest exactly.
func (d *Decoder) ReadBytesTo(dest []byte) {
	if len(dest) == 0 {
		return
	}
	d.readFull(dest)
}

// ReadFrame reads a uvarint length prefix and then that many bytes. The
// declared length is checked against the ceiling before the buffer is
// allocated, so a crafted prefix from untrusted input cannot drive an
// unbounded allocation.
func (d *Decoder) ReadFrame() []byte {
	n := d.ReadUvarint()
	if d.err != nil {
		return nil
	}
	if n > uint64(d.opts.MaxFrameLength) {
		d.setError(fmt.Errorf("%w: declared %d, maximum %d", ErrFrameTooLarge, n, d.opts.MaxFrameLength))
		return nil
	}
	if n == 0 {
		return nil
	}
	return d.ReadBytes(int(n))
}

// ReadString reads a uvarint-framed byte sequence as a string.
func (d *Decoder) ReadString() string {
	return string(d.ReadFrame())
}

// ReadUvarint reads a base-128 continuation varint. Encodings longer
// than ten bytes or overflowing 64 bits are malformed.
func (d *Decoder) ReadUvarint() uint64 {
	if d.err != nil {
		return 0
	}
	var x uint64
	var s uint
	var buf [1]byte
	for i := 0; i < binary.MaxVarintLen64; i++ {
		if !d.readFull(buf[:]) {
			return 0
		}
		b := buf[0]
		if b < 0x80 {
			if i == binary.MaxVarintLen64-1 && b > 1 {
				d.setError(fmt.Errorf("%w: varint overflows 64 bits", ErrMalformed))
				return 0
			}
			return x | uint64(b)<<s
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	d.setError(fmt.Errorf("%w: varint exceeds %d bytes", ErrMalformed, binary.MaxVarintLen64))
	return 0
}

// --- Primitive Read Operations ---

// ReadBool reads one byte into dest; only 0 and 1 are valid.
func (d *Decoder) ReadBool(dest *bool) {
	var b uint8
	d.ReadUint8(&b)
	if d.err != nil {
		return
	}
	switch b {
	case 0:
		*dest = false
	case 1:
		*dest = true
	default:
		d.setError(fmt.Errorf("%w: boolean byte 0x%02x", ErrMalformed, b))
	}
}

func (d *Decoder) ReadUint8(dest *uint8) {
	var buf [1]byte
	if d.readFull(buf[:]) {
		*dest = buf[0]
	}
}

func (d *Decoder) ReadUint16(dest *uint16) {
	var buf [2]byte
	if d.readFull(buf[:]) {
		*dest = d.order.Uint16(buf[:])
	}
}

func (d *Decoder) ReadUint32(dest *uint32) {
	var buf [4]byte
	if d.readFull(buf[:]) {
		*dest = d.order.Uint32(buf[:])
	}
}

func (d *Decoder) ReadUint64(dest *uint64) {
	var buf [8]byte
	if d.readFull(buf[:]) {
		*dest = d.order.Uint64(buf[:])
	}
}

func (d *Decoder) ReadInt8(dest *int8) {
	var v uint8
	d.ReadUint8(&v)
	if d.err == nil {
		*dest = int8(v)
	}
}

func (d *Decoder) ReadInt16(dest *int16) {
	var v uint16
	d.ReadUint16(&v)
	if d.err == nil {
		*dest = int16(v)
	}
}

func (d *Decoder) ReadInt32(dest *int32) {
	var v uint32
	d.ReadUint32(&v)
	if d.err == nil {
		*dest = int32(v)
	}
}

func (d *Decoder) ReadInt64(dest *int64) {
	var v uint64
	d.ReadUint64(&v)
	if d.err == nil {
		*dest = int64(v)
	}
}
