package wire

import (
	"context"
	"io"
	"sync"
)

// Pipe creates a connected in-process stream pair: writes to the
// PipeWriter suspend until a read on the PipeReader consumes them, with
// no internal buffering. Both ends honour context cancellation while
// suspended, which makes the pair the reference transport for exercising
// cooperative suspension in tests.
//
// Each end is exclusively owned by one in-flight operation at a time,
// per the stream handle contract; the pipe itself only synchronizes the
// handoff between the two ends.
func Pipe() (*PipeReader, *PipeWriter) {
	p := &pipe{
		wrCh: make(chan []byte),
		rdCh: make(chan int),
		done: make(chan struct{}),
	}
	return &PipeReader{p}, &PipeWriter{p}
}

type pipe struct {
	wrCh chan []byte
	rdCh chan int

	once sync.Once
	done chan struct{}

	mu   sync.Mutex
	rerr error // set when the read side closes
	werr error // set when the write side closes
}

func (p *pipe) close(readSide bool, err error) {
	p.mu.Lock()
	if readSide && p.rerr == nil {
		p.rerr = err
	}
	if !readSide && p.werr == nil {
		p.werr = err
	}
	p.mu.Unlock()
	p.once.Do(func() { close(p.done) })
}

// readCloseError reports why reads can no longer proceed.
func (p *pipe) readCloseError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.rerr != nil {
		return io.ErrClosedPipe
	}
	if p.werr != nil && p.werr != io.EOF {
		return p.werr
	}
	return io.EOF
}

// writeCloseError reports why writes can no longer proceed.
func (p *pipe) writeCloseError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.werr != nil {
		return io.ErrClosedPipe
	}
	if p.rerr != nil && p.rerr != io.ErrClosedPipe {
		return p.rerr
	}
	return io.ErrClosedPipe
}

func (p *pipe) read(ctx context.Context, b []byte) (int, error) {
	select {
	case <-p.done:
		return 0, p.readCloseError()
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	select {
	case bw := <-p.wrCh:
		n := copy(b, bw)
		// The writer is parked on rdCh between the handoff above and
		// this send, so the send cannot block.
		p.rdCh <- n
		return n, nil
	case <-p.done:
		return 0, p.readCloseError()
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (p *pipe) write(ctx context.Context, b []byte) (int, error) {
	select {
	case <-p.done:
		return 0, p.writeCloseError()
	case <-ctx.Done():
		return 0, ctx.Err()
	default:
	}

	var n int
	for once := true; once || len(b) > 0; once = false {
		select {
		case p.wrCh <- b:
			nw := <-p.rdCh
			b = b[nw:]
			n += nw
		case <-p.done:
			return n, p.writeCloseError()
		case <-ctx.Done():
			return n, ctx.Err()
		}
	}
	return n, nil
}

// PipeReader is the read end of a Pipe.
type PipeReader struct{ p *pipe }

// Read implements the Reader capability.
func (r *PipeReader) Read(ctx context.Context, p []byte) (int, error) {
	return r.p.read(ctx, p)
}

// Close closes the read end; subsequent writes to the write end fail
// with io.ErrClosedPipe.
func (r *PipeReader) Close() error {
	return r.CloseWithError(nil)
}

// CloseWithError closes the read end; subsequent writes fail with err,
// or io.ErrClosedPipe if err is nil.
func (r *PipeReader) CloseWithError(err error) error {
	if err == nil {
		err = io.ErrClosedPipe
	}
	r.p.close(true, err)
	return nil
}

// PipeWriter is the write end of a Pipe.
type PipeWriter struct{ p *pipe }

// Write implements the Writer capability.
func (w *PipeWriter) Write(ctx context.Context, p []byte) (int, error) {
	return w.p.write(ctx, p)
}

// Close closes the write end; subsequent reads from the read end return
// io.EOF once the handed-over bytes are drained.
func (w *PipeWriter) Close() error {
	return w.CloseWithError(nil)
}

// CloseWithError closes the write end; subsequent reads fail with err,
// or return io.EOF if err is nil.
func (w *PipeWriter) CloseWithError(err error) error {
	if err == nil {
		err = io.EOF
	}
	w.p.close(false, err)
	return nil
}
