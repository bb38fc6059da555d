package ringbuf

import (
	"errors"
	"io"
)

var (
	_ io.Reader     = (*ByteBuffer)(nil)
	_ io.WriterTo   = (*ByteBuffer)(nil)
	_ io.Writer     = (*ByteBuffer)(nil)
	_ io.ReaderFrom = (*ByteBuffer)(nil)
)

// maxEmptyReads bounds how many consecutive (0, nil) reads ReadFrom tolerates.
const maxEmptyReads = 100

var errInvalidRead = errors.New("ringbuf: reader returned invalid count")

// ByteBuffer exposes a byte ring through the io interfaces. Nothing blocks: reads drain
// what is buffered and report io.EOF once it is empty, writes keep what fits and report
// ErrBufferFull for the rest.
type ByteBuffer struct {
	*RingBuffer[byte]
}

// NewBytes creates a ByteBuffer holding up to capacity bytes.
func NewBytes(capacity int) *ByteBuffer {
	return &ByteBuffer{RingBuffer: New[byte](capacity)}
}

// Read implements io.Reader.
func (b *ByteBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := b.PopElements(p)
	if err != nil {
		return 0, io.EOF
	}
	return n, nil
}

// Write implements io.Writer. When p does not fit entirely the leading bytes that do
// fit are stored and ErrBufferFull is returned with the short count.
func (b *ByteBuffer) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := b.PushElements(p)
	if err != nil {
		return 0, err
	}
	if n < len(p) {
		return n, ErrBufferFull
	}
	return n, nil
}

// WriteTo implements io.WriterTo by draining the buffer into w. Only the bytes w
// accepts are removed from the buffer.
func (b *ByteBuffer) WriteTo(w io.Writer) (n int64, err error) {
	for {
		chunk := b.readable()
		if len(chunk) == 0 {
			return n, nil
		}
		wn, wErr := w.Write(chunk)
		if wn < 0 || wn > len(chunk) {
			wn = 0
			if wErr == nil {
				wErr = io.ErrShortWrite
			}
		}
		b.consume(wn)
		n += int64(wn)
		if wErr != nil {
			return n, wErr
		}
		if wn != len(chunk) {
			return n, io.ErrShortWrite
		}
	}
}

// ReadFrom implements io.ReaderFrom by reading from r straight into the free space
// until r reports io.EOF, which is returned as a nil error. Once the buffer is full, r
// is asked for a zero-length read: io.EOF there still counts as success, anything else
// returns ErrBufferFull without taking a byte from r that could not be stored.
func (b *ByteBuffer) ReadFrom(r io.Reader) (n int64, err error) {
	empty := 0
	for {
		chunk := b.writable()
		if len(chunk) == 0 {
			return n, drained(r)
		}
		rn, rErr := r.Read(chunk)
		if rn < 0 || rn > len(chunk) {
			return n, errInvalidRead
		}
		b.produce(rn)
		n += int64(rn)
		if rErr == io.EOF {
			return n, nil
		}
		if rErr != nil {
			return n, rErr
		}
		if rn > 0 {
			empty = 0
			continue
		}
		empty++
		if empty >= maxEmptyReads {
			return n, io.ErrNoProgress
		}
	}
}

// drained reports whether r is exhausted once no space is left.
func drained(r io.Reader) error {
	var scratch [0]byte
	_, err := r.Read(scratch[:])
	switch {
	case err == io.EOF:
		return nil
	case err != nil:
		return err
	default:
		return ErrBufferFull
	}
}
