package ringbuf

import "errors"

var (
	// ErrBufferFull is returned when a push finds no free slot.
	ErrBufferFull = errors.New("ringbuf: buffer full")

	// ErrBufferEmpty is returned when a pop finds nothing buffered.
	ErrBufferEmpty = errors.New("ringbuf: buffer empty")
)
