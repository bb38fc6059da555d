// Package ringbuf provides a fixed-capacity ring buffer that allocates its storage once,
// at construction, and never grows. Pushes into a full buffer and pops from an empty one
// are rejected with ErrBufferFull and ErrBufferEmpty instead of blocking, and the bulk
// operations move as many elements as fit. ByteBuffer adapts a byte ring to the io
// interfaces with the same non-blocking behaviour.
package ringbuf
