package ringbuf

// DefaultCapacity is the capacity used by NewDefault.
const DefaultCapacity = 64

// RingBuffer is a fixed-capacity FIFO queue whose backing slice is allocated once, in New.
//
// Both cursors live in [0, capacity). Each carries a wrap flag that flips whenever the
// cursor passes the end of the slice, so coinciding cursors mean empty when the flags
// agree and full when they differ.
//
// A RingBuffer is not safe for concurrent use.
type RingBuffer[T any] struct {
	data         []T
	write        int
	read         int
	writeWrapped bool
	readWrapped  bool
}

// New creates a ring buffer that holds up to capacity elements.
// A negative capacity is treated as zero. A zero-capacity buffer rejects every push
// with ErrBufferFull and every pop with ErrBufferEmpty.
func New[T any](capacity int) *RingBuffer[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &RingBuffer[T]{
		data: make([]T, capacity),
	}
}

// NewDefault creates a ring buffer with DefaultCapacity.
func NewDefault[T any]() *RingBuffer[T] {
	return New[T](DefaultCapacity)
}

// Cap returns the fixed capacity.
func (r *RingBuffer[T]) Cap() int {
	return len(r.data)
}

// Len returns the number of buffered elements.
func (r *RingBuffer[T]) Len() int {
	if r.write == r.read {
		if r.writeWrapped != r.readWrapped {
			return len(r.data)
		}
		return 0
	}
	return (r.write - r.read + len(r.data)) % len(r.data)
}

// IsFull reports whether a push would be rejected.
func (r *RingBuffer[T]) IsFull() bool {
	return r.write == r.read && (r.writeWrapped != r.readWrapped || len(r.data) == 0)
}

// IsEmpty reports whether a pop would be rejected.
func (r *RingBuffer[T]) IsEmpty() bool {
	return r.write == r.read && r.writeWrapped == r.readWrapped
}

// ElementsAvailable reports whether at least one element can be popped.
func (r *RingBuffer[T]) ElementsAvailable() bool {
	return !r.IsEmpty()
}

// RemainingSpace returns how many elements can be pushed before the buffer is full.
func (r *RingBuffer[T]) RemainingSpace() int {
	return len(r.data) - r.Len()
}

// Push appends v. It returns ErrBufferFull, leaving the buffer untouched, when no slot is free.
func (r *RingBuffer[T]) Push(v T) error {
	if r.IsFull() {
		return ErrBufferFull
	}
	r.data[r.write] = v
	r.produce(1)
	return nil
}

// Pop removes and returns the oldest element.
// It returns the zero value and ErrBufferEmpty when nothing is buffered.
func (r *RingBuffer[T]) Pop() (T, error) {
	var zero T
	if r.IsEmpty() {
		return zero, ErrBufferEmpty
	}
	v := r.data[r.read]
	r.consume(1)
	return v, nil
}

// PushElements appends values in order until they are exhausted or the buffer fills,
// and returns how many were stored. A short count is not an error; callers compare it
// against len(values) to detect truncation.
//
// If the buffer is already full nothing is stored and PushElements returns 0 and
// ErrBufferFull. values is never modified.
func (r *RingBuffer[T]) PushElements(values []T) (int, error) {
	if r.IsFull() {
		return 0, ErrBufferFull
	}

	n := 0
	for n < len(values) {
		chunk := r.writable()
		if len(chunk) == 0 {
			break
		}
		c := copy(chunk, values[n:])
		r.produce(c)
		n += c
	}
	return n, nil
}

// PopElements moves up to len(dst) of the oldest elements into dst, oldest first, and
// returns how many were moved. A short count is not an error.
//
// If the buffer is empty dst is left untouched and PopElements returns 0 and ErrBufferEmpty.
func (r *RingBuffer[T]) PopElements(dst []T) (int, error) {
	if r.IsEmpty() {
		return 0, ErrBufferEmpty
	}

	n := 0
	for n < len(dst) {
		chunk := r.readable()
		if len(chunk) == 0 {
			break
		}
		c := copy(dst[n:], chunk)
		r.consume(c)
		n += c
	}
	return n, nil
}

// writable returns the free slots from the write cursor up to the end of the
// contiguous free region. The second half of a wrapped region is returned by the
// next call, once produce has moved the cursor.
func (r *RingBuffer[T]) writable() []T {
	if r.IsFull() {
		return nil
	}
	end := len(r.data)
	if r.read > r.write {
		end = r.read
	}
	return r.data[r.write:end]
}

// readable returns the buffered elements from the read cursor up to the end of the
// contiguous occupied region.
func (r *RingBuffer[T]) readable() []T {
	if r.IsEmpty() {
		return nil
	}
	end := len(r.data)
	if r.write > r.read {
		end = r.write
	}
	return r.data[r.read:end]
}

// produce commits n slots written at the write cursor.
func (r *RingBuffer[T]) produce(n int) {
	r.advance(&r.write, &r.writeWrapped, n)
}

// consume releases n slots at the read cursor. Vacated slots are zeroed so the
// buffer does not pin popped values.
func (r *RingBuffer[T]) consume(n int) {
	clear(r.data[r.read : r.read+n])
	r.advance(&r.read, &r.readWrapped, n)
}

// advance moves a cursor n slots forward and flips its wrap flag when it passes the
// end of the backing slice. n never exceeds the capacity, so a cursor wraps at most once.
func (r *RingBuffer[T]) advance(cursor *int, wrapped *bool, n int) {
	*cursor += n
	if *cursor >= len(r.data) {
		*cursor -= len(r.data)
		*wrapped = !*wrapped
	}
}
