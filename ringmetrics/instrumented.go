// Package ringmetrics records Prometheus metrics and debug logs for a ring buffer
// without adding anything to the buffer itself.
//
// An Instrumented buffer forwards every call to the wrapped buffer and then updates
// its counters and gauges. Like the buffer it wraps it is meant to be used from a
// single goroutine; the metric values themselves may be scraped concurrently.
package ringmetrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/jacoelho/ringbuf"
)

// Buffer is the subset of *ringbuf.RingBuffer that Instrumented wraps.
type Buffer[T any] interface {
	Push(v T) error
	Pop() (T, error)
	PushElements(values []T) (int, error)
	PopElements(dst []T) (int, error)
	Len() int
	Cap() int
	IsFull() bool
	ElementsAvailable() bool
	RemainingSpace() int
}

var _ Buffer[int] = (*ringbuf.RingBuffer[int])(nil)

// Instrumented wraps a Buffer and records its traffic.
type Instrumented[T any] struct {
	buf     Buffer[T]
	name    string
	logger  *zap.Logger
	metrics *bufferMetrics
}

var _ Buffer[int] = (*Instrumented[int])(nil)

// New wraps buf and registers its metrics with reg under the constant label
// buffer=name, which takes precedence over a "buffer" key passed to WithConstLabels.
// A nil reg skips registration; the metrics are still maintained.
func New[T any](buf Buffer[T], reg prometheus.Registerer, name string, opts ...Option) (*Instrumented[T], error) {
	o := applyOptions(opts...)

	labels := make(prometheus.Labels, len(o.constLabels)+1)
	for k, v := range o.constLabels {
		labels[k] = v
	}
	labels["buffer"] = name

	m := newBufferMetrics(o.namespace, labels)
	if reg != nil {
		if err := m.register(reg); err != nil {
			return nil, fmt.Errorf("registering metrics for buffer %q: %w", name, err)
		}
	}
	m.capacity.Set(float64(buf.Cap()))
	m.updateSize(buf.Len(), buf.Cap())

	return &Instrumented[T]{
		buf:     buf,
		name:    name,
		logger:  o.logger.With(zap.String("buffer", name)),
		metrics: m,
	}, nil
}

// Unregister removes the buffer's metrics from reg.
func (i *Instrumented[T]) Unregister(reg prometheus.Registerer) {
	i.metrics.unregister(reg)
}

// Unwrap returns the wrapped buffer.
func (i *Instrumented[T]) Unwrap() Buffer[T] {
	return i.buf
}

// Push forwards to the wrapped buffer and records the outcome.
func (i *Instrumented[T]) Push(v T) error {
	if err := i.buf.Push(v); err != nil {
		i.reject(opPush, 1, err)
		return err
	}
	i.metrics.pushed.Inc()
	i.sync()
	return nil
}

// Pop forwards to the wrapped buffer and records the outcome.
func (i *Instrumented[T]) Pop() (T, error) {
	v, err := i.buf.Pop()
	if err != nil {
		i.reject(opPop, 1, err)
		return v, err
	}
	i.metrics.popped.Inc()
	i.sync()
	return v, nil
}

// PushElements forwards to the wrapped buffer, counting the elements stored and
// recording a truncation when fewer than len(values) fit.
func (i *Instrumented[T]) PushElements(values []T) (int, error) {
	n, err := i.buf.PushElements(values)
	if err != nil {
		i.reject(opPush, len(values), err)
		return n, err
	}
	i.metrics.pushed.Add(float64(n))
	if n < len(values) {
		i.truncate(opPush, len(values), n)
	}
	i.sync()
	return n, nil
}

// PopElements forwards to the wrapped buffer, counting the elements removed and
// recording a truncation when fewer than len(dst) were available.
func (i *Instrumented[T]) PopElements(dst []T) (int, error) {
	n, err := i.buf.PopElements(dst)
	if err != nil {
		i.reject(opPop, len(dst), err)
		return n, err
	}
	i.metrics.popped.Add(float64(n))
	if n < len(dst) {
		i.truncate(opPop, len(dst), n)
	}
	i.sync()
	return n, nil
}

// Len returns the wrapped buffer's occupancy.
func (i *Instrumented[T]) Len() int { return i.buf.Len() }

// Cap returns the wrapped buffer's capacity.
func (i *Instrumented[T]) Cap() int { return i.buf.Cap() }

// IsFull reports whether the wrapped buffer rejects pushes.
func (i *Instrumented[T]) IsFull() bool { return i.buf.IsFull() }

// ElementsAvailable reports whether the wrapped buffer holds anything to pop.
func (i *Instrumented[T]) ElementsAvailable() bool { return i.buf.ElementsAvailable() }

// RemainingSpace returns how many more elements the wrapped buffer accepts.
func (i *Instrumented[T]) RemainingSpace() int { return i.buf.RemainingSpace() }

func (i *Instrumented[T]) sync() {
	i.metrics.updateSize(i.buf.Len(), i.buf.Cap())
}

func (i *Instrumented[T]) reject(op string, requested int, err error) {
	reason := reasonEmpty
	if op == opPush {
		reason = reasonFull
	}
	i.metrics.rejected.WithLabelValues(reason).Inc()
	i.logger.Debug("operation rejected",
		zap.String("op", op),
		zap.Int("requested", requested),
		zap.Error(err),
	)
}

func (i *Instrumented[T]) truncate(op string, requested, transferred int) {
	i.metrics.truncated.WithLabelValues(op).Inc()
	i.logger.Debug("bulk transfer truncated",
		zap.String("op", op),
		zap.Int("requested", requested),
		zap.Int("transferred", transferred),
	)
}
