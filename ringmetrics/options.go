package ringmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// DefaultNamespace prefixes every metric name unless WithNamespace overrides it.
const DefaultNamespace = "ringbuf"

// Option configures an Instrumented buffer.
type Option func(*options)

type options struct {
	logger      *zap.Logger
	namespace   string
	constLabels prometheus.Labels
}

// WithLogger sets the logger used for rejected and truncated transfers.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithNamespace sets the metric namespace. An empty namespace is ignored.
func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

// WithConstLabels adds constant labels to every metric, next to the buffer label.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(o *options) {
		for k, v := range labels {
			o.constLabels[k] = v
		}
	}
}

func applyOptions(opts ...Option) *options {
	o := &options{
		logger:      zap.NewNop(),
		namespace:   DefaultNamespace,
		constLabels: prometheus.Labels{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}
