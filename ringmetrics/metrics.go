package ringmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
)

// label values for the rejection and truncation counters
const (
	reasonFull  = "full"
	reasonEmpty = "empty"
	opPush      = "push"
	opPop       = "pop"
)

type bufferMetrics struct {
	pushed      prometheus.Counter
	popped      prometheus.Counter
	rejected    *prometheus.CounterVec
	truncated   *prometheus.CounterVec
	occupancy   prometheus.Gauge
	capacity    prometheus.Gauge
	utilization prometheus.Gauge
}

func newBufferMetrics(namespace string, labels prometheus.Labels) *bufferMetrics {
	return &bufferMetrics{
		pushed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "pushed_elements_total",
			ConstLabels: labels,
			Help:        "Total number of elements stored in the buffer",
		}),
		popped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "popped_elements_total",
			ConstLabels: labels,
			Help:        "Total number of elements removed from the buffer",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "rejected_operations_total",
			ConstLabels: labels,
			Help:        "Total number of operations rejected because the buffer was full or empty",
		}, []string{"reason"}),
		truncated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "truncated_transfers_total",
			ConstLabels: labels,
			Help:        "Total number of bulk operations that moved fewer elements than requested",
		}, []string{"op"}),
		occupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "occupancy",
			ConstLabels: labels,
			Help:        "Current number of elements in the buffer",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "capacity",
			ConstLabels: labels,
			Help:        "Fixed capacity of the buffer",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "utilization",
			ConstLabels: labels,
			Help:        "Buffer occupancy as a fraction of capacity (0.0 to 1.0)",
		}),
	}
}

func (m *bufferMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.pushed,
		m.popped,
		m.rejected,
		m.truncated,
		m.occupancy,
		m.capacity,
		m.utilization,
	}
}

// register registers every collector with reg. On failure the collectors that did
// register are removed again and all registration errors are returned together.
func (m *bufferMetrics) register(reg prometheus.Registerer) error {
	var (
		errs       error
		registered []prometheus.Collector
	)
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		registered = append(registered, c)
	}
	if errs != nil {
		for _, c := range registered {
			reg.Unregister(c)
		}
	}
	return errs
}

func (m *bufferMetrics) unregister(reg prometheus.Registerer) {
	for _, c := range m.collectors() {
		reg.Unregister(c)
	}
}

func (m *bufferMetrics) updateSize(size, capacity int) {
	m.occupancy.Set(float64(size))
	if capacity == 0 {
		m.utilization.Set(0)
		return
	}
	m.utilization.Set(float64(size) / float64(capacity))
}
