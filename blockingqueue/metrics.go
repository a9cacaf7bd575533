package blockingqueue

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds per-queue collectors. A nil *metrics records nothing.
type metrics struct {
	added      prometheus.Counter
	duplicates prometheus.Counter
	taken      prometheus.Counter
	length     prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer, name string) (*metrics, error) {
	labels := prometheus.Labels{"queue": name}
	m := &metrics{
		added: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "uniqueq_added_total",
			Help:        "Total number of values added to the queue",
			ConstLabels: labels,
		}),
		duplicates: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "uniqueq_duplicates_total",
			Help:        "Total number of puts ignored because the value was already queued",
			ConstLabels: labels,
		}),
		taken: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "uniqueq_taken_total",
			Help:        "Total number of values taken from the queue",
			ConstLabels: labels,
		}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "uniqueq_length",
			Help:        "Number of values currently queued",
			ConstLabels: labels,
		}),
	}
	var done []prometheus.Collector
	for _, c := range []prometheus.Collector{m.added, m.duplicates, m.taken, m.length} {
		if err := reg.Register(c); err != nil {
			for _, r := range done {
				reg.Unregister(r)
			}
			return nil, errors.Wrapf(err, "register metrics for queue %q", name)
		}
		done = append(done, c)
	}
	return m, nil
}

func (m *metrics) put(added, ignored, length int) {
	if m == nil {
		return
	}
	m.added.Add(float64(added))
	m.duplicates.Add(float64(ignored))
	m.length.Set(float64(length))
}

func (m *metrics) take(length int) {
	if m == nil {
		return
	}
	m.taken.Inc()
	m.length.Set(float64(length))
}

func (m *metrics) resize(length int) {
	if m == nil {
		return
	}
	m.length.Set(float64(length))
}
