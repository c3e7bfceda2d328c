package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "peoplefinder"

// Metrics holds the Prometheus collectors of the people finder.
type Metrics struct {
	searches         *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	results          prometheus.Histogram
}

// New creates the collectors and registers them with reg.
//
// Metrics registered:
//   - peoplefinder_searches_total{type, outcome}
//   - peoplefinder_upstream_duration_seconds{status}
//   - peoplefinder_search_results
func New(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		return nil, errors.New("prometheus registerer is nil")
	}

	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "People searches handled, by search type and outcome",
		}, []string{"type", "outcome"}),

		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Latency of people data API calls by response status",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20},
		}, []string{"status"}),

		results: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of records returned per successful search",
			Buckets:   []float64{0, 1, 2, 5, 10},
		}),
	}

	for _, c := range []prometheus.Collector{m.searches, m.upstreamDuration, m.results} {
		if err := register(reg, c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func register(reg prometheus.Registerer, c prometheus.Collector) error {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			return nil
		}
		return fmt.Errorf("register collector: %w", err)
	}
	return nil
}

// ObserveSearch counts one finished search. Safe on a nil receiver.
func (m *Metrics) ObserveSearch(searchType, outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(searchType, outcome).Inc()
}

// ObserveUpstream records the latency of one upstream call.
func (m *Metrics) ObserveUpstream(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.WithLabelValues(status).Observe(d.Seconds())
}

// ObserveResults records the size of a successful result set.
func (m *Metrics) ObserveResults(n int) {
	if m == nil {
		return
	}
	m.results.Observe(float64(n))
}
