package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReplyMetrics exposes counters/histograms for reply generation and the archive.
type ReplyMetrics struct {
	generationTotal   *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	archiveTotal      *prometheus.CounterVec
}

func NewReplyMetrics(reg prometheus.Registerer) *ReplyMetrics {
	m := &ReplyMetrics{
		generationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zreply",
			Subsystem: "generation",
			Name:      "requests_total",
			Help:      "Total reply generation requests",
		}, []string{"platform", "status"}),
		generationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zreply",
			Subsystem: "generation",
			Name:      "latency_seconds",
			Help:      "Latency of upstream completion calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"platform"}),
		archiveTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zreply",
			Subsystem: "archive",
			Name:      "operations_total",
			Help:      "Total saved reply archive operations",
		}, []string{"op", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.generationTotal, m.generationLatency, m.archiveTotal)
	return m
}

// ObserveGeneration records one generation outcome: ok, fallback, invalid or error.
func (m *ReplyMetrics) ObserveGeneration(platform, status string) {
	if m == nil {
		return
	}
	m.generationTotal.WithLabelValues(platform, status).Inc()
}

func (m *ReplyMetrics) ObserveGenerationLatency(platform string, seconds float64) {
	if m == nil {
		return
	}
	m.generationLatency.WithLabelValues(platform).Observe(seconds)
}

func (m *ReplyMetrics) ObserveArchive(op, status string) {
	if m == nil {
		return
	}
	m.archiveTotal.WithLabelValues(op, status).Inc()
}
