package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestReplyMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewReplyMetrics(reg)

	m.ObserveGeneration("whatsapp", "ok")
	m.ObserveGeneration("whatsapp", "ok")
	m.ObserveGeneration("instagram", "fallback")
	m.ObserveGenerationLatency("whatsapp", 0.42)
	m.ObserveArchive("create", "ok")

	if got := testutil.ToFloat64(m.generationTotal.WithLabelValues("whatsapp", "ok")); got != 2 {
		t.Fatalf("expected 2 ok generations, got %v", got)
	}
	if got := testutil.ToFloat64(m.archiveTotal.WithLabelValues("create", "ok")); got != 1 {
		t.Fatalf("expected 1 archive create, got %v", got)
	}
	if count := testutil.CollectAndCount(m.generationLatency); count != 1 {
		t.Fatalf("expected 1 latency series, got %d", count)
	}
}

func TestReplyMetricsNilSafe(t *testing.T) {
	var m *ReplyMetrics
	m.ObserveGeneration("whatsapp", "ok")
	m.ObserveGenerationLatency("whatsapp", 0.1)
	m.ObserveArchive("list", "error")
}
