package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MrEthical07/trnnut"
)

type fakeSource struct {
	snapshot trnnut.MetricsSnapshot
}

func (f fakeSource) Snapshot() trnnut.MetricsSnapshot { return f.snapshot }

func TestRenderEmptyWhenMetricsDisabled(t *testing.T) {
	exp := NewPrometheusExporter(trnnut.NewMetrics(trnnut.MetricsConfig{Enabled: false}))

	if got := exp.Render(); got != "" {
		t.Fatalf("expected empty output for disabled metrics, got:\n%s", got)
	}
}

func TestRenderDeterministicIncludesCounterAndHistogram(t *testing.T) {
	exp := NewPrometheusExporter(fakeSource{
		snapshot: trnnut.MetricsSnapshot{
			Counters: map[trnnut.MetricID]uint64{
				trnnut.MetricDecodeSuccess:    7,
				trnnut.MetricCooldownRejected: 2,
			},
			Histograms: map[trnnut.MetricID][]uint64{
				trnnut.MetricDecodeLatency: {1, 2, 3, 4, 5, 6, 7, 8},
			},
		},
	})

	out := exp.Render()
	for _, want := range []string{
		"trnnut_decode_success_total 7",
		"trnnut_cooldown_rejected_total 2",
		"trnnut_encode_failure_total 0",
		"trnnut_decode_latency_seconds_bucket{le=\"0.000005\"} 1",
		"trnnut_decode_latency_seconds_bucket{le=\"+Inf\"} 36",
		"trnnut_decode_latency_seconds_count 36",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got:\n%s", want, out)
		}
	}
}

func TestRenderFromLiveMetrics(t *testing.T) {
	codec, err := trnnut.NewCodec(trnnut.DefaultConfig())
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	_, _ = codec.Decode([]byte{0xff})

	out := NewPrometheusExporter(codec.Metrics()).Render()
	if !strings.Contains(out, "trnnut_decode_failure_total 1") {
		t.Fatalf("expected decode failure in output, got:\n%s", out)
	}
	if strings.Contains(out, "trnnut_decode_latency_seconds") {
		t.Fatalf("histogram must be omitted when latency is disabled, got:\n%s", out)
	}
}

func TestHandlerWritesPrometheusContentType(t *testing.T) {
	exp := NewPrometheusExporter(fakeSource{
		snapshot: trnnut.MetricsSnapshot{
			Counters:   map[trnnut.MetricID]uint64{trnnut.MetricDecodeSuccess: 1},
			Histograms: map[trnnut.MetricID][]uint64{},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	exp.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/plain") {
		t.Fatalf("expected prometheus content type, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func BenchmarkRender(b *testing.B) {
	exp := NewPrometheusExporter(fakeSource{
		snapshot: trnnut.MetricsSnapshot{
			Counters: map[trnnut.MetricID]uint64{
				trnnut.MetricDecodeSuccess:   1000,
				trnnut.MetricDecodeFailure:   40,
				trnnut.MetricEncodeSuccess:   800,
				trnnut.MetricCooldownAllowed: 20,
			},
			Histograms: map[trnnut.MetricID][]uint64{
				trnnut.MetricDecodeLatency: {10, 20, 30, 40, 50, 60, 70, 80},
			},
		},
	})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = exp.Render()
	}
}
