package trnnut

import (
	"testing"
	"time"
)

func BenchmarkDecode(b *testing.B) {
	raw, err := Encode(scenarioTwo(b))
	if err != nil {
		b.Fatalf("encode failed: %v", err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(raw); err != nil {
			b.Fatalf("decode failed: %v", err)
		}
	}
}

func BenchmarkEncode(b *testing.B) {
	tok := scenarioTwo(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(tok); err != nil {
			b.Fatalf("encode failed: %v", err)
		}
	}
}

func BenchmarkValidateRuntimeCall(b *testing.B) {
	tok := scenarioTwo(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := tok.ValidateRuntimeCall("test_module_check2", "test_method_check2"); err != nil {
			b.Fatalf("validate failed: %v", err)
		}
	}
}

func BenchmarkDigest(b *testing.B) {
	tok := scenarioTwo(b)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tok.Digest(); err != nil {
			b.Fatalf("digest failed: %v", err)
		}
	}
}

func BenchmarkMetricsInc(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Inc(MetricDecodeSuccess)
	}
}

func BenchmarkMetricsIncDisabled(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: false})
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		m.Inc(MetricDecodeSuccess)
	}
}

var mixedHotMetricIDs = [...]MetricID{
	MetricDecodeSuccess,
	MetricDecodeFailure,
	MetricEncodeSuccess,
	MetricCooldownAllowed,
	MetricCooldownRejected,
}

func BenchmarkMetricsIncMixedParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{Enabled: true})
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		idx := 0
		for pb.Next() {
			m.Inc(mixedHotMetricIDs[idx])
			idx++
			if idx == len(mixedHotMetricIDs) {
				idx = 0
			}
		}
	})
}

func BenchmarkMetricsObserveLatencyParallel(b *testing.B) {
	m := NewMetrics(MetricsConfig{
		Enabled:                 true,
		EnableLatencyHistograms: true,
	})
	d := 40 * time.Microsecond
	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			m.Observe(MetricDecodeLatency, d)
		}
	})
}
