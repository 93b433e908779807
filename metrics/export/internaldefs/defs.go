package internaldefs

import (
	"github.com/MrEthical07/trnnut"
)

// CounterDef names one trnnut counter.
type CounterDef struct {
	ID   trnnut.MetricID
	Name string
	Help string
}

// HistogramDef names one trnnut histogram.
type HistogramDef struct {
	ID   trnnut.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in output order.
var CounterDefs = []CounterDef{
	{ID: trnnut.MetricDecodeSuccess, Name: "trnnut_decode_success_total", Help: "Tokens decoded successfully."},
	{ID: trnnut.MetricDecodeFailure, Name: "trnnut_decode_failure_total", Help: "Inputs rejected by the decoder."},
	{ID: trnnut.MetricEncodeSuccess, Name: "trnnut_encode_success_total", Help: "Tokens encoded successfully."},
	{ID: trnnut.MetricEncodeFailure, Name: "trnnut_encode_failure_total", Help: "Encode attempts that failed."},
	{ID: trnnut.MetricCooldownAllowed, Name: "trnnut_cooldown_allowed_total", Help: "Uses admitted after a cooldown check."},
	{ID: trnnut.MetricCooldownRejected, Name: "trnnut_cooldown_rejected_total", Help: "Uses rejected inside a cooldown window."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: trnnut.MetricDecodeLatency, Name: "trnnut_decode_latency_seconds", Help: "Decode latency histogram."},
}

// HistogramBounds are the upper bounds of the decode latency buckets in seconds.
var HistogramBounds = []string{
	"0.000005",
	"0.00001",
	"0.000025",
	"0.00005",
	"0.0001",
	"0.00025",
	"0.0005",
	"+Inf",
}

// LatencyBoundsSeconds are the finite HistogramBounds as explicit OTel bucket
// boundaries. The +Inf bucket is implicit there.
var LatencyBoundsSeconds = []float64{0.000005, 0.00001, 0.000025, 0.00005, 0.0001, 0.00025, 0.0005}

// HistogramBoundSuffix renders HistogramBounds as instrument name suffixes.
var HistogramBoundSuffix = []string{
	"0_000005",
	"0_00001",
	"0_000025",
	"0_00005",
	"0_0001",
	"0_00025",
	"0_0005",
	"inf",
}

// NormalizeBuckets copies raw into a fixed eight-bucket array, zero filling.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets turns per-bucket counts into running totals.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
