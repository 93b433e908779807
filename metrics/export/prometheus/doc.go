// Package prometheus renders trnnut codec and cooldown metrics in the Prometheus text
// exposition format.
//
// Counters are named trnnut_*_total; the single histogram is
// trnnut_decode_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry. Callers mount the Handler.
//   - Mutate the metrics it reads.
package prometheus
