// Package internaldefs holds the metric names, help strings and bucket bounds of the
// exporters. The Prometheus text and the OTel decode duration histogram bucket latency
// at the same bounds.
//
// # What this package must NOT do
//
//   - Import an exporter package.
//   - Perform I/O.
package internaldefs
