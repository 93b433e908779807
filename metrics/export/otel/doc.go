// Package otel records trnnut codec and cooldown events on OpenTelemetry instruments.
//
// [Recorder] implements trnnut.Observer. Decode and encode counts carry an "outcome"
// attribute, "ok" or the codec error kind, and successful ones the token "version".
// Cooldown decisions carry the "domain" of the charged entry and an "outcome" of
// "allowed" or "rejected".
//
// # What this package must NOT do
//
//   - Own the MeterProvider. Callers supply the Meter.
//   - Block the caller. Instruments are recorded synchronously and in memory.
package otel
