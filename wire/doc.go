// Package wire provides the fixed-width field codec used by the TRNNut binary format.
//
// # Fields
//
// Identifiers occupy a fixed 32-byte slot holding UTF-8 text right-padded with zero
// bytes. Unsigned integers are packed little endian into a caller-chosen width of one
// to eight bytes. Widths for cooldowns, counts and constraint lengths are grouped in a
// [Layout], which the token format pins per version.
//
// # Errors
//
// Every failure is a [*Error] carrying a [Kind], the field path and, for decode
// failures, the byte offset. Sentinels such as [ErrTruncatedBuffer] match any error of
// the same kind through errors.Is.
//
// # Architecture boundaries
//
// This package is a pure byte-level codec with no I/O. It knows nothing about modules,
// methods or contracts; those live in the permission package.
//
// # What this package must NOT do
//
//   - Import permission or trnnut (no upward imports).
//   - Read past the end of a buffer or allocate based on untrusted lengths.
//   - Silently truncate values that do not fit their slot.
package wire
