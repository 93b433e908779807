// Package permission provides the module, method and contract permission entities of
// a TRNNut token together with their binary section codecs.
//
// # Entities
//
// A [Module] groups [Method] permissions under method keys kept in insertion order.
// The method key is the lookup handle; [Method.Name] is payload and may differ from
// it. A [Contract] grants access to a 32-byte [ContractAddress]. Every entity carries a
// block cooldown, and methods may carry an opaque [Constraints] payload.
//
// # Wildcards
//
// The key [Wildcard] matches any module or method name, and [ContractWildcard] matches
// any contract address. Exact keys always take priority over wildcards.
//
// # Architecture boundaries
//
// This package owns entity encode/decode on top of the wire field codec. It does NOT
// know about the token header, format versions or cooldown ledgers; the token codec
// in the root package composes these sections.
//
// # What this package must NOT do
//
//   - Import trnnut, ledger or store (no upward imports).
//   - Perform I/O.
//   - Expose mutators on constructed entities.
package permission
