// Package trnnut implements TRNNut, a compact binary permission token granting a bearer
// time-gated authority over runtime modules, their methods and contract addresses.
//
// A token is built with [FromSections] or decoded with [Decode], and is immutable from
// then on: every accessor returns copies and tokens may be shared between goroutines
// without synchronization. Queries ([TRNNut.GetModule], [TRNNut.GetContract],
// [TRNNut.VerifyContract]) are pure lookups over the decoded structure.
//
// # Wire format
//
// The layout is [version u32][module_count][modules][contract_count][contracts], with
// 32-byte zero-padded identifiers and little endian integers whose widths are pinned
// by the version (see [Format]). Decoding is strict and bounded by [Config] limits; a
// failed decode never yields a partial token.
//
// # Cooldowns
//
// [TRNNut.VerifyContract] is a presence check. The block-height aware variant lives on
// [CooldownVerifier], which consumes a [BlockHeightProvider] and a [UseTracker]
// supplied by the host (see the ledger package for memory and Redis trackers).
//
// # Architecture boundaries
//
// trnnut is the public surface: token model, codec, queries and cooldown checks. Field
// packing lives in wire and entity sections in permission.
//
// # What this package must NOT do
//
//   - Sign or verify signatures over tokens.
//   - Mutate a token after construction or decode.
//   - Import ledger, store or document (no import cycles).
package trnnut
