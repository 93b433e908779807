// Package store persists encoded tokens in Redis under random UUIDs.
//
// Tokens are stored in their wire form, so whatever Load returns passed the same
// strict decoder as any other input. A digest index maps the Keccak-256 digest of a
// token to the ID it was most recently saved under.
//
// # Architecture boundaries
//
// store only moves bytes; it never changes a token. Decode limits come from the
// trnnut.Codec handed to it.
package store
