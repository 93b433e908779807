package trnnut

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Digest returns the Keccak-256 hash of the encoded token. Equal tokens have equal
// digests, which makes the digest a stable identity for cooldown ledgers and stores.
func (t *TRNNut) Digest() (common.Hash, error) {
	encoded, err := encode(t)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(encoded), nil
}
