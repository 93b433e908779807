package permission

import (
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/MrEthical07/trnnut/wire"
)

// ContractAddress is a 32-byte contract address.
type ContractAddress [wire.AddressLength]byte

// ContractWildcard is the all-zero address, granting access to any contract.
var ContractWildcard ContractAddress

// ParseContractAddress decodes a 0x-prefixed hex address of exactly 32 bytes.
func ParseContractAddress(s string) (ContractAddress, error) {
	var a ContractAddress
	if err := a.UnmarshalText([]byte(s)); err != nil {
		return ContractAddress{}, err
	}
	return a, nil
}

// ContractAddressFromBytes copies b into an address. b must be 32 bytes long.
func ContractAddressFromBytes(b []byte) (ContractAddress, error) {
	var a ContractAddress
	if len(b) != wire.AddressLength {
		return a, wire.Errorf(wire.KindInvalidEncoding, "contract address is %d bytes, want %d", len(b), wire.AddressLength)
	}
	copy(a[:], b)
	return a, nil
}

// IsWildcard reports whether a is the contract wildcard.
func (a ContractAddress) IsWildcard() bool {
	return a == ContractWildcard
}

func (a ContractAddress) Bytes() []byte {
	out := make([]byte, len(a))
	copy(out, a[:])
	return out
}

// String returns the 0x-prefixed hex form.
func (a ContractAddress) String() string {
	return hexutil.Encode(a[:])
}

// MarshalText implements encoding.TextMarshaler.
func (a ContractAddress) MarshalText() ([]byte, error) {
	return hexutil.Bytes(a[:]).MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *ContractAddress) UnmarshalText(input []byte) error {
	return hexutil.UnmarshalFixedText("ContractAddress", input, a[:])
}
