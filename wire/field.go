package wire

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

const (
	// IdentifierCapacity is the size of an identifier slot in bytes.
	IdentifierCapacity = 32
	// AddressLength is the size of a contract address in bytes.
	AddressLength = 32
	// MaxUintWidth is the widest packed integer supported.
	MaxUintWidth = 8
)

// CheckIdentifier reports whether s can be stored in an identifier slot of the given
// capacity and read back unchanged.
func CheckIdentifier(s string, capacity int) error {
	if len(s) > capacity {
		return Errorf(KindFieldTooLong, "identifier %q is %d bytes, capacity %d", s, len(s), capacity)
	}
	if !utf8.ValidString(s) {
		return Errorf(KindInvalidEncoding, "identifier is not valid UTF-8")
	}
	// Trailing NULs are indistinguishable from padding.
	if strings.HasSuffix(s, "\x00") {
		return Errorf(KindInvalidEncoding, "identifier %q ends with a NUL byte", s)
	}
	return nil
}

// EncodeIdentifier stores s in a zero-padded slot of capacity bytes.
func EncodeIdentifier(s string, capacity int) ([]byte, error) {
	if err := CheckIdentifier(s, capacity); err != nil {
		return nil, err
	}
	out := make([]byte, capacity)
	copy(out, s)
	return out, nil
}

// DecodeIdentifier reads an identifier slot, dropping the zero padding.
func DecodeIdentifier(slot []byte) (string, error) {
	trimmed := bytes.TrimRight(slot, "\x00")
	if !utf8.Valid(trimmed) {
		return "", Errorf(KindInvalidEncoding, "identifier slot is not valid UTF-8")
	}
	return string(trimmed), nil
}

// MaxUint returns the largest value representable in width bytes.
func MaxUint(width int) uint64 {
	if width >= MaxUintWidth {
		return ^uint64(0)
	}
	if width <= 0 {
		return 0
	}
	return 1<<(8*uint(width)) - 1
}

// EncodeUint packs n little endian into width bytes.
func EncodeUint(n uint64, width int) ([]byte, error) {
	if width < 1 || width > MaxUintWidth {
		return nil, Errorf(KindValueOutOfRange, "unsupported integer width %d", width)
	}
	if n > MaxUint(width) {
		return nil, Errorf(KindValueOutOfRange, "value %d does not fit in %d bytes", n, width)
	}
	out := make([]byte, width)
	for i := 0; i < width; i++ {
		out[i] = byte(n >> (8 * uint(i)))
	}
	return out, nil
}

// DecodeUint unpacks a little endian integer spanning all of b.
func DecodeUint(b []byte) (uint64, error) {
	if len(b) < 1 || len(b) > MaxUintWidth {
		return 0, Errorf(KindValueOutOfRange, "unsupported integer width %d", len(b))
	}
	var n uint64
	for i := len(b) - 1; i >= 0; i-- {
		n = n<<8 | uint64(b[i])
	}
	return n, nil
}
