package wire

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeIdentifierPadsToCapacity(t *testing.T) {
	slot, err := EncodeIdentifier("module_test", IdentifierCapacity)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if len(slot) != IdentifierCapacity {
		t.Fatalf("expected %d bytes, got %d", IdentifierCapacity, len(slot))
	}
	if !bytes.Equal(slot[:11], []byte("module_test")) {
		t.Fatalf("unexpected prefix %q", slot[:11])
	}
	for i, b := range slot[11:] {
		if b != 0 {
			t.Fatalf("expected zero padding at %d, got %d", 11+i, b)
		}
	}

	got, err := DecodeIdentifier(slot)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != "module_test" {
		t.Fatalf("expected module_test, got %q", got)
	}
}

func TestEncodeIdentifierExactCapacity(t *testing.T) {
	name := strings.Repeat("a", IdentifierCapacity)
	slot, err := EncodeIdentifier(name, IdentifierCapacity)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeIdentifier(slot)
	if err != nil || got != name {
		t.Fatalf("expected full-width round trip, got %q err=%v", got, err)
	}
}

func TestEncodeIdentifierRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "too long", input: strings.Repeat("x", IdentifierCapacity+1), want: ErrFieldTooLong},
		{name: "multibyte too long", input: strings.Repeat("é", 17), want: ErrFieldTooLong},
		{name: "invalid utf8", input: string([]byte{0xff, 0xfe}), want: ErrInvalidEncoding},
		{name: "trailing nul", input: "ab\x00", want: ErrInvalidEncoding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeIdentifier(tt.input, IdentifierCapacity)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestDecodeIdentifierRejectsInvalidUTF8(t *testing.T) {
	slot := make([]byte, IdentifierCapacity)
	slot[0] = 0xc3
	if _, err := DecodeIdentifier(slot); !errors.Is(err, ErrInvalidEncoding) {
		t.Fatalf("expected invalid encoding, got %v", err)
	}
}

func TestIdentifierInteriorNULRoundTrips(t *testing.T) {
	slot, err := EncodeIdentifier("a\x00b", IdentifierCapacity)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	got, err := DecodeIdentifier(slot)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != "a\x00b" {
		t.Fatalf("expected %q, got %q", "a\x00b", got)
	}
}

func TestDecodeIdentifierEmptySlot(t *testing.T) {
	got, err := DecodeIdentifier(make([]byte, IdentifierCapacity))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty identifier, got %q", got)
	}
}

func TestEncodeUintLittleEndian(t *testing.T) {
	tests := []struct {
		n     uint64
		width int
		want  []byte
	}{
		{n: 86400, width: 3, want: []byte{0x80, 0x51, 0x01}},
		{n: 86400, width: 4, want: []byte{0x80, 0x51, 0x01, 0x00}},
		{n: 270549120, width: 4, want: []byte{0x80, 0x67, 0x20, 0x10}},
		{n: 0, width: 1, want: []byte{0}},
		{n: 0xffffff, width: 3, want: []byte{0xff, 0xff, 0xff}},
		{n: ^uint64(0), width: 8, want: bytes.Repeat([]byte{0xff}, 8)},
	}

	for _, tt := range tests {
		got, err := EncodeUint(tt.n, tt.width)
		if err != nil {
			t.Fatalf("encode %d/%d failed: %v", tt.n, tt.width, err)
		}
		if !bytes.Equal(got, tt.want) {
			t.Fatalf("encode %d/%d: expected %v, got %v", tt.n, tt.width, tt.want, got)
		}
		back, err := DecodeUint(got)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if back != tt.n {
			t.Fatalf("expected %d, got %d", tt.n, back)
		}
	}
}

func TestEncodeUintRange(t *testing.T) {
	if _, err := EncodeUint(1<<24, 3); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected out of range for 2^24 in 3 bytes, got %v", err)
	}
	if _, err := EncodeUint(256, 1); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected out of range for 256 in 1 byte, got %v", err)
	}
	if _, err := EncodeUint(1, 0); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected width 0 to be rejected, got %v", err)
	}
	if _, err := EncodeUint(1, 9); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected width 9 to be rejected, got %v", err)
	}
	if _, err := DecodeUint(nil); !errors.Is(err, ErrValueOutOfRange) {
		t.Fatalf("expected empty input to be rejected, got %v", err)
	}
}

func TestMaxUint(t *testing.T) {
	if MaxUint(3) != 16_777_215 {
		t.Fatalf("unexpected MaxUint(3) = %d", MaxUint(3))
	}
	if MaxUint(4) != 4_294_967_295 {
		t.Fatalf("unexpected MaxUint(4) = %d", MaxUint(4))
	}
	if MaxUint(8) != ^uint64(0) {
		t.Fatalf("unexpected MaxUint(8)")
	}
}
