package permission

import (
	"encoding/json"
	"testing"
)

const sampleAddress = "0x1b89411db6199d3de20de60e6f0619bae375b1f4ac932877d14e0d6dec77cdca"

func TestParseContractAddress(t *testing.T) {
	addr, err := ParseContractAddress(sampleAddress)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if addr[0] != 27 || addr[1] != 137 || addr[31] != 202 {
		t.Fatalf("unexpected bytes %v", addr)
	}
	if addr.String() != sampleAddress {
		t.Fatalf("expected %s, got %s", sampleAddress, addr.String())
	}
	if addr.IsWildcard() {
		t.Fatal("sample address is not the wildcard")
	}
	if !ContractWildcard.IsWildcard() {
		t.Fatal("zero address must be the wildcard")
	}
}

func TestParseContractAddressRejects(t *testing.T) {
	for _, in := range []string{"", "0x", "1b89", "0x1b89", sampleAddress + "00", "0xzz"} {
		if _, err := ParseContractAddress(in); err == nil {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}

func TestContractAddressJSON(t *testing.T) {
	addr, _ := ParseContractAddress(sampleAddress)

	data, err := json.Marshal(addr)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"`+sampleAddress+`"` {
		t.Fatalf("unexpected json %s", data)
	}

	var back ContractAddress
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != addr {
		t.Fatalf("round trip mismatch")
	}
}

func TestContractAddressFromBytes(t *testing.T) {
	if _, err := ContractAddressFromBytes(make([]byte, 31)); err == nil {
		t.Fatal("expected short address to be rejected")
	}
	addr, err := ContractAddressFromBytes(make([]byte, 32))
	if err != nil || !addr.IsWildcard() {
		t.Fatalf("expected zero address, got %v err=%v", addr, err)
	}
}
