package trnnut

import (
	"encoding/binary"
	"testing"

	"github.com/MrEthical07/trnnut/permission"
)

const scenarioAddress = "0x1b89411db6199d3de20de60e6f0619bae375b1f4ac932877d14e0d6dec77cdca"

func pad(s string) []byte {
	out := make([]byte, 32)
	copy(out, s)
	return out
}

func le32(n uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, n)
	return out
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// compactSample is a version 0 token with one module "module_test" (cooldown 86400)
// holding one method "method_test" and no contracts.
func compactSample() []byte {
	return concat(
		le32(VersionCompact),
		[]byte{1},
		pad("module_test"), []byte{0x80, 0x51, 0x01},
		[]byte{1},
		pad("method_test"), pad("method_test"), []byte{0, 0, 0}, []byte{0},
		[]byte{0},
	)
}

func mustAddress(t testing.TB, s string) permission.ContractAddress {
	t.Helper()
	addr, err := permission.ParseContractAddress(s)
	if err != nil {
		t.Fatalf("parse address: %v", err)
	}
	return addr
}

func scenarioTwo(t testing.TB) *TRNNut {
	t.Helper()

	// Method keys differ from their payload names.
	tok, err := FromSections(
		[]ModuleSection{
			{
				Key:           "test_module_check1",
				BlockCooldown: 270549120,
				Methods: []permission.MethodEntry{
					{Key: "test_method_check1", Method: permission.NewMethod("test_method_check11").WithBlockCooldown(270549120)},
					{Key: "test_method_check2", Method: permission.NewMethod("test_method_check12").WithBlockCooldown(270545024)},
				},
			},
			{
				Key:           "test_module_check2",
				BlockCooldown: 270541120,
				Methods: []permission.MethodEntry{
					{Key: "test_method_check2", Method: permission.NewMethod("test_method_check21").WithBlockCooldown(270541120)},
				},
			},
		},
		[]ContractSection{{Address: mustAddress(t, scenarioAddress), BlockCooldown: 270549120}},
	)
	if err != nil {
		t.Fatalf("FromSections: %v", err)
	}
	return tok
}
