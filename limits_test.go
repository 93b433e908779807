package trnnut

import (
	"errors"
	"strings"
	"testing"

	"github.com/MrEthical07/trnnut/permission"
)

func contractSections(n int) []ContractSection {
	out := make([]ContractSection, n)
	for i := range out {
		var addr permission.ContractAddress
		addr[0] = byte(i + 1)
		addr[1] = byte((i + 1) >> 8)
		out[i] = ContractSection{Address: addr, BlockCooldown: uint32(i)}
	}
	return out
}

func constrainedModule(key string, size int) ModuleSection {
	return ModuleSection{
		Key: key,
		Methods: []permission.MethodEntry{
			{Key: "m", Method: permission.NewMethod("m").WithConstraints(make([]byte, size))},
		},
	}
}

func roundTrip(t *testing.T, tok *TRNNut) {
	t.Helper()
	encoded, err := Encode(tok)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Decode(encoded)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !decoded.Equal(tok) {
		t.Fatal("decoded token differs")
	}
}

func TestDefaultLimitsRoundTripAtTheEdge(t *testing.T) {
	lim := DefaultConfig().Limits

	tok, err := FromSections(nil, contractSections(int(lim.MaxContracts)))
	if err != nil {
		t.Fatalf("FromSections at contract limit: %v", err)
	}
	roundTrip(t, tok)

	tok, err = FromSections([]ModuleSection{constrainedModule("c", int(lim.MaxConstraintsLen))}, nil)
	if err != nil {
		t.Fatalf("FromSections at constraints limit: %v", err)
	}
	roundTrip(t, tok)
}

func TestFromSectionsRejectsWhatDecodeWould(t *testing.T) {
	lim := DefaultConfig().Limits

	tooManyMethods := ModuleSection{Key: "wide"}
	for i := uint64(0); i <= lim.MaxMethodsPerModule; i++ {
		key := strings.Repeat("k", 1+int(i%31)) + string(rune('a'+i/31))
		tooManyMethods.Methods = append(tooManyMethods.Methods, permission.MethodEntry{Key: key, Method: permission.NewMethod(key)})
	}

	var tooManyModules []ModuleSection
	for i := uint64(0); i <= lim.MaxModules; i++ {
		key := strings.Repeat("m", 1+int(i%31)) + string(rune('a'+i/31))
		tooManyModules = append(tooManyModules, ModuleSection{Key: key})
	}

	var tooLarge []ModuleSection
	for i := 0; i < 20; i++ {
		tooLarge = append(tooLarge, constrainedModule(string(rune('a'+i)), int(lim.MaxConstraintsLen)))
	}

	tests := []struct {
		name      string
		modules   []ModuleSection
		contracts []ContractSection
		wantPath  string
	}{
		{name: "contracts", contracts: contractSections(int(lim.MaxContracts) + 1), wantPath: " at contracts"},
		{name: "modules", modules: tooManyModules, wantPath: " at modules"},
		{name: "methods", modules: []ModuleSection{tooManyMethods}, wantPath: " at modules[0].methods"},
		{
			name:     "constraints",
			modules:  []ModuleSection{constrainedModule("c", int(lim.MaxConstraintsLen)+1)},
			wantPath: " at modules[0].methods[0].constraints",
		},
		{name: "token size", modules: tooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromSections(tt.modules, tt.contracts)
			if !errors.Is(err, ErrLimitExceeded) {
				t.Fatalf("expected limit exceeded, got %v", err)
			}
			if tt.wantPath != "" && !strings.Contains(err.Error(), tt.wantPath) {
				t.Fatalf("expected path %q in %q", tt.wantPath, err.Error())
			}
		})
	}
}

func TestWithLimitsMatchesCodec(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxContracts = 1024
	codec, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	tok, err := FromSections(nil, contractSections(300), WithLimits(cfg.Limits))
	if err != nil {
		t.Fatalf("FromSections: %v", err)
	}
	encoded, err := codec.Encode(tok)
	if err != nil {
		t.Fatalf("codec Encode: %v", err)
	}
	decoded, err := codec.Decode(encoded)
	if err != nil {
		t.Fatalf("codec Decode: %v", err)
	}
	if !decoded.Equal(tok) {
		t.Fatal("decoded token differs")
	}

	if _, err := Encode(tok); !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("default codec should refuse to encode what it cannot decode, got %v", err)
	}
}

func TestCodecEncodeHonoursItsLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxModules = 1
	codec, err := NewCodec(cfg)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	_, err = codec.Encode(scenarioTwo(t))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected limit exceeded, got %v", err)
	}
	if got := codec.Metrics().Value(MetricEncodeFailure); got != 1 {
		t.Fatalf("expected one encode failure, got %d", got)
	}
}
