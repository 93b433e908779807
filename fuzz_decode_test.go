package trnnut

import (
	"bytes"
	"testing"
)

// FuzzDecodeRoundTrip feeds arbitrary bytes to Decode.
// Goal: no panics; accepted inputs re-encode to the bytes consumed and decode to an
// equal token.
func FuzzDecodeRoundTrip(f *testing.F) {
	f.Add(compactSample())
	f.Add(concat(le32(VersionExtended), []byte{0, 0, 0, 0}))
	f.Add(concat(le32(VersionCompact), []byte{255}))
	f.Add([]byte{})
	f.Add(bytes.Repeat([]byte{0xff}, 64))

	f.Fuzz(func(t *testing.T, data []byte) {
		tok, err := Decode(data)
		if err != nil {
			if tok != nil {
				t.Fatal("token returned alongside error")
			}
			return
		}

		out, err := Encode(tok)
		if err != nil {
			t.Fatalf("decoded token failed to encode: %v", err)
		}
		if len(out) > len(data) || !bytes.Equal(out, data[:len(out)]) {
			t.Fatalf("re-encoding is not a prefix of the input\nin  %x\nout %x", data, out)
		}
		if tok.Version() == VersionCompact && len(out) != len(data) {
			t.Fatalf("compact token accepted %d trailing bytes", len(data)-len(out))
		}

		again, err := Decode(out)
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if !again.Equal(tok) {
			t.Fatal("re-decoded token differs")
		}
	})
}
