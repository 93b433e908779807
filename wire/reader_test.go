package wire

import (
	"errors"
	"strings"
	"testing"
)

func TestReaderTruncation(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})

	if _, err := r.Uint(2); err != nil {
		t.Fatalf("uint failed: %v", err)
	}
	_, err := r.Uint(2)
	if !errors.Is(err, ErrTruncatedBuffer) {
		t.Fatalf("expected truncated buffer, got %v", err)
	}

	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if werr.Offset != 2 {
		t.Fatalf("expected offset 2, got %d", werr.Offset)
	}
	if r.Offset() != 2 || r.Remaining() != 1 {
		t.Fatalf("failed read must not advance the cursor: offset=%d remaining=%d", r.Offset(), r.Remaining())
	}
}

func TestReaderIdentifierOffset(t *testing.T) {
	data := make([]byte, 4+IdentifierCapacity)
	data[4] = 0xff

	r := NewReader(data)
	if _, err := r.Next(4); err != nil {
		t.Fatalf("next failed: %v", err)
	}
	_, err := r.Identifier()
	var werr *Error
	if !errors.As(err, &werr) || werr.Kind != KindInvalidEncoding {
		t.Fatalf("expected invalid encoding, got %v", err)
	}
	if werr.Offset != 4 {
		t.Fatalf("expected offset 4, got %d", werr.Offset)
	}
}

func TestReaderRequire(t *testing.T) {
	r := NewReader(make([]byte, 10))

	if err := r.Require(2, 5); err != nil {
		t.Fatalf("2x5 should fit in 10 bytes: %v", err)
	}
	if err := r.Require(3, 5); !errors.Is(err, ErrTruncatedBuffer) {
		t.Fatalf("expected truncated buffer, got %v", err)
	}
	if err := r.Require(^uint64(0), 1); !errors.Is(err, ErrTruncatedBuffer) {
		t.Fatalf("expected huge count to be rejected, got %v", err)
	}
}

func TestWithinBuildsPath(t *testing.T) {
	err := Within(Within(Errorf(KindFieldTooLong, "too long"), "name"), Indexed("modules", 1))

	var werr *Error
	if !errors.As(err, &werr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if got := strings.Join(werr.Path, "."); got != "modules[1].name" {
		t.Fatalf("unexpected path %q", got)
	}
	if !strings.Contains(err.Error(), "field_too_long at modules[1].name") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if KindOf(err) != KindFieldTooLong {
		t.Fatalf("unexpected kind %q", KindOf(err))
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var w Writer
	if err := w.Identifier("transfer"); err != nil {
		t.Fatalf("identifier failed: %v", err)
	}
	if err := w.Uint(123, 3); err != nil {
		t.Fatalf("uint failed: %v", err)
	}
	w.Byte(1)

	r := NewReader(w.Bytes())
	name, err := r.Identifier()
	if err != nil || name != "transfer" {
		t.Fatalf("expected transfer, got %q err=%v", name, err)
	}
	n, err := r.Uint(3)
	if err != nil || n != 123 {
		t.Fatalf("expected 123, got %d err=%v", n, err)
	}
	flag, err := r.Byte()
	if err != nil || flag != 1 {
		t.Fatalf("expected flag 1, got %d err=%v", flag, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("expected reader to be drained, %d remaining", r.Remaining())
	}
}
