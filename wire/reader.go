package wire

import "fmt"

// Reader is a bounds-checked cursor over an encoded buffer.
//
// Slices returned by Next alias the input; callers that keep them must copy.
type Reader struct {
	data []byte
	off  int
}

func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Next consumes n bytes.
func (r *Reader) Next(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, &Error{
			Kind:   KindTruncatedBuffer,
			Offset: r.off,
			Detail: truncatedDetail(n, r.Remaining()),
		}
	}
	out := r.data[r.off : r.off+n]
	r.off += n
	return out, nil
}

// Byte consumes a single byte.
func (r *Reader) Byte() (byte, error) {
	b, err := r.Next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint consumes a little endian integer of the given width.
func (r *Reader) Uint(width int) (uint64, error) {
	start := r.off
	b, err := r.Next(width)
	if err != nil {
		return 0, err
	}
	n, err := DecodeUint(b)
	if err != nil {
		return 0, atOffset(err, start)
	}
	return n, nil
}

// Identifier consumes a fixed identifier slot.
func (r *Reader) Identifier() (string, error) {
	start := r.off
	slot, err := r.Next(IdentifierCapacity)
	if err != nil {
		return "", err
	}
	s, err := DecodeIdentifier(slot)
	if err != nil {
		return "", atOffset(err, start)
	}
	return s, nil
}

// Require fails with a truncated buffer error unless count entries of at least
// each bytes can still fit. It lets decoders reject impossible counts before
// allocating for them.
func (r *Reader) Require(count uint64, each int) error {
	if each <= 0 {
		return nil
	}
	remaining := uint64(r.Remaining())
	if count > remaining/uint64(each) {
		return &Error{
			Kind:   KindTruncatedBuffer,
			Offset: r.off,
			Detail: "declared count does not fit in the remaining bytes",
		}
	}
	return nil
}

func truncatedDetail(want, have int) string {
	return fmt.Sprintf("need %d bytes, %d remaining", want, have)
}
