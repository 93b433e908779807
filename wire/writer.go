package wire

import "bytes"

// Writer accumulates encoded fields.
type Writer struct {
	buf bytes.Buffer
}

// Identifier writes s into a zero-padded identifier slot.
func (w *Writer) Identifier(s string) error {
	slot, err := EncodeIdentifier(s, IdentifierCapacity)
	if err != nil {
		return err
	}
	w.buf.Write(slot)
	return nil
}

// Uint writes n little endian in width bytes.
func (w *Writer) Uint(n uint64, width int) error {
	b, err := EncodeUint(n, width)
	if err != nil {
		return err
	}
	w.buf.Write(b)
	return nil
}

func (w *Writer) Byte(b byte) { w.buf.WriteByte(b) }

func (w *Writer) Raw(b []byte) { w.buf.Write(b) }

func (w *Writer) Len() int { return w.buf.Len() }

// Bytes returns a copy of everything written so far.
func (w *Writer) Bytes() []byte {
	return bytes.Clone(w.buf.Bytes())
}
