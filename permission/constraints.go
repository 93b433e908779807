package permission

import "bytes"

// Constraints is an optional opaque payload narrowing where a method applies, such as
// an allow-listed address. Absent and present-but-empty are distinct values and
// encode differently.
type Constraints struct {
	data    []byte
	present bool
}

// NoConstraints returns the absent payload.
func NoConstraints() Constraints {
	return Constraints{}
}

// WithConstraints returns a present payload holding a copy of b. A nil b yields a
// present, zero-length payload.
func WithConstraints(b []byte) Constraints {
	data := make([]byte, len(b))
	copy(data, b)
	return Constraints{data: data, present: true}
}

// Present reports whether a payload is attached.
func (c Constraints) Present() bool {
	return c.present
}

// Bytes returns a copy of the payload and whether it is present.
func (c Constraints) Bytes() ([]byte, bool) {
	if !c.present {
		return nil, false
	}
	return bytes.Clone(c.data), true
}

// Len returns the payload length, zero when absent.
func (c Constraints) Len() int {
	return len(c.data)
}

// Equal reports whether both payloads have the same presence and bytes.
func (c Constraints) Equal(other Constraints) bool {
	return c.present == other.present && bytes.Equal(c.data, other.data)
}
