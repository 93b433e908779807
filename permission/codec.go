package permission

import (
	"fmt"

	"github.com/MrEthical07/trnnut/wire"
)

const (
	constraintsAbsent  byte = 0
	constraintsPresent byte = 1
)

// DecodeLimits bounds what a decoder accepts beyond the layout widths. Zero fields
// impose no extra bound.
type DecodeLimits struct {
	MaxMethods        uint64
	MaxConstraintsLen uint64
}

/*
====================================
VALIDATION
====================================
*/

// CheckCooldown reports whether blocks fits the layout's cooldown width.
func CheckCooldown(blocks uint32, l wire.Layout) error {
	if uint64(blocks) > l.MaxCooldown() {
		return wire.Errorf(wire.KindValueOutOfRange,
			"cooldown %d exceeds %d-byte field (max %d)", blocks, l.CooldownWidth, l.MaxCooldown())
	}
	return nil
}

// Validate checks that m can be encoded under key with layout l.
func (m Method) Validate(key string, l wire.Layout) error {
	if err := wire.CheckIdentifier(key, wire.IdentifierCapacity); err != nil {
		return wire.Within(err, "key")
	}
	if err := wire.CheckIdentifier(m.Name, wire.IdentifierCapacity); err != nil {
		return wire.Within(err, "name")
	}
	if err := CheckCooldown(m.BlockCooldown, l); err != nil {
		return wire.Within(err, "block_cooldown")
	}
	if uint64(m.Constraints.Len()) > l.MaxConstraintsLen() {
		return wire.Within(wire.Errorf(wire.KindValueOutOfRange,
			"constraints are %d bytes, max %d", m.Constraints.Len(), l.MaxConstraintsLen()), "constraints")
	}
	return nil
}

// Validate checks that m and its methods can be encoded with layout l.
func (m Module) Validate(l wire.Layout) error {
	if err := wire.CheckIdentifier(m.Name, wire.IdentifierCapacity); err != nil {
		return wire.Within(err, "name")
	}
	if err := CheckCooldown(m.BlockCooldown, l); err != nil {
		return wire.Within(err, "block_cooldown")
	}
	if uint64(m.methods.Len()) > l.MaxCount() {
		return wire.Within(wire.Errorf(wire.KindValueOutOfRange,
			"%d methods exceed the %d-byte count field", m.methods.Len(), l.CountWidth), "methods")
	}
	i := 0
	for key, method := range m.methods.All() {
		if err := method.Validate(key, l); err != nil {
			return wire.Within(err, wire.Indexed("methods", i))
		}
		i++
	}
	return nil
}

// Validate checks that c can be encoded with layout l.
func (c Contract) Validate(l wire.Layout) error {
	if err := CheckCooldown(c.BlockCooldown, l); err != nil {
		return wire.Within(err, "block_cooldown")
	}
	return nil
}

/*
====================================
ENCODE
====================================
*/

// EncodeMethod writes [key][name][block_cooldown][flag][len?][constraints?].
func EncodeMethod(w *wire.Writer, l wire.Layout, key string, m Method) error {
	if err := w.Identifier(key); err != nil {
		return wire.Within(err, "key")
	}
	if err := w.Identifier(m.Name); err != nil {
		return wire.Within(err, "name")
	}
	if err := w.Uint(uint64(m.BlockCooldown), l.CooldownWidth); err != nil {
		return wire.Within(err, "block_cooldown")
	}
	if !m.Constraints.present {
		w.Byte(constraintsAbsent)
		return nil
	}
	w.Byte(constraintsPresent)
	if err := w.Uint(uint64(len(m.Constraints.data)), l.ConstraintsLenWidth); err != nil {
		return wire.Within(err, "constraints")
	}
	w.Raw(m.Constraints.data)
	return nil
}

// EncodeModule writes [name][block_cooldown][method_count][method...].
func EncodeModule(w *wire.Writer, l wire.Layout, m Module) error {
	if err := w.Identifier(m.Name); err != nil {
		return wire.Within(err, "name")
	}
	if err := w.Uint(uint64(m.BlockCooldown), l.CooldownWidth); err != nil {
		return wire.Within(err, "block_cooldown")
	}
	if err := w.Uint(uint64(m.methods.Len()), l.CountWidth); err != nil {
		return wire.Within(err, "methods")
	}
	i := 0
	for key, method := range m.methods.All() {
		if err := EncodeMethod(w, l, key, method); err != nil {
			return wire.Within(err, wire.Indexed("methods", i))
		}
		i++
	}
	return nil
}

// EncodeContract writes [address][block_cooldown].
func EncodeContract(w *wire.Writer, l wire.Layout, c Contract) error {
	w.Raw(c.Address[:])
	if err := w.Uint(uint64(c.BlockCooldown), l.CooldownWidth); err != nil {
		return wire.Within(err, "block_cooldown")
	}
	return nil
}

/*
====================================
DECODE
====================================
*/

// DecodeMethod reads one method section.
func DecodeMethod(r *wire.Reader, l wire.Layout, limits DecodeLimits) (MethodEntry, error) {
	key, err := r.Identifier()
	if err != nil {
		return MethodEntry{}, wire.Within(err, "key")
	}
	name, err := r.Identifier()
	if err != nil {
		return MethodEntry{}, wire.Within(err, "name")
	}
	cooldown, err := r.Uint(l.CooldownWidth)
	if err != nil {
		return MethodEntry{}, wire.Within(err, "block_cooldown")
	}

	method := Method{Name: name, BlockCooldown: uint32(cooldown)}

	flagOffset := r.Offset()
	flag, err := r.Byte()
	if err != nil {
		return MethodEntry{}, wire.Within(err, "constraints")
	}
	switch flag {
	case constraintsAbsent:
	case constraintsPresent:
		lenOffset := r.Offset()
		n, err := r.Uint(l.ConstraintsLenWidth)
		if err != nil {
			return MethodEntry{}, wire.Within(err, "constraints")
		}
		if limits.MaxConstraintsLen > 0 && n > limits.MaxConstraintsLen {
			return MethodEntry{}, wire.Within(&wire.Error{
				Kind:   wire.KindLimitExceeded,
				Offset: lenOffset,
				Detail: "constraints length exceeds configured limit",
			}, "constraints")
		}
		if err := r.Require(n, 1); err != nil {
			return MethodEntry{}, wire.Within(err, "constraints")
		}
		payload, err := r.Next(int(n))
		if err != nil {
			return MethodEntry{}, wire.Within(err, "constraints")
		}
		method.Constraints = WithConstraints(payload)
	default:
		return MethodEntry{}, wire.Within(&wire.Error{
			Kind:   wire.KindInvalidEncoding,
			Offset: flagOffset,
			Detail: "constraints flag must be 0 or 1",
		}, "constraints")
	}

	return MethodEntry{Key: key, Method: method}, nil
}

// DecodeModule reads one module section including its methods.
func DecodeModule(r *wire.Reader, l wire.Layout, limits DecodeLimits) (Module, error) {
	name, err := r.Identifier()
	if err != nil {
		return Module{}, wire.Within(err, "name")
	}
	cooldown, err := r.Uint(l.CooldownWidth)
	if err != nil {
		return Module{}, wire.Within(err, "block_cooldown")
	}
	countOffset := r.Offset()
	count, err := r.Uint(l.CountWidth)
	if err != nil {
		return Module{}, wire.Within(err, "methods")
	}
	if limits.MaxMethods > 0 && count > limits.MaxMethods {
		return Module{}, wire.Within(&wire.Error{
			Kind:   wire.KindLimitExceeded,
			Offset: countOffset,
			Detail: "method count exceeds configured limit",
		}, "methods")
	}
	if err := r.Require(count, l.MinMethodSize()); err != nil {
		return Module{}, wire.Within(err, "methods")
	}

	m := Module{Name: name, BlockCooldown: uint32(cooldown)}
	for i := uint64(0); i < count; i++ {
		start := r.Offset()
		entry, err := DecodeMethod(r, l, limits)
		if err != nil {
			return Module{}, wire.Within(err, wire.Indexed("methods", int(i)))
		}
		if !m.methods.Put(entry.Key, entry.Method) {
			return Module{}, wire.Within(&wire.Error{
				Kind:   wire.KindDuplicateKey,
				Offset: start,
				Detail: fmt.Sprintf("method key %q repeated", entry.Key),
			}, wire.Indexed("methods", int(i)))
		}
	}
	return m, nil
}

// DecodeContract reads one contract section.
func DecodeContract(r *wire.Reader, l wire.Layout) (Contract, error) {
	raw, err := r.Next(wire.AddressLength)
	if err != nil {
		return Contract{}, wire.Within(err, "address")
	}
	var c Contract
	copy(c.Address[:], raw)
	cooldown, err := r.Uint(l.CooldownWidth)
	if err != nil {
		return Contract{}, wire.Within(err, "block_cooldown")
	}
	c.BlockCooldown = uint32(cooldown)
	return c, nil
}
