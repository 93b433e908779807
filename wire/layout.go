package wire

// Layout holds the packed widths, in bytes, that a format version assigns to
// variable-size fields.
type Layout struct {
	CooldownWidth       int
	CountWidth          int
	ConstraintsLenWidth int
}

// Validate checks that every width is usable by EncodeUint.
func (l Layout) Validate() error {
	for _, w := range []int{l.CooldownWidth, l.CountWidth, l.ConstraintsLenWidth} {
		if w < 1 || w > MaxUintWidth {
			return Errorf(KindValueOutOfRange, "unsupported layout width %d", w)
		}
	}
	if l.CooldownWidth > 4 {
		return Errorf(KindValueOutOfRange, "cooldown width %d exceeds 4 bytes", l.CooldownWidth)
	}
	return nil
}

func (l Layout) MaxCooldown() uint64       { return MaxUint(l.CooldownWidth) }
func (l Layout) MaxCount() uint64          { return MaxUint(l.CountWidth) }
func (l Layout) MaxConstraintsLen() uint64 { return MaxUint(l.ConstraintsLenWidth) }

// MinMethodSize is the encoded size of a method without constraints.
func (l Layout) MinMethodSize() int {
	return 2*IdentifierCapacity + l.CooldownWidth + 1
}

// MinModuleSize is the encoded size of a module with no methods.
func (l Layout) MinModuleSize() int {
	return IdentifierCapacity + l.CooldownWidth + l.CountWidth
}

// ContractSize is the encoded size of a contract.
func (l Layout) ContractSize() int {
	return AddressLength + l.CooldownWidth
}
