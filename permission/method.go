package permission

// Wildcard is the module and method key matching any name.
const Wildcard = "*"

// Method is the permission to call one method of a module.
type Method struct {
	Name          string
	BlockCooldown uint32
	Constraints   Constraints
}

// NewMethod returns a method permission with no cooldown and no constraints.
func NewMethod(name string) Method {
	return Method{Name: name}
}

// WithBlockCooldown returns a copy of m with the given cooldown.
func (m Method) WithBlockCooldown(blocks uint32) Method {
	m.BlockCooldown = blocks
	return m
}

// WithConstraints returns a copy of m carrying a copy of payload.
func (m Method) WithConstraints(payload []byte) Method {
	m.Constraints = WithConstraints(payload)
	return m
}

// Equal reports structural equality.
func (m Method) Equal(other Method) bool {
	return m.Name == other.Name &&
		m.BlockCooldown == other.BlockCooldown &&
		m.Constraints.Equal(other.Constraints)
}

// MethodEntry pairs a method key with its permission.
type MethodEntry struct {
	Key    string
	Method Method
}
