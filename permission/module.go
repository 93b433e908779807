package permission

import (
	"github.com/MrEthical07/trnnut/wire"
)

// Module is the permission to use a runtime module and a set of its methods.
//
// Module values are immutable once built by NewModule or decoded.
type Module struct {
	Name          string
	BlockCooldown uint32

	methods Ordered[string, Method]
}

// NewModule builds a module from method entries in order. Method keys must be unique.
func NewModule(name string, blockCooldown uint32, methods ...MethodEntry) (Module, error) {
	m := Module{Name: name, BlockCooldown: blockCooldown}
	for i, entry := range methods {
		if !m.methods.Put(entry.Key, entry.Method) {
			return Module{}, wire.Within(
				wire.Errorf(wire.KindDuplicateKey, "method key %q repeated", entry.Key),
				wire.Indexed("methods", i),
			)
		}
	}
	return m, nil
}

// Method returns the method stored under the exact key.
func (m Module) Method(key string) (Method, bool) {
	method, ok := m.methods.Get(key)
	if !ok {
		return Method{}, false
	}
	return cloneMethod(method), true
}

// LookupMethod resolves name against the exact key first and the wildcard second.
func (m Module) LookupMethod(name string) (Method, bool) {
	if method, ok := m.Method(name); ok {
		return method, true
	}
	return m.Method(Wildcard)
}

// HasMethod reports whether key is registered exactly.
func (m Module) HasMethod(key string) bool {
	return m.methods.Has(key)
}

// MethodKeys returns method keys in insertion order.
func (m Module) MethodKeys() []string {
	return m.methods.Keys()
}

// Methods returns copies of the method entries in insertion order.
func (m Module) Methods() []MethodEntry {
	out := make([]MethodEntry, 0, m.methods.Len())
	for key, method := range m.methods.All() {
		out = append(out, MethodEntry{Key: key, Method: cloneMethod(method)})
	}
	return out
}

// MethodCount returns the number of methods.
func (m Module) MethodCount() int {
	return m.methods.Len()
}

// Equal reports structural equality, including method order.
func (m Module) Equal(other Module) bool {
	if m.Name != other.Name || m.BlockCooldown != other.BlockCooldown {
		return false
	}
	if m.methods.Len() != other.methods.Len() {
		return false
	}
	theirs := other.Methods()
	i := 0
	for key, method := range m.methods.All() {
		if theirs[i].Key != key || !theirs[i].Method.Equal(method) {
			return false
		}
		i++
	}
	return true
}

func cloneMethod(m Method) Method {
	if m.Constraints.present {
		m.Constraints = WithConstraints(m.Constraints.data)
	}
	return m
}
