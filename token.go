package trnnut

import (
	"github.com/MrEthical07/trnnut/permission"
)

// TRNNut is a decoded or constructed permission token.
//
// TRNNut values are immutable; accessors return copies.
type TRNNut struct {
	version   uint32
	modules   permission.Ordered[string, permission.Module]
	contracts permission.Ordered[permission.ContractAddress, permission.Contract]
}

// ModuleSection is the construction input for one module entry.
//
// Key indexes the module and must equal Name; an empty Name takes Key.
type ModuleSection struct {
	Key           string
	Name          string
	BlockCooldown uint32
	Methods       []permission.MethodEntry
}

// ContractSection is the construction input for one contract entry.
type ContractSection struct {
	Address       permission.ContractAddress
	BlockCooldown uint32
}

// Version returns the wire format version the token encodes with.
func (t *TRNNut) Version() uint32 {
	if t == nil {
		return DefaultVersion
	}
	return t.version
}

// ModuleKeys returns module keys in wire order.
func (t *TRNNut) ModuleKeys() []string {
	if t == nil {
		return nil
	}
	return t.modules.Keys()
}

// Modules returns copies of all modules in wire order.
func (t *TRNNut) Modules() []permission.Module {
	if t == nil {
		return nil
	}
	out := make([]permission.Module, 0, t.modules.Len())
	for _, m := range t.modules.All() {
		out = append(out, m)
	}
	return out
}

// ContractAddresses returns contract keys in wire order.
func (t *TRNNut) ContractAddresses() []permission.ContractAddress {
	if t == nil {
		return nil
	}
	return t.contracts.Keys()
}

// Sections returns construction inputs that rebuild an equal token via FromSections.
func (t *TRNNut) Sections() ([]ModuleSection, []ContractSection) {
	if t == nil {
		return nil, nil
	}
	modules := make([]ModuleSection, 0, t.modules.Len())
	for key, m := range t.modules.All() {
		modules = append(modules, ModuleSection{
			Key:           key,
			Name:          m.Name,
			BlockCooldown: m.BlockCooldown,
			Methods:       m.Methods(),
		})
	}
	contracts := make([]ContractSection, 0, t.contracts.Len())
	for addr, c := range t.contracts.All() {
		contracts = append(contracts, ContractSection{Address: addr, BlockCooldown: c.BlockCooldown})
	}
	return modules, contracts
}

// Equal reports structural equality including version and entry order.
func (t *TRNNut) Equal(other *TRNNut) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.version != other.version {
		return false
	}
	if t.modules.Len() != other.modules.Len() || t.contracts.Len() != other.contracts.Len() {
		return false
	}
	theirModules := other.modules.Keys()
	i := 0
	for key, m := range t.modules.All() {
		if theirModules[i] != key {
			return false
		}
		o, _ := other.modules.Get(key)
		if !m.Equal(o) {
			return false
		}
		i++
	}
	theirContracts := other.contracts.Keys()
	i = 0
	for addr, c := range t.contracts.All() {
		if theirContracts[i] != addr {
			return false
		}
		o, _ := other.contracts.Get(addr)
		if c != o {
			return false
		}
		i++
	}
	return true
}
