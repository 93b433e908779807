package trnnut

import (
	"github.com/MrEthical07/trnnut/permission"
)

// ModuleView is the query answer for a module.
type ModuleView struct {
	Name          string   `json:"name"`
	BlockCooldown uint32   `json:"block_cooldown"`
	Methods       []string `json:"methods"`
}

// ContractView is the query answer for a contract.
type ContractView struct {
	Address       permission.ContractAddress `json:"address"`
	BlockCooldown uint32                     `json:"block_cooldown"`
}

// GetModule returns the module stored under key with its method keys in insertion
// order. A miss is reported through ok, never as an error.
func (t *TRNNut) GetModule(key string) (ModuleView, bool) {
	m, ok := t.Module(key)
	if !ok {
		return ModuleView{}, false
	}
	return ModuleView{
		Name:          m.Name,
		BlockCooldown: m.BlockCooldown,
		Methods:       m.MethodKeys(),
	}, true
}

// Module returns the full module stored under key.
func (t *TRNNut) Module(key string) (permission.Module, bool) {
	if t == nil {
		return permission.Module{}, false
	}
	return t.modules.Get(key)
}

// Method returns the method stored under methodKey in the module stored under moduleKey.
// Both keys are matched exactly.
func (t *TRNNut) Method(moduleKey, methodKey string) (permission.Method, bool) {
	m, ok := t.Module(moduleKey)
	if !ok {
		return permission.Method{}, false
	}
	return m.Method(methodKey)
}

// GetContract returns the contract stored under address.
func (t *TRNNut) GetContract(address permission.ContractAddress) (ContractView, bool) {
	c, ok := t.Contract(address)
	if !ok {
		return ContractView{}, false
	}
	return ContractView{Address: c.Address, BlockCooldown: c.BlockCooldown}, true
}

// Contract returns the full contract stored under address.
func (t *TRNNut) Contract(address permission.ContractAddress) (permission.Contract, bool) {
	if t == nil {
		return permission.Contract{}, false
	}
	return t.contracts.Get(address)
}

// VerifyContract reports whether the token grants address. It is a presence check
// plus structural validity of the stored entry; block-height cooldowns are checked by
// CooldownVerifier.
func (t *TRNNut) VerifyContract(address permission.ContractAddress) bool {
	c, ok := t.Contract(address)
	if !ok {
		return false
	}
	format, err := LookupFormat(t.version)
	if err != nil {
		return false
	}
	return c.Address == address && c.Validate(format.Layout) == nil
}
