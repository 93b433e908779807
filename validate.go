package trnnut

import (
	"github.com/MrEthical07/trnnut/permission"
)

// LookupModule resolves name against the exact module key first and the wildcard
// module second. It returns the key that matched.
func (t *TRNNut) LookupModule(name string) (string, permission.Module, bool) {
	if m, ok := t.Module(name); ok {
		return name, m, true
	}
	if m, ok := t.Module(permission.Wildcard); ok {
		return permission.Wildcard, m, true
	}
	return "", permission.Module{}, false
}

// LookupContract resolves address against the exact entry first and ContractWildcard
// second.
func (t *TRNNut) LookupContract(address permission.ContractAddress) (permission.Contract, bool) {
	if c, ok := t.Contract(address); ok {
		return c, true
	}
	return t.Contract(permission.ContractWildcard)
}

// ValidateRuntimeCall checks that the token grants method of module, honouring "*"
// wildcards at both levels. A denial is a *ValidationError.
func (t *TRNNut) ValidateRuntimeCall(module, method string) error {
	_, _, _, err := t.resolveRuntimeCall(module, method)
	return err
}

// ValidateContractCall checks that the token grants address directly or through
// ContractWildcard.
func (t *TRNNut) ValidateContractCall(address permission.ContractAddress) error {
	if _, ok := t.LookupContract(address); !ok {
		return &ValidationError{Domain: DomainContract}
	}
	return nil
}

type resolvedMethod struct {
	key    string
	method permission.Method
}

func (t *TRNNut) resolveRuntimeCall(module, method string) (string, permission.Module, resolvedMethod, error) {
	moduleKey, m, ok := t.LookupModule(module)
	if !ok {
		return "", permission.Module{}, resolvedMethod{}, &ValidationError{Domain: DomainModule}
	}
	if found, ok := m.Method(method); ok {
		return moduleKey, m, resolvedMethod{key: method, method: found}, nil
	}
	if found, ok := m.Method(permission.Wildcard); ok {
		return moduleKey, m, resolvedMethod{key: permission.Wildcard, method: found}, nil
	}
	return "", permission.Module{}, resolvedMethod{}, &ValidationError{Domain: DomainMethod}
}
