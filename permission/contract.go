package permission

// Contract is the permission to interact with a contract address.
type Contract struct {
	Address       ContractAddress
	BlockCooldown uint32
}

// NewContract returns a contract permission with no cooldown.
func NewContract(address ContractAddress) Contract {
	return Contract{Address: address}
}

// WithBlockCooldown returns a copy of c with the given cooldown.
func (c Contract) WithBlockCooldown(blocks uint32) Contract {
	c.BlockCooldown = blocks
	return c
}
