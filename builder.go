package trnnut

import (
	"fmt"

	"github.com/MrEthical07/trnnut/permission"
	"github.com/MrEthical07/trnnut/wire"
)

// Option configures FromSections.
type Option func(*buildOptions)

type buildOptions struct {
	version uint32
	limits  LimitsConfig
}

// WithVersion selects the wire format version. The default is DefaultVersion.
func WithVersion(version uint32) Option {
	return func(o *buildOptions) {
		o.version = version
	}
}

// WithLimits bounds the token by lim instead of DefaultConfig().Limits. Pass the limits
// of the Config given to NewCodec when tokens are decoded by that codec.
func WithLimits(lim LimitsConfig) Option {
	return func(o *buildOptions) {
		o.limits = lim
	}
}

// FromSections builds a token from ordered module and contract sections.
//
// Every field is validated against the chosen format and the limits, so a token
// returned by FromSections encodes and decodes again with a codec bound to the same
// limits. Keys must be unique and module keys must equal module names.
func FromSections(modules []ModuleSection, contracts []ContractSection, opts ...Option) (*TRNNut, error) {
	o := buildOptions{version: DefaultVersion, limits: defaultConfig().Limits}
	for _, opt := range opts {
		opt(&o)
	}

	format, err := LookupFormat(o.version)
	if err != nil {
		return nil, err
	}
	l := format.Layout

	if uint64(len(modules)) > l.MaxCount() {
		return nil, wire.Within(wire.Errorf(wire.KindValueOutOfRange,
			"%d modules exceed the %d-byte count field", len(modules), l.CountWidth), "modules")
	}
	if uint64(len(contracts)) > l.MaxCount() {
		return nil, wire.Within(wire.Errorf(wire.KindValueOutOfRange,
			"%d contracts exceed the %d-byte count field", len(contracts), l.CountWidth), "contracts")
	}

	t := &TRNNut{version: format.Version}

	for i, section := range modules {
		path := wire.Indexed("modules", i)

		name := section.Name
		if name == "" {
			name = section.Key
		}
		if name != section.Key {
			return nil, wire.Within(wire.Errorf(wire.KindKeyMismatch,
				"module key %q differs from name %q", section.Key, name), path)
		}

		module, err := permission.NewModule(name, section.BlockCooldown, section.Methods...)
		if err != nil {
			return nil, wire.Within(err, path)
		}
		if err := module.Validate(l); err != nil {
			return nil, wire.Within(err, path)
		}
		if !t.modules.Put(section.Key, module) {
			return nil, wire.Within(wire.Errorf(wire.KindDuplicateKey,
				"module key %q repeated", section.Key), path)
		}
	}

	for i, section := range contracts {
		path := wire.Indexed("contracts", i)

		contract := permission.NewContract(section.Address).WithBlockCooldown(section.BlockCooldown)
		if err := contract.Validate(l); err != nil {
			return nil, wire.Within(err, path)
		}
		if !t.contracts.Put(section.Address, contract) {
			return nil, wire.Within(wire.Errorf(wire.KindDuplicateKey,
				"contract %s repeated", section.Address), path)
		}
	}

	if err := checkLimits(t, l, o.limits); err != nil {
		return nil, err
	}
	return t, nil
}

// MustFromSections is FromSections for static fixtures; it panics on error.
func MustFromSections(modules []ModuleSection, contracts []ContractSection, opts ...Option) *TRNNut {
	t, err := FromSections(modules, contracts, opts...)
	if err != nil {
		panic(fmt.Sprintf("trnnut: %v", err))
	}
	return t
}
