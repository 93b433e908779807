package trnnut

import (
	"fmt"

	"github.com/MrEthical07/trnnut/wire"
)

// checkLimits reports the first part of t that a decoder bound to lim would refuse.
// FromSections and (*Codec).Encode apply it so every token they accept decodes again.
func checkLimits(t *TRNNut, l wire.Layout, lim LimitsConfig) error {
	if n := uint64(t.modules.Len()); n > lim.MaxModules {
		return limitError("modules", fmt.Sprintf("%d modules exceed configured limit %d", n, lim.MaxModules))
	}
	if n := uint64(t.contracts.Len()); n > lim.MaxContracts {
		return limitError("contracts", fmt.Sprintf("%d contracts exceed configured limit %d", n, lim.MaxContracts))
	}

	size := uint64(versionWidth + 2*l.CountWidth)
	i := 0
	for _, m := range t.modules.All() {
		path := wire.Indexed("modules", i)
		if n := uint64(m.MethodCount()); n > lim.MaxMethodsPerModule {
			return wire.Within(limitError("methods",
				fmt.Sprintf("%d methods exceed configured limit %d", n, lim.MaxMethodsPerModule)), path)
		}
		size += uint64(l.MinModuleSize())

		for j, entry := range m.Methods() {
			size += uint64(l.MinMethodSize())
			if !entry.Method.Constraints.Present() {
				continue
			}
			n := uint64(entry.Method.Constraints.Len())
			if n > lim.MaxConstraintsLen {
				return wire.Within(wire.Within(limitError("constraints",
					fmt.Sprintf("constraints are %d bytes, configured limit %d", n, lim.MaxConstraintsLen)),
					wire.Indexed("methods", j)), path)
			}
			size += uint64(l.ConstraintsLenWidth) + n
		}
		i++
	}
	size += uint64(t.contracts.Len()) * uint64(l.ContractSize())

	if size > uint64(lim.MaxTokenSize) {
		return &wire.Error{
			Kind:   wire.KindLimitExceeded,
			Offset: -1,
			Detail: fmt.Sprintf("token would be %d bytes, limit %d", size, lim.MaxTokenSize),
		}
	}
	return nil
}

func limitError(segment, detail string) error {
	return wire.Within(&wire.Error{Kind: wire.KindLimitExceeded, Offset: -1, Detail: detail}, segment)
}
