package trnnut

import (
	"slices"

	"github.com/MrEthical07/trnnut/wire"
)

const (
	// VersionCompact packs cooldowns in 3 bytes and counts in 1 byte, and rejects
	// trailing bytes.
	VersionCompact uint32 = 0
	// VersionExtended packs cooldowns in 4 bytes and counts in 2 bytes, and ignores
	// bytes after the last section so a detached signature can follow the payload.
	VersionExtended uint32 = 1

	// DefaultVersion is used by FromSections unless WithVersion says otherwise.
	DefaultVersion = VersionExtended

	versionWidth = 4
)

// Format describes one version of the wire layout.
type Format struct {
	Version       uint32
	Layout        wire.Layout
	AllowTrailing bool
}

var formats = map[uint32]Format{
	VersionCompact: {
		Version:       VersionCompact,
		Layout:        wire.Layout{CooldownWidth: 3, CountWidth: 1, ConstraintsLenWidth: 2},
		AllowTrailing: false,
	},
	VersionExtended: {
		Version:       VersionExtended,
		Layout:        wire.Layout{CooldownWidth: 4, CountWidth: 2, ConstraintsLenWidth: 4},
		AllowTrailing: true,
	},
}

// LookupFormat returns the layout pinned by version.
func LookupFormat(version uint32) (Format, error) {
	f, ok := formats[version]
	if !ok {
		return Format{}, wire.Errorf(wire.KindUnknownVersion, "unsupported format version %d", version)
	}
	return f, nil
}

// SupportedVersions lists known format versions in ascending order.
func SupportedVersions() []uint32 {
	out := make([]uint32, 0, len(formats))
	for v := range formats {
		out = append(out, v)
	}
	slices.Sort(out)
	return out
}
