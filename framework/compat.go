package framework

import "strings"

// Range matches frameworks of one family up to a maximum version.
// Ranges are the building blocks of fallback chains.
type Range struct {
	Identifier Identifier
	Max        Version

	// Platform restricts the range to one OS platform. Empty matches only
	// platform-neutral frameworks.
	Platform string
}

// Contains reports whether f falls in the range.
func (r Range) Contains(f Framework) bool {
	if r.Identifier == AnyFramework {
		return f.IsAny()
	}
	if f.Identifier != r.Identifier {
		return false
	}
	if !strings.EqualFold(f.Platform, r.Platform) {
		return false
	}
	return f.Version.Compare(r.Max) <= 0
}

// String returns a compact description such as "netstandard<=2.0".
func (r Range) String() string {
	if r.Identifier == AnyFramework {
		return "any"
	}
	return Framework{Identifier: r.Identifier, Platform: r.Platform}.familyName() + "<=" + r.Max.dotted()
}

func (f Framework) familyName() string {
	switch f.Identifier {
	case NetFramework:
		return "net"
	case NetStandard:
		return "netstandard"
	case NetCoreApp:
		if f.Platform != "" {
			return "netcoreapp-" + f.Platform
		}
		return "netcoreapp"
	}
	return strings.ToLower(string(f.Identifier))
}

// netStandardSupport lists, highest first, the minimum version of a
// framework family and the newest .NETStandard it implements.
var netStandardSupport = map[Identifier][]struct {
	min      Version
	standard Version
}{
	NetFramework: {
		{V(4, 6, 1), V(2, 0)},
		{V(4, 6), V(1, 3)},
		{V(4, 5, 1), V(1, 2)},
		{V(4, 5), V(1, 1)},
	},
	NetCoreApp: {
		{V(3, 0), V(2, 1)},
		{V(2, 0), V(2, 0)},
		{V(1, 0), V(1, 6)},
	},
	UAP: {
		{V(10, 0, 16299), V(2, 0)},
		{V(10, 0), V(1, 4)},
	},
	MonoAndroid: {
		{V(0, 0), V(2, 1)},
	},
	XamarinIOS: {
		{V(0, 0), V(2, 1)},
	},
	XamarinMac: {
		{V(0, 0), V(2, 1)},
	},
	Tizen: {
		{V(4, 0), V(2, 0)},
		{V(3, 0), V(1, 6)},
	},
}

// Fallbacks returns the ordered ranges the target can consume assets from,
// most specific first: the target's own family (platform-qualified first),
// then the .NETStandard versions it implements, then Any.
func Fallbacks(target Framework) []Range {
	if target.IsAny() {
		return []Range{{Identifier: AnyFramework}}
	}

	var ranges []Range
	if target.Platform != "" {
		ranges = append(ranges, Range{Identifier: target.Identifier, Max: target.Version, Platform: target.Platform})
	}
	ranges = append(ranges, Range{Identifier: target.Identifier, Max: target.Version})

	if target.Identifier != NetStandard {
		for _, support := range netStandardSupport[target.Identifier] {
			if target.Version.Compare(support.min) >= 0 {
				ranges = append(ranges, Range{Identifier: NetStandard, Max: support.standard})
				break
			}
		}
	}

	return append(ranges, Range{Identifier: AnyFramework})
}

// IsCompatible reports whether a target can consume assets built for
// candidate.
func IsCompatible(target, candidate Framework) bool {
	for _, r := range Fallbacks(target) {
		if r.Contains(candidate) {
			return true
		}
	}
	return false
}

// Nearest returns the index of the candidate closest to target: the one in
// the earliest fallback range, and within a range the highest version.
// Ties keep the first candidate. ok is false when nothing is compatible.
func Nearest(target Framework, candidates []Framework) (index int, ok bool) {
	index = -1
	for _, r := range Fallbacks(target) {
		for i, c := range candidates {
			if !r.Contains(c) {
				continue
			}
			if index < 0 || c.Version.Compare(candidates[index].Version) > 0 {
				index = i
			}
		}
		if index >= 0 {
			return index, true
		}
	}
	return -1, false
}
