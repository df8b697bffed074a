package authz

import "sort"

// HasPermission reports whether at least one held role grants the capability.
// Nil or empty role sets and unrecognized role names fail closed.
func HasPermission(roles []Role, capability Capability) bool {
	for _, r := range roles {
		granted, ok := Table[r]
		if !ok {
			continue
		}
		if MatchAny(granted, capability) {
			return true
		}
	}
	return false
}

// HasAnyPermission reports whether at least one of the listed capabilities is
// granted by the held roles.
func HasAnyPermission(roles []Role, capabilities ...Capability) bool {
	for _, c := range capabilities {
		if HasPermission(roles, c) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether every listed capability is granted by the
// held roles. An empty capability list is vacuously satisfied.
func HasAllPermissions(roles []Role, capabilities ...Capability) bool {
	for _, c := range capabilities {
		if !HasPermission(roles, c) {
			return false
		}
	}
	return true
}

// AllPermissionsFor returns the deduplicated union of capabilities reachable
// by any held role, sorted for stable output.
func AllPermissionsFor(roles []Role) []Capability {
	seen := make(map[Capability]struct{})
	for _, r := range roles {
		for _, c := range Table[r] {
			seen[c] = struct{}{}
		}
	}
	out := make([]Capability, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
