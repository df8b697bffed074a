package authz

import "strings"

// MatchPattern checks if a capability pattern matches a required capability.
// Supports the "resource:action" format with wildcards:
//
//   - "*:*"          matches everything
//   - "posts:*"      matches "posts:create", "posts:moderate", etc.
//   - "*:view"       matches "gallery:view", "events:view", etc.
//   - "posts:create" matches only "posts:create"
//
// If either side has no ":" separator they are compared as plain strings
// with wildcard support.
func MatchPattern(pattern, required Capability) bool {
	if pattern == required || pattern == "*" || pattern == "*:*" {
		return true
	}

	patParts := strings.SplitN(string(pattern), ":", 2)
	reqParts := strings.SplitN(string(required), ":", 2)

	if len(patParts) != len(reqParts) {
		return matchWildcard(string(pattern), string(required))
	}
	if len(patParts) == 1 {
		return matchWildcard(string(pattern), string(required))
	}

	return matchWildcard(patParts[0], reqParts[0]) && matchWildcard(patParts[1], reqParts[1])
}

// MatchAny returns true if any of the patterns match the required capability.
func MatchAny(patterns []Capability, required Capability) bool {
	for _, p := range patterns {
		if MatchPattern(p, required) {
			return true
		}
	}
	return false
}

// matchWildcard compares two strings where "*" matches anything.
func matchWildcard(pattern, value string) bool {
	return pattern == "*" || pattern == value
}
