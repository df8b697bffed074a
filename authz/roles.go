package authz

// Role is a named category of identity granting a bundle of capabilities.
// A user may hold several roles at once.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// rolePrecedence orders roles from weakest to strongest. Unknown roles rank
// below user.
var rolePrecedence = map[Role]int{
	RoleUser:      1,
	RoleModerator: 2,
	RoleAdmin:     3,
}

// KnownRole reports whether the role name is recognized.
func KnownRole(r Role) bool {
	_, ok := rolePrecedence[r]
	return ok
}

// HighestRole returns the strongest role in the set under the fixed ordering
// admin > moderator > user. Empty or entirely unrecognized input yields
// RoleUser: every authenticated identity has at least baseline capabilities,
// so the fallback is the weakest role rather than "no role".
func HighestRole(roles []Role) Role {
	highest := RoleUser
	best := 0
	for _, r := range roles {
		if rank, ok := rolePrecedence[r]; ok && rank > best {
			best = rank
			highest = r
		}
	}
	return highest
}
