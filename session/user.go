package session

import "github.com/gradlink/clientcore/authz"

// User is the identity record served by the remote API. ID and Email are the
// minimum a response must carry to be accepted; everything else is optional
// profile data.
type User struct {
	ID             string       `json:"id" validate:"required"`
	Email          string       `json:"email" validate:"required,email"`
	Name           string       `json:"name,omitempty"`
	AvatarURL      string       `json:"avatar_url,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	GraduationYear int          `json:"graduation_year,omitempty"`
	Roles          []authz.Role `json:"roles"`
	Active         bool         `json:"active"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role authz.Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Can reports whether the user's roles grant the capability. Nil users fail
// closed.
func (u *User) Can(capability authz.Capability) bool {
	if u == nil {
		return false
	}
	return authz.HasPermission(u.Roles, capability)
}

// HighestRole returns the strongest role the user holds, defaulting to
// authz.RoleUser.
func (u *User) HighestRole() authz.Role {
	if u == nil {
		return authz.RoleUser
	}
	return authz.HighestRole(u.Roles)
}

// clone returns a copy with its own roles slice, so snapshots never alias
// store-internal state.
func (u *User) clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Roles != nil {
		c.Roles = make([]authz.Role, len(u.Roles))
		copy(c.Roles, u.Roles)
	}
	return &c
}
