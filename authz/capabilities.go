package authz

// Capability is a single grantable action token in "resource:action" format.
// Capabilities are checked independently of role names by downstream code.
type Capability string

const (
	CapPostsCreate   Capability = "posts:create"
	CapPostsComment  Capability = "posts:comment"
	CapPostsLike     Capability = "posts:like"
	CapPostsModerate Capability = "posts:moderate"

	CapCommentsModerate Capability = "comments:moderate"

	CapBlogsCreate   Capability = "blogs:create"
	CapBlogsModerate Capability = "blogs:moderate"

	CapGalleryView   Capability = "gallery:view"
	CapGalleryManage Capability = "gallery:manage"

	CapEventsView     Capability = "events:view"
	CapEventsRegister Capability = "events:register"
	CapEventsManage   Capability = "events:manage"

	CapProfileEditOwn Capability = "profile:edit-own"

	// CapUsersManage permits activation of pending accounts and profile-level
	// moderation. It does NOT permit deactivating an active account.
	CapUsersManage Capability = "users:manage"
	// CapUsersDeactivate permits setting an active account inactive.
	// Admin only — see the policy note on Table.
	CapUsersDeactivate Capability = "users:deactivate"

	CapReportsView    Capability = "reports:view"
	CapRolesAssign    Capability = "roles:assign"
	CapAdminDashboard Capability = "admin:dashboard"
)

// baseCapabilities are granted to every recognized role.
var baseCapabilities = []Capability{
	CapPostsCreate,
	CapPostsComment,
	CapPostsLike,
	CapBlogsCreate,
	CapGalleryView,
	CapEventsView,
	CapEventsRegister,
	CapProfileEditOwn,
}

// moderationCapabilities extend the base set for moderator and admin.
var moderationCapabilities = []Capability{
	CapPostsModerate,
	CapCommentsModerate,
	CapBlogsModerate,
	CapGalleryManage,
	CapEventsManage,
	CapUsersManage,
	CapReportsView,
}

// adminCapabilities extend the moderation set for admin.
//
// CapUsersDeactivate lives here and only here. Moderators can activate
// pending accounts through CapUsersManage but deactivation of an active
// account is reserved for admins. Do not "fix" this by folding it into
// moderationCapabilities.
var adminCapabilities = []Capability{
	CapUsersDeactivate,
	CapRolesAssign,
	CapAdminDashboard,
}

// Table is the static role permission table. Each role maps to the full set
// of capabilities it grants; stronger roles hold a superset of weaker ones
// (modulo the admin-only deactivate capability).
var Table = map[Role][]Capability{
	RoleUser:      baseCapabilities,
	RoleModerator: concat(baseCapabilities, moderationCapabilities),
	RoleAdmin:     concat(baseCapabilities, moderationCapabilities, adminCapabilities),
}

func concat(sets ...[]Capability) []Capability {
	var out []Capability
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
