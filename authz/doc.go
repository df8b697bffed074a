// Package authz implements the role-based permission model of the GradLink
// client core.
//
// Roles (user, moderator, admin) map to sets of capability tokens in the
// "resource:action" format. Evaluation is pure and fail-closed: empty role
// sets and unrecognized role names grant nothing, so a permission check can
// never crash the UI or accidentally grant an action.
//
// Capabilities grow monotonically up the role hierarchy, with one deliberate
// exception: users:deactivate is granted only to admin. A moderator holds
// users:manage (activation of pending accounts) but must never be able to
// deactivate an active account. This is policy, not an oversight.
//
//	allowed := authz.HasPermission(user.Roles, authz.CapPostsModerate)
package authz
