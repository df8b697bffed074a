package app

import (
	"context"

	"github.com/gradlink/clientcore/api"
	"github.com/gradlink/clientcore/authz"
	apperrors "github.com/gradlink/clientcore/errors"
	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/observability"
	"github.com/gradlink/clientcore/validation"
)

// SignIn authenticates with the backend, persists the credentials, and
// returns the path the user should land on: the recorded pre-login path if
// one exists, otherwise the home page.
func (a *App) SignIn(ctx context.Context, email, password string) (string, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanLogin)
	defer span.End()

	result, err := a.API.Login(ctx, email, password)
	if err != nil {
		observability.SetSpanError(ctx, err)
		if api.IsAuth(err) {
			return "", apperrors.Unauthorized("invalid email or password")
		}
		return "", err
	}
	if result.User == nil {
		return "", apperrors.InvalidPayload("user")
	}
	if err := validation.Validate(result.User); err != nil {
		return "", apperrors.InvalidPayload("user").WithCause(err)
	}

	if err := a.Session.SaveCredentials(result.User, result.Token); err != nil {
		return "", err
	}
	a.Logger.Info("signed in", logger.Fields(
		logger.FieldUserID, result.User.ID,
		logger.FieldRole, string(result.User.HighestRole()),
	))

	if path := a.Session.TakeRedirectPath(); path != "" {
		return path, nil
	}
	return "/", nil
}

// SignOut clears the session and durable credentials, and arms the one-shot
// marker so the route guard sends the user to the landing page instead of
// bouncing them back through login.
func (a *App) SignOut() error {
	if err := a.Session.Logout(); err != nil {
		return err
	}
	a.Logger.Info("signed out")
	return nil
}

// Can reports whether the current user holds the capability. Unauthenticated
// sessions can do nothing.
func (a *App) Can(capability authz.Capability) bool {
	return a.Session.User().Can(capability)
}

// CanAny reports whether the current user holds at least one capability.
func (a *App) CanAny(capabilities ...authz.Capability) bool {
	user := a.Session.User()
	if user == nil {
		return false
	}
	return authz.HasAnyPermission(user.Roles, capabilities...)
}

// CanAll reports whether the current user holds every capability.
func (a *App) CanAll(capabilities ...authz.Capability) bool {
	user := a.Session.User()
	if user == nil {
		return false
	}
	return authz.HasAllPermissions(user.Roles, capabilities...)
}

// Refresh re-fetches the authoritative user record immediately.
func (a *App) Refresh(ctx context.Context) error {
	ctx, span := observability.StartSpan(ctx, observability.SpanIdentityRefresh)
	defer span.End()
	if err := a.Identity.Refresh(ctx); err != nil {
		observability.SetSpanError(ctx, err)
		return err
	}
	return nil
}

// UpdateProfile sends a partial profile update and reconciles the server's
// response, which may include server-computed fields, into the session.
func (a *App) UpdateProfile(ctx context.Context, update api.ProfileUpdate) error {
	user, err := a.API.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.InvalidPayload("user")
	}
	if err := validation.Validate(user); err != nil {
		return apperrors.InvalidPayload("user").WithCause(err)
	}
	a.Session.UpdateUserData(user)
	return nil
}

// UploadAvatar uploads a new avatar image and points the profile at the
// hosted copy.
func (a *App) UploadAvatar(ctx context.Context, fileName, contentType string, data []byte) (string, error) {
	url, err := a.API.UploadImage(ctx, fileName, contentType, data)
	if err != nil {
		return "", err
	}
	if err := a.UpdateProfile(ctx, api.ProfileUpdate{AvatarURL: &url}); err != nil {
		return "", err
	}
	return url, nil
}
