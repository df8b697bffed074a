package api

import "net/http"

// TokenSource supplies the current bearer credential. The session store's
// Token method satisfies this, so every request picks up credential changes
// (login, logout, revocation) without rebuilding the client.
type TokenSource func() string

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Token is a static bearer token. Ignored when Source is set.
	Token string
	// Source dynamically supplies the bearer token per request.
	Source TokenSource
}

// BearerAuth creates a static bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Token: token}
}

// SourceAuth creates an auth config that reads the token per request.
func SourceAuth(source TokenSource) *AuthConfig {
	return &AuthConfig{Source: source}
}

// apply attaches the bearer credential to the request's authorization header.
// An empty token attaches nothing, so unauthenticated requests (login) pass
// through the same path.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	token := a.Token
	if a.Source != nil {
		token = a.Source()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
