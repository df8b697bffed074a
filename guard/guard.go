package guard

import (
	"context"

	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/session"
)

// Action is the outcome of a guard evaluation.
type Action int

const (
	// ActionWait means the session has not finished bootstrapping; the view
	// must hold rendering and re-evaluate once it has.
	ActionWait Action = iota
	// ActionAllow means the session is authenticated and the view may render.
	ActionAllow
	// ActionRedirect means the caller must navigate to RedirectTo.
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionWait:
		return "wait"
	case ActionAllow:
		return "allow"
	case ActionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is a guard verdict for one requested path.
type Decision struct {
	Action Action
	// RedirectTo is the navigation target when Action is ActionRedirect.
	RedirectTo string
	// RecordedPath is the path saved for post-login restoration, or "".
	RecordedPath string
}

// Guard evaluates access to protected paths against the session store.
type Guard struct {
	store     *session.Store
	log       *logger.Logger
	loginPath string
	homePath  string
}

// Option configures a Guard.
type Option func(*Guard)

// WithLoginPath overrides the login entry point (default "/login").
func WithLoginPath(path string) Option {
	return func(g *Guard) { g.loginPath = path }
}

// WithHomePath overrides the public landing path (default "/").
func WithHomePath(path string) Option {
	return func(g *Guard) { g.homePath = path }
}

// New builds a Guard over the given session store.
func New(store *session.Store, log *logger.Logger, opts ...Option) *Guard {
	if log == nil {
		log = logger.Nop()
	}
	g := &Guard{
		store:     store,
		log:       log.WithComponent("guard"),
		loginPath: "/login",
		homePath:  "/",
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Evaluate decides whether the protected view at path may render.
//
// Before the bootstrapper has completed the answer is always ActionWait: a
// returning user with persisted credentials must not be bounced to the login
// page while their session is still being restored. An unauthenticated
// session redirects to the login page with the requested path recorded for
// post-login restoration, except immediately after an explicit logout, where
// the one-shot marker routes to the public landing page instead and the path
// is deliberately not recorded.
func (g *Guard) Evaluate(path string) Decision {
	if !g.store.Initialized() {
		return Decision{Action: ActionWait}
	}
	if g.store.IsAuthenticated() {
		return Decision{Action: ActionAllow}
	}
	if g.store.ConsumeJustLoggedOut() {
		g.log.Debug("post-logout redirect to landing page",
			logger.Fields(logger.FieldPath, path))
		return Decision{Action: ActionRedirect, RedirectTo: g.homePath}
	}
	g.store.SetRedirectPath(path)
	g.log.Debug("unauthenticated access, redirecting to login",
		logger.Fields(logger.FieldPath, path))
	return Decision{
		Action:       ActionRedirect,
		RedirectTo:   g.loginPath,
		RecordedPath: path,
	}
}

// Wait blocks until the bootstrapper has completed and then evaluates.
// Returns a wait decision only if ctx expires first.
func (g *Guard) Wait(ctx context.Context, path string) (Decision, error) {
	if err := g.store.WaitInitialized(ctx); err != nil {
		return Decision{Action: ActionWait}, err
	}
	return g.Evaluate(path), nil
}
