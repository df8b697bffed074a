package identity

import (
	"context"
	"sync"
	"time"

	"github.com/gradlink/clientcore/api"
	apperrors "github.com/gradlink/clientcore/errors"
	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/session"
	"github.com/gradlink/clientcore/validation"
)

// DefaultStaleThreshold is how old a fetched user record may be before a
// caller should re-fetch rather than trust the cached copy.
const DefaultStaleThreshold = 5 * time.Minute

// Fetcher retrieves the authoritative user record for the current
// credentials. *api.Client satisfies it.
type Fetcher interface {
	Me(ctx context.Context) (*session.User, error)
}

// State reports whether a refresh attempt is in flight.
type State int

const (
	StateIdle State = iota
	StateFetching
)

// Controller reconciles the server's user record into the session store.
// Concurrent refreshes are tolerated: whichever response commits last wins,
// and staleness self-corrects on the next fetch.
type Controller struct {
	store   *session.Store
	fetcher Fetcher
	log     *logger.Logger

	threshold time.Duration
	now       func() time.Time

	mu    sync.Mutex
	state State
}

// Option configures a Controller.
type Option func(*Controller)

// WithStaleThreshold overrides the staleness window.
func WithStaleThreshold(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.threshold = d
		}
	}
}

// NewController builds a Controller over the given store and fetcher.
func NewController(store *session.Store, fetcher Fetcher, log *logger.Logger, opts ...Option) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	c := &Controller{
		store:     store,
		fetcher:   fetcher,
		log:       log.WithComponent("identity"),
		threshold: DefaultStaleThreshold,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current refresh state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsStale reports whether the session's user record is older than the
// staleness threshold. A session that has never fetched is always stale.
func (c *Controller) IsStale() bool {
	last := c.store.LastFetchedAt()
	if last.IsZero() {
		return true
	}
	return c.now().Sub(last) > c.threshold
}

// Refresh fetches the authoritative user record and reconciles it into the
// session store.
//
// An authentication failure (401/403) means the credentials were revoked
// server-side: the session and its durable entries are cleared. A payload
// missing the id or email is rejected without touching the session. Any
// other failure (network, 5xx) also leaves the session untouched; the stale
// identity is kept in preference to logging the user out over a transient
// error.
func (c *Controller) Refresh(ctx context.Context) error {
	c.setState(StateFetching)
	defer c.setState(StateIdle)

	user, err := c.fetcher.Me(ctx)
	if err != nil {
		if api.IsAuth(err) {
			c.log.Warn("credentials rejected by server, clearing session",
				logger.ErrorFields("refresh", err))
			if clearErr := c.store.Clear(); clearErr != nil {
				c.log.Error("failed to clear session after auth rejection",
					logger.ErrorFields("clear", clearErr))
			}
			return apperrors.Unauthorized("identity revoked server-side")
		}
		c.log.Warn("identity refresh failed, keeping cached session",
			logger.ErrorFields("refresh", err))
		return err
	}

	if user == nil {
		return apperrors.InvalidPayload("user")
	}
	if err := validation.Validate(user); err != nil {
		c.log.Warn("server returned an invalid user record",
			logger.ErrorFields("refresh", err))
		return apperrors.InvalidPayload("user").WithCause(err)
	}

	c.store.UpdateUserData(user)
	c.log.Debug("identity refreshed", logger.Fields(
		logger.FieldUserID, user.ID,
		logger.FieldEmail, user.Email,
	))
	return nil
}

// EnsureFresh refreshes only when needed: the session holds a token but no
// user record yet (partial restore), or the cached record is stale. A
// session without a token never triggers a fetch.
func (c *Controller) EnsureFresh(ctx context.Context) error {
	snap := c.store.Snapshot()
	if snap.Token == "" {
		return nil
	}
	if snap.User != nil && !c.IsStale() {
		return nil
	}
	return c.Refresh(ctx)
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}
