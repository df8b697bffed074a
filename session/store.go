package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/storage"
)

// Snapshot is a point-in-time value copy of the session state.
type Snapshot struct {
	User          *User
	Token         string
	LastFetchedAt time.Time
	RedirectPath  string
	Initialized   bool
}

// IsAuthenticated is derived: true iff both user and token are present.
func (s Snapshot) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}

// Store is the single source of truth for the authenticated identity.
//
// Durable storage is written only by the credential-saving and logout/clear
// paths; UpdateUserData touches memory only, matching the ownership split in
// which the refresh controller never writes storage directly.
type Store struct {
	mu            sync.Mutex
	user          *User
	token         string
	lastFetchedAt time.Time
	redirectPath  string
	initialized   bool
	initCh        chan struct{}

	durable   storage.Store
	ephemeral storage.Store
	log       *logger.Logger
	now       func() time.Time
}

// NewStore creates an empty, uninitialized session store over the given
// durable and ephemeral backends.
func NewStore(durable, ephemeral storage.Store, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		initCh:    make(chan struct{}),
		durable:   durable,
		ephemeral: ephemeral,
		log:       log.WithComponent("session"),
		now:       time.Now,
	}
}

// Snapshot returns a value copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		User:          s.user.clone(),
		Token:         s.token,
		LastFetchedAt: s.lastFetchedAt,
		RedirectPath:  s.redirectPath,
		Initialized:   s.initialized,
	}
}

// IsAuthenticated reports whether both a user record and a token are held.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user != nil && s.token != ""
}

// Token returns the current bearer token, or "".
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the current user record, or nil.
func (s *Store) User() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user.clone()
}

// LastFetchedAt returns when the user record was last reconciled with the
// server. Zero means never.
func (s *Store) LastFetchedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetchedAt
}

// --- Mutating actions ---

// SetCredentials replaces user and token atomically. Memory only: persistence
// belongs to the caller (SaveCredentials, or the bootstrapper restoring what
// is already persisted).
func (s *Store) SetCredentials(user *User, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user.clone()
	s.token = token
}

// SaveCredentials persists the credential entries to durable storage and then
// applies them to the in-memory session. Used by the login success path.
func (s *Store) SaveCredentials(user *User, token string) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.durable.Set(storage.KeyToken, token); err != nil {
		return err
	}
	if err := s.durable.Set(storage.KeyUser, string(raw)); err != nil {
		return err
	}
	s.SetCredentials(user, token)
	s.log.Info("credentials saved", logger.Fields(logger.FieldUserID, user.ID))
	return nil
}

// UpdateUserData replaces only the user record and bumps the staleness
// timestamp. The token is never touched. Used after a refresh fetch;
// last-write-wins when refreshes race.
func (s *Store) UpdateUserData(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user.clone()
	s.lastFetchedAt = s.now()
}

// Logout clears the session and durable credentials, and sets the one-shot
// just-logged-out marker so the next redirect decision routes to the public
// home instead of bouncing back into a protected page.
func (s *Store) Logout() error {
	if err := s.clearAll(); err != nil {
		return err
	}
	if err := s.ephemeral.Set(storage.KeyJustLoggedOut, "1"); err != nil {
		return err
	}
	s.log.Info("logged out")
	return nil
}

// Clear wipes the session and durable credentials without setting the
// logout marker. Used when the server reports the credential revoked.
func (s *Store) Clear() error {
	if err := s.clearAll(); err != nil {
		return err
	}
	s.log.Warn("session cleared")
	return nil
}

func (s *Store) clearAll() error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.lastFetchedAt = time.Time{}
	s.redirectPath = ""
	s.mu.Unlock()

	if err := s.durable.Delete(storage.KeyToken); err != nil {
		return err
	}
	return s.durable.Delete(storage.KeyUser)
}

// --- Redirect path (single slot, overwrite semantics) ---

// SetRedirectPath records the route to resume after a successful login.
// Setting overwrites any previous value; redirect paths never stack.
func (s *Store) SetRedirectPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirectPath = path
}

// ClearRedirectPath drops any recorded redirect path.
func (s *Store) ClearRedirectPath() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirectPath = ""
}

// TakeRedirectPath returns the recorded redirect path and clears it, so a
// path is consumed at most once.
func (s *Store) TakeRedirectPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.redirectPath
	s.redirectPath = ""
	return p
}

// ConsumeJustLoggedOut reports whether the one-shot logout marker was set,
// clearing it in the same step. A second call returns false.
func (s *Store) ConsumeJustLoggedOut() bool {
	_, ok, err := s.ephemeral.Get(storage.KeyJustLoggedOut)
	if err != nil || !ok {
		return false
	}
	_ = s.ephemeral.Delete(storage.KeyJustLoggedOut)
	return true
}

// --- Initialization gate ---

// markInitialized signals that the bootstrapper has completed, successfully
// or not. Idempotent.
func (s *Store) markInitialized() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return
	}
	s.initialized = true
	close(s.initCh)
}

// Initialized reports whether the bootstrapper has completed. It
// distinguishes "not yet checked" from "checked and found nothing".
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// WaitInitialized blocks until the bootstrapper completes or ctx is done.
func (s *Store) WaitInitialized(ctx context.Context) error {
	select {
	case <-s.initCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
