package session

import (
	"encoding/json"
	"time"

	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/storage"
	"github.com/gradlink/clientcore/validation"
)

// Bootstrapper restores the session from durable storage once per process.
//
// Outcomes:
//   - both entries present and valid: credentials applied to the store.
//   - either entry missing: store stays empty, no error.
//   - user record undecodable or structurally invalid: both entries wiped,
//     store stays empty. Self-healing — never surfaced as a UI error.
//
// Whatever the outcome, the store is marked initialized so route guards can
// tell "checked and found nothing" apart from "not yet checked".
type Bootstrapper struct {
	store   *Store
	durable storage.Store
	log     *logger.Logger
}

// NewBootstrapper creates a bootstrapper over the store's durable backend.
func NewBootstrapper(store *Store, durable storage.Store, log *logger.Logger) *Bootstrapper {
	if log == nil {
		log = logger.Nop()
	}
	return &Bootstrapper{
		store:   store,
		durable: durable,
		log:     log.WithComponent("bootstrap"),
	}
}

// Run restores persisted credentials into the store. Idempotent: once the
// store is initialized, further calls are no-ops.
func (b *Bootstrapper) Run() error {
	if b.store.Initialized() {
		return nil
	}
	defer b.store.markInitialized()

	token, okToken, err := b.durable.Get(storage.KeyToken)
	if err != nil {
		return err
	}
	rawUser, okUser, err := b.durable.Get(storage.KeyUser)
	if err != nil {
		return err
	}

	if !okToken || !okUser || token == "" {
		b.log.Debug("no persisted credentials")
		return nil
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		b.log.Warn("persisted user record is corrupt, wiping credentials",
			logger.Fields(logger.FieldError, err.Error()))
		return b.wipe()
	}
	if err := validation.Validate(&user); err != nil {
		b.log.Warn("persisted user record is incomplete, wiping credentials",
			logger.Fields(logger.FieldError, err.Error()))
		return b.wipe()
	}

	if info, err := ParseTokenInfo(token); err == nil && info.Expired(time.Now()) {
		// Load it anyway: expiry enforcement belongs to the server, and the
		// refresh controller clears the session on the resulting 401.
		b.log.Warn("persisted token looks expired",
			logger.Fields(logger.FieldUserID, user.ID))
	}

	b.store.SetCredentials(&user, token)
	b.log.Info("session restored", logger.Fields(
		logger.FieldUserID, user.ID,
		logger.FieldEmail, user.Email,
	))
	return nil
}

func (b *Bootstrapper) wipe() error {
	if err := b.durable.Delete(storage.KeyToken); err != nil {
		return err
	}
	return b.durable.Delete(storage.KeyUser)
}
