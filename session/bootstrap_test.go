package session

import (
	"encoding/json"
	"testing"

	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/storage"
)

func seedCredentials(t *testing.T, durable storage.Store, user *User, token string) {
	t.Helper()
	raw, err := json.Marshal(user)
	if err != nil {
		t.Fatal(err)
	}
	if err := durable.Set(storage.KeyToken, token); err != nil {
		t.Fatal(err)
	}
	if err := durable.Set(storage.KeyUser, string(raw)); err != nil {
		t.Fatal(err)
	}
}

func TestBootstrapper_RestoresValidCredentials(t *testing.T) {
	s, durable, _ := newTestStore(t)
	seedCredentials(t, durable, testUser(), "tok-1")

	b := NewBootstrapper(s, durable, logger.Nop())
	if err := b.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	snap := s.Snapshot()
	if !snap.IsAuthenticated() {
		t.Fatal("expected authenticated session after restore")
	}
	if snap.User.ID != "u-1" || snap.Token != "tok-1" {
		t.Errorf("unexpected restored session: %+v", snap)
	}
	if !snap.Initialized {
		t.Error("store must be initialized after Run")
	}
}

func TestBootstrapper_MissingEntriesLeaveSessionEmpty(t *testing.T) {
	tests := []struct {
		name string
		seed func(durable storage.Store)
	}{
		{"nothing stored", func(storage.Store) {}},
		{"token only", func(d storage.Store) { d.Set(storage.KeyToken, "tok-1") }},
		{"user only", func(d storage.Store) { d.Set(storage.KeyUser, `{"id":"u-1","email":"g@e.edu","roles":["user"]}`) }},
		{"empty token", func(d storage.Store) {
			d.Set(storage.KeyToken, "")
			d.Set(storage.KeyUser, `{"id":"u-1","email":"g@e.edu","roles":["user"]}`)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, durable, _ := newTestStore(t)
			tc.seed(durable)

			b := NewBootstrapper(s, durable, logger.Nop())
			if err := b.Run(); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if s.IsAuthenticated() {
				t.Error("session should stay empty")
			}
			if !s.Initialized() {
				t.Error("store must be initialized even with nothing to restore")
			}
		})
	}
}

func TestBootstrapper_SelfHealsCorruptUserRecord(t *testing.T) {
	s, durable, _ := newTestStore(t)
	durable.Set(storage.KeyToken, "abc")
	durable.Set(storage.KeyUser, `{not valid json`)

	b := NewBootstrapper(s, durable, logger.Nop())
	if err := b.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if s.IsAuthenticated() {
		t.Error("corrupt record must not authenticate")
	}
	if _, ok, _ := durable.Get(storage.KeyToken); ok {
		t.Error("corrupt restore must wipe the token entry")
	}
	if _, ok, _ := durable.Get(storage.KeyUser); ok {
		t.Error("corrupt restore must wipe the user entry")
	}
	if !s.Initialized() {
		t.Error("store must be initialized after self-heal")
	}
}

func TestBootstrapper_WipesStructurallyInvalidRecord(t *testing.T) {
	// Valid JSON but missing the required identity fields.
	s, durable, _ := newTestStore(t)
	durable.Set(storage.KeyToken, "abc")
	durable.Set(storage.KeyUser, `{"name":"No Identity"}`)

	b := NewBootstrapper(s, durable, logger.Nop())
	if err := b.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("incomplete record must not authenticate")
	}
	if _, ok, _ := durable.Get(storage.KeyUser); ok {
		t.Error("incomplete record must be wiped")
	}
}

func TestBootstrapper_Idempotent(t *testing.T) {
	s, durable, _ := newTestStore(t)
	seedCredentials(t, durable, testUser(), "tok-1")

	b := NewBootstrapper(s, durable, logger.Nop())
	if err := b.Run(); err != nil {
		t.Fatal(err)
	}
	first := s.Snapshot()

	if err := b.Run(); err != nil {
		t.Fatal(err)
	}
	second := s.Snapshot()

	if first.Token != second.Token || first.User.ID != second.User.ID {
		t.Error("second Run changed the session")
	}
}

func TestBootstrapper_SecondRunDoesNotResurrectLogout(t *testing.T) {
	s, durable, _ := newTestStore(t)
	seedCredentials(t, durable, testUser(), "tok-1")

	b := NewBootstrapper(s, durable, logger.Nop())
	if err := b.Run(); err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(); err != nil {
		t.Fatal(err)
	}

	if err := b.Run(); err != nil {
		t.Fatal(err)
	}
	if s.IsAuthenticated() {
		t.Error("a repeat Run after logout must not restore credentials")
	}
}
