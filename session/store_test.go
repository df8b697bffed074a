package session

import (
	"context"
	"testing"
	"time"

	"github.com/gradlink/clientcore/authz"
	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/storage"
)

func newTestStore(t *testing.T) (*Store, *storage.MemoryStore, *storage.MemoryStore) {
	t.Helper()
	durable := storage.NewMemoryStore()
	ephemeral := storage.NewMemoryStore()
	return NewStore(durable, ephemeral, logger.Nop()), durable, ephemeral
}

func testUser() *User {
	return &User{
		ID:     "u-1",
		Email:  "grad@example.edu",
		Name:   "Grad",
		Roles:  []authz.Role{authz.RoleUser},
		Active: true,
	}
}

func TestStore_EmptyAtStart(t *testing.T) {
	s, _, _ := newTestStore(t)
	snap := s.Snapshot()
	if snap.IsAuthenticated() {
		t.Error("fresh store must not be authenticated")
	}
	if snap.Initialized {
		t.Error("fresh store must not be initialized")
	}
	if snap.User != nil || snap.Token != "" {
		t.Error("fresh store must hold no identity")
	}
}

func TestStore_SetCredentials(t *testing.T) {
	s, durable, _ := newTestStore(t)
	s.SetCredentials(testUser(), "tok-1")

	if !s.IsAuthenticated() {
		t.Error("expected authenticated after SetCredentials")
	}
	if s.Token() != "tok-1" {
		t.Errorf("Token() = %q", s.Token())
	}
	// SetCredentials is memory-only.
	if _, ok, _ := durable.Get(storage.KeyToken); ok {
		t.Error("SetCredentials must not write durable storage")
	}
}

func TestStore_SaveCredentials_Persists(t *testing.T) {
	s, durable, _ := newTestStore(t)
	if err := s.SaveCredentials(testUser(), "tok-1"); err != nil {
		t.Fatalf("SaveCredentials: %v", err)
	}

	tok, ok, _ := durable.Get(storage.KeyToken)
	if !ok || tok != "tok-1" {
		t.Errorf("durable token = (%q, %v)", tok, ok)
	}
	if _, ok, _ := durable.Get(storage.KeyUser); !ok {
		t.Error("durable user record missing")
	}
	if !s.IsAuthenticated() {
		t.Error("expected authenticated after SaveCredentials")
	}
}

func TestStore_UpdateUserData_KeepsToken(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.SetCredentials(testUser(), "tok-1")

	updated := testUser()
	updated.Name = "Renamed"
	s.UpdateUserData(updated)

	snap := s.Snapshot()
	if snap.Token != "tok-1" {
		t.Error("UpdateUserData must not clear the token")
	}
	if snap.User.Name != "Renamed" {
		t.Errorf("user not replaced: %+v", snap.User)
	}
	if snap.LastFetchedAt.IsZero() {
		t.Error("UpdateUserData must bump LastFetchedAt")
	}
}

func TestStore_UpdateUserData_LastWriteWins(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.SetCredentials(testUser(), "tok-1")

	first := testUser()
	first.Name = "First"
	second := testUser()
	second.Name = "Second"

	s.UpdateUserData(first)
	s.UpdateUserData(second)

	if got := s.User().Name; got != "Second" {
		t.Errorf("expected last write to win, got %q", got)
	}
}

func TestStore_Logout(t *testing.T) {
	s, durable, ephemeral := newTestStore(t)
	if err := s.SaveCredentials(testUser(), "tok-1"); err != nil {
		t.Fatal(err)
	}

	if err := s.Logout(); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if s.IsAuthenticated() {
		t.Error("expected unauthenticated after logout")
	}
	if _, ok, _ := durable.Get(storage.KeyToken); ok {
		t.Error("durable token must be removed on logout")
	}
	if _, ok, _ := durable.Get(storage.KeyUser); ok {
		t.Error("durable user must be removed on logout")
	}
	if _, ok, _ := ephemeral.Get(storage.KeyJustLoggedOut); !ok {
		t.Error("logout marker must be set")
	}
}

func TestStore_ConsumeJustLoggedOut_OneShot(t *testing.T) {
	s, _, _ := newTestStore(t)
	if err := s.SaveCredentials(testUser(), "tok-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Logout(); err != nil {
		t.Fatal(err)
	}

	if !s.ConsumeJustLoggedOut() {
		t.Error("first consume should report true")
	}
	if s.ConsumeJustLoggedOut() {
		t.Error("second consume must report false")
	}
}

func TestStore_RedirectPathRoundTrip(t *testing.T) {
	s, _, _ := newTestStore(t)

	s.SetRedirectPath("/profile")
	if got := s.TakeRedirectPath(); got != "/profile" {
		t.Errorf("TakeRedirectPath() = %q, want /profile", got)
	}
	if got := s.TakeRedirectPath(); got != "" {
		t.Errorf("second take should be empty, got %q", got)
	}
}

func TestStore_RedirectPathOverwrites(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.SetRedirectPath("/profile")
	s.SetRedirectPath("/events")
	if got := s.TakeRedirectPath(); got != "/events" {
		t.Errorf("redirect path should overwrite, got %q", got)
	}
}

func TestStore_ClearWipesEverything(t *testing.T) {
	s, durable, ephemeral := newTestStore(t)
	if err := s.SaveCredentials(testUser(), "tok-1"); err != nil {
		t.Fatal(err)
	}
	s.SetRedirectPath("/dashboard")

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("expected unauthenticated after Clear")
	}
	if got := s.TakeRedirectPath(); got != "" {
		t.Errorf("redirect path should be cleared, got %q", got)
	}
	if _, ok, _ := durable.Get(storage.KeyToken); ok {
		t.Error("durable token must be removed on Clear")
	}
	// Clear is the revoked-credential path: no logout marker.
	if _, ok, _ := ephemeral.Get(storage.KeyJustLoggedOut); ok {
		t.Error("Clear must not set the logout marker")
	}
}

func TestStore_SnapshotDoesNotAliasUser(t *testing.T) {
	s, _, _ := newTestStore(t)
	s.SetCredentials(testUser(), "tok-1")

	snap := s.Snapshot()
	snap.User.Roles[0] = authz.RoleAdmin
	snap.User.Name = "Mutated"

	if got := s.User(); got.Name == "Mutated" || got.Roles[0] == authz.RoleAdmin {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestStore_WaitInitialized(t *testing.T) {
	s, _, _ := newTestStore(t)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := s.WaitInitialized(ctx); err == nil {
		t.Error("expected context deadline before initialization")
	}

	s.markInitialized()
	if err := s.WaitInitialized(context.Background()); err != nil {
		t.Errorf("WaitInitialized after init: %v", err)
	}
	if !s.Initialized() {
		t.Error("Initialized() should be true")
	}
}
