package guard

import (
	"context"
	"testing"
	"time"

	"github.com/gradlink/clientcore/authz"
	"github.com/gradlink/clientcore/logger"
	"github.com/gradlink/clientcore/session"
	"github.com/gradlink/clientcore/storage"
)

func bootstrappedStore(t *testing.T) (*session.Store, storage.Store) {
	t.Helper()
	durable := storage.NewMemoryStore()
	store := session.NewStore(durable, storage.NewMemoryStore(), logger.Nop())
	if err := session.NewBootstrapper(store, durable, logger.Nop()).Run(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return store, durable
}

func testUser() *session.User {
	return &session.User{
		ID:     "u-1",
		Email:  "grad@example.edu",
		Roles:  []authz.Role{authz.RoleUser},
		Active: true,
	}
}

func TestEvaluate_WaitsUntilInitialized(t *testing.T) {
	store := session.NewStore(storage.NewMemoryStore(), storage.NewMemoryStore(), logger.Nop())
	g := New(store, logger.Nop())

	d := g.Evaluate("/dashboard")
	if d.Action != ActionWait {
		t.Errorf("uninitialized store should yield wait, got %v", d.Action)
	}
	if p := store.TakeRedirectPath(); p != "" {
		t.Errorf("waiting must not record a redirect path, got %q", p)
	}
}

func TestEvaluate_AuthenticatedAllows(t *testing.T) {
	store, _ := bootstrappedStore(t)
	store.SetCredentials(testUser(), "tok-1")
	g := New(store, logger.Nop())

	if d := g.Evaluate("/dashboard"); d.Action != ActionAllow {
		t.Errorf("authenticated session should be allowed, got %v", d.Action)
	}
}

func TestEvaluate_UnauthenticatedRedirectsToLogin(t *testing.T) {
	store, _ := bootstrappedStore(t)
	g := New(store, logger.Nop())

	d := g.Evaluate("/dashboard")
	if d.Action != ActionRedirect || d.RedirectTo != "/login" {
		t.Fatalf("expected redirect to /login, got %+v", d)
	}
	if d.RecordedPath != "/dashboard" {
		t.Errorf("requested path should be recorded, got %q", d.RecordedPath)
	}
	if p := store.TakeRedirectPath(); p != "/dashboard" {
		t.Errorf("redirect path not stored, got %q", p)
	}
}

func TestEvaluate_LogoutSuppressesBounceBack(t *testing.T) {
	store, _ := bootstrappedStore(t)
	store.SetCredentials(testUser(), "tok-1")
	g := New(store, logger.Nop())

	if d := g.Evaluate("/dashboard"); d.Action != ActionAllow {
		t.Fatalf("precondition: expected allow, got %v", d.Action)
	}
	if err := store.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	d := g.Evaluate("/dashboard")
	if d.Action != ActionRedirect || d.RedirectTo != "/" {
		t.Fatalf("post-logout should route to /, got %+v", d)
	}
	if d.RecordedPath != "" {
		t.Errorf("post-logout must not record the path, got %q", d.RecordedPath)
	}
	if p := store.TakeRedirectPath(); p != "" {
		t.Errorf("redirect path must stay empty after logout, got %q", p)
	}

	// The marker is one-shot: the next anonymous visit behaves normally.
	d = g.Evaluate("/dashboard")
	if d.Action != ActionRedirect || d.RedirectTo != "/login" || d.RecordedPath != "/dashboard" {
		t.Errorf("second evaluation should redirect to login with recording, got %+v", d)
	}
}

func TestEvaluate_CustomPaths(t *testing.T) {
	store, _ := bootstrappedStore(t)
	g := New(store, logger.Nop(), WithLoginPath("/signin"), WithHomePath("/welcome"))

	if d := g.Evaluate("/events"); d.RedirectTo != "/signin" {
		t.Errorf("expected /signin, got %q", d.RedirectTo)
	}

	store.SetCredentials(testUser(), "tok-1")
	if err := store.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if d := g.Evaluate("/events"); d.RedirectTo != "/welcome" {
		t.Errorf("expected /welcome, got %q", d.RedirectTo)
	}
}

func TestWait_BlocksUntilBootstrap(t *testing.T) {
	durable := storage.NewMemoryStore()
	store := session.NewStore(durable, storage.NewMemoryStore(), logger.Nop())
	g := New(store, logger.Nop())

	done := make(chan Decision, 1)
	go func() {
		d, err := g.Wait(context.Background(), "/dashboard")
		if err != nil {
			t.Errorf("Wait: %v", err)
		}
		done <- d
	}()

	// Initialization unblocks the waiter.
	time.Sleep(10 * time.Millisecond)
	if err := session.NewBootstrapper(store, durable, logger.Nop()).Run(); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	select {
	case d := <-done:
		if d.Action != ActionRedirect {
			t.Errorf("expected a real decision after bootstrap, got %v", d.Action)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not unblock after bootstrap")
	}
}

func TestWait_ContextCancelled(t *testing.T) {
	store := session.NewStore(storage.NewMemoryStore(), storage.NewMemoryStore(), logger.Nop())
	g := New(store, logger.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	d, err := g.Wait(ctx, "/dashboard")
	if err == nil {
		t.Fatal("expected a context error")
	}
	if d.Action != ActionWait {
		t.Errorf("cancelled wait should report wait, got %v", d.Action)
	}
}
