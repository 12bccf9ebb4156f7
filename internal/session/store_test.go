package session

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"taskoraClient/internal/models"
	"taskoraClient/utils"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestEmptyStore(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	if _, err := store.CurrentUser(); !errors.Is(err, models.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSaveReadClear(t *testing.T) {
	store := newTestStore(t)
	user := models.User{ID: 7, Name: "Aigerim", Email: "aigerim@example.com", Role: "client"}

	if err := store.Save("token-one", user); err != nil {
		t.Fatalf("save: %v", err)
	}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if token != "token-one" {
		t.Fatalf("expected token-one, got %q", token)
	}

	got, err := store.CurrentUser()
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if got.ID != user.ID || got.Email != user.Email || got.Role != user.Role {
		t.Fatalf("stored user mismatch: %+v", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	token, err = store.Token()
	if err != nil {
		t.Fatalf("token after clear: %v", err)
	}
	if token != "" {
		t.Fatalf("token survived clear: %q", token)
	}
	if _, err := store.CurrentUser(); !errors.Is(err, models.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}

func TestSaveOverwritesPreviousSession(t *testing.T) {
	store := newTestStore(t)

	if err := store.Save("old", models.User{ID: 1, Name: "Old"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save("new", models.User{ID: 2, Name: "New"}); err != nil {
		t.Fatalf("save again: %v", err)
	}

	token, _ := store.Token()
	if token != "new" {
		t.Fatalf("expected latest token, got %q", token)
	}
	user, err := store.CurrentUser()
	if err != nil {
		t.Fatalf("current user: %v", err)
	}
	if user.ID != 2 {
		t.Fatalf("expected latest user, got %+v", user)
	}
}

func TestExpired(t *testing.T) {
	manager, err := utils.NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	now := time.Now()

	fresh, err := manager.NewJWT(1, "client", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	stale, err := manager.NewJWT(1, "client", -time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid", fresh, false},
		{"past exp", stale, true},
		{"empty", "", true},
		{"garbage", "not-a-jwt", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Expired(tc.token, now); got != tc.want {
				t.Fatalf("Expired = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestUserID(t *testing.T) {
	manager, err := utils.NewManager("test-signing-key")
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	token, err := manager.NewJWT(42, "freelancer", time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	id, err := UserID(token)
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42, got %d", id)
	}

	if _, err := UserID("not-a-jwt"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
