package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mihret/tmscli/internal/tms"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestNew_DerivesClaimsFromToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	access := signedToken(t, jwt.MapClaims{
		"user_id": float64(42),
		"exp":     exp.Unix(),
	})

	sess, err := New(access, "refresh-token")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if sess.UserID != 42 {
		t.Fatalf("user id = %d, want 42", sess.UserID)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Fatalf("expires_at = %s, want %s", sess.ExpiresAt, exp)
	}
	if !sess.Authenticated() {
		t.Fatal("expected session to be authenticated")
	}
}

func TestNew_RequiresAccessToken(t *testing.T) {
	if _, err := New("   ", ""); err == nil {
		t.Fatal("expected error for blank access token")
	}
}

func TestNew_OpaqueTokenStillUsable(t *testing.T) {
	sess, err := New("not-a-jwt", "")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if sess.IsExpired() {
		t.Fatal("token without exp claim must not count as expired")
	}
	if !sess.Authenticated() {
		t.Fatal("expected opaque token session to be usable")
	}
}

func TestSession_Expiry(t *testing.T) {
	access := signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	sess, err := New(access, "")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if !sess.IsExpired() {
		t.Fatal("expected session to be expired")
	}
	if sess.Authenticated() {
		t.Fatal("expired session must not authenticate")
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	sess, err := New(signedToken(t, jwt.MapClaims{
		"user_id": float64(7),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}), "refresh")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	sess.Username = "abebe@example.com"
	sess.Role = tms.RoleTransportManager

	if err := store.Save(sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected a session")
	}
	if loaded.Username != "abebe@example.com" || loaded.Role != tms.RoleTransportManager {
		t.Fatalf("unexpected session: %+v", loaded)
	}
}

func TestStore_MissingFileMeansLoggedOut(t *testing.T) {
	store := NewStore(t.TempDir())
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected nil session, got %+v", sess)
	}
}

func TestStore_ExpiredSessionDropped(t *testing.T) {
	store := NewStore(t.TempDir())
	sess, err := New(signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}), "")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected expired session to load as logged out")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(t.TempDir())
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete on missing file: %v", err)
	}

	sess, _ := New("opaque-token", "")
	if err := store.Save(sess); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if err := store.Delete(); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded != nil {
		t.Fatal("expected session gone after delete")
	}
}
