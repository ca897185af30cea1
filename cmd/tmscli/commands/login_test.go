package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/session"
	"github.com/mihret/tmscli/internal/tms"
)

func TestLoginStoresSessionWithRole(t *testing.T) {
	var loginBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/token/":
			if err := json.NewDecoder(r.Body).Decode(&loginBody); err != nil {
				t.Errorf("decode login body: %v", err)
			}
			io.WriteString(w, `{"access":"acc-token","refresh":"ref-token"}`)
		case "/api/users/me/":
			io.WriteString(w, `{"id":42,"full_name":"Abebe Bekele","email":"abebe@example.com","role":4}`)
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	setupEnv(t, server.URL)

	out := captureOutput(t, func() {
		cmd := NewLoginCmd()
		cmd.SetArgs([]string{"--email", "abebe@example.com", "--password", "secret"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("login execute: %v", err)
		}
	})

	if loginBody["email"] != "abebe@example.com" || loginBody["password"] != "secret" {
		t.Fatalf("unexpected login payload: %v", loginBody)
	}
	if !strings.Contains(out, "Signed in as abebe@example.com") {
		t.Fatalf("expected sign-in confirmation, got: %s", out)
	}

	sess, err := session.NewStore(config.ConfigDir()).Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess == nil {
		t.Fatal("expected a persisted session")
	}
	if sess.Role != tms.RoleTransportManager {
		t.Fatalf("role = %s, want Transport Manager", sess.Role)
	}
	if sess.UserID != 42 {
		t.Fatalf("user id = %d, want 42", sess.UserID)
	}
	if sess.AccessToken != "acc-token" {
		t.Fatalf("access token = %q", sess.AccessToken)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"detail":"No active account found with the given credentials"}`)
	}))
	defer server.Close()

	setupEnv(t, server.URL)

	cmd := NewLoginCmd()
	cmd.SetArgs([]string{"--email", "abebe@example.com", "--password", "wrong"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected login failure")
	}
	if !strings.Contains(err.Error(), "login failed") {
		t.Fatalf("unexpected error: %v", err)
	}

	sess, err2 := session.NewStore(config.ConfigDir()).Load()
	if err2 != nil {
		t.Fatalf("load session: %v", err2)
	}
	if sess != nil {
		t.Fatal("failed login must not persist a session")
	}
}

func TestLogoutRemovesSession(t *testing.T) {
	setupEnv(t, "")
	saveTestSession(t, tms.RoleEmployee)

	out := captureOutput(t, func() {
		cmd := NewLogoutCmd()
		if err := cmd.Execute(); err != nil {
			t.Fatalf("logout execute: %v", err)
		}
	})
	if !strings.Contains(out, "Logged out.") {
		t.Fatalf("expected logout confirmation, got: %s", out)
	}

	sess, err := session.NewStore(config.ConfigDir()).Load()
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	if sess != nil {
		t.Fatal("expected session removed")
	}
}

func TestWhoamiPrintsProfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/users/me/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		io.WriteString(w, `{"id":42,"full_name":"Abebe Bekele","email":"abebe@example.com","role":2,"department":"Finance"}`)
	}))
	defer server.Close()

	setupEnv(t, server.URL)
	saveTestSession(t, tms.RoleDepartmentManager)

	out := captureOutput(t, func() {
		cmd := NewWhoamiCmd()
		if err := cmd.Execute(); err != nil {
			t.Fatalf("whoami execute: %v", err)
		}
	})

	if !strings.Contains(out, "Abebe Bekele") {
		t.Fatalf("expected full name, got: %s", out)
	}
	if !strings.Contains(out, "Department Manager") {
		t.Fatalf("expected role name, got: %s", out)
	}
	if !strings.Contains(out, "Finance") {
		t.Fatalf("expected department, got: %s", out)
	}
}
