package commands

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/session"
	"github.com/mihret/tmscli/internal/tms"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w
	fn()
	_ = w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()

	return buf.String()
}

// setupEnv points HOME at a temp dir and writes a config targeting baseURL.
func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)
	t.Setenv("USERPROFILE", tmpDir)

	cfg := config.DefaultConfig()
	if baseURL != "" {
		cfg.API.BaseURL = baseURL + "/"
	}
	if err := config.Save(cfg); err != nil {
		t.Fatalf("save config: %v", err)
	}
}

func saveTestSession(t *testing.T, role tms.Role) {
	t.Helper()
	sess, err := session.New("opaque-test-token", "")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	sess.Username = "abebe@example.com"
	sess.Role = role
	if err := session.NewStore(config.ConfigDir()).Save(sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
}
