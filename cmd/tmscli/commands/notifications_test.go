package commands

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mihret/tmscli/internal/tms"
)

func TestNotificationsListUnreadOnly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[
			{"id":1,"title":"Request approved","message":"Your trip to Adama was approved.","is_read":false,"created_at":"2026-08-20T09:00:00Z"},
			{"id":2,"title":"Old notice","message":"","is_read":true,"created_at":"2026-08-01T09:00:00Z"}
		]}`)
	}))
	defer server.Close()

	setupEnv(t, server.URL)
	saveTestSession(t, tms.RoleEmployee)

	out := captureOutput(t, func() {
		cmd := NewNotificationsCmd()
		cmd.SetArgs([]string{"list", "--unread"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("notifications list execute: %v", err)
		}
	})

	if !strings.Contains(out, "Request approved") {
		t.Fatalf("expected unread notification, got: %s", out)
	}
	if strings.Contains(out, "Old notice") {
		t.Fatalf("read notification shown with --unread, got: %s", out)
	}
}

func TestNotificationsUnreadCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transport-requests/notifications/unread-count/" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		io.WriteString(w, `{"count":3}`)
	}))
	defer server.Close()

	setupEnv(t, server.URL)
	saveTestSession(t, tms.RoleEmployee)

	out := captureOutput(t, func() {
		cmd := NewNotificationsCmd()
		cmd.SetArgs([]string{"unread-count"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unread-count execute: %v", err)
		}
	})
	if !strings.Contains(out, "3 unread") {
		t.Fatalf("expected count, got: %s", out)
	}
}

func TestNotificationsMarkAllRead(t *testing.T) {
	marked := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/transport-requests/notifications/mark-all-read/" && r.Method == http.MethodPost {
			marked = true
		}
		io.WriteString(w, `{}`)
	}))
	defer server.Close()

	setupEnv(t, server.URL)
	saveTestSession(t, tms.RoleEmployee)

	out := captureOutput(t, func() {
		cmd := NewNotificationsCmd()
		cmd.SetArgs([]string{"mark-all-read"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("mark-all-read execute: %v", err)
		}
	})
	if !marked {
		t.Fatal("mark-all-read endpoint not called")
	}
	if !strings.Contains(out, "marked as read") {
		t.Fatalf("expected confirmation, got: %s", out)
	}
}
