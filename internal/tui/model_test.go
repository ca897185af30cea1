package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/notify"
	"github.com/mihret/tmscli/internal/session"
	"github.com/mihret/tmscli/internal/tms"
)

func testModel(t *testing.T, role tms.Role) (Model, *notify.Feed) {
	t.Helper()
	sess, err := session.New("opaque-test-token", "")
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	sess.Username = "abebe@example.com"
	sess.Role = role

	gw := &fakeGateway{listBody: "[]"}
	feed := notify.NewFeed(time.Minute)
	return New(config.DefaultConfig(), sess, gw, feed), feed
}

func TestTabsForRole(t *testing.T) {
	cases := []struct {
		role tms.Role
		want int
	}{
		{tms.RoleEmployee, 2},
		{tms.RoleDriver, 2},
		{tms.RoleDepartmentManager, 1},
		{tms.RoleFinanceManager, 1},
		{tms.RoleTransportManager, 4},
		{tms.RoleCEO, 4},
		{tms.RoleGeneralService, 4},
		{tms.RoleBudgetManager, 4},
	}
	for _, tc := range cases {
		if got := len(tabsFor(tc.role)); got != tc.want {
			t.Fatalf("%s: %d tabs, want %d", tc.role, got, tc.want)
		}
	}
}

func TestModel_TabSwitching(t *testing.T) {
	m, _ := testModel(t, tms.RoleTransportManager)
	if len(m.tabs) != 4 {
		t.Fatalf("tabs = %d, want 4", len(m.tabs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if m.active != 1 {
		t.Fatalf("active = %d, want 1", m.active)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.active != 0 {
		t.Fatalf("active = %d, want 0", m.active)
	}

	// wraps around backwards
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(Model)
	if m.active != 3 {
		t.Fatalf("active = %d, want 3", m.active)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := testModel(t, tms.RoleCEO)

	_, cmd := m.Update(keyRune('q'))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

func TestModel_ViewShowsTabsAndToasts(t *testing.T) {
	m, feed := testModel(t, tms.RoleTransportManager)
	feed.Push(notify.Success, "Request forwarded successfully!")

	out := m.View()
	if !strings.Contains(out, "Transport Requests") {
		t.Fatal("view missing the transport tab")
	}
	if !strings.Contains(out, "Refueling Requests") {
		t.Fatal("view missing the refueling tab")
	}
	if !strings.Contains(out, "Request forwarded successfully!") {
		t.Fatal("view missing the toast")
	}
	if !strings.Contains(out, "abebe@example.com") {
		t.Fatal("view missing the signed-in user")
	}
}
