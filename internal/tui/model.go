// Package tui implements the interactive dashboard: one tab per workflow the
// viewer's role participates in, a toast feed, and key-driven actions over
// the shared workflow engine.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/notify"
	"github.com/mihret/tmscli/internal/session"
	"github.com/mihret/tmscli/internal/tms"
	"github.com/mihret/tmscli/internal/workflow"
)

// listLoadedMsg delivers the result of one list fetch. gen identifies the
// refresh that issued it; stale generations are dropped.
type listLoadedMsg struct {
	tab   int
	gen   int
	apply func()
	err   error
}

// actionDoneMsg delivers the result of one dispatched action.
type actionDoneMsg struct {
	tab   int
	apply func()
	err   error
}

type tickMsg time.Time

// Model is the dashboard root. It owns tab switching, toast rendering, and
// message routing; each tab handles its own keys and state.
type Model struct {
	sess   *session.Session
	feed   *notify.Feed
	tabs   []tabView
	active int
	width  int
	height int
}

// New builds the dashboard for an authenticated session. The visible tabs
// depend on the viewer's role.
func New(cfg *config.Config, sess *session.Session, gw workflow.Gateway, feed *notify.Feed) Model {
	kinds := tabsFor(sess.Role)
	tabs := make([]tabView, 0, len(kinds))
	for i, kind := range kinds {
		switch kind {
		case tms.KindHighCost:
			tabs = append(tabs, newHighCostScreen(i, gw, cfg, feed, sess.Role))
		case tms.KindRefueling:
			tabs = append(tabs, newRefuelingScreen(i, gw, cfg, feed, sess.Role))
		case tms.KindMaintenance:
			tabs = append(tabs, newMaintenanceScreen(i, gw, cfg, feed, sess.Role))
		default:
			tabs = append(tabs, newTransportScreen(i, gw, cfg, feed, sess.Role))
		}
	}
	return Model{sess: sess, feed: feed, tabs: tabs}
}

// tabsFor maps a role to the workflows it participates in, mirroring the
// per-role dashboards of the web client.
func tabsFor(role tms.Role) []tms.Kind {
	switch role {
	case tms.RoleEmployee:
		return []tms.Kind{tms.KindTransport, tms.KindHighCost}
	case tms.RoleDriver:
		return []tms.Kind{tms.KindRefueling, tms.KindMaintenance}
	case tms.RoleDepartmentManager, tms.RoleFinanceManager:
		return []tms.Kind{tms.KindTransport}
	default:
		return []tms.Kind{tms.KindTransport, tms.KindHighCost, tms.KindRefueling, tms.KindMaintenance}
	}
}

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(m.tabs)+1)
	for _, tab := range m.tabs {
		cmds = append(cmds, tab.refresh())
	}
	cmds = append(cmds, tickCmd())
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		// re-render so expired toasts drop off
		return m, tickCmd()

	case listLoadedMsg:
		if msg.tab >= 0 && msg.tab < len(m.tabs) {
			return m, m.tabs[msg.tab].handleMsg(msg)
		}
		return m, nil

	case actionDoneMsg:
		if msg.tab >= 0 && msg.tab < len(m.tabs) {
			return m, m.tabs[msg.tab].handleMsg(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		for _, tab := range m.tabs {
			if cmd := tab.handleMsg(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		active := m.tabs[m.active]
		if active.capturesInput() {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, active.handleKey(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % len(m.tabs)
			return m, nil
		case "shift+tab":
			m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
			return m, nil
		}
		return m, active.handleKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString("  " + titleStyle.Render("Transport Management") + " " +
		footerStyle.Render(m.sess.Username+" · "+m.sess.Role.String()) + "\n\n")

	names := make([]string, len(m.tabs))
	for i, tab := range m.tabs {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		names[i] = style.Render(tab.title())
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, names...) + "\n\n")

	b.WriteString(m.tabs[m.active].view(m.width))

	if notices := m.feed.Active(); len(notices) > 0 {
		b.WriteString("\n")
		for _, notice := range notices {
			b.WriteString("  " + toastStyleFor(notice.Kind).Render(notice.Message) + "\n")
		}
	}
	return b.String()
}

func toastStyleFor(kind notify.Kind) lipgloss.Style {
	switch kind {
	case notify.Success:
		return successToastStyle
	case notify.Error:
		return errorToastStyle
	default:
		return infoToastStyle
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
