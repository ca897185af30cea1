package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/notify"
	"github.com/mihret/tmscli/internal/session"
	"github.com/mihret/tmscli/internal/tms"
	"github.com/mihret/tmscli/internal/workflow"
)

// loadClient wires config, persisted session, and gateway for a command run.
// The session may be nil; authenticated endpoints then fail fast with a
// pointer to 'tmscli login'.
func loadClient() (*config.Config, *session.Session, *gateway.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	sess, err := session.NewStore(config.ConfigDir()).Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load session: %w", err)
	}
	return cfg, sess, gateway.New(cfg.API, sess), nil
}

func requireSession(sess *session.Session) error {
	if !sess.Authenticated() {
		return fmt.Errorf("not logged in; run 'tmscli login' first")
	}
	return nil
}

// runAction drives one workflow action end to end: load the collection,
// locate the record, and submit the intent through the panel so role and
// status gating apply exactly as in the dashboard.
func runAction[T workflow.Record](ctx context.Context, cfg *config.Config, sess *session.Session, client *gateway.Client, desc workflow.Descriptor, id int, intent workflow.Intent) error {
	if err := requireSession(sess); err != nil {
		return err
	}

	feed := notify.NewFeed(time.Duration(cfg.UI.ToastSeconds) * time.Second)
	disp := workflow.NewDispatcher[T](client, desc, cfg.UI.RefreshStrategy, feed)
	pager := workflow.NewPager[T](cfg.UI.PageSize)
	if err := disp.Refresh(ctx, pager); err != nil {
		return err
	}

	var target T
	found := false
	for _, rec := range pager.Records() {
		if rec.RecordID() == id {
			target = rec
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("request %d not found in %s", id, strings.ToLower(desc.Title))
	}

	panel := workflow.NewPanel(disp, sess.Role)
	panel.Select(target)
	updated, err := panel.Submit(ctx, pager, intent)
	if err != nil {
		return err
	}

	for _, notice := range feed.Active() {
		if notice.Kind == notify.Success {
			fmt.Println(notice.Message)
		}
	}
	fmt.Printf("Request #%d is now %s.\n", updated.RecordID(), updated.RecordStatus())
	return nil
}

// intentKind maps the --action flag to a workflow intent.
func intentKind(action string) (workflow.IntentKind, error) {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case "approve":
		return workflow.IntentApprove, nil
	case "forward":
		return workflow.IntentForward, nil
	case "reject":
		return workflow.IntentReject, nil
	default:
		return "", fmt.Errorf("unknown action %q (approve|forward|reject)", action)
	}
}

var (
	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#8E4EC6")).
				Bold(true).
				MarginRight(1)

	tableCellStyle = lipgloss.NewStyle().
			MarginRight(1)

	tableSepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginRight(1)

	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DAA520"))
	forwardedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4682B4"))
	approvedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
	rejectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD5C5C"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func statusCell(status tms.Status) string {
	switch status {
	case tms.StatusPending:
		return pendingStyle.Render(string(status))
	case tms.StatusForwarded:
		return forwardedStyle.Render(string(status))
	case tms.StatusApproved:
		return approvedStyle.Render(string(status))
	case tms.StatusRejected:
		return rejectedStyle.Render(string(status))
	default:
		return mutedStyle.Render(string(status))
	}
}

// printTable renders rows under purple headers, cron-list style. A nil
// styler leaves the cell unstyled.
func printTable(columns []string, widths []int, rows [][]string, stylers []func(string) string) {
	headers := make([]string, len(columns))
	seps := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = tableHeaderStyle.Width(widths[i]).Render(col)
		seps[i] = tableSepStyle.Render(strings.Repeat("─", widths[i]))
	}
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, headers...))
	fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, seps...))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, value := range row {
			if len(value) > widths[i] {
				value = value[:widths[i]-1] + "…"
			}
			if stylers != nil && stylers[i] != nil {
				cells[i] = tableCellStyle.Width(widths[i]).Render(stylers[i](value))
			} else {
				cells[i] = tableCellStyle.Width(widths[i]).Render(value)
			}
		}
		fmt.Println(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
}
