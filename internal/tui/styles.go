package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mihret/tmscli/internal/tms"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#8E4EC6")). // Purple
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8E4EC6")).
			Padding(0, 1)

	colHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8E4EC6")).
			Bold(true).
			MarginRight(1)

	cellStyle = lipgloss.NewStyle().
			MarginRight(1)

	cursorRowStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("54"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginRight(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8E4EC6")).
			Bold(true).
			Width(24)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CD5C5C")) // IndianRed

	successToastStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FAFAFA")).
				Background(lipgloss.Color("#2E8B57")). // SeaGreen
				Padding(0, 1)

	errorToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#CD5C5C")).
			Padding(0, 1)

	infoToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("61")).
			Padding(0, 1)
)

var statusColors = map[tms.Status]lipgloss.Color{
	tms.StatusPending:   lipgloss.Color("#DAA520"), // GoldenRod
	tms.StatusForwarded: lipgloss.Color("#4682B4"), // SteelBlue
	tms.StatusApproved:  lipgloss.Color("#2E8B57"), // SeaGreen
	tms.StatusRejected:  lipgloss.Color("#CD5C5C"), // IndianRed
	tms.StatusCompleted: lipgloss.Color("241"),     // Dark Gray
}

func statusStyle(status tms.Status) lipgloss.Style {
	color, ok := statusColors[status]
	if !ok {
		color = lipgloss.Color("245")
	}
	return lipgloss.NewStyle().Foreground(color)
}
