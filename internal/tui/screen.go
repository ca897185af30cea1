package tui

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/mihret/tmscli/internal/config"
	"github.com/mihret/tmscli/internal/gateway"
	"github.com/mihret/tmscli/internal/notify"
	"github.com/mihret/tmscli/internal/tms"
	"github.com/mihret/tmscli/internal/workflow"
)

type mode int

const (
	modeList mode = iota
	modeDetail
	modeReject
	modeEstimate
	modeApprove
)

type column struct {
	title string
	width int
}

// tabView is the non-generic surface the dashboard model drives; each
// workflow instantiation provides one.
type tabView interface {
	title() string
	refresh() tea.Cmd
	handleKey(msg tea.KeyMsg) tea.Cmd
	handleMsg(msg tea.Msg) tea.Cmd
	view(width int) string
	capturesInput() bool
}

// screen is one workflow tab: a paged table over the collection, a detail
// panel for the selected record, and the forms needed to act on it.
//
// Commands never mutate the live pager. Each fetch or dispatch works on a
// shadow copy; the resulting message carries an apply closure that the update
// loop runs, so collection state only changes on the program goroutine.
type screen[T workflow.Record] struct {
	tab  int
	desc workflow.Descriptor

	pager *workflow.Pager[T]
	panel *workflow.Panel[T]
	disp  *workflow.Dispatcher[T]

	columns   []column
	statusCol int
	rowFn     func(T) []string
	detailFn  func(T) [][2]string

	mode     mode
	cursor   int
	gen      int
	loading  bool
	loadErr  string
	inFlight bool
	formErr  string

	reason   textarea.Model
	vehicle  textinput.Model
	distance textinput.Model
	fuel     textinput.Model
	focus    int

	spin spinner.Model
}

func newScreen[T workflow.Record](
	tab int,
	gw workflow.Gateway,
	desc workflow.Descriptor,
	cfg *config.Config,
	feed *notify.Feed,
	role tms.Role,
	columns []column,
	rowFn func(T) []string,
	detailFn func(T) [][2]string,
) *screen[T] {
	disp := workflow.NewDispatcher[T](gw, desc, cfg.UI.RefreshStrategy, feed)

	reason := textarea.New()
	reason.Placeholder = "Why is this request rejected?"
	reason.SetHeight(3)
	reason.CharLimit = 500

	vehicle := textinput.New()
	vehicle.Placeholder = "vehicle id"
	vehicle.CharLimit = 8
	vehicle.Width = 24

	distance := textinput.New()
	distance.Placeholder = "distance in km"
	distance.CharLimit = 12
	distance.Width = 24

	fuel := textinput.New()
	fuel.Placeholder = "price per liter"
	fuel.CharLimit = 12
	fuel.Width = 24

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#8E4EC6"))

	statusCol := -1
	for i, col := range columns {
		if col.title == "STATUS" {
			statusCol = i
		}
	}

	return &screen[T]{
		tab:       tab,
		desc:      desc,
		pager:     workflow.NewPager[T](cfg.UI.PageSize),
		panel:     workflow.NewPanel(disp, role),
		disp:      disp,
		columns:   columns,
		statusCol: statusCol,
		rowFn:     rowFn,
		detailFn:  detailFn,
		reason:    reason,
		vehicle:   vehicle,
		distance:  distance,
		fuel:      fuel,
		spin:      spin,
	}
}

func (s *screen[T]) title() string { return s.desc.Title }

func (s *screen[T]) capturesInput() bool {
	return s.mode == modeReject || s.mode == modeEstimate || s.mode == modeApprove
}

// refresh reloads the collection. Results from a superseded refresh are
// discarded by generation number, never applied out of order.
func (s *screen[T]) refresh() tea.Cmd {
	s.gen++
	gen := s.gen
	s.loading = true
	s.loadErr = ""
	shadow := s.shadow()
	fetch := func() tea.Msg {
		err := s.disp.Refresh(context.Background(), shadow)
		return listLoadedMsg{tab: s.tab, gen: gen, err: err, apply: func() { s.adopt(shadow) }}
	}
	return tea.Batch(s.spin.Tick, fetch)
}

func (s *screen[T]) shadow() *workflow.Pager[T] {
	shadow := workflow.NewPager[T](s.pager.PageSize())
	shadow.SetRecords(slices.Clone(s.pager.Records()))
	shadow.GoToPage(s.pager.Page())
	return shadow
}

func (s *screen[T]) adopt(shadow *workflow.Pager[T]) {
	s.pager.SetRecords(shadow.Records())
	s.pager.GoToPage(shadow.Page())
	s.clampCursor()
}

func (s *screen[T]) clampCursor() {
	if n := len(s.pager.PageSlice()); s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *screen[T]) handleMsg(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case listLoadedMsg:
		if m.gen != s.gen {
			return nil
		}
		s.loading = false
		if m.err != nil {
			s.loadErr = loadErrorText(m.err)
			return nil
		}
		m.apply()
	case actionDoneMsg:
		s.inFlight = false
		if m.err != nil {
			if workflow.IsValidation(m.err) {
				s.formErr = m.err.Error()
				return nil
			}
			s.mode = modeDetail
			return nil
		}
		m.apply()
		s.formErr = ""
		s.mode = modeDetail
	case spinner.TickMsg:
		if s.loading || s.inFlight {
			var cmd tea.Cmd
			s.spin, cmd = s.spin.Update(m)
			return cmd
		}
	}
	return nil
}

func (s *screen[T]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch s.mode {
	case modeDetail:
		return s.detailKey(msg)
	case modeReject:
		return s.rejectKey(msg)
	case modeEstimate:
		return s.estimateKey(msg)
	case modeApprove:
		return s.approveKey(msg)
	default:
		return s.listKey(msg)
	}
}

func (s *screen[T]) listKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.pager.PageSlice())-1 {
			s.cursor++
		}
	case "left", "h":
		s.pager.PrevPage()
		s.cursor = 0
	case "right", "l":
		s.pager.NextPage()
		s.cursor = 0
	case "g":
		s.pager.GoToPage(1)
		s.cursor = 0
	case "G":
		s.pager.GoToPage(s.pager.TotalPages())
		s.cursor = 0
	case "r":
		return s.refresh()
	case "enter":
		slice := s.pager.PageSlice()
		if s.cursor < len(slice) {
			s.panel.Select(slice[s.cursor])
			s.formErr = ""
			s.mode = modeDetail
		}
	}
	return nil
}

func (s *screen[T]) detailKey(msg tea.KeyMsg) tea.Cmd {
	if s.inFlight {
		return nil
	}
	switch msg.String() {
	case "esc", "backspace":
		s.panel.Close()
		s.mode = modeList
	case "a":
		if !s.available(workflow.IntentApprove) {
			return nil
		}
		// Approval that assigns a vehicle needs the id before dispatch.
		if s.desc.ApproveVehicle {
			s.vehicle.Reset()
			s.formErr = ""
			s.mode = modeApprove
			return s.vehicle.Focus()
		}
		return s.submit(workflow.Intent{Kind: workflow.IntentApprove})
	case "f":
		return s.submitIfAvailable(workflow.Intent{Kind: workflow.IntentForward})
	case "v":
		return s.submitIfAvailable(workflow.Intent{Kind: workflow.IntentAssignVehicle})
	case "c":
		return s.submitIfAvailable(workflow.Intent{Kind: workflow.IntentComplete})
	case "x":
		if s.available(workflow.IntentReject) {
			s.reason.Reset()
			s.formErr = ""
			s.mode = modeReject
			return s.reason.Focus()
		}
	case "e":
		if s.available(workflow.IntentEstimate) {
			s.vehicle.Reset()
			s.distance.Reset()
			s.fuel.Reset()
			s.formErr = ""
			s.mode = modeEstimate
			s.focusEstimate(0)
		}
	}
	return nil
}

func (s *screen[T]) rejectKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.formErr = ""
		s.mode = modeDetail
		return nil
	case "ctrl+s":
		return s.submit(workflow.Intent{
			Kind:             workflow.IntentReject,
			RejectionMessage: s.reason.Value(),
		})
	}
	var cmd tea.Cmd
	s.reason, cmd = s.reason.Update(msg)
	return cmd
}

func (s *screen[T]) estimateKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.formErr = ""
		s.mode = modeDetail
		return nil
	case "tab", "down":
		s.focusEstimate(s.focus + 1)
		return nil
	case "shift+tab", "up":
		s.focusEstimate(s.focus - 1)
		return nil
	case "enter":
		return s.submit(s.estimateIntent())
	}
	inputs := s.estimateInputs()
	updated, cmd := inputs[s.focus].Update(msg)
	*inputs[s.focus] = updated
	return cmd
}

func (s *screen[T]) approveKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.formErr = ""
		s.mode = modeDetail
		return nil
	case "enter":
		intent := workflow.Intent{Kind: workflow.IntentApprove}
		intent.VehicleID, _ = strconv.Atoi(strings.TrimSpace(s.vehicle.Value()))
		return s.submit(intent)
	}
	var cmd tea.Cmd
	s.vehicle, cmd = s.vehicle.Update(msg)
	return cmd
}

// estimateInputs lists the form fields in tab order. Workflows whose estimate
// runs against the requester's own car skip the vehicle field.
func (s *screen[T]) estimateInputs() []*textinput.Model {
	if s.desc.EstimateVehicle {
		return []*textinput.Model{&s.vehicle, &s.distance, &s.fuel}
	}
	return []*textinput.Model{&s.distance, &s.fuel}
}

func (s *screen[T]) focusEstimate(n int) {
	inputs := s.estimateInputs()
	s.focus = ((n % len(inputs)) + len(inputs)) % len(inputs)
	for i, in := range inputs {
		if i == s.focus {
			in.Focus()
		} else {
			in.Blur()
		}
	}
}

// estimateIntent parses the form. Unparsable numbers stay zero; validation
// turns that into the required-inputs message.
func (s *screen[T]) estimateIntent() workflow.Intent {
	intent := workflow.Intent{Kind: workflow.IntentEstimate}
	if s.desc.EstimateVehicle {
		intent.VehicleID, _ = strconv.Atoi(strings.TrimSpace(s.vehicle.Value()))
	}
	if km, err := decimal.NewFromString(strings.TrimSpace(s.distance.Value())); err == nil {
		intent.EstimatedKM = km
	}
	if price, err := decimal.NewFromString(strings.TrimSpace(s.fuel.Value())); err == nil {
		intent.FuelPricePerL = price
	}
	return intent
}

func (s *screen[T]) available(kind workflow.IntentKind) bool {
	return slices.Contains(s.panel.AvailableActions(), kind)
}

func (s *screen[T]) submitIfAvailable(intent workflow.Intent) tea.Cmd {
	if !s.available(intent.Kind) {
		return nil
	}
	return s.submit(intent)
}

func (s *screen[T]) submit(intent workflow.Intent) tea.Cmd {
	if s.inFlight || s.disp.Busy() {
		return nil
	}
	sel, ok := s.panel.Selected()
	if !ok {
		return nil
	}
	if err := s.desc.ValidateIntent(intent); err != nil {
		s.formErr = err.Error()
		return nil
	}
	s.inFlight = true
	s.formErr = ""
	shadow := s.shadow()
	dispatch := func() tea.Msg {
		updated, err := s.disp.Dispatch(context.Background(), shadow, sel, intent)
		return actionDoneMsg{tab: s.tab, err: err, apply: func() {
			s.adopt(shadow)
			s.panel.Select(updated)
		}}
	}
	return tea.Batch(s.spin.Tick, dispatch)
}

func (s *screen[T]) view(width int) string {
	switch s.mode {
	case modeDetail:
		return s.detailView()
	case modeReject:
		return s.rejectView()
	case modeEstimate:
		return s.estimateView()
	case modeApprove:
		return s.approveView()
	default:
		return s.listView(width)
	}
}

func (s *screen[T]) listView(width int) string {
	var b strings.Builder

	headers := make([]string, len(s.columns))
	seps := make([]string, len(s.columns))
	for i, col := range s.columns {
		headers[i] = colHeaderStyle.Width(col.width).Render(col.title)
		seps[i] = separatorStyle.Render(strings.Repeat("─", col.width))
	}
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, headers...) + "\n")
	b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, seps...) + "\n")

	slice := s.pager.PageSlice()
	for i, rec := range slice {
		values := s.rowFn(rec)
		cells := make([]string, len(values))
		for j, value := range values {
			w := s.columns[j].width
			style := cellStyle
			if i == s.cursor {
				style = cursorRowStyle.MarginRight(1)
			} else if j == s.statusCol {
				style = statusStyle(tms.Status(value)).MarginRight(1)
			}
			cells[j] = style.Width(w).Render(truncate(value, w))
		}
		prefix := "  "
		if i == s.cursor {
			prefix = "❯ "
		}
		b.WriteString(prefix + lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}

	b.WriteString("\n")
	switch {
	case s.loading:
		b.WriteString("  " + s.spin.View() + " loading…\n")
	case s.loadErr != "":
		b.WriteString("  " + errorStyle.Render(s.loadErr) + "\n")
	case s.pager.Len() == 0:
		b.WriteString("  " + footerStyle.Render("No requests.") + "\n")
	default:
		b.WriteString("  " + footerStyle.Render(fmt.Sprintf(
			"Page %d of %d · %d requests", s.pager.Page(), s.pager.TotalPages(), s.pager.Len())) + "\n")
	}
	b.WriteString("  " + helpStyle.Render("↑/↓ select · ←/→ page · enter open · r refresh · tab switch · q quit") + "\n")
	return b.String()
}

func (s *screen[T]) detailView() string {
	sel, ok := s.panel.Selected()
	if !ok {
		return s.listView(0)
	}

	var b strings.Builder
	b.WriteString("  " + titleStyle.Render(fmt.Sprintf("%s · #%d", s.desc.Title, sel.RecordID())) + "\n\n")
	for _, pair := range s.detailFn(sel) {
		value := pair[1]
		if pair[0] == "Status" {
			value = statusStyle(tms.Status(value)).Render(value)
		}
		b.WriteString("  " + labelStyle.Render(pair[0]) + value + "\n")
	}

	b.WriteString("\n")
	if s.inFlight {
		b.WriteString("  " + s.spin.View() + " submitting…\n")
	} else {
		b.WriteString("  " + helpStyle.Render(s.actionHints()) + "\n")
	}
	if s.formErr != "" {
		b.WriteString("  " + errorStyle.Render(s.formErr) + "\n")
	}
	return b.String()
}

func (s *screen[T]) actionHints() string {
	hints := []string{"esc back"}
	for _, kind := range s.panel.AvailableActions() {
		switch kind {
		case workflow.IntentApprove:
			hints = append(hints, "a approve")
		case workflow.IntentForward:
			hints = append(hints, "f forward")
		case workflow.IntentReject:
			hints = append(hints, "x reject")
		case workflow.IntentEstimate:
			hints = append(hints, "e estimate")
		case workflow.IntentAssignVehicle:
			hints = append(hints, "v assign vehicle")
		case workflow.IntentComplete:
			hints = append(hints, "c complete trip")
		}
	}
	return strings.Join(hints, " · ")
}

func (s *screen[T]) rejectView() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Reject request") + "\n\n")
	b.WriteString(s.reason.View() + "\n\n")
	if s.inFlight {
		b.WriteString("  " + s.spin.View() + " submitting…\n")
	}
	if s.formErr != "" {
		b.WriteString("  " + errorStyle.Render(s.formErr) + "\n")
	}
	b.WriteString("  " + helpStyle.Render("ctrl+s submit · esc cancel") + "\n")
	return b.String()
}

func (s *screen[T]) estimateView() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Estimate cost") + "\n\n")
	if s.desc.EstimateVehicle {
		b.WriteString("  " + labelStyle.Render("Vehicle") + s.vehicle.View() + "\n")
	}
	b.WriteString("  " + labelStyle.Render("Distance (km)") + s.distance.View() + "\n")
	b.WriteString("  " + labelStyle.Render("Fuel price / liter") + s.fuel.View() + "\n\n")
	if s.inFlight {
		b.WriteString("  " + s.spin.View() + " submitting…\n")
	}
	if s.formErr != "" {
		b.WriteString("  " + errorStyle.Render(s.formErr) + "\n")
	}
	b.WriteString("  " + helpStyle.Render("tab next field · enter submit · esc cancel") + "\n")
	return b.String()
}

func (s *screen[T]) approveView() string {
	var b strings.Builder
	b.WriteString("  " + titleStyle.Render("Approve request") + "\n\n")
	b.WriteString("  " + labelStyle.Render("Vehicle") + s.vehicle.View() + "\n\n")
	if s.inFlight {
		b.WriteString("  " + s.spin.View() + " submitting…\n")
	}
	if s.formErr != "" {
		b.WriteString("  " + errorStyle.Render(s.formErr) + "\n")
	}
	b.WriteString("  " + helpStyle.Render("enter approve · esc cancel") + "\n")
	return b.String()
}

func loadErrorText(err error) string {
	switch gateway.KindOf(err) {
	case gateway.Unauthenticated:
		return "Session expired. Run `tmscli login` again."
	case gateway.Forbidden:
		return "You do not have access to this list."
	case gateway.NetworkFailure:
		return "Cannot reach the server. Press r to retry."
	default:
		return "Failed to load requests. Press r to retry."
	}
}

func truncate(s string, w int) string {
	runes := []rune(s)
	if len(runes) <= w {
		return s
	}
	if w <= 1 {
		return string(runes[:w])
	}
	return string(runes[:w-1]) + "…"
}
