package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Ariel-quanyu/spacegreen/internal/engine"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	user       *engine.AuthUser
	activities []engine.Activity
	impact     engine.Impact

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	user       *engine.AuthUser
	activities []engine.Activity
	impact     engine.Impact
	err        error
}

type completedMsg struct {
	id  string
	act *engine.Activity
	err error
}

type deletedMsg struct {
	id  string
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		user, err := m.svc.CurrentUser(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		activities, err := m.svc.Activities(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		impact, err := m.svc.MonthlyImpact(m.ctx, time.Now().UTC())
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{user: user, activities: activities, impact: impact}
	}
}

func (m boardModel) completeCmd(id string) tea.Cmd {
	return func() tea.Msg {
		done := engine.StatusDone
		act, err := m.svc.UpdateActivity(m.ctx, id, engine.ActivityPatch{Status: &done})
		return completedMsg{id: id, act: act, err: err}
	}
}

func (m boardModel) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: m.svc.DeleteActivity(m.ctx, id)}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.activities = msg.activities
		m.impact = msg.impact
		if m.selected >= len(m.activities) {
			m.selected = len(m.activities) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case completedMsg:
		if msg.err != nil {
			m.lastLog = "Complete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Done: %s", msg.act.Title)
		return m, m.loadCmd()
	case deletedMsg:
		if msg.err != nil {
			m.lastLog = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = "Deleted."
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.activities)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			a := m.selectedActivity()
			if a == nil {
				return m, nil
			}
			if a.Status == engine.StatusDone {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Completing %s…", a.Title)
			return m, m.completeCmd(a.ID)
		case "x", "d":
			a := m.selectedActivity()
			if a == nil {
				return m, nil
			}
			m.lastLog = fmt.Sprintf("Deleting %s…", a.Title)
			return m, m.deleteCmd(a.ID)
		}
	}
	return m, nil
}

func (m boardModel) selectedActivity() *engine.Activity {
	if m.selected < 0 || m.selected >= len(m.activities) {
		return nil
	}
	return &m.activities[m.selected]
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m boardModel) renderHeader() string {
	who := "anonymous"
	if m.user != nil {
		who = m.user.Email
	}
	return fmt.Sprintf("SpaceGreen | %s | This month: %.1f kg CO₂ · $%.0f · %.0f L water",
		who, m.impact.CO2Kg, m.impact.MoneyAUD, m.impact.WaterL)
}

func (m boardModel) renderList() string {
	if m.loading {
		return "Loading…"
	}
	if len(m.activities) == 0 {
		return "(no activities — add one with `gs add`)"
	}

	var out []string
	out = append(out, "Activities")
	for i, a := range m.activities {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		marker := "[ ]"
		if a.Status == engine.StatusDone {
			marker = "[x]"
		}
		detail := string(a.SourceType)
		if a.TipID != "" {
			detail = fmt.Sprintf("tip ×%d", a.FrequencyPerMonth)
		}
		out = append(out, fmt.Sprintf("%s%s %s (%s, %s)", cursor, marker, a.Title, a.DateISO, detail))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	keys := "j/k: move · c/space: complete · x: delete · r: refresh · q: quit"
	return "\n" + keys + "\n" + m.lastLog
}
