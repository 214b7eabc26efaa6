package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"time"

	btable "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

type toppersLoadedMsg struct {
	classID int
	resp    api.ToppersResponse
}

type toppersFailedMsg struct{ err error }

// PerformanceModel is the interactive class performance browser. Selecting
// a class row fetches and shows its leaderboard.
type PerformanceModel struct {
	client  *api.Client
	perf    []api.ClassPerformance
	table   btable.Model
	toppers map[int]api.ToppersResponse
	loading bool
	errMsg  string
	timeout time.Duration
	noColor bool
}

// NewPerformanceModel builds the browser over an already fetched
// performance snapshot.
func NewPerformanceModel(client *api.Client, perf []api.ClassPerformance, timeout time.Duration, noColor bool) PerformanceModel {
	columns := []btable.Column{
		{Title: "Class", Width: 20},
		{Title: "Students", Width: 10},
		{Title: "Average", Width: 10},
	}
	rows := make([]btable.Row, len(perf))
	for i, p := range perf {
		rows[i] = btable.Row{p.ClassName, strconv.Itoa(p.TotalStudents), fmt.Sprintf("%.1f", p.AverageScore)}
	}
	t := btable.New(
		btable.WithColumns(columns),
		btable.WithRows(rows),
		btable.WithFocused(true),
		btable.WithHeight(min(len(perf)+1, 12)),
	)
	if noColor {
		plain := btable.DefaultStyles()
		plain.Selected = lipgloss.NewStyle()
		t.SetStyles(plain)
	}
	return PerformanceModel{
		client:  client,
		perf:    perf,
		table:   t,
		toppers: make(map[int]api.ToppersResponse),
		timeout: timeout,
		noColor: noColor,
	}
}

// Init implements tea.Model.
func (m PerformanceModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m PerformanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			if m.loading {
				return m, nil
			}
			p, ok := m.selected()
			if !ok {
				return m, nil
			}
			if _, cached := m.toppers[p.ClassID]; cached {
				return m, nil
			}
			m.loading = true
			m.errMsg = ""
			return m, m.loadToppers(p.ClassID)
		}
	case toppersLoadedMsg:
		m.loading = false
		m.toppers[msg.classID] = msg.resp
		return m, nil
	case toppersFailedMsg:
		m.loading = false
		m.errMsg = msg.err.Error()
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m PerformanceModel) View() string {
	out := m.table.View() + "\n"
	if p, ok := m.selected(); ok {
		if resp, cached := m.toppers[p.ClassID]; cached {
			out += "\n" + RenderToppers(resp, m.noColor)
		}
	}
	switch {
	case m.loading:
		out += "\nLoading toppers...\n"
	case m.errMsg != "":
		out += "\n" + m.errMsg + "\n"
	}
	out += "\nup/down select class, enter show toppers, q quit\n"
	return out
}

// selected returns the performance row under the cursor.
func (m PerformanceModel) selected() (api.ClassPerformance, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.perf) {
		return api.ClassPerformance{}, false
	}
	return m.perf[i], true
}

func (m PerformanceModel) loadToppers(classID int) tea.Cmd {
	client, timeout := m.client, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		resp, err := client.Toppers(ctx, classID)
		if err != nil {
			return toppersFailedMsg{err: err}
		}
		return toppersLoadedMsg{classID: classID, resp: resp}
	}
}
