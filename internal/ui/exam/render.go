package exam

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	coreexam "github.com/dpsrawaljnv/mcq-test-application/internal/exam"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/question"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// View renders the current attempt state.
func (m Model) View() string {
	switch m.attempt.Phase() {
	case coreexam.PhaseLoading:
		if m.loadFailed {
			return m.stylize("Failed to load test: "+m.errMsg, errorStyle) +
				"\n" + m.stylize("Press q to quit.", faintStyle) + "\n"
		}
		return m.spinner.View() + " Fetching test...\n"
	case coreexam.PhaseDone:
		return m.renderDone()
	default:
		return m.renderActive()
	}
}

// renderActive draws the progress header, every question card, and the
// footer for the active, submitting, and failed phases.
func (m Model) renderActive() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	session := m.attempt.Session()
	for i, q := range session.Questions {
		b.WriteString(question.Render(q, question.RenderOptions{
			Mode:     question.ModeAnswer,
			Selected: m.attempt.Answer(q.ID),
			Focused:  i == m.cursorQ,
			Cursor:   m.cursorOpt,
			Index:    i,
			Total:    len(session.Questions),
			NoColor:  m.noColor,
		}))
		b.WriteString("\n")
	}

	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the answered-questions bar and the countdown clock.
func (m Model) renderHeader() string {
	answered, total := m.attempt.Answered(), m.attempt.Total()
	ratio := 0.0
	if total > 0 {
		ratio = float64(answered) / float64(total)
	}
	line := fmt.Sprintf("Test %d | %s", m.attempt.Session().TestID, FormatClock(m.attempt.TimeLeft()))
	counts := fmt.Sprintf("%d of %d questions answered", answered, total)
	return m.stylize(line, headerStyle) + "\n" +
		m.progress.ViewAs(ratio) + "\n" +
		m.stylize(counts, faintStyle)
}

func (m Model) renderFooter() string {
	var lines []string
	switch m.attempt.Phase() {
	case coreexam.PhaseSubmitting:
		lines = append(lines, m.stylize("Submitting...", headerStyle))
	case coreexam.PhaseFailed:
		lines = append(lines, m.stylize("Submission failed: "+m.errMsg, errorStyle))
		lines = append(lines, m.stylize("Press r to retry, q to quit.", faintStyle))
	default:
		help := "up/down question, left/right or 1-9 choose, s submit, q quit"
		if !m.attempt.CanSubmit() {
			help = "up/down question, left/right or 1-9 choose, q quit (answer everything to submit)"
		}
		lines = append(lines, m.stylize(help, faintStyle))
		if m.errMsg != "" {
			lines = append(lines, m.stylize(m.errMsg, errorStyle))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDone() string {
	if m.ack == nil {
		return m.stylize("Test submitted.", okStyle) + "\n"
	}
	return m.stylize(fmt.Sprintf("Test submitted: %d/%d", m.ack.Score, m.ack.TotalQuestions), okStyle) + "\n"
}

func (m Model) stylize(text string, style lipgloss.Style) string {
	if m.noColor {
		return text
	}
	return style.Render(text)
}
