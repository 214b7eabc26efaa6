// Package review renders a completed test result for the terminal.
package review

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/ui/question"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	midStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// percentageStyle picks the band color for a result percentage.
func percentageStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 80:
		return goodStyle
	case pct >= 60:
		return midStyle
	default:
		return badStyle
	}
}

// Render formats the full result: the score summary followed by every
// question with the student's answer and the correct option marked.
func Render(result api.TestResult, noColor bool) string {
	var b strings.Builder

	title := fmt.Sprintf("Result for %s (%s, section %s)", result.StudentName, result.RollNo, result.Section)
	score := fmt.Sprintf("Score: %d/%d  %.1f%%", result.Score, result.TotalQuestions, result.Percentage)
	if !noColor {
		title = titleStyle.Render(title)
		score = percentageStyle(result.Percentage).Render(score)
	}
	b.WriteString(title + "\n")
	b.WriteString(score + "\n")
	if !result.CompletedAt.IsZero() {
		completed := "Completed " + result.CompletedAt.Format("2006-01-02 15:04")
		if !noColor {
			completed = faintStyle.Render(completed)
		}
		b.WriteString(completed + "\n")
	}
	b.WriteString("\n")

	for i, q := range result.Questions {
		selected, ok := result.UserAnswers[q.ID]
		if !ok {
			selected = -1
		}
		b.WriteString(question.Render(q, question.RenderOptions{
			Mode:     question.ModeReview,
			Selected: selected,
			Index:    i,
			Total:    len(result.Questions),
			NoColor:  noColor,
		}))
		b.WriteString("\n")
	}
	return b.String()
}
