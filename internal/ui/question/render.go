// Package question renders a single-choice question for the terminal,
// in both answering and post-submission review modes.
package question

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// Mode selects answering or review rendering.
type Mode int

const (
	// ModeAnswer renders a mutable selection control.
	ModeAnswer Mode = iota
	// ModeReview renders an immutable control with correctness marks.
	ModeReview
)

// RenderOptions configures one question card.
type RenderOptions struct {
	Mode     Mode
	Selected int // recorded option index, -1 when none
	Focused  bool
	Cursor   int // option under the cursor, answer mode only
	Index    int // zero-based position within the session
	Total    int
	NoColor  bool
}

var (
	promptStyle  = lipgloss.NewStyle().Bold(true)
	mediaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Render draws a question card: numbered prompt, optional media line, and
// the options in the requested mode.
func Render(q api.Question, opts RenderOptions) string {
	var b strings.Builder
	b.WriteString(renderPrompt(q, opts))
	b.WriteString("\n")
	if media := renderMedia(q); media != "" {
		b.WriteString(stylize(media, opts.NoColor, mediaStyle))
		b.WriteString("\n")
	}
	for i, option := range q.Options {
		b.WriteString(renderOption(q, i, option, opts))
		b.WriteString("\n")
	}
	return b.String()
}

func renderPrompt(q api.Question, opts RenderOptions) string {
	prompt := q.QuestionText
	if opts.Total > 0 {
		prompt = fmt.Sprintf("Q%d/%d  %s", opts.Index+1, opts.Total, q.QuestionText)
	}
	if opts.Mode == ModeAnswer && opts.Focused {
		return stylize(prompt, opts.NoColor, focusStyle.Bold(true))
	}
	return stylize(prompt, opts.NoColor, promptStyle)
}

// renderMedia returns a one-line pointer to the question's media, if any.
func renderMedia(q api.Question) string {
	if q.MediaURL == "" || q.QuestionType == api.QuestionTypeText {
		return ""
	}
	return fmt.Sprintf("  [%s] %s", q.QuestionType, q.MediaURL)
}

func renderOption(q api.Question, index int, option string, opts RenderOptions) string {
	mark := "( )"
	if index == opts.Selected {
		mark = "(x)"
	}
	line := fmt.Sprintf("  %s %d. %s", mark, index+1, option)

	if opts.Mode == ModeReview {
		switch {
		case q.CorrectOption != nil && index == *q.CorrectOption:
			return stylize(line+"  ✓", opts.NoColor, correctStyle)
		case index == opts.Selected:
			return stylize(line+"  ✗", opts.NoColor, wrongStyle)
		default:
			return line
		}
	}

	if opts.Focused && index == opts.Cursor {
		return stylize("> "+strings.TrimPrefix(line, "  "), opts.NoColor, focusStyle)
	}
	return line
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, style lipgloss.Style) string {
	if noColor {
		return text
	}
	return style.Render(text)
}
