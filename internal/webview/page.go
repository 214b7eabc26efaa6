// Package webview serves a shareable HTML view of a test result.
package webview

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
)

// band returns the CSS class for a result percentage.
func band(pct float64) string {
	switch {
	case pct >= 80:
		return "good"
	case pct >= 60:
		return "mid"
	default:
		return "bad"
	}
}

const pageStyle = `body{font-family:sans-serif;max-width:48rem;margin:2rem auto;padding:0 1rem}
.good{color:#16a34a}.mid{color:#ca8a04}.bad{color:#dc2626}
.question{border:1px solid #d4d4d8;border-radius:6px;padding:0.75rem;margin:0.75rem 0}
.option{padding:0.15rem 0}.correct{color:#16a34a}.wrong{color:#dc2626}
.meta{color:#71717a;font-size:0.9rem}`

// ResultPage builds the HTML document for one result.
func ResultPage(result api.TestResult) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>Test result</title><style>"+pageStyle+"</style></head><body>"); err != nil {
			return err
		}
		header := fmt.Sprintf("<h1>Result for %s</h1><p class=\"meta\">Roll no %s, section %s</p>",
			templ.EscapeString(result.StudentName),
			templ.EscapeString(result.RollNo),
			templ.EscapeString(result.Section))
		score := fmt.Sprintf("<h2 class=%q>%d/%d &mdash; %.1f%%</h2>",
			band(result.Percentage), result.Score, result.TotalQuestions, result.Percentage)
		if _, err := io.WriteString(w, header+score); err != nil {
			return err
		}
		if !result.CompletedAt.IsZero() {
			completed := fmt.Sprintf("<p class=\"meta\">Completed %s</p>",
				templ.EscapeString(result.CompletedAt.Format("2006-01-02 15:04")))
			if _, err := io.WriteString(w, completed); err != nil {
				return err
			}
		}
		for i, q := range result.Questions {
			if err := writeQuestion(w, i, q, result.UserAnswers); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body></html>")
		return err
	})
}

// writeQuestion renders one question card with the student's answer and
// the correct option marked.
func writeQuestion(w io.Writer, index int, q api.Question, answers api.AnswerSet) error {
	if _, err := fmt.Fprintf(w, "<div class=\"question\"><p><strong>Q%d.</strong> %s</p>",
		index+1, templ.EscapeString(q.QuestionText)); err != nil {
		return err
	}
	if q.MediaURL != "" {
		if _, err := fmt.Fprintf(w, "<p class=\"meta\">[%s] %s</p>",
			templ.EscapeString(q.QuestionType), templ.EscapeString(q.MediaURL)); err != nil {
			return err
		}
	}
	selected, answered := answers[q.ID]
	for i, opt := range q.Options {
		class := "option"
		marker := ""
		if q.CorrectOption != nil && i == *q.CorrectOption {
			class += " correct"
			marker = " &#10003;"
		} else if answered && i == selected {
			class += " wrong"
			marker = " &#10007;"
		}
		chosen := ""
		if answered && i == selected {
			chosen = " (your answer)"
		}
		if _, err := fmt.Fprintf(w, "<div class=%q>%d. %s%s%s</div>",
			class, i+1, templ.EscapeString(opt), marker, chosen); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "</div>")
	return err
}
