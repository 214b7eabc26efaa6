// Package dashboard renders admin and teacher views of the platform.
package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dpsrawaljnv/mcq-test-application/internal/api"
	"github.com/dpsrawaljnv/mcq-test-application/internal/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// newTable builds a bordered table with the shared look.
func newTable(noColor bool, headers ...string) *table.Table {
	t := table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
	if !noColor {
		t = t.BorderStyle(borderStyle).StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	}
	return t
}

// RenderOverview summarizes platform-wide performance for the admin view.
func RenderOverview(perf []api.ClassPerformance, noColor bool) string {
	summary := fmt.Sprintf("%d classes | %d students | %d toppers | average score %.1f",
		len(perf), stats.TotalStudents(perf), stats.TopperCount(perf), stats.AverageScore(perf))
	t := newTable(noColor, "Class", "Students", "Average", "Toppers")
	for _, p := range perf {
		t = t.Row(p.ClassName,
			strconv.Itoa(p.TotalStudents),
			fmt.Sprintf("%.1f", p.AverageScore),
			strconv.Itoa(len(p.TopPerformers)))
	}
	return summary + "\n" + t.Render() + "\n"
}

// RenderTeachers lists teacher accounts with their assignments.
func RenderTeachers(teachers []api.Teacher, noColor bool) string {
	t := newTable(noColor, "ID", "Username", "Classes", "Subjects")
	for _, tc := range teachers {
		t = t.Row(strconv.Itoa(tc.ID), tc.Username,
			joinClassNames(tc.Classes), joinSubjectNames(tc.Subjects))
	}
	return t.Render() + "\n"
}

// RenderClasses lists classes.
func RenderClasses(classes []api.Class, noColor bool) string {
	t := newTable(noColor, "ID", "Name")
	for _, c := range classes {
		t = t.Row(strconv.Itoa(c.ID), c.Name)
	}
	return t.Render() + "\n"
}

// RenderSubjects lists subjects.
func RenderSubjects(subjects []api.Subject, noColor bool) string {
	t := newTable(noColor, "ID", "Name")
	for _, s := range subjects {
		t = t.Row(strconv.Itoa(s.ID), s.Name)
	}
	return t.Render() + "\n"
}

// RenderTests lists scheduled tests. Class ids are resolved to names when
// the caller can supply the class list.
func RenderTests(tests []api.Test, classes []api.Class, noColor bool) string {
	t := newTable(noColor, "ID", "Class", "Subject", "Date", "Active")
	for _, ts := range tests {
		active := "no"
		if ts.IsActive {
			active = "yes"
		}
		class := strconv.Itoa(ts.ClassID)
		if name, ok := stats.ClassName(classes, ts.ClassID); ok {
			class = name
		}
		t = t.Row(strconv.Itoa(ts.ID), class,
			strconv.Itoa(ts.SubjectID), ts.TestDate.Format("2006-01-02"), active)
	}
	return t.Render() + "\n"
}

// RenderQuestions lists a test's questions for the teacher view.
func RenderQuestions(questions []api.Question, noColor bool) string {
	t := newTable(noColor, "ID", "Type", "Question", "Options", "Correct")
	for _, q := range questions {
		correct := ""
		if q.CorrectOption != nil {
			correct = strconv.Itoa(*q.CorrectOption + 1)
		}
		t = t.Row(strconv.Itoa(q.ID), q.QuestionType, q.QuestionText,
			strconv.Itoa(len(q.Options)), correct)
	}
	return t.Render() + "\n"
}

// RenderToppers lists a class leaderboard, capped at the top three.
func RenderToppers(resp api.ToppersResponse, noColor bool) string {
	t := newTable(noColor, "Rank", "Student", "Roll no", "Score")
	for i, top := range stats.TopN(resp.Toppers, 3) {
		t = t.Row(strconv.Itoa(i+1), top.StudentName, top.RollNo, strconv.Itoa(top.Score))
	}
	return "Top performers in " + resp.ClassName + "\n" + t.Render() + "\n"
}

func joinClassNames(classes []api.Class) string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

func joinSubjectNames(subjects []api.Subject) string {
	names := make([]string, len(subjects))
	for i, s := range subjects {
		names[i] = s.Name
	}
	return strings.Join(names, ", ")
}
