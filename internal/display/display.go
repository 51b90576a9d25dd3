// Package display renders tasks and names as terminal tables.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nibzard/yawmak/internal/todo"
)

var taskHeaders = []string{"ID", "Name", "Category", "Tags", "Due Date", "Done", "Priority"}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// Tasks writes tasks as a table. The Completion Date column is added when
// showCompletion is set. An empty slice still prints the header.
func Tasks(w io.Writer, tasks []todo.Task, showCompletion bool) error {
	headers := taskHeaders
	if showCompletion {
		headers = append(append([]string{}, taskHeaders...), "Completion Date")
	}
	t := newTable(headers...)
	for _, task := range tasks {
		t.Row(taskRow(task, showCompletion)...)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func taskRow(t todo.Task, showCompletion bool) []string {
	row := []string{
		strconv.FormatInt(t.ID, 10),
		t.Name,
		t.Category,
		strings.Join(t.Tags, ", "),
		todo.FormatDate(t.DueDate),
		strconv.FormatBool(t.Done),
		strconv.Itoa(t.Priority),
	}
	if showCompletion {
		row = append(row, todo.FormatDate(t.CompletionDate))
	}
	return row
}

// Names writes a single-column table, used for categories and tags.
func Names(w io.Writer, header string, names []string) error {
	t := newTable(header)
	for _, n := range names {
		t.Row(n)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}

// Added reports a newly stored task.
func Added(w io.Writer, id int64, name string) {
	fmt.Fprintf(w, "Added task %d: %s\n", id, name)
}

// Imported summarises an import.
func Imported(w io.Writer, path string, inserted, updated, skipped int) {
	fmt.Fprintf(w, "Imported %s: %d inserted, %d updated, %d skipped\n", path, inserted, updated, skipped)
}

// Exported summarises an export.
func Exported(w io.Writer, path string, n int) {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	fmt.Fprintf(w, "Exported %d %s to %s\n", n, noun, path)
}

// Rows writes an arbitrary table.
func Rows(w io.Writer, headers []string, rows [][]string) error {
	t := newTable(headers...)
	for _, r := range rows {
		t.Row(r...)
	}
	_, err := fmt.Fprintln(w, t.String())
	return err
}
