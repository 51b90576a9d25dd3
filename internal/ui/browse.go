// Package ui provides the optional interactive task browser.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/yawmak/internal/store"
	"github.com/nibzard/yawmak/internal/todo"
)

// ErrNotTTY is returned when the browser is started without a terminal.
var ErrNotTTY = errors.New("browse requires a TTY")

// TaskStore is the part of the store the browser needs.
type TaskStore interface {
	Tasks(ctx context.Context, f store.Filter) ([]todo.Task, error)
	MarkDone(ctx context.Context, id int64) error
	MarkUndone(ctx context.Context, id int64) error
}

// BrowseOption configures the browser.
type BrowseOption func(*browseModel)

// WithAll starts the browser showing completed tasks too.
func WithAll(all bool) BrowseOption {
	return func(m *browseModel) {
		m.showAll = all
	}
}

// Browse runs the interactive task list until the user quits.
func Browse(ctx context.Context, s TaskStore, opts ...BrowseOption) error {
	if !IsTTY(os.Stdout) {
		return ErrNotTTY
	}
	model := newBrowseModel(ctx, s, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

type browseModel struct {
	ctx      context.Context
	store    TaskStore
	tasks    []todo.Task
	cursor   int
	showAll  bool
	showHelp bool
	err      error
	status   string
}

func newBrowseModel(ctx context.Context, s TaskStore, opts ...BrowseOption) *browseModel {
	m := &browseModel{ctx: ctx, store: s}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *browseModel) Init() tea.Cmd {
	m.refresh()
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ", "enter", "x":
		m.toggle()
	case "a":
		m.showAll = !m.showAll
		m.cursor = 0
		m.refresh()
	case "r", "f5":
		m.refresh()
	case "h", "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *browseModel) toggle() {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return
	}
	t := m.tasks[m.cursor]
	var err error
	if t.Done {
		err = m.store.MarkUndone(m.ctx, t.ID)
		m.status = fmt.Sprintf("Task %d reopened", t.ID)
	} else {
		err = m.store.MarkDone(m.ctx, t.ID)
		m.status = fmt.Sprintf("Task %d done", t.ID)
	}
	if err != nil {
		m.err = err
		m.status = ""
		return
	}
	m.refresh()
}

func (m *browseModel) refresh() {
	f := store.Pending()
	if m.showAll {
		f = store.Filter{}
	}
	tasks, err := m.store.Tasks(m.ctx, f)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.tasks = tasks
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
)

func (m *browseModel) View() string {
	var b strings.Builder
	writeTitle(&b, m.showAll)

	if m.showHelp {
		writeHelp(&b)
		writeFooter(&b)
		return b.String()
	}
	if m.err != nil {
		b.WriteString("Error: " + m.err.Error() + "\n\n")
	}
	if len(m.tasks) == 0 {
		b.WriteString("  No tasks.\n\n")
	}
	for i, t := range m.tasks {
		line := formatTask(t)
		switch {
		case i == m.cursor:
			line = selectedStyle.Render(line)
		case t.Done:
			line = doneStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n")
	writeFooter(&b)
	return b.String()
}

func writeTitle(b *strings.Builder, all bool) {
	title := "yawmak: pending tasks"
	if all {
		title = "yawmak: all tasks"
	}
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  q, esc       Quit\n")
	b.WriteString("  up/k down/j  Move\n")
	b.WriteString("  space, x     Toggle done\n")
	b.WriteString("  a            Toggle all/pending\n")
	b.WriteString("  r, F5        Refresh\n")
	b.WriteString("  h, ?         Toggle this help screen\n\n")
}

func writeFooter(b *strings.Builder) {
	b.WriteString("Press h for help | space to toggle | a for all | q to quit\n")
}

func formatTask(t todo.Task) string {
	mark := " "
	if t.Done {
		mark = "x"
	}
	line := fmt.Sprintf("  [%s] %3d (P%d) %s", mark, t.ID, t.Priority, t.Name)
	if t.Category != "" {
		line += "  @" + t.Category
	}
	for _, tag := range t.Tags {
		line += " #" + tag
	}
	if t.DueDate != nil {
		line += "  due " + todo.FormatDate(t.DueDate)
	}
	return line
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
