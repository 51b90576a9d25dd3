package ui

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/yawmak/internal/store"
	"github.com/nibzard/yawmak/internal/todo"
)

type fakeStore struct {
	tasks []todo.Task
	err   error
}

func (f *fakeStore) Tasks(_ context.Context, filter store.Filter) ([]todo.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []todo.Task
	for _, t := range f.tasks {
		if filter.Done == nil || *filter.Done == t.Done {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) set(id int64, done bool) error {
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Done = done
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (f *fakeStore) MarkDone(_ context.Context, id int64) error   { return f.set(id, true) }
func (f *fakeStore) MarkUndone(_ context.Context, id int64) error { return f.set(id, false) }

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(fs *fakeStore) *browseModel {
	m := newBrowseModel(context.Background(), fs)
	m.Init()
	return m
}

func TestBrowseToggleDone(t *testing.T) {
	fs := &fakeStore{tasks: []todo.Task{{ID: 1, Name: "one"}, {ID: 2, Name: "two"}}}
	m := newTestModel(fs)

	if len(m.tasks) != 2 {
		t.Fatalf("pending tasks: got %d, want 2", len(m.tasks))
	}
	m.Update(key("down"))
	m.Update(key(" "))

	if !fs.tasks[1].Done {
		t.Error("second task should be done")
	}
	if len(m.tasks) != 1 || m.tasks[0].ID != 1 {
		t.Errorf("pending view after toggle: got %+v", m.tasks)
	}
	if m.cursor != 0 {
		t.Errorf("cursor should clamp to 0, got %d", m.cursor)
	}
}

func TestBrowseShowAllAndReopen(t *testing.T) {
	fs := &fakeStore{tasks: []todo.Task{{ID: 1, Name: "one", Done: true}, {ID: 2, Name: "two"}}}
	m := newTestModel(fs)
	if len(m.tasks) != 1 {
		t.Fatalf("pending tasks: got %d, want 1", len(m.tasks))
	}

	m.Update(key("a"))
	if !m.showAll || len(m.tasks) != 2 {
		t.Fatalf("all view: showAll=%v tasks=%d", m.showAll, len(m.tasks))
	}
	m.Update(key(" "))
	if fs.tasks[0].Done {
		t.Error("first task should be reopened")
	}
	if !strings.Contains(m.View(), "Task 1 reopened") {
		t.Errorf("status missing from view:\n%s", m.View())
	}
}

func TestBrowseCursorBounds(t *testing.T) {
	fs := &fakeStore{tasks: []todo.Task{{ID: 1, Name: "one"}}}
	m := newTestModel(fs)
	m.Update(key("up"))
	m.Update(key("down"))
	m.Update(key("down"))
	if m.cursor != 0 {
		t.Errorf("cursor: got %d, want 0", m.cursor)
	}
}

func TestBrowseQuit(t *testing.T) {
	m := newTestModel(&fakeStore{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestBrowseErrorAndHelp(t *testing.T) {
	m := newTestModel(&fakeStore{err: errors.New("db gone")})
	if !strings.Contains(m.View(), "db gone") {
		t.Errorf("error missing from view:\n%s", m.View())
	}
	m.Update(key("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Errorf("help missing from view:\n%s", m.View())
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}
