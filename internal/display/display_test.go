package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nibzard/yawmak/internal/todo"
)

func TestTasks(t *testing.T) {
	due, _ := todo.ParseDate("2024-12-31")
	done, _ := todo.ParseDate("2024-06-01")
	tasks := []todo.Task{
		{ID: 1, Name: "Write report", Category: "Work", Tags: []string{"q3", "urgent"}, DueDate: due, Priority: 2},
		{ID: 2, Name: "Buy milk", Category: "Errands", Done: true, CompletionDate: done},
	}

	tests := []struct {
		name           string
		showCompletion bool
		want           []string
		notWant        []string
	}{
		{
			name:    "pending columns",
			want:    []string{"ID", "Name", "Category", "Tags", "Due Date", "Done", "Priority", "Write report", "q3, urgent", "2024-12-31", "true", "false"},
			notWant: []string{"Completion Date", "2024-06-01"},
		},
		{
			name:           "with completion date",
			showCompletion: true,
			want:           []string{"Completion Date", "2024-06-01"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Tasks(&buf, tasks, tt.showCompletion); err != nil {
				t.Fatalf("Tasks() error = %v", err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestTasksEmptyKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := Tasks(&buf, nil, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Priority") {
		t.Errorf("empty table lost its header:\n%s", buf.String())
	}
}

func TestNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Names(&buf, "Category", []string{"Home", "Work"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, s := range []string{"Category", "Home", "Work"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestSummaries(t *testing.T) {
	var buf bytes.Buffer
	Added(&buf, 3, "x")
	Imported(&buf, "in.csv", 2, 1, 4)
	Exported(&buf, "out.json", 1)
	want := "Added task 3: x\nImported in.csv: 2 inserted, 1 updated, 4 skipped\nExported 1 task to out.json\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Rows(&buf, []string{"Key", "Value"}, [][]string{{"db_path", "/tmp/db"}}); err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"Key", "Value", "db_path", "/tmp/db"} {
		if !strings.Contains(buf.String(), s) {
			t.Errorf("output missing %q:\n%s", s, buf.String())
		}
	}
}
