package todo

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNewTask(t *testing.T) {
	task, err := NewTask("Test Task", "Work", "2024-12-31", []string{"urgent", "important"}, 5)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}

	if task.Name != "Test Task" {
		t.Errorf("Name = %q, want %q", task.Name, "Test Task")
	}
	if task.Category != "Work" {
		t.Errorf("Category = %q, want Work", task.Category)
	}
	if !reflect.DeepEqual(task.Tags, []string{"urgent", "important"}) {
		t.Errorf("Tags = %v, want [urgent important]", task.Tags)
	}
	if task.Done {
		t.Error("new task should not be done")
	}
	if got := FormatDate(task.DueDate); got != "2024-12-31" {
		t.Errorf("DueDate = %q, want 2024-12-31", got)
	}
	if task.Priority != 5 {
		t.Errorf("Priority = %d, want 5", task.Priority)
	}
	if task.CompletionDate != nil {
		t.Error("CompletionDate should be nil")
	}
}

func TestNewTaskWithoutDueDate(t *testing.T) {
	task, err := NewTask("Test Task", "", "", nil, 0)
	if err != nil {
		t.Fatalf("NewTask() error = %v", err)
	}
	if task.DueDate != nil {
		t.Errorf("DueDate = %v, want nil", task.DueDate)
	}
	if task.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", task.Category, DefaultCategory)
	}
	if len(task.Tags) != 0 {
		t.Errorf("Tags = %v, want none", task.Tags)
	}
}

func TestNewTaskErrors(t *testing.T) {
	tests := []struct {
		name    string
		task    string
		due     string
		wantErr error
	}{
		{name: "empty name", task: "  ", wantErr: ErrEmptyName},
		{name: "bad date", task: "x", due: "31/12/2024", wantErr: ErrInvalidDate},
		{name: "impossible date", task: "x", due: "2024-02-30", wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.task, "", tt.due, nil, 0)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "single values", in: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "comma separated", in: []string{"a, b", "c"}, want: []string{"a", "b", "c"}},
		{name: "duplicates and blanks", in: []string{"a,,a", " ", "b,a"}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitTags(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitTags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCompleteAndReopen(t *testing.T) {
	task := Task{Name: "x"}
	task.Complete(time.Date(2024, 5, 6, 15, 4, 5, 0, time.Local))

	if !task.Done {
		t.Fatal("Complete() did not set Done")
	}
	if got := FormatDate(task.CompletionDate); got != "2024-05-06" {
		t.Errorf("CompletionDate = %q, want 2024-05-06", got)
	}
	if err := task.Validate(); err != nil {
		t.Errorf("Validate() after Complete error = %v", err)
	}

	task.Reopen()
	if task.Done || task.CompletionDate != nil {
		t.Errorf("Reopen() left Done=%v CompletionDate=%v", task.Done, task.CompletionDate)
	}
	if err := task.Validate(); err != nil {
		t.Errorf("Validate() after Reopen error = %v", err)
	}
}

func TestNormalize(t *testing.T) {
	today := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	done, _ := ParseDate("2023-12-01")

	tests := []struct {
		name     string
		task     Task
		wantDone string
	}{
		{name: "pending drops completion date", task: Task{Name: "a", CompletionDate: done}, wantDone: ""},
		{name: "done keeps completion date", task: Task{Name: "a", Done: true, CompletionDate: done}, wantDone: "2023-12-01"},
		{name: "done without date is stamped", task: Task{Name: "a", Done: true}, wantDone: "2024-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := tt.task
			task.Normalize(today)
			if got := FormatDate(task.CompletionDate); got != tt.wantDone {
				t.Errorf("CompletionDate = %q, want %q", got, tt.wantDone)
			}
			if err := task.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestValidateInvariant(t *testing.T) {
	task := Task{Name: "x", Done: true}
	err := task.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Validate() error = %v, want *ValidationError", err)
	}
	if ve.Path != "completion_date" {
		t.Errorf("Path = %q, want completion_date", ve.Path)
	}
}
