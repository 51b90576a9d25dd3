// Package todo defines the task model shared by the store, the display
// layer and the CLI.
package todo

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nibzard/yawmak/internal/utils"
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// DefaultCategory is attached to new tasks that do not name one.
const DefaultCategory = "General"

var (
	// ErrInvalidDate is returned when a date is not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, use YYYY-MM-DD")
	// ErrEmptyName is returned when a task has no name.
	ErrEmptyName = errors.New("task name is empty")
)

// Task represents a single todo item.
type Task struct {
	ID             int64      `json:"id"`
	Name           string     `json:"task"`
	Category       string     `json:"category,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	Done           bool       `json:"done"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletionDate *time.Time `json:"completion_date,omitempty"`
	Priority       int        `json:"priority"`
}

// Category is a named grouping a task can be filed under.
type Category struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Tag is a free-form label attached to tasks.
type Tag struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// NewTask builds a pending task. An empty category falls back to
// DefaultCategory and an empty due date means no due date.
func NewTask(name, category, dueDate string, tags []string, priority int) (Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Task{}, ErrEmptyName
	}
	due, err := ParseDate(dueDate)
	if err != nil {
		return Task{}, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	return Task{
		Name:     name,
		Category: category,
		Tags:     SplitTags(tags),
		DueDate:  due,
		Priority: priority,
	}, nil
}

// Complete marks the task done on the given day.
func (t *Task) Complete(on time.Time) {
	day := truncateDay(on)
	t.Done = true
	t.CompletionDate = &day
}

// Reopen marks the task as not done and clears the completion date.
func (t *Task) Reopen() {
	t.Done = false
	t.CompletionDate = nil
}

// Normalize enforces the done/completion date invariant on data that did
// not come through Complete or Reopen, such as imported rows. A done task
// without a completion date is stamped with today.
func (t *Task) Normalize(today time.Time) {
	switch {
	case !t.Done:
		t.Reopen()
	case t.CompletionDate == nil:
		t.Complete(today)
	}
	t.Tags = SplitTags(t.Tags)
	t.Category = strings.TrimSpace(t.Category)
}

// Validate checks the fields a task must carry before it is stored.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Path: "task", Err: ErrEmptyName}
	}
	if t.Done != (t.CompletionDate != nil) {
		return &ValidationError{
			Path: "completion_date",
			Err:  fmt.Errorf("must be set if and only if done is true"),
		}
	}
	return nil
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // field or record location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ParseDate parses a YYYY-MM-DD date. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &d, nil
}

// FormatDate renders a date as YYYY-MM-DD, or "" for nil.
func FormatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(DateLayout)
}

// SplitTags flattens comma-separated tag values, trims them, drops empty
// entries and removes duplicates while keeping the first occurrence.
func SplitTags(values []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range values {
		for _, tag := range utils.SplitAndTrim(v, ",") {
			if seen[tag] {
				continue
			}
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
