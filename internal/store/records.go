package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/yawmak/internal/todo"
)

// Interchange columns shared by every file format.
const (
	colID             = "id"
	colTask           = "task"
	colDone           = "done"
	colDueDate        = "due_date"
	colCompletionDate = "completion_date"
	colPriority       = "priority"
	colCategory       = "category"
	colTags           = "tags"
)

var columns = []string{colID, colTask, colDone, colDueDate, colCompletionDate, colPriority, colCategory, colTags}

// recordToTask converts one staged row into a task. Values come either from
// DuckDB readers (typed) or from spreadsheet cells (strings), so every field
// accepts both shapes. A zero ID means the row carried none.
func recordToTask(index int, rec map[string]any) (todo.Task, error) {
	row := make(map[string]any, len(rec))
	for k, v := range rec {
		row[strings.ToLower(strings.TrimSpace(k))] = v
	}

	fail := func(col string, err error) (todo.Task, error) {
		return todo.Task{}, &todo.ValidationError{Path: fmt.Sprintf("record %d.%s", index+1, col), Err: err}
	}

	var (
		t   todo.Task
		err error
	)
	if t.ID, err = toInt64(row[colID]); err != nil {
		return fail(colID, err)
	}
	if t.ID < 0 {
		t.ID = 0
	}
	t.Name = strings.TrimSpace(toString(row[colTask]))
	if t.Name == "" {
		return fail(colTask, todo.ErrEmptyName)
	}
	if t.Done, err = toBool(row[colDone]); err != nil {
		return fail(colDone, err)
	}
	if t.DueDate, err = toDate(row[colDueDate]); err != nil {
		return fail(colDueDate, err)
	}
	if t.CompletionDate, err = toDate(row[colCompletionDate]); err != nil {
		return fail(colCompletionDate, err)
	}
	priority, err := toInt64(row[colPriority])
	if err != nil {
		return fail(colPriority, err)
	}
	t.Priority = int(priority)
	t.Category = toString(row[colCategory])
	t.Tags = toTags(row[colTags])
	return t, nil
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case nil:
		return 0, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	case float32:
		return floatToInt(float64(x))
	case float64:
		return floatToInt(x)
	case string, []byte:
		s := strings.TrimSpace(toString(x))
		if s == "" {
			return 0, nil
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", s)
		}
		return floatToInt(f)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

func floatToInt(f float64) (int64, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("not a whole number: %v", f)
	}
	return int64(f), nil
}

func toBool(v any) (bool, error) {
	switch x := v.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	case string, []byte:
		s := strings.TrimSpace(toString(x))
		if s == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("not a boolean: %q", s)
		}
		return b, nil
	default:
		n, err := toInt64(v)
		if err != nil {
			return false, fmt.Errorf("not a boolean: %v", v)
		}
		return n != 0, nil
	}
}

func toDate(v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		d := dateOnly(x)
		return &d, nil
	case string, []byte:
		s := strings.TrimSpace(toString(x))
		// Timestamps such as "2024-12-31 00:00:00" keep only their date part.
		if len(s) > len(todo.DateLayout) && (s[len(todo.DateLayout)] == ' ' || s[len(todo.DateLayout)] == 'T') {
			s = s[:len(todo.DateLayout)]
		}
		return todo.ParseDate(s)
	default:
		return nil, fmt.Errorf("%w: %v", todo.ErrInvalidDate, v)
	}
}

func toTags(v any) []string {
	switch x := v.(type) {
	case nil:
		return nil
	case []any:
		vals := make([]string, 0, len(x))
		for _, item := range x {
			vals = append(vals, toString(item))
		}
		return todo.SplitTags(vals)
	case []string:
		return todo.SplitTags(x)
	default:
		s := strings.TrimSpace(toString(x))
		// A JSON array stored as text, e.g. ["a","b"].
		if strings.HasPrefix(s, "[") {
			var list []string
			if err := json.Unmarshal([]byte(s), &list); err == nil {
				return todo.SplitTags(list)
			}
		}
		return todo.SplitTags([]string{s})
	}
}

// taskRecord renders a task as interchange cells for spreadsheet export.
func taskRecord(t todo.Task) []any {
	return []any{
		t.ID,
		t.Name,
		t.Done,
		todo.FormatDate(t.DueDate),
		todo.FormatDate(t.CompletionDate),
		t.Priority,
		t.Category,
		strings.Join(t.Tags, ","),
	}
}
