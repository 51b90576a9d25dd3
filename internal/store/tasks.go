package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nibzard/yawmak/internal/todo"
)

// Filter narrows Tasks. A nil Done returns every task.
type Filter struct {
	Done *bool
}

// Pending lists tasks that are not done.
func Pending() Filter {
	done := false
	return Filter{Done: &done}
}

// Completed lists tasks that are done.
func Completed() Filter {
	done := true
	return Filter{Done: &done}
}

// TaskUpdate carries a partial update. Nil fields are left untouched.
// A non-nil empty Category detaches the category; a non-empty Tags replaces
// the whole tag set.
type TaskUpdate struct {
	Name     *string
	DueDate  *time.Time
	Category *string
	Tags     []string
	Priority *int
	Undone   bool
}

// IsZero reports whether the update changes nothing.
func (u TaskUpdate) IsZero() bool {
	return u.Name == nil && u.DueDate == nil && u.Category == nil &&
		len(u.Tags) == 0 && u.Priority == nil && !u.Undone
}

const selectTasks = `
	SELECT t.id, t.task, t.done, t.due_date, t.completion_date, t.priority,
	       min(c.name) AS category,
	       string_agg(tg.name, ',' ORDER BY tg.name) AS tags
	FROM todos t
	LEFT JOIN todo_categories tc ON tc.todo_id = t.id
	LEFT JOIN categories c ON c.id = tc.category_id
	LEFT JOIN todo_tags tt ON tt.todo_id = t.id
	LEFT JOIN tags tg ON tg.id = tt.tag_id
`

const groupTasks = `
	GROUP BY t.id, t.task, t.done, t.due_date, t.completion_date, t.priority
	ORDER BY t.id
`

type taskRow struct {
	ID             int64          `db:"id"`
	Task           string         `db:"task"`
	Done           bool           `db:"done"`
	DueDate        sql.NullTime   `db:"due_date"`
	CompletionDate sql.NullTime   `db:"completion_date"`
	Priority       int            `db:"priority"`
	Category       sql.NullString `db:"category"`
	Tags           sql.NullString `db:"tags"`
}

func (r taskRow) toTask() todo.Task {
	t := todo.Task{
		ID:       r.ID,
		Name:     r.Task,
		Done:     r.Done,
		Priority: r.Priority,
		Category: r.Category.String,
	}
	if r.DueDate.Valid {
		d := dateOnly(r.DueDate.Time)
		t.DueDate = &d
	}
	if r.CompletionDate.Valid {
		d := dateOnly(r.CompletionDate.Time)
		t.CompletionDate = &d
	}
	if r.Tags.Valid {
		t.Tags = strings.Split(r.Tags.String, ",")
	}
	return t
}

// AddTask stores a new task and attaches its category and tags, creating
// them when they do not exist yet. It returns the assigned id.
func (s *Store) AddTask(ctx context.Context, t todo.Task) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTaskInvalid, err)
	}
	var id int64
	err := s.withTx(ctx, "add task", func(tx *sqlx.Tx) error {
		var err error
		id, err = insertTask(ctx, tx, t, 0)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Debug("task added", "id", id, "category", t.Category, "tags", len(t.Tags))
	return id, nil
}

// Tasks returns the tasks matching f ordered by id.
func (s *Store) Tasks(ctx context.Context, f Filter) ([]todo.Task, error) {
	query := selectTasks
	var args []any
	if f.Done != nil {
		query += " WHERE t.done = ?"
		args = append(args, *f.Done)
	}
	query += groupTasks

	var rows []taskRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, args...); err != nil {
		return nil, wrap("list tasks", err)
	}
	tasks := make([]todo.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, r.toTask())
	}
	return tasks, nil
}

// Task returns a single task.
func (s *Store) Task(ctx context.Context, id int64) (todo.Task, error) {
	query := selectTasks + " WHERE t.id = ?" + groupTasks
	var rows []taskRow
	if err := sqlx.SelectContext(ctx, s.db, &rows, query, id); err != nil {
		return todo.Task{}, wrap("get task", err)
	}
	if len(rows) == 0 {
		return todo.Task{}, fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	return rows[0].toTask(), nil
}

// MarkDone sets done and stamps today's date as the completion date.
func (s *Store) MarkDone(ctx context.Context, id int64) error {
	const q = `UPDATE todos SET done = true, completion_date = CAST(? AS DATE) WHERE id = ?`
	today := dateOnly(s.now())
	return s.execTask(ctx, "mark done", q, id, dateArg(&today), id)
}

// MarkUndone clears done and the completion date.
func (s *Store) MarkUndone(ctx context.Context, id int64) error {
	const q = `UPDATE todos SET done = false, completion_date = NULL WHERE id = ?`
	return s.execTask(ctx, "mark undone", q, id, id)
}

// execTask runs a single-row update on the task with the given id.
func (s *Store) execTask(ctx context.Context, op, query string, id int64, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return wrap(op, err)
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	s.log.Debug(op, "id", id)
	return nil
}

// UpdateTask applies a partial update to the task with the given id.
func (s *Store) UpdateTask(ctx context.Context, id int64, u TaskUpdate) error {
	var (
		sets []string
		args []any
	)
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return fmt.Errorf("%w: %w", ErrTaskInvalid, todo.ErrEmptyName)
		}
		sets = append(sets, "task = ?")
		args = append(args, name)
	}
	if u.DueDate != nil {
		sets = append(sets, "due_date = CAST(? AS DATE)")
		args = append(args, dateArg(u.DueDate))
	}
	if u.Priority != nil {
		sets = append(sets, "priority = ?")
		args = append(args, *u.Priority)
	}
	if u.Undone {
		sets = append(sets, "done = false", "completion_date = NULL")
	}

	return s.withTx(ctx, "update task", func(tx *sqlx.Tx) error {
		if err := requireTask(ctx, tx, id); err != nil {
			return err
		}
		if len(sets) > 0 {
			query := "UPDATE todos SET " + strings.Join(sets, ", ") + " WHERE id = ?"
			if _, err := tx.ExecContext(ctx, query, append(args, id)...); err != nil {
				return err
			}
		}
		if u.Category != nil {
			if err := replaceCategory(ctx, tx, id, strings.TrimSpace(*u.Category)); err != nil {
				return err
			}
		}
		if tags := todo.SplitTags(u.Tags); len(tags) > 0 {
			if err := replaceTags(ctx, tx, id, tags); err != nil {
				return err
			}
		}
		s.log.Debug("task updated", "id", id, "fields", len(sets))
		return nil
	})
}

// insertTask writes t with the given id, or the next free id when id is 0.
func insertTask(ctx context.Context, tx *sqlx.Tx, t todo.Task, id int64) (int64, error) {
	if id == 0 {
		var err error
		if id, err = nextID(ctx, tx, tableTodos); err != nil {
			return 0, err
		}
	}
	const q = `
		INSERT INTO todos (id, task, done, due_date, completion_date, priority)
		VALUES (?, ?, ?, CAST(? AS DATE), CAST(? AS DATE), ?)
	`
	if _, err := tx.ExecContext(ctx, q, id, t.Name, t.Done, dateArg(t.DueDate), dateArg(t.CompletionDate), t.Priority); err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	if err := attach(ctx, tx, id, t.Category, t.Tags); err != nil {
		return 0, err
	}
	return id, nil
}

// overwriteTask replaces every field of an existing task, including its
// category and tags.
func overwriteTask(ctx context.Context, tx *sqlx.Tx, t todo.Task) error {
	const q = `
		UPDATE todos
		SET task = ?, done = ?, due_date = CAST(? AS DATE), completion_date = CAST(? AS DATE), priority = ?
		WHERE id = ?
	`
	if _, err := tx.ExecContext(ctx, q, t.Name, t.Done, dateArg(t.DueDate), dateArg(t.CompletionDate), t.Priority, t.ID); err != nil {
		return fmt.Errorf("replace task %d: %w", t.ID, err)
	}
	if err := replaceCategory(ctx, tx, t.ID, t.Category); err != nil {
		return err
	}
	return replaceTags(ctx, tx, t.ID, t.Tags)
}

func attach(ctx context.Context, tx *sqlx.Tx, id int64, category string, tags []string) error {
	if category != "" {
		if err := categories.link(ctx, tx, id, category); err != nil {
			return err
		}
	}
	for _, tag := range tags {
		if err := tagSet.link(ctx, tx, id, tag); err != nil {
			return err
		}
	}
	return nil
}

func replaceCategory(ctx context.Context, tx *sqlx.Tx, id int64, category string) error {
	if err := categories.unlinkAll(ctx, tx, id); err != nil {
		return err
	}
	if category == "" {
		return nil
	}
	return categories.link(ctx, tx, id, category)
}

func replaceTags(ctx context.Context, tx *sqlx.Tx, id int64, tags []string) error {
	if err := tagSet.unlinkAll(ctx, tx, id); err != nil {
		return err
	}
	for _, tag := range tags {
		if err := tagSet.link(ctx, tx, id, tag); err != nil {
			return err
		}
	}
	return nil
}

func taskExists(ctx context.Context, q sqlx.QueryerContext, id int64) (bool, error) {
	var n int64
	if err := sqlx.GetContext(ctx, q, &n, `SELECT count(*) FROM todos WHERE id = ?`, id); err != nil {
		return false, fmt.Errorf("check task %d: %w", id, err)
	}
	return n > 0, nil
}

func requireTask(ctx context.Context, q sqlx.QueryerContext, id int64) error {
	ok, err := taskExists(ctx, q, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: id %d", ErrTaskNotFound, id)
	}
	return nil
}

// dateArg renders a date parameter for CAST(? AS DATE).
func dateArg(d *time.Time) any {
	if d == nil {
		return nil
	}
	return d.Format(todo.DateLayout)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// errNoRows reports whether err is the "no rows" sentinel.
func errNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
