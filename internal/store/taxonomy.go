package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nibzard/yawmak/internal/todo"
)

// taxonomy describes a named lookup table and the junction linking it to
// todos. Categories and tags share every operation.
type taxonomy struct {
	noun     string
	table    string
	junction string
	column   string

	errExists   error
	errNotFound error
	errInUse    error
}

var categories = taxonomy{
	noun:        "category",
	table:       tableCategories,
	junction:    tableTodoCategories,
	column:      "category_id",
	errExists:   ErrCategoryExists,
	errNotFound: ErrCategoryNotFound,
	errInUse:    ErrCategoryInUse,
}

var tagSet = taxonomy{
	noun:        "tag",
	table:       tableTags,
	junction:    tableTodoTags,
	column:      "tag_id",
	errExists:   ErrTagExists,
	errNotFound: ErrTagNotFound,
	errInUse:    ErrTagInUse,
}

type named struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

func (x taxonomy) lookup(ctx context.Context, q sqlx.QueryerContext, name string) (int64, bool, error) {
	var id int64
	query := fmt.Sprintf("SELECT id FROM %s WHERE name = ?", x.table)
	err := sqlx.GetContext(ctx, q, &id, query, name)
	switch {
	case errNoRows(err):
		return 0, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("look up %s %q: %w", x.noun, name, err)
	}
	return id, true, nil
}

func (x taxonomy) insert(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	id, err := nextID(ctx, tx, x.table)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("INSERT INTO %s (id, name) VALUES (?, ?)", x.table)
	if _, err := tx.ExecContext(ctx, query, id, name); err != nil {
		return 0, fmt.Errorf("insert %s %q: %w", x.noun, name, err)
	}
	return id, nil
}

// ensure returns the id of name, creating the row when missing.
func (x taxonomy) ensure(ctx context.Context, tx *sqlx.Tx, name string) (int64, error) {
	id, ok, err := x.lookup(ctx, tx, name)
	if err != nil || ok {
		return id, err
	}
	return x.insert(ctx, tx, name)
}

func (x taxonomy) link(ctx context.Context, tx *sqlx.Tx, todoID int64, name string) error {
	id, err := x.ensure(ctx, tx, name)
	if err != nil {
		return err
	}
	query := fmt.Sprintf("INSERT INTO %s (todo_id, %s) VALUES (?, ?)", x.junction, x.column)
	if _, err := tx.ExecContext(ctx, query, todoID, id); err != nil {
		return fmt.Errorf("attach %s %q: %w", x.noun, name, err)
	}
	return nil
}

func (x taxonomy) unlinkAll(ctx context.Context, tx *sqlx.Tx, todoID int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE todo_id = ?", x.junction)
	if _, err := tx.ExecContext(ctx, query, todoID); err != nil {
		return fmt.Errorf("detach %s: %w", x.noun, err)
	}
	return nil
}

func (x taxonomy) add(ctx context.Context, s *Store, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &Error{Kind: KindInvalid, Op: "add " + x.noun, Err: fmt.Errorf("%s name is empty", x.noun)}
	}
	var id int64
	err := s.withTx(ctx, "add "+x.noun, func(tx *sqlx.Tx) error {
		_, ok, err := x.lookup(ctx, tx, name)
		if err != nil {
			return err
		}
		if ok {
			return fmt.Errorf("%w: %q", x.errExists, name)
		}
		id, err = x.insert(ctx, tx, name)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Debug(x.noun+" added", "id", id, "name", name)
	return id, nil
}

func (x taxonomy) remove(ctx context.Context, s *Store, name string) error {
	name = strings.TrimSpace(name)
	return s.withTx(ctx, "delete "+x.noun, func(tx *sqlx.Tx) error {
		id, ok, err := x.lookup(ctx, tx, name)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %q", x.errNotFound, name)
		}
		var refs int64
		query := fmt.Sprintf("SELECT count(*) FROM %s WHERE %s = ?", x.junction, x.column)
		if err := sqlx.GetContext(ctx, tx, &refs, query, id); err != nil {
			return fmt.Errorf("count %s references: %w", x.noun, err)
		}
		if refs > 0 {
			return fmt.Errorf("%w: %q has %d task(s)", x.errInUse, name, refs)
		}
		query = fmt.Sprintf("DELETE FROM %s WHERE id = ?", x.table)
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
		s.log.Debug(x.noun+" deleted", "name", name)
		return nil
	})
}

func (x taxonomy) list(ctx context.Context, s *Store) ([]named, error) {
	var rows []named
	query := fmt.Sprintf("SELECT id, name FROM %s ORDER BY name", x.table)
	if err := sqlx.SelectContext(ctx, s.db, &rows, query); err != nil {
		return nil, wrap("list "+x.noun, err)
	}
	return rows, nil
}

// AddCategory creates a category. Names are unique.
func (s *Store) AddCategory(ctx context.Context, name string) (todo.Category, error) {
	id, err := categories.add(ctx, s, name)
	if err != nil {
		return todo.Category{}, err
	}
	return todo.Category{ID: id, Name: strings.TrimSpace(name)}, nil
}

// DeleteCategory removes a category that no task uses.
func (s *Store) DeleteCategory(ctx context.Context, name string) error {
	return categories.remove(ctx, s, name)
}

// Categories returns every category ordered by name.
func (s *Store) Categories(ctx context.Context) ([]todo.Category, error) {
	rows, err := categories.list(ctx, s)
	if err != nil {
		return nil, err
	}
	out := make([]todo.Category, len(rows))
	for i, r := range rows {
		out[i] = todo.Category{ID: r.ID, Name: r.Name}
	}
	return out, nil
}

// AddTag creates a tag. Names are unique.
func (s *Store) AddTag(ctx context.Context, name string) (todo.Tag, error) {
	id, err := tagSet.add(ctx, s, name)
	if err != nil {
		return todo.Tag{}, err
	}
	return todo.Tag{ID: id, Name: strings.TrimSpace(name)}, nil
}

// DeleteTag removes a tag that no task uses.
func (s *Store) DeleteTag(ctx context.Context, name string) error {
	return tagSet.remove(ctx, s, name)
}

// Tags returns every tag ordered by name.
func (s *Store) Tags(ctx context.Context) ([]todo.Tag, error) {
	rows, err := tagSet.list(ctx, s)
	if err != nil {
		return nil, err
	}
	out := make([]todo.Tag, len(rows))
	for i, r := range rows {
		out[i] = todo.Tag{ID: r.ID, Name: r.Name}
	}
	return out, nil
}
