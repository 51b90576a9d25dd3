package store

import (
	"errors"
	"io/fs"

	"github.com/marcboeker/go-duckdb"
)

// Kind classifies store failures so callers can react without inspecting
// error text.
type Kind int

const (
	// KindDatabase is any engine failure that has no more specific kind.
	KindDatabase Kind = iota
	// KindIO covers missing or unreadable import/export files.
	KindIO
	// KindNotFound means the addressed task, category or tag does not exist.
	KindNotFound
	// KindConflict means a unique name or key is already taken.
	KindConflict
	// KindInUse means a category or tag is still attached to tasks.
	KindInUse
	// KindInvalid means the caller supplied unusable input.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInUse:
		return "in use"
	case KindInvalid:
		return "invalid"
	default:
		return "database"
	}
}

// Error is the error type returned by every Store method.
type Error struct {
	Kind Kind
	Op   string // operation that failed, e.g. "add task"
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Op
	}
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Tasks errors
var (
	ErrTaskNotFound = &Error{Kind: KindNotFound, Op: "task not found"}
	ErrTaskInvalid  = &Error{Kind: KindInvalid, Op: "task invalid"}
)

// Categories errors
var (
	ErrCategoryExists   = &Error{Kind: KindConflict, Op: "category already exists"}
	ErrCategoryNotFound = &Error{Kind: KindNotFound, Op: "category not found"}
	ErrCategoryInUse    = &Error{Kind: KindInUse, Op: "category is still used by tasks"}
)

// Tags errors
var (
	ErrTagExists   = &Error{Kind: KindConflict, Op: "tag already exists"}
	ErrTagNotFound = &Error{Kind: KindNotFound, Op: "tag not found"}
	ErrTagInUse    = &Error{Kind: KindInUse, Op: "tag is still used by tasks"}
)

// Transfer errors
var (
	ErrUnsupportedFormat   = &Error{Kind: KindInvalid, Op: "unsupported format, use json, parquet, xlsx or csv"}
	ErrUnsupportedStrategy = &Error{Kind: KindInvalid, Op: "unsupported strategy, use skip, remove or upsert"}
)

// KindOf returns the kind of the first *Error in err's chain. Errors that
// did not originate in the store are classified by their cause.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return classify(err)
}

// wrap annotates err with the operation and a kind derived from the cause.
// Store errors pass through untouched so sentinel kinds survive.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return &Error{Kind: classify(err), Op: op, Err: err}
}

func classify(err error) Kind {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return KindIO
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return KindIO
	}
	var dbErr *duckdb.Error
	if errors.As(err, &dbErr) {
		switch dbErr.Type {
		case duckdb.ErrorTypeConstraint:
			return KindConflict
		case duckdb.ErrorTypeIO:
			return KindIO
		case duckdb.ErrorTypeConversion:
			return KindInvalid
		}
	}
	return KindDatabase
}
