package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/nibzard/yawmak/internal/store"
)

// hintError pairs a store failure with a message meant for the user.
type hintError struct {
	hint string
	err  error
}

func (e *hintError) Error() string { return e.hint }

func (e *hintError) Unwrap() error { return e.err }

// withHint replaces store errors with a friendlier message. Other errors,
// including usage errors, pass through unchanged.
func withHint(err error) error {
	if err == nil {
		return nil
	}
	var se *store.Error
	if !errors.As(err, &se) {
		return err
	}
	return &hintError{hint: hintFor(err), err: err}
}

// hintFor picks the message for a store error by its kind.
func hintFor(err error) string {
	switch {
	case errors.Is(err, store.ErrCategoryExists):
		return "A category with the same name already exists."
	case errors.Is(err, store.ErrTagExists):
		return "A tag with the same name already exists."
	case errors.Is(err, store.ErrCategoryInUse):
		return "Cannot delete category because it is still used by some tasks."
	case errors.Is(err, store.ErrTagInUse):
		return "Cannot delete tag because it is still used by some tasks."
	}

	switch store.KindOf(err) {
	case store.KindIO:
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Sprintf("File not found. Check the path and try again. (%v)", err)
		}
		return fmt.Sprintf("Could not read or write the file. Check its permissions and that it is not in use. (%v)", err)
	case store.KindConflict:
		return "This item already exists. Please check your input."
	case store.KindInUse:
		return "Item is still in use. Ensure it is not linked elsewhere."
	case store.KindNotFound, store.KindInvalid:
		return err.Error()
	default:
		return fmt.Sprintf("Unexpected error occurred: %v. Please check the logs.", err)
	}
}
