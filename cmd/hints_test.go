package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/nibzard/yawmak/internal/store"
)

func TestHintFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		prefix string
	}{
		{"category exists", store.ErrCategoryExists, "A category with the same name already exists."},
		{"tag exists", fmt.Errorf("add tag: %w", store.ErrTagExists), "A tag with the same name already exists."},
		{"category in use", store.ErrCategoryInUse, "Cannot delete category because"},
		{"tag in use", store.ErrTagInUse, "Cannot delete tag because"},
		{"missing file", &store.Error{Kind: store.KindIO, Op: "import", Err: fs.ErrNotExist}, "File not found. Check the path and try again."},
		{"permission denied", &store.Error{Kind: store.KindIO, Op: "export", Err: fs.ErrPermission}, "Could not read or write the file."},
		{"conflict", &store.Error{Kind: store.KindConflict, Op: "insert"}, "This item already exists."},
		{"in use", &store.Error{Kind: store.KindInUse, Op: "delete"}, "Item is still in use."},
		{"not found", fmt.Errorf("%w: id 7", store.ErrTaskNotFound), "task not found: id 7"},
		{"database", &store.Error{Kind: store.KindDatabase, Op: "list", Err: errors.New("boom")}, "Unexpected error occurred: list: boom."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hintFor(tt.err)
			if !strings.HasPrefix(got, tt.prefix) {
				t.Errorf("hintFor() = %q, want prefix %q", got, tt.prefix)
			}
		})
	}
}

func TestWithHint(t *testing.T) {
	if withHint(nil) != nil {
		t.Error("withHint(nil) should be nil")
	}

	plain := usageErrorf("bad input")
	if got := withHint(plain); got != plain {
		t.Errorf("non-store errors should pass through, got %v", got)
	}

	err := withHint(fmt.Errorf("%w: id 3", store.ErrTaskNotFound))
	var he *hintError
	if !errors.As(err, &he) {
		t.Fatalf("expected *hintError, got %T", err)
	}
	if !errors.Is(err, store.ErrTaskNotFound) {
		t.Error("hint should keep the cause in the chain")
	}
}
