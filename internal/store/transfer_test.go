package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nibzard/yawmak/internal/todo"
)

func seed(t *testing.T, s *Store) {
	t.Helper()
	mustAdd(t, s, "Write report", "Work", "2024-12-31", []string{"urgent", "q3"}, 2)
	id := mustAdd(t, s, "Buy milk", "Errands", "", nil, 0)
	mustAdd(t, s, "It's quoted, with comma", "", "", []string{"x"}, -1)
	mustAdd(t, s, "2024-12-31", "007", "", []string{"1.50", "2025-01-01"}, 0)
	mustAdd(t, s, "1.50", "true", "2024-01-02", []string{"00"}, 3)
	require.NoError(t, s.MarkDone(context.Background(), id))
}

// withoutIDs strips ids so round-tripped task sets can be compared.
func withoutIDs(tasks []todo.Task) []todo.Task {
	out := make([]todo.Task, len(tasks))
	for i, task := range tasks {
		task.ID = 0
		out[i] = task
	}
	return out
}

func TestParseFormatAndStrategy(t *testing.T) {
	for in, want := range map[string]Format{"JSON": FormatJSON, "csv": FormatCSV, "Parquet": FormatParquet, "xlsx": FormatXLSX, "excel": FormatXLSX} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("yaml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	for in, want := range map[string]Strategy{"": StrategySkip, "skip": StrategySkip, "REMOVE": StrategyRemove, "upsert": StrategyUpsert} {
		got, err := ParseStrategy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err = ParseStrategy("merge")
	assert.ErrorIs(t, err, ErrUnsupportedStrategy)
}

func TestExportImportRoundTrip(t *testing.T) {
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			ctx := context.Background()
			src := openTestStore(t)
			seed(t, src)
			want, err := src.Tasks(ctx, Filter{})
			require.NoError(t, err)

			path := filepath.Join(t.TempDir(), "todos."+string(format))
			n, err := src.Export(ctx, format, path)
			require.NoError(t, err)
			assert.Equal(t, len(want), n)

			dst := openTestStore(t)
			res, err := dst.Import(ctx, format, path, StrategyRemove)
			require.NoError(t, err)
			assert.Equal(t, len(want), res.Inserted)

			got, err := dst.Tasks(ctx, Filter{})
			require.NoError(t, err)
			assert.Equal(t, withoutIDs(want), withoutIDs(got))
		})
	}
}

func TestImportStrategies(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "in.json")
	data := `{"id": 1, "task": "replaced", "done": true, "completion_date": "2024-02-02", "priority": 7, "category": "New", "tags": "t1,t2"}
{"id": 5, "task": "fresh with id"}
{"task": "no id"}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	t.Run("skip", func(t *testing.T) {
		s := openTestStore(t)
		mustAdd(t, s, "original", "Work", "", nil, 0)
		res, err := s.Import(ctx, FormatJSON, path, StrategySkip)
		require.NoError(t, err)
		assert.Equal(t, ImportResult{Inserted: 2, Skipped: 1}, res)

		task, err := s.Task(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "original", task.Name)

		task, err = s.Task(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "fresh with id", task.Name)

		task, err = s.Task(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, "no id", task.Name)
	})

	t.Run("upsert", func(t *testing.T) {
		s := openTestStore(t)
		mustAdd(t, s, "original", "Work", "", []string{"old"}, 0)
		res, err := s.Import(ctx, FormatJSON, path, StrategyUpsert)
		require.NoError(t, err)
		assert.Equal(t, ImportResult{Inserted: 2, Updated: 1}, res)
		assert.Equal(t, 3, res.Total())

		task, err := s.Task(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "replaced", task.Name)
		assert.True(t, task.Done)
		assert.Equal(t, "2024-02-02", todo.FormatDate(task.CompletionDate))
		assert.Equal(t, 7, task.Priority)
		assert.Equal(t, "New", task.Category)
		assert.Equal(t, []string{"t1", "t2"}, task.Tags)
	})

	t.Run("remove", func(t *testing.T) {
		s := openTestStore(t)
		mustAdd(t, s, "original", "Work", "", nil, 0)
		res, err := s.Import(ctx, FormatJSON, path, StrategyRemove)
		require.NoError(t, err)
		assert.Equal(t, ImportResult{Inserted: 3}, res)

		tasks, err := s.Tasks(ctx, Filter{})
		require.NoError(t, err)
		require.Len(t, tasks, 4)
		assert.Equal(t, "original", tasks[0].Name)
		assert.Equal(t, int64(4), tasks[3].ID)
	})
}

func TestImportNormalizesCompletionDate(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "in.json")
	data := `[{"task": "done without date", "done": true}, {"task": "pending with date", "completion_date": "2024-01-01"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s := openTestStore(t)
	_, err := s.Import(ctx, FormatJSON, path, StrategySkip)
	require.NoError(t, err)

	tasks, err := s.Tasks(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "2024-06-01", todo.FormatDate(tasks[0].CompletionDate))
	assert.Nil(t, tasks[1].CompletionDate)
}

func TestImportLegacyCSVWithoutTaxonomy(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "old.csv")
	data := "id,task,done,due_date,completion_date,priority\n1,Old task,false,2024-03-04,,3\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s := openTestStore(t)
	res, err := s.Import(ctx, FormatCSV, path, StrategySkip)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)

	task, err := s.Task(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Old task", task.Name)
	assert.Equal(t, "2024-03-04", todo.FormatDate(task.DueDate))
	assert.Equal(t, 3, task.Priority)
	assert.Empty(t, task.Category)
}

func TestImportJSONArrayTags(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tags.json")
	data := `[{"task": "array tags", "tags": ["b", "a"]}, {"task": "string tags", "tags": "c, d"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s := openTestStore(t)
	_, err := s.Import(ctx, FormatJSON, path, StrategySkip)
	require.NoError(t, err)

	tasks, err := s.Tasks(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, []string{"a", "b"}, tasks[0].Tags)
	assert.Equal(t, []string{"c", "d"}, tasks[1].Tags)
}

func TestImportMissingFile(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Import(context.Background(), FormatCSV, filepath.Join(t.TempDir(), "nope.csv"), StrategySkip)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, KindIO, KindOf(err))
}

func TestImportInvalidJSONIsAtomic(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bad.json")
	data := `{"task": "fine"}
{"task": "bad date", "due_date": "31/12/2024"}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s := openTestStore(t)
	_, err := s.Import(ctx, FormatJSON, path, StrategySkip)
	require.Error(t, err)
	assert.Equal(t, KindInvalid, KindOf(err))
	assert.Contains(t, err.Error(), "record 2.due_date")

	tasks, err := s.Tasks(ctx, Filter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, "'plain'", quoteLiteral("plain"))
	assert.Equal(t, "'it''s'", quoteLiteral("it's"))
}
