package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/nibzard/yawmak/internal/todo"
)

// Format is an import/export file format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
	FormatXLSX    Format = "xlsx"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatJSON, FormatParquet, FormatXLSX, FormatCSV}

// ParseFormat accepts a format name case-insensitively. "excel" is an alias
// for xlsx.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "parquet":
		return FormatParquet, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// Strategy decides what happens when an imported row collides with a
// stored task id.
type Strategy string

const (
	// StrategySkip leaves existing tasks untouched.
	StrategySkip Strategy = "skip"
	// StrategyRemove drops incoming ids and appends every row.
	StrategyRemove Strategy = "remove"
	// StrategyUpsert replaces existing tasks with the incoming rows.
	StrategyUpsert Strategy = "upsert"
)

// Strategies lists the supported strategies.
var Strategies = []Strategy{StrategySkip, StrategyRemove, StrategyUpsert}

// ParseStrategy accepts a strategy name case-insensitively. An empty string
// selects StrategySkip.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return StrategySkip, nil
	case "remove":
		return StrategyRemove, nil
	case "upsert":
		return StrategyUpsert, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedStrategy, s)
}

// ImportResult counts what an import did.
type ImportResult struct {
	Inserted int
	Updated  int
	Skipped  int
}

// Total is the number of records read from the file.
func (r ImportResult) Total() int {
	return r.Inserted + r.Updated + r.Skipped
}

// Import loads tasks from path. The whole file is applied in one
// transaction: either every row lands or none does.
func (s *Store) Import(ctx context.Context, format Format, path string, strategy Strategy) (ImportResult, error) {
	var res ImportResult
	if _, err := os.Stat(path); err != nil {
		return res, &Error{Kind: KindIO, Op: "import", Err: err}
	}
	switch strategy {
	case StrategySkip, StrategyRemove, StrategyUpsert:
	default:
		return res, fmt.Errorf("%w: %q", ErrUnsupportedStrategy, strategy)
	}

	rows, err := s.readRecords(ctx, format, path)
	if err != nil {
		return res, wrap("import "+string(format), err)
	}
	today := s.now()
	tasks := make([]todo.Task, 0, len(rows))
	for i, row := range rows {
		t, err := recordToTask(i, row)
		if err != nil {
			return res, &Error{Kind: KindInvalid, Op: "import " + string(format), Err: err}
		}
		t.Normalize(today)
		tasks = append(tasks, t)
	}

	err = s.withTx(ctx, "import "+string(format), func(tx *sqlx.Tx) error {
		for _, t := range tasks {
			if err := applyRecord(ctx, tx, strategy, t, &res); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	s.log.Debug("import finished", "format", format, "strategy", strategy,
		"inserted", res.Inserted, "updated", res.Updated, "skipped", res.Skipped)
	return res, nil
}

func applyRecord(ctx context.Context, tx *sqlx.Tx, strategy Strategy, t todo.Task, res *ImportResult) error {
	if strategy == StrategyRemove || t.ID == 0 {
		if _, err := insertTask(ctx, tx, t, 0); err != nil {
			return err
		}
		res.Inserted++
		return nil
	}

	exists, err := taskExists(ctx, tx, t.ID)
	if err != nil {
		return err
	}
	switch {
	case !exists:
		if _, err := insertTask(ctx, tx, t, t.ID); err != nil {
			return err
		}
		res.Inserted++
	case strategy == StrategyUpsert:
		if err := overwriteTask(ctx, tx, t); err != nil {
			return err
		}
		res.Updated++
	default:
		res.Skipped++
	}
	return nil
}

// jsonColumns fixes the JSON column types so that text which looks like a
// date or a number stays text. Keys missing from a record read as NULL.
// Dates are parsed by recordToTask; array tags arrive as JSON text.
const jsonColumns = `{
	id: 'BIGINT', task: 'VARCHAR', done: 'BOOLEAN',
	due_date: 'VARCHAR', completion_date: 'VARCHAR', priority: 'BIGINT',
	category: 'VARCHAR', tags: 'VARCHAR'
}`

// readRecords stages the rows of an import file as column maps. CSV is read
// as all text and converted by recordToTask.
func (s *Store) readRecords(ctx context.Context, format Format, path string) ([]map[string]any, error) {
	var query string
	switch format {
	case FormatJSON:
		n, err := validateJSONFile(path)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil
		}
		query = "SELECT * FROM read_json(" + quoteLiteral(path) + ", format = 'auto', columns = " + jsonColumns + ")"
	case FormatCSV:
		query = "SELECT * FROM read_csv(" + quoteLiteral(path) + ", header = true, all_varchar = true)"
	case FormatParquet:
		query = "SELECT * FROM read_parquet(" + quoteLiteral(path) + ")"
	case FormatXLSX:
		return readXLSX(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	s.log.Debug("staging import", "query", query)
	rows, err := s.db.QueryxContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []map[string]any
	for rows.Next() {
		rec := make(map[string]any)
		if err := rows.MapScan(rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Export writes every task to path and returns how many were written.
func (s *Store) Export(ctx context.Context, format Format, path string) (int, error) {
	op := "export " + string(format)
	var n int
	if err := sqlx.GetContext(ctx, s.db, &n, `SELECT count(*) FROM todos`); err != nil {
		return 0, wrap(op, err)
	}

	var options string
	switch format {
	case FormatJSON:
		options = "(FORMAT JSON)"
	case FormatCSV:
		options = "(FORMAT CSV, HEADER)"
	case FormatParquet:
		options = "(FORMAT PARQUET)"
	case FormatXLSX:
		tasks, err := s.Tasks(ctx, Filter{})
		if err != nil {
			return 0, err
		}
		if err := writeXLSX(path, tasks); err != nil {
			return 0, wrap(op, err)
		}
		s.log.Debug("export finished", "format", format, "rows", len(tasks))
		return len(tasks), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	query := "COPY (" + selectTasks + groupTasks + ") TO " + quoteLiteral(path) + " " + options
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return 0, wrap(op, err)
	}
	s.log.Debug("export finished", "format", format, "rows", n)
	return n, nil
}

// quoteLiteral renders s as a SQL string literal. COPY targets and table
// function arguments cannot be bound as parameters.
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
