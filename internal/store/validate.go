package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/yawmak/internal/todo"
	"github.com/nibzard/yawmak/internal/utils"
)

//go:embed record.schema.json
var recordSchema string

const recordSchemaURL = "record.schema.json"

func compileRecordSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(recordSchemaURL, strings.NewReader(recordSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(recordSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}

// validateJSONFile checks every record of a JSON import file against the
// record schema. The file may hold newline-delimited objects or one array.
// It returns the number of records found.
func validateJSONFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	records, err := decodeRecords(data)
	if err != nil {
		return 0, &Error{Kind: KindInvalid, Op: "parse json", Err: err}
	}
	schema, err := compileRecordSchema()
	if err != nil {
		return 0, err
	}

	var errs []error
	for i, rec := range records {
		if err := schema.Validate(rec); err != nil {
			errs = append(errs, recordError(i, err))
		}
	}
	if len(errs) > 0 {
		return 0, &Error{Kind: KindInvalid, Op: "validate json", Err: errors.Join(errs...)}
	}
	return len(records), nil
}

func decodeRecords(data []byte) ([]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		var records []any
		if err := dec.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var records []any
	for {
		var rec any
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// recordError reduces a schema failure to its first leaf cause.
func recordError(index int, err error) error {
	prefix := fmt.Sprintf("record %d", index+1)
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &todo.ValidationError{Path: prefix, Err: err}
	}
	leaf := firstLeaf(ve)
	path := prefix
	if p := utils.JSONPointerToPath(leaf.InstanceLocation); p != "" {
		path += "." + p
	}
	return &todo.ValidationError{Path: path, Err: errors.New(leaf.Message)}
}

func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
