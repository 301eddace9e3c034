package parser

import (
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mcncl/jsonshape/internal/errors"
	"github.com/mcncl/jsonshape/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SimpleObject(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`
	reader := strings.NewReader(jsonStr)
	ir, err := Parse(reader)

	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	expectedRoot := models.JSONObject{
		"name":      "John Doe",
		"age":       json.Number("30"),
		"isStudent": false,
		"city":      nil,
	}

	assert.Equal(t, models.KindMapping, ir.RootKind)
	assert.Equal(t, FormatJSON, ir.Format)

	actualRoot, ok := ir.Root.(models.JSONObject)
	if !ok {
		t.Fatalf("Parse() root is not a models.JSONObject, got %T", ir.Root)
	}

	if !reflect.DeepEqual(actualRoot, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", actualRoot, expectedRoot)
	}
}

func TestParse_SimpleArray(t *testing.T) {
	jsonStr := `[1, "test", true, null, 3.14]`
	reader := strings.NewReader(jsonStr)
	ir, err := Parse(reader)

	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if ir.RootKind != models.KindSequence {
		t.Errorf("Parse() ir.RootKind = %v, want sequence for an array", ir.RootKind)
	}

	expectedRoot := models.JSONArray{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	actualRoot, ok := ir.Root.(models.JSONArray)
	if !ok {
		t.Fatalf("Parse() root is not a models.JSONArray, got %T", ir.Root)
	}

	if !reflect.DeepEqual(actualRoot, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", actualRoot, expectedRoot)
	}
}

func TestParse_NestedObject(t *testing.T) {
	jsonStr := `{"user": {"name": "Jane Doe", "id": 123}, "active": true, "tags": ["go", "json"]}`
	reader := strings.NewReader(jsonStr)
	ir, err := Parse(reader)

	if err != nil {
		t.Fatalf("Parse() error = %v, wantErr nil", err)
	}

	if ir.RootKind != models.KindMapping {
		t.Errorf("Parse() ir.RootKind = %v, want mapping", ir.RootKind)
	}

	expectedRoot := models.JSONObject{
		"user": models.JSONObject{
			"name": "Jane Doe",
			"id":   json.Number("123"),
		},
		"active": true,
		"tags":   models.JSONArray{"go", "json"},
	}

	actualRoot, ok := ir.Root.(models.JSONObject)
	if !ok {
		t.Fatalf("Parse() root is not a models.JSONObject, got %T", ir.Root)
	}

	if !reflect.DeepEqual(actualRoot, expectedRoot) {
		t.Errorf("Parse() root = %v, want %v", actualRoot, expectedRoot)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	reader := strings.NewReader("")
	_, err := Parse(reader)
	if err == nil {
		t.Errorf("Parse() with empty reader, err = nil, want error")
	} else if !strings.Contains(err.Error(), "input is empty") {
		t.Errorf("Parse() with empty reader, err = %v, want error containing 'input is empty'", err)
	}
}

func TestParseString_EmptyInput(t *testing.T) {
	_, err := ParseString("")
	if err == nil {
		t.Errorf("ParseString() with empty string, err = nil, want error")
	} else if !strings.Contains(err.Error(), "input string is empty or consists only of whitespace") {
		t.Errorf("ParseString() with empty string, err = %v, want error containing 'input string is empty or consists only of whitespace'", err)
	}

	_, err = ParseString("   ") // Whitespace only
	if err == nil {
		t.Errorf("ParseString() with whitespace string, err = nil, want error")
	} else if !strings.Contains(err.Error(), "input string is empty or consists only of whitespace") {
		t.Errorf("ParseString() with whitespace string, err = %v, want error containing 'input string is empty or consists only of whitespace'", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	jsonStr := `{"name": "John Doe", "age": 30` // Missing closing brace
	reader := strings.NewReader(jsonStr)
	_, err := Parse(reader)
	if err == nil {
		t.Errorf("Parse() with malformed JSON, err = nil, want error")
	} else if !strings.Contains(err.Error(), "JSON syntax error") && !strings.Contains(err.Error(), "unexpected EOF") {
		// The exact error message can vary slightly based on Go versions or specifics of encoding/json
		t.Errorf("Parse() with malformed JSON, err = %v, want error containing 'JSON syntax error' or 'unexpected EOF'", err)
	}
}

func TestParseString_MalformedJSON(t *testing.T) {
	jsonStr := `["item1", "item2",` // Missing closing bracket
	_, err := ParseString(jsonStr)
	if err == nil {
		t.Errorf("ParseString() with malformed JSON, err = nil, want error")
	} else if !strings.Contains(err.Error(), "JSON syntax error") && !strings.Contains(err.Error(), "unexpected EOF") {
		t.Errorf("ParseString() with malformed JSON, err = %v, want error containing 'JSON syntax error' or 'unexpected EOF'", err)
	}
}

func TestParseFile_SimpleObject(t *testing.T) {
	content := `{"product": "Laptop", "price": 1200.50}`
	tmpfile, err := os.CreateTemp("", "test_simple_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name()) // clean up

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	ir, err := ParseFile(tmpfile.Name(), FormatAuto)
	if err != nil {
		t.Fatalf("ParseFile() error = %v, wantErr nil", err)
	}

	if ir.Format != FormatJSON {
		t.Errorf("ParseFile() ir.Format = %q, want %q", ir.Format, FormatJSON)
	}

	expectedRoot := models.JSONObject{
		"product": "Laptop",
		"price":   json.Number("1200.50"),
	}

	actualRoot, ok := ir.Root.(models.JSONObject)
	if !ok {
		t.Fatalf("ParseFile() root is not a models.JSONObject, got %T", ir.Root)
	}

	if !reflect.DeepEqual(actualRoot, expectedRoot) {
		t.Errorf("ParseFile() root = %v, want %v", actualRoot, expectedRoot)
	}
}

func TestParseFile_NonExistentFile(t *testing.T) {
	_, err := ParseFile("nonexistentfile.json", FormatAuto)
	if err == nil {
		t.Errorf("ParseFile() with non-existent file, err = nil, want error")
	} else if !strings.Contains(err.Error(), "not found") {
		t.Errorf("ParseFile() with non-existent file, err = %v, want error containing 'not found'", err)
	}
}

func TestParseFile_EmptyPath(t *testing.T) {
	_, err := ParseFile("", FormatAuto)
	if err == nil {
		t.Errorf("ParseFile() with empty path, err = nil, want error")
	} else if !strings.Contains(err.Error(), "file path is empty") {
		t.Errorf("ParseFile() with empty path, err = %v, want error containing 'file path is empty'", err)
	}
}

func TestParseFile_EmptyFileContent(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_empty_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpfile.Name()) // clean up

	// File is created, but nothing is written to it, so it's empty.
	if err := tmpfile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	_, err = ParseFile(tmpfile.Name(), FormatAuto)
	if err == nil {
		t.Errorf("ParseFile() with empty file content, err = nil, want error")
	} else if !strings.Contains(err.Error(), "input file") && !strings.Contains(err.Error(), "is empty") {
		t.Errorf("ParseFile() with empty file content, err = %v, want error containing 'input file... is empty'", err)
	}
}

func TestParse_RootPrimitives(t *testing.T) {
	testCases := []struct {
		name        string
		jsonStr     string
		expectedVal interface{}
		expectKind  models.Kind
	}{
		{"RootString", `"hello world"`, "hello world", models.KindText},
		{"RootNumber", `123.45`, json.Number("123.45"), models.KindNumber},
		{"RootBooleanTrue", `true`, true, models.KindBoolean},
		{"RootBooleanFalse", `false`, false, models.KindBoolean},
		{"RootNull", `null`, nil, models.KindNull},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := strings.NewReader(tc.jsonStr)
			ir, err := Parse(reader)

			if err != nil {
				t.Fatalf("Parse() error = %v, wantErr nil for %s", err, tc.name)
			}

			if ir.RootKind != tc.expectKind {
				t.Errorf("Parse() ir.RootKind = %v, want %v for %s", ir.RootKind, tc.expectKind, tc.name)
			}

			if !reflect.DeepEqual(ir.Root, tc.expectedVal) {
				t.Errorf("Parse() root = %#v (type %T), want %#v (type %T) for %s", ir.Root, ir.Root, tc.expectedVal, tc.expectedVal, tc.name)
			}
		})
	}
}

func TestParse_MultipleValues(t *testing.T) {
	_, err := ParseString(`{"a": 1} {"b": 2}`)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrMultipleJSON))
}

func TestParse_TrailingWhitespace(t *testing.T) {
	ir, err := ParseString("{\"a\": 1}\n\n  ")
	require.NoError(t, err)
	assert.Equal(t, models.JSONObject{"a": json.Number("1")}, ir.Root)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		data     string
		expected string
	}{
		{"json extension", "doc.json", "a: 1", FormatJSON},
		{"yaml extension", "doc.yaml", "{}", FormatYAML},
		{"yml extension", "DOC.YML", "{}", FormatYAML},
		{"object content", "", "  {\"a\": 1}", FormatJSON},
		{"array content", "", "[1]", FormatJSON},
		{"yaml content", "", "a: 1", FormatYAML},
		{"unknown extension", "doc.txt", "{}", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.path, []byte(tt.data)))
		})
	}
}

func TestParseBytes(t *testing.T) {
	ir, err := ParseBytes([]byte(`{"a": [1, "b"]}`), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, ir.Format)

	ir, err = ParseBytes([]byte("a:\n  - 1\n  - b\n"), FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, ir.Format)
	assert.Equal(t, models.KindMapping, ir.RootKind)

	// JSON is a subset of YAML
	ir, err = ParseBytes([]byte(`{"a": 1}`), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, models.OrderedObject{{Key: "a", Value: 1}}, ir.Root)

	_, err = ParseBytes([]byte(`{}`), "toml")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrUnknownFormat))

	_, err = ParseBytes([]byte("  \n"), FormatJSON)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrEmptyInput))
}

func TestParseFile_YAMLByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: shape\ncount: 2\n"), 0o644))

	ir, err := ParseFile(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, ir.Format)
	assert.Equal(t, models.OrderedObject{
		{Key: "name", Value: "shape"},
		{Key: "count", Value: 2},
	}, ir.Root)
}

func TestParseFile_ExplicitFormatOverridesExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("name: shape\n"), 0o644))

	_, err := ParseFile(path, FormatAuto)
	require.Error(t, err)

	ir, err := ParseFile(path, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, models.KindMapping, ir.RootKind)
}
