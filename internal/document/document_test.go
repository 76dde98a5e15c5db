package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	value, err := Decode(strings.NewReader(`{"a": [1, 2.5], "b": "x"}`), FormatJSON)
	require.NoError(t, err)

	object, ok := value.(map[string]any)
	require.True(t, ok)

	// Numbers stay as json.Number so precision survives.
	array, ok := object["a"].([]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("1"), array[0])
	assert.Equal(t, json.Number("2.5"), array[1])
	assert.Equal(t, "x", object["b"])
}

func TestDecodeJSONTrailingContent(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"a": 1} {"b": 2}`), FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trailing content")
}

func TestDecodeJSONInvalid(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader(`{"a": `), FormatJSON)
	require.Error(t, err)
}

func TestDecodeYAML(t *testing.T) {
	t.Parallel()

	value, err := Decode(strings.NewReader("a:\n  - 1\n  - two\nb: true\n"), FormatYAML)
	require.NoError(t, err)

	object, ok := value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, object["b"])

	array, ok := object["a"].([]any)
	require.True(t, ok)
	require.Len(t, array, 2)
	assert.Equal(t, "two", array[1])
}

func TestDecodeUnsupportedFormat(t *testing.T) {
	t.Parallel()

	_, err := Decode(strings.NewReader("{}"), "toml")
	require.ErrorIs(t, err, ErrFormat)
}

func TestLoadDetectsFormat(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"kind": "json"}`), 0o644))

	yamlPath := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("kind: yaml\n"), 0o644))

	jsonDoc, err := Load(jsonPath, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, "json", jsonDoc.(map[string]any)["kind"])

	yamlDoc, err := Load(yamlPath, "")
	require.NoError(t, err)
	assert.Equal(t, "yaml", yamlDoc.(map[string]any)["kind"])
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), FormatAuto)
	require.Error(t, err)
}
