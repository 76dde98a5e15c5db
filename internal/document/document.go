// Package document is the loading boundary between serialized documents and
// the value tree the query engine consumes. JSON decoding keeps numbers as
// json.Number so numeric precision survives into comparisons.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrFormat indicates an unknown or undetectable input format.
var ErrFormat = errors.New("document: unsupported format")

const (
	FormatAuto = "auto"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Load reads and decodes the file at path. With FormatAuto the format is
// detected from the file extension, defaulting to JSON.
func Load(path string, format string) (any, error) {
	if format == "" || format == FormatAuto {
		format = detectFormat(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Decode parses a document from r in the given format.
func Decode(r io.Reader, format string) (any, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(r)
	case FormatYAML:
		return decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrFormat, format)
	}
}

func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decodeJSON(r io.Reader) (any, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, fmt.Errorf("decode JSON document: %w", err)
	}

	// A document is a single value; anything after it is a mistake.
	if err := decoder.Decode(new(any)); err != io.EOF {
		return nil, fmt.Errorf("decode JSON document: trailing content")
	}

	return value, nil
}

func decodeYAML(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read YAML document: %w", err)
	}

	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode YAML document: %w", err)
	}

	return value, nil
}
