// Package suite runs YAML-defined query suites: named JSONPath cases with
// expected counts, values or paths, checked against a document.
package suite

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// ErrInvalidSuite indicates a suite file that fails validation.
var ErrInvalidSuite = errors.New("suite: invalid suite")

// Case is one named query with its expectations. Absent expectations are
// not checked; a case with none passes whenever its query evaluates.
type Case struct {
	Name   string   `yaml:"name" json:"name"`
	Query  string   `yaml:"query" json:"query"`
	Count  *int     `yaml:"count,omitempty" json:"count,omitempty"`
	Values []any    `yaml:"values,omitempty" json:"values,omitempty"`
	Paths  []string `yaml:"paths,omitempty" json:"paths,omitempty"`
}

// Suite is a set of cases, optionally naming the document file they run
// against (relative to the suite file).
type Suite struct {
	Document string `yaml:"document,omitempty" json:"document,omitempty"`
	Cases    []Case `yaml:"cases" json:"cases"`
}

// Load decodes and validates a suite definition.
func Load(r io.Reader) (*Suite, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}

	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode suite: %w", err)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadFile is Load over a file path.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suite: %w", err)
	}
	defer f.Close()

	return Load(f)
}

func (s *Suite) validate() error {
	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: no cases defined", ErrInvalidSuite)
	}

	seen := make(map[string]struct{}, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("%w: case %d has no name", ErrInvalidSuite, i+1)
		}
		if c.Query == "" {
			return fmt.Errorf("%w: case %q has no query", ErrInvalidSuite, c.Name)
		}
		if _, ok := seen[c.Name]; ok {
			return fmt.Errorf("%w: duplicate case name %q", ErrInvalidSuite, c.Name)
		}
		seen[c.Name] = struct{}{}
	}
	return nil
}
