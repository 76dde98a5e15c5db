package suite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validSuite = `
document: store.json
cases:
  - name: all authors
    query: $..author
    count: 4
  - name: cheap books
    query: $.store.book[?@.price < 9].title
    values:
      - Sayings of the Century
      - Moby Dick
  - name: first book path
    query: $.store.book[0]
    paths:
      - $['store']['book'][0]
`

func TestLoad(t *testing.T) {
	t.Parallel()

	s, err := Load(strings.NewReader(validSuite))
	require.NoError(t, err)

	assert.Equal(t, "store.json", s.Document)
	require.Len(t, s.Cases, 3)

	assert.Equal(t, "all authors", s.Cases[0].Name)
	require.NotNil(t, s.Cases[0].Count)
	assert.Equal(t, 4, *s.Cases[0].Count)

	assert.Len(t, s.Cases[1].Values, 2)
	assert.Equal(t, []string{"$['store']['book'][0]"}, s.Cases[2].Paths)
}

func TestLoadValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "no_cases", input: "document: x.json\n"},
		{name: "empty_cases", input: "cases: []\n"},
		{name: "missing_name", input: "cases:\n  - query: $.a\n"},
		{name: "missing_query", input: "cases:\n  - name: x\n"},
		{name: "duplicate_names", input: "cases:\n  - name: x\n    query: $.a\n  - name: x\n    query: $.b\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Load(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrInvalidSuite)
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Parallel()

	_, err := Load(strings.NewReader("cases: [\n"))
	require.Error(t, err)
}
