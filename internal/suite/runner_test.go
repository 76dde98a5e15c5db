package suite

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valentin001-77/jsonpath"
)

func testDocument(t *testing.T) any {
	t.Helper()

	const input = `{
		"store": {
			"book": [
				{"title": "Sayings of the Century", "price": 8.95},
				{"title": "Sword of Honour", "price": 12.99},
				{"title": "Moby Dick", "price": 8.99}
			]
		}
	}`

	decoder := json.NewDecoder(strings.NewReader(input))
	decoder.UseNumber()

	var document any
	require.NoError(t, decoder.Decode(&document))
	return document
}

func intPtr(v int) *int { return &v }

func TestRunPassing(t *testing.T) {
	t.Parallel()

	s := &Suite{
		Document: "store.json",
		Cases: []Case{
			{Name: "titles", Query: "$..title", Count: intPtr(3)},
			{Name: "cheap", Query: "$.store.book[?@.price < 9].title", Values: []any{"Sayings of the Century", "Moby Dick"}},
			{Name: "first", Query: "$.store.book[0].title", Paths: []string{"$['store']['book'][0]['title']"}},
		},
	}

	report, err := NewRunner(nil).Run(context.Background(), s, testDocument(t), 2)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "store.json", report.Document)
	assert.Equal(t, 2, report.Iterations)
	assert.Equal(t, 3, report.Passed)
	assert.Equal(t, 0, report.Failed)

	require.Len(t, report.Results, 3)
	for _, result := range report.Results {
		assert.True(t, result.Passed, "case %q", result.Name)
		assert.Empty(t, result.Failures)
	}
	assert.Equal(t, 3, report.Results[0].Matches)
}

func TestRunFailures(t *testing.T) {
	t.Parallel()

	s := &Suite{
		Cases: []Case{
			{Name: "wrong count", Query: "$..title", Count: intPtr(5)},
			{Name: "wrong value", Query: "$.store.book[0].title", Values: []any{"Moby Dick"}},
			{Name: "still fine", Query: "$.store.book[1].title", Count: intPtr(1)},
		},
	}

	report, err := NewRunner(nil).Run(context.Background(), s, testDocument(t), 3)
	require.NoError(t, err)

	assert.Equal(t, 1, report.Passed)
	assert.Equal(t, 2, report.Failed)

	assert.False(t, report.Results[0].Passed)
	// Identical failures across iterations collapse to one message.
	assert.Equal(t, []string{"expected 5 matches, got 3"}, report.Results[0].Failures)

	assert.False(t, report.Results[1].Passed)
	require.Len(t, report.Results[1].Failures, 1)
	assert.Contains(t, report.Results[1].Failures[0], "want Moby Dick")

	assert.True(t, report.Results[2].Passed)
}

func TestRunAbortsOnSyntaxError(t *testing.T) {
	t.Parallel()

	s := &Suite{
		Cases: []Case{
			{Name: "good", Query: "$.store"},
			{Name: "broken", Query: "$["},
		},
	}

	_, err := NewRunner(nil).Run(context.Background(), s, testDocument(t), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `case "broken"`)
	require.ErrorIs(t, err, jsonpath.ErrSyntax)
}

func TestRunCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := &Suite{Cases: []Case{{Name: "x", Query: "$.store"}}}

	_, err := NewRunner(nil).Run(ctx, s, testDocument(t), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestReportFormats(t *testing.T) {
	t.Parallel()

	s := &Suite{Cases: []Case{{Name: "titles", Query: "$..title", Count: intPtr(3)}}}

	report, err := NewRunner(nil).Run(context.Background(), s, testDocument(t), 1)
	require.NoError(t, err)

	var text strings.Builder
	require.NoError(t, FormatText(&text, report))
	assert.Contains(t, text.String(), "titles")
	assert.Contains(t, text.String(), "PASS")
	assert.Contains(t, text.String(), "1 passed, 0 failed")

	var encoded strings.Builder
	require.NoError(t, FormatJSON(&encoded, report))

	var decoded Report
	require.NoError(t, json.Unmarshal([]byte(encoded.String()), &decoded))
	assert.Equal(t, report.RunID, decoded.RunID)
	assert.Equal(t, 1, decoded.Passed)
}
