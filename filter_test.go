package jsonpath

import (
	"errors"
	"reflect"
	"testing"
)

const productsJSON = `{
  "products": [
    { "name": "Laptop", "price": 1200, "category": "electronics", "inStock": true },
    { "name": "Mouse", "price": 25, "category": "electronics", "inStock": true },
    { "name": "Desk", "price": 350, "category": "furniture", "inStock": true },
    { "name": "Chair", "price": 200, "category": "furniture", "inStock": false }
  ]
}`

func selectNames(t *testing.T, query string, document any) []any {
	t.Helper()

	nodes := mustSelect(t, query+".name", document)
	return nodes.Values()
}

func TestFilterComparisons(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, productsJSON)

	tests := []struct {
		name   string
		query  string
		expect []any
	}{
		{
			name:   "and_short_circuit",
			query:  "$.products[?@.price < 100 && @.category == 'electronics']",
			expect: []any{"Mouse"},
		},
		{
			name:   "or_combines",
			query:  "$.products[?@.price > 1000 || @.category == 'furniture']",
			expect: []any{"Laptop", "Desk", "Chair"},
		},
		{
			name:   "not_negates",
			query:  "$.products[?!@.inStock]",
			expect: []any{"Chair"},
		},
		{
			name:   "not_with_comparison",
			query:  "$.products[?!(@.category == 'electronics')]",
			expect: []any{"Desk", "Chair"},
		},
		{
			name:   "numeric_bounds",
			query:  "$.products[?@.price >= 200 && @.price <= 350]",
			expect: []any{"Desk", "Chair"},
		},
		{
			name:   "string_ordering",
			query:  "$.products[?@.name > 'Laptop']",
			expect: []any{"Mouse"},
		},
		{
			name:   "boolean_equality",
			query:  "$.products[?@.inStock == false]",
			expect: []any{"Chair"},
		},
		{
			name:   "absolute_query_in_filter",
			query:  "$.products[?@.price == $.products[1].price]",
			expect: []any{"Mouse"},
		},
		{
			name:   "matches_nothing",
			query:  "$.products[?@.price > 10000]",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := selectNames(t, tt.query, document); !reflect.DeepEqual(got, tt.expect) {
				t.Fatalf("got %v, want %v", got, tt.expect)
			}
		})
	}
}

func TestFilterTypeMismatchIsFalse(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, productsJSON)

	// Comparing a string member to a number is false for every operator,
	// never an error.
	for _, query := range []string{
		"$.products[?@.name == 25]",
		"$.products[?@.name < 25]",
		"$.products[?@.inStock < true]",
		"$.products[?@.price == 'Mouse']",
	} {
		nodes := mustSelect(t, query, document)
		if len(nodes) != 0 {
			t.Fatalf("%s matched %d nodes, want 0", query, len(nodes))
		}
	}
}

func TestFilterNothingAlgebra(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, `[{"a": 1}, {"a": 1, "b": 2}]`)

	// Two existence-failing queries are both Nothing, and Nothing equals
	// only Nothing.
	nodes := mustSelect(t, "$[?@.missing == @.alsoMissing]", document)
	if len(nodes) != 2 {
		t.Fatalf("Nothing == Nothing matched %d nodes, want 2", len(nodes))
	}

	nodes = mustSelect(t, "$[?@.missing == 0]", document)
	if len(nodes) != 0 {
		t.Fatalf("Nothing == 0 matched %d nodes, want 0", len(nodes))
	}

	nodes = mustSelect(t, "$[?@.missing != @.a]", document)
	if len(nodes) != 2 {
		t.Fatalf("Nothing != value matched %d nodes, want 2", len(nodes))
	}

	nodes = mustSelect(t, "$[?@.missing < 1]", document)
	if len(nodes) != 0 {
		t.Fatalf("Nothing < 1 matched %d nodes, want 0", len(nodes))
	}
}

func TestFilterExistence(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, `[
	  {"flag": true},
	  {"flag": false},
	  {"flag": 1},
	  {"flag": 0},
	  {"flag": "x"},
	  {"flag": ""},
	  {"flag": []},
	  {"flag": [1]},
	  {"flag": {}},
	  {"flag": null},
	  {"other": 1}
	]`)

	// The existence test requires exactly one match with a truthy value:
	// true, non-zero numbers, non-empty strings and arrays, any object.
	nodes := mustSelect(t, "$[?@.flag]", document)

	want := []string{"$[0]", "$[2]", "$[4]", "$[7]", "$[8]"}
	if got := nodes.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
}

func TestFilterExistenceRequiresSingleNode(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, `[
	  {"items": [1, 2]},
	  {"items": [1]},
	  {"items": []}
	]`)

	// A multi-node embedded query is not an existence match even though it
	// is non-empty.
	nodes := mustSelect(t, "$[?@.items[*]]", document)

	want := []string{"$[1]"}
	if got := nodes.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
}

func TestFilterMultiNodeComparisonIsNothing(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, `[{"items": [1, 2], "n": 1}]`)

	// An embedded query with several matches contributes Nothing, which
	// never equals a concrete value.
	nodes := mustSelect(t, "$[?@.items[*] == 1]", document)
	if len(nodes) != 0 {
		t.Fatalf("multi-node comparison matched %d nodes, want 0", len(nodes))
	}
}

func TestFilterOnDescendantSegment(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, storeJSON)

	nodes := mustSelect(t, "$..book[?@.price < 9].title", document)

	want := []any{"Sayings of the Century", "Moby Dick"}
	if got := nodes.Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
}

func TestFilterStructuralEquality(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, `[
	  {"tags": ["a", "b"]},
	  {"tags": ["a"]},
	  {"tags": ["a", "b"]}
	]`)

	nodes := mustSelect(t, "$[?@.tags == $[0].tags]", document)

	want := []string{"$[0]", "$[2]"}
	if got := nodes.Paths(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Paths() = %v, want %v", got, want)
	}
}

func TestFilterEvaluationErrors(t *testing.T) {
	t.Parallel()

	document := mustDecode(t, `[{"a": "x"}]`)

	tests := []struct {
		name  string
		query string
		kind  EvalErrorKind
	}{
		{name: "unknown_function", query: "$[?frob(@.a)]", kind: ErrUnknownFunction},
		{name: "wrong_arity", query: "$[?count(@.a, @.b) == 1]", kind: ErrFunctionArity},
		{name: "invalid_pattern", query: "$[?match(@.a, '[')]", kind: ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := Parse(tt.query)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.query, err)
			}

			_, err = q.Select(document)
			if err == nil {
				t.Fatalf("Select(%q) expected error", tt.query)
			}
			if !errors.Is(err, ErrEvaluation) {
				t.Fatalf("error = %v, want ErrEvaluation", err)
			}

			var evalErr *EvaluationError
			if !errors.As(err, &evalErr) {
				t.Fatalf("error type = %T, want *EvaluationError", err)
			}
			if evalErr.Kind != tt.kind {
				t.Fatalf("Kind = %v, want %v", evalErr.Kind, tt.kind)
			}
		})
	}
}
