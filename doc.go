// Package jsonpath compiles JSONPath query strings into reusable queries
// and evaluates them against already-decoded JSON value trees (nil, bool,
// numbers, string, []any, map[string]any), returning matching nodes paired
// with their normalized paths.
//
// A compiled Query is immutable and safe for concurrent evaluation:
//
//	q, err := jsonpath.Parse("$.store.book[?@.price < 10].title")
//	if err != nil { ... }
//	nodes, err := q.Select(document)
//
// Supported constructs (RFC 9535 terminology):
//   - Child '.' and descendant '..' segments
//   - Name, wildcard '*', index, slice start:end:step and bracketed unions
//   - Filter selectors '?expr' with ==, !=, <, <=, >, >=, &&, ||, !,
//     existence tests and function calls
//   - Built-in functions length, count, match, search and value; more can
//     be registered through a Registry
//
// Missing members, out-of-range indices and filters that match nothing
// yield empty results, never errors. Syntax violations surface as
// *SyntaxError from Parse; function execution failures surface as
// *EvaluationError from Select.
package jsonpath
