package jsonpath

import (
	"fmt"
	"strconv"
	"strings"
)

// Node pairs a matched value with its normalized path, for example
// $['store']['book'][0]. The value references the input document and must be
// treated as read-only.
type Node struct {
	Value any
	Path  string
}

// Nodelist is the ordered result of a query. Order is determined solely by
// traversal order; duplicates appear only if the query revisits a location.
type Nodelist []Node

func (nl Nodelist) Values() []any {
	if len(nl) == 0 {
		return nil
	}
	values := make([]any, len(nl))
	for i, node := range nl {
		values[i] = node.Value
	}
	return values
}

func (nl Nodelist) Paths() []string {
	if len(nl) == 0 {
		return nil
	}
	paths := make([]string, len(nl))
	for i, node := range nl {
		paths[i] = node.Path
	}
	return paths
}

func childPathName(parent string, name string) string {
	return parent + "['" + escapeName(name) + "']"
}

func childPathIndex(parent string, index int) string {
	return parent + "[" + strconv.Itoa(index) + "]"
}

// escapeName escapes a member name for single-quoted normalized-path form.
func escapeName(name string) string {
	if !strings.ContainsAny(name, "'\\") && !hasControl(name) {
		return name
	}

	var b strings.Builder
	for _, r := range name {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

func hasControl(name string) bool {
	for _, r := range name {
		if r < 0x20 {
			return true
		}
	}
	return false
}
