package jsonpath

import (
	"maps"
	"slices"

	"github.com/valentin001-77/jsonpath/internal/stack"
)

// Select evaluates the query against an already-decoded JSON value tree and
// returns the matching nodes in traversal order. Unmatched selectors yield no
// nodes rather than errors; only function execution inside filters can fail.
func (q *Query) Select(root any) (Nodelist, error) {
	ev := &evaluator{root: root, registry: q.registry}
	return ev.selectSegments(q.segments, Nodelist{{Value: root, Path: "$"}})
}

// SelectValues parses and evaluates in one step, returning values only.
func SelectValues(query string, root any) ([]any, error) {
	q, err := Parse(query)
	if err != nil {
		return nil, err
	}
	nodes, err := q.Select(root)
	if err != nil {
		return nil, err
	}
	return nodes.Values(), nil
}

// First returns the first match in traversal order, if any.
func (q *Query) First(root any) (Node, bool, error) {
	nodes, err := q.Select(root)
	if err != nil || len(nodes) == 0 {
		return Node{}, false, err
	}
	return nodes[0], true, nil
}

// Exists reports whether the query matches at least one node.
func (q *Query) Exists(root any) (bool, error) {
	nodes, err := q.Select(root)
	if err != nil {
		return false, err
	}
	return len(nodes) > 0, nil
}

type evaluator struct {
	root     any
	registry *Registry
}

// selectSegments applies each segment in order, replacing the nodelist with
// the concatenation of every selector applied to every node.
func (ev *evaluator) selectSegments(segments []segment, input Nodelist) (Nodelist, error) {
	current := input

	for _, seg := range segments {
		var next Nodelist
		for _, node := range current {
			visited := Nodelist{node}
			if seg.descendant {
				visited = descendants(node)
			}
			for _, at := range visited {
				for _, sel := range seg.selectors {
					selected, err := ev.applySelector(sel, at)
					if err != nil {
						return nil, err
					}
					next = append(next, selected...)
				}
			}
		}
		current = next
	}

	return current, nil
}

// descendants visits node and all its descendants pre-order depth-first,
// driven by an explicit stack so adversarially deep documents cannot exhaust
// the native call stack.
func descendants(node Node) Nodelist {
	var visited Nodelist

	pending := stack.New[Node](8)
	pending.Push(node)

	for {
		current, ok := pending.Pop()
		if !ok {
			return visited
		}
		visited = append(visited, current)

		kids := children(current)
		for i := len(kids) - 1; i >= 0; i-- {
			pending.Push(kids[i])
		}
	}
}

// children returns the ordered child nodes: array elements by index, object
// members by sorted key. Scalars have no children.
func children(node Node) Nodelist {
	switch value := node.Value.(type) {
	case []any:
		kids := make(Nodelist, len(value))
		for i, element := range value {
			kids[i] = Node{Value: element, Path: childPathIndex(node.Path, i)}
		}
		return kids
	case map[string]any:
		kids := make(Nodelist, 0, len(value))
		for _, key := range slices.Sorted(maps.Keys(value)) {
			kids = append(kids, Node{Value: value[key], Path: childPathName(node.Path, key)})
		}
		return kids
	default:
		return nil
	}
}

func (ev *evaluator) applySelector(sel selector, node Node) (Nodelist, error) {
	switch s := sel.(type) {
	case nameSelector:
		object, ok := node.Value.(map[string]any)
		if !ok {
			return nil, nil
		}
		value, ok := object[string(s)]
		if !ok {
			return nil, nil
		}
		return Nodelist{{Value: value, Path: childPathName(node.Path, string(s))}}, nil
	case wildcardSelector:
		return children(node), nil
	case indexSelector:
		return selectIndex(node, int(s)), nil
	case sliceSelector:
		return selectSlice(node, s), nil
	case filterSelector:
		return ev.selectFilter(node, s)
	default:
		return nil, evaluationErrorf(ErrInternal, "unhandled selector %T", sel)
	}
}

// selectIndex resolves negative indices from the end; anything outside the
// array after normalization yields no match.
func selectIndex(node Node, index int) Nodelist {
	array, ok := node.Value.([]any)
	if !ok {
		return nil
	}

	normalized := index
	if normalized < 0 {
		normalized += len(array)
	}
	if normalized < 0 || normalized >= len(array) {
		return nil
	}

	return Nodelist{{Value: array[normalized], Path: childPathIndex(node.Path, normalized)}}
}

func selectSlice(node Node, sel sliceSelector) Nodelist {
	array, ok := node.Value.([]any)
	if !ok {
		return nil
	}

	step := 1
	if sel.step != nil {
		step = *sel.step
	}
	if step == 0 {
		return nil
	}

	lower, upper := sliceBounds(sel.start, sel.end, step, len(array))

	var selected Nodelist
	if step > 0 {
		for i := lower; i < upper; i += step {
			selected = append(selected, Node{Value: array[i], Path: childPathIndex(node.Path, i)})
		}
	} else {
		for i := upper; i > lower; i += step {
			selected = append(selected, Node{Value: array[i], Path: childPathIndex(node.Path, i)})
		}
	}
	return selected
}

// sliceBounds normalizes and clamps slice bounds: negative bounds offset
// from the array length, absent bounds default to the full array in the
// direction implied by the sign of step.
func sliceBounds(start, end *int, step, length int) (lower, upper int) {
	var normStart, normEnd int

	if step > 0 {
		normStart, normEnd = 0, length
	} else {
		normStart, normEnd = length-1, -length-1
	}

	if start != nil {
		normStart = *start
		if normStart < 0 {
			normStart += length
		}
	}
	if end != nil {
		normEnd = *end
		if normEnd < 0 {
			normEnd += length
		}
	}

	if step > 0 {
		lower = min(max(normStart, 0), length)
		upper = min(max(normEnd, 0), length)
	} else {
		upper = min(max(normStart, -1), length-1)
		lower = min(max(normEnd, -1), length-1)
	}
	return lower, upper
}

// selectFilter keeps the children of node for which the filter expression is
// true, with the child as the current node and the document as root.
func (ev *evaluator) selectFilter(node Node, sel filterSelector) (Nodelist, error) {
	var selected Nodelist

	for _, child := range children(node) {
		keep, err := ev.evalFilter(sel.expr, child)
		if err != nil {
			return nil, err
		}
		if keep {
			selected = append(selected, child)
		}
	}
	return selected, nil
}
