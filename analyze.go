package jsonpath

// Features flags the query constructs present in a query string.
type Features struct {
	Filters     bool `json:"filters"`
	Functions   bool `json:"functions"`
	Slices      bool `json:"slices"`
	Descendants bool `json:"descendants"`
	Wildcards   bool `json:"wildcards"`
}

// Complexity is a coarse three-level classification of a query.
type Complexity int

const (
	Simple Complexity = iota
	Moderate
	Complex
)

func (c Complexity) String() string {
	switch c {
	case Simple:
		return "simple"
	case Moderate:
		return "moderate"
	default:
		return "complex"
	}
}

func (c Complexity) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Analysis is the static structure report for a query. No evaluation is
// performed to produce it.
type Analysis struct {
	Query         string     `json:"query"`
	Features      Features   `json:"features"`
	Segments      int        `json:"segments"`
	Filters       int        `json:"filters"`
	FunctionCalls int        `json:"function_calls"`
	NestingDepth  int        `json:"nesting_depth"`
	Complexity    Complexity `json:"complexity"`
}

// Analyze parses the query and classifies its structure. The complexity
// score sums segment count, twice the filter and function-call counts,
// twice the descendant-segment count, slice and wildcard counts, and three
// per level of embedded-query nesting beyond the first.
func Analyze(query string) (*Analysis, error) {
	q, err := Parse(query)
	if err != nil {
		return nil, err
	}

	a := &Analysis{Query: query}
	var descendants, slices, wildcards int
	walkSegments(q.segments, 1, a, &descendants, &slices, &wildcards)

	a.Features = Features{
		Filters:     a.Filters > 0,
		Functions:   a.FunctionCalls > 0,
		Slices:      slices > 0,
		Descendants: descendants > 0,
		Wildcards:   wildcards > 0,
	}

	score := a.Segments + 2*a.Filters + 2*a.FunctionCalls + 2*descendants + slices + wildcards
	if a.NestingDepth > 1 {
		score += 3 * (a.NestingDepth - 1)
	}

	switch {
	case score >= 9 || a.NestingDepth >= 2:
		a.Complexity = Complex
	case score >= 4:
		a.Complexity = Moderate
	default:
		a.Complexity = Simple
	}

	return a, nil
}

// walkSegments tallies structure; depth counts embedded-query nesting and
// only top-level segments contribute to the segment count.
func walkSegments(segments []segment, depth int, a *Analysis, descendants, slices, wildcards *int) {
	for _, seg := range segments {
		if depth == 1 {
			a.Segments++
		}
		if seg.descendant {
			*descendants++
		}
		for _, sel := range seg.selectors {
			switch s := sel.(type) {
			case sliceSelector:
				*slices++
			case wildcardSelector:
				*wildcards++
			case filterSelector:
				a.Filters++
				walkFilterExpr(s.expr, depth, a, descendants, slices, wildcards)
			}
		}
	}
}

func walkFilterExpr(expr filterExpr, depth int, a *Analysis, descendants, slices, wildcards *int) {
	if depth > a.NestingDepth {
		a.NestingDepth = depth
	}

	switch e := expr.(type) {
	case andExpr:
		walkFilterExpr(e.left, depth, a, descendants, slices, wildcards)
		walkFilterExpr(e.right, depth, a, descendants, slices, wildcards)
	case orExpr:
		walkFilterExpr(e.left, depth, a, descendants, slices, wildcards)
		walkFilterExpr(e.right, depth, a, descendants, slices, wildcards)
	case notExpr:
		walkFilterExpr(e.operand, depth, a, descendants, slices, wildcards)
	case comparisonExpr:
		walkComparable(e.left, depth, a, descendants, slices, wildcards)
		walkComparable(e.right, depth, a, descendants, slices, wildcards)
	case existsExpr:
		walkSegments(e.query.segments, depth+1, a, descendants, slices, wildcards)
	case callExpr:
		a.FunctionCalls++
		for _, arg := range e.call.args {
			walkComparable(arg, depth, a, descendants, slices, wildcards)
		}
	}
}

func walkComparable(expr comparableExpr, depth int, a *Analysis, descendants, slices, wildcards *int) {
	switch e := expr.(type) {
	case queryExpr:
		walkSegments(e.query.segments, depth+1, a, descendants, slices, wildcards)
	case funcExpr:
		a.FunctionCalls++
		for _, arg := range e.call.args {
			walkComparable(arg, depth, a, descendants, slices, wildcards)
		}
	}
}
