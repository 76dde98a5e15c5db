package jsonpath

import (
	"strconv"
	"strings"
)

// Query is a compiled JSONPath expression. It is immutable after Parse and
// safe for concurrent Select calls.
type Query struct {
	segments []segment
	registry *Registry
}

type segment struct {
	descendant bool
	selectors  []selector
}

// selector is the closed set of selection operations the grammar admits.
type selector interface {
	writeTo(b *strings.Builder)
}

type (
	nameSelector     string
	wildcardSelector struct{}
	indexSelector    int
)

// sliceSelector tracks bound presence with pointers; absent bounds default
// during evaluation depending on the sign of step.
type sliceSelector struct {
	start *int
	end   *int
	step  *int
}

type filterSelector struct {
	expr filterExpr
}

// filterExpr is the closed set of filter-expression nodes.
type filterExpr interface {
	writeExpr(b *strings.Builder)
}

type orExpr struct {
	left  filterExpr
	right filterExpr
}

type andExpr struct {
	left  filterExpr
	right filterExpr
}

type notExpr struct {
	operand filterExpr
}

type comparisonExpr struct {
	left  comparableExpr
	op    compareOp
	right comparableExpr
}

// existsExpr tests an embedded query for a single truthy match.
type existsExpr struct {
	query filterQuery
}

// callExpr is a function call standing alone as a boolean atom.
type callExpr struct {
	call functionCall
}

type compareOp int

const (
	opEq compareOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
)

func (op compareOp) String() string {
	switch op {
	case opEq:
		return "=="
	case opNe:
		return "!="
	case opLt:
		return "<"
	case opLe:
		return "<="
	case opGt:
		return ">"
	default:
		return ">="
	}
}

// comparableExpr is one side of a comparison: literal, embedded query, or
// function call.
type comparableExpr interface {
	writeComparable(b *strings.Builder)
}

type literalExpr struct {
	value any
}

// filterQuery is a query embedded in a filter; relative queries start from
// the current node, absolute ones from the document root.
type filterQuery struct {
	relative bool
	segments []segment
}

type queryExpr struct {
	query filterQuery
}

type functionCall struct {
	name string
	args []comparableExpr
	pos  int
}

type funcExpr struct {
	call functionCall
}

// String renders the canonical bracketed form of the query.
func (q *Query) String() string {
	var b strings.Builder
	b.WriteByte('$')
	writeSegments(&b, q.segments)
	return b.String()
}

func writeSegments(b *strings.Builder, segments []segment) {
	for _, seg := range segments {
		if seg.descendant {
			b.WriteString("..")
		}
		b.WriteByte('[')
		for i, sel := range seg.selectors {
			if i > 0 {
				b.WriteString(", ")
			}
			sel.writeTo(b)
		}
		b.WriteByte(']')
	}
}

func (s nameSelector) writeTo(b *strings.Builder) {
	b.WriteByte('\'')
	b.WriteString(escapeName(string(s)))
	b.WriteByte('\'')
}

func (wildcardSelector) writeTo(b *strings.Builder) {
	b.WriteByte('*')
}

func (s indexSelector) writeTo(b *strings.Builder) {
	b.WriteString(strconv.Itoa(int(s)))
}

func (s sliceSelector) writeTo(b *strings.Builder) {
	if s.start != nil {
		b.WriteString(strconv.Itoa(*s.start))
	}
	b.WriteByte(':')
	if s.end != nil {
		b.WriteString(strconv.Itoa(*s.end))
	}
	if s.step != nil {
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(*s.step))
	}
}

func (s filterSelector) writeTo(b *strings.Builder) {
	b.WriteByte('?')
	s.expr.writeExpr(b)
}

func (e orExpr) writeExpr(b *strings.Builder) {
	e.left.writeExpr(b)
	b.WriteString(" || ")
	e.right.writeExpr(b)
}

func (e andExpr) writeExpr(b *strings.Builder) {
	writeOperand(b, e.left)
	b.WriteString(" && ")
	writeOperand(b, e.right)
}

func (e notExpr) writeExpr(b *strings.Builder) {
	b.WriteByte('!')
	switch e.operand.(type) {
	case orExpr, andExpr, comparisonExpr:
		b.WriteByte('(')
		e.operand.writeExpr(b)
		b.WriteByte(')')
	default:
		e.operand.writeExpr(b)
	}
}

// writeOperand parenthesizes lower-precedence operands.
func writeOperand(b *strings.Builder, e filterExpr) {
	if _, ok := e.(orExpr); ok {
		b.WriteByte('(')
		e.writeExpr(b)
		b.WriteByte(')')
		return
	}
	e.writeExpr(b)
}

func (e comparisonExpr) writeExpr(b *strings.Builder) {
	e.left.writeComparable(b)
	b.WriteByte(' ')
	b.WriteString(e.op.String())
	b.WriteByte(' ')
	e.right.writeComparable(b)
}

func (e existsExpr) writeExpr(b *strings.Builder) {
	writeFilterQuery(b, e.query)
}

func (e callExpr) writeExpr(b *strings.Builder) {
	writeCall(b, e.call)
}

func (e literalExpr) writeComparable(b *strings.Builder) {
	switch v := e.value.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case string:
		b.WriteByte('\'')
		b.WriteString(escapeName(v))
		b.WriteByte('\'')
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

func (e queryExpr) writeComparable(b *strings.Builder) {
	writeFilterQuery(b, e.query)
}

func (e funcExpr) writeComparable(b *strings.Builder) {
	writeCall(b, e.call)
}

func writeFilterQuery(b *strings.Builder, q filterQuery) {
	if q.relative {
		b.WriteByte('@')
	} else {
		b.WriteByte('$')
	}
	writeSegments(b, q.segments)
}

func writeCall(b *strings.Builder, call functionCall) {
	b.WriteString(call.name)
	b.WriteByte('(')
	for i, arg := range call.args {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.writeComparable(b)
	}
	b.WriteByte(')')
}
