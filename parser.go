package jsonpath

import (
	"strconv"
	"strings"
)

const defaultMaxNesting = 64

// Parser compiles query strings against a function registry. The zero value
// is not usable; construct with NewParser.
type Parser struct {
	registry   *Registry
	maxNesting int
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithRegistry makes the parser validate standalone function calls against
// reg, and binds compiled queries to it for execution.
func WithRegistry(reg *Registry) ParserOption {
	return func(p *Parser) {
		p.registry = reg
	}
}

// WithMaxNesting caps parenthesis and filter nesting depth.
func WithMaxNesting(depth int) ParserOption {
	return func(p *Parser) {
		if depth > 0 {
			p.maxNesting = depth
		}
	}
}

func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{maxNesting: defaultMaxNesting}
	for _, opt := range opts {
		opt(p)
	}
	if p.registry == nil {
		p.registry = NewRegistry()
	}
	return p
}

var defaultParser = NewParser()

// Parse compiles a JSONPath query using the default parser and the built-in
// function registry.
func Parse(input string) (*Query, error) {
	return defaultParser.Parse(input)
}

// MustParse is Parse for queries known valid at compile time.
func MustParse(input string) *Query {
	q, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return q
}

func (p *Parser) Parse(input string) (*Query, error) {
	tokens, err := lex(input)
	if err != nil {
		return nil, err
	}

	state := parserState{
		tokens:     tokens,
		registry:   p.registry,
		maxNesting: p.maxNesting,
	}

	if state.current().typ != tokenRoot {
		return nil, syntaxErrorf(state.current().pos, "query must start with '$'")
	}
	state.advance()

	segments, err := state.parseSegments()
	if err != nil {
		return nil, err
	}

	if tok := state.current(); tok.typ != tokenEOF {
		return nil, syntaxErrorf(tok.pos, "unexpected trailing token")
	}

	return &Query{segments: segments, registry: p.registry}, nil
}

type parserState struct {
	tokens     []token
	pos        int
	registry   *Registry
	maxNesting int
	depth      int
}

func (p *parserState) current() token {
	if p.pos >= len(p.tokens) {
		return token{typ: tokenEOF, pos: len(p.tokens)}
	}
	return p.tokens[p.pos]
}

func (p *parserState) advance() token {
	tok := p.current()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *parserState) expect(typ tokenType, what string) (token, error) {
	tok := p.current()
	if tok.typ != typ {
		return token{}, syntaxErrorf(tok.pos, "expected %s", what)
	}
	return p.advance(), nil
}

// parseSegments consumes segments until a token that cannot begin one. The
// same loop serves top-level queries and queries embedded in filters; the
// caller decides whether the stopping token is legal.
func (p *parserState) parseSegments() ([]segment, error) {
	var segments []segment

	for {
		switch p.current().typ {
		case tokenDot:
			p.advance()
			sel, err := p.parseShorthandSelector()
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment{selectors: []selector{sel}})
		case tokenDotDot:
			p.advance()
			seg, err := p.parseDescendantSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, seg)
		case tokenLBracket:
			selectors, err := p.parseBracketedSelection()
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment{selectors: selectors})
		default:
			return segments, nil
		}
	}
}

func (p *parserState) parseShorthandSelector() (selector, error) {
	switch tok := p.current(); tok.typ {
	case tokenName:
		p.advance()
		return nameSelector(tok.literal), nil
	case tokenWildcard:
		p.advance()
		return wildcardSelector{}, nil
	default:
		return nil, syntaxErrorf(tok.pos, "expected member name or '*' after '.'")
	}
}

func (p *parserState) parseDescendantSegment() (segment, error) {
	switch tok := p.current(); tok.typ {
	case tokenName:
		p.advance()
		return segment{descendant: true, selectors: []selector{nameSelector(tok.literal)}}, nil
	case tokenWildcard:
		p.advance()
		return segment{descendant: true, selectors: []selector{wildcardSelector{}}}, nil
	case tokenLBracket:
		selectors, err := p.parseBracketedSelection()
		if err != nil {
			return segment{}, err
		}
		return segment{descendant: true, selectors: selectors}, nil
	default:
		return segment{}, syntaxErrorf(tok.pos, "expected member name, '*' or '[' after '..'")
	}
}

func (p *parserState) parseBracketedSelection() ([]selector, error) {
	if _, err := p.expect(tokenLBracket, "'['"); err != nil {
		return nil, err
	}

	var selectors []selector
	for {
		sel, err := p.parseSelector()
		if err != nil {
			return nil, err
		}
		selectors = append(selectors, sel)

		if p.current().typ != tokenComma {
			break
		}
		p.advance()
	}

	if _, err := p.expect(tokenRBracket, "']'"); err != nil {
		return nil, err
	}
	return selectors, nil
}

// parseSelector resolves the selector kind by one token of lookahead.
func (p *parserState) parseSelector() (selector, error) {
	switch tok := p.current(); tok.typ {
	case tokenFilter:
		p.advance()
		if err := p.enterNesting(tok.pos); err != nil {
			return nil, err
		}
		expr, err := p.parseFilterExpr()
		if err != nil {
			return nil, err
		}
		p.depth--
		return filterSelector{expr: expr}, nil
	case tokenWildcard:
		p.advance()
		return wildcardSelector{}, nil
	case tokenString:
		p.advance()
		return nameSelector(tok.literal), nil
	case tokenNumber, tokenColon:
		return p.parseIndexOrSlice()
	default:
		return nil, syntaxErrorf(tok.pos, "expected selector")
	}
}

func (p *parserState) parseIndexOrSlice() (selector, error) {
	var start *int
	if p.current().typ == tokenNumber {
		tok := p.advance()
		value, err := integerLiteral(tok)
		if err != nil {
			return nil, err
		}
		if p.current().typ != tokenColon {
			return indexSelector(value), nil
		}
		start = &value
	}

	if _, err := p.expect(tokenColon, "':'"); err != nil {
		return nil, err
	}

	sel := sliceSelector{start: start}

	if p.current().typ == tokenNumber {
		tok := p.advance()
		value, err := integerLiteral(tok)
		if err != nil {
			return nil, err
		}
		sel.end = &value
	}

	if p.current().typ == tokenColon {
		p.advance()
		if p.current().typ == tokenNumber {
			tok := p.advance()
			value, err := integerLiteral(tok)
			if err != nil {
				return nil, err
			}
			sel.step = &value
		}
	}

	return sel, nil
}

// integerLiteral rejects floating-form numbers where an index, slice bound
// or step is required.
func integerLiteral(tok token) (int, error) {
	if strings.ContainsAny(tok.literal, ".eE") {
		return 0, syntaxErrorf(tok.pos, "expected integer, found %q", tok.literal)
	}
	value, err := strconv.Atoi(tok.literal)
	if err != nil {
		return 0, syntaxErrorf(tok.pos, "invalid integer %q", tok.literal)
	}
	return value, nil
}

// enterNesting counts one level of recursion-bearing structure: a filter
// selector, a '!' operator or a parenthesized group. Embedded queries reach
// filter selectors through parseSegments, so the counter bounds the whole
// parse even without parentheses. Callers decrement on success; errors abort
// the parse so unwinding does not matter.
func (p *parserState) enterNesting(pos int) error {
	p.depth++
	if p.depth > p.maxNesting {
		return syntaxErrorf(pos, "filter nesting exceeds %d levels", p.maxNesting)
	}
	return nil
}

// Filter grammar, lowest to highest binding: || then && then ! then
// comparison/existence/parenthesized atom.
func (p *parserState) parseFilterExpr() (filterExpr, error) {
	return p.parseOr()
}

func (p *parserState) parseOr() (filterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orExpr{left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseAnd() (filterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for p.current().typ == tokenAnd {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = andExpr{left: left, right: right}
	}

	return left, nil
}

func (p *parserState) parseNot() (filterExpr, error) {
	if tok := p.current(); tok.typ == tokenNot {
		p.advance()
		if err := p.enterNesting(tok.pos); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		p.depth--
		return notExpr{operand: operand}, nil
	}

	return p.parseBasic()
}

func (p *parserState) parseBasic() (filterExpr, error) {
	if p.current().typ == tokenLParen {
		if err := p.enterNesting(p.current().pos); err != nil {
			return nil, err
		}
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokenRParen, "')'"); err != nil {
			return nil, err
		}
		p.depth--
		return expr, nil
	}

	left, err := p.parseComparable()
	if err != nil {
		return nil, err
	}

	if op, ok := comparisonOp(p.current().typ); ok {
		p.advance()
		right, err := p.parseComparable()
		if err != nil {
			return nil, err
		}
		return comparisonExpr{left: left, op: op, right: right}, nil
	}

	switch atom := left.(type) {
	case funcExpr:
		// A known Value-typed function cannot stand alone as a condition.
		if fn, ok := p.registry.lookup(atom.call.name); ok && fn.Result == ValueType {
			return nil, syntaxErrorf(atom.call.pos, "function %q returns a value and requires a comparison operator", atom.call.name)
		}
		return callExpr{call: atom.call}, nil
	case queryExpr:
		return existsExpr{query: atom.query}, nil
	default:
		return nil, syntaxErrorf(p.current().pos, "literal requires a comparison operator")
	}
}

func comparisonOp(typ tokenType) (compareOp, bool) {
	switch typ {
	case tokenEq:
		return opEq, true
	case tokenNe:
		return opNe, true
	case tokenLt:
		return opLt, true
	case tokenLe:
		return opLe, true
	case tokenGt:
		return opGt, true
	case tokenGe:
		return opGe, true
	default:
		return 0, false
	}
}

func (p *parserState) parseComparable() (comparableExpr, error) {
	switch tok := p.current(); tok.typ {
	case tokenCurrent:
		p.advance()
		segments, err := p.parseSegments()
		if err != nil {
			return nil, err
		}
		return queryExpr{query: filterQuery{relative: true, segments: segments}}, nil
	case tokenRoot:
		p.advance()
		segments, err := p.parseSegments()
		if err != nil {
			return nil, err
		}
		return queryExpr{query: filterQuery{segments: segments}}, nil
	case tokenFunction:
		call, err := p.parseFunctionCall()
		if err != nil {
			return nil, err
		}
		return funcExpr{call: call}, nil
	case tokenString:
		p.advance()
		return literalExpr{value: tok.literal}, nil
	case tokenNumber:
		p.advance()
		return numberLiteral(tok)
	case tokenName:
		p.advance()
		switch tok.literal {
		case "true":
			return literalExpr{value: true}, nil
		case "false":
			return literalExpr{value: false}, nil
		case "null":
			return literalExpr{value: nil}, nil
		default:
			return nil, syntaxErrorf(tok.pos, "unexpected identifier %q", tok.literal)
		}
	default:
		return nil, syntaxErrorf(tok.pos, "expected literal, query or function call")
	}
}

// numberLiteral maps the integer form to int64 and the floating form to
// float64; the comparison engine coerces between numeric representations.
func numberLiteral(tok token) (comparableExpr, error) {
	if strings.ContainsAny(tok.literal, ".eE") {
		value, err := strconv.ParseFloat(tok.literal, 64)
		if err != nil {
			return nil, syntaxErrorf(tok.pos, "invalid number %q", tok.literal)
		}
		return literalExpr{value: value}, nil
	}

	value, err := strconv.ParseInt(tok.literal, 10, 64)
	if err != nil {
		return nil, syntaxErrorf(tok.pos, "invalid integer %q", tok.literal)
	}
	return literalExpr{value: value}, nil
}

// parseFunctionCall parses name(arg, ...); arguments are queries or literals
// only, never nested boolean expressions.
func (p *parserState) parseFunctionCall() (functionCall, error) {
	nameTok := p.advance()
	call := functionCall{name: nameTok.literal, pos: nameTok.pos}

	if _, err := p.expect(tokenLParen, "'('"); err != nil {
		return functionCall{}, err
	}

	if p.current().typ == tokenRParen {
		p.advance()
		return call, nil
	}

	for {
		arg, err := p.parseComparable()
		if err != nil {
			return functionCall{}, err
		}
		if _, ok := arg.(funcExpr); ok {
			return functionCall{}, syntaxErrorf(nameTok.pos, "function arguments must be queries or literals")
		}
		call.args = append(call.args, arg)

		if p.current().typ != tokenComma {
			break
		}
		p.advance()
	}

	if _, err := p.expect(tokenRParen, "')'"); err != nil {
		return functionCall{}, err
	}

	return call, nil
}
