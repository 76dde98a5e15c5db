package jsonpath

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenRoot
	tokenCurrent
	tokenDot
	tokenDotDot
	tokenWildcard
	tokenLBracket
	tokenRBracket
	tokenLParen
	tokenRParen
	tokenComma
	tokenColon
	tokenFilter
	tokenNot
	tokenAnd
	tokenOr
	tokenEq
	tokenNe
	tokenLt
	tokenLe
	tokenGt
	tokenGe
	tokenNumber
	tokenString
	tokenName
	tokenFunction
)

// token carries the literal text span and its byte offset in the query.
// String tokens hold the already-unescaped literal.
type token struct {
	typ     tokenType
	literal string
	pos     int
}

func lex(input string) ([]token, error) {
	tokens := make([]token, 0, len(input)/2)
	pos := 0

	for pos < len(input) {
		r, size := utf8.DecodeRuneInString(input[pos:])
		if unicode.IsSpace(r) {
			pos += size
			continue
		}

		if isNameStart(r) {
			start := pos
			pos += size
			for pos < len(input) {
				r, size := utf8.DecodeRuneInString(input[pos:])
				if !isNamePart(r) {
					break
				}
				pos += size
			}
			typ := tokenName
			if pos < len(input) && input[pos] == '(' {
				typ = tokenFunction
			}
			tokens = append(tokens, token{typ: typ, literal: input[start:pos], pos: start})
			continue
		}

		if isNumberStart(input, pos) {
			numberToken, nextPos, err := lexNumber(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, numberToken)
			pos = nextPos
			continue
		}

		if input[pos] == '\'' || input[pos] == '"' {
			literal, nextPos, err := lexString(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{typ: tokenString, literal: literal, pos: pos})
			pos = nextPos
			continue
		}

		switch input[pos] {
		case '$':
			tokens = append(tokens, token{typ: tokenRoot, pos: pos})
			pos++
		case '@':
			tokens = append(tokens, token{typ: tokenCurrent, pos: pos})
			pos++
		case '.':
			if pos+1 < len(input) && input[pos+1] == '.' {
				tokens = append(tokens, token{typ: tokenDotDot, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenDot, pos: pos})
				pos++
			}
		case '*':
			tokens = append(tokens, token{typ: tokenWildcard, pos: pos})
			pos++
		case '[':
			tokens = append(tokens, token{typ: tokenLBracket, pos: pos})
			pos++
		case ']':
			tokens = append(tokens, token{typ: tokenRBracket, pos: pos})
			pos++
		case '(':
			tokens = append(tokens, token{typ: tokenLParen, pos: pos})
			pos++
		case ')':
			tokens = append(tokens, token{typ: tokenRParen, pos: pos})
			pos++
		case ',':
			tokens = append(tokens, token{typ: tokenComma, pos: pos})
			pos++
		case ':':
			tokens = append(tokens, token{typ: tokenColon, pos: pos})
			pos++
		case '?':
			tokens = append(tokens, token{typ: tokenFilter, pos: pos})
			pos++
		case '!':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenNe, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenNot, pos: pos})
				pos++
			}
		case '&':
			if pos+1 < len(input) && input[pos+1] == '&' {
				tokens = append(tokens, token{typ: tokenAnd, pos: pos})
				pos += 2
			} else {
				return nil, syntaxErrorf(pos, "unexpected '&', expected '&&'")
			}
		case '|':
			if pos+1 < len(input) && input[pos+1] == '|' {
				tokens = append(tokens, token{typ: tokenOr, pos: pos})
				pos += 2
			} else {
				return nil, syntaxErrorf(pos, "unexpected '|', expected '||'")
			}
		case '=':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenEq, pos: pos})
				pos += 2
			} else {
				return nil, syntaxErrorf(pos, "unexpected '=', expected '=='")
			}
		case '<':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenLe, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenLt, pos: pos})
				pos++
			}
		case '>':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenGe, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenGt, pos: pos})
				pos++
			}
		default:
			return nil, syntaxErrorf(pos, "unexpected character %q", input[pos])
		}
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: len(input)})
	return tokens, nil
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isNamePart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumberStart(input string, pos int) bool {
	if input[pos] >= '0' && input[pos] <= '9' {
		return true
	}
	if input[pos] == '-' {
		return pos+1 < len(input) && input[pos+1] >= '0' && input[pos+1] <= '9'
	}
	return false
}

// lexNumber keeps the literal text so the parser can distinguish the
// integer form from the floating form by the presence of '.', 'e' or 'E'.
func lexNumber(input string, start int) (token, int, error) {
	pos := start
	if input[pos] == '-' {
		pos++
	}

	digitStart := pos
	for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
		pos++
	}
	if pos == digitStart {
		return token{}, 0, syntaxErrorf(start, "invalid number")
	}

	if pos < len(input) && input[pos] == '.' {
		pos++
		fracStart := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		if pos == fracStart {
			return token{}, 0, syntaxErrorf(start, "invalid decimal number")
		}
	}

	if pos < len(input) && (input[pos] == 'e' || input[pos] == 'E') {
		pos++
		if pos < len(input) && (input[pos] == '+' || input[pos] == '-') {
			pos++
		}
		expStart := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		if pos == expStart {
			return token{}, 0, syntaxErrorf(start, "invalid number exponent")
		}
	}

	literal := input[start:pos]
	if _, err := strconv.ParseFloat(literal, 64); err != nil {
		return token{}, 0, syntaxErrorf(start, "invalid number %q", literal)
	}

	return token{typ: tokenNumber, literal: literal, pos: start}, pos, nil
}

func lexString(input string, start int) (string, int, error) {
	return unescapeString(input, start)
}

// unescapeString decodes a quoted string starting at the opening quote,
// returning the unescaped content and the index just past the closing quote.
// Both the tokenizer and name-selector construction go through here.
func unescapeString(input string, start int) (string, int, error) {
	quote := input[start]
	var b strings.Builder

	pos := start + 1
	for pos < len(input) {
		ch := input[pos]
		if ch == quote {
			return b.String(), pos + 1, nil
		}

		if ch == '\\' {
			pos++
			if pos >= len(input) {
				return "", 0, syntaxErrorf(start, "unterminated escape sequence")
			}
			switch input[pos] {
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '/':
				b.WriteByte('/')
			case '\\':
				b.WriteByte('\\')
			case '\'', '"':
				b.WriteByte(input[pos])
			case 'u':
				r, next, err := decodeUnicodeEscape(input, pos-1)
				if err != nil {
					return "", 0, err
				}
				b.WriteRune(r)
				pos = next - 1
			default:
				return "", 0, syntaxErrorf(pos-1, "invalid escape sequence '\\%c'", input[pos])
			}
			pos++
			continue
		}

		if ch == '\n' || ch == '\r' {
			return "", 0, syntaxErrorf(start, "unterminated string")
		}

		b.WriteByte(ch)
		pos++
	}

	return "", 0, syntaxErrorf(start, "unterminated string")
}

// decodeUnicodeEscape decodes a \uXXXX sequence starting at the backslash,
// consuming a second \uXXXX when the first is a high surrogate.
func decodeUnicodeEscape(input string, start int) (rune, int, error) {
	first, next, err := hexEscape(input, start)
	if err != nil {
		return 0, 0, err
	}

	if !utf16.IsSurrogate(first) {
		return first, next, nil
	}

	if first >= 0xDC00 {
		return 0, 0, syntaxErrorf(start, "unpaired low surrogate in unicode escape")
	}

	if next+1 >= len(input) || input[next] != '\\' || input[next+1] != 'u' {
		return 0, 0, syntaxErrorf(start, "high surrogate missing its low surrogate pair")
	}

	second, afterSecond, err := hexEscape(input, next)
	if err != nil {
		return 0, 0, err
	}

	combined := utf16.DecodeRune(first, second)
	if combined == utf8.RuneError {
		return 0, 0, syntaxErrorf(start, "invalid surrogate pair in unicode escape")
	}

	return combined, afterSecond, nil
}

// hexEscape reads the four hex digits of one \uXXXX sequence.
func hexEscape(input string, start int) (rune, int, error) {
	digits := start + 2
	if digits+4 > len(input) {
		return 0, 0, syntaxErrorf(start, "truncated unicode escape")
	}

	value, err := strconv.ParseUint(input[digits:digits+4], 16, 32)
	if err != nil {
		return 0, 0, syntaxErrorf(start, "invalid unicode escape '\\u%s'", input[digits:digits+4])
	}

	return rune(value), digits + 4, nil
}
