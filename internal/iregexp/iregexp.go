// Package iregexp adapts I-Regexp patterns (RFC 9485) to Go's RE2 engine.
// RE2 guarantees linear-time matching, so caller-supplied patterns cannot
// trigger catastrophic backtracking.
package iregexp

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrPattern indicates an I-Regexp pattern that cannot be compiled.
var ErrPattern = errors.New("iregexp: invalid pattern")

// Engine compiles patterns on demand.
type Engine struct{}

func New() *Engine {
	return &Engine{}
}

// FullMatch reports whether input as a whole matches the pattern.
func (e *Engine) FullMatch(pattern, input string) (bool, error) {
	re, err := compile(pattern, true)
	if err != nil {
		return false, err
	}
	return re.MatchString(input), nil
}

// Search reports whether any substring of input matches the pattern.
func (e *Engine) Search(pattern, input string) (bool, error) {
	re, err := compile(pattern, false)
	if err != nil {
		return false, err
	}
	return re.MatchString(input), nil
}

func compile(pattern string, anchored bool) (*regexp.Regexp, error) {
	translated, err := Translate(pattern)
	if err != nil {
		return nil, err
	}

	if anchored {
		translated = `\A(?:` + translated + `)\z`
	}

	re, err := regexp.Compile(translated)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPattern, pattern)
	}
	return re, nil
}

// Translate rewrites an I-Regexp pattern into RE2 syntax. The dialects
// coincide except that the I-Regexp dot excludes both \n and \r, so an
// unescaped '.' outside a character class becomes [^\n\r]. Constructs RE2
// rejects (backreferences, lookaround) are reported through compilation.
func Translate(pattern string) (string, error) {
	var out []byte
	inClass := false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			if i+1 >= len(pattern) {
				return "", fmt.Errorf("%w: trailing backslash", ErrPattern)
			}
			out = append(out, c, pattern[i+1])
			i++
		case c == '[' && !inClass:
			inClass = true
			out = append(out, c)
		case c == ']' && inClass:
			inClass = false
			out = append(out, c)
		case c == '.' && !inClass:
			out = append(out, `[^\n\r]`...)
		default:
			out = append(out, c)
		}
	}

	if inClass {
		return "", fmt.Errorf("%w: unterminated character class", ErrPattern)
	}
	return string(out), nil
}
