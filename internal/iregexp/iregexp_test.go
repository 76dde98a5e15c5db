package iregexp

import (
	"errors"
	"testing"
)

func TestFullMatch(t *testing.T) {
	t.Parallel()

	engine := New()

	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{name: "whole_string", pattern: "foo", input: "foo", want: true},
		{name: "substring_rejected", pattern: "foo", input: "xfooy", want: false},
		{name: "anchored_wildcards", pattern: "x.*y", input: "xfooy", want: true},
		{name: "alternation", pattern: "cat|dog", input: "dog", want: true},
		{name: "character_class", pattern: "[a-c]+", input: "abcb", want: true},
		{name: "quantifier", pattern: "a{2,3}", input: "aa", want: true},
		{name: "dot_excludes_newline", pattern: "a.b", input: "a\nb", want: false},
		{name: "dot_excludes_carriage_return", pattern: "a.b", input: "a\rb", want: false},
		{name: "dot_matches_other", pattern: "a.b", input: "axb", want: true},
		{name: "dot_inside_class_is_literal", pattern: "a[.]b", input: "a.b", want: true},
		{name: "escaped_dot", pattern: `a\.b`, input: "a.b", want: true},
		{name: "escaped_dot_rejects_other", pattern: `a\.b`, input: "axb", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.FullMatch(tt.pattern, tt.input)
			if err != nil {
				t.Fatalf("FullMatch() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("FullMatch(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	engine := New()

	tests := []struct {
		name    string
		pattern string
		input   string
		want    bool
	}{
		{name: "substring", pattern: "foo", input: "xfooy", want: true},
		{name: "no_match", pattern: "bar", input: "xfooy", want: false},
		{name: "anchors_still_work", pattern: "^x", input: "xfooy", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := engine.Search(tt.pattern, tt.input)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Search(%q, %q) = %v, want %v", tt.pattern, tt.input, got, tt.want)
			}
		})
	}
}

func TestInvalidPatterns(t *testing.T) {
	t.Parallel()

	engine := New()

	for _, pattern := range []string{"[", "(", "a{2,1}", `foo\`} {
		if _, err := engine.Search(pattern, "x"); !errors.Is(err, ErrPattern) {
			t.Fatalf("Search(%q) error = %v, want ErrPattern", pattern, err)
		}
	}
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{name: "dot_rewritten", pattern: "a.b", want: `a[^\n\r]b`},
		{name: "escaped_dot_kept", pattern: `a\.b`, want: `a\.b`},
		{name: "class_dot_kept", pattern: "a[.]b", want: "a[.]b"},
		{name: "plain", pattern: "abc", want: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Translate(tt.pattern)
			if err != nil {
				t.Fatalf("Translate() error = %v", err)
			}
			if got != tt.want {
				t.Fatalf("Translate(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}
