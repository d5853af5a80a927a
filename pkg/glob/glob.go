// Package glob provides Redis-style glob pattern matching for KeyMesh.
//
// Patterns support two metacharacters: '*' matches any run of characters
// and '?' matches exactly one character. The characters in metachars
// match literally; any other regexp syntax, such as '[', ']', '{' and
// '}', is passed through to the regexp, so "[ab]" is a character class
// and an unbalanced "a[" fails to compile. A pattern is always anchored
// to the full string.
package glob

import (
	"regexp"
	"strings"
)

// metachars are regexp metacharacters that must be escaped so they
// match literally inside a glob pattern.
const metachars = `.()+|^$@%\`

// Pattern is a compiled glob pattern.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile translates a glob pattern into its compiled form.
func Compile(pattern string) (*Pattern, error) {
	var b strings.Builder
	b.WriteString(`\A`)
	for _, r := range pattern {
		switch {
		case r == '*':
			b.WriteString(`.*`)
		case r == '?':
			b.WriteString(`.`)
		case strings.ContainsRune(metachars, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(`\z`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}
	return &Pattern{source: pattern, re: re}, nil
}

// MustCompile is like Compile but panics on error. Intended for patterns
// known to be valid, such as the default "*".
func MustCompile(pattern string) *Pattern {
	p, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return p
}

// Match reports whether s matches the pattern.
func (p *Pattern) Match(s string) bool {
	return p.re.MatchString(s)
}

// String returns the original glob source.
func (p *Pattern) String() string {
	return p.source
}

// MatchAll reports whether the pattern matches every string, i.e. it is "*".
func (p *Pattern) MatchAll() bool {
	return p.source == "*"
}
