// Package matchers decides whether a changed file is covered by a path
// rule. Patterns use shell-style fnmatch semantics on the literal path
// string: "*" also crosses "/", "?" is any single character, "[...]" and
// "[!...]" are character sets, and there is no escape character.
package matchers

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Pattern is a compiled glob pattern
type Pattern struct {
	raw string
	re  *regexp.Regexp
}

var cache sync.Map // pattern string -> *Pattern

// Compile translates a glob pattern. Every pattern is valid: an
// unterminated bracket is taken literally.
func Compile(pattern string) *Pattern {
	if p, ok := cache.Load(pattern); ok {
		return p.(*Pattern)
	}
	p := &Pattern{
		raw: pattern,
		re:  regexp.MustCompile(translate(pattern)),
	}
	actual, _ := cache.LoadOrStore(pattern, p)
	return actual.(*Pattern)
}

// Match reports whether path matches pattern
func Match(path, pattern string) bool {
	return Compile(pattern).Match(path)
}

// Match reports whether path matches the pattern
func (p *Pattern) Match(path string) bool {
	return p.re.MatchString(path)
}

// String returns the original glob
func (p *Pattern) String() string {
	return p.raw
}

// translate converts a glob into an anchored regular expression
func translate(pattern string) string {
	pat := []rune(pattern)
	n := len(pat)

	var b strings.Builder
	b.WriteString(`(?s)^`)

	for i := 0; i < n; {
		c := pat[i]
		i++

		switch c {
		case '*':
			for i < n && pat[i] == '*' {
				i++
			}
			b.WriteString(".*")
		case '?':
			b.WriteString(".")
		case '[':
			j := i
			if j < n && pat[j] == '!' {
				j++
			}
			if j < n && pat[j] == ']' {
				j++
			}
			for j < n && pat[j] != ']' {
				j++
			}
			if j >= n {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(charClass(pat[i:j]))
			i = j + 1
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(`\z`)
	return b.String()
}

// charClass renders the body of a bracket expression
func charClass(body []rune) string {
	negate := false
	if len(body) > 0 && body[0] == '!' {
		negate = true
		body = body[1:]
	}

	var items []string
	for k := 0; k < len(body); {
		lo := body[k]
		if k+2 < len(body) && body[k+1] == '-' {
			hi := body[k+2]
			k += 3
			// reversed ranges match nothing
			if lo <= hi {
				items = append(items, runeLiteral(lo)+"-"+runeLiteral(hi))
			}
			continue
		}
		items = append(items, runeLiteral(lo))
		k++
	}

	switch {
	case len(items) == 0 && negate:
		return "."
	case len(items) == 0:
		return `[^\x00-\x{10FFFF}]`
	case negate:
		return "[^" + strings.Join(items, "") + "]"
	default:
		return "[" + strings.Join(items, "") + "]"
	}
}

func runeLiteral(r rune) string {
	return fmt.Sprintf(`\x{%X}`, r)
}
