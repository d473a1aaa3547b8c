// Package filter implements the name filter and the bulk link collection over addon records.
// All functions are pure over their inputs and safe for concurrent use.
package filter

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"addonlist/internal/addon"
	"addonlist/internal/logging"

	"github.com/dlclark/regexp2"
)

// matchTimeout bounds a single match against a user supplied pattern.
const matchTimeout = 50 * time.Millisecond

// Normalize strips whitespace and apostrophes so that display names and
// queries compare on the same footing.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\'' || r == '\uFEFF' {
			return -1
		}
		return r
	}, s)
}

// Matcher is a compiled, case-insensitive "contains" filter.
// The zero value matches everything.
type Matcher struct {
	query string
	re    *regexp2.Regexp
	bad   bool
}

// Compile builds a matcher for .*<Normalize(query)>.* using ECMAScript
// regular expression syntax. A query the engine rejects yields a match-all
// matcher with Bad set; Compile never fails.
func Compile(query string) Matcher {
	m := Matcher{query: query}
	pattern, err := ecmaPattern(Normalize(query))
	if err == nil {
		var re *regexp2.Regexp
		re, err = regexp2.Compile(".*"+pattern+".*", regexp2.IgnoreCase|regexp2.ECMAScript)
		m.re = re
	}
	if err != nil {
		logging.FilterDebug("bad query %q: %v", query, err)
		m.bad = true
		return m
	}
	m.re.MatchTimeout = matchTimeout
	return m
}

// ecmaPattern narrows regexp2 to what a browser RegExp without the u flag
// accepts. Groups other than (?: (?= (?! (?<= (?<! and (?<name> are
// rejected, and \p or \P is an identity escape for the letter.
func ecmaPattern(p string) (string, error) {
	var b strings.Builder
	b.Grow(len(p))
	inClass := false
	for i := 0; i < len(p); i++ {
		c := p[i]
		switch {
		case c == '\\' && i+1 < len(p):
			if n := p[i+1]; n == 'p' || n == 'P' {
				b.WriteByte(n)
			} else {
				b.WriteByte(c)
				b.WriteByte(n)
			}
			i++
			continue
		case c == '[' && !inClass:
			inClass = true
		case c == ']' && inClass:
			inClass = false
		case c == '(' && !inClass && strings.HasPrefix(p[i:], "(?"):
			if !validGroupPrefix(p[i+2:]) {
				return "", fmt.Errorf("invalid group at offset %d", i)
			}
		}
		b.WriteByte(c)
	}
	return b.String(), nil
}

func validGroupPrefix(rest string) bool {
	if rest == "" {
		return false
	}
	switch rest[0] {
	case ':', '=', '!':
		return true
	case '<':
		if len(rest) < 2 {
			return false
		}
		n := rest[1]
		return n == '=' || n == '!' || n == '_' || n == '$' ||
			(n >= 'a' && n <= 'z') || (n >= 'A' && n <= 'Z')
	}
	return false
}

// Query returns the raw query the matcher was built from.
func (m Matcher) Query() string { return m.query }

// Bad reports whether the query was invalid and the matcher degraded to match-all.
func (m Matcher) Bad() bool { return m.bad }

// Match reports whether the normalized name satisfies the filter.
func (m Matcher) Match(name string) bool {
	if m.re == nil {
		return true
	}
	ok, err := m.re.MatchString(Normalize(name))
	if err != nil {
		// A runaway pattern must not hide rows.
		logging.FilterDebug("match %q against %q: %v", name, m.query, err)
		return true
	}
	return ok
}

// VisibleRows returns the rows in the requested hidden partition whose names
// match m, preserving source order. showHidden selects only hidden rows;
// otherwise hidden rows are excluded.
func VisibleRows(rows []addon.Record, m Matcher, showHidden bool) []addon.Record {
	out := make([]addon.Record, 0, len(rows))
	for _, r := range rows {
		if r.Hidden != showHidden {
			continue
		}
		if !m.Match(r.Name) {
			continue
		}
		out = append(out, r)
	}
	return out
}
