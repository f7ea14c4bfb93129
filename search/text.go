package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/pinyinsearch/core"
)

// Query is a parsed search request.
type Query struct {
	Keywords string
	Kind     core.ItemKind // zero means any kind
	Ext      string        // lowercase extension including the dot
}

var kindFilters = map[string]core.ItemKind{
	"file": core.ItemKindFile,
	"dir":  core.ItemKindFolder,
	"cmd":  core.ItemKindCommand,
	"tag":  core.ItemKindTag,
}

// ParseQuery splits a trailing kind filter off raw. A query made only of
// a filter word is treated as keywords.
func ParseQuery(raw string) Query {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return Query{}
	}

	q := Query{Keywords: strings.Join(tokens, " ")}
	if len(tokens) > 1 {
		last := strings.ToLower(tokens[len(tokens)-1])
		kind, isKind := kindFilters[last]
		switch {
		case isKind:
			q.Kind = kind
		case strings.HasPrefix(last, ".") && len(last) > 1:
			q.Kind = core.ItemKindFile
			q.Ext = last
		default:
			return q
		}
		q.Keywords = strings.Join(tokens[:len(tokens)-1], " ")
	}
	return q
}

// Accepts reports whether item passes the query's kind filter.
func (q Query) Accepts(item *core.Item) bool {
	if q.Kind != 0 && item.Kind != q.Kind {
		return false
	}
	if q.Ext != "" && !strings.HasSuffix(strings.ToLower(item.Path), q.Ext) {
		return false
	}
	return true
}

// compactQuery lowercases s and drops whitespace and apostrophes, so that
// "du shu" and "xi'an" match continuous readings.
func compactQuery(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' {
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// looseMatch reports whether query is a subsequence of target.
func looseMatch(query, target string) bool {
	i, j := 0, 0
	for i < len(query) && j < len(target) {
		if query[i] == target[j] {
			i++
		}
		j++
	}
	return i == len(query)
}

// withinOneEdit reports whether a and b differ by at most one
// insertion, deletion or substitution.
func withinOneEdit(a, b string) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	if len(b)-len(a) > 1 {
		return false
	}

	i := 0
	for i < len(a) && a[i] == b[i] {
		i++
	}
	if i == len(a) {
		return true
	}
	if len(a) == len(b) {
		return a[i+1:] == b[i+1:]
	}
	return a[i:] == b[i+1:]
}
