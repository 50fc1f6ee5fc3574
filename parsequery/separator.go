package parsequery

import (
	"strings"

	"github.com/dlclark/regexp2"
)

// Splitter breaks the query string into an ordered sequence of raw
// tokens. Implementations must return exactly one token (the empty
// string) for empty input, and must preserve empty tokens produced by
// doubled or trailing separators.
type Splitter interface {
	Split(s string) []string
}

// SeparatorString splits on a literal delimiter. The built-in default is
// SeparatorString("&").
type SeparatorString string

func (sep SeparatorString) Split(s string) []string {
	return strings.Split(s, string(sep))
}

// SeparatorRunes splits on any rune of the set, e.g.
// SeparatorRunes("&;") accepts both common pair delimiters.
type SeparatorRunes string

func (sep SeparatorRunes) Split(s string) []string {
	out := make([]string, 0, 4)
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(string(sep), r) {
			out = append(out, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	return append(out, b.String())
}

type separatorPattern struct {
	compiled *regexp2.Regexp
}

// NewSeparatorPattern compiles expr into a regex Splitter, for
// delimiters a literal can't express (e.g. "[&;]" or "&(?:amp;)?").
func NewSeparatorPattern(expr string) (Splitter, error) {
	compiled, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	return &separatorPattern{compiled: compiled}, nil
}

func (p *separatorPattern) Split(s string) []string {
	// regexp2 match indices are rune offsets
	runes := []rune(s)
	out := make([]string, 0, 4)
	last := 0
	m, err := p.compiled.FindStringMatch(s)
	for err == nil && m != nil {
		if m.Length > 0 {
			out = append(out, string(runes[last:m.Index]))
			last = m.Index + m.Length
		}
		m, err = p.compiled.FindNextMatch(m)
	}
	return append(out, string(runes[last:]))
}
