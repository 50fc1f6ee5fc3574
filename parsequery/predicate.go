package parsequery

import (
	"github.com/dlclark/regexp2"
	"github.com/gobwas/glob"
)

// KeyPredicate decides, per decoded key, whether repeated occurrences
// accumulate into an ordered sequence instead of overwriting. It is
// evaluated purely on the key string, so a key is either array-valued or
// scalar-valued consistently for a whole parse.
type KeyPredicate interface {
	Match(key string) bool
}

// KeyFunc adapts an ordinary function to a KeyPredicate.
type KeyFunc func(key string) bool

func (f KeyFunc) Match(key string) bool { return f(key) }

// KeyNone matches no key; the built-in default for Options.ArrayKeys.
var KeyNone KeyPredicate = KeyFunc(func(string) bool { return false })

type keyPattern struct {
	compiled *regexp2.Regexp
}

// NewKeyPattern compiles expr into a regex KeyPredicate. ECMAScript
// semantics, so predicates written against the browser-side parser (e.g.
// `\[\]$` for PHP-style array keys) carry over unchanged.
func NewKeyPattern(expr string) (KeyPredicate, error) {
	compiled, err := regexp2.Compile(expr, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	return &keyPattern{compiled: compiled}, nil
}

func (p *keyPattern) Match(key string) bool {
	// error is only set on timeouts, which is the same as a match miss
	ok, _ := p.compiled.MatchString(key)
	return ok
}

type keyGlob struct {
	compiled glob.Glob
}

// NewKeyGlob compiles pattern into a glob KeyPredicate. Separators, if
// given, are the characters none of the glob wildcards will cross.
func NewKeyGlob(pattern string, separators ...rune) (KeyPredicate, error) {
	compiled, err := glob.Compile(pattern, separators...)
	if err != nil {
		return nil, err
	}
	return &keyGlob{compiled: compiled}, nil
}

func (g *keyGlob) Match(key string) bool {
	return g.compiled.Match(key)
}
