// Package parsequery parses URL query strings into key/value mappings,
// with configurable decoding, multi-value key detection, and separator
// handling. It is a pure string-to-structure transform: no I/O, no
// persistent state beyond the mutable DefaultOptions.
//
// Nested bracket syntax (a[b]=c and friends) is deliberately not
// interpreted here; a key like "a[]" is just a key. Structure building
// belongs to a layer above this parser.
package parsequery

import (
	"fmt"
	"strings"
)

// Query is the parsed mapping. Scalar keys hold a single decoded value;
// keys matched by the ArrayKeys predicate hold a []any in the order the
// repeated key occurred in the input.
type Query map[string]any

// Has reports whether the key is present in the mapping.
func (q Query) Has(key string) bool {
	_, ok := q[key]
	return ok
}

// Get returns the value for key. For an array key it returns the last
// element, or nil if the key is missing.
func (q Query) Get(key string) any {
	v, ok := q[key]
	if !ok {
		return nil
	}
	if seq, ok := v.([]any); ok {
		if len(seq) == 0 {
			return nil
		}
		return seq[len(seq)-1]
	}
	return v
}

// All returns every value for key: the full sequence for an array key,
// a one-element slice for a scalar key, nil if the key is missing.
func (q Query) All(key string) []any {
	v, ok := q[key]
	if !ok {
		return nil
	}
	if seq, ok := v.([]any); ok {
		return seq
	}
	return []any{v}
}

// Parse parses a raw query string using DefaultOptions and returns the
// decoded mapping:
// - Tokens are split on the configured separator; only the first '=' of
//   a token separates key from value
// - Keys/values are percent-decoded (CESU-8), the first literal '+'
//   becoming a space
// - Duplicate keys: last-wins for plain keys; keys matched by ArrayKeys
//   accumulate into an ordered []any
// A leading '?' is stripped, so location-style strings parse directly.
func Parse(query string) (Query, error) {
	return ParseOptions(Options{Query: String(query)})
}

// ParseOptions is like Parse but takes a full options bundle. Fields left
// zero inherit from DefaultOptions, then from the built-in fallbacks. If
// opts.Query is absent, the query text comes from the Source callback
// (the current-location collaborator), or "" when none is configured.
func ParseOptions(opts Options) (Query, error) {
	opts = opts.merged()

	query := opts.Query.Text
	if !opts.Query.Present && opts.Source != nil {
		query = opts.Source()
	}

	// Trim optional leading '?'
	query = strings.TrimPrefix(query, "?")

	out := make(Query)
	for _, raw := range opts.Separator.Split(query) {
		// Split once on the first '='; a token without '=' has an absent
		// value, distinct from the empty value of "key=". Empty tokens
		// (doubled or trailing separators, or an empty query) stay in:
		// they decode to the empty key.
		rawKey, rawValue := splitPair(raw)

		dk, err := opts.Decode(String(rawKey), Null, &opts)
		if err != nil {
			return nil, err
		}
		key := keyString(dk)

		dv, err := opts.Decode(rawValue, String(key), &opts)
		if err != nil {
			return nil, err
		}

		if opts.ArrayKeys.Match(key) {
			seq, _ := out[key].([]any)
			out[key] = append(seq, dv)
		} else {
			out[key] = dv
		}
	}

	return out, nil
}

// splitPair splits a raw token into key and value, only on the first '='.
// A missing '=' yields an absent value.
func splitPair(s string) (string, Input) {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return s[:i], String(s[i+1:])
	}
	return s, Null
}

// keyString coerces a decoded key to its mapping-key representation.
// Custom decoders may return non-string values; they are stringified
// here since the output mapping is keyed by string.
func keyString(v any) string {
	switch k := v.(type) {
	case string:
		return k
	case nil:
		return ""
	default:
		return fmt.Sprint(k)
	}
}
