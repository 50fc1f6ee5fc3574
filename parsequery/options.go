package parsequery

// Input is a possibly-absent piece of raw text. The zero value (Null)
// means absent, which is distinct from a present empty string: the token
// "a" carries an absent value while "a=" carries an empty one, and decode
// functions may branch on the difference.
//
// Input is also how decode learns its context: the key argument is Null
// while a raw key is being decoded, and the decoded key while that key's
// value is being decoded.
type Input struct {
	Text    string
	Present bool
}

// Null is the absent Input.
var Null = Input{}

// String returns a present Input holding s.
func String(s string) Input {
	return Input{Text: s, Present: true}
}

// DecodeFunc transforms one raw token into its decoded value. It is
// invoked once per raw key (key == Null) and once per raw value (key ==
// the decoded key), and receives the fully merged options bundle so it
// can delegate to DefaultDecode or read configuration it was constructed
// with. Any returned error aborts the whole parse unmodified.
type DecodeFunc func(in Input, key Input, opts *Options) (any, error)

// Options defines configurable behavior for parsing.
//
// Query: the text to parse. When absent, Source supplies it.
// Separator: how the query string splits into tokens. Defaults to the
//            literal "&"; SeparatorRunes and NewSeparatorPattern cover
//            multi-separator and pattern delimiters.
// Decode: applied to every raw key and raw value. Defaults to
//         DefaultDecode; overrides normally delegate to it.
// ArrayKeys: tested against each decoded key; matching keys accumulate
//            their values into an ordered sequence instead of
//            overwriting. Defaults to matching nothing.
// Source: the current-location collaborator, consulted only when Query
//         is absent. Defaults to nil (absent query parses as "").
//
// Note: ParseOptions merges the bundle over DefaultOptions before use.
type Options struct {
	Query     Input
	Separator Splitter
	Decode    DecodeFunc
	ArrayKeys KeyPredicate
	Source    func() string
}

// DefaultOptions is the process-wide default bundle, merged under every
// ParseOptions call. Callers may reassign its fields to change defaults
// for all future calls that don't override them.
//
// Mutating DefaultOptions while another goroutine parses is a data race:
// last write wins, results for in-flight calls are undefined. Callers
// needing isolation should pass a complete Options bundle instead of
// relying on these globals.
var DefaultOptions = Options{
	Separator: SeparatorString("&"),
	Decode:    DefaultDecode,
	ArrayKeys: KeyNone,
}

// merged layers o over DefaultOptions over the built-in fallbacks, so a
// half-filled bundle (or a zeroed DefaultOptions field) still parses.
func (o Options) merged() Options {
	if !o.Query.Present {
		o.Query = DefaultOptions.Query
	}
	if o.Separator == nil {
		o.Separator = DefaultOptions.Separator
	}
	if o.Decode == nil {
		o.Decode = DefaultOptions.Decode
	}
	if o.ArrayKeys == nil {
		o.ArrayKeys = DefaultOptions.ArrayKeys
	}
	if o.Source == nil {
		o.Source = DefaultOptions.Source
	}

	if o.Separator == nil {
		o.Separator = SeparatorString("&")
	}
	if o.Decode == nil {
		o.Decode = DefaultDecode
	}
	if o.ArrayKeys == nil {
		o.ArrayKeys = KeyNone
	}
	return o
}
