package parsequery

import (
	"fmt"
	"reflect"
)

// DecodeErrorKind classifies why a token failed to decode.
type DecodeErrorKind string

const (
	// DecodeErrorMalformedEscape means a '%' was not followed by two hex
	// digits.
	DecodeErrorMalformedEscape DecodeErrorKind = "malformed percent-escape"

	// DecodeErrorInvalidBytes means the percent-decoded bytes do not form
	// valid CESU-8 text.
	DecodeErrorInvalidBytes DecodeErrorKind = "invalid byte sequence"
)

// DecodeError reports that the default decoder could not produce valid
// text from a raw token. It aborts the whole parse; no partial mapping is
// returned alongside it.
type DecodeError struct {
	Kind   DecodeErrorKind
	Input  string
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parsequery: %s at offset %d in %q", e.Kind, e.Offset, e.Input)
}

func (e *DecodeError) Is(target error) bool {
	return reflect.TypeOf(e) == reflect.TypeOf(target)
}
