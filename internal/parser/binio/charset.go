package binio

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Charset converts the raw bytes of a string field to UTF-8.
type Charset struct {
	name string
	enc  encoding.Encoding
}

// UTF8 is the default charset. Bytes are passed through unchanged.
var UTF8 = Charset{name: "utf-8", enc: unicode.UTF8}

// LookupCharset resolves a charset by its WHATWG label, e.g. "utf-8",
// "shift_jis" or "euc-jp".
func LookupCharset(label string) (Charset, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return UTF8, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return Charset{}, fmt.Errorf("unknown charset %q: %w", label, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	return Charset{name: name, enc: enc}, nil
}

// Name returns the canonical charset name.
func (cs Charset) Name() string {
	if cs.enc == nil {
		return UTF8.name
	}
	return cs.name
}

// Decode converts b to a UTF-8 string.
func (cs Charset) Decode(b []byte) (string, error) {
	if cs.enc == nil || cs.enc == unicode.UTF8 {
		return string(b), nil
	}
	out, err := cs.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s text: %w", cs.name, err)
	}
	return string(out), nil
}
