// Package charset converts mapping tables and documents between their
// on-disk character set and UTF-8. UTF-8 input is passed through untouched
// so that documents without substitutions stay byte-identical.
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultName is the charset used when none is configured
const DefaultName = "utf-8"

// ErrUnknownEncoding is returned for labels that are not WHATWG encoding names
var ErrUnknownEncoding = errors.New("unknown encoding")

// ErrNotReversible is returned when decoded text does not encode back to
// the original bytes
var ErrNotReversible = errors.New("document does not round-trip through its charset")

// Codec decodes bytes of one charset into UTF-8 strings and back
type Codec struct {
	name string
	enc  encoding.Encoding // nil means UTF-8 passthrough
}

// Lookup resolves an encoding label such as "utf-8", "shift_jis" or "euc-jp"
func Lookup(label string) (*Codec, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" || label == "utf8" || label == DefaultName {
		return &Codec{name: DefaultName}, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEncoding, label)
	}

	name, err := htmlindex.Name(enc)
	if err != nil {
		name = label
	}
	if name == DefaultName {
		return &Codec{name: DefaultName}, nil
	}

	return &Codec{name: name, enc: enc}, nil
}

// Name returns the canonical name of the charset
func (c *Codec) Name() string {
	return c.name
}

// IsUTF8 reports whether the codec passes bytes through unchanged
func (c *Codec) IsUTF8() bool {
	return c.enc == nil
}

// Decode converts document bytes to a UTF-8 string
func (c *Codec) Decode(data []byte) (string, error) {
	if c.enc == nil {
		return string(data), nil
	}

	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", c.name, err)
	}
	return string(out), nil
}

// DecodeExact decodes data like Decode and fails with ErrNotReversible
// unless encoding the result gives back data unchanged. Invalid byte
// sequences and characters with more than one code fail the check.
func (c *Codec) DecodeExact(data []byte) (string, error) {
	text, err := c.Decode(data)
	if err != nil || c.enc == nil {
		return text, err
	}

	back, err := c.Encode(text)
	if err != nil {
		return "", err
	}
	if !bytes.Equal(back, data) {
		return "", fmt.Errorf("%w: %s differs at byte %d", ErrNotReversible, c.name, firstDiff(back, data))
	}
	return text, nil
}

// Encode converts a UTF-8 string back to the codec's charset. Characters the
// charset cannot represent are written as HTML numeric character references.
func (c *Codec) Encode(text string) ([]byte, error) {
	if c.enc == nil {
		return []byte(text), nil
	}

	out, err := encoding.HTMLEscapeUnsupported(c.enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", c.name, err)
	}
	return out, nil
}

// NewReader wraps r so that it yields UTF-8. A leading byte order mark is
// consumed, which spreadsheet exports of mapping tables commonly carry.
func (c *Codec) NewReader(r io.Reader) io.Reader {
	if c.enc == nil {
		return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
	}
	return transform.NewReader(r, unicode.BOMOverride(c.enc.NewDecoder()))
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
