package translation

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"codeberg.org/snonux/glyphswap/internal/table"
)

// ErrTranslate is returned when a document cannot be tokenized
var ErrTranslate = errors.New("failed to translate document")

// Mode selects which parts of a document are rewritten
type Mode string

const (
	// ModeText rewrites the whole buffer, markup included
	ModeText Mode = "text"
	// ModeHTML rewrites document text only
	ModeHTML Mode = "html"
)

// ParseMode validates a mode name from flags or config
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeText:
		return ModeText, nil
	case ModeHTML:
		return ModeHTML, nil
	}
	return "", fmt.Errorf("unknown mode %q (use text or html)", s)
}

// Options configures a Translator
type Options struct {
	Mode         Mode
	NormalizeNFC bool // Match on NFC normalized text and sources
}

// Translator applies a mapping table to documents
type Translator struct {
	rules []table.Rule
	first map[rune][]int // rule indexes by first rune of the source, in table order
	mode  Mode
	nfc   bool
}

// NewTranslator creates a translator for the rules of t
func NewTranslator(t *table.Table, opts *Options) *Translator {
	if opts == nil {
		opts = &Options{Mode: ModeText}
	}
	mode := opts.Mode
	if mode == "" {
		mode = ModeText
	}

	tr := &Translator{
		rules: t.Rules(),
		first: make(map[rune][]int),
		mode:  mode,
		nfc:   opts.NormalizeNFC,
	}

	for i := range tr.rules {
		if tr.nfc {
			tr.rules[i].Source = norm.NFC.String(tr.rules[i].Source)
		}
		r, _ := utf8.DecodeRuneInString(tr.rules[i].Source)
		tr.first[r] = append(tr.first[r], i)
	}

	return tr
}

// Mode returns the configured mode
func (t *Translator) Mode() Mode {
	return t.mode
}

// Translate rewrites a document according to the translator's mode and
// returns the result with the number of replacements made
func (t *Translator) Translate(doc string) (string, int, error) {
	if t.mode == ModeHTML {
		return t.translateHTML(doc)
	}
	out, n := t.TranslateText(doc)
	return out, n, nil
}

// TranslateText replaces every rule source found in text, ignoring markup.
// Text without matches is returned as given, also when normalizing.
func (t *Translator) TranslateText(text string) (string, int) {
	original := text
	if t.nfc {
		text = norm.NFC.String(text)
	}

	var sb strings.Builder
	count := 0

	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])

		matched := false
		if r != utf8.RuneError || size > 1 {
			for _, idx := range t.first[r] {
				rule := t.rules[idx]
				if strings.HasPrefix(text[i:], rule.Source) {
					if count == 0 {
						sb.Grow(len(text))
						sb.WriteString(text[:i])
					}
					sb.WriteString(rule.Target)
					i += len(rule.Source)
					count++
					matched = true
					break
				}
			}
		}

		if !matched {
			if count > 0 {
				sb.WriteString(text[i : i+size])
			}
			i += size
		}
	}

	if count == 0 {
		return original, 0
	}
	return sb.String(), count
}

// translateHTML copies every token as it appeared in the input and only
// rewrites text tokens that are not inside a script or style element
func (t *Translator) translateHTML(doc string) (string, int, error) {
	z := html.NewTokenizer(strings.NewReader(doc))

	var sb strings.Builder
	sb.Grow(len(doc))

	total := 0
	consumed := 0
	skip := ""

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return "", 0, fmt.Errorf("%w: %w", ErrTranslate, z.Err())
		}

		// Raw must be copied before TagName, which lower-cases the buffer
		raw := z.Raw()
		consumed += len(raw)

		switch tt {
		case html.TextToken:
			if skip != "" {
				sb.Write(raw)
				continue
			}
			out, n := t.TranslateText(string(raw))
			sb.WriteString(out)
			total += n

		case html.StartTagToken:
			sb.Write(raw)
			name, _ := z.TagName()
			if skip == "" && isRawTextElement(string(name)) {
				skip = string(name)
			}

		case html.EndTagToken:
			sb.Write(raw)
			name, _ := z.TagName()
			if string(name) == skip {
				skip = ""
			}

		default:
			sb.Write(raw)
		}
	}

	// The tokenizer drops an unterminated tag at EOF
	if consumed < len(doc) {
		sb.WriteString(doc[consumed:])
	}

	return sb.String(), total, nil
}

func isRawTextElement(name string) bool {
	return name == "script" || name == "style"
}
