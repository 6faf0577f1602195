// Package locale renders the console messages of glyphswap in the user's
// language. Message catalogs are embedded TOML files loaded into a go-i18n
// bundle; English is the fallback for missing keys.
package locale

import (
	"embed"
	"fmt"
	"os"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// DefaultLanguage is the language of the site's readers
const DefaultLanguage = "ja"

// Message IDs
const (
	MsgInputFile     = "InputFile"
	MsgTableFile     = "TableFile"
	MsgInputDir      = "InputDir"
	MsgOutputDir     = "OutputDir"
	MsgTableLoaded   = "TableLoaded"
	MsgBatchStart    = "BatchStart"
	MsgTranslating   = "Translating"
	MsgTranslated    = "Translated"
	MsgFileFailed    = "FileFailed"
	MsgNoDocuments   = "NoDocuments"
	MsgSummary       = "Summary"
	MsgArchived      = "Archived"
	MsgIndexEntry    = "IndexEntry"
	MsgIndexTotal    = "IndexTotal"
	MsgIndexCopyHint = "IndexCopyHint"
	MsgIndexSaved    = "IndexSaved"
)

// Messages looks up localized console messages
type Messages struct {
	localizer *i18n.Localizer
	lang      language.Tag
}

// New creates a message catalog for lang. Unknown languages fall back to
// English.
func New(lang string) *Messages {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range []string{"active.en.toml", "active.ja.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", file, err)
		}
	}

	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}

	return &Messages{
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.English.String()),
		lang:      tag,
	}
}

// Language returns the selected language tag
func (m *Messages) Language() string {
	return m.lang.String()
}

// T renders the message identified by id. If the id is unknown the id
// itself is returned.
func (m *Messages) T(id string, data map[string]any) string {
	msg, err := m.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		return id
	}
	return msg
}
