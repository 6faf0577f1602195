package internal

import (
	"path/filepath"
	"strings"
)

// DefaultExt is used for derived output names when the input has no extension
const DefaultExt = ".html"

// Stem returns the base name of path without its extension
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputFileName derives the translated file name from an input path
// Format: <stem><suffix><ext>, e.g. "page.html" -> "page_translate.html"
func OutputFileName(inputPath, suffix string) string {
	ext := filepath.Ext(filepath.Base(inputPath))
	if ext == "" {
		ext = DefaultExt
	}
	return Stem(inputPath) + suffix + ext
}

// TitleFromFileName turns a translated file name back into a display title
// by dropping the extension and the translation suffix
func TitleFromFileName(name, suffix string) string {
	stem := Stem(name)
	if suffix == "" {
		return stem
	}
	return strings.ReplaceAll(stem, suffix, "")
}
