// Package table loads the mapping table that drives glyph substitution.
// A table is an ordered list of source glyph sequences and their
// translated text, read from a CSV (optionally with a header row) or a
// YAML file in any charset supported by the charset package.
package table
