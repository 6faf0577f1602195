// Package translation implements the glyph substitution engine. A
// Translator rewrites text in a single left-to-right pass: at every
// position the mapping table rules are tried in table order and the first
// matching source is replaced by its target. Replaced text is never
// rescanned. In html mode only document text outside script and style
// elements is rewritten; markup is copied byte for byte.
package translation
