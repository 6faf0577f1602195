// Package processor contains the core logic of glyphswap. It loads the
// mapping table once, then drives the translator over a single document,
// a folder or list of documents (batch mode), and builds the link list
// of translated pages. This package serves as the coordinator between
// the table, translation, charset, archive and index packages.
package processor
