// Package archive moves the output of a previous translation run out of
// the way before a new batch run writes its files.
package archive
