package processor

import "errors"

var (
	// ErrFileNotFound is returned when an input document or folder does not exist
	ErrFileNotFound = errors.New("input not found")
	// ErrRead is returned when an input document cannot be read or decoded
	ErrRead = errors.New("failed to read document")
	// ErrWrite is returned when an output document cannot be written
	ErrWrite = errors.New("failed to write document")
	// ErrDuplicateOutput is returned when two batch documents map to the same output file
	ErrDuplicateOutput = errors.New("output file already written in this batch")
	// ErrBatchFailed is returned when at least one document of a batch failed
	ErrBatchFailed = errors.New("some documents failed to translate")
)
