package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"codeberg.org/snonux/glyphswap/internal/charset"
)

// ErrLoad is returned when a mapping table is missing or cannot be parsed
var ErrLoad = errors.New("failed to load mapping table")

// Default column headers of the site's mapping table
const (
	DefaultSourceColumn = "変換元"
	DefaultTargetColumn = "変換先"
)

// Options configures how a mapping table file is read
type Options struct {
	SourceColumn string         // Header of the source column
	TargetColumn string         // Header of the target column
	Codec        *charset.Codec // Charset of the file, UTF-8 when nil
}

// DefaultOptions returns options for a UTF-8 CSV with Japanese headers
func DefaultOptions() *Options {
	return &Options{
		SourceColumn: DefaultSourceColumn,
		TargetColumn: DefaultTargetColumn,
	}
}

// yamlTable is the on-disk layout of YAML mapping tables
type yamlTable struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads a mapping table from a CSV or YAML file
func Load(path string, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	defer f.Close()

	var t *Table
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		t, err = ParseYAML(f, opts)
	default:
		t, err = ParseCSV(f, opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// ParseCSV reads comma separated records. If the first record names the
// configured source and target columns it is used as a header, otherwise
// the first two columns of every record form a rule.
func ParseCSV(r io.Reader, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	reader := csv.NewReader(decodingReader(r, opts))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	srcCol, dstCol := 0, 1
	if len(records) > 0 {
		if s, d, ok := headerColumns(records[0], opts); ok {
			srcCol, dstCol = s, d
			records = records[1:]
		}
	}

	t := New()
	for _, record := range records {
		if srcCol >= len(record) || dstCol >= len(record) {
			continue
		}
		t.Add(record[srcCol], record[dstCol])
	}

	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: no usable rules", ErrLoad)
	}

	return t, nil
}

// ParseYAML reads a table of the form "rules: [{source: .., target: ..}]"
func ParseYAML(r io.Reader, opts *Options) (*Table, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var doc yamlTable
	if err := yaml.NewDecoder(decodingReader(r, opts)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}

	t := New()
	for _, rule := range doc.Rules {
		t.Add(rule.Source, rule.Target)
	}

	if t.Len() == 0 {
		return nil, fmt.Errorf("%w: no usable rules", ErrLoad)
	}

	return t, nil
}

func decodingReader(r io.Reader, opts *Options) io.Reader {
	codec := opts.Codec
	if codec == nil {
		codec, _ = charset.Lookup(charset.DefaultName)
	}
	return codec.NewReader(r)
}

// headerColumns finds the source and target columns in a header record.
// The English names "source" and "target" are always accepted.
func headerColumns(record []string, opts *Options) (int, int, bool) {
	src, dst := -1, -1
	for i, field := range record {
		name := strings.TrimSpace(field)
		switch {
		case name == opts.SourceColumn, strings.EqualFold(name, "source"):
			if src < 0 {
				src = i
			}
		case name == opts.TargetColumn, strings.EqualFold(name, "target"):
			if dst < 0 {
				dst = i
			}
		}
	}
	return src, dst, src >= 0 && dst >= 0
}
