package processor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"codeberg.org/snonux/glyphswap/internal"
	"codeberg.org/snonux/glyphswap/internal/archive"
	"codeberg.org/snonux/glyphswap/internal/batch"
	"codeberg.org/snonux/glyphswap/internal/charset"
	"codeberg.org/snonux/glyphswap/internal/cli"
	"codeberg.org/snonux/glyphswap/internal/index"
	"codeberg.org/snonux/glyphswap/internal/locale"
	"codeberg.org/snonux/glyphswap/internal/table"
	"codeberg.org/snonux/glyphswap/internal/translation"
)

// Processor handles the main document processing logic
type Processor struct {
	flags      *cli.Flags
	codec      *charset.Codec
	mode       translation.Mode
	translator *translation.Translator
	msgs       *locale.Messages
	logger     *zap.Logger

	out    io.Writer
	errOut io.Writer
}

// NewProcessor creates a new document processor. The mapping table is
// loaded lazily by the first translating operation.
func NewProcessor(flags *cli.Flags, logger *zap.Logger) (*Processor, error) {
	codec, err := charset.Lookup(flags.Encoding)
	if err != nil {
		return nil, err
	}

	mode, err := translation.ParseMode(flags.Mode)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(flags.Normalize) {
	case "", "none", "nfc":
	default:
		return nil, fmt.Errorf("unknown normalization %q (use none or nfc)", flags.Normalize)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Processor{
		flags:  flags,
		codec:  codec,
		mode:   mode,
		msgs:   locale.New(flags.Lang),
		logger: logger,
		out:    os.Stdout,
		errOut: os.Stderr,
	}, nil
}

// loadTable reads the mapping table and builds the translator
func (p *Processor) loadTable() error {
	if p.translator != nil {
		return nil
	}

	opts := table.DefaultOptions()
	if p.flags.SourceColumn != "" {
		opts.SourceColumn = p.flags.SourceColumn
	}
	if p.flags.TargetColumn != "" {
		opts.TargetColumn = p.flags.TargetColumn
	}
	opts.Codec = p.codec

	fmt.Fprintln(p.out, p.msgs.T(locale.MsgTableFile, map[string]any{"Path": p.flags.TableFile}))

	t, err := table.Load(p.flags.TableFile, opts)
	if err != nil {
		return err
	}

	p.translator = translation.NewTranslator(t, &translation.Options{
		Mode:         p.mode,
		NormalizeNFC: strings.EqualFold(p.flags.Normalize, "nfc"),
	})
	fmt.Fprintln(p.out, p.msgs.T(locale.MsgTableLoaded, map[string]any{"Count": t.Len()}))
	p.logger.Debug("mapping table loaded",
		zap.String("path", p.flags.TableFile),
		zap.Int("rules", t.Len()),
		zap.String("mode", string(p.mode)),
		zap.String("encoding", p.codec.Name()))

	return nil
}

// ProcessSingleFile translates one document and writes the result next to it
func (p *Processor) ProcessSingleFile(inputPath string) error {
	if err := p.loadTable(); err != nil {
		return err
	}

	fmt.Fprintln(p.out, p.msgs.T(locale.MsgInputFile, map[string]any{"Path": inputPath}))

	outputPath := filepath.Join(filepath.Dir(inputPath), internal.OutputFileName(inputPath, p.flags.Suffix))
	count, err := p.translateFile(inputPath, outputPath, false)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, p.msgs.T(locale.MsgTranslated, map[string]any{
		"Name":  filepath.Base(outputPath),
		"Count": count,
	}))
	return nil
}

// ProcessBatch translates every document of the input folder, or of the
// list file when one is configured, into the output folder
func (p *Processor) ProcessBatch() error {
	if err := p.loadTable(); err != nil {
		return err
	}

	documents, err := p.findDocuments()
	if err != nil {
		return err
	}

	if len(documents) == 0 {
		source := p.flags.InputDir
		if p.flags.BatchFile != "" {
			source = p.flags.BatchFile
		}
		fmt.Fprintln(p.out, p.msgs.T(locale.MsgNoDocuments, map[string]any{"Dir": source}))
		return nil
	}

	if p.flags.Archive {
		archived, err := archive.ArchiveDir(p.flags.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to archive output directory: %w", err)
		}
		if archived != "" {
			fmt.Fprintln(p.out, p.msgs.T(locale.MsgArchived, map[string]any{"Path": archived}))
		}
	}

	// Create output directory (including parent directories)
	if err := os.MkdirAll(p.flags.OutputDir, 0755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %w", ErrWrite, err)
	}

	fmt.Fprintln(p.out, p.msgs.T(locale.MsgOutputDir, map[string]any{"Path": p.flags.OutputDir}))
	fmt.Fprintln(p.out, p.msgs.T(locale.MsgBatchStart, map[string]any{"Count": len(documents)}))
	fmt.Fprintln(p.out, strings.Repeat("-", 60))

	// Track statistics
	succeeded := 0
	failed := 0

	// Output path -> document that produced it
	written := make(map[string]string, len(documents))

	for _, document := range documents {
		name := filepath.Base(document)
		fmt.Fprintf(p.out, "\n%s\n", p.msgs.T(locale.MsgTranslating, map[string]any{"Name": name}))

		outputPath := filepath.Join(p.flags.OutputDir, internal.OutputFileName(document, p.flags.Suffix))
		var count int
		if previous, ok := written[outputPath]; ok {
			err = fmt.Errorf("%w: %s would overwrite the output of %s", ErrDuplicateOutput, filepath.Base(outputPath), previous)
		} else {
			count, err = p.translateFile(document, outputPath, true)
		}
		if err != nil {
			fmt.Fprintln(p.errOut, p.msgs.T(locale.MsgFileFailed, map[string]any{"Name": name, "Error": err}))
			p.logger.Warn("document failed", zap.String("path", document), zap.Error(err))
			failed++
			if p.flags.FailFast {
				return err
			}
			// Continue with next document
			continue
		}

		written[outputPath] = document
		fmt.Fprintln(p.out, p.msgs.T(locale.MsgTranslated, map[string]any{
			"Name":  filepath.Base(outputPath),
			"Count": count,
		}))
		succeeded++
	}

	// Print summary
	fmt.Fprintf(p.out, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(p.out, p.msgs.T(locale.MsgSummary, map[string]any{"Succeeded": succeeded, "Failed": failed}))
	fmt.Fprintln(p.out, strings.Repeat("=", 60))

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrBatchFailed, failed, len(documents))
	}
	return nil
}

// GenerateIndex builds the link list of the translated pages, prints it
// and saves it to the index output file
func (p *Processor) GenerateIndex() error {
	entries, err := index.Collect(p.flags.OutputDir, &index.Options{
		TitleClass: p.flags.TitleClass,
		Suffix:     p.flags.Suffix,
		Codec:      p.codec,
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, p.flags.OutputDir)
		}
		return err
	}

	for _, e := range entries {
		fmt.Fprintln(p.out, p.msgs.T(locale.MsgIndexEntry, map[string]any{"File": e.File, "Title": e.Title}))
	}
	fmt.Fprintln(p.out, p.msgs.T(locale.MsgIndexTotal, map[string]any{"Count": len(entries)}))

	list := index.Render(entries, filepath.ToSlash(filepath.Base(filepath.Clean(p.flags.OutputDir)))+"/")

	fmt.Fprintf(p.out, "\n%s\n", p.msgs.T(locale.MsgIndexCopyHint, nil))
	fmt.Fprintln(p.out, strings.Repeat("=", 60))
	fmt.Fprintln(p.out, list)
	fmt.Fprintln(p.out, strings.Repeat("=", 60))

	if err := index.WriteLinkList(p.flags.IndexOutput, list); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	fmt.Fprintln(p.out, p.msgs.T(locale.MsgIndexSaved, map[string]any{"Path": p.flags.IndexOutput}))

	return nil
}

// findDocuments lists the batch inputs from the list file or input folder
func (p *Processor) findDocuments() ([]string, error) {
	if p.flags.BatchFile != "" {
		return batch.ReadListFile(p.flags.BatchFile)
	}

	fmt.Fprintln(p.out, p.msgs.T(locale.MsgInputDir, map[string]any{"Path": p.flags.InputDir}))

	documents, err := batch.FindDocuments(p.flags.InputDir, p.flags.Pattern)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p.flags.InputDir)
	}
	return documents, err
}

// translateFile reads, translates and writes one document. It returns the
// number of replacements.
func (p *Processor) translateFile(inputPath, outputPath string, rewriteAssets bool) (int, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, fmt.Errorf("%w: %s", ErrFileNotFound, inputPath)
		}
		return 0, fmt.Errorf("%w: %w", ErrRead, err)
	}

	doc, err := p.codec.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrRead, inputPath, err)
	}

	translated, count, err := p.translator.Translate(doc)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", inputPath, err)
	}

	if rewriteAssets && p.flags.AssetsPrefix != "" {
		translated = RewriteAssetFolder(translated, internal.Stem(inputPath), p.flags.AssetsPrefix)
	}

	// Unchanged documents are copied as read
	out := data
	if translated != doc {
		// Re-encoding is only safe when the input round-trips
		if _, err := p.codec.DecodeExact(data); err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrRead, inputPath, err)
		}
		out, err = p.codec.Encode(translated)
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %w", ErrWrite, outputPath, err)
		}
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	p.logger.Debug("document translated",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("replacements", count))

	return count, nil
}

// RewriteAssetFolder points references to the saved page's "<stem>_files/"
// folder at prefix + "<stem>_files/"
func RewriteAssetFolder(doc, stem, prefix string) string {
	folder := stem + "_files/"
	return strings.ReplaceAll(doc, folder, prefix+folder)
}
