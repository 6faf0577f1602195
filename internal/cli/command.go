package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/glyphswap/internal"
)

// flagKeys maps flag names to their configuration keys
var flagKeys = map[string]string{
	"lang":          "ui.lang",
	"verbose":       "log.verbose",
	"fail-fast":     "batch.fail_fast",
	"table":         "table.file",
	"source-column": "table.source_column",
	"target-column": "table.target_column",
	"input":         "input.directory",
	"pattern":       "input.pattern",
	"output":        "output.directory",
	"suffix":        "output.suffix",
	"mode":          "document.mode",
	"encoding":      "document.encoding",
	"normalize":     "document.normalize",
	"assets-prefix": "assets.prefix",
	"index-output":  "index.output",
	"title-class":   "index.title_class",
}

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glyphswap [input-file]",
		Short: "Glyph substitution translator for HTML pages",
		Long: `glyphswap translates HTML pages written in a custom glyph encoding.

Every glyph sequence listed in the mapping table (a CSV of 変換元,変換先
pairs) is replaced by its translated text and the result is written to
<name>_translate.html.

Examples:
  glyphswap                         # Translate every page in original/ into translated/
  glyphswap page.html               # Translate a single page next to itself
  glyphswap --mode html             # Leave tags, attributes, scripts and styles untouched
  glyphswap --batch pages.txt       # Translate the pages listed in a file
  glyphswap --index                 # Build link_list.html from translated/`,
		Args:         cobra.MaximumNArgs(1),
		Version:      internal.Version,
		SilenceUsage: true,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.glyphswap.yaml)")
	cmd.PersistentFlags().StringVar(&flags.Lang, "lang", flags.Lang, "Language of console messages (ja or en)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Mapping table flags
	cmd.Flags().StringVarP(&flags.TableFile, "table", "t", flags.TableFile, "Mapping table file (CSV, or YAML with .yaml/.yml)")
	cmd.Flags().StringVar(&flags.SourceColumn, "source-column", flags.SourceColumn, "CSV header of the source glyph column")
	cmd.Flags().StringVar(&flags.TargetColumn, "target-column", flags.TargetColumn, "CSV header of the translated text column")

	// Document flags
	cmd.Flags().StringVarP(&flags.InputDir, "input", "i", flags.InputDir, "Input directory for batch mode")
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", flags.OutputDir, "Output directory for batch mode")
	cmd.Flags().StringVar(&flags.Pattern, "pattern", flags.Pattern, "File name pattern of documents in the input directory")
	cmd.Flags().StringVar(&flags.Suffix, "suffix", flags.Suffix, "Suffix appended to the name of translated files")
	cmd.Flags().StringVar(&flags.Mode, "mode", flags.Mode, "Substitution mode: text (whole file) or html (document text only)")
	cmd.Flags().StringVar(&flags.Encoding, "encoding", flags.Encoding, "Charset of the table and documents (utf-8, shift_jis, euc-jp, ...)")
	cmd.Flags().StringVar(&flags.Normalize, "normalize", flags.Normalize, "Unicode normalization before matching: none or nfc (nfc also normalizes the other text of a text run that has a match)")
	cmd.Flags().StringVar(&flags.AssetsPrefix, "assets-prefix", "", "Rewrite <name>_files/ references to <prefix><name>_files/ in batch mode (e.g. ../files/)")
	cmd.Flags().StringVar(&flags.BatchFile, "batch", "", "Translate the documents listed in a file (one per line)")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop batch mode at the first failing document")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Move an existing output directory to archive/ before batch mode")

	// Index flags
	cmd.Flags().BoolVar(&flags.Index, "index", false, "Generate a link list of the translated pages and exit")
	cmd.Flags().StringVar(&flags.IndexOutput, "index-output", flags.IndexOutput, "File the link list is written to")
	cmd.Flags().StringVar(&flags.TitleClass, "title-class", flags.TitleClass, "Class of the element holding a page title")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	for name, key := range flagKeys {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			flag = cmd.PersistentFlags().Lookup(name)
		}
		if flag != nil {
			viper.BindPFlag(key, flag)
		}
	}
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A .env file is optional; variables may come from the environment
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".glyphswap" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".glyphswap")
	}

	// Environment variables, e.g. GLYPHSWAP_TABLE_FILE for table.file
	viper.SetEnvPrefix("GLYPHSWAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies the effective configuration into flags. Values set on
// the command line win over environment variables, which win over the
// config file, which wins over the flag defaults.
func ApplyConfig(flags *Flags) {
	flags.Lang = viper.GetString("ui.lang")
	flags.Verbose = viper.GetBool("log.verbose")
	flags.FailFast = viper.GetBool("batch.fail_fast")
	flags.TableFile = viper.GetString("table.file")
	flags.SourceColumn = viper.GetString("table.source_column")
	flags.TargetColumn = viper.GetString("table.target_column")
	flags.InputDir = viper.GetString("input.directory")
	flags.Pattern = viper.GetString("input.pattern")
	flags.OutputDir = viper.GetString("output.directory")
	flags.Suffix = viper.GetString("output.suffix")
	flags.Mode = viper.GetString("document.mode")
	flags.Encoding = viper.GetString("document.encoding")
	flags.Normalize = viper.GetString("document.normalize")
	flags.AssetsPrefix = viper.GetString("assets.prefix")
	flags.IndexOutput = viper.GetString("index.output")
	flags.TitleClass = viper.GetString("index.title_class")
}
