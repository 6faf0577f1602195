package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	Lang     string
	Verbose  bool
	FailFast bool

	// Mapping table flags
	TableFile    string
	SourceColumn string
	TargetColumn string

	// Document flags
	InputDir     string
	OutputDir    string
	Pattern      string
	Suffix       string
	Mode         string
	Encoding     string
	Normalize    string
	AssetsPrefix string
	BatchFile    string
	Archive      bool

	// Index flags
	Index       bool
	IndexOutput string
	TitleClass  string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Lang:         "ja",
		TableFile:    "taiouhyou.csv",
		SourceColumn: "変換元",
		TargetColumn: "変換先",
		InputDir:     "original",
		OutputDir:    "translated",
		Pattern:      "*.html",
		Suffix:       "_translate",
		Mode:         "text",
		Encoding:     "utf-8",
		Normalize:    "none",
		IndexOutput:  "link_list.html",
		TitleClass:   "l-page__header-title",
	}
}
