package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	// Test basic command properties
	if cmd.Use != "glyphswap [input-file]" {
		t.Errorf("Expected Use to be 'glyphswap [input-file]', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "Glyph substitution") {
		t.Errorf("Expected Short description to contain 'Glyph substitution'")
	}

	if err := cmd.Args(cmd, []string{"a.html", "b.html"}); err == nil {
		t.Error("Expected an error for more than one positional argument")
	}

	// Test that flags are set up
	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"lang", true},
		{"verbose", true},
		{"table", false},
		{"source-column", false},
		{"target-column", false},
		{"input", false},
		{"output", false},
		{"pattern", false},
		{"suffix", false},
		{"mode", false},
		{"encoding", false},
		{"normalize", false},
		{"assets-prefix", false},
		{"batch", false},
		{"fail-fast", false},
		{"archive", false},
		{"index", false},
		{"index-output", false},
		{"title-class", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	defaults := map[string]string{
		"table":  "taiouhyou.csv",
		"input":  "original",
		"output": "translated",
		"suffix": "_translate",
		"mode":   "text",
	}
	for name, want := range defaults {
		flag := cmd.Flags().Lookup(name)
		if flag == nil {
			t.Fatalf("%s flag not found", name)
		}
		if flag.DefValue != want {
			t.Errorf("Expected default %s to be %s, got %s", name, want, flag.DefValue)
		}
	}

	if cmd.Flags().ShorthandLookup("t") == nil || cmd.Flags().ShorthandLookup("i") == nil || cmd.Flags().ShorthandLookup("o") == nil {
		t.Error("Expected -t, -i and -o shorthands")
	}
}

func TestInitConfig(t *testing.T) {
	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
		key       string
		expected  string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `table:
  file: custom.csv
output:
  directory: /test/output`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
			key:      "output.directory",
			expected: "/test/output",
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
			key:      "output.directory",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)

			InitConfig(tt.setupFunc(t))

			if got := viper.GetString(tt.key); got != tt.expected {
				t.Errorf("viper.GetString(%q) = %q, want %q", tt.key, got, tt.expected)
			}

			// Test environment variable prefix and key replacer
			t.Setenv("GLYPHSWAP_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}
			t.Setenv("GLYPHSWAP_DOCUMENT_MODE", "html")
			if viper.GetString("document.mode") != "html" {
				t.Error("Nested key not mapped to GLYPHSWAP_DOCUMENT_MODE")
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	// Set some flag values
	cmd.Flags().Set("output", "/test/output")
	cmd.Flags().Set("mode", "html")
	cmd.Flags().Set("table", "other.csv")
	cmd.PersistentFlags().Set("lang", "en")

	// Test that values are bound
	checks := map[string]string{
		"output.directory": "/test/output",
		"document.mode":    "html",
		"table.file":       "other.csv",
		"ui.lang":          "en",
		"input.directory":  "original",
	}
	for key, want := range checks {
		if got := viper.GetString(key); got != want {
			t.Errorf("Expected %s to be %s, got %s", key, want, got)
		}
	}
}

func TestApplyConfig(t *testing.T) {
	resetViper(t)

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `table:
  file: from-config.csv
document:
  mode: html
  encoding: shift_jis
assets:
  prefix: ../files/`
	if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test config: %v", err)
	}

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)
	InitConfig(cfgPath)

	t.Setenv("GLYPHSWAP_DOCUMENT_MODE", "text")
	cmd.Flags().Set("encoding", "euc-jp")

	ApplyConfig(flags)

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"config file over default", flags.TableFile, "from-config.csv"},
		{"environment over config file", flags.Mode, "text"},
		{"flag over config file", flags.Encoding, "euc-jp"},
		{"config only", flags.AssetsPrefix, "../files/"},
		{"default", flags.Suffix, "_translate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}
