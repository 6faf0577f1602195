package internal

import "testing"

func TestStem(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"page.html", "page"},
		{"original/あげぎぺやほせ.html", "あげぎぺやほせ"},
		{"dir/archive.tar.gz", "archive.tar"},
		{"noext", "noext"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := Stem(tt.path); got != tt.want {
				t.Errorf("Stem(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestOutputFileName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		suffix string
		want   string
	}{
		{"html file", "original/page.html", "_translate", "page_translate.html"},
		{"htm file", "page.htm", "_translate", "page_translate.htm"},
		{"no extension", "original/page", "_translate", "page_translate.html"},
		{"custom suffix", "page.html", "-en", "page-en.html"},
		{"japanese name", "あげぎぺやほせ.html", "_translate", "あげぎぺやほせ_translate.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OutputFileName(tt.input, tt.suffix); got != tt.want {
				t.Errorf("OutputFileName(%q, %q) = %q, want %q", tt.input, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestTitleFromFileName(t *testing.T) {
	if got := TitleFromFileName("page_translate.html", "_translate"); got != "page" {
		t.Errorf("Expected 'page', got %q", got)
	}
	if got := TitleFromFileName("page.html", ""); got != "page" {
		t.Errorf("Expected 'page', got %q", got)
	}
}
