package batch

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadListFile(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []string
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "plain paths",
			fileContent: `original/a.html
original/b.html`,
			want: []string{"original/a.html", "original/b.html"},
		},
		{
			name: "comments and blank lines",
			fileContent: `# pages to translate

  original/あげぎぺやほせ.html
# original/skip.html
original/b.html
`,
			want: []string{"original/あげぎぺやほせ.html", "original/b.html"},
		},
		{
			name:        "windows line endings",
			fileContent: "a.html\r\nb.html\r\n",
			want:        []string{"a.html", "b.html"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := filepath.Join(t.TempDir(), "list.txt")
			if err := os.WriteFile(tmpFile, []byte(tt.fileContent), 0644); err != nil {
				t.Fatalf("Failed to create test file: %v", err)
			}

			got, err := ReadListFile(tmpFile)
			if err != nil {
				t.Fatalf("ReadListFile() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReadListFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadListFile_FileNotFound(t *testing.T) {
	_, err := ReadListFile("/nonexistent/file.txt")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
}

func TestFindDocuments(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"b.html", "a.html", "notes.txt", "c.HTML"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.html"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindDocuments(dir, "")
	if err != nil {
		t.Fatalf("FindDocuments() error = %v", err)
	}

	want := []string{filepath.Join(dir, "a.html"), filepath.Join(dir, "b.html")}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindDocuments() = %v, want %v", got, want)
	}

	got, err = FindDocuments(dir, "*.txt")
	if err != nil {
		t.Fatalf("FindDocuments() error = %v", err)
	}
	if len(got) != 1 || filepath.Base(got[0]) != "notes.txt" {
		t.Errorf("Expected only notes.txt, got %v", got)
	}
}

func TestFindDocuments_EmptyDirectory(t *testing.T) {
	got, err := FindDocuments(t.TempDir(), DefaultPattern)
	if err != nil {
		t.Fatalf("FindDocuments() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no documents, got %v", got)
	}
}

func TestFindDocuments_MissingDirectory(t *testing.T) {
	_, err := FindDocuments(filepath.Join(t.TempDir(), "original"), DefaultPattern)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected fs.ErrNotExist, got %v", err)
	}
}

func TestFindDocuments_BadPattern(t *testing.T) {
	_, err := FindDocuments(t.TempDir(), "[")
	if !errors.Is(err, filepath.ErrBadPattern) {
		t.Errorf("Expected filepath.ErrBadPattern, got %v", err)
	}
}
