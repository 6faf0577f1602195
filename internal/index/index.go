// Package index builds the link list of translated pages that is pasted
// into the site's index.html. Each page is linked under the text of its
// header title element, or its file name when it has none.
package index

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"

	nethtml "golang.org/x/net/html"

	"codeberg.org/snonux/glyphswap/internal"
	"codeberg.org/snonux/glyphswap/internal/batch"
	"codeberg.org/snonux/glyphswap/internal/charset"
)

// DefaultTitleClass marks the page header title on the site
const DefaultTitleClass = "l-page__header-title"

// titleElements are the elements searched for the title class
var titleElements = map[string]bool{
	"h1": true, "h2": true, "h3": true, "div": true, "span": true, "p": true,
}

// Entry is one linked page
type Entry struct {
	File  string // File name inside the translated directory
	Title string
}

// Options configures how pages are collected
type Options struct {
	TitleClass string // Class of the title element
	Suffix     string // Translation suffix removed from fallback titles
	Pattern    string // Glob of pages to link
	Codec      *charset.Codec
}

// ExtractTitle returns the first text inside the first non-empty title
// element of an HTML document, or an empty string if there is none
func ExtractTitle(r io.Reader, class string) (string, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var title string
	var traverse func(*nethtml.Node) bool
	traverse = func(n *nethtml.Node) bool {
		if n.Type == nethtml.ElementNode && titleElements[n.Data] && hasClass(n, class) {
			// An empty title element does not end the search
			title = firstText(n)
			if title != "" {
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if traverse(c) {
				return true
			}
		}
		return false
	}
	traverse(doc)

	return title, nil
}

// Collect reads every page in dir and returns its link entry
func Collect(dir string, opts *Options) ([]Entry, error) {
	if opts == nil {
		opts = &Options{}
	}
	class := opts.TitleClass
	if class == "" {
		class = DefaultTitleClass
	}

	pages, err := batch.FindDocuments(dir, opts.Pattern)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(pages))
	for _, page := range pages {
		name := filepath.Base(page)

		title, err := extractTitleFromFile(page, class, opts.Codec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", name, err)
		}
		if title == "" {
			title = internal.TitleFromFileName(name, opts.Suffix)
		}

		entries = append(entries, Entry{File: name, Title: title})
	}

	return entries, nil
}

// Render formats entries as list items linking to linkPrefix + file
func Render(entries []Entry, linkPrefix string) string {
	items := make([]string, 0, len(entries))
	for _, e := range entries {
		items = append(items, fmt.Sprintf(
			"                    <li style=\"margin-bottom: 10px;\">\n"+
				"                        <a href=\"%s\">%s</a>\n"+
				"                    </li>",
			html.EscapeString(linkPrefix+e.File), html.EscapeString(e.Title)))
	}
	return strings.Join(items, "\n")
}

// WriteLinkList saves the rendered list to path
func WriteLinkList(path, list string) error {
	if err := os.WriteFile(path, []byte(list), 0644); err != nil {
		return fmt.Errorf("failed to write link list: %w", err)
	}
	return nil
}

func extractTitleFromFile(path, class string, codec *charset.Codec) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r io.Reader = f
	if codec != nil {
		r = codec.NewReader(f)
	}
	return ExtractTitle(r, class)
}

func hasClass(n *nethtml.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key == "class" && strings.Contains(attr.Val, class) {
			return true
		}
	}
	return false
}

func firstText(n *nethtml.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode {
			if text := strings.TrimSpace(c.Data); text != "" {
				return text
			}
		}
		if text := firstText(c); text != "" {
			return text
		}
	}
	return ""
}
