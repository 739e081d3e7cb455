// Package epub adapts an EPUB container into the ordered text units and
// TOC hints the classifier consumes. It reads the spine for document
// order and the NCX navigation document for titles.
package epub

import (
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/lightsongjs/book-translator/pkg/log"
)

// Unit is one spine document: a block of text with its source identifier,
// prior to chapter classification. Text preserves paragraph structure as
// blank-line-separated paragraphs.
type Unit struct {
	SourceID string
	Text     string
}

// TocEntry is a navigation-derived title hint keyed by the same source
// identifier as the units. Multiple entries may reference one unit.
type TocEntry struct {
	SourceID string
	Title    string
	Level    int
}

// ExtractUnits reads the spine documents of an EPUB in reading order.
// Documents that fail to open or parse are skipped, not fatal: a damaged
// unit is excluded from output rather than aborting extraction.
func ExtractUnits(path string) ([]Unit, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	var units []Unit
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			log.Warn("Failed to open spine item %s: %v", ref.Item.HREF, err)
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			log.Warn("Failed to read spine item %s: %v", ref.Item.HREF, err)
			continue
		}

		text := ExtractParagraphText(string(data))
		units = append(units, Unit{
			SourceID: ref.Item.HREF,
			Text:     text,
		})
	}

	return units, nil
}

// ExtractParagraphText pulls readable text out of an XHTML document while
// preserving paragraph boundaries. <p> elements are preferred; documents
// without them fall back to other block elements, then to the raw text.
func ExtractParagraphText(doc string) string {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return ""
	}

	paragraphs := collectElementText(root, map[string]bool{"p": true})
	if len(paragraphs) == 0 {
		blocks := map[string]bool{
			"div": true, "h1": true, "h2": true, "h3": true,
			"h4": true, "h5": true, "h6": true,
		}
		paragraphs = collectElementText(root, blocks)
	}
	if len(paragraphs) == 0 {
		return nodeText(root)
	}

	return strings.Join(paragraphs, "\n\n")
}

// collectElementText returns the text of every matching element that holds
// more than trivially short content
func collectElementText(root *html.Node, tags map[string]bool) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "script" || n.Data == "style" {
				return
			}
			if tags[n.Data] {
				if t := nodeText(n); len(t) > 3 {
					out = append(out, t)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// nodeText concatenates all text nodes under n, collapsing whitespace
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if b.Len() > 0 {
					b.WriteString(" ")
				}
				b.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
