package epub

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
)

// NCX XML structures for parsing toc.ncx
type ncx struct {
	NavMap navMap `xml:"navMap"`
}

type navMap struct {
	NavPoints []navPoint `xml:"navPoint"`
}

type navPoint struct {
	Label    navLabel   `xml:"navLabel"`
	Content  navContent `xml:"content"`
	Children []navPoint `xml:"navPoint"`
}

type navLabel struct {
	Text string `xml:"text"`
}

type navContent struct {
	Src string `xml:"src,attr"`
}

// ExtractTOC reads the navigation document of an EPUB and flattens it
// into TOC entries in navigation order. Fragment identifiers are dropped
// so entries key on whole documents, the same granularity as units.
func ExtractTOC(path string) ([]TocEntry, error) {
	rc, err := epub.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	ncxData, err := readNCX(path, book)
	if err != nil {
		return nil, err
	}

	var toc ncx
	if err := xml.Unmarshal(ncxData, &toc); err != nil {
		return nil, fmt.Errorf("failed to parse NCX: %w", err)
	}

	return flattenNavPoints(toc.NavMap.NavPoints, 0), nil
}

func flattenNavPoints(points []navPoint, level int) []TocEntry {
	var entries []TocEntry
	for _, np := range points {
		href := np.Content.Src
		if idx := strings.Index(href, "#"); idx != -1 {
			href = href[:idx]
		}
		title := strings.TrimSpace(np.Label.Text)
		if href != "" && title != "" {
			entries = append(entries, TocEntry{
				SourceID: href,
				Title:    title,
				Level:    level,
			})
		}
		if len(np.Children) > 0 {
			entries = append(entries, flattenNavPoints(np.Children, level+1)...)
		}
	}
	return entries
}

// readNCX locates the NCX file through the manifest media type, falling
// back to an extension scan, and returns its raw bytes.
func readNCX(filename string, book *epub.Rootfile) ([]byte, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	var ncxPath string
	for _, item := range book.Manifest.Items {
		if item.MediaType == "application/x-dtbncx+xml" {
			ncxPath = item.HREF
			break
		}
	}
	if ncxPath == "" {
		for _, f := range zr.File {
			if strings.HasSuffix(strings.ToLower(f.Name), ".ncx") {
				ncxPath = f.Name
				break
			}
		}
	}
	if ncxPath == "" {
		return nil, fmt.Errorf("no NCX file found in EPUB")
	}

	for _, f := range zr.File {
		if f.Name == ncxPath || strings.HasSuffix(f.Name, "/"+ncxPath) ||
			path.Base(f.Name) == path.Base(ncxPath) {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}

	return nil, fmt.Errorf("NCX file %s not found in archive", ncxPath)
}
