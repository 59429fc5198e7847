// Package ingestion turns résumé files into normalised text for analysis.
package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/PuerkitoBio/goquery"
)

// ErrUnsupportedFormat is returned for file extensions no reader handles
var ErrUnsupportedFormat = errors.New("unsupported file format")

// DocumentReader extracts the text of a résumé file.
type DocumentReader interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// FileReader reads office documents, HTML and plain text from the local filesystem.
type FileReader struct{}

// NewFileReader returns a FileReader.
func NewFileReader() *FileReader {
	return &FileReader{}
}

// SupportedExtensions lists the extensions FileReader accepts.
var SupportedExtensions = []string{".pdf", ".docx", ".doc", ".pptx", ".odt", ".rtf", ".html", ".htm", ".txt", ".md"}

// Supported reports whether path has an extension FileReader accepts.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// ExtractText returns the raw text of path.
func (r *FileReader) ExtractText(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ReadError{Path: path, Message: "cancelled", Cause: err}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf", ".docx", ".doc", ".pptx", ".odt", ".rtf":
		res, err := docconv.ConvertPath(path)
		if err != nil {
			return "", &ReadError{Path: path, Message: "failed to convert document", Cause: err}
		}
		return res.Body, nil
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return "", &ReadError{Path: path, Message: "failed to open file", Cause: err}
		}
		defer func() { _ = f.Close() }()
		doc, err := goquery.NewDocumentFromReader(f)
		if err != nil {
			return "", &ReadError{Path: path, Message: "failed to parse HTML", Cause: err}
		}
		return htmlText(doc), nil
	case ".txt", ".md":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", &ReadError{Path: path, Message: "failed to read file", Cause: err}
		}
		return string(content), nil
	default:
		return "", &ReadError{Path: path, Message: ext, Cause: ErrUnsupportedFormat}
	}
}

// blockElements end a line when rendered.
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, tr, br, section, article"

// htmlText renders an HTML résumé as text, one block element per line.
func htmlText(doc *goquery.Document) string {
	doc.Find("script, style, noscript, nav, footer").Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	doc.Find("h1, h2, h3, h4, h5, h6, section").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("\n")
	})
	return doc.Find("body").Text()
}
