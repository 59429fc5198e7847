package ingestion

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Document is résumé text after normalisation.
type Document struct {
	// Text is the recombined text of every page.
	Text string
	// Pages holds the cleaned text of each page or slide, in order.
	Pages []string
}

// pageMarker matches the separators readers insert between pages or slides.
var pageMarker = regexp.MustCompile(`(?im)^[ \t]*-{3,}[ \t]*(?:PAGE|SLIDE)[ \t]+(\d+)[ \t]*-{3,}[ \t]*$`)

var (
	spaceRuns       = regexp.MustCompile(`[ \t\p{Zs}]+`)
	excessiveBlanks = regexp.MustCompile(`\n\n\n+`)
)

// typographic replaces characters readers emit for quotes, dashes and spaces.
var typographic = strings.NewReplacer(
	"\u2019", "'", "\u2018", "'", "\u00a0", " ", "\u202f", " ",
	"\u2010", "-", "\u2011", "-", "\ufeff", "",
)

// NormalizeDocument normalises line endings and Unicode, splits on page markers
// and recombines the cleaned pages separated by a blank line.
// Text without markers is a single page.
func NormalizeDocument(content string) Document {
	content = strings.ToValidUTF8(content, "")
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = norm.NFC.String(content)
	content = typographic.Replace(content)

	var pages []string
	for _, part := range pageMarker.Split(content, -1) {
		if cleaned := CleanText(part); cleaned != "" {
			pages = append(pages, cleaned)
		}
	}
	if pages == nil {
		pages = []string{}
	}
	return Document{Text: strings.Join(pages, "\n\n"), Pages: pages}
}

// Truncate cuts s to at most n bytes on a rune boundary.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// CleanText cleans and normalizes text content while preserving structure
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	cleanedLines := make([]string, 0, len(lines))
	for _, line := range lines {
		cleanedLines = append(cleanedLines, cleanLine(line))
	}

	result := strings.Join(cleanedLines, "\n")
	result = excessiveBlanks.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine trims a line and collapses inner whitespace.
func cleanLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return ""
	}
	return spaceRuns.ReplaceAllString(trimmed, " ")
}
