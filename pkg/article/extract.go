package article

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

var (
	// (?s) allows dot to match newlines
	// (?i) makes it case-insensitive
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes ruby text (<rt>...</rt>) and ruby parentheses (<rp>...</rp>)
// so that furigana is not glued onto the words it annotates.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	cleaned = reRP.ReplaceAll(cleaned, []byte{})
	return cleaned
}

// Text is the readable content of a local article file.
type Text struct {
	Title string
	Body  string
}

// ExtractFile reads an article from disk. HTML files go through readability;
// anything else is taken as plain text.
func ExtractFile(path string) (Text, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Text{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
	default:
		return Text{Title: filepath.Base(path), Body: string(content)}, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Text{}, err
	}
	pageURL := &url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	art, err := readability.FromReader(bytes.NewReader(SanitizeRuby(content)), pageURL)
	if err != nil {
		return Text{}, fmt.Errorf("extract article %s: %w", path, err)
	}
	return Text{Title: art.Title, Body: art.TextContent}, nil
}
