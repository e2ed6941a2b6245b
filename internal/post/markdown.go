package post

import (
	"bufio"
	"bytes"
	"io"
	"regexp"
	"unicode/utf8"

	"github.com/russross/blackfriday/v2"
)

const (
	htmlFlags = blackfriday.UseXHTML |
		blackfriday.Smartypants |
		blackfriday.SmartypantsFractions |
		blackfriday.SmartypantsLatexDashes

	extensions = blackfriday.NoIntraEmphasis |
		blackfriday.Tables |
		blackfriday.FencedCode |
		blackfriday.Autolink |
		blackfriday.Strikethrough
)

// RenderMarkdown converts a Markdown body to HTML.
func RenderMarkdown(in []byte) string {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: htmlFlags})
	return string(blackfriday.Run(stripHighlightDirectives(in),
		blackfriday.WithRenderer(r),
		blackfriday.WithExtensions(extensions)))
}

// For now, just strip the highlighting directives.
func stripHighlightDirectives(text []byte) []byte {
	newText := bytes.NewBuffer(make([]byte, 0, len(text)))
	r := bufio.NewReader(bytes.NewReader(text))

	for {
		line, err := r.ReadBytes('\n')
		if !bytes.HasPrefix(bytes.TrimSpace(line), []byte("!highlight")) {
			newText.Write(line)
		}
		if err == io.EOF {
			break
		}
	}

	return newText.Bytes()
}

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every <...> markup tag from s.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}

// Truncate cuts s to at most limit characters. limit <= 0 leaves s alone.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
