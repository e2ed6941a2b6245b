package post

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<p>Hello <b>World</b></p>", "Hello World"},
		{"no markup", "no markup"},
		{`<a href="/x">link</a> text`, "link text"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StripTags(tt.in); got != tt.want {
			t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"0123456789ABCDEF", 10, "0123456789"},
		{"0123456789ABCDEF", 0, "0123456789ABCDEF"},
		{"short", 10, "short"},
		{"exact", 5, "exact"},
		{"日本語のテキスト", 3, "日本語"},
	}
	for _, tt := range tests {
		if got := Truncate(tt.in, tt.limit); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
		}
	}
}

func TestRenderMarkdown(t *testing.T) {
	html := RenderMarkdown([]byte("# Title\n\nSome *text*.\n"))
	if !strings.Contains(html, "<em>text</em>") {
		t.Errorf("expected emphasis in %q", html)
	}
}

func TestStripHighlightDirectives(t *testing.T) {
	in := "line one\n  !highlight go\nline two"
	got := string(stripHighlightDirectives([]byte(in)))
	if got != "line one\nline two" {
		t.Errorf("unexpected result %q", got)
	}
}
