package post

import (
	"testing"
	"time"
)

func TestSlugFromSource(t *testing.T) {
	tests := []struct {
		source, want string
	}{
		{"_posts/hello.md", "hello"},
		{"_posts/2024/01/hello-world.md", "hello-world"},
		{"_posts/2024/01/notes.markdown", "notes"},
		{"about.md", "about"},
		{"pages/about.md", "pages/about"},
	}
	for _, tt := range tests {
		if got := SlugFromSource(tt.source); got != tt.want {
			t.Errorf("SlugFromSource(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestPermalink(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 2023-12-31 20:00 UTC is already January 1st in Tokyo.
	date := time.Date(2023, 12, 31, 20, 0, 0, 0, time.UTC)

	if got := Permalink("", "hello", date, tokyo); got != "2024/01/01/hello/" {
		t.Errorf("unexpected permalink %q", got)
	}
	if got := Permalink("/posts/:title.html", "hello", date, time.UTC); got != "posts/hello.html" {
		t.Errorf("unexpected permalink %q", got)
	}
}
