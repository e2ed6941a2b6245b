package tag

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func setup(t *testing.T) (string, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"_raw/snippet.html":      "<div>raw</div>",
		"_raw/with space.txt":    "spaced",
		"_patterns/greeting.txt": "Hello $PARAM1, meet $PARAM2. Bye $PARAM1.",
		"_patterns/ten.txt":      "$PARAM1|$PARAM10",
	}
	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir, new(bytes.Buffer)
}

func TestExpand(t *testing.T) {
	dir, logs := setup(t)
	e := NewExpander(dir, log.New(logs))

	tests := []struct {
		name, in, want string
	}{
		{"raw", "before {% include_raw_contents snippet.html %} after", "before <div>raw</div> after"},
		{"raw with spaces", "{% include_raw_contents with space.txt %}", "spaced"},
		{"pattern", "{% create_content greeting.txt Ann Bob %}", "Hello Ann, meet Bob. Bye Ann."},
		{"pattern without params", "{% create_content greeting.txt %}", "Hello $PARAM1, meet $PARAM2. Bye $PARAM1."},
		{"tenth param", "{% create_content ten.txt a b c d e f g h i j %}", "a|j"},
		{"unknown tag", "{% youtube abc %}", "{% youtube abc %}"},
		{"no tags", "plain text", "plain text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(e.Expand([]byte(tt.in))); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandMissingFile(t *testing.T) {
	dir, logs := setup(t)
	e := NewExpander(dir, log.New(logs))

	got := string(e.Expand([]byte("a{% include_raw_contents nope.html %}b")))
	if got != "ab" {
		t.Errorf("expected missing file to expand to nothing, got %q", got)
	}
	if !strings.Contains(logs.String(), "file not found") {
		t.Errorf("expected an error to be logged, got %q", logs.String())
	}
}

func TestExpandMissingArguments(t *testing.T) {
	dir, logs := setup(t)
	e := NewExpander(dir, log.New(logs))

	if got := string(e.Expand([]byte("{% create_content %}"))); got != "" {
		t.Errorf("expected empty expansion, got %q", got)
	}
	if !strings.Contains(logs.String(), "invalid number of arguments") {
		t.Errorf("expected argument error to be logged, got %q", logs.String())
	}
}

func TestExpandRejectsEscapes(t *testing.T) {
	dir, _ := setup(t)
	e := NewExpander(filepath.Join(dir, "_raw"), log.New(io.Discard))

	if got := string(e.Expand([]byte("{% include_raw_contents ../../_patterns/ten.txt %}"))); got != "" {
		t.Errorf("expected path outside the raw dir to be refused, got %q", got)
	}
}

func TestRegister(t *testing.T) {
	dir, _ := setup(t)
	e := NewExpander(dir, log.New(io.Discard))
	e.Register("shout", func(args []string) (string, error) {
		return strings.ToUpper(strings.Join(args, " ")), nil
	})

	if got := string(e.Expand([]byte("{% shout hi there %}"))); got != "HI THERE" {
		t.Errorf("unexpected expansion %q", got)
	}
}
