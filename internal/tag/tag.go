// Package tag expands the {% name args %} content tags used in post bodies.
package tag

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	RawDir      = "_raw"
	PatternsDir = "_patterns"
)

var tagPattern = regexp.MustCompile(`\{%\s*(\w+)((?:\s+[^%]*?)?)\s*%\}`)

// Func renders a tag from its arguments.
type Func func(args []string) (string, error)

type Expander struct {
	sourceDir string
	tags      map[string]Func
	logger    *log.Logger
}

// NewExpander registers the built-in tags, reading files below sourceDir.
func NewExpander(sourceDir string, logger *log.Logger) *Expander {
	e := &Expander{
		sourceDir: sourceDir,
		tags:      make(map[string]Func),
		logger:    logger,
	}
	e.Register("include_raw_contents", e.includeRawContents)
	e.Register("create_content", e.createContent)
	return e
}

func (e *Expander) Register(name string, fn Func) {
	e.tags[name] = fn
}

// Expand replaces every registered tag in body. Unknown tags are left as
// they are. A failing tag is logged and replaced with nothing.
func (e *Expander) Expand(body []byte) []byte {
	return tagPattern.ReplaceAllFunc(body, func(m []byte) []byte {
		sub := tagPattern.FindSubmatch(m)
		name := string(sub[1])
		fn, ok := e.tags[name]
		if !ok {
			return m
		}
		out, err := fn(strings.Fields(string(sub[2])))
		if err != nil {
			e.logger.Error("Tag failed", "tag", name, "error", err)
			return nil
		}
		return []byte(out)
	})
}

// includeRawContents inserts a file from _raw verbatim. Arguments are joined
// with spaces so file names may contain them.
func (e *Expander) includeRawContents(args []string) (string, error) {
	rel := strings.Join(args, " ")
	if rel == "" {
		return "", fmt.Errorf("expected a file name")
	}
	return e.readFile(RawDir, rel)
}

// createContent fills a pattern from _patterns, replacing $PARAM1..$PARAMn
// with the remaining arguments.
func (e *Expander) createContent(args []string) (string, error) {
	if len(args) < 1 {
		return "", fmt.Errorf("invalid number of arguments, expected at least 1")
	}
	content, err := e.readFile(PatternsDir, args[0])
	if err != nil {
		return "", err
	}

	// Highest index first so $PARAM1 does not clobber $PARAM10.
	params := args[1:]
	for i := len(params) - 1; i >= 0; i-- {
		content = strings.ReplaceAll(content, fmt.Sprintf("$PARAM%d", i+1), params[i])
	}
	return content, nil
}

func (e *Expander) readFile(dir, rel string) (string, error) {
	base := filepath.Join(e.sourceDir, dir)
	path := filepath.Join(base, filepath.FromSlash(rel))
	if r, err := filepath.Rel(base, path); err != nil || strings.HasPrefix(r, "..") {
		return "", fmt.Errorf("file %s is outside %s", rel, base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", err
	}
	return string(data), nil
}
