package post

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/charmbracelet/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// PostsDir is the directory under the source dir that holds posts.
const PostsDir = "_posts"

const moreMarker = "<!-- more -->"

var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// BodyFilter rewrites a raw post body before it is rendered.
type BodyFilter interface {
	Expand(body []byte) []byte
}

type frontMatter struct {
	Title      string   `yaml:"title"`
	Date       rawDate  `yaml:"date"`
	Updated    rawDate  `yaml:"updated"`
	Excerpt    string   `yaml:"excerpt"`
	Slug       string   `yaml:"slug"`
	Author     string   `yaml:"author"`
	Image      string   `yaml:"image"`
	Tags       []string `yaml:"tags"`
	Categories []string `yaml:"categories"`
	Draft      bool     `yaml:"draft"`
}

// rawDate keeps the literal scalar so dates without an offset can be
// interpreted in the site timezone rather than as UTC.
type rawDate string

func (d *rawDate) UnmarshalYAML(n *yaml.Node) error {
	*d = rawDate(n.Value)
	return nil
}

type Reader struct {
	sourceDir string
	permalink string
	loc       *time.Location
	filter    BodyFilter
	logger    *log.Logger
}

// NewReader reads posts below sourceDir/_posts. Dates without an explicit
// offset are taken in loc. filter may be nil.
func NewReader(sourceDir, permalink string, loc *time.Location, filter BodyFilter, logger *log.Logger) *Reader {
	if loc == nil {
		loc = time.UTC
	}
	return &Reader{
		sourceDir: sourceDir,
		permalink: permalink,
		loc:       loc,
		filter:    filter,
		logger:    logger,
	}
}

// ReadAll reads every post, skipping drafts unless drafts is set, and
// returns them newest first.
func (r *Reader) ReadAll(drafts bool) (Posts, error) {
	files, err := r.findPostFiles()
	if err != nil {
		return nil, err
	}

	posts := make(Posts, 0, len(files))
	for _, f := range files {
		p, err := r.ReadFile(f)
		if err != nil {
			return nil, err
		}
		if p.Draft && !drafts {
			r.logger.Debug("Skipping draft", "source", p.Source)
			continue
		}
		posts = append(posts, p)
	}

	posts.SortByDate()
	return posts, nil
}

func (r *Reader) findPostFiles() ([]string, error) {
	dir := filepath.Join(r.sourceDir, PostsDir)
	files := make([]string, 0, 100)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		r.logger.Warn("Posts directory not found", "dir", dir)
		return files, nil
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// ReadFile parses a single post file.
func (r *Reader) ReadFile(path string) (*Post, error) {
	fileContent, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fm frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(fileContent), &fm, yamlFormat)
	if err != nil {
		return nil, fmt.Errorf("invalid front matter in %v: %w", path, err)
	}

	source, err := filepath.Rel(r.sourceDir, path)
	if err != nil {
		source = filepath.Base(path)
	}
	source = filepath.ToSlash(source)

	p := &Post{
		Title:      fm.Title,
		Slug:       fm.Slug,
		Source:     source,
		Author:     fm.Author,
		Image:      fm.Image,
		Tags:       fm.Tags,
		Categories: categoriesFrom(fm.Categories),
		Draft:      fm.Draft,
	}

	if p.Slug == "" {
		p.Slug = SlugFromSource(source)
	}
	if p.Title == "" {
		p.Title = titleFromSlug(p.Slug)
	}

	if fm.Date == "" {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		r.logger.Debug("No date in front matter, using modification time", "source", source)
		p.Date = info.ModTime().In(r.loc)
	} else if p.Date, err = r.parseDate(string(fm.Date)); err != nil {
		return nil, fmt.Errorf("invalid date in %v: %w", path, err)
	}
	if fm.Updated != "" {
		if p.Updated, err = r.parseDate(string(fm.Updated)); err != nil {
			return nil, fmt.Errorf("invalid updated date in %v: %w", path, err)
		}
	}

	if r.filter != nil {
		body = r.filter.Expand(body)
	}
	p.Body = body
	p.Content = RenderMarkdown(body)

	switch {
	case fm.Excerpt != "":
		p.Excerpt = fm.Excerpt
	case bytes.Contains(body, []byte(moreMarker)):
		before, _, _ := bytes.Cut(body, []byte(moreMarker))
		p.Excerpt = strings.TrimSpace(RenderMarkdown(before))
	}

	p.Path = Permalink(r.permalink, p.Slug, p.Date, r.loc)

	return p, nil
}

func (r *Reader) parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, format := range dateFormats {
		if d, err := time.ParseInLocation(format, s, r.loc); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM:SS", s)
}

func titleFromSlug(slug string) string {
	t := strings.ReplaceAll(strings.ReplaceAll(slug, "-", " "), "_", " ")
	return cases.Title(language.English).String(t)
}
