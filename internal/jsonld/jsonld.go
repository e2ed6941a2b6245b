// Package jsonld writes a schema.org BlogPosting document next to every post
// so search engines can pick up structured metadata.
package jsonld

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thomas11/blogcal/internal/output"
	"github.com/thomas11/blogcal/internal/post"
)

// JavaScript's Date.prototype.toISOString layout.
const isoLayout = "2006-01-02T15:04:05.000Z"

type Site struct {
	URL          string
	Author       string
	DefaultImage string
}

type Person struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type WebPage struct {
	Type string `json:"@type"`
	ID   string `json:"@id"`
}

type BlogPosting struct {
	Context          string   `json:"@context"`
	Type             string   `json:"@type"`
	MainEntityOfPage WebPage  `json:"mainEntityOfPage"`
	URL              string   `json:"url"`
	Headline         string   `json:"headline"`
	Description      string   `json:"description,omitempty"`
	ArticleBody      string   `json:"articleBody"`
	DatePublished    string   `json:"datePublished"`
	DateModified     string   `json:"dateModified"`
	Author           Person   `json:"author"`
	Image            string   `json:"image,omitempty"`
	Keywords         []string `json:"keywords"`
	ArticleSection   []string `json:"articleSection"`
}

type Emitter struct {
	site   Site
	out    output.Writer
	logger *log.Logger
}

func NewEmitter(site Site, out output.Writer, logger *log.Logger) *Emitter {
	return &Emitter{site: site, out: out, logger: logger}
}

// FilePath is where the document for p is written: inside the post's own
// directory, named after its date and slug.
func FilePath(p *post.Post) string {
	return path.Join(p.Path, p.Date.Format("20060102")+"_"+path.Base(p.Slug)+".json")
}

// Run writes one document per post.
func (e *Emitter) Run(posts post.Posts) error {
	for _, p := range posts {
		data, err := encode(e.document(p))
		if err != nil {
			return fmt.Errorf("encoding JSON-LD for %s: %w", p.Source, err)
		}
		if err := e.out.WriteFile(FilePath(p), data); err != nil {
			return fmt.Errorf("writing JSON-LD for %s: %w", p.Source, err)
		}
	}
	e.logger.Debug("JSON-LD generated", "posts", len(posts))
	return nil
}

func (e *Emitter) document(p *post.Post) BlogPosting {
	url := postURL(e.site.URL, p.Path)

	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}

	return BlogPosting{
		Context:          "https://schema.org",
		Type:             "BlogPosting",
		MainEntityOfPage: WebPage{Type: "WebPage", ID: url},
		URL:              url,
		Headline:         p.Title,
		Description:      p.Excerpt,
		ArticleBody:      p.Content,
		DatePublished:    isoDate(p.Date),
		DateModified:     isoDate(p.LastModified()),
		Author:           Person{Type: "Person", Name: cmp.Or(p.Author, e.site.Author)},
		Image:            cmp.Or(p.Image, e.site.DefaultImage),
		Keywords:         tags,
		ArticleSection:   post.CategoryNames(p.Categories),
	}
}

func postURL(base, relPath string) string {
	if base == "" {
		return "/" + relPath
	}
	if base[len(base)-1] == '/' {
		return base + relPath
	}
	return base + "/" + relPath
}

func isoDate(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
