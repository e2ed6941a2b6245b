// Package feed writes the RSS and Atom feeds of the newest posts.
package feed

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thomas11/blogcal/internal/output"
	"github.com/thomas11/blogcal/internal/post"
)

type Type string

const (
	RSS  Type = "rss"
	Atom Type = "atom"
)

// Path is where a feed of type t is written, relative to the public dir.
func (t Type) Path() string {
	return path.Join("feeds", string(t)+".xml")
}

func (t Type) Label() string {
	return strings.ToUpper(string(t))
}

// Site holds the channel-level metadata shared by all feeds.
type Site struct {
	Title       string
	Description string
	URL         string
	Author      string
	Language    string
}

// Link turns a site-relative path into an absolute URL.
func (s Site) Link(relPath string) string {
	return strings.TrimSuffix(s.URL, "/") + "/" + strings.TrimPrefix(relPath, "/")
}

type Options struct {
	RSS, Atom bool
	// Maximum number of posts per feed. 0 means no limit.
	PostLimit int
	// Also write an Atom feed per category.
	Categories bool
	// Build environment; feeds are not written in development.
	Env string
}

type Generator struct {
	site   Site
	opts   Options
	out    output.Writer
	logger *log.Logger
}

func NewGenerator(site Site, opts Options, out output.Writer, logger *log.Logger) *Generator {
	return &Generator{
		site:   site,
		opts:   opts,
		out:    out,
		logger: logger,
	}
}

// IsDevelopment reports whether env is a development build. An unset
// environment counts as development.
func IsDevelopment(env string) bool {
	return env == "" || env == "development"
}

// Run writes every enabled feed from the newest posts.
func (g *Generator) Run(posts post.Posts) error {
	if IsDevelopment(g.opts.Env) {
		g.logger.Info("Skipping feed generation in development or undefined environment.")
		return nil
	}

	sorted := make(post.Posts, len(posts))
	copy(sorted, posts)
	sorted.SortByDate()
	posts = sorted

	if g.opts.RSS {
		if err := g.write(RSS, posts); err != nil {
			return err
		}
	}
	if g.opts.Atom {
		if err := g.write(Atom, posts); err != nil {
			return err
		}
		if g.opts.Categories {
			return g.writeCategoryFeeds(posts)
		}
	}
	return nil
}

func (g *Generator) write(t Type, posts post.Posts) error {
	sorted := posts.Newest(g.opts.PostLimit)

	if len(sorted) == 0 {
		g.logger.Warn(fmt.Sprintf("No posts found for %s feed generation.", t.Label()))
		return nil
	}

	var (
		data []byte
		err  error
	)
	switch t {
	case RSS:
		data = g.renderRSS(sorted)
	case Atom:
		data, err = g.renderAtom(g.site.Title, "", sorted)
	default:
		err = fmt.Errorf("unknown feed type %q", t)
	}
	if err != nil {
		return fmt.Errorf("rendering %s feed: %w", t.Label(), err)
	}

	if err := g.out.WriteFile(t.Path(), data); err != nil {
		return fmt.Errorf("writing %s feed: %w", t.Label(), err)
	}
	g.logger.Info(t.Label()+" feed generated", "path", t.Path(), "posts", len(sorted))
	return nil
}

// description is the excerpt, or the plain-text content when there is none.
func description(p *post.Post) string {
	if p.Excerpt != "" {
		return p.Excerpt
	}
	return post.StripTags(p.Content)
}

func updated(posts post.Posts) time.Time {
	latest := posts.LatestDate()
	for _, p := range posts {
		if p.Updated.After(latest) {
			latest = p.Updated
		}
	}
	return latest
}
