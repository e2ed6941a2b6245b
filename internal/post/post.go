// Package post reads blog posts from Markdown files with YAML front matter
// and holds the records every generator works from.
package post

import (
	"bytes"
	"fmt"
	"sort"
	"time"
)

type Post struct {
	Title, Slug, Excerpt string
	// Rendered HTML body.
	Content string
	Date    time.Time
	Updated time.Time
	// Site-relative output location, e.g. "2024/01/31/hello/".
	Path string
	// Location of the file relative to the source directory, with forward slashes.
	Source     string
	Author     string
	Image      string
	Tags       []string
	Categories []Category
	Draft      bool
	Body       []byte
}

// Called from templates
func (p *Post) FormatDateShort() string {
	return formatDateShort(p.Date)
}

func (p *Post) FormatDate() string {
	return formatDate(p.Date)
}

// LastModified is the updated time when set, otherwise the publish date.
func (p *Post) LastModified() time.Time {
	if p.Updated.IsZero() {
		return p.Date
	}
	return p.Updated
}

func (p *Post) String() string {
	b := new(bytes.Buffer)
	b.WriteString("title: ")
	b.WriteString(p.Title)
	b.WriteString("\ndate: ")
	b.WriteString(p.Date.String())
	b.WriteString("\npath: ")
	b.WriteString(p.Path)
	b.WriteString("\nexcerpt: ")
	b.WriteString(p.Excerpt)
	b.WriteString("\ncategories: ")
	fmt.Fprintln(b, p.Categories)

	body := p.Body
	if len(body) > 200 {
		body = append(body[:200:200], '.', '.', '.')
	}
	b.WriteString("\nbody: ")
	b.Write(body)

	return b.String()
}

type Posts []*Post

func (ps Posts) Len() int           { return len(ps) }
func (ps Posts) Swap(i, j int)      { ps[i], ps[j] = ps[j], ps[i] }
func (ps Posts) Less(i, j int) bool { return ps[i].Date.After(ps[j].Date) }

// SortByDate orders the posts newest first. Posts with equal dates keep
// their relative order.
func (ps Posts) SortByDate() {
	sort.Stable(ps)
}

// Newest returns at most n posts from the front of ps. n <= 0 means all.
func (ps Posts) Newest(n int) Posts {
	if n <= 0 || n >= len(ps) {
		return ps
	}
	return ps[:n]
}

func (ps Posts) earliestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if t.IsZero() || p.Date.Before(t) {
			t = p.Date
		}
	}
	return t
}

func (ps Posts) latestDate() time.Time {
	var t time.Time
	for _, p := range ps {
		if p.Date.After(t) {
			t = p.Date
		}
	}
	return t
}

// LatestDate is the newest publish date, or the zero time for no posts.
func (ps Posts) LatestDate() time.Time {
	return ps.latestDate()
}

func formatDate(d time.Time) string {
	return d.Format("January 2, 2006")
}

func formatDateShort(d time.Time) string {
	return d.Format("Jan 2, 2006")
}
