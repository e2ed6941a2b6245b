package feed

import (
	"cmp"
	"fmt"
	"path"

	atom "github.com/thomas11/atomgenerator"

	"github.com/thomas11/blogcal/internal/post"
)

// CategoryPath is where the Atom feed of one category is written.
func CategoryPath(c post.Category) string {
	return path.Join("feeds", "categories", c.Id()+".xml")
}

func (g *Generator) renderAtom(title, relURL string, posts post.Posts) ([]byte, error) {
	feed := atom.Feed{
		Title:   title,
		Link:    g.site.Link(relURL),
		PubDate: updated(posts),
	}
	feed.AddAuthor(atom.Author{
		Name: cmp.Or(g.site.Author, g.site.Title),
		Uri:  g.site.URL,
	})

	for _, p := range posts {
		feed.AddEntry(g.entryForPost(p))
	}

	errs := feed.Validate()
	if len(errs) > 0 {
		g.logger.Error("Atom feed is not valid!", "title", title)
		for _, e := range errs {
			g.logger.Error(e.Error())
		}
		return nil, errs[0]
	}

	return feed.GenXml()
}

func (g *Generator) entryForPost(p *post.Post) *atom.Entry {
	e := &atom.Entry{
		Title:       p.Title,
		Description: description(p),
		Link:        g.site.Link(p.Path),
		PubDate:     p.Date,
		Content:     p.Content,
	}

	for _, cat := range p.Categories {
		e.AddCategory(atom.Category{Term: cat.String()})
	}

	return e
}

// writeCategoryFeeds writes one Atom feed per category, each limited like
// the main feed.
func (g *Generator) writeCategoryFeeds(posts post.Posts) error {
	for _, cp := range post.GroupByCategory(posts) {
		category := cp.Category
		title := g.site.Title + ` Category "` + category.String() + `."`
		relURL := "categories/" + category.Id() + "/"

		data, err := g.renderAtom(title, relURL, cp.Posts.Newest(g.opts.PostLimit))
		if err != nil {
			return fmt.Errorf("rendering feed for category %s: %w", category, err)
		}
		if err := g.out.WriteFile(CategoryPath(category), data); err != nil {
			return fmt.Errorf("writing feed for category %s: %w", category, err)
		}
	}
	return nil
}
