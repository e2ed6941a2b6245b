package site

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"

	"github.com/thomas11/blogcal/internal/output"
	"github.com/thomas11/blogcal/internal/post"
)

// LayoutDir is the directory under the theme dir that holds the page
// templates. post.html is required for pages to be rendered at all;
// global.html, list.html and topics.html are optional.
const LayoutDir = "layout"

type templateParam struct {
	SiteTitle     string
	PageTitle     string
	Env           string
	AllCategories []post.Category
	// A short id such as a category name or "index"
	FileId string
}

func (t templateParam) IdIs(id string) bool {
	return t.FileId == id
}

type postTemplateParam struct {
	templateParam
	*post.Post
	RenderedBody template.HTML
}

type postListTemplateParam struct {
	templateParam
	PageHeading string
	Posts       post.Posts
}

type topicsTemplateParam struct {
	templateParam
	PostsByCategory post.PostsByCategory
}

func (t topicsTemplateParam) Eq(a, b int) bool {
	return a == b
}

type templateEngine struct {
	layoutDir     string
	templateCache map[string]*template.Template
}

func newTemplateEngine(themeDir string) *templateEngine {
	return &templateEngine{
		layoutDir:     filepath.Join(themeDir, LayoutDir),
		templateCache: make(map[string]*template.Template),
	}
}

func (te *templateEngine) has(filename string) bool {
	info, err := os.Stat(filepath.Join(te.layoutDir, filename))
	return err == nil && info.Mode().IsRegular()
}

func (te *templateEngine) getTemplate(filename string) (*template.Template, error) {
	if t, ok := te.templateCache[filename]; ok {
		return t, nil
	}

	files := []string{filepath.Join(te.layoutDir, filename)}
	if te.has("global.html") {
		files = append([]string{filepath.Join(te.layoutDir, "global.html")}, files...)
	}
	t, err := template.New(filename).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", filename, err)
	}
	te.templateCache[filename] = t
	return t, nil
}

func (te *templateEngine) render(filename string, data any) ([]byte, error) {
	t, err := te.getTemplate(filename)
	if err != nil {
		return nil, err
	}
	var b bytes.Buffer
	if err := t.ExecuteTemplate(&b, filename, data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", filename, err)
	}
	return b.Bytes(), nil
}

func (te *templateEngine) renderPost(tp templateParam, p *post.Post) ([]byte, error) {
	return te.render("post.html", postTemplateParam{
		templateParam: tp,
		Post:          p,
		RenderedBody:  template.HTML(p.Content),
	})
}

func (te *templateEngine) renderPostList(tp templateParam, posts post.Posts, pageHeading string) ([]byte, error) {
	return te.render("list.html", postListTemplateParam{
		templateParam: tp,
		PageHeading:   pageHeading,
		Posts:         posts,
	})
}

func (te *templateEngine) renderTopics(tp templateParam, topics post.PostsByCategory) ([]byte, error) {
	return te.render("topics.html", topicsTemplateParam{
		templateParam:   tp,
		PostsByCategory: topics,
	})
}

// TopicsPagePath is where the overview of all categories is written.
const TopicsPagePath = "topics/index.html"

// CategoryPagePath is where the list page of category c is written.
func CategoryPagePath(c post.Category) string {
	return path.Join("categories", c.Id(), "index.html")
}

// renderPages writes one page per post and, when the theme has list.html,
// an index page and one page per category. topics.html adds an overview of
// all categories.
func (s *Site) renderPages(out output.Writer) error {
	engine := newTemplateEngine(s.conf.ThemeDir)
	if !engine.has("post.html") {
		s.logger.Debug("No post layout in theme, skipping pages", "dir", engine.layoutDir)
		return nil
	}

	byCat := post.GroupByCategory(s.posts)
	cats := make([]post.Category, 0, len(byCat))
	for _, c := range byCat {
		cats = append(cats, c.Category)
	}

	globalTP := templateParam{
		SiteTitle:     s.conf.Title,
		Env:           s.conf.Env,
		AllCategories: cats,
	}

	for _, p := range s.posts {
		globalTP.PageTitle = p.Title
		globalTP.FileId = p.Slug
		page, err := engine.renderPost(globalTP, p)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", p.Source, err)
		}
		if err := out.WriteFile(path.Join(p.Path, "index.html"), page); err != nil {
			return err
		}
	}

	if engine.has("topics.html") {
		globalTP.PageTitle = "Topics"
		globalTP.FileId = "topics"
		page, err := engine.renderTopics(globalTP, byCat)
		if err != nil {
			return err
		}
		if err := out.WriteFile(TopicsPagePath, page); err != nil {
			return err
		}
	}

	if !engine.has("list.html") {
		return nil
	}

	for _, c := range byCat {
		globalTP.PageTitle = c.Category.String()
		globalTP.FileId = c.Category.Id()
		page, err := engine.renderPostList(globalTP, c.Posts, c.Category.String())
		if err != nil {
			return err
		}
		if err := out.WriteFile(CategoryPagePath(c.Category), page); err != nil {
			return err
		}
	}

	globalTP.PageTitle = s.conf.Title
	globalTP.FileId = "index"
	page, err := engine.renderPostList(globalTP, s.posts, "")
	if err != nil {
		return err
	}
	return out.WriteFile("index.html", page)
}
