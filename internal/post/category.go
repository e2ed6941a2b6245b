package post

import (
	"cmp"
	"slices"
	"strings"
)

type Category string

func (c Category) String() string { return string(c) }

func (c Category) Id() string { return strings.ReplaceAll(c.String(), " ", "_") }

func categoriesFrom(names []string) []Category {
	cats := make([]Category, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		cats = append(cats, Category(n))
	}
	return cats
}

// CategoryNames returns the plain names, never nil.
func CategoryNames(cats []Category) []string {
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.String())
	}
	return names
}

type CategoryWithPosts struct {
	Category Category
	Posts    Posts
}

func (c CategoryWithPosts) EarliestDateFormatted() string {
	return formatDateShort(c.Posts.earliestDate())
}

func (c CategoryWithPosts) LatestDateFormatted() string {
	return formatDateShort(c.Posts.latestDate())
}

// PostsByCategory holds posts grouped by category.
type PostsByCategory []CategoryWithPosts

func (pc *PostsByCategory) addPost(c Category, p *Post) {
	for i, cat := range *pc {
		if cat.Category == c {
			cat.Posts = append(cat.Posts, p)
			(*pc)[i] = cat
			return
		}
	}

	*pc = append(*pc, CategoryWithPosts{c, Posts{p}})
}

// GroupByCategory collects the posts of every category, keeping the order
// of posts within each category. Categories are ordered by number of posts,
// then by newest post.
func GroupByCategory(posts Posts) PostsByCategory {
	byCat := make(PostsByCategory, 0, 20)

	for _, p := range posts {
		for _, cat := range p.Categories {
			byCat.addPost(cat, p)
		}
	}

	slices.SortStableFunc(byCat, func(a, b CategoryWithPosts) int {
		if c := cmp.Compare(len(b.Posts), len(a.Posts)); c != 0 {
			return c
		}
		return b.Posts.latestDate().Compare(a.Posts.latestDate())
	})

	return byCat
}
