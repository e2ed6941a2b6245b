package post

import (
	"path"
	"strings"
	"time"
)

const DefaultPermalink = ":year/:month/:day/:title/"

// SlugFromSource derives a slug from a source path such as
// "_posts/2024/01/hello.md". Files under _posts use only their base name,
// so nested directories do not leak into URLs.
func SlugFromSource(source string) string {
	parts := strings.Split(source, "/")
	if len(parts) > 1 && parts[0] == "_posts" {
		return trimExt(parts[len(parts)-1])
	}
	return trimExt(source)
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}

// Permalink expands the :year, :month, :day and :title tokens of pattern.
// The date is taken in loc.
func Permalink(pattern, slug string, date time.Time, loc *time.Location) string {
	if pattern == "" {
		pattern = DefaultPermalink
	}
	if loc != nil {
		date = date.In(loc)
	}
	r := strings.NewReplacer(
		":year", date.Format("2006"),
		":month", date.Format("01"),
		":day", date.Format("02"),
		":title", slug,
	)
	return strings.TrimPrefix(r.Replace(pattern), "/")
}
