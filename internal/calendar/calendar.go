// Package calendar writes the post calendar consumed by the theme's date
// picker: one JSON file of condensed posts per month, plus a summary of how
// many posts were published on each day.
package calendar

import (
	"bytes"
	"encoding/json"
	"path"
	"time"
)

const (
	// Dir is the output directory, relative to the public dir.
	Dir = "json/calendar"

	DefaultContentsCharacterLimit = 140

	// Same shape moment.js produces by default, with a numeric offset even for UTC.
	isoLayout = "2006-01-02T15:04:05-07:00"
)

// SummaryPath is where the per-day post counts are written.
var SummaryPath = path.Join(Dir, "posts.json")

// MonthPath is the bucket file for a year and zero-padded month.
func MonthPath(year, month string) string {
	return path.Join(Dir, year, "posts_"+month+".json")
}

type Options struct {
	// Maximum excerpt length in characters. 0 keeps the excerpt whole.
	ExcerptCharacterLimit int
	// Maximum length of the stripped content used when a post has no
	// excerpt. 0 keeps the content whole.
	ContentsCharacterLimit int
	// IANA zone name used to decide which day a post belongs to.
	Timezone string
}

// Summary is the condensed form of a post stored in a month bucket.
type Summary struct {
	Title   string `json:"t"`
	Excerpt string `json:"e"`
	Date    string `json:"d"`
	Path    string `json:"u"`
}

// MonthlyBucket maps a two-digit day of the month to the posts of that day,
// in input order.
type MonthlyBucket map[string][]Summary

func (b MonthlyBucket) add(day string, s Summary) {
	b[day] = append(b[day], s)
}

// Index counts posts per day: year -> month -> day -> count.
type Index map[string]map[string]map[string]int

func (ix Index) increment(year, month, day string) {
	months, ok := ix[year]
	if !ok {
		months = make(map[string]map[string]int)
		ix[year] = months
	}
	days, ok := months[month]
	if !ok {
		days = make(map[string]int)
		months[month] = days
	}
	days[day]++
}

// LoadLocation resolves name, falling back to UTC when it is empty or unknown.
func LoadLocation(name string) (*time.Location, bool) {
	if name == "" {
		return time.UTC, true
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC, false
	}
	return loc, true
}

// encode produces the stored form: two-space indentation, map keys sorted,
// markup left unescaped.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
