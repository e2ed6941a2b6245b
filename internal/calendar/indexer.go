package calendar

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/thomas11/blogcal/internal/output"
	"github.com/thomas11/blogcal/internal/post"
)

// Indexer buckets posts by month in a single pass.
type Indexer struct {
	opts   Options
	loc    *time.Location
	out    output.Writer
	logger *log.Logger
}

func NewIndexer(opts Options, out output.Writer, logger *log.Logger) *Indexer {
	loc, ok := LoadLocation(opts.Timezone)
	if !ok {
		logger.Debug("Unknown timezone, using UTC", "timezone", opts.Timezone)
	}
	return &Indexer{
		opts:   opts,
		loc:    loc,
		out:    out,
		logger: logger,
	}
}

type cursor struct {
	year, month string
	bucket      MonthlyBucket
}

// Run writes one bucket file per month found in posts and the day-count
// summary. posts must be sorted newest first; a month boundary is any change
// of year or month between neighbours.
func (ix *Indexer) Run(posts []*post.Post) error {
	index := make(Index)

	if len(posts) == 0 {
		ix.logger.Warn("No posts found for calendar generation.")
	}

	var cur *cursor
	flushed := make(map[string]bool)
	months := 0

	for _, p := range posts {
		local := p.Date.In(ix.loc)
		year, month, day := local.Format("2006"), local.Format("01"), local.Format("02")

		if cur == nil || year != cur.year || month != cur.month {
			if cur != nil {
				if err := ix.flush(cur); err != nil {
					return err
				}
				flushed[cur.year+cur.month] = true
				months++
			}
			if flushed[year+month] {
				ix.logger.Warn("Posts are not sorted by date, month file will be overwritten",
					"year", year, "month", month)
			}
			cur = &cursor{year: year, month: month, bucket: make(MonthlyBucket)}
		}

		cur.bucket.add(day, ix.summarize(p, local))
		index.increment(year, month, day)
	}

	if cur != nil {
		if err := ix.flush(cur); err != nil {
			return err
		}
		months++
	}

	data, err := encode(index)
	if err != nil {
		return fmt.Errorf("encoding calendar summary: %w", err)
	}
	if err := ix.out.WriteFile(SummaryPath, data); err != nil {
		return fmt.Errorf("writing calendar summary: %w", err)
	}

	ix.logger.Info("Calendar generated", "posts", len(posts), "months", months)
	return nil
}

func (ix *Indexer) flush(c *cursor) error {
	data, err := encode(c.bucket)
	if err != nil {
		return fmt.Errorf("encoding calendar for %s-%s: %w", c.year, c.month, err)
	}
	if err := ix.out.WriteFile(MonthPath(c.year, c.month), data); err != nil {
		return fmt.Errorf("writing calendar for %s-%s: %w", c.year, c.month, err)
	}
	return nil
}

func (ix *Indexer) summarize(p *post.Post, local time.Time) Summary {
	return Summary{
		Title:   p.Title,
		Excerpt: ix.excerpt(p),
		Date:    local.Format(isoLayout),
		Path:    p.Path,
	}
}

// excerpt prefers the post's own excerpt and otherwise falls back to the
// content with markup stripped.
func (ix *Indexer) excerpt(p *post.Post) string {
	if p.Excerpt != "" {
		return post.Truncate(p.Excerpt, ix.opts.ExcerptCharacterLimit)
	}
	return post.Truncate(post.StripTags(p.Content), ix.opts.ContentsCharacterLimit)
}
