package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/thomas11/blogcal/internal/post"
)

func (g *Generator) renderRSS(posts post.Posts) []byte {
	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", g.site.Title, 4)
	writeElement(&buf, "link", g.site.Link(""), 4)
	writeElement(&buf, "description", cmp.Or(g.site.Description, "Latest posts from "+g.site.Title), 4)
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(g.site.Link(RSS.Path()))))
	writeElement(&buf, "lastBuildDate", updated(posts).Format(time.RFC1123Z), 4)
	writeElement(&buf, "generator", "blogcal", 4)
	writeElement(&buf, "language", g.site.Language, 4)

	for _, p := range posts {
		g.writeItem(&buf, p)
	}

	buf.WriteString("  </channel>\n</rss>\n")

	return buf.Bytes()
}

func (g *Generator) writeItem(buf *bytes.Buffer, p *post.Post) {
	link := g.site.Link(p.Path)

	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"true\">")
	xml.EscapeText(buf, []byte(link))
	buf.WriteString("</guid>\n")

	writeElement(buf, "title", p.Title, 6)
	writeElement(buf, "link", link, 6)
	writeElement(buf, "description", description(p), 6)

	if p.Content != "" {
		buf.WriteString("      <content:encoded><![CDATA[")
		buf.WriteString(strings.ReplaceAll(p.Content, "]]>", "]]]]><![CDATA[>"))
		buf.WriteString("]]></content:encoded>\n")
	}

	writeElement(buf, "pubDate", p.Date.Format(time.RFC1123Z), 6)
	writeElement(buf, "author", cmp.Or(p.Author, g.site.Author), 6)

	for _, c := range p.Categories {
		writeElement(buf, "category", c.String(), 6)
	}
	for _, tag := range p.Tags {
		writeElement(buf, "category", tag, 6)
	}

	buf.WriteString("    </item>\n")
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
