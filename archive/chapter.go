package archive

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"ao3/document"
)

// Chapter is one chapter of a work: its position, optional author blurbs,
// and the parsed body.
type Chapter struct {
	ID     int64
	Number int
	Title  string

	Summary  []document.Node
	Notes    []document.Node
	EndNotes []document.Node
	Body     []document.Node
}

// ChapterRef is one entry of a work's chapter index.
type ChapterRef struct {
	ID     int64
	Number int
	Title  string
}

// FetchChapterIndex retrieves the chapter listing of a work from its
// navigation page. Useful for fetching chapters selectively instead of
// pulling the full work at once.
func (c *Client) FetchChapterIndex(ctx context.Context, workID int64) ([]ChapterRef, error) {
	doc, err := c.document(ctx, fmt.Sprintf("/works/%d/navigate", workID))
	if err != nil {
		return nil, err
	}

	var refs []ChapterRef
	doc.Find("ol.chapter.index a").Each(func(i int, a *goquery.Selection) {
		ref := ChapterRef{Number: i + 1}
		if href, ok := a.Attr("href"); ok {
			ref.ID = chapterIDFromPath(href)
		}
		num, title := splitChapterHeading(strings.TrimSpace(a.Text()))
		if num > 0 {
			ref.Number = num
		}
		ref.Title = title
		refs = append(refs, ref)
	})

	if len(refs) == 0 {
		return nil, fmt.Errorf("work %d: no chapter index found", workID)
	}
	return refs, nil
}

// FetchChapter retrieves a single chapter by its archive id.
func (c *Client) FetchChapter(ctx context.Context, workID, chapterID int64) (*Chapter, error) {
	ref := fmt.Sprintf("/works/%d/chapters/%d?view_adult=true", workID, chapterID)
	doc, err := c.document(ctx, ref)
	if err != nil {
		return nil, err
	}

	sel := doc.Find("#chapters div.chapter").First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("work %d chapter %d: no chapter content found", workID, chapterID)
	}

	ch := &Chapter{ID: chapterID}
	num, _ := splitChapterHeading(strings.TrimSpace(sel.Find("h3.title a").First().Text()))
	ch.Number = num
	ch.Title = chapterTitle(sel.Find("h3.title").First())
	ch.Summary = parseBlurb(sel.Find("div.summary.module blockquote.userstuff").First())
	ch.Notes = parseBlurb(sel.Find("div.notes.module blockquote.userstuff").First())
	ch.EndNotes = parseBlurb(sel.Find("div.end.notes.module blockquote.userstuff").First())
	ch.Body = parseUserstuff(sel.Find("div.userstuff.module").First())
	return ch, nil
}

// chapterIDFromPath extracts the id from /works/N/chapters/M paths.
func chapterIDFromPath(href string) int64 {
	const marker = "/chapters/"
	i := strings.Index(href, marker)
	if i < 0 {
		return 0
	}
	rest := href[i+len(marker):]
	if j := strings.IndexAny(rest, "?#/"); j >= 0 {
		rest = rest[:j]
	}
	id, _ := strconv.ParseInt(rest, 10, 64)
	return id
}

// splitChapterHeading separates "3. The Title" index entries.
func splitChapterHeading(s string) (int, string) {
	num, title, ok := strings.Cut(s, ".")
	if !ok {
		return 0, s
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil {
		return 0, s
	}
	return n, strings.TrimSpace(title)
}
