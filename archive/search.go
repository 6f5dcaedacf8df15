package archive

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"ao3/common"
	"ao3/document"
)

// Filter describes a work search. Zero values mean "no constraint"; range
// fields take the archive's own syntax ("1000-5000", ">10000", "<7 days").
type Filter struct {
	Query    string
	Title    string
	Creators string
	Date     string // revised-at range

	Completion    common.Completion
	Crossover     common.Crossover
	SingleChapter bool
	WordCount     string
	Language      string // archive language id, e.g. "en"

	Fandoms       []string
	Rating        *common.Rating
	Warnings      []common.Warning
	Categories    []common.Category
	Characters    []string
	Relationships []string
	Tags          []string

	Hits      string
	Kudos     string
	Comments  string
	Bookmarks string

	SortBy         common.SortBy
	SortDescending bool

	Page int
}

// EncodeQuery renders the filter as the archive's work_search form encoding.
func (f Filter) EncodeQuery() string {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set("work_search["+key+"]", val)
		}
	}

	set("query", f.Query)
	set("title", f.Title)
	set("creators", f.Creators)
	set("revised_at", f.Date)

	switch f.Completion {
	case common.CompletionComplete:
		set("complete", "T")
	case common.CompletionInProgress:
		set("complete", "F")
	}
	switch f.Crossover {
	case common.CrossoverExclude:
		set("crossover", "F")
	case common.CrossoverOnly:
		set("crossover", "T")
	}
	if f.SingleChapter {
		set("single_chapter", "1")
	}
	set("word_count", f.WordCount)
	set("language_id", f.Language)

	set("fandom_names", strings.Join(f.Fandoms, ","))
	if f.Rating != nil {
		set("rating_ids", strconv.Itoa(f.Rating.TagID()))
	}
	for _, w := range f.Warnings {
		v.Add("work_search[archive_warning_ids][]", strconv.Itoa(w.TagID()))
	}
	for _, c := range f.Categories {
		v.Add("work_search[category_ids][]", strconv.Itoa(c.TagID()))
	}
	set("character_names", strings.Join(f.Characters, ","))
	set("relationship_names", strings.Join(f.Relationships, ","))
	set("freeform_names", strings.Join(f.Tags, ","))

	set("hits", f.Hits)
	set("kudos_count", f.Kudos)
	set("comments_count", f.Comments)
	set("bookmarks_count", f.Bookmarks)

	set("sort_column", f.SortBy.QueryValue())
	if f.SortDescending {
		set("sort_direction", "desc")
	}

	if f.Page > 1 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	v.Set("commit", "Search")
	return v.Encode()
}

// SearchResult is one blurb from a search result page. It carries the
// listing metadata only; fetch the work itself for chapter text.
type SearchResult struct {
	ID      int64
	Title   string
	Authors []Pseud

	Fandoms []string
	Tags    []string
	Summary []document.Node

	Language string
	Words    int
	Kudos    int
	Hits     int
}

// SearchResults is one page of search results.
type SearchResults struct {
	Total   int
	Page    int
	Results []SearchResult
}

// SearchWorks runs a work search and scrapes the result page.
func (c *Client) SearchWorks(ctx context.Context, f Filter) (*SearchResults, error) {
	ref := "/works/search?" + f.EncodeQuery()
	doc, err := c.document(ctx, ref)
	if err != nil {
		return nil, err
	}

	res := &SearchResults{Page: max(f.Page, 1)}
	res.Total = parseResultTotal(doc.Find("#main h3.heading").First().Text())

	doc.Find("li.work.blurb").Each(func(_ int, blurb *goquery.Selection) {
		res.Results = append(res.Results, parseWorkBlurb(blurb))
	})

	c.log.Info("Search completed",
		zap.Int("total", res.Total),
		zap.Int("page", res.Page),
		zap.Int("results", len(res.Results)))
	return res, nil
}

func parseWorkBlurb(blurb *goquery.Selection) SearchResult {
	var r SearchResult

	if id, ok := blurb.Attr("id"); ok {
		r.ID, _ = strconv.ParseInt(strings.TrimPrefix(id, "work_"), 10, 64)
	}

	heading := blurb.Find("h4.heading").First()
	heading.Find("a").Each(func(i int, a *goquery.Selection) {
		if i == 0 {
			r.Title = strings.TrimSpace(a.Text())
			return
		}
		if rel, _ := a.Attr("rel"); rel == "author" {
			r.Authors = append(r.Authors, pseudFromLink(a))
		}
	})

	blurb.Find("h5.fandoms a.tag").Each(func(_ int, a *goquery.Selection) {
		r.Fandoms = append(r.Fandoms, strings.TrimSpace(a.Text()))
	})
	blurb.Find("ul.tags a.tag").Each(func(_ int, a *goquery.Selection) {
		r.Tags = append(r.Tags, strings.TrimSpace(a.Text()))
	})

	r.Summary = parseBlurb(blurb.Find("blockquote.userstuff.summary").First())

	stats := blurb.Find("dl.stats").First()
	r.Language = strings.TrimSpace(blurb.Find("dd.language").First().Text())
	r.Words = parseCount(stats.Find("dd.words").Text())
	r.Kudos = parseCount(stats.Find("dd.kudos").Text())
	r.Hits = parseCount(stats.Find("dd.hits").Text())
	return r
}

// parseResultTotal reads "1,234 Found" headings.
func parseResultTotal(heading string) int {
	fields := strings.Fields(strings.TrimSpace(heading))
	if len(fields) == 0 {
		return 0
	}
	return parseCount(fields[0])
}
