package archive

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"ao3/common"
	"ao3/css"
	"ao3/document"
	"ao3/skin"
)

// Pseud is an author credit: the pseud shown on the work and the account
// that owns it. For most authors the two are the same.
type Pseud struct {
	Name string
	User string
}

func (p Pseud) String() string {
	if p.User == "" || p.User == p.Name {
		return p.Name
	}
	return p.Name + " (" + p.User + ")"
}

// SeriesRef points at a series the work belongs to.
type SeriesRef struct {
	ID    int64
	Name  string
	Part  int
}

// Stats are the counters shown on a work page. ChaptersTotal is nil for
// works with an unknown final chapter count ("12/?").
type Stats struct {
	Words         int
	Chapters      int
	ChaptersTotal *int
	Comments      int
	Kudos         int
	Bookmarks     int
	Hits          int
}

// Work is a fully scraped archive work: its tag metadata, per-work skin,
// and one parsed document tree per chapter.
type Work struct {
	ID      int64
	Title   string
	Authors []Pseud

	Rating     common.Rating
	Warnings   []common.Warning
	Categories []common.Category

	Fandoms       []string
	Relationships []string
	Characters    []string
	Tags          []string
	Series        []SeriesRef

	Language  language.Tag
	Published time.Time
	Updated   time.Time
	Complete  bool
	Stats     Stats

	Summary []document.Node
	Skin    skin.WorkSkin

	Chapters []Chapter
}

// FetchWork retrieves a work with all chapters and parses it. Adult works
// are requested with the consent interstitial pre-accepted.
func (c *Client) FetchWork(ctx context.Context, id int64) (*Work, error) {
	ref := fmt.Sprintf("/works/%d?view_adult=true&view_full_work=true", id)
	doc, err := c.document(ctx, ref)
	if err != nil {
		return nil, err
	}

	w := &Work{ID: id}
	c.parseMeta(w, doc)
	w.Skin = scrapeWorkSkin(doc, c.log)
	w.Summary = parseBlurb(doc.Find("div.summary.module blockquote.userstuff").First())
	w.Chapters = parseChapters(doc)

	if w.Title == "" {
		return nil, fmt.Errorf("work %d: no title found, page layout not recognized", id)
	}
	c.log.Info("Fetched work",
		zap.Int64("id", id),
		zap.String("title", w.Title),
		zap.Int("chapters", len(w.Chapters)))
	return w, nil
}

func (c *Client) parseMeta(w *Work, doc *goquery.Document) {
	w.Title = strings.TrimSpace(doc.Find("h2.title.heading").First().Text())

	doc.Find("h3.byline a[rel=author]").Each(func(_ int, a *goquery.Selection) {
		w.Authors = append(w.Authors, pseudFromLink(a))
	})

	meta := doc.Find("dl.work.meta.group").First()

	w.Rating = ratingFromLabel(firstTag(meta, "dd.rating.tags"))
	for _, label := range allTags(meta, "dd.warning.tags") {
		if warn, ok := warningFromLabel(label); ok {
			w.Warnings = append(w.Warnings, warn)
		}
	}
	for _, label := range allTags(meta, "dd.category.tags") {
		if cat, ok := categoryFromLabel(label); ok {
			w.Categories = append(w.Categories, cat)
		}
	}

	w.Fandoms = allTags(meta, "dd.fandom.tags")
	w.Relationships = allTags(meta, "dd.relationship.tags")
	w.Characters = allTags(meta, "dd.character.tags")
	w.Tags = allTags(meta, "dd.freeform.tags")

	if lang := strings.TrimSpace(meta.Find("dd.language").First().Text()); lang != "" {
		w.Language = languageFromName(lang)
	}

	meta.Find("dd.series span.series span.position a").Each(func(_ int, a *goquery.Selection) {
		w.Series = append(w.Series, seriesFromLink(a))
	})

	stats := meta.Find("dl.stats").First()
	w.Published = parseArchiveDate(stats.Find("dd.published").Text())
	if upd := parseArchiveDate(stats.Find("dd.status").Text()); !upd.IsZero() {
		w.Updated = upd
	} else {
		w.Updated = w.Published
	}
	w.Stats.Words = parseCount(stats.Find("dd.words").Text())
	w.Stats.Comments = parseCount(stats.Find("dd.comments").Text())
	w.Stats.Kudos = parseCount(stats.Find("dd.kudos").Text())
	w.Stats.Bookmarks = parseCount(stats.Find("dd.bookmarks").Text())
	w.Stats.Hits = parseCount(stats.Find("dd.hits").Text())
	w.Stats.Chapters, w.Stats.ChaptersTotal = parseChapterCount(stats.Find("dd.chapters").Text())
	w.Complete = w.Stats.ChaptersTotal != nil && *w.Stats.ChaptersTotal == w.Stats.Chapters
}

// parseChapters extracts chapter bodies from a full-work page. Multichapter
// works carry one div#chapter-N per chapter; single-chapter works put the
// body straight under #chapters.
func parseChapters(doc *goquery.Document) []Chapter {
	var chapters []Chapter

	doc.Find("#chapters div.chapter").Each(func(i int, sel *goquery.Selection) {
		ch := Chapter{Number: i + 1}
		if id, ok := sel.Attr("id"); ok {
			ch.ID = chapterIDFromAnchor(id)
		}
		ch.Title = chapterTitle(sel.Find("h3.title").First())
		ch.Summary = parseBlurb(sel.Find("div.summary.module blockquote.userstuff").First())
		ch.Notes = parseBlurb(sel.Find("div.notes.module blockquote.userstuff").First())
		ch.EndNotes = parseBlurb(sel.Find("div.end.notes.module blockquote.userstuff").First())
		ch.Body = parseUserstuff(sel.Find("div.userstuff.module").First())
		chapters = append(chapters, ch)
	})

	if len(chapters) == 0 {
		body := parseUserstuff(doc.Find("#chapters div.userstuff").First())
		if len(body) > 0 {
			chapters = append(chapters, Chapter{Number: 1, Body: body})
		}
	}
	return chapters
}

// parseUserstuff converts a chapter body into the document model, dropping
// the hidden landmark heading the archive injects for screen readers.
func parseUserstuff(sel *goquery.Selection) []document.Node {
	if sel.Length() == 0 {
		return nil
	}
	content := sel.Clone()
	content.Find("h3#work.landmark.heading, .landmark").Remove()
	return document.FromHTMLNodes(content.Children().Nodes)
}

// parseBlurb converts summary/notes markup into the document model.
func parseBlurb(sel *goquery.Selection) []document.Node {
	if sel.Length() == 0 {
		return nil
	}
	return document.FromHTMLNodes(sel.Children().Nodes)
}

// scrapeWorkSkin collects the author's work skin from embedded style
// blocks. Only rules scoped under #workskin apply to reader-visible text;
// everything else on the page is site chrome.
func scrapeWorkSkin(doc *goquery.Document, log *zap.Logger) skin.WorkSkin {
	var sheets []string
	doc.Find("style").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if strings.Contains(text, "#workskin") {
			sheets = append(sheets, text)
		}
	})
	if len(sheets) == 0 {
		return skin.New(nil)
	}

	colors := make(map[string]string)
	for _, sheet := range sheets {
		parsed := css.NewParser(log).Parse([]byte(sheet))
		for class, value := range parsed.ClassColors("workskin") {
			colors[class] = value
		}
	}
	return skin.New(colors)
}

func pseudFromLink(a *goquery.Selection) Pseud {
	p := Pseud{Name: strings.TrimSpace(a.Text())}
	if href, ok := a.Attr("href"); ok {
		// /users/<user>/pseuds/<pseud>
		parts := strings.Split(strings.Trim(href, "/"), "/")
		if len(parts) >= 2 && parts[0] == "users" {
			p.User = parts[1]
		}
	}
	if p.User == "" {
		p.User = p.Name
	}
	return p
}

func seriesFromLink(a *goquery.Selection) SeriesRef {
	ref := SeriesRef{Name: strings.TrimSpace(a.Text())}
	if href, ok := a.Attr("href"); ok {
		if i := strings.LastIndexByte(href, '/'); i >= 0 {
			ref.ID, _ = strconv.ParseInt(href[i+1:], 10, 64)
		}
	}
	// "Part 3 of ..." lives in the surrounding span text
	if parent := a.Parent(); parent.Length() > 0 {
		text := parent.Text()
		if _, err := fmt.Sscanf(text, "Part %d", &ref.Part); err != nil {
			ref.Part = 0
		}
	}
	return ref
}

func chapterIDFromAnchor(anchor string) int64 {
	// full-work pages label chapters "chapter-N" with the ordinal, while
	// single-chapter views use the real chapter id; keep whatever numeric
	// suffix is present
	if i := strings.LastIndexByte(anchor, '-'); i >= 0 {
		id, _ := strconv.ParseInt(anchor[i+1:], 10, 64)
		return id
	}
	return 0
}

func chapterTitle(h *goquery.Selection) string {
	if h.Length() == 0 {
		return ""
	}
	// "Chapter 3: The Title" - strip the leading ordinal link text
	full := strings.TrimSpace(h.Text())
	link := strings.TrimSpace(h.Find("a").First().Text())
	title := strings.TrimPrefix(full, link)
	return strings.TrimSpace(strings.TrimPrefix(title, ":"))
}

func firstTag(meta *goquery.Selection, selector string) string {
	return strings.TrimSpace(meta.Find(selector + " a.tag").First().Text())
}

func allTags(meta *goquery.Selection, selector string) []string {
	var tags []string
	meta.Find(selector + " a.tag").Each(func(_ int, a *goquery.Selection) {
		if t := strings.TrimSpace(a.Text()); t != "" {
			tags = append(tags, t)
		}
	})
	return tags
}

func ratingFromLabel(label string) common.Rating {
	switch label {
	case "General Audiences":
		return common.RatingGeneral
	case "Teen And Up Audiences":
		return common.RatingTeen
	case "Mature":
		return common.RatingMature
	case "Explicit":
		return common.RatingExplicit
	default:
		return common.RatingNotRated
	}
}

func warningFromLabel(label string) (common.Warning, bool) {
	switch label {
	case "Creator Chose Not To Use Archive Warnings":
		return common.WarningChoseNotToUse, true
	case "No Archive Warnings Apply":
		return common.WarningNone, true
	case "Graphic Depictions Of Violence":
		return common.WarningViolence, true
	case "Major Character Death":
		return common.WarningMajorCharacterDeath, true
	case "Rape/Non-Con":
		return common.WarningRape, true
	case "Underage", "Underage Sex":
		return common.WarningUnderage, true
	}
	return 0, false
}

func categoryFromLabel(label string) (common.Category, bool) {
	switch label {
	case "Gen":
		return common.CategoryGen, true
	case "F/M":
		return common.CategoryFm, true
	case "M/M":
		return common.CategoryMm, true
	case "F/F":
		return common.CategoryFf, true
	case "Multi":
		return common.CategoryMulti, true
	case "Other":
		return common.CategoryOther, true
	}
	return 0, false
}

// languageFromName maps the archive's displayed language names onto BCP 47
// tags. Unrecognized names fall back to parsing the name itself, then to
// und (undetermined).
func languageFromName(name string) language.Tag {
	switch name {
	case "English":
		return language.English
	case "Русский":
		return language.Russian
	case "中文-普通话 國語", "中文":
		return language.Chinese
	case "Español", "Español (Castellano)":
		return language.Spanish
	case "Français":
		return language.French
	case "Deutsch":
		return language.German
	case "Italiano":
		return language.Italian
	case "日本語":
		return language.Japanese
	case "한국어":
		return language.Korean
	case "Português brasileiro", "Português europeu":
		return language.Portuguese
	case "Polski":
		return language.Polish
	}
	if tag, err := language.Parse(name); err == nil {
		return tag
	}
	return language.Und
}

// parseCount reads the archive's comma-grouped counters ("1,234").
func parseCount(s string) int {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// parseChapterCount reads "12/20" or "12/?" chapter counters.
func parseChapterCount(s string) (current int, total *int) {
	s = strings.TrimSpace(s)
	cur, rest, ok := strings.Cut(s, "/")
	if !ok {
		return parseCount(s), nil
	}
	current = parseCount(cur)
	if rest == "?" || rest == "" {
		return current, nil
	}
	t := parseCount(rest)
	return current, &t
}

// parseArchiveDate reads the archive's ISO date stamps (2023-07-15).
func parseArchiveDate(s string) time.Time {
	s = strings.TrimSpace(s)
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
