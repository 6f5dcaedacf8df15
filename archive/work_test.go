package archive

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"ao3/common"
	"ao3/skin"
)

func fixtureDoc(t *testing.T, src string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unable to parse fixture: %v", err)
	}
	return doc
}

const workPageHTML = `
<html><head>
<style>
#workskin .pink { color: #fc4e47; }
#workskin .quiet { color: #888888; }
</style>
</head><body>
<h2 class="title heading">A Study In Procrastination</h2>
<h3 class="byline heading">
  <a rel="author" href="/users/writer/pseuds/writer">writer</a>,
  <a rel="author" href="/users/other/pseuds/guest">guest</a>
</h3>
<dl class="work meta group">
  <dd class="rating tags"><ul><li><a class="tag">Teen And Up Audiences</a></li></ul></dd>
  <dd class="warning tags"><ul>
    <li><a class="tag">No Archive Warnings Apply</a></li>
    <li><a class="tag">Major Character Death</a></li>
  </ul></dd>
  <dd class="category tags"><ul><li><a class="tag">F/F</a></li><li><a class="tag">Gen</a></li></ul></dd>
  <dd class="fandom tags"><ul><li><a class="tag">Some Fandom</a></li></ul></dd>
  <dd class="relationship tags"><ul><li><a class="tag">A/B</a></li></ul></dd>
  <dd class="character tags"><ul><li><a class="tag">Alice</a></li><li><a class="tag">Bob</a></li></ul></dd>
  <dd class="freeform tags"><ul><li><a class="tag">Fluff</a></li></ul></dd>
  <dd class="language">English</dd>
  <dd class="series">
    <span class="series"><span class="position">Part 2 of <a href="/series/777">Long Haul</a></span></span>
  </dd>
  <dl class="stats">
    <dd class="published">2023-07-15</dd>
    <dd class="status">2024-01-02</dd>
    <dd class="words">12,500</dd>
    <dd class="chapters">3/3</dd>
    <dd class="comments">45</dd>
    <dd class="kudos">1,002</dd>
    <dd class="bookmarks">88</dd>
    <dd class="hits">9,876</dd>
  </dl>
</dl>
<div class="summary module"><blockquote class="userstuff"><p>Nobody does the dishes.</p></blockquote></div>
<div id="chapters">
  <div class="chapter" id="chapter-1">
    <h3 class="title"><a href="/works/1/chapters/100">Chapter 1</a>: The Sink</h3>
    <div class="userstuff module">
      <h3 id="work" class="landmark heading">Chapter Text</h3>
      <p>It began with a <em>single</em> plate.</p>
    </div>
  </div>
  <div class="chapter" id="chapter-2">
    <h3 class="title"><a href="/works/1/chapters/101">Chapter 2</a></h3>
    <div class="userstuff module"><p>Then a second one.</p></div>
  </div>
</div>
</body></html>`

func TestParseMeta(t *testing.T) {
	doc := fixtureDoc(t, workPageHTML)
	c := &Client{log: zap.NewNop()}

	w := &Work{ID: 1}
	c.parseMeta(w, doc)

	if w.Title != "A Study In Procrastination" {
		t.Errorf("Title = %q", w.Title)
	}
	if len(w.Authors) != 2 || w.Authors[0].Name != "writer" || w.Authors[1].User != "other" {
		t.Errorf("Authors = %+v", w.Authors)
	}
	if w.Rating != common.RatingTeen {
		t.Errorf("Rating = %v, want teen", w.Rating)
	}
	if len(w.Warnings) != 2 || w.Warnings[0] != common.WarningNone || w.Warnings[1] != common.WarningMajorCharacterDeath {
		t.Errorf("Warnings = %v", w.Warnings)
	}
	if len(w.Categories) != 2 || w.Categories[0] != common.CategoryFf || w.Categories[1] != common.CategoryGen {
		t.Errorf("Categories = %v", w.Categories)
	}
	if len(w.Fandoms) != 1 || w.Fandoms[0] != "Some Fandom" {
		t.Errorf("Fandoms = %v", w.Fandoms)
	}
	if len(w.Characters) != 2 || w.Characters[1] != "Bob" {
		t.Errorf("Characters = %v", w.Characters)
	}
	if w.Language != language.English {
		t.Errorf("Language = %v, want en", w.Language)
	}
	if len(w.Series) != 1 || w.Series[0].ID != 777 || w.Series[0].Name != "Long Haul" || w.Series[0].Part != 2 {
		t.Errorf("Series = %+v", w.Series)
	}

	if w.Published != time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Published = %v", w.Published)
	}
	if w.Updated != time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC) {
		t.Errorf("Updated = %v", w.Updated)
	}
	if w.Stats.Words != 12500 || w.Stats.Kudos != 1002 || w.Stats.Hits != 9876 {
		t.Errorf("Stats = %+v", w.Stats)
	}
	if w.Stats.Chapters != 3 || w.Stats.ChaptersTotal == nil || *w.Stats.ChaptersTotal != 3 {
		t.Errorf("chapter counts = %d/%v", w.Stats.Chapters, w.Stats.ChaptersTotal)
	}
	if !w.Complete {
		t.Error("3/3 work should be complete")
	}
}

func TestParseChapters(t *testing.T) {
	doc := fixtureDoc(t, workPageHTML)

	chapters := parseChapters(doc)
	if len(chapters) != 2 {
		t.Fatalf("got %d chapters, want 2", len(chapters))
	}

	ch := chapters[0]
	if ch.Number != 1 || ch.Title != "The Sink" {
		t.Errorf("first chapter = number %d title %q", ch.Number, ch.Title)
	}
	if len(ch.Body) != 1 {
		t.Fatalf("first chapter body = %+v, landmark heading must be dropped", ch.Body)
	}
	if got := ch.Body[0].AsPlainText(); got != "It began with a single plate." {
		t.Errorf("body text = %q", got)
	}

	if chapters[1].Number != 2 || chapters[1].Title != "" {
		t.Errorf("second chapter = %+v", chapters[1])
	}
}

func TestParseChapters_SingleChapterLayout(t *testing.T) {
	doc := fixtureDoc(t, `
<div id="chapters">
  <div class="userstuff"><p>The whole story.</p></div>
</div>`)

	chapters := parseChapters(doc)
	if len(chapters) != 1 || chapters[0].Number != 1 {
		t.Fatalf("chapters = %+v, want one", chapters)
	}
	if got := chapters[0].Body[0].AsPlainText(); got != "The whole story." {
		t.Errorf("body = %q", got)
	}
}

func TestScrapeWorkSkin(t *testing.T) {
	doc := fixtureDoc(t, workPageHTML)

	ws := scrapeWorkSkin(doc, nil)
	if ws.Len() != 2 {
		t.Fatalf("skin has %d classes, want 2", ws.Len())
	}
	want := skin.ParseHex("#fc4e47")
	if got := ws.Resolve("pink"); got != want {
		t.Errorf("Resolve(pink) = %+v, want %+v", got, want)
	}
}

func TestScrapeWorkSkin_NoSkin(t *testing.T) {
	doc := fixtureDoc(t, `<style>body { margin: 0; }</style><p>x</p>`)

	ws := scrapeWorkSkin(doc, nil)
	if ws.Len() != 0 {
		t.Errorf("site chrome styles leaked into the skin: %v", ws.Classes())
	}
}

func TestRatingFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  common.Rating
	}{
		{"General Audiences", common.RatingGeneral},
		{"Teen And Up Audiences", common.RatingTeen},
		{"Mature", common.RatingMature},
		{"Explicit", common.RatingExplicit},
		{"Not Rated", common.RatingNotRated},
		{"", common.RatingNotRated},
	}
	for _, tt := range tests {
		if got := ratingFromLabel(tt.label); got != tt.want {
			t.Errorf("ratingFromLabel(%q) = %v, want %v", tt.label, got, tt.want)
		}
	}
}

func TestWarningFromLabel(t *testing.T) {
	if w, ok := warningFromLabel("Underage Sex"); !ok || w != common.WarningUnderage {
		t.Errorf("Underage Sex = %v, %v", w, ok)
	}
	if w, ok := warningFromLabel("Underage"); !ok || w != common.WarningUnderage {
		t.Errorf("Underage = %v, %v", w, ok)
	}
	if _, ok := warningFromLabel("Something Else"); ok {
		t.Error("unknown label should not map")
	}
}

func TestCategoryFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  common.Category
	}{
		{"Gen", common.CategoryGen},
		{"F/M", common.CategoryFm},
		{"M/M", common.CategoryMm},
		{"F/F", common.CategoryFf},
		{"Multi", common.CategoryMulti},
		{"Other", common.CategoryOther},
	}
	for _, tt := range tests {
		got, ok := categoryFromLabel(tt.label)
		if !ok || got != tt.want {
			t.Errorf("categoryFromLabel(%q) = %v, %v", tt.label, got, ok)
		}
	}
	if _, ok := categoryFromLabel("Friendship"); ok {
		t.Error("unknown category should not map")
	}
}

func TestLanguageFromName(t *testing.T) {
	tests := []struct {
		name string
		want language.Tag
	}{
		{"English", language.English},
		{"Русский", language.Russian},
		{"日本語", language.Japanese},
		{"de", language.German},
		{"no such language", language.Und},
	}
	for _, tt := range tests {
		if got := languageFromName(tt.name); got != tt.want {
			t.Errorf("languageFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestParseCount(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"1,234", 1234},
		{"  42  ", 42},
		{"1,234,567", 1234567},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		if got := parseCount(tt.s); got != tt.want {
			t.Errorf("parseCount(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestParseChapterCount(t *testing.T) {
	tests := []struct {
		s       string
		current int
		total   int // -1 means nil
	}{
		{"12/20", 12, 20},
		{"12/?", 12, -1},
		{"1/1", 1, 1},
		{"5", 5, -1},
		{"", 0, -1},
	}
	for _, tt := range tests {
		current, total := parseChapterCount(tt.s)
		if current != tt.current {
			t.Errorf("parseChapterCount(%q) current = %d, want %d", tt.s, current, tt.current)
		}
		if tt.total == -1 {
			if total != nil {
				t.Errorf("parseChapterCount(%q) total = %d, want nil", tt.s, *total)
			}
		} else if total == nil || *total != tt.total {
			t.Errorf("parseChapterCount(%q) total = %v, want %d", tt.s, total, tt.total)
		}
	}
}

func TestParseArchiveDate(t *testing.T) {
	if got := parseArchiveDate(" 2023-07-15 "); got != time.Date(2023, 7, 15, 0, 0, 0, 0, time.UTC) {
		t.Errorf("parseArchiveDate = %v", got)
	}
	if got := parseArchiveDate("July 15, 2023"); !got.IsZero() {
		t.Errorf("unrecognized format should yield zero time, got %v", got)
	}
}

func TestChapterIDFromPath(t *testing.T) {
	tests := []struct {
		href string
		want int64
	}{
		{"/works/1/chapters/100", 100},
		{"/works/1/chapters/100?view_adult=true", 100},
		{"/works/1/chapters/100#workskin", 100},
		{"/works/1", 0},
	}
	for _, tt := range tests {
		if got := chapterIDFromPath(tt.href); got != tt.want {
			t.Errorf("chapterIDFromPath(%q) = %d, want %d", tt.href, got, tt.want)
		}
	}
}

func TestSplitChapterHeading(t *testing.T) {
	tests := []struct {
		s     string
		num   int
		title string
	}{
		{"3. The Title", 3, "The Title"},
		{"12. Dots. Everywhere.", 12, "Dots. Everywhere."},
		{"No Number Here", 0, "No Number Here"},
		{"", 0, ""},
	}
	for _, tt := range tests {
		num, title := splitChapterHeading(tt.s)
		if num != tt.num || title != tt.title {
			t.Errorf("splitChapterHeading(%q) = %d, %q, want %d, %q", tt.s, num, title, tt.num, tt.title)
		}
	}
}

func TestPseud_String(t *testing.T) {
	if got := (Pseud{Name: "x", User: "x"}).String(); got != "x" {
		t.Errorf("same pseud String() = %q", got)
	}
	if got := (Pseud{Name: "guest", User: "other"}).String(); got != "guest (other)" {
		t.Errorf("distinct pseud String() = %q", got)
	}
}
