// Shared enumerations used by both the archive access layer and the CLI.
// Kept in a separate package so that configuration does not have to import
// scraping code to name a rating or an output format.
package common

// Specification of requested output type for rendered chapters.
// ENUM(xhtml, text)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtXhtml:
		return ".xhtml"
	case OutputFmtText:
		return ".txt"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// Archive content rating.
// ENUM(notRated, general, teen, mature, explicit)
type Rating int

// TagID returns the fixed archive tag identifier used in search queries.
func (r Rating) TagID() int {
	switch r {
	case RatingNotRated:
		return 9
	case RatingGeneral:
		return 10
	case RatingTeen:
		return 11
	case RatingMature:
		return 12
	case RatingExplicit:
		return 13
	default:
		return 0
	}
}

// Archive content warning.
// ENUM(choseNotToUse, none, violence, majorCharacterDeath, rape, underage)
type Warning int

// TagID returns the fixed archive tag identifier used in search queries.
func (w Warning) TagID() int {
	switch w {
	case WarningChoseNotToUse:
		return 14
	case WarningNone:
		return 16
	case WarningViolence:
		return 17
	case WarningMajorCharacterDeath:
		return 18
	case WarningRape:
		return 19
	case WarningUnderage:
		return 20
	default:
		return 0
	}
}

// Relationship category of a work.
// ENUM(gen, fm, mm, ff, multi, other)
type Category int

// TagID returns the fixed archive tag identifier used in search queries.
func (c Category) TagID() int {
	switch c {
	case CategoryGen:
		return 21
	case CategoryFm:
		return 22
	case CategoryMm:
		return 23
	case CategoryOther:
		return 24
	case CategoryFf:
		return 116
	case CategoryMulti:
		return 2246
	default:
		return 0
	}
}

// Search result ordering column.
// ENUM(bestMatch, author, title, createdAt, revisedAt, wordCount, hits, kudos, comments, bookmarks)
type SortBy int

// QueryValue returns the column name the archive search form expects.
func (s SortBy) QueryValue() string {
	switch s {
	case SortByAuthor:
		return "authors_to_sort_on"
	case SortByTitle:
		return "title_to_sort_on"
	case SortByCreatedAt:
		return "created_at"
	case SortByRevisedAt:
		return "revised_at"
	case SortByWordCount:
		return "word_count"
	case SortByHits:
		return "hits"
	case SortByKudos:
		return "kudos_count"
	case SortByComments:
		return "comments_count"
	case SortByBookmarks:
		return "bookmarks_count"
	default:
		return "_score"
	}
}

// Work completion filter.
// ENUM(any, complete, inProgress)
type Completion int

// Crossover inclusion filter.
// ENUM(any, exclude, only)
type Crossover int
