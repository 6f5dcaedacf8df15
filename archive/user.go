package archive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"ao3/document"
)

// User is a scraped user profile.
type User struct {
	Name   string
	Pseuds []string
	Joined time.Time
	Bio    []document.Node

	Works     int
	Series    int
	Bookmarks int
}

// FetchUser retrieves a user's profile page.
func (c *Client) FetchUser(ctx context.Context, name string) (*User, error) {
	doc, err := c.document(ctx, "/users/"+strings.TrimSpace(name)+"/profile")
	if err != nil {
		return nil, err
	}

	u := &User{Name: strings.TrimSpace(doc.Find("div.user.home h2.heading").First().Text())}
	if u.Name == "" {
		return nil, fmt.Errorf("user %s: profile page not recognized", name)
	}

	doc.Find("dl.meta dd.pseuds a").Each(func(_ int, a *goquery.Selection) {
		if p := strings.TrimSpace(a.Text()); p != "" {
			u.Pseuds = append(u.Pseuds, p)
		}
	})

	// the meta list pairs dt labels with dd values
	doc.Find("dl.meta dt").Each(func(_ int, dt *goquery.Selection) {
		value := strings.TrimSpace(dt.Next().Text())
		switch strings.TrimSuffix(strings.TrimSpace(dt.Text()), ":") {
		case "I joined on":
			u.Joined = parseArchiveDate(value)
		}
	})

	u.Bio = parseBlurb(doc.Find("div.bio blockquote.userstuff").First())

	doc.Find("#dashboard a").Each(func(_ int, a *goquery.Selection) {
		label := strings.TrimSpace(a.Text())
		switch {
		case strings.HasPrefix(label, "Works"):
			u.Works = countInParens(label)
		case strings.HasPrefix(label, "Series"):
			u.Series = countInParens(label)
		case strings.HasPrefix(label, "Bookmarks"):
			u.Bookmarks = countInParens(label)
		}
	})
	return u, nil
}

// countInParens reads dashboard labels like "Works (42)".
func countInParens(label string) int {
	open := strings.IndexByte(label, '(')
	close := strings.IndexByte(label, ')')
	if open < 0 || close <= open {
		return 0
	}
	return parseCount(label[open+1 : close])
}
