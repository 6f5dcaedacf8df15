// Package archive talks to the Archive of Our Own over HTTP: fetching and
// scraping works, chapters, users and search results, downloading exported
// files, and extracting per-work skins. All parsing degrades gracefully -
// scraped markup is untrusted and the archive changes without notice.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// DefaultBaseURL is the production archive endpoint.
const DefaultBaseURL = "https://archiveofourown.org"

// ErrNotFound is returned when the archive reports a missing resource.
var ErrNotFound = errors.New("resource not found")

// ErrRateLimited is returned when retries were exhausted against 429 responses.
var ErrRateLimited = errors.New("rate limited by the archive")

// Options configure a Client.
type Options struct {
	BaseURL     string        // empty means DefaultBaseURL
	UserAgent   string        // polite clients identify themselves
	Retries     int           // attempts beyond the first on 429/5xx
	MinInterval time.Duration // politeness delay between requests
	Cache       *Cache        // optional page cache, may be nil
}

// Client wraps an HTTP client with the request discipline the archive
// expects: a stable User-Agent, a cookie jar for sessions, bounded retries
// honoring Retry-After, and an optional minimum request interval.
type Client struct {
	hc   *http.Client
	base *url.URL
	ua   string

	retries     int
	minInterval time.Duration
	cache       *Cache

	mu       sync.Mutex
	lastDone time.Time

	log *zap.Logger
}

// NewClient creates an archive client. A nil logger is allowed.
func NewClient(opts Options, log *zap.Logger) (*Client, error) {
	if log == nil {
		log = zap.NewNop()
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create cookie jar: %w", err)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = "ao3-client (+https://github.com/ao3/ao3)"
	}

	return &Client{
		hc: &http.Client{
			Jar:     jar,
			Timeout: 2 * time.Minute,
		},
		base:        base,
		ua:          ua,
		retries:     opts.Retries,
		minInterval: opts.MinInterval,
		cache:       opts.Cache,
		log:         log.Named("archive"),
	}, nil
}

// Resolve turns a path or relative reference into an absolute archive URL.
func (c *Client) Resolve(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return c.base.ResolveReference(u).String()
}

// FetchText retrieves a page body as decoded text together with the HTTP
// status code. Responses are decoded to UTF-8 based on their declared
// charset. Cached bodies are served without touching the network.
func (c *Client) FetchText(ctx context.Context, ref string) (string, int, error) {
	target := c.Resolve(ref)

	if c.cache != nil {
		if body, status, ok := c.cache.Get(ctx, target); ok {
			c.log.Debug("Cache hit", zap.String("url", target))
			return body, status, nil
		}
	}

	body, status, err := c.fetch(ctx, target)
	if err != nil {
		return "", status, err
	}

	if c.cache != nil && status == http.StatusOK {
		c.cache.Put(ctx, target, body, status)
	}
	return body, status, nil
}

// fetch performs the request with politeness pacing and bounded retries.
func (c *Client) fetch(ctx context.Context, target string) (string, int, error) {
	var lastStatus int
	for attempt := 0; ; attempt++ {
		if err := c.pace(ctx); err != nil {
			return "", 0, err
		}

		body, status, retryAfter, err := c.doRequest(ctx, target)
		lastStatus = status
		if err == nil && !retryableStatus(status) {
			if status == http.StatusNotFound {
				return "", status, fmt.Errorf("%s: %w", target, ErrNotFound)
			}
			return body, status, nil
		}

		if attempt >= c.retries {
			break
		}

		delay := retryAfter
		if delay <= 0 {
			delay = time.Duration(attempt+1) * 5 * time.Second
		}
		c.log.Debug("Retrying request",
			zap.String("url", target),
			zap.Int("status", status),
			zap.Duration("delay", delay),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return "", lastStatus, ctx.Err()
		case <-time.After(delay):
		}
	}

	if lastStatus == http.StatusTooManyRequests {
		return "", lastStatus, fmt.Errorf("%s: %w", target, ErrRateLimited)
	}
	return "", lastStatus, fmt.Errorf("unable to fetch %s: status %d", target, lastStatus)
}

func (c *Client) doRequest(ctx context.Context, target string) (body string, status int, retryAfter time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", 0, 0, err
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", 0, 0, err
	}
	defer resp.Body.Close()

	retryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))

	if retryableStatus(resp.StatusCode) {
		// drain so the connection can be reused
		io.Copy(io.Discard, resp.Body) //nolint:errcheck
		return "", resp.StatusCode, retryAfter, nil
	}

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", resp.StatusCode, retryAfter, fmt.Errorf("unable to decode response: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", resp.StatusCode, retryAfter, err
	}
	return string(data), resp.StatusCode, retryAfter, nil
}

// fetchBytes retrieves a binary resource (downloads) without charset decoding.
func (c *Client) fetchBytes(ctx context.Context, ref string) ([]byte, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Resolve(ref), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.ua)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", ref, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unable to fetch %s: status %d", ref, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// pace enforces the configured minimum interval between requests.
func (c *Client) pace(ctx context.Context) error {
	if c.minInterval <= 0 {
		return nil
	}
	c.mu.Lock()
	wait := c.minInterval - time.Since(c.lastDone)
	c.lastDone = time.Now().Add(wait)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// document fetches a page and parses it for scraping.
func (c *Client) document(ctx context.Context, ref string) (*goquery.Document, error) {
	body, _, err := c.FetchText(ctx, ref)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", ref, err)
	}
	return doc, nil
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// parseRetryAfter understands both delay-seconds and HTTP-date forms.
func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil {
		return time.Until(t)
	}
	return 0
}
