package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrAuthFailed is returned when the archive rejects the credentials.
var ErrAuthFailed = errors.New("authentication failed")

// Authenticate logs into the archive so restricted works become readable.
// The session lives in the client's cookie jar for subsequent requests.
func (c *Client) Authenticate(ctx context.Context, user, password string) error {
	token, err := c.fetchAuthToken(ctx)
	if err != nil {
		return fmt.Errorf("unable to obtain login form: %w", err)
	}

	form := url.Values{}
	form.Set("authenticity_token", token)
	form.Set("user[login]", user)
	form.Set("user[password]", password)
	form.Set("user[remember_me]", "1")
	form.Set("commit", "Log In")

	if err := c.pace(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.Resolve("/users/login"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.ua)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// a successful login redirects to the user dashboard; staying on the
	// login page with a flash error means rejection
	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	page := string(body)
	if strings.Contains(page, "The password or user name you entered doesn't match our records") ||
		strings.Contains(resp.Request.URL.Path, "/users/login") {
		return fmt.Errorf("user %s: %w", user, ErrAuthFailed)
	}

	c.log.Info("Authenticated", zap.String("user", user))
	return nil
}

// fetchAuthToken scrapes the CSRF token off the login form. The token is
// tied to the session cookie, a cached page would replay a dead one, so the
// form is always fetched fresh.
func (c *Client) fetchAuthToken(ctx context.Context) (string, error) {
	body, _, err := c.fetch(ctx, c.Resolve("/users/login"))
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("unable to parse login page: %w", err)
	}
	token, ok := doc.Find(`input[name="authenticity_token"]`).First().Attr("value")
	if !ok || token == "" {
		return "", errors.New("no authenticity token on login page")
	}
	return token, nil
}
