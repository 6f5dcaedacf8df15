package archive

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

const loginFormHTML = `
<html><body>
<form action="/users/login" method="post">
  <input type="hidden" name="authenticity_token" value="csrf-token-123"/>
  <input name="user[login]"/>
  <input name="user[password]"/>
</form>
</body></html>`

func TestAuthenticate(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginFormHTML)) //nolint:errcheck
	})
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		if got := r.PostForm.Get("authenticity_token"); got != "csrf-token-123" {
			t.Errorf("authenticity_token = %q", got)
		}
		if got := r.PostForm.Get("user[login]"); got != "someone" {
			t.Errorf("user[login] = %q", got)
		}
		http.Redirect(w, r, "/users/someone", http.StatusFound)
	})
	mux.HandleFunc("GET /users/someone", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Hi, someone!</body></html>")) //nolint:errcheck
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	if err := c.Authenticate(context.Background(), "someone", "hunter2"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
}

func TestAuthenticate_SkipsPageCache(t *testing.T) {
	var serial atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/login", func(w http.ResponseWriter, r *http.Request) {
		form := fmt.Sprintf(`<html><body><form action="/users/login" method="post">
<input type="hidden" name="authenticity_token" value="token-%d"/>
</form></body></html>`, serial.Add(1))
		w.Write([]byte(form)) //nolint:errcheck
	})
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("bad form: %v", err)
		}
		// the cache holds token-1 by now, a fresh fetch must see token-2
		if got := r.PostForm.Get("authenticity_token"); got != "token-2" {
			t.Errorf("authenticity_token = %q, want token-2", got)
		}
		http.Redirect(w, r, "/users/someone", http.StatusFound)
	})
	mux.HandleFunc("GET /users/someone", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>Hi, someone!</body></html>")) //nolint:errcheck
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, Options{Cache: openTestCache(t, 0)})

	// prime the cache with the first rendition of the form
	if _, _, err := c.FetchText(context.Background(), "/users/login"); err != nil {
		t.Fatalf("FetchText: %v", err)
	}
	if err := c.Authenticate(context.Background(), "someone", "hunter2"); err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
}

func TestAuthenticate_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(loginFormHTML)) //nolint:errcheck
	})
	mux.HandleFunc("POST /users/login", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<div class="flash error">The password or user name you entered doesn't match our records.</div>
</body></html>`)) //nolint:errcheck
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	err := c.Authenticate(context.Background(), "someone", "wrong")
	if !errors.Is(err, ErrAuthFailed) {
		t.Errorf("err = %v, want ErrAuthFailed", err)
	}
}

func TestAuthenticate_NoToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>no form here</body></html>")) //nolint:errcheck
	}))
	defer srv.Close()

	c := newTestClient(t, srv, Options{})
	if err := c.Authenticate(context.Background(), "someone", "pw"); err == nil {
		t.Error("missing token should fail")
	}
}
