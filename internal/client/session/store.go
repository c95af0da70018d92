// Package session holds the client-side session state: the display identity
// rendered by the UI. It is optimistically seeded from the readable cookies
// and authoritatively updated by login/logout calls. Nothing here is trusted
// for authorization; the server re-resolves identity on every request.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"github.com/YxshR/ecommerce-perfume-website-sub000/internal/identity"
	srvsession "github.com/YxshR/ecommerce-perfume-website-sub000/internal/session"
)

// Post-login landing areas.
const (
	AdminLanding   = "/admin"
	AccountLanding = "/account"
	Home           = "/"
)

var (
	// ErrNetwork wraps transport failures. Callers surface a retry prompt;
	// retries are manual.
	ErrNetwork = errors.New("network error, please try again")
	// ErrRejected wraps a server-side refusal (e.g. bad credentials).
	ErrRejected = errors.New("login rejected")
)

// Store is the reactive session store. One instance lives for the
// application lifetime; Subscribe is the cross-tab signal analogue.
//
// Concurrent Login/Logout calls are not serialized here: the last cookie
// write wins, and the UI disables duplicate submission.
type Store struct {
	base *url.URL
	http *http.Client

	mu           sync.Mutex
	current      *identity.DisplayIdentity
	pageRedirect string
	subs         []chan struct{}
}

// New builds a store talking to baseURL. A nil client gets a fresh
// cookie-jar client; passing one in lets several stores (or the list layer)
// share a jar the way browser tabs share cookies.
func New(baseURL string, client *http.Client) (*Store, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("session: bad base url: %w", err)
	}
	if client == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, err
		}
		client = &http.Client{Jar: jar}
	}
	return &Store{base: u, http: client}, nil
}

// Client exposes the HTTP client so list stores share the cookie jar and
// authenticated calls carry the credential cookie.
func (s *Store) Client() *http.Client { return s.http }

// Init seeds the display identity from the two readable cookies, with no
// network round trip. pageURL is the page being rendered; its redirect query
// parameter participates in post-login navigation. Any unreadable mirror
// resolves to logged out.
func (s *Store) Init(pageURL *url.URL) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if pageURL != nil {
		s.pageRedirect = pageURL.Query().Get("redirect")
	}
	if s.http.Jar == nil {
		s.current = nil
		return
	}
	s.current = displayFromCookies(s.http.Jar.Cookies(s.base))
}

func displayFromCookies(cookies []*http.Cookie) *identity.DisplayIdentity {
	var loggedIn bool
	var mirror string
	for _, ck := range cookies {
		switch ck.Name {
		case srvsession.LoginFlagCookie:
			loggedIn = ck.Value == "true"
		case srvsession.MirrorCookie:
			mirror = ck.Value
		}
	}
	if !loggedIn || mirror == "" {
		return nil
	}
	// The server cookie-escapes the JSON mirror.
	raw, err := url.QueryUnescape(mirror)
	if err != nil {
		return nil
	}
	var d identity.DisplayIdentity
	if err := json.Unmarshal([]byte(raw), &d); err != nil || d.ID == "" {
		return nil
	}
	return &d
}

// Current returns the display identity, nil when logged out. Rendering only.
func (s *Store) Current() *identity.DisplayIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	d := *s.current
	return &d
}

type authResponse struct {
	Success bool                      `json:"success"`
	Error   string                    `json:"error"`
	User    *identity.DisplayIdentity `json:"user"`
}

// Login calls the credential endpoint and, on success, updates the in-memory
// identity and returns where to navigate: an explicit redirect beats the
// page's redirect query value, which beats the role default.
func (s *Store) Login(ctx context.Context, email, password, explicitRedirect string) (string, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	resp, err := s.postJSON(ctx, "/api/auth/login", body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if !out.Success || out.User == nil {
		msg := out.Error
		if msg == "" {
			msg = "login failed"
		}
		return "", fmt.Errorf("%w: %s", ErrRejected, msg)
	}

	s.mu.Lock()
	s.current = out.User
	pageRedirect := s.pageRedirect
	s.mu.Unlock()
	s.notify()

	switch {
	case explicitRedirect != "":
		return explicitRedirect, nil
	case pageRedirect != "":
		return pageRedirect, nil
	case out.User.Role == identity.RoleAdmin:
		return AdminLanding, nil
	default:
		return AccountLanding, nil
	}
}

// Logout calls the credential-clearing endpoint, drops local state, signals
// subscribers and returns the home path. Idempotent.
func (s *Store) Logout(ctx context.Context) (string, error) {
	resp, err := s.postJSON(ctx, "/api/auth/logout", []byte("{}"))
	if err != nil {
		return "", err
	}
	resp.Body.Close()

	s.mu.Lock()
	s.current = nil
	s.pageRedirect = ""
	s.mu.Unlock()
	s.notify()

	return Home, nil
}

// Subscribe registers for identity-change notifications, the analogue of the
// storage event other tabs listen for. The channel has a buffer of one;
// coalesced signals are fine for re-rendering.
func (s *Store) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.subs = append(s.subs, ch)
	s.mu.Unlock()
	return ch
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := s.subs
	s.mu.Unlock()
	for _, ch := range subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (s *Store) postJSON(ctx context.Context, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base.JoinPath(path).String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return resp, nil
}
