package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"tradecapacity/internal/application/viewstate"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const (
	controllerContextKey contextKey = "controller"
	tokenContextKey      contextKey = "session_token"
)

// SessionTTL is how long an idle signed-in browser session is kept.
const SessionTTL = 24 * time.Hour

// AnonymousSessionTTL is how long an idle session that never signed in is kept.
const AnonymousSessionTTL = 30 * time.Minute

// ErrUnknownSession is returned when rotating a token the registry does not hold.
var ErrUnknownSession = errors.New("unknown session token")

// SecureCookies marks the session cookie Secure. Set in production.
var SecureCookies bool

type entry struct {
	controller *viewstate.Controller
	lastSeen   time.Time
}

// SessionRegistry maps session cookie tokens to their state controllers.
// Entries expire after SessionTTL without a request.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	factory  func() *viewstate.Controller
	ttl      time.Duration
	anonTTL  time.Duration
	now      func() time.Time
}

// NewSessionRegistry creates an empty registry.
// PRE: factory returns a fresh controller on every call
func NewSessionRegistry(factory func() *viewstate.Controller) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*entry),
		factory:  factory,
		ttl:      SessionTTL,
		anonTTL:  AnonymousSessionTTL,
		now:      time.Now,
	}
}

// expired reports whether e has idled past the TTL of its sign-in state.
// Caller holds sr.mu.
func (sr *SessionRegistry) expired(e *entry, now time.Time) bool {
	ttl := sr.anonTTL
	if e.controller.Session().Authenticated {
		ttl = sr.ttl
	}
	return now.Sub(e.lastSeen) > ttl
}

// Create starts a new browser session and returns its token.
// POST: the controller is in its initial state
func (sr *SessionRegistry) Create() (string, *viewstate.Controller, error) {
	token, err := generateToken()
	if err != nil {
		return "", nil, err
	}
	c := sr.factory()
	sr.mu.Lock()
	defer sr.mu.Unlock()
	sr.sessions[token] = &entry{controller: c, lastSeen: sr.now()}
	return token, c, nil
}

// Get retrieves the controller of a token and refreshes its expiry.
// PRE: token is non-empty
// POST: Returns the controller if known and not expired
func (sr *SessionRegistry) Get(token string) (*viewstate.Controller, bool) {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	e, ok := sr.sessions[token]
	if !ok {
		return nil, false
	}
	now := sr.now()
	if sr.expired(e, now) {
		delete(sr.sessions, token)
		e.controller.Close()
		return nil, false
	}
	e.lastSeen = now
	return e.controller, true
}

// Rotate moves the controller of old to a freshly generated token.
// PRE: old is a live token
// POST: old no longer resolves; the returned token maps to the same controller
func (sr *SessionRegistry) Rotate(old string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	sr.mu.Lock()
	defer sr.mu.Unlock()
	e, ok := sr.sessions[old]
	if !ok {
		return "", ErrUnknownSession
	}
	delete(sr.sessions, old)
	e.lastSeen = sr.now()
	sr.sessions[token] = e
	return token, nil
}

// Delete drops a session and stops its timers.
func (sr *SessionRegistry) Delete(token string) {
	sr.mu.Lock()
	e, ok := sr.sessions[token]
	delete(sr.sessions, token)
	sr.mu.Unlock()
	if ok {
		e.controller.Close()
	}
}

// Sweep removes expired sessions and returns how many were removed.
func (sr *SessionRegistry) Sweep() int {
	sr.mu.Lock()
	var expired []*viewstate.Controller
	now := sr.now()
	for token, e := range sr.sessions {
		if sr.expired(e, now) {
			delete(sr.sessions, token)
			expired = append(expired, e.controller)
		}
	}
	sr.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (sr *SessionRegistry) Len() int {
	sr.mu.Lock()
	defer sr.mu.Unlock()
	return len(sr.sessions)
}

// Close stops every controller and empties the registry.
func (sr *SessionRegistry) Close() {
	sr.mu.Lock()
	all := sr.sessions
	sr.sessions = make(map[string]*entry)
	sr.mu.Unlock()
	for _, e := range all {
		e.controller.Close()
	}
}

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "tcm_session"

// Session returns middleware that attaches the browser session's controller to the context.
// A request without a live session gets a fresh one and a new cookie.
// Paths starting with one of the exempt prefixes pass through without a session.
func Session(sessions *SessionRegistry, exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range exempt {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
				if c, ok := sessions.Get(cookie.Value); ok {
					next.ServeHTTP(w, r.WithContext(contextWithSession(r.Context(), cookie.Value, c)))
					return
				}
			}

			token, c, err := sessions.Create()
			if err != nil {
				http.Error(w, "Session error", http.StatusInternalServerError)
				return
			}
			SetSessionCookie(w, token)
			next.ServeHTTP(w, r.WithContext(contextWithSession(r.Context(), token, c)))
		})
	}
}

// ControllerFromContext extracts the session controller from the request context.
func ControllerFromContext(ctx context.Context) (*viewstate.Controller, bool) {
	c, ok := ctx.Value(controllerContextKey).(*viewstate.Controller)
	return c, ok
}

// ContextWithController returns a context carrying c.
func ContextWithController(ctx context.Context, c *viewstate.Controller) context.Context {
	return context.WithValue(ctx, controllerContextKey, c)
}

// TokenFromContext returns the session token the request was served under.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok
}

func contextWithSession(ctx context.Context, token string, c *viewstate.Controller) context.Context {
	return ContextWithController(context.WithValue(ctx, tokenContextKey, token), c)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
