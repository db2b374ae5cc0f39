package web

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"tradecapacity/internal/adapters/auth"
	"tradecapacity/internal/adapters/email"
	"tradecapacity/internal/adapters/http/middleware"
	"tradecapacity/internal/adapters/http/perf"
	capacityStore "tradecapacity/internal/adapters/storage/capacity"
	pageStore "tradecapacity/internal/adapters/storage/page"
	"tradecapacity/internal/application/orchestrators"
	"tradecapacity/internal/application/viewstate"
	"tradecapacity/internal/domain/filter"
)

// Stores holds all storage dependencies.
type Stores struct {
	CapacityStore capacityStore.Store
	PageStore     pageStore.Store
}

// Config carries the server settings resolved at startup.
type Config struct {
	StaticDir      string // serve assets from disk instead of the embedded copy when set
	CSRFKey        []byte // nil disables CSRF protection
	Production     bool
	RateLimit      int // requests per second per IP
	SlowRequestMs  int
	TrustedOrigins []string
}

// ErrBadCSRFKey is returned for a malformed CSRF secret.
var ErrBadCSRFKey = errors.New("CSRF key must be 64 hex characters (32 bytes)")

// LoadCSRFKey decodes the hex CSRF secret.
// In production the key MUST be set. Elsewhere a random key is generated per startup.
func LoadCSRFKey(keyHex string, production bool) ([]byte, error) {
	if keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			return nil, ErrBadCSRFKey
		}
		return key, nil
	}
	if production {
		return nil, errors.New("TCM_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	slog.Warn("using random CSRF key, form tokens will not survive a restart")
	return key, nil
}

// DefaultRateLimit is the default per-IP request rate.
const DefaultRateLimit = 20

// Global stores instance (set by NewMux)
var stores *Stores

// Global session registry (set by NewMux)
var sessions *middleware.SessionRegistry

// Global rate limiter (set by NewMux)
var limiter *middleware.RateLimiter

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global Prometheus collectors (set by NewMux, nil disables metrics)
var metrics *middleware.Metrics

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender = email.NewNoopSender()

// Email configuration
var emailFromAddress string

// Global credential checker (set by SetCredentialChecker)
var credentialChecker orchestrators.CredentialChecker = auth.PassThrough{}

// SetEmailSender sets the sender used for forgot-password notices.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// SetCredentialChecker sets the checker consulted by email login.
func SetCredentialChecker(c orchestrators.CredentialChecker) {
	credentialChecker = c
}

// NewMux wires HTTP handlers for the app.
// PRE: the stores are seeded
// POST: every request carries a browser session controller
func NewMux(ctx context.Context, cfg Config, s *Stores, collector *perf.Collector, m *middleware.Metrics) (http.Handler, error) {
	stores = s
	perfCollector = collector
	metrics = m
	middleware.SecureCookies = cfg.Production

	catalog, err := s.CapacityStore.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	sessions = middleware.NewSessionRegistry(func() *viewstate.Controller {
		return newController(catalog)
	})

	mux := http.NewServeMux()
	static, err := staticHandler(cfg.StaticDir)
	if err != nil {
		return nil, err
	}
	mux.Handle("/static/", static)
	registerRoutes(mux)

	rate := cfg.RateLimit
	if rate <= 0 {
		rate = DefaultRateLimit
	}
	limiter = middleware.NewRateLimiter(rate)

	// Applied inner to outer: Session -> CSRF -> SecurityHeaders -> RateLimit -> Timing -> Instrument
	chain := []func(http.Handler) http.Handler{middleware.Session(sessions, sessionExempt...)}
	if cfg.CSRFKey != nil {
		chain = append(chain, middleware.CSRF(cfg.CSRFKey, cfg.Production, cfg.TrustedOrigins))
	}
	chain = append(chain,
		middleware.SecurityHeaders,
		middleware.RateLimit(limiter),
		middleware.Timing(collector, cfg.SlowRequestMs),
		middleware.Instrument(m),
	)
	return middleware.Chain(mux, chain...), nil
}

// sessionExempt lists path prefixes served without a browser session.
var sessionExempt = []string{"/static/", "/healthz", "/metrics"}

func newController(catalog filter.Catalog) *viewstate.Controller {
	c := viewstate.NewController(catalog, viewstate.TickerTimer{})
	c.SetObserver(func(event string, handled bool, elapsed time.Duration) {
		metrics.ObserveEvent(event, handled)
		if perfCollector != nil {
			perfCollector.Record(perf.Entry{
				Kind:       perf.KindEvent,
				Path:       event,
				DurationMs: float64(elapsed.Microseconds()) / 1000.0,
				Timestamp:  time.Now(),
			})
		}
	})
	return c
}

func staticHandler(dir string) (http.Handler, error) {
	if dir != "" {
		return http.StripPrefix("/static/", http.FileServer(http.Dir(dir))), nil
	}
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("embedded static: %w", err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub))), nil
}

// SweepIdleVisitorAge is how long a rate-limit bucket survives without requests.
const SweepIdleVisitorAge = 5 * time.Minute

// Sweep drops expired sessions and idle rate-limit buckets.
func Sweep() {
	if sessions == nil {
		return
	}
	expired := sessions.Sweep()
	idle := 0
	if limiter != nil {
		idle = limiter.Cleanup(SweepIdleVisitorAge)
	}
	metrics.SetSessions(sessions.Len())
	if expired > 0 || idle > 0 {
		slog.Info("session_sweep", "expired_sessions", expired, "idle_visitors", idle, "live_sessions", sessions.Len())
	}
}

// Shutdown stops every session controller.
func Shutdown() {
	if sessions != nil {
		sessions.Close()
	}
}
