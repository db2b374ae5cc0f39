package browser_test

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	web "tradecapacity/internal/adapters/http"
	"tradecapacity/internal/adapters/http/perf"
	"tradecapacity/internal/adapters/storage"
	capacityStore "tradecapacity/internal/adapters/storage/capacity"
	"tradecapacity/internal/adapters/storage/fixtures"
	pageStore "tradecapacity/internal/adapters/storage/page"
	"tradecapacity/internal/application/orchestrators"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the app over a seeded temp SQLite DB, with CSRF on, and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dsn := t.TempDir() + "/test.db"
	db, err := storage.Open(dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.MigrateDB(db, dsn); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	stores := &web.Stores{
		CapacityStore: capacityStore.NewSQLiteStore(db),
		PageStore:     pageStore.NewSQLiteStore(db),
	}
	set, err := fixtures.Load()
	if err != nil {
		t.Fatalf("failed to load fixtures: %v", err)
	}
	ctx := context.Background()
	seedDeps := orchestrators.SeedFixturesDeps{CapacityStore: stores.CapacityStore, PageStore: stores.PageStore}
	if err := orchestrators.ExecuteSeedFixtures(ctx, set, seedDeps); err != nil {
		t.Fatalf("failed to seed fixtures: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate CSRF key: %v", err)
	}
	cfg := web.Config{
		CSRFKey:   key,
		RateLimit: 1000,
		TrustedOrigins: []string{
			fmt.Sprintf("127.0.0.1:%d", port),
			fmt.Sprintf("localhost:%d", port),
		},
	}
	mux, err := web.NewMux(ctx, cfg, stores, perf.NewCollector(0), nil)
	if err != nil {
		t.Fatalf("failed to build mux: %v", err)
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		Server:  srv,
		PW:      pw,
		Browser: browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		web.Shutdown()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login signs in through the credentials form and waits for the overview.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/login"); err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator(".login-form input[name=email]").Fill("trader@reynolds.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator(".login-form input[name=password]").Fill("anything"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator(".login-form button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to overview: %v", err)
	}
}
