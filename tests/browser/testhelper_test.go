package browser_test

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	"workdays/internal/adapters/catalog"
	"workdays/internal/adapters/holidays"
	web "workdays/internal/adapters/http"
	"workdays/internal/adapters/http/perf"
	"workdays/internal/adapters/storage"
	calcStore "workdays/internal/adapters/storage/calculation"
	countryStore "workdays/internal/adapters/storage/country"
	"workdays/internal/application/orchestrators"
	"workdays/internal/domain/workday"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
}

// newTestApp wires the app on a temp SQLite DB, starts an HTTP server and a
// headless Chromium. Skips when Playwright's driver or browsers are missing.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	ctx := context.Background()
	embedded, err := catalog.EmbeddedCountries()
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	oracle := holidays.NewOracle()
	countries, err := orchestrators.ExecuteSeedCountries(ctx, embedded, orchestrators.SeedCountriesDeps{
		CountryStore: countryStore.NewSQLiteStore(db),
		Calendars:    oracle,
	})
	if err != nil {
		t.Fatalf("failed to seed countries: %v", err)
	}
	dir, err := catalog.NewDirectory(countries)
	if err != nil {
		t.Fatalf("failed to build directory: %v", err)
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	handler, err := web.NewServer(web.Deps{
		Countries:  dir,
		Validator:  workday.NewValidator(dir),
		Calculator: workday.NewCalculator(oracle),
		Holidays:   oracle,
		LogStore:   calcStore.NewSQLiteStore(db),
		DB:         db,
		Collector:  perf.NewCollector(1000),
	}, web.Options{
		CSRFKey:  testKey,
		FlashKey: testKey,
		TrustedOrigins: []string{
			fmt.Sprintf("127.0.0.1:%d", port),
			fmt.Sprintf("localhost:%d", port),
		},
		RateLimit: 1000,
	})
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: handler,
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

	app := &testApp{BaseURL: baseURL, DB: db, Server: srv}
	t.Cleanup(func() {
		srv.Close()
		handler.Close()
		db.Close()
	})

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright unavailable: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		t.Skipf("chromium unavailable: %v", err)
	}
	app.PW = pw
	app.Browser = browser
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
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

// submitForm fills the calculator form and submits it.
func (a *testApp) submitForm(t *testing.T, page playwright.Page, start, end, country string) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/"); err != nil {
		t.Fatalf("failed to navigate to calculator: %v", err)
	}
	if err := page.Locator("#start").Fill(start); err != nil {
		t.Fatalf("failed to fill start: %v", err)
	}
	if err := page.Locator("#end").Fill(end); err != nil {
		t.Fatalf("failed to fill end: %v", err)
	}
	if _, err := page.Locator("#country").SelectOption(playwright.SelectOptionValues{
		Values: playwright.StringSlice(country),
	}); err != nil {
		t.Fatalf("failed to select country: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to submit: %v", err)
	}
	if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}); err != nil {
		t.Fatalf("page did not settle: %v", err)
	}
}
