package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/securecookie"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"workdays/internal/adapters/http/middleware"
	"workdays/internal/adapters/http/perf"
	"workdays/internal/application/orchestrators"
	"workdays/internal/application/projections"
	"workdays/internal/domain/workday"
	"workdays/internal/platform/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed content/about.md
var aboutMarkdown []byte

// pageNames lists the templates rendered inside layout.html.
var pageNames = []string{"index.html", "about.html"}

// CalculationLog is the calculation log as seen by the web layer.
type CalculationLog interface {
	orchestrators.CalculationLogStore
	projections.CalculationLogReader
	projections.CalculationLookup
}

// HealthChecker reports database liveness.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Deps holds the collaborators of the web layer. LogStore, DB, Metrics,
// Gatherer and Collector are optional.
type Deps struct {
	Countries  workday.CountryDirectory
	Validator  orchestrators.WorkdayValidator
	Calculator orchestrators.WorkdayCalculator
	Holidays   projections.HolidayLister
	LogStore   CalculationLog
	DB         HealthChecker
	Metrics    *metrics.Metrics
	Gatherer   prometheus.Gatherer
	Collector  *perf.Collector
}

// Options configures middleware.
type Options struct {
	CSRFKey        []byte // 32 bytes
	FlashKey       []byte // 32 bytes
	TrustedOrigins []string
	RateLimit      int // requests per second per client
	SlowRequest    time.Duration
	Secure         bool // cookies only over HTTPS
}

// Server is the HTTP surface: HTML pages, the JSON API and operational endpoints.
type Server struct {
	deps    Deps
	flash   *securecookie.SecureCookie
	secure  bool
	pages   map[string]*template.Template
	about   template.HTML
	limiter *middleware.RateLimiter
	handler http.Handler
}

// NewServer parses templates, renders static content and wires routes and middleware.
// PRE: deps.Countries, deps.Validator, deps.Calculator and deps.Holidays are non-nil;
// opts keys are 32 bytes
// POST: returns a ready http.Handler; Close releases the rate limiter
func NewServer(deps Deps, opts Options) (*Server, error) {
	if len(opts.CSRFKey) != 32 || len(opts.FlashKey) != 32 {
		return nil, fmt.Errorf("csrf and flash keys must be 32 bytes")
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10
	}

	s := &Server{
		deps:   deps,
		flash:  securecookie.New(opts.FlashKey, nil).SetSerializer(securecookie.JSONEncoder{}).MaxAge(int(flashTTL.Seconds())),
		secure: opts.Secure,
		pages:  make(map[string]*template.Template, len(pageNames)),
	}

	for _, name := range pageNames {
		tpl, err := template.New("layout.html").Funcs(baseFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		s.pages[name] = tpl
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert(aboutMarkdown, &buf); err != nil {
		return nil, fmt.Errorf("render about page: %w", err)
	}
	s.about = template.HTML(buf.String())

	s.limiter = middleware.NewRateLimiter(opts.RateLimit, time.Second)

	s.handler = middleware.Chain(s.routes(),
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, opts.TrustedOrigins, opts.Secure),
		middleware.RateLimit(s.limiter),
		middleware.Timing(deps.Collector, opts.SlowRequest),
	)
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close stops background work owned by the server.
func (s *Server) Close() {
	s.limiter.Close()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	staticRoot, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticRoot)))

	r.Get("/", s.handleIndex)
	r.Get("/calculate", s.handleCalculate)
	r.Get("/about", s.handleAbout)
	r.Get("/healthz", s.handleHealthz)
	r.Get("/debug/perf", s.handlePerf)
	if s.deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/working-days", s.handleAPIWorkingDays)
		r.Get("/countries", s.handleAPICountries)
		r.Get("/countries/{code}/holidays", s.handleAPIHolidays)
		r.Get("/calculations/recent", s.handleAPIRecentCalculations)
		r.Get("/calculations/{id}", s.handleAPICalculation)
	})
	return r
}

// baseFuncs are bound at parse time; csrfToken is rebound per request.
var baseFuncs = template.FuncMap{
	"csrfToken": func() string { return "" },
	"upper":     strings.ToUpper,
	"date":      func(t time.Time) string { return t.Format(workday.DateLayout) },
}
