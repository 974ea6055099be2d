package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"workdays/internal/application/orchestrators"
	"workdays/internal/domain/workday"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer renders the embedded help content. Raw HTML in the source is escaped.
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Form messages shown when the submitted dates cannot be parsed.
const (
	MsgStartRequired = "Start date is required"
	MsgEndRequired   = "End date is required"
	MsgBadDateFormat = "Dates must use YYYY-MM-DD"
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// parseRange reads the start and end parameters. A non-empty message means
// the request never reaches validation.
func parseRange(startRaw, endRaw string) (start, end time.Time, msg string) {
	if startRaw == "" {
		return time.Time{}, time.Time{}, MsgStartRequired
	}
	if endRaw == "" {
		return time.Time{}, time.Time{}, MsgEndRequired
	}
	start, err := workday.ParseDate(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, MsgBadDateFormat
	}
	end, err = workday.ParseDate(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, MsgBadDateFormat
	}
	return start, end, ""
}

func (s *Server) calculateDeps() orchestrators.CalculateWorkingDaysDeps {
	return orchestrators.CalculateWorkingDaysDeps{
		Validator:  s.deps.Validator,
		Calculator: s.deps.Calculator,
		Countries:  s.deps.Countries,
		LogStore:   s.deps.LogStore,
		Metrics:    s.deps.Metrics,
		Collector:  s.deps.Collector,
		GenerateID: generateID,
		Now:        timeNow,
	}
}

// indexPage is the view model of the calculator page.
type indexPage struct {
	Flash     string
	Start     string
	End       string
	Country   string
	MinDate   string
	MaxDate   string
	Countries []workday.Country
	Result    *workday.CalculationResult
}

func (s *Server) newIndexPage() indexPage {
	return indexPage{
		MinDate:   workday.MinSupportedDate.Format(workday.DateLayout),
		MaxDate:   workday.MaxSupportedDate.Format(workday.DateLayout),
		Countries: s.deps.Countries.ListAll(),
	}
}

// handleIndex renders the empty form, or the form refilled after a rejected submission.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := s.newIndexPage()
	if f, ok := s.popFlash(w, r); ok {
		page.Flash = f.Message
		page.Start = f.Start
		page.End = f.End
		page.Country = f.Country
	}
	s.renderTemplate(w, r, "index.html", page)
}

// handleCalculate renders the result page, or redirects back to the form
// with a flash message when the request is rejected.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	startRaw := strings.TrimSpace(q.Get("start"))
	endRaw := strings.TrimSpace(q.Get("end"))
	country := strings.TrimSpace(q.Get("country"))

	retry := flashMessage{Start: startRaw, End: endRaw, Country: country}

	start, end, msg := parseRange(startRaw, endRaw)
	if msg != "" {
		retry.Message = msg
		s.redirectWithFlash(w, r, retry)
		return
	}

	result, err := orchestrators.ExecuteCalculateWorkingDays(r.Context(), orchestrators.CalculateWorkingDaysInput{
		Start:       start,
		End:         end,
		CountryCode: country,
	}, s.calculateDeps())
	var verr *workday.ValidationError
	if errors.As(err, &verr) {
		retry.Message = verr.Kind.Message()
		s.redirectWithFlash(w, r, retry)
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	page := s.newIndexPage()
	page.Start = startRaw
	page.End = endRaw
	page.Country = result.SelectedCountryCode
	page.Countries = result.AllCountries
	page.Result = &result
	s.renderTemplate(w, r, "index.html", page)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	s.renderTemplate(w, r, "about.html", struct{ Body template.HTML }{Body: s.about})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.deps.DB.PingContext(ctx); err != nil {
			slog.Error("health_check_failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePerf reports timing aggregates for the last hour.
func (s *Server) handlePerf(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Collector.Snapshot(timeNow().Add(-time.Hour), 10))
}

// renderTemplate executes a page inside the layout with a per-request CSRF token.
func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	base, ok := s.pages[name]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %q", name))
		return
	}
	tpl, err := base.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	tpl.Funcs(template.FuncMap{
		"csrfToken": func() string { return csrf.Token(r) },
	})

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json_encode_failed", "error", err)
	}
}
