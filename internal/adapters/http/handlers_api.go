package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	calcStore "workdays/internal/adapters/storage/calculation"
	"workdays/internal/application/orchestrators"
	"workdays/internal/application/projections"
	"workdays/internal/domain/workday"
)

// apiError is the JSON error body. Kind is set for validation failures only.
type apiError struct {
	Code    string `json:"code"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

const (
	codeBadRequest = "BAD_REQUEST"
	codeNotFound   = "NOT_FOUND"
)

// workingDaysResponse is the JSON shape of a calculation result.
type workingDaysResponse struct {
	WorkingDays         int64           `json:"working_days"`
	Start               string          `json:"start"`
	End                 string          `json:"end"`
	Country             workday.Country `json:"country"`
	SelectedCountryCode string          `json:"selected_country_code"`
}

// handleAPIWorkingDays handles GET /api/v1/working-days?start=&end=&country=.
func (s *Server) handleAPIWorkingDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end, msg := parseRange(strings.TrimSpace(q.Get("start")), strings.TrimSpace(q.Get("end")))
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, apiError{Code: codeBadRequest, Message: msg})
		return
	}

	result, err := orchestrators.ExecuteCalculateWorkingDays(r.Context(), orchestrators.CalculateWorkingDaysInput{
		Start:       start,
		End:         end,
		CountryCode: strings.TrimSpace(q.Get("country")),
	}, s.calculateDeps())
	var verr *workday.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, apiError{
			Code:    verr.Kind.Code(),
			Kind:    string(verr.Kind),
			Message: verr.Kind.Message(),
		})
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, workingDaysResponse{
		WorkingDays:         result.WorkingDays,
		Start:               result.Range.Start.Format(workday.DateLayout),
		End:                 result.Range.End.Format(workday.DateLayout),
		Country:             result.Country,
		SelectedCountryCode: result.SelectedCountryCode,
	})
}

// handleAPICountries handles GET /api/v1/countries.
func (s *Server) handleAPICountries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.deps.Countries.ListAll())
}

// handleAPIHolidays handles GET /api/v1/countries/{code}/holidays?year=.
// The year defaults to the current one.
func (s *Server) handleAPIHolidays(w http.ResponseWriter, r *http.Request) {
	year := timeNow().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, apiError{Code: codeBadRequest, Message: "year must be a number"})
			return
		}
		year = parsed
	}

	result, err := projections.QueryGetCountryHolidays(r.Context(), projections.GetCountryHolidaysQuery{
		CountryCode: chi.URLParam(r, "code"),
		Year:        year,
	}, projections.GetCountryHolidaysDeps{
		Countries: s.deps.Countries,
		Holidays:  s.deps.Holidays,
	})
	switch {
	case errors.Is(err, projections.ErrUnknownCountry):
		writeJSON(w, http.StatusNotFound, apiError{
			Code:    workday.KindInvalidCountry.Code(),
			Kind:    string(workday.KindInvalidCountry),
			Message: workday.KindInvalidCountry.Message(),
		})
	case errors.Is(err, projections.ErrYearOutOfRange):
		writeJSON(w, http.StatusBadRequest, apiError{Code: codeBadRequest, Message: err.Error()})
	case err != nil:
		internalError(w, err)
	default:
		writeJSON(w, http.StatusOK, result)
	}
}

// handleAPIRecentCalculations handles GET /api/v1/calculations/recent?limit=&country=.
func (s *Server) handleAPIRecentCalculations(w http.ResponseWriter, r *http.Request) {
	if s.deps.LogStore == nil {
		writeJSON(w, http.StatusOK, []projections.RecentCalculation{})
		return
	}

	q := r.URL.Query()
	limit := 0
	if raw := q.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, apiError{Code: codeBadRequest, Message: "limit must be a positive number"})
			return
		}
		limit = parsed
	}

	entries, err := projections.QueryGetRecentCalculations(r.Context(), projections.GetRecentCalculationsQuery{
		CountryCode: q.Get("country"),
		Limit:       limit,
	}, projections.GetRecentCalculationsDeps{
		LogStore:  s.deps.LogStore,
		Countries: s.deps.Countries,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleAPICalculation handles GET /api/v1/calculations/{id}.
func (s *Server) handleAPICalculation(w http.ResponseWriter, r *http.Request) {
	if s.deps.LogStore == nil {
		writeJSON(w, http.StatusNotFound, apiError{Code: codeNotFound, Message: "calculation log disabled"})
		return
	}

	entry, err := projections.QueryGetCalculation(r.Context(), chi.URLParam(r, "id"), projections.GetCalculationDeps{
		LogStore:  s.deps.LogStore,
		Countries: s.deps.Countries,
	})
	if errors.Is(err, calcStore.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, apiError{Code: codeNotFound, Message: "calculation not found"})
		return
	}
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}
