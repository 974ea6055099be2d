package web

import (
	"log/slog"
	"net/http"
	"time"
	"unicode/utf8"
)

const (
	flashCookie = "workdays_flash"
	flashTTL    = time.Minute
	// flashFieldMax bounds each echoed form field so the cookie stays small.
	flashFieldMax = 64
)

// flashMessage survives one redirect and refills the form.
type flashMessage struct {
	Message string `json:"m"`
	Start   string `json:"s,omitempty"`
	End     string `json:"e,omitempty"`
	Country string `json:"c,omitempty"`
}

// clipped returns f with the echoed form fields cut to flashFieldMax runes.
func (f flashMessage) clipped() flashMessage {
	f.Start = clip(f.Start, flashFieldMax)
	f.End = clip(f.End, flashFieldMax)
	f.Country = clip(f.Country, flashFieldMax)
	return f
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// redirectWithFlash stores f in a signed cookie and redirects to the form.
// If f cannot be encoded only its message is kept; if that fails too the
// redirect carries no flash.
func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, f flashMessage) {
	value, err := s.flash.Encode(flashCookie, f.clipped())
	if err != nil {
		slog.Warn("flash_encode_failed", "error", err)
		value, err = s.flash.Encode(flashCookie, flashMessage{Message: f.Message})
	}
	if err != nil {
		slog.Error("flash_encode_failed", "error", err)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   int(flashTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// popFlash reads and clears the flash cookie. Tampered or expired cookies are dropped.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) (flashMessage, bool) {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return flashMessage{}, false
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	var f flashMessage
	if err := s.flash.Decode(flashCookie, c.Value, &f); err != nil {
		slog.Warn("flash_cookie_rejected", "error", err)
		return flashMessage{}, false
	}
	return f, true
}
