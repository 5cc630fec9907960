package web

import (
	"net/http"

	"github.com/gorilla/sessions"

	log "provpush/pkg/log"
)

const (
	sessionName = "provpush"

	flashSuccess = "success"
	flashError   = "error"
)

// NewCookieStore returns a session store whose cookies are signed with
// secret. Sessions only carry flash messages between the POST and the
// redirected GET.
func NewCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// flashes holds the messages shown once on the next render of the form.
type flashes struct {
	Success []string
	Errors  []string
}

// addFlash stores msg under kind in the session cookie. Must be called before
// the response header is written.
func (h *Handler) addFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		// A cookie signed with another key yields a fresh session.
		log.Debug("Discarding unreadable session cookie", "error", err)
	}
	session.AddFlash(msg, kind)
	if err := session.Save(r, w); err != nil {
		log.Error("Failed to save flash message", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
}

// popFlashes returns and clears the pending messages.
func (h *Handler) popFlashes(w http.ResponseWriter, r *http.Request) flashes {
	var f flashes
	session, err := h.store.Get(r, sessionName)
	if err != nil {
		log.Debug("Discarding unreadable session cookie", "error", err)
	}
	f.Success = flashStrings(session.Flashes(flashSuccess))
	f.Errors = flashStrings(session.Flashes(flashError))
	if len(f.Success) == 0 && len(f.Errors) == 0 {
		return f
	}
	if err := session.Save(r, w); err != nil {
		log.Error("Failed to clear flash messages", "error", err, "request_id", requestIDFromContext(r.Context()))
	}
	return f
}

func flashStrings(values []interface{}) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
