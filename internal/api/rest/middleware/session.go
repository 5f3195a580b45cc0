// Package middleware provides various middleware functionality.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/9ssi7/nanoid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/secretary"
)

// SessionCookieName is the name of the cookie carrying the session.
const SessionCookieName = "dashboard_session"

type ctxKey int

const sessionKey ctxKey = iota

// sessionCarrier binds the request session to the handler able to persist it.
type sessionCarrier struct {
	session *secretary.Session
	handler *SessionHandler
}

// SessionHandler sets object structure.
type SessionHandler struct {
	sec    secretary.Secretary
	secure bool
	maxAge int
	log    *zap.Logger
}

// NewSessionHandler initializes a new session handler.
func NewSessionHandler(sec secretary.Secretary, cfg *config.Config, maxAge int, log *zap.Logger) (*SessionHandler, error) {
	if sec == nil {
		return nil, &NilSecretaryError{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SessionHandler{
		sec:    sec,
		secure: strings.HasPrefix(cfg.BaseURL, "https://"),
		maxAge: maxAge,
		log:    log,
	}, nil
}

// SessionHandle restores the session from its cookie or starts a new one.
func (h *SessionHandler) SessionHandle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var session *secretary.Session
		if cookie, err := r.Cookie(SessionCookieName); err == nil {
			session, err = h.sec.Decode(cookie.Value)
			if err != nil {
				h.log.Debug("discarding session cookie", zap.Error(err))
				session = nil
			}
		}
		fresh := session == nil
		if fresh {
			session = &secretary.Session{ID: uuid.New().String()}
		}
		if session.CSRF == "" {
			token, err := nanoid.New()
			if err != nil {
				h.log.Error("generating csrf token", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
			session.CSRF = token
			fresh = true
		}
		ctx := context.WithValue(r.Context(), sessionKey, &sessionCarrier{session: session, handler: h})
		r = r.WithContext(ctx)
		if fresh {
			if err := SaveSession(w, r); err != nil {
				h.log.Error("saving session", zap.Error(err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// SessionFromContext returns the session of the request, nil outside of SessionHandle.
func SessionFromContext(ctx context.Context) *secretary.Session {
	carrier, ok := ctx.Value(sessionKey).(*sessionCarrier)
	if !ok {
		return nil
	}
	return carrier.session
}

// SaveSession writes the current session of the request into the response cookie.
// It must be called before the response header is written.
func SaveSession(w http.ResponseWriter, r *http.Request) error {
	carrier, ok := r.Context().Value(sessionKey).(*sessionCarrier)
	if !ok {
		return &NoSessionError{}
	}
	token, err := carrier.handler.sec.Encode(carrier.session)
	if err != nil {
		return err
	}
	dropCookie(w.Header(), SessionCookieName)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   carrier.handler.maxAge,
		HttpOnly: true,
		Secure:   carrier.handler.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// dropCookie removes a previously set cookie from the response header.
func dropCookie(h http.Header, name string) {
	cookies := h.Values("Set-Cookie")
	if len(cookies) == 0 {
		return
	}
	h.Del("Set-Cookie")
	for _, c := range cookies {
		if !strings.HasPrefix(c, name+"=") {
			h.Add("Set-Cookie", c)
		}
	}
}
