// Package handlers provides http.HandlerFunc handler functions to be used for endpoints.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/9ssi7/nanoid"
	"github.com/go-chi/chi"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/api/rest/modeldto"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/api/rest/view"
	backendErrors "github.com/danilovkiri/dk_go_url_dashboard/internal/backend/errors"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/dashboard"
	serviceErrors "github.com/danilovkiri/dk_go_url_dashboard/internal/service/errors"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/pager"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/secretary"
	storageErrors "github.com/danilovkiri/dk_go_url_dashboard/internal/storage/errors"
)

// Form fields and query parameters.
const (
	fieldLong     = "long"
	fieldOffset   = "offset"
	fieldUser     = "user"
	fieldPassword = "password"
	fieldNext     = "next"
	anonymous     = "anonymous"
)

// LoginPath is where unauthenticated administrators are sent to.
const LoginPath = "/login"

// StatsPath prefixes the statistics pages so that no short code clashes with a fixed route.
const StatsPath = "/stats/"

// Authenticator defines a set of methods for types checking administrator credentials.
type Authenticator interface {
	Enabled() bool
	Authenticate(user, password string) error
}

// DashboardHandler defines data structure handling and provides support for adding new implementations.
type DashboardHandler struct {
	processor dashboard.Processor
	auth      Authenticator
	view      *view.Renderer
	pending   *dashboard.PendingStore
	log       *zap.Logger
	timeout   time.Duration
	limit     int
}

// InitDashboardHandler initializes a DashboardHandler object and sets its attributes.
func InitDashboardHandler(processor dashboard.Processor, auth Authenticator, cfg *config.Config, log *zap.Logger) (*DashboardHandler, error) {
	if processor == nil {
		return nil, &NilProcessorError{}
	}
	if auth == nil {
		return nil, &NilAuthenticatorError{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	// a list page issues up to three backend requests, two of them concurrently
	timeout := 2 * cfg.BackendTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &DashboardHandler{
		processor: processor,
		auth:      auth,
		view:      renderer,
		pending:   dashboard.NewPendingStore(time.Now),
		log:       log,
		timeout:   timeout,
		limit:     cfg.PageLimit,
	}, nil
}

// HandleListLinks renders one page of links.
func (h *DashboardHandler) HandleListLinks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		offset := formOffset(r.URL.Query().Get(fieldOffset))
		session := h.session(r)
		status := http.StatusOK
		list, err := h.processor.Page(ctx, offset, requestPrefix(r))
		if err != nil {
			h.log.Error("HandleListLinks", zap.Int("offset", offset), zap.Error(err))
			session.SetFlash("Could not load links: "+err.Error(), true)
			status = statusCode(err)
			list = &dashboard.ListView{Pager: pager.New(0, h.limit, 0)}
		} else {
			h.pending.Reconcile(session.ID, list)
		}
		p := h.page(r, "Links", list)
		h.withUser(ctx, p)
		h.render(w, r, status, view.PageLinks, p)
	}
}

// HandleCreateLink creates a new short link and sends the client back to the first page.
func (h *DashboardHandler) HandleCreateLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		session := h.session(r)
		long := r.PostFormValue(fieldLong)
		link, err := h.processor.Create(ctx, h.actor(r), long)
		switch {
		case err != nil:
			h.log.Error("HandleCreateLink", zap.String("long", long), zap.Error(err))
			session.SetFlash("Could not create link: "+err.Error(), true)
		default:
			h.pending.Created(session.ID, *link)
			session.SetFlash("Created "+link.Short, false)
		}
		h.redirect(w, r, "/")
	}
}

// HandleDeleteLink deletes a short link and sends the client back to the page it came from.
func (h *DashboardHandler) HandleDeleteLink() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		short := chi.URLParam(r, "id")
		target := "/"
		if offset := formOffset(r.PostFormValue(fieldOffset)); offset > 0 {
			target = "/?offset=" + strconv.Itoa(offset)
		}
		if !modellink.ValidShort(short) {
			h.redirect(w, r, target)
			return
		}
		session := h.session(r)
		if err := h.processor.Delete(ctx, h.actor(r), short); err != nil {
			h.log.Error("HandleDeleteLink", zap.String("short", short), zap.Error(err))
			session.SetFlash("Could not delete "+short+": "+err.Error(), true)
		} else {
			h.pending.Deleted(session.ID, short)
			session.SetFlash("Deleted "+short, false)
		}
		h.redirect(w, r, target)
	}
}

// HandleStats renders the statistics of one link.
func (h *DashboardHandler) HandleStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		short := chi.URLParam(r, "id")
		if !modellink.ValidShort(short) {
			h.redirect(w, r, "/")
			return
		}
		stats, err := h.processor.Stats(ctx, short, requestPrefix(r))
		if err != nil {
			h.log.Error("HandleStats", zap.String("short", short), zap.Error(err))
			code := statusCode(err)
			msg := "Could not load statistics: " + err.Error()
			if code == http.StatusNotFound {
				msg = "There is no link " + short + "."
			}
			h.renderError(w, r, code, msg)
			return
		}
		p := h.page(r, short, stats)
		h.withUser(ctx, p)
		h.render(w, r, http.StatusOK, view.PageStats, p)
	}
}

// HandleStatsRedirect sends a client following a bare short code to the statistics page.
func (h *DashboardHandler) HandleStatsRedirect() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		short := chi.URLParam(r, "id")
		if !modellink.ValidShort(short) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, StatsPath+short, http.StatusMovedPermanently)
	}
}

// HandleChartsJSON provides the chart data of one link as JSON.
func (h *DashboardHandler) HandleChartsJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		short := chi.URLParam(r, "id")
		if !modellink.ValidShort(short) {
			h.writeJSON(w, http.StatusBadRequest, modeldto.ResponseError{
				Code:  http.StatusBadRequest,
				Error: (&backendErrors.InvalidShortError{Short: short}).Error(),
			})
			return
		}
		stats, err := h.processor.Stats(ctx, short, requestPrefix(r))
		if err != nil {
			h.log.Error("HandleChartsJSON", zap.String("short", short), zap.Error(err))
			code := statusCode(err)
			h.writeJSON(w, code, modeldto.ResponseError{Code: code, Error: err.Error()})
			return
		}
		h.writeJSON(w, http.StatusOK, modeldto.ResponseCharts{
			Short:       stats.Stats.Short,
			ShortURL:    stats.ShortURL,
			Clicks:      stats.Stats.Clicks,
			LastUpdated: stats.Stats.LastUpdated,
			Charts:      stats.Charts,
		})
	}
}

// HandleJournal renders one page of the audit journal.
func (h *DashboardHandler) HandleJournal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		offset := formOffset(r.URL.Query().Get(fieldOffset))
		journal, err := h.processor.Journal(ctx, offset)
		if err != nil {
			h.log.Error("HandleJournal", zap.Int("offset", offset), zap.Error(err))
			code := http.StatusInternalServerError
			if errors.Is(err, storageErrors.ContextTimeoutExceededError{}) {
				code = http.StatusGatewayTimeout
			}
			h.renderError(w, r, code, "Could not load the journal: "+err.Error())
			return
		}
		p := h.page(r, "Journal", journal)
		h.withUser(ctx, p)
		h.render(w, r, http.StatusOK, view.PageAudit, p)
	}
}

// HandleLoginPage renders the login form.
func (h *DashboardHandler) HandleLoginPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next := safeNext(r.URL.Query().Get(fieldNext))
		if !h.auth.Enabled() || h.session(r).Authenticated() {
			h.redirect(w, r, next)
			return
		}
		h.render(w, r, http.StatusOK, view.PageLogin, h.page(r, "Sign in", view.Login{Next: next}))
	}
}

// HandleLogin checks administrator credentials and starts an authenticated session.
func (h *DashboardHandler) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := r.PostFormValue(fieldUser)
		next := safeNext(r.PostFormValue(fieldNext))
		session := h.session(r)
		if err := h.auth.Authenticate(user, r.PostFormValue(fieldPassword)); err != nil {
			h.log.Warn("HandleLogin", zap.String("user", user), zap.String("remote", middleware.ClientIP(r)), zap.Error(err))
			status := http.StatusUnauthorized
			var disabled *serviceErrors.ServiceLoginDisabledError
			if errors.As(err, &disabled) {
				status = http.StatusForbidden
			}
			session.SetFlash("Invalid user or password", true)
			h.render(w, r, status, view.PageLogin, h.page(r, "Sign in", view.Login{User: user, Next: next}))
			return
		}
		// a fresh identity and token prevent fixation of a session known before login
		token, err := nanoid.New()
		if err != nil {
			h.log.Error("HandleLogin", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		h.pending.Forget(session.ID)
		session.ID = uuid.New().String()
		session.CSRF = token
		session.User = user
		h.log.Info("administrator logged in", zap.String("user", user), zap.String("remote", middleware.ClientIP(r)))
		h.redirect(w, r, next)
	}
}

// HandleLogout ends the authenticated session.
func (h *DashboardHandler) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := h.session(r)
		session.User = ""
		h.pending.Forget(session.ID)
		session.SetFlash("Signed out", false)
		if h.auth.Enabled() {
			h.redirect(w, r, LoginPath)
			return
		}
		h.redirect(w, r, "/")
	}
}

// HandlePing checks whether the backend and the journal storage are reachable.
func (h *DashboardHandler) HandlePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()
		if err := h.processor.Ping(ctx); err != nil {
			h.log.Error("HandlePing", zap.Error(err))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// HandleNotFound sends the client to the link list.
func (h *DashboardHandler) HandleNotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// session returns the request session, a throwaway one when the request carries none.
func (h *DashboardHandler) session(r *http.Request) *secretary.Session {
	if s := middleware.SessionFromContext(r.Context()); s != nil {
		return s
	}
	return &secretary.Session{}
}

// actor describes the client performing a mutation.
func (h *DashboardHandler) actor(r *http.Request) dashboard.Actor {
	name := h.session(r).User
	if name == "" {
		name = anonymous
	}
	return dashboard.Actor{
		Name:       name,
		UserAgent:  r.UserAgent(),
		RemoteAddr: middleware.ClientIP(r),
	}
}

func (h *DashboardHandler) page(r *http.Request, title string, content interface{}) *view.Page {
	session := h.session(r)
	msg, failed := session.PopFlash()
	return &view.Page{
		Title:       title,
		Admin:       session.User,
		CSRF:        session.CSRF,
		Flash:       msg,
		Failed:      failed,
		AuthEnabled: h.auth.Enabled(),
		Content:     content,
	}
}

// withUser adds the backend identity to the page; the page is still usable without it.
func (h *DashboardHandler) withUser(ctx context.Context, p *view.Page) {
	user, err := h.processor.CurrentUser(ctx)
	if err != nil {
		h.log.Warn("fetching backend user", zap.Error(err))
		return
	}
	p.User = user
}

func (h *DashboardHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, p *view.Page) {
	h.save(w, r)
	if err := h.view.Render(w, status, name, p); err != nil {
		h.log.Error("rendering page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.render(w, r, status, view.PageError, h.page(r, http.StatusText(status), view.Error{Code: status, Message: msg}))
}

func (h *DashboardHandler) redirect(w http.ResponseWriter, r *http.Request, target string) {
	h.save(w, r)
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *DashboardHandler) save(w http.ResponseWriter, r *http.Request) {
	err := middleware.SaveSession(w, r)
	var noSession *middleware.NoSessionError
	if err != nil && !errors.As(err, &noSession) {
		h.log.Error("saving session", zap.Error(err))
	}
}

func (h *DashboardHandler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	resBody, err := json.Marshal(body)
	if err != nil {
		h.log.Error("encoding response", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(resBody); err != nil {
		h.log.Debug("writing response", zap.Error(err))
	}
}

// statusCode maps an error of the dashboard service to an HTTP status code.
func statusCode(err error) int {
	var (
		notFound *backendErrors.NotFoundError
		invalid  *backendErrors.InvalidShortError
		badURL   *serviceErrors.ServiceIncorrectInputURL
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &badURL):
		return http.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, storageErrors.ContextTimeoutExceededError{}):
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// formOffset parses a page offset, anything unparsable means the first page.
func formOffset(s string) int {
	offset, err := strconv.Atoi(s)
	if err != nil || offset < 0 {
		return 0
	}
	return offset
}

// requestPrefix returns the scheme and host the client used, followed by a slash.
func requestPrefix(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// safeNext keeps redirects after login on this site.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
