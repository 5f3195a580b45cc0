// Package dashboard provides the view-model layer of the administration dashboard.
package dashboard

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mssola/useragent"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/backend"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/charts"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/dashboard"
	serviceErrors "github.com/danilovkiri/dk_go_url_dashboard/internal/service/errors"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/modellink"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/pager"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage/modelstorage"
)

// Check interface implementation explicitly
var (
	_ dashboard.Processor = (*Dashboard)(nil)
)

type createForm struct {
	Long string `validate:"required,http_url,max=2048"`
}

// Dashboard struct defines data structure handling and provides support for adding new implementations.
type Dashboard struct {
	api      backend.API
	journal  storage.AuditStorage
	charts   *charts.Builder
	validate *validator.Validate
	limit    int
	baseURL  string
	backend  string
	now      func() time.Time
	log      *zap.Logger
}

// InitDashboard initializes a Dashboard object and sets its attributes.
func InitDashboard(api backend.API, journal storage.AuditStorage, cfg *config.Config, log *zap.Logger) (*Dashboard, error) {
	if api == nil {
		return nil, &serviceErrors.ServiceFoundNilBackend{Msg: "nil backend was passed to service initializer"}
	}
	if journal == nil {
		return nil, &serviceErrors.ServiceFoundNilStorage{Msg: "nil storage was passed to service initializer"}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dashboard{
		api:      api,
		journal:  journal,
		charts:   charts.NewBuilder(nil),
		validate: validator.New(),
		limit:    cfg.PageLimit,
		baseURL:  cfg.BaseURL,
		backend:  cfg.BackendURL,
		now:      time.Now,
		log:      log,
	}, nil
}

// CurrentUser returns the identity reported by the backend.
func (d *Dashboard) CurrentUser(ctx context.Context) (*modellink.User, error) {
	return d.api.User(ctx)
}

// Page fetches the link count and one page of links concurrently.
func (d *Dashboard) Page(ctx context.Context, offset int, prefix string) (*dashboard.ListView, error) {
	var (
		count int
		links []modellink.Link
	)
	limit := pager.New(0, d.limit, 0).Limit
	if offset < 0 {
		offset = 0
	}
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		count, err = d.api.CountLinks(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = d.api.ListLinks(gCtx, limit, offset)
		return err
	})
	if err := g.Wait(); err != nil {
		d.log.Error("fetching links page", zap.Int("offset", offset), zap.Error(err))
		return nil, err
	}
	p := pager.New(count, limit, offset)
	if p.Offset != offset && count > 0 {
		// the requested page is past the end, fetch the last one instead
		var err error
		links, err = d.api.ListLinks(ctx, p.Limit, p.Offset)
		if err != nil {
			d.log.Error("fetching last links page", zap.Int("offset", p.Offset), zap.Error(err))
			return nil, err
		}
	}
	prefix = d.prefix(prefix)
	view := &dashboard.ListView{
		Links:  make([]dashboard.LinkView, 0, len(links)),
		Pager:  p,
		Prefix: prefix,
	}
	for _, l := range links {
		view.Links = append(view.Links, dashboard.LinkView{Link: l, ShortURL: prefix + l.Short})
	}
	return view, nil
}

// Create validates and shortens long, then journals the action.
func (d *Dashboard) Create(ctx context.Context, actor dashboard.Actor, long string) (*modellink.Link, error) {
	long = strings.TrimSpace(long)
	if err := d.validate.Struct(createForm{Long: long}); err != nil {
		return nil, &serviceErrors.ServiceIncorrectInputURL{Msg: "a valid http(s) URL is required"}
	}
	link, err := d.api.CreateLink(ctx, long)
	if err != nil {
		d.log.Error("creating link", zap.String("long", long), zap.Error(err))
		return nil, err
	}
	d.audit(ctx, modelstorage.ActionCreate, actor, link.Short, link.Long)
	return link, nil
}

// Delete removes the link identified by short, then journals the action.
func (d *Dashboard) Delete(ctx context.Context, actor dashboard.Actor, short string) error {
	if err := d.api.DeleteLink(ctx, short); err != nil {
		d.log.Error("deleting link", zap.String("short", short), zap.Error(err))
		return err
	}
	d.audit(ctx, modelstorage.ActionDelete, actor, short, "")
	return nil
}

// Stats fetches statistics of one link and prepares its charts.
func (d *Dashboard) Stats(ctx context.Context, short string, prefix string) (*dashboard.StatsView, error) {
	stats, err := d.api.Stats(ctx, short)
	if err != nil {
		return nil, err
	}
	return &dashboard.StatsView{
		Stats:    stats,
		Charts:   d.charts.Build(stats),
		ShortURL: d.prefix(prefix) + stats.Short,
	}, nil
}

// Journal returns one page of the audit journal.
func (d *Dashboard) Journal(ctx context.Context, offset int) (*dashboard.JournalView, error) {
	count, err := d.journal.Count(ctx)
	if err != nil {
		return nil, err
	}
	p := pager.New(count, d.limit, offset)
	entries, err := d.journal.Retrieve(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, err
	}
	return &dashboard.JournalView{Entries: entries, Pager: p}, nil
}

// Ping checks that the backend and the journal storage are reachable.
func (d *Dashboard) Ping(ctx context.Context) error {
	if _, err := d.api.CountLinks(ctx); err != nil {
		return &serviceErrors.ServicePingError{Component: "backend", Err: err}
	}
	if err := d.journal.PingDB(ctx); err != nil {
		return &serviceErrors.ServicePingError{Component: "journal", Err: err}
	}
	return nil
}

// audit stores a journal entry, failures are logged only since the mutation already happened.
func (d *Dashboard) audit(ctx context.Context, action modelstorage.Action, actor dashboard.Actor, short, long string) {
	ua := useragent.New(actor.UserAgent)
	browser, version := ua.Browser()
	if version != "" {
		browser += " " + version
	}
	entry := modelstorage.AuditEntry{
		ID:         uuid.New().String(),
		Action:     action,
		Short:      short,
		Long:       long,
		User:       actor.Name,
		Browser:    browser,
		Platform:   ua.OS(),
		RemoteAddr: actor.RemoteAddr,
		At:         d.now().UTC(),
	}
	if err := d.journal.Dump(ctx, entry); err != nil {
		d.log.Error("journaling action", zap.String("action", string(action)), zap.String("short", short), zap.Error(err))
	}
}

// prefix returns the base URL short links are served from, always ending with a slash.
// The backend owns redirects, so its URL comes before the request derived one.
func (d *Dashboard) prefix(fromRequest string) string {
	p := d.baseURL
	if p == "" {
		p = d.backend
	}
	if p == "" {
		p = fromRequest
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
