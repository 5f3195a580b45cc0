// Package rest provides functionality for initializing a server for the URL dashboard.
package rest

import (
	"context"
	"expvar"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_url_dashboard/internal/api/rest/handlers"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/api/rest/middleware"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/backend"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/config"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/logger"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/admin"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/dashboard/v1"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/service/secretary/v1"
	"github.com/danilovkiri/dk_go_url_dashboard/internal/storage"
)

var (
	serverStart = time.Now()
	publishOnce sync.Once
)

// uptime returns time in seconds since the server start-up.
func uptime() interface{} {
	return int64(time.Since(serverStart).Seconds())
}

// InitServer returns a http.Server object ready to be listening and serving.
func InitServer(ctx context.Context, cfg *config.Config, api backend.API, journal storage.AuditStorage, log *zap.Logger) (server *http.Server, err error) {
	if log == nil {
		log = zap.NewNop()
	}
	dashboardService, err := dashboard.InitDashboard(api, journal, cfg, log)
	if err != nil {
		return nil, err
	}
	auth, err := admin.InitAuthenticator(cfg)
	if err != nil {
		return nil, err
	}
	if !auth.Enabled() {
		log.Warn("ADMIN_PASSWORD_HASH is empty, the dashboard is open to everyone who can reach it")
	}
	dashboardHandler, err := handlers.InitDashboardHandler(dashboardService, auth, cfg, log)
	if err != nil {
		return nil, err
	}
	secretaryService := secretary.NewSecretaryService(cfg)
	sessionHandler, err := middleware.NewSessionHandler(secretaryService, cfg, secretaryService.MaxAge(), log)
	if err != nil {
		return nil, err
	}
	authHandler := middleware.NewAuthHandler(auth.Enabled(), handlers.LoginPath)
	trustedNetHandler := middleware.NewTrustedNetHandler(cfg, log)
	requestLogger := logger.NewRequestLogger(log)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(requestLogger.RequestLogHandle)
	r.Use(chiMiddleware.Compress(5))
	r.Get("/ping", dashboardHandler.HandlePing())
	r.With(trustedNetHandler.TrustedNetworkHandler).Mount("/debug", chiMiddleware.Profiler()) // see https://github.com/go-chi/chi/blob/master/middleware/profiler.go
	r.Group(func(r chi.Router) {
		r.Use(sessionHandler.SessionHandle)
		r.Use(middleware.CSRFHandle)
		r.Get(handlers.LoginPath, dashboardHandler.HandleLoginPage())
		r.Post(handlers.LoginPath, dashboardHandler.HandleLogin())
		r.Post("/logout", dashboardHandler.HandleLogout())
		r.Group(func(r chi.Router) {
			r.Use(authHandler.AuthHandle)
			r.Get("/", dashboardHandler.HandleListLinks())
			r.Post("/links", dashboardHandler.HandleCreateLink())
			r.Post("/links/{id}/delete", dashboardHandler.HandleDeleteLink())
			r.Get("/audit", dashboardHandler.HandleJournal())
			r.Get("/api/charts/{id}", dashboardHandler.HandleChartsJSON())
			r.Get(handlers.StatsPath+"{id}", dashboardHandler.HandleStats())
			r.Get("/{id}", dashboardHandler.HandleStatsRedirect())
		})
	})
	r.NotFound(dashboardHandler.HandleNotFound())
	publishOnce.Do(func() {
		expvar.Publish("system.uptime", expvar.Func(uptime))
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      r,
		IdleTimeout:  60 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}
	return srv, nil
}
