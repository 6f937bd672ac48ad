package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"github.com/agentraghav/local-library/internal/api"
	"github.com/agentraghav/local-library/internal/config"
	"github.com/agentraghav/local-library/internal/logger"
	"github.com/agentraghav/local-library/internal/metrics"
	"github.com/agentraghav/local-library/internal/service"
)

// Grace period for in-flight requests on shutdown.
const shutdownTimeout = 30 * time.Second

// ProvideMetrics provides the Prometheus collectors.
func ProvideMetrics(_ do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}

// ProvideRenderer provides the HTML template renderer.
func ProvideRenderer(i do.Injector) (*api.Renderer, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	renderer, err := api.NewRenderer(cfg.Web.TemplateDir, log.Logger)
	if err != nil {
		return nil, err
	}
	if cfg.Web.TemplateDir != "" {
		log.Info("Templates loaded from disk", "dir", cfg.Web.TemplateDir)
	}
	return renderer, nil
}

// APIServerHandle wraps the router with Shutdownable.
type APIServerHandle struct {
	*api.Server
}

// Shutdown implements do.Shutdownable.
func (h *APIServerHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideAPIServer provides the catalog router.
func ProvideAPIServer(i do.Injector) (*APIServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Authors: do.MustInvoke[*service.AuthorService](i),
		Genres:  do.MustInvoke[*service.GenreService](i),
		Books:   do.MustInvoke[*service.BookService](i),
		Copies:  do.MustInvoke[*service.BookCopyService](i),
		Catalog: do.MustInvoke[*service.CatalogService](i),
		Search:  do.MustInvoke[*service.SearchService](i),
	}

	handler := api.NewServer(
		storeHandle.Store,
		services,
		do.MustInvoke[*api.Renderer](i),
		do.MustInvoke[*metrics.Metrics](i),
		api.Options{
			CORSOrigins:   cfg.Server.CORSOrigins,
			FormRateLimit: cfg.Web.FormRateLimit,
			FormRateBurst: cfg.Web.FormRateBurst,
		},
		log.Logger,
	)

	return &APIServerHandle{Server: handler}, nil
}

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts it in the background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	handler := do.MustInvoke[*APIServerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
