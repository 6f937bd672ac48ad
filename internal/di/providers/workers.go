package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/agentraghav/local-library/internal/api"
	"github.com/agentraghav/local-library/internal/config"
	"github.com/agentraghav/local-library/internal/logger"
)

// TemplateWatcherHandle runs template hot reload until shutdown.
type TemplateWatcherHandle struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (h *TemplateWatcherHandle) Shutdown() error {
	h.cancel()
	<-h.done
	return nil
}

// ProvideTemplateWatcher reloads templates from TEMPLATE_DIR when they change.
func ProvideTemplateWatcher(i do.Injector) (*TemplateWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	renderer := do.MustInvoke[*api.Renderer](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	h := &TemplateWatcherHandle{cancel: cancel, done: make(chan struct{})}

	if cfg.Web.TemplateDir == "" {
		close(h.done)
		return h, nil
	}

	go func() {
		defer close(h.done)
		if err := renderer.Watch(ctx); err != nil && ctx.Err() == nil {
			log.Error("Template watcher stopped", "error", err)
		}
	}()

	log.Info("Template hot reload enabled", "dir", cfg.Web.TemplateDir)

	return h, nil
}
