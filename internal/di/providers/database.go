package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/agentraghav/local-library/internal/config"
	"github.com/agentraghav/local-library/internal/logger"
	"github.com/agentraghav/local-library/internal/store"
	"github.com/agentraghav/local-library/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the backend selected by STORAGE_DRIVER.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	st, path, err := OpenStore(cfg.Storage.Driver, cfg.Storage.DataPath, log)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "driver", cfg.Storage.Driver, "path", path)

	return &StoreHandle{Store: st}, nil
}

// OpenStore opens a catalog store for driver under dataPath and returns the
// database path it used.
func OpenStore(driver, dataPath string, log *logger.Logger) (store.Store, string, error) {
	switch driver {
	case config.DriverSQLite:
		path := filepath.Join(dataPath, "library.db")
		st, err := sqlite.Open(path, log.Logger)
		return st, path, err
	case config.DriverBadger:
		path := filepath.Join(dataPath, "db")
		st, err := store.NewBadger(path, log.Logger)
		return st, path, err
	default:
		return nil, "", fmt.Errorf("unknown storage driver %q", driver)
	}
}
