package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/gamedex/gamedex-server/internal/catalog"
	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/service"
	"github.com/gamedex/gamedex-server/internal/watcher"
)

// ProvideLibrary provides the loaded game catalog.
func ProvideLibrary(i do.Injector) (*catalog.Library, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	library, err := catalog.NewLibrary(cfg.Catalog.Path, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog loaded",
		"path", cfg.Catalog.Path,
		"games", len(library.Snapshot().Games),
	)

	return library, nil
}

// CatalogWatcherHandle wraps the catalog file watcher with shutdown capability.
// The watcher is nil when file watching is disabled.
type CatalogWatcherHandle struct {
	*watcher.FileWatcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *CatalogWatcherHandle) Shutdown() error {
	if h.FileWatcher == nil {
		return nil
	}
	h.cancel()
	return h.Stop()
}

// ProvideCatalogWatcher provides the catalog file watcher. Each settled write
// to the catalog file triggers a reload into a fresh snapshot.
func ProvideCatalogWatcher(i do.Injector) (*CatalogWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Catalog.WatchFile {
		log.Debug("Catalog watching disabled")
		return &CatalogWatcherHandle{}, nil
	}

	catalogService := do.MustInvoke[*service.CatalogService](i)

	w, err := watcher.New(cfg.Catalog.Path, func() {
		if err := catalogService.Reload(); err != nil {
			log.WithError(err).Error("Catalog reload failed, keeping previous snapshot")
			return
		}
		log.Info("Catalog reloaded", "games", catalogService.GameCount())
	}, log)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := w.Start(ctx); err != nil {
			log.WithError(err).Error("Catalog watcher stopped")
		}
	}()

	log.Info("Watching catalog file", "path", cfg.Catalog.Path)

	return &CatalogWatcherHandle{FileWatcher: w, cancel: cancel}, nil
}
