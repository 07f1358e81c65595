package providers

import (
	"github.com/samber/do/v2"

	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/media/covers"
	"github.com/gamedex/gamedex-server/internal/media/images"
)

// CoverStorage is the on-disk image store for game covers.
type CoverStorage struct {
	*images.Storage
}

// ProvideCoverStorage provides the cover image storage.
func ProvideCoverStorage(i do.Injector) (*CoverStorage, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	storage, err := images.NewStorage(cfg.CoversPath())
	if err != nil {
		return nil, err
	}

	log.Info("Cover storage initialized", "path", cfg.CoversPath())

	return &CoverStorage{Storage: storage}, nil
}

// ProvideCoverDownloader provides the cover download pipeline.
func ProvideCoverDownloader(i do.Injector) (*covers.Downloader, error) {
	storage := do.MustInvoke[*CoverStorage](i)
	log := do.MustInvoke[*logger.Logger](i)

	return covers.NewDownloader(storage.Storage, log), nil
}
