// Command covers pre-fetches cover art for every game in the catalog, so a
// fresh install can come up with warm cover storage instead of hitting IGDB
// on first page load.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gamedex/gamedex-server/internal/catalog"
	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/media/covers"
	"github.com/gamedex/gamedex-server/internal/media/images"
	"github.com/gamedex/gamedex-server/internal/metadata/igdb"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "covers: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	if cfg.IGDB.ClientID == "" || cfg.IGDB.ClientSecret == "" {
		return fmt.Errorf("IGDB credentials are required (set IGDB_CLIENT_ID and IGDB_CLIENT_SECRET)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	library, err := catalog.NewLibrary(cfg.Catalog.Path, log.Logger)
	if err != nil {
		return err
	}

	storage, err := images.NewStorage(cfg.CoversPath())
	if err != nil {
		return err
	}
	downloader := covers.NewDownloader(storage, log)

	client := igdb.New(ctx, cfg.IGDB.ClientID, cfg.IGDB.ClientSecret, log)
	defer client.Close()

	games := library.Snapshot().Games
	log.Info("Fetching covers", "games", len(games), "path", cfg.CoversPath())

	var fetched, skipped, failed int
	for i := range games {
		game := &games[i]

		if ctx.Err() != nil {
			log.Warn("Interrupted", "fetched", fetched, "skipped", skipped, "failed", failed)
			return nil
		}

		if storage.Exists(game.ID) {
			skipped++
			continue
		}

		data, _, err := client.FetchCover(ctx, game.Name)
		if err != nil {
			log.WithError(err).Warn("Cover fetch failed", "game", game.Name)
			failed++
			continue
		}

		if result := downloader.Store(game.ID, data, "igdb"); result.Error != nil {
			log.WithError(result.Error).Warn("Cover store failed", "game", game.Name)
			failed++
			continue
		}

		log.Info("Cover stored", "game", game.Name, "bytes", len(data))
		fetched++
	}

	log.Info("Done", "fetched", fetched, "skipped", skipped, "failed", failed)
	return nil
}
