package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamedex/gamedex-server/internal/domain"
	domainerrors "github.com/gamedex/gamedex-server/internal/errors"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/media/covers"
	"github.com/gamedex/gamedex-server/internal/media/images"
	"github.com/gamedex/gamedex-server/internal/metadata/igdb"
)

// CoverInfo describes a game's cover for clients that render placeholders
// before the image itself loads.
type CoverInfo struct {
	GameID   string `json:"game_id"`
	URL      string `json:"url"`
	BlurHash string `json:"blur_hash,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	ETag     string `json:"etag"`
	Source   string `json:"source"`
}

// CoverService serves game covers: locally stored files first, the IGDB
// proxy as fallback. Fetched covers are cached on disk so each game hits
// IGDB at most once.
type CoverService struct {
	storage    *images.Storage
	downloader *covers.Downloader
	igdb       *igdb.Client
	logger     *logger.Logger
}

// NewCoverService creates a new cover service.
func NewCoverService(storage *images.Storage, downloader *covers.Downloader, client *igdb.Client, log *logger.Logger) *CoverService {
	return &CoverService{
		storage:    storage,
		downloader: downloader,
		igdb:       client,
		logger:     log,
	}
}

// Configured reports whether IGDB credentials are present. Locally stored
// covers are still served when they are not.
func (s *CoverService) Configured() bool {
	return s.igdb.Configured()
}

// Get returns the cover bytes for a game, fetching from IGDB on a local miss.
func (s *CoverService) Get(ctx context.Context, game *domain.Game) ([]byte, string, error) {
	if s.storage.Exists(game.ID) {
		data, err := s.storage.Get(game.ID)
		if err != nil {
			return nil, "", fmt.Errorf("read stored cover: %w", err)
		}
		return data, "image/jpeg", nil
	}

	data, contentType, err := s.fetchAndStore(ctx, game)
	if err != nil {
		return nil, "", err
	}
	return data, contentType, nil
}

// Info returns cover metadata for a game, including a BlurHash placeholder.
// Like Get, it populates the local cache on a miss.
func (s *CoverService) Info(ctx context.Context, game *domain.Game) (*CoverInfo, error) {
	data, _, err := s.Get(ctx, game)
	if err != nil {
		return nil, err
	}

	info := &CoverInfo{
		GameID: game.ID,
		URL:    "/covers/" + game.ID,
		Source: "igdb",
	}

	hash, err := images.ComputeBlurHash(data)
	if err != nil {
		// A cover without a placeholder is still a cover.
		s.logger.WithError(err).Warn("blurhash computation failed", "game_id", game.ID)
	} else {
		info.BlurHash = hash
	}

	if width, height, err := images.Dimensions(data); err == nil {
		info.Width = width
		info.Height = height
	}

	etag, err := s.storage.Hash(game.ID)
	if err != nil {
		return nil, fmt.Errorf("hash cover: %w", err)
	}
	info.ETag = etag

	return info, nil
}

// fetchAndStore downloads a cover from IGDB and caches it locally.
func (s *CoverService) fetchAndStore(ctx context.Context, game *domain.Game) ([]byte, string, error) {
	data, contentType, err := s.igdb.FetchCover(ctx, game.Name)
	if err != nil {
		return nil, "", mapIGDBError(err, game.Name)
	}

	if result := s.downloader.Store(game.ID, data, "igdb"); result.Error != nil {
		// Serving the fetched bytes still works even if caching failed.
		s.logger.WithError(result.Error).Warn("failed to cache cover", "game_id", game.ID)
	}

	return data, contentType, nil
}

// mapIGDBError converts IGDB client sentinels into domain errors.
func mapIGDBError(err error, gameName string) error {
	switch {
	case errors.Is(err, igdb.ErrNotConfigured):
		return domainerrors.NotConfigured("IGDB credentials are not configured").WithCause(err)
	case errors.Is(err, igdb.ErrNotFound):
		return domainerrors.NotFoundf("no cover found for %q", gameName).WithCause(err)
	case errors.Is(err, igdb.ErrRateLimited), errors.Is(err, igdb.ErrServer):
		return domainerrors.Upstream("IGDB is unavailable").WithCause(err)
	default:
		return domainerrors.Wrapf(err, domainerrors.CodeUpstream, "IGDB lookup failed for %q", gameName)
	}
}
