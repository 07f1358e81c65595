package service

import (
	"context"
	"errors"

	domainerrors "github.com/gamedex/gamedex-server/internal/errors"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/metadata/rawg"
	"github.com/gamedex/gamedex-server/internal/metadata/translate"
)

// MetadataService fetches game metadata from RAWG, optionally translating
// descriptions to Brazilian Portuguese.
type MetadataService struct {
	rawg       *rawg.Client
	translator *translate.Translator
	logger     *logger.Logger
}

// NewMetadataService creates a new metadata service.
func NewMetadataService(client *rawg.Client, translator *translate.Translator, log *logger.Logger) *MetadataService {
	return &MetadataService{
		rawg:       client,
		translator: translator,
		logger:     log,
	}
}

// Configured reports whether a RAWG API key is present.
func (s *MetadataService) Configured() bool {
	return s.rawg.Configured()
}

// Details returns RAWG details for a game name. The description is translated
// when translation is enabled; translation failures keep the original text.
func (s *MetadataService) Details(ctx context.Context, gameName string) (*rawg.GameDetails, error) {
	details, err := s.rawg.Details(ctx, gameName)
	if err != nil {
		return nil, mapRAWGError(err, gameName)
	}

	if details.DescriptionRaw != "" {
		details.DescriptionRaw = s.translator.Translate(ctx, details.DescriptionRaw)
	}

	return details, nil
}

// Screenshots returns RAWG screenshots for a game name.
func (s *MetadataService) Screenshots(ctx context.Context, gameName string) ([]rawg.Screenshot, error) {
	shots, err := s.rawg.Screenshots(ctx, gameName)
	if err != nil {
		return nil, mapRAWGError(err, gameName)
	}
	return shots, nil
}

// Movies returns RAWG trailers for a game name.
func (s *MetadataService) Movies(ctx context.Context, gameName string) ([]rawg.Movie, error) {
	movies, err := s.rawg.Movies(ctx, gameName)
	if err != nil {
		return nil, mapRAWGError(err, gameName)
	}
	return movies, nil
}

// mapRAWGError converts RAWG client sentinels into domain errors.
func mapRAWGError(err error, gameName string) error {
	switch {
	case errors.Is(err, rawg.ErrNotConfigured):
		return domainerrors.NotConfigured("RAWG API key is not configured").WithCause(err)
	case errors.Is(err, rawg.ErrNotFound):
		return domainerrors.NotFoundf("no RAWG entry for %q", gameName).WithCause(err)
	case errors.Is(err, rawg.ErrRateLimited), errors.Is(err, rawg.ErrServer):
		return domainerrors.Upstream("RAWG is unavailable").WithCause(err)
	default:
		return domainerrors.Wrapf(err, domainerrors.CodeUpstream, "RAWG lookup failed for %q", gameName)
	}
}
