package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/metadata/igdb"
	"github.com/gamedex/gamedex-server/internal/metadata/rawg"
	"github.com/gamedex/gamedex-server/internal/metadata/translate"
)

// RAWGClientHandle wraps the RAWG client with shutdown capability.
type RAWGClientHandle struct {
	*rawg.Client
}

// Shutdown implements do.Shutdownable.
func (h *RAWGClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideRAWGClient provides the RAWG metadata client.
func ProvideRAWGClient(i do.Injector) (*RAWGClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := rawg.New(cfg.RAWG.APIKey, log)
	if !client.Configured() {
		log.Warn("RAWG API key not set, metadata lookups disabled")
	}

	return &RAWGClientHandle{Client: client}, nil
}

// TranslatorHandle wraps the translator with shutdown capability.
type TranslatorHandle struct {
	*translate.Translator
}

// Shutdown implements do.Shutdownable.
func (h *TranslatorHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideTranslator provides the description translator.
func ProvideTranslator(i do.Injector) (*TranslatorHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return &TranslatorHandle{Translator: translate.New(cfg.RAWG.Translate, log)}, nil
}

// IGDBClientHandle wraps the IGDB client with shutdown capability.
type IGDBClientHandle struct {
	*igdb.Client
}

// Shutdown implements do.Shutdownable.
func (h *IGDBClientHandle) Shutdown() error {
	h.Close()
	return nil
}

// ProvideIGDBClient provides the IGDB cover client.
func ProvideIGDBClient(i do.Injector) (*IGDBClientHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := igdb.New(context.Background(), cfg.IGDB.ClientID, cfg.IGDB.ClientSecret, log)
	if !client.Configured() {
		log.Warn("IGDB credentials not set, cover fetching disabled")
	}

	return &IGDBClientHandle{Client: client}, nil
}
