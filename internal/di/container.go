// Package di provides dependency injection configuration for the Gamedex server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/gamedex/gamedex-server/internal/catalog"
	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/di/providers"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/media/covers"
	"github.com/gamedex/gamedex-server/internal/service"
	"github.com/gamedex/gamedex-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCoverStorage)
	do.Provide(injector, providers.ProvideCoverDownloader)

	// Catalog layer
	do.Provide(injector, providers.ProvideLibrary)
	do.Provide(injector, providers.ProvideCatalogWatcher)

	// Upstream clients
	do.Provide(injector, providers.ProvideRAWGClient)
	do.Provide(injector, providers.ProvideTranslator)
	do.Provide(injector, providers.ProvideIGDBClient)

	// Business services
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideMetadataService)
	do.Provide(injector, providers.ProvideCoverService)
	do.Provide(injector, providers.ProvideReportService)
	do.Provide(injector, providers.ProvideInstanceService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services by triggering their lazy construction.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.CoverStorage](injector)
	_ = do.MustInvoke[*covers.Downloader](injector)

	_ = do.MustInvoke[*catalog.Library](injector)

	_ = do.MustInvoke[*providers.RAWGClientHandle](injector)
	_ = do.MustInvoke[*providers.TranslatorHandle](injector)
	_ = do.MustInvoke[*providers.IGDBClientHandle](injector)

	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*service.MetadataService](injector)
	_ = do.MustInvoke[*service.CoverService](injector)
	_ = do.MustInvoke[*service.ReportService](injector)
	_ = do.MustInvoke[*service.InstanceService](injector)

	// The watcher depends on the catalog service for reloads, so it comes up
	// after the business services.
	_ = do.MustInvoke[*providers.CatalogWatcherHandle](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
