package providers

import (
	"github.com/samber/do/v2"

	"github.com/gamedex/gamedex-server/internal/catalog"
	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/media/covers"
	"github.com/gamedex/gamedex-server/internal/service"
	"github.com/gamedex/gamedex-server/internal/validation"
)

// ProvideCatalogService provides the catalog query service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	library := do.MustInvoke[*catalog.Library](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(library, log), nil
}

// ProvideMetadataService provides the RAWG metadata service.
func ProvideMetadataService(i do.Injector) (*service.MetadataService, error) {
	rawgHandle := do.MustInvoke[*RAWGClientHandle](i)
	translatorHandle := do.MustInvoke[*TranslatorHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMetadataService(rawgHandle.Client, translatorHandle.Translator, log), nil
}

// ProvideCoverService provides the cover fetch-and-cache service.
func ProvideCoverService(i do.Injector) (*service.CoverService, error) {
	storage := do.MustInvoke[*CoverStorage](i)
	downloader := do.MustInvoke[*covers.Downloader](i)
	igdbHandle := do.MustInvoke[*IGDBClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCoverService(storage.Storage, downloader, igdbHandle.Client, log), nil
}

// ProvideReportService provides the error report service.
func ProvideReportService(i do.Injector) (*service.ReportService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewReportService(storeHandle.Store, validator, cfg.Report.WebhookURL, log), nil
}

// ProvideInstanceService provides the instance identity service.
func ProvideInstanceService(i do.Injector) (*service.InstanceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	catalogService := do.MustInvoke[*service.CatalogService](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInstanceService(storeHandle.Store, catalogService, cfg, log), nil
}
