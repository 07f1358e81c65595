package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gamedex/gamedex-server/internal/config"
	"github.com/gamedex/gamedex-server/internal/domain"
	"github.com/gamedex/gamedex-server/internal/logger"
	"github.com/gamedex/gamedex-server/internal/store/sqlite"
)

// Version is the server version, overridden at build time via
// -ldflags "-X .../internal/service.Version=v1.2.3".
var Version = "dev"

const instanceIDKey = "instance_id"

// InstanceService exposes the identity of this server installation.
type InstanceService struct {
	store     *sqlite.Store
	catalog   *CatalogService
	config    *config.Config
	logger    *logger.Logger
	startedAt time.Time
}

// NewInstanceService creates a new instance service.
func NewInstanceService(store *sqlite.Store, catalogSvc *CatalogService, cfg *config.Config, log *logger.Logger) *InstanceService {
	return &InstanceService{
		store:     store,
		catalog:   catalogSvc,
		config:    cfg,
		logger:    log,
		startedAt: time.Now().UTC(),
	}
}

// Get returns the instance description, generating and persisting an
// instance ID on first call.
func (s *InstanceService) Get(ctx context.Context) (*domain.Instance, error) {
	instanceID, err := s.ensureInstanceID(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Instance{
		ID:          instanceID,
		Name:        s.config.Server.Name,
		Version:     Version,
		Environment: s.config.App.Environment,
		GameCount:   s.catalog.GameCount(),
		StartedAt:   s.startedAt,
	}, nil
}

// ensureInstanceID loads the persisted instance ID, creating one on first boot.
func (s *InstanceService) ensureInstanceID(ctx context.Context) (string, error) {
	instanceID, err := s.store.GetInstanceKey(ctx, instanceIDKey)
	if err == nil {
		return instanceID, nil
	}
	if !errors.Is(err, sqlite.ErrNotFound) {
		return "", fmt.Errorf("load instance ID: %w", err)
	}

	instanceID = uuid.NewString()
	if err := s.store.SetInstanceKey(ctx, instanceIDKey, instanceID); err != nil {
		return "", fmt.Errorf("persist instance ID: %w", err)
	}

	s.logger.Info("generated instance ID", "instance_id", instanceID)
	return instanceID, nil
}
