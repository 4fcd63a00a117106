package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/mymy770/activelaser/internal/domain"
	configRepo "github.com/mymy770/activelaser/internal/infra/storage/branchconfig"
	"github.com/mymy770/activelaser/internal/service/config/models"
)

// Service manages per-branch scheduling configuration: the slot grid and the
// bookable rooms. A branch without stored configuration reads as the stock
// venue layout.
type Service struct {
	configRepo ConfigRepository
	txManager  TransactionManager
	logger     Logger
}

// NewService creates a config service.
func NewService(configRepo ConfigRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		txManager:  txManager,
		logger:     logger,
	}
}

// GetByBranchID fetches a branch configuration, falling back to the defaults
// when the branch was never configured.
func (s *Service) GetByBranchID(ctx context.Context, branchID int64) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("GetByBranchID: fetching config for branch=%d", branchID)

	if branchID <= 0 {
		return nil, fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}

	cfg, err := s.configRepo.GetByBranchID(ctx, branchID)
	if errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Info("GetByBranchID: branch=%d has no stored config, returning defaults", branchID)
		return models.FromDomainConfig(domain.DefaultBranchScheduleConfig(branchID), true), nil
	}
	if err != nil {
		s.logger.Error("GetByBranchID: repository error for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: GetByBranchID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg, false), nil
}

// Update replaces a branch configuration wholesale, rooms included. The grid
// update and the room replacement run in one transaction.
func (s *Service) Update(ctx context.Context, req *models.UpdateScheduleConfigRequest) (*models.ScheduleConfigResponse, error) {
	s.logger.Info("Update: updating config for branch=%d", req.BranchID)

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for branch=%d: %v", req.BranchID, err)
		return nil, err
	}

	cfg := req.ToDomainConfig()

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		stored, err := s.configRepo.Upsert(txCtx, cfg)
		if err != nil {
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		cfg = stored
		return nil
	})
	if err != nil {
		s.logger.Error("Update: failed for branch=%d: %v", req.BranchID, err)
		return nil, err
	}

	s.logger.Info("Update: updated config for branch=%d", req.BranchID)
	return models.FromDomainConfig(cfg, false), nil
}

// validateUpdate checks the replacement configuration. Room ids must be
// unique and positive; the allocator scans them in ascending id order.
func validateUpdate(req *models.UpdateScheduleConfigRequest) error {
	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branch id must be positive", ErrInvalidInput)
	}
	if req.TotalSlots <= 0 {
		return fmt.Errorf("%w: total slots must be positive", ErrInvalidInput)
	}
	if req.PlayersPerSlot <= 0 {
		return fmt.Errorf("%w: players per slot must be positive", ErrInvalidInput)
	}

	seen := make(map[int]bool, len(req.Rooms))
	for _, room := range req.Rooms {
		if room.ID <= 0 {
			return fmt.Errorf("%w: room id must be positive", ErrInvalidInput)
		}
		if seen[room.ID] {
			return fmt.Errorf("%w: duplicate room id %d", ErrInvalidInput, room.ID)
		}
		seen[room.ID] = true
		if room.Name == "" {
			return fmt.Errorf("%w: room %d needs a name", ErrInvalidInput, room.ID)
		}
		if room.MaxCapacity <= 0 {
			return fmt.Errorf("%w: room %d capacity must be positive", ErrInvalidInput, room.ID)
		}
	}

	return nil
}
