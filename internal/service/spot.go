package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"skitourspots/internal/cache"
	"skitourspots/internal/model"
	"skitourspots/internal/repository"
)

// SpotService handles the spot catalog. The redis cache is optional: when
// absent or failing, reads and writes fall through to the database.
type SpotService struct {
	repo   repository.SpotRepository
	cache  cache.SpotCache
	logger *zap.Logger
}

func NewSpotService(repo repository.SpotRepository, spotCache cache.SpotCache, logger *zap.Logger) *SpotService {
	return &SpotService{
		repo:   repo,
		cache:  spotCache,
		logger: logger,
	}
}

// List returns the full catalog, read-through the cache when configured.
func (s *SpotService) List(ctx context.Context) ([]model.Spot, error) {
	if s.cache != nil {
		spots, found, err := s.cache.GetCatalog(ctx)
		if err != nil {
			s.logger.Warn("spot catalog cache read failed", zap.Error(err))
		} else if found {
			return spots, nil
		}
	}

	spots, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetCatalog(ctx, spots); err != nil {
			s.logger.Warn("spot catalog cache write failed", zap.Error(err))
		}
	}

	return spots, nil
}

func (s *SpotService) GetByID(ctx context.Context, id int64) (*model.Spot, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates the request and persists a spot owned by userID. The
// owner always comes from the session, never the request body.
func (s *SpotService) Create(ctx context.Context, userID int64, req *model.CreateSpotRequest) (*model.Spot, error) {
	if err := validateSpot(req); err != nil {
		return nil, err
	}

	spot := &model.Spot{
		UserID:      userID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Difficulty:  req.Difficulty,
		Elevation:   req.Elevation,
		Location:    req.Location,
		Access:      req.Access,
		BestSeason:  req.BestSeason,
		Images:      pq.StringArray(req.Images),
	}
	if err := s.repo.Create(ctx, spot); err != nil {
		return nil, fmt.Errorf("failed to create spot: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.logger.Warn("spot catalog cache invalidation failed", zap.Error(err))
		}
	}

	return spot, nil
}

func validateSpot(req *model.CreateSpotRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", model.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("%w: description is required", model.ErrValidation)
	}
	if !model.ValidDifficulty(req.Difficulty) {
		return fmt.Errorf("%w: difficulty must be easy, intermediate, advanced or expert", model.ErrValidation)
	}
	if req.Elevation < 0 {
		return fmt.Errorf("%w: elevation must not be negative", model.ErrValidation)
	}
	if !req.Location.Valid() {
		return fmt.Errorf("%w: location out of range", model.ErrValidation)
	}
	if strings.TrimSpace(req.Access) == "" {
		return fmt.Errorf("%w: access notes are required", model.ErrValidation)
	}
	if !model.ValidSeason(req.BestSeason) {
		return fmt.Errorf("%w: best_season must be winter, spring, summer or fall", model.ErrValidation)
	}
	return nil
}
