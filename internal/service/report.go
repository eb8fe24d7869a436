package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"skitourspots/internal/model"
	"skitourspots/internal/repository"
)

// ReportService handles trip reports for spots.
type ReportService struct {
	repo repository.ReportRepository
}

func NewReportService(repo repository.ReportRepository) *ReportService {
	return &ReportService{repo: repo}
}

func (s *ReportService) ListBySpot(ctx context.Context, spotID int64) ([]model.TripReport, error) {
	return s.repo.ListBySpot(ctx, spotID)
}

// Create validates the request and persists a report authored by userID for
// the spot in the URL path. Spot existence is enforced by the foreign key,
// surfaced as model.ErrSpotNotFound.
func (s *ReportService) Create(ctx context.Context, spotID, userID int64, req *model.CreateReportRequest) (*model.TripReport, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", model.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", model.ErrValidation)
	}
	if strings.TrimSpace(req.Conditions) == "" {
		return nil, fmt.Errorf("%w: conditions are required", model.ErrValidation)
	}

	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be RFC 3339", model.ErrValidation)
	}

	report := &model.TripReport{
		SpotID:      spotID,
		UserID:      userID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        date,
		Conditions:  req.Conditions,
		Images:      pq.StringArray(req.Images),
		GPXTrack:    req.GPXTrack,
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}
