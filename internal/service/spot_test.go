package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"skitourspots/internal/model"
)

type mockSpotRepository struct {
	listFn       func(ctx context.Context) ([]model.Spot, error)
	getByIDFn    func(ctx context.Context, id int64) (*model.Spot, error)
	createFn     func(ctx context.Context, spot *model.Spot) error
	listByUserFn func(ctx context.Context, userID int64) ([]model.Spot, error)

	createCalls []*model.Spot
}

func (m *mockSpotRepository) List(ctx context.Context) ([]model.Spot, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockSpotRepository) GetByID(ctx context.Context, id int64) (*model.Spot, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrSpotNotFound
}

func (m *mockSpotRepository) Create(ctx context.Context, spot *model.Spot) error {
	m.createCalls = append(m.createCalls, spot)
	if m.createFn != nil {
		return m.createFn(ctx, spot)
	}
	return nil
}

func (m *mockSpotRepository) ListByUser(ctx context.Context, userID int64) ([]model.Spot, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}

type mockSpotCache struct {
	getCatalogFn func(ctx context.Context) ([]model.Spot, bool, error)
	setCalls     int
	invalidates  int
}

func (m *mockSpotCache) GetCatalog(ctx context.Context) ([]model.Spot, bool, error) {
	if m.getCatalogFn != nil {
		return m.getCatalogFn(ctx)
	}
	return nil, false, nil
}

func (m *mockSpotCache) SetCatalog(ctx context.Context, spots []model.Spot) error {
	m.setCalls++
	return nil
}

func (m *mockSpotCache) Invalidate(ctx context.Context) error {
	m.invalidates++
	return nil
}

func validSpotRequest() *model.CreateSpotRequest {
	return &model.CreateSpotRequest{
		Name:        "Mont Blanc Couloir",
		Description: "Steep north-facing couloir with a long approach.",
		Difficulty:  model.DifficultyExpert,
		Elevation:   3800,
		Location:    model.Location{Lat: 45.8326, Lng: 6.8652},
		Access:      "Park at Les Houches, skin up the valley trail.",
		BestSeason:  model.SeasonSpring,
	}
}

func TestSpotService_Create_OwnerFromSession(t *testing.T) {
	mockRepo := &mockSpotRepository{
		createFn: func(ctx context.Context, spot *model.Spot) error {
			spot.ID = 1
			return nil
		},
	}
	svc := NewSpotService(mockRepo, nil, zap.NewNop())

	spot, err := svc.Create(context.Background(), 42, validSpotRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spot.UserID != 42 {
		t.Errorf("owner = %d, want the session user 42", spot.UserID)
	}
}

func TestSpotService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *model.CreateSpotRequest)
	}{
		{name: "blank name", mutate: func(r *model.CreateSpotRequest) { r.Name = "   " }},
		{name: "blank description", mutate: func(r *model.CreateSpotRequest) { r.Description = "" }},
		{name: "unknown difficulty", mutate: func(r *model.CreateSpotRequest) { r.Difficulty = "vertical" }},
		{name: "negative elevation", mutate: func(r *model.CreateSpotRequest) { r.Elevation = -10 }},
		{name: "latitude out of range", mutate: func(r *model.CreateSpotRequest) { r.Location.Lat = 91 }},
		{name: "longitude out of range", mutate: func(r *model.CreateSpotRequest) { r.Location.Lng = -181 }},
		{name: "blank access", mutate: func(r *model.CreateSpotRequest) { r.Access = "" }},
		{name: "unknown season", mutate: func(r *model.CreateSpotRequest) { r.BestSeason = "monsoon" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &mockSpotRepository{}
			svc := NewSpotService(mockRepo, nil, zap.NewNop())

			req := validSpotRequest()
			tt.mutate(req)

			_, err := svc.Create(context.Background(), 1, req)
			if !errors.Is(err, model.ErrValidation) {
				t.Errorf("error = %v, want %v", err, model.ErrValidation)
			}
			if len(mockRepo.createCalls) != 0 {
				t.Error("Create should not reach the store on validation failure")
			}
		})
	}
}

func TestSpotService_List_CacheReadThrough(t *testing.T) {
	cached := []model.Spot{{ID: 1, Name: "Cached Spot"}}

	t.Run("cache hit skips the store", func(t *testing.T) {
		mockRepo := &mockSpotRepository{
			listFn: func(ctx context.Context) ([]model.Spot, error) {
				t.Error("store should not be queried on a cache hit")
				return nil, nil
			},
		}
		spotCache := &mockSpotCache{
			getCatalogFn: func(ctx context.Context) ([]model.Spot, bool, error) {
				return cached, true, nil
			},
		}
		svc := NewSpotService(mockRepo, spotCache, zap.NewNop())

		spots, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(spots) != 1 || spots[0].Name != "Cached Spot" {
			t.Errorf("got %v, want the cached catalog", spots)
		}
	})

	t.Run("cache miss fills the cache", func(t *testing.T) {
		mockRepo := &mockSpotRepository{
			listFn: func(ctx context.Context) ([]model.Spot, error) {
				return []model.Spot{{ID: 2, Name: "From Store"}}, nil
			},
		}
		spotCache := &mockSpotCache{}
		svc := NewSpotService(mockRepo, spotCache, zap.NewNop())

		spots, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(spots) != 1 || spots[0].Name != "From Store" {
			t.Errorf("got %v, want the stored catalog", spots)
		}
		if spotCache.setCalls != 1 {
			t.Errorf("SetCatalog called %d times, want 1", spotCache.setCalls)
		}
	})

	t.Run("cache error falls through to the store", func(t *testing.T) {
		mockRepo := &mockSpotRepository{
			listFn: func(ctx context.Context) ([]model.Spot, error) {
				return []model.Spot{{ID: 3}}, nil
			},
		}
		spotCache := &mockSpotCache{
			getCatalogFn: func(ctx context.Context) ([]model.Spot, bool, error) {
				return nil, false, errors.New("redis down")
			},
		}
		svc := NewSpotService(mockRepo, spotCache, zap.NewNop())

		spots, err := svc.List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(spots) != 1 {
			t.Errorf("got %d spots, want 1", len(spots))
		}
	})
}

func TestSpotService_Create_InvalidatesCache(t *testing.T) {
	mockRepo := &mockSpotRepository{}
	spotCache := &mockSpotCache{}
	svc := NewSpotService(mockRepo, spotCache, zap.NewNop())

	if _, err := svc.Create(context.Background(), 1, validSpotRequest()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spotCache.invalidates != 1 {
		t.Errorf("Invalidate called %d times, want 1", spotCache.invalidates)
	}
}
