package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"

	"skitourspots/internal/model"
)

// memoryStore is the map-backed gateway implementation. It upholds the same
// constraint semantics as the Postgres gateway (uniqueness on email,
// username and the favorite/follow pairs, foreign-key existence for trip
// reports) so service and handler tests exercise identical error paths.
type memoryStore struct {
	mu sync.Mutex

	users    map[int64]model.User
	spots    map[int64]model.Spot
	reports  map[int64]model.TripReport
	sessions map[string]model.Session

	favorites []model.FavoriteSpot
	follows   []model.UserFollow

	nextUserID   int64
	nextSpotID   int64
	nextReportID int64
}

// NewMemoryStore builds an in-memory gateway, selected at startup with
// STORAGE_BACKEND=memory and used directly by tests.
func NewMemoryStore() *Store {
	m := &memoryStore{
		users:        make(map[int64]model.User),
		spots:        make(map[int64]model.Spot),
		reports:      make(map[int64]model.TripReport),
		sessions:     make(map[string]model.Session),
		nextUserID:   1,
		nextSpotID:   1,
		nextReportID: 1,
	}
	return &Store{
		Users:     (*memoryUsers)(m),
		Spots:     (*memorySpots)(m),
		Reports:   (*memoryReports)(m),
		Favorites: (*memoryFavorites)(m),
		Follows:   (*memoryFollows)(m),
		Sessions:  (*memorySessions)(m),
	}
}

// --- users ---

type memoryUsers memoryStore

func (m *memoryUsers) Create(ctx context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.ErrDuplicateEmail
		}
	}
	for _, existing := range m.users {
		if existing.Username == u.Username {
			return model.ErrDuplicateUsername
		}
	}

	u.ID = m.nextUserID
	m.nextUserID++
	u.CreatedAt = time.Now()
	m.users[u.ID] = *u
	return nil
}

func (m *memoryUsers) GetByID(ctx context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (m *memoryUsers) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (m *memoryUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (m *memoryUsers) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := m.GetByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// --- spots ---

type memorySpots memoryStore

func (m *memorySpots) List(ctx context.Context) ([]model.Spot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	spots := make([]model.Spot, 0, len(m.spots))
	for _, s := range m.spots {
		spots = append(spots, s)
	}
	sortSpotsNewestFirst(spots)
	return spots, nil
}

func (m *memorySpots) GetByID(ctx context.Context, id int64) (*model.Spot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.spots[id]
	if !ok {
		return nil, model.ErrSpotNotFound
	}
	return &s, nil
}

func (m *memorySpots) Create(ctx context.Context, s *model.Spot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[s.UserID]; !ok {
		return model.ErrUserNotFound
	}

	s.ID = m.nextSpotID
	m.nextSpotID++
	s.CreatedAt = time.Now()
	if s.Images == nil {
		s.Images = pq.StringArray{}
	}
	m.spots[s.ID] = *s
	return nil
}

func (m *memorySpots) ListByUser(ctx context.Context, userID int64) ([]model.Spot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	spots := []model.Spot{}
	for _, s := range m.spots {
		if s.UserID == userID {
			spots = append(spots, s)
		}
	}
	sortSpotsNewestFirst(spots)
	return spots, nil
}

// --- trip reports ---

type memoryReports memoryStore

func (m *memoryReports) ListBySpot(ctx context.Context, spotID int64) ([]model.TripReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reports := []model.TripReport{}
	for _, r := range m.reports {
		if r.SpotID == spotID {
			reports = append(reports, r)
		}
	}
	sortReportsNewestFirst(reports)
	return reports, nil
}

func (m *memoryReports) Create(ctx context.Context, r *model.TripReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Same contract as the foreign key in Postgres.
	if _, ok := m.spots[r.SpotID]; !ok {
		return model.ErrSpotNotFound
	}

	r.ID = m.nextReportID
	m.nextReportID++
	r.CreatedAt = time.Now()
	if r.Images == nil {
		r.Images = pq.StringArray{}
	}
	m.reports[r.ID] = *r
	return nil
}

func (m *memoryReports) ListByUser(ctx context.Context, userID int64) ([]model.TripReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	reports := []model.TripReport{}
	for _, r := range m.reports {
		if r.UserID == userID {
			reports = append(reports, r)
		}
	}
	sortReportsNewestFirst(reports)
	return reports, nil
}

// --- favorites ---

type memoryFavorites memoryStore

func (m *memoryFavorites) Add(ctx context.Context, userID, spotID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.spots[spotID]; !ok {
		return false, model.ErrSpotNotFound
	}
	for _, f := range m.favorites {
		if f.UserID == userID && f.SpotID == spotID {
			return false, nil
		}
	}
	m.favorites = append(m.favorites, model.FavoriteSpot{
		UserID:    userID,
		SpotID:    spotID,
		CreatedAt: time.Now(),
	})
	return true, nil
}

func (m *memoryFavorites) Remove(ctx context.Context, userID, spotID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.favorites {
		if f.UserID == userID && f.SpotID == spotID {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryFavorites) ListSpotsByUser(ctx context.Context, userID int64) ([]model.Spot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	spots := []model.Spot{}
	for i := len(m.favorites) - 1; i >= 0; i-- {
		f := m.favorites[i]
		if f.UserID != userID {
			continue
		}
		if s, ok := m.spots[f.SpotID]; ok {
			spots = append(spots, s)
		}
	}
	return spots, nil
}

// --- follows ---

type memoryFollows memoryStore

func (m *memoryFollows) Create(ctx context.Context, followerID, followedID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[followedID]; !ok {
		return false, model.ErrUserNotFound
	}
	for _, f := range m.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			return false, nil
		}
	}
	m.follows = append(m.follows, model.UserFollow{
		FollowerID: followerID,
		FollowedID: followedID,
		CreatedAt:  time.Now(),
	})
	return true, nil
}

func (m *memoryFollows) Delete(ctx context.Context, followerID, followedID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, f := range m.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID {
			m.follows = append(m.follows[:i], m.follows[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *memoryFollows) ListFollowing(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []model.PublicUser{}
	for i := len(m.follows) - 1; i >= 0; i-- {
		f := m.follows[i]
		if f.FollowerID != userID {
			continue
		}
		if u, ok := m.users[f.FollowedID]; ok {
			users = append(users, *u.Public())
		}
	}
	return users, nil
}

func (m *memoryFollows) ListFollowers(ctx context.Context, userID int64) ([]model.PublicUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []model.PublicUser{}
	for i := len(m.follows) - 1; i >= 0; i-- {
		f := m.follows[i]
		if f.FollowedID != userID {
			continue
		}
		if u, ok := m.users[f.FollowerID]; ok {
			users = append(users, *u.Public())
		}
	}
	return users, nil
}

// --- sessions ---

type memorySessions memoryStore

func (m *memorySessions) Create(ctx context.Context, s *model.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.CreatedAt = time.Now()
	m.sessions[s.TokenHash] = *s
	return nil
}

func (m *memorySessions) FindByTokenHash(ctx context.Context, tokenHash string) (*model.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[tokenHash]
	if !ok || s.Expired() {
		return nil, model.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memorySessions) Delete(ctx context.Context, tokenHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[tokenHash]; !ok {
		return false, nil
	}
	delete(m.sessions, tokenHash)
	return true, nil
}

func (m *memorySessions) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed int64
	for hash, s := range m.sessions {
		if s.ExpiresAt.Before(cutoff) {
			delete(m.sessions, hash)
			removed++
		}
	}
	return removed, nil
}

// --- ordering helpers ---

func sortSpotsNewestFirst(spots []model.Spot) {
	sort.Slice(spots, func(i, j int) bool {
		if spots[i].CreatedAt.Equal(spots[j].CreatedAt) {
			return spots[i].ID > spots[j].ID
		}
		return spots[i].CreatedAt.After(spots[j].CreatedAt)
	})
}

func sortReportsNewestFirst(reports []model.TripReport) {
	sort.Slice(reports, func(i, j int) bool {
		if reports[i].Date.Equal(reports[j].Date) {
			return reports[i].ID > reports[j].ID
		}
		return reports[i].Date.After(reports[j].Date)
	})
}
