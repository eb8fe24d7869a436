package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"skitourspots/internal/captcha"
	"skitourspots/internal/config"
	"skitourspots/internal/handler"
	"skitourspots/internal/model"
	"skitourspots/internal/repository"
	"skitourspots/internal/service"
)

// newTestRouter assembles the full stack on the memory store, the same way
// Run does without a database.
func newTestRouter(t *testing.T) (http.Handler, *repository.Store) {
	t.Helper()

	cfg := &config.Config{Env: "test"}
	store := repository.NewMemoryStore()

	authService := service.NewAuthService(store.Users, store.Sessions, captcha.StaticVerifier{})
	spotService := service.NewSpotService(store.Spots, nil, zap.NewNop())
	reportService := service.NewReportService(store.Reports)
	favoriteService := service.NewFavoriteService(store.Favorites, store.Spots)
	followService := service.NewFollowService(store.Follows, store.Users)
	userService := service.NewUserService(store)

	router := NewRouter(RouterConfig{
		AuthHandler:     handler.NewAuthHandler(authService, cfg),
		SpotHandler:     handler.NewSpotHandler(spotService),
		ReportHandler:   handler.NewReportHandler(reportService),
		UserHandler:     handler.NewUserHandler(userService),
		FavoriteHandler: handler.NewFavoriteHandler(favoriteService),
		FollowHandler:   handler.NewFollowHandler(followService),
		Authenticator:   authService,
	})
	return router, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == model.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func registerUser(t *testing.T, router http.Handler, username string) *http.Cookie {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/api/auth/register", model.RegisterRequest{
		Email:        username + "@example.com",
		Username:     username,
		Password:     "password123",
		CaptchaToken: "token",
	}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body = %s", username, rec.Code, rec.Body)
	}
	return sessionCookie(t, rec)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body, err)
	}
	return resp.Error.Code
}

func spotRequest(name string) model.CreateSpotRequest {
	return model.CreateSpotRequest{
		Name:        name,
		Description: "Classic north-face line.",
		Difficulty:  model.DifficultyAdvanced,
		Elevation:   3400,
		Location:    model.Location{Lat: 45.91, Lng: 6.92},
		Access:      "Cable car to the mid station, then skin 2h.",
		BestSeason:  model.SeasonSpring,
	}
}

func TestRouter_SpotLifecycle(t *testing.T) {
	router, store := newTestRouter(t)
	alice := registerUser(t, router, "alice")

	// Authenticated creation.
	rec := doJSON(t, router, http.MethodPost, "/api/spots", spotRequest("Mont Blanc Couloir"), alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create spot: status = %d, body = %s", rec.Code, rec.Body)
	}
	var created model.Spot
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode spot: %v", err)
	}
	if created.Name != "Mont Blanc Couloir" {
		t.Errorf("name = %q, want %q", created.Name, "Mont Blanc Couloir")
	}

	// The catalog and single-spot reads are public.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/spots/%d", created.ID), nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("get spot unauthenticated: status = %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/users/alice/spots", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list user spots: status = %d", rec.Code)
	}
	var aliceSpots []model.Spot
	if err := json.Unmarshal(rec.Body.Bytes(), &aliceSpots); err != nil {
		t.Fatalf("decode spots: %v", err)
	}
	if len(aliceSpots) != 1 || aliceSpots[0].ID != created.ID {
		t.Errorf("alice's spots = %v, want the created spot", aliceSpots)
	}

	// Unauthenticated creation is rejected before anything is stored.
	rec = doJSON(t, router, http.MethodPost, "/api/spots", spotRequest("Intruder"), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated create: status = %d, want 401", rec.Code)
	}
	all, err := store.Spots.List(context.Background())
	if err != nil {
		t.Fatalf("list spots: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("catalog has %d spots after rejected create, want 1", len(all))
	}

	// Unknown spot id.
	rec = doJSON(t, router, http.MethodGet, "/api/spots/999", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown spot: status = %d, want 404", rec.Code)
	}
}

func TestRouter_AuthFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := registerUser(t, router, "alice")

	// The fresh session works.
	rec := doJSON(t, router, http.MethodGet, "/api/auth/me", nil, alice)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status = %d, body = %s", rec.Code, rec.Body)
	}
	var me model.PublicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode me: %v", err)
	}
	if me.Username != "alice" {
		t.Errorf("me = %q, want alice", me.Username)
	}

	// Duplicate registrations report the email conflict first.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/register", model.RegisterRequest{
		Email:        "alice@example.com",
		Username:     "alice2",
		Password:     "password123",
		CaptchaToken: "t",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate email: status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "DUPLICATE_EMAIL" {
		t.Errorf("code = %q, want DUPLICATE_EMAIL", code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/auth/register", model.RegisterRequest{
		Email:        "other@example.com",
		Username:     "alice",
		Password:     "password123",
		CaptchaToken: "t",
	}, nil)
	if code := errorCode(t, rec); code != "DUPLICATE_USERNAME" {
		t.Errorf("code = %q, want DUPLICATE_USERNAME", code)
	}

	// Wrong password and unknown email both come back as 401.
	for _, email := range []string{"alice@example.com", "ghost@example.com"} {
		rec = doJSON(t, router, http.MethodPost, "/api/auth/login", model.LoginRequest{
			Email:        email,
			Password:     "wrongpassword",
			CaptchaToken: "t",
		}, nil)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("login %s: status = %d, want 401", email, rec.Code)
		}
		if code := errorCode(t, rec); code != "INVALID_CREDENTIALS" {
			t.Errorf("login %s: code = %q, want INVALID_CREDENTIALS", email, code)
		}
	}

	// Login with correct credentials issues a fresh session.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/login", model.LoginRequest{
		Email:        "alice@example.com",
		Password:     "password123",
		CaptchaToken: "t",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status = %d, body = %s", rec.Code, rec.Body)
	}
	fresh := sessionCookie(t, rec)
	if !fresh.HttpOnly {
		t.Error("session cookie should be httpOnly")
	}

	// Logout invalidates the session; a second logout still succeeds.
	rec = doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, fresh)
	if rec.Code != http.StatusOK {
		t.Errorf("logout: status = %d, want 200", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", nil, fresh)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("me after logout: status = %d, want 401", rec.Code)
	}
	rec = doJSON(t, router, http.MethodPost, "/api/auth/logout", nil, fresh)
	if rec.Code != http.StatusOK {
		t.Errorf("second logout: status = %d, want 200", rec.Code)
	}

	// Forged and missing cookies never pass the middleware.
	forged := &http.Cookie{Name: model.SessionCookieName, Value: "not-a-real-token"}
	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", nil, forged)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("forged cookie: status = %d, want 401", rec.Code)
	}
	rec = doJSON(t, router, http.MethodGet, "/api/auth/me", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no cookie: status = %d, want 401", rec.Code)
	}
}

func TestRouter_ReportFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := registerUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/spots", spotRequest("Wildspitze"), alice)
	var spot model.Spot
	if err := json.Unmarshal(rec.Body.Bytes(), &spot); err != nil {
		t.Fatalf("decode spot: %v", err)
	}

	report := model.CreateReportRequest{
		Title:       "Windboard up high",
		Description: "Top 200m were scoured, good skiing below.",
		Date:        "2026-02-14T08:30:00Z",
		Conditions:  "Wind-affected",
	}

	rec = doJSON(t, router, http.MethodPost, fmt.Sprintf("/api/spots/%d/reports", spot.ID), report, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create report: status = %d, body = %s", rec.Code, rec.Body)
	}

	// A report against a missing spot is a 404, not a validation error.
	rec = doJSON(t, router, http.MethodPost, "/api/spots/999/reports", report, alice)
	if rec.Code != http.StatusNotFound {
		t.Errorf("report to unknown spot: status = %d, want 404", rec.Code)
	}

	// Reading reports is public.
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/spots/%d/reports", spot.ID), nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list reports: status = %d", rec.Code)
	}
	var reports []model.TripReport
	if err := json.Unmarshal(rec.Body.Bytes(), &reports); err != nil {
		t.Fatalf("decode reports: %v", err)
	}
	if len(reports) != 1 || reports[0].Title != report.Title {
		t.Errorf("reports = %v, want the created report", reports)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/users/alice/reports", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("user reports: status = %d", rec.Code)
	}
}

func TestRouter_FavoriteFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := registerUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodPost, "/api/spots", spotRequest("Piz Palu"), alice)
	var spot model.Spot
	if err := json.Unmarshal(rec.Body.Bytes(), &spot); err != nil {
		t.Fatalf("decode spot: %v", err)
	}
	path := fmt.Sprintf("/api/spots/%d/favorite", spot.ID)

	rec = doJSON(t, router, http.MethodPost, path, nil, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("favorite: status = %d, body = %s", rec.Code, rec.Body)
	}

	// Favoriting again is rejected, not absorbed.
	rec = doJSON(t, router, http.MethodPost, path, nil, alice)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate favorite: status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "ALREADY_FAVORITED" {
		t.Errorf("code = %q, want ALREADY_FAVORITED", code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/users/alice/favorites", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list favorites: status = %d", rec.Code)
	}
	var favorites []model.Spot
	if err := json.Unmarshal(rec.Body.Bytes(), &favorites); err != nil {
		t.Fatalf("decode favorites: %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != spot.ID {
		t.Errorf("favorites = %v, want the favorited spot", favorites)
	}

	// Removal succeeds and is idempotent.
	rec = doJSON(t, router, http.MethodDelete, path, nil, alice)
	if rec.Code != http.StatusNoContent {
		t.Errorf("unfavorite: status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, path, nil, alice)
	if rec.Code != http.StatusNoContent {
		t.Errorf("second unfavorite: status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/spots/999/favorite", nil, alice)
	if rec.Code != http.StatusNotFound {
		t.Errorf("favorite unknown spot: status = %d, want 404", rec.Code)
	}
}

func TestRouter_FollowFlow(t *testing.T) {
	router, _ := newTestRouter(t)
	alice := registerUser(t, router, "alice")
	registerUser(t, router, "bob")

	rec := doJSON(t, router, http.MethodPost, "/api/users/bob/follow", nil, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("follow: status = %d, body = %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/users/bob/follow", nil, alice)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate follow: status = %d, want 400", rec.Code)
	}
	if code := errorCode(t, rec); code != "ALREADY_FOLLOWING" {
		t.Errorf("code = %q, want ALREADY_FOLLOWING", code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/users/alice/follow", nil, alice)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("self follow: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, router, http.MethodPost, "/api/users/ghost/follow", nil, alice)
	if rec.Code != http.StatusNotFound {
		t.Errorf("follow unknown user: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/users/alice/following", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("following: status = %d", rec.Code)
	}
	var following []model.PublicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &following); err != nil {
		t.Fatalf("decode following: %v", err)
	}
	if len(following) != 1 || following[0].Username != "bob" {
		t.Errorf("following = %v, want just bob", following)
	}

	rec = doJSON(t, router, http.MethodGet, "/api/users/bob/followers", nil, nil)
	var followers []model.PublicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &followers); err != nil {
		t.Fatalf("decode followers: %v", err)
	}
	if len(followers) != 1 || followers[0].Username != "alice" {
		t.Errorf("followers = %v, want just alice", followers)
	}

	// Unfollow, then unfollow again: both succeed.
	rec = doJSON(t, router, http.MethodDelete, "/api/users/bob/follow", nil, alice)
	if rec.Code != http.StatusNoContent {
		t.Errorf("unfollow: status = %d, want 204", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/users/bob/follow", nil, alice)
	if rec.Code != http.StatusNoContent {
		t.Errorf("second unfollow: status = %d, want 204", rec.Code)
	}
}

func TestRouter_UserProfile(t *testing.T) {
	router, _ := newTestRouter(t)
	registerUser(t, router, "alice")

	rec := doJSON(t, router, http.MethodGet, "/api/users/alice", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: status = %d", rec.Code)
	}
	var profile model.PublicUser
	if err := json.Unmarshal(rec.Body.Bytes(), &profile); err != nil {
		t.Fatalf("decode profile: %v", err)
	}
	if profile.Username != "alice" {
		t.Errorf("username = %q, want alice", profile.Username)
	}

	// Password material never leaks through the profile endpoint.
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Error("profile body mentions password")
	}

	rec = doJSON(t, router, http.MethodGet, "/api/users/ghost", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown user: status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status = %d", rec.Code)
	}
}
