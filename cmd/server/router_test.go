package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/studyplan/internal/api"
	"github.com/phrazzld/studyplan/internal/config"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/mocks"
	"github.com/phrazzld/studyplan/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, svc *mocks.MockScheduleService) (*application, auth.JWTService) {
	t.Helper()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "router-test-secret-that-is-32-chars",
		TokenLifetimeMinutes: 5,
	})
	require.NoError(t, err)

	return &application{
		config:          &config.Config{},
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		jwtService:      jwtService,
		scheduleService: svc,
	}, jwtService
}

func TestRouterHealth(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &mocks.MockScheduleService{})
	rr := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouterRequiresTokenForUserRoutes(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, &mocks.MockScheduleService{})
	router := app.setupRouter()

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/subjects"},
		{http.MethodPut, "/api/subjects/math"},
		{http.MethodPost, "/api/plans"},
		{http.MethodGet, "/api/plans/latest"},
		{http.MethodPost, "/api/plans/" + uuid.NewString() + "/reschedule"},
		{http.MethodPost, "/api/plans/" + uuid.NewString() + "/tasks/" + uuid.NewString() + "/complete"},
		{http.MethodGet, "/api/reviews"},
	}
	for _, route := range routes {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, route.path)
	}
}

func TestRouterAuthenticatedRequest(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := &mocks.MockScheduleService{
		LatestFn: func(ctx context.Context, id uuid.UUID) (*domain.SchedulePlan, error) {
			assert.Equal(t, userID, id)
			return &domain.SchedulePlan{ID: uuid.New(), UserID: id}, nil
		},
	}
	app, jwtService := newTestApp(t, svc)

	token, err := jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/plans/latest", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp api.PlanResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, []domain.DailyTask{}, resp.DailyTasks)
}

func TestRouterPreviewIsPublic(t *testing.T) {
	t.Parallel()

	svc := &mocks.MockScheduleService{Plan: &domain.SchedulePlan{}}
	app, _ := newTestApp(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/schedule/preview", strings.NewReader(`{"subjects":[]}`))
	rr := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}
