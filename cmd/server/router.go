package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/studyplan/internal/api"
	apiMiddleware "github.com/phrazzld/studyplan/internal/api/middleware"
	"github.com/phrazzld/studyplan/internal/api/shared"
)

// setupRouter mounts every route and the middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	planHandler := api.NewPlanHandler(app.scheduleService, app.logger)
	subjectHandler := api.NewSubjectHandler(app.scheduleService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Stateless, no user data involved
		r.Post("/schedule/preview", planHandler.Preview)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Put("/subjects/{id}", subjectHandler.Put)
			r.Get("/subjects", subjectHandler.List)

			r.Post("/plans", planHandler.Generate)
			r.Get("/plans/latest", planHandler.Latest)
			r.Post("/plans/{id}/reschedule", planHandler.Reschedule)
			r.Post("/plans/{id}/tasks/{taskID}/complete", planHandler.CompleteTask)

			r.Get("/reviews", planHandler.Reviews)
		})
	})

	r.Get("/health", app.health)

	return r
}

// health reports 200 when the database answers a ping.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := app.db.PingContext(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable, "Database unavailable", err)
			return
		}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, api.HealthResponse{Status: "ok"})
}
