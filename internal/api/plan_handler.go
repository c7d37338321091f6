package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/studyplan/internal/api/shared"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/platform/logger"
	"github.com/phrazzld/studyplan/internal/service"
)

// PlanHandler handles schedule plan HTTP requests
type PlanHandler struct {
	scheduleService service.ScheduleService
	logger          *slog.Logger
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(scheduleService service.ScheduleService, logger *slog.Logger) *PlanHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PlanHandler")
	}
	return &PlanHandler{
		scheduleService: scheduleService,
		logger:          logger.With(slog.String("component", "plan_handler")),
	}
}

// Generate handles POST /api/plans.
// It builds a fresh plan from the user's stored subjects.
func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	plan, err := h.scheduleService.Generate(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate schedule")
		return
	}

	log.Debug("generated plan", slog.String("plan_id", plan.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, planToResponse(plan))
}

// Latest handles GET /api/plans/latest.
func (h *PlanHandler) Latest(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	plan, err := h.scheduleService.Latest(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load plan")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// Reschedule handles POST /api/plans/{id}/reschedule.
// An empty body reschedules every overdue task.
func (h *PlanHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, log, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if r.ContentLength != 0 {
		if !decodeAndValidate(w, r, log, &req) {
			return
		}
	}

	plan, err := h.scheduleService.Reschedule(r.Context(), userID, ids[0], req.MissedTaskIDs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to reschedule plan")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// CompleteTask handles POST /api/plans/{id}/tasks/{taskID}/complete.
func (h *PlanHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ids, ok := handleUserIDAndPathUUIDs(w, r, log, "id", "taskID")
	if !ok {
		return
	}

	var req CompleteTaskRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	plan, err := h.scheduleService.CompleteTask(r.Context(), userID, ids[0], ids[1], *req.ActualHours)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to complete task")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}

// Reviews handles GET /api/reviews.
func (h *PlanHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	reviews, err := h.scheduleService.Reviews(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to build review schedule")
		return
	}
	if reviews == nil {
		reviews = []domain.DailyTask{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ReviewsResponse{Reviews: reviews})
}

// Preview handles POST /api/schedule/preview.
// The subjects in the body are scheduled without being stored.
func (h *PlanHandler) Preview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req PreviewRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}

	subjects := make([]domain.Subject, len(req.Subjects))
	for i, s := range req.Subjects {
		subjects[i] = s.toDomain()
	}

	plan, err := h.scheduleService.Preview(r.Context(), subjects)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to preview schedule")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, planToResponse(plan))
}
