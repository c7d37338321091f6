package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/studyplan/internal/api/shared"
	"github.com/phrazzld/studyplan/internal/platform/logger"
	"github.com/phrazzld/studyplan/internal/service"
)

// SubjectHandler handles subject HTTP requests
type SubjectHandler struct {
	scheduleService service.ScheduleService
	logger          *slog.Logger
}

// NewSubjectHandler creates a new SubjectHandler
func NewSubjectHandler(scheduleService service.ScheduleService, logger *slog.Logger) *SubjectHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SubjectHandler")
	}
	return &SubjectHandler{
		scheduleService: scheduleService,
		logger:          logger.With(slog.String("component", "subject_handler")),
	}
}

// Put handles PUT /api/subjects/{id}.
// The subject and its topic list are replaced as a whole.
func (h *SubjectHandler) Put(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	subjectID := chi.URLParam(r, "id")
	if subjectID == "" || len(subjectID) > 128 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid subject ID")
		return
	}

	var req SubjectRequest
	if !decodeAndValidate(w, r, log, &req) {
		return
	}
	req.ID = subjectID

	subject := req.toDomain()
	if err := h.scheduleService.SaveSubject(r.Context(), userID, &subject); err != nil {
		HandleAPIError(w, r, err, "Failed to save subject")
		return
	}

	log.Debug("saved subject", slog.String("subject_id", subjectID), slog.Int("topics", len(subject.Topics)))
	shared.RespondWithJSON(w, r, http.StatusOK, subject)
}

// List handles GET /api/subjects.
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r, log)
	if !ok {
		return
	}

	subjects, err := h.scheduleService.ListSubjects(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load subjects")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, SubjectsResponse{Subjects: subjects})
}
