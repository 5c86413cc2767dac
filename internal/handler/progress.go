package handler

import (
	"net/http"
	"strconv"

	"github.com/templui/goalmaster/internal/ctxkeys"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/service"
	"github.com/templui/goalmaster/internal/validation"
)

type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{
		progressService: progressService,
	}
}

// List serves both /api/progress?goal_id= and /api/progress/goal/{goal_id}.
func (h *ProgressHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID := r.PathValue("goal_id")
	if goalID == "" {
		goalID = r.URL.Query().Get("goal_id")
	}
	if goalID == "" {
		WriteError(w, r, &validation.Error{Field: "goal_id", Message: "goal_id is required"})
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, r, &validation.Error{Field: "limit", Message: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	logs, err := h.progressService.ForGoal(r.Context(), user.ID, goalID, limit)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, logs)
}

func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in model.ProgressLogCreate
	err := decodeJSON(w, r, &in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	log, err := h.progressService.Create(r.Context(), user.ID, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, log)
}

func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in model.ProgressLogUpdate
	err := decodeJSON(w, r, &in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	log, err := h.progressService.Update(r.Context(), user.ID, r.PathValue("id"), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, log)
}
