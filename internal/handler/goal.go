package handler

import (
	"net/http"

	"github.com/templui/goalmaster/internal/ctxkeys"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/service"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	filter := model.GoalFilter{
		Status:   r.URL.Query().Get("status"),
		Category: r.URL.Query().Get("category"),
	}

	goals, err := h.goalService.Goals(r.Context(), user.ID, filter)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, goals)
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in model.GoalCreate
	err := decodeJSON(w, r, &in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	goal, err := h.goalService.Create(r.Context(), user.ID, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goal, err := h.goalService.ByID(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in model.GoalUpdate
	err := decodeJSON(w, r, &in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	goal, err := h.goalService.Update(r.Context(), user.ID, r.PathValue("id"), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, goal)
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	err := h.goalService.Delete(r.Context(), user.ID, r.PathValue("id"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, messageResponse{Message: "Goal deleted."})
}
