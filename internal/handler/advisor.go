package handler

import (
	"net/http"

	"github.com/templui/goalmaster/internal/ctxkeys"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/service"
	"github.com/templui/goalmaster/internal/validation"
)

type analysisBody struct {
	model.AIAnalysis
	Suggestions string `json:"suggestions"`
}

type analyzeResponse struct {
	Analysis    analysisBody `json:"analysis"`
	Suggestions string       `json:"suggestions"`
	Message     string       `json:"message"`
}

type planResponse struct {
	service.PlanResult
	Message string `json:"message"`
}

type AdvisorHandler struct {
	advisorService *service.AdvisorService
}

func NewAdvisorHandler(advisorService *service.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{
		advisorService: advisorService,
	}
}

func (h *AdvisorHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID, ok := requireGoalID(w, r)
	if !ok {
		return
	}

	result, err := h.advisorService.Analyze(r.Context(), user.ID, goalID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, analyzeResponse{
		Analysis: analysisBody{
			AIAnalysis:  result.Analysis,
			Suggestions: result.Suggestions,
		},
		Suggestions: result.Response,
		Message:     "Goal analysis complete.",
	})
}

func (h *AdvisorHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID, ok := requireGoalID(w, r)
	if !ok {
		return
	}

	result, err := h.advisorService.GeneratePlan(r.Context(), user.ID, goalID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, planResponse{
		PlanResult: *result,
		Message:    "Action plan created.",
	})
}

// Coach serves the query form and the /get-coaching/{goal_id} path form.
func (h *AdvisorHandler) Coach(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID, ok := requireGoalID(w, r)
	if !ok {
		return
	}

	result, err := h.advisorService.Coach(r.Context(), user.ID, goalID, r.URL.Query().Get("message_type"))
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

func (h *AdvisorHandler) Plans(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID, ok := requireGoalID(w, r)
	if !ok {
		return
	}

	plans, err := h.advisorService.Plans(r.Context(), user.ID, goalID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, plans)
}

func requireGoalID(w http.ResponseWriter, r *http.Request) (string, bool) {
	goalID := r.PathValue("goal_id")
	if goalID == "" {
		goalID = r.URL.Query().Get("goal_id")
	}
	if goalID == "" {
		WriteError(w, r, &validation.Error{Field: "goal_id", Message: "goal_id is required"})
		return "", false
	}
	return goalID, true
}
