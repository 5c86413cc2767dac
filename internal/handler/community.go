package handler

import (
	"net/http"

	"github.com/templui/goalmaster/internal/ctxkeys"
	"github.com/templui/goalmaster/internal/service"
)

type CommunityHandler struct {
	communityService *service.CommunityService
}

func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{
		communityService: communityService,
	}
}

func (h *CommunityHandler) SimilarGoals(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goals, err := h.communityService.SimilarGoals(r.Context(), user.ID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, goals)
}
