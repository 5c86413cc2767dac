package handler

import (
	"net/http"

	"github.com/templui/goalmaster/internal/ctxkeys"
	"github.com/templui/goalmaster/internal/model"
	"github.com/templui/goalmaster/internal/service"
	"github.com/templui/goalmaster/internal/validation"
)

const avatarField = "avatar"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Message     string `json:"message,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	err := decodeJSON(w, r, &in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.authService.Register(r.Context(), in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	h.writeToken(w, r, user.ID, "Registration complete.")
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	err := decodeJSON(w, r, &in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	h.writeToken(w, r, user.ID, "Login successful.")
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())
	h.writeToken(w, r, user.ID, "Token refreshed.")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ctxkeys.User(r.Context()))
}

func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var in model.ProfileUpdate
	err := decodeJSON(w, r, &in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	updated, err := h.userService.UpdateProfile(r.Context(), user.ID, in)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

func (h *AuthHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, validation.AvatarMaxSize+(1<<20))
	file, header, err := r.FormFile(avatarField)
	if err != nil {
		WriteError(w, r, &validation.Error{Field: avatarField, Message: "an image file is required"})
		return
	}
	defer file.Close()

	contentType, err := validation.Avatar(header)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	updated, err := h.userService.UploadAvatar(r.Context(), user.ID, file, header.Filename, contentType)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

func (h *AuthHandler) writeToken(w http.ResponseWriter, r *http.Request, userID, message string) {
	token, err := h.authService.IssueToken(userID)
	if err != nil {
		WriteError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Message:     message,
	})
}
