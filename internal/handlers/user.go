package handlers

import (
	"Echoo/internal/middleware"
	"Echoo/internal/model"
	"Echoo/internal/service"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// UserHandler — регистрация, логин и профиль.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger}
}

// RegisterRequest — тело POST /register.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserProfileDTO — профиль пользователя в ответах API.
type UserProfileDTO struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	InstagramURL *string   `json:"instagram_url"`
	TwitterURL   *string   `json:"twitter_url"`
	LinkedinURL  *string   `json:"linkedin_url"`
	Description  *string   `json:"description"`
	Interests    *string   `json:"interests"`
	SelfieCID    *string   `json:"selfie_cid"`
	SelfieURL    *string   `json:"selfie_url"`
	SelfieHeight *int      `json:"selfie_height"`
	SelfieWidth  *int      `json:"selfie_width"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserProfileDTO(u *model.User) UserProfileDTO {
	return UserProfileDTO{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		InstagramURL: u.InstagramURL,
		TwitterURL:   u.TwitterURL,
		LinkedinURL:  u.LinkedinURL,
		Description:  u.Description,
		Interests:    u.Interests,
		SelfieCID:    u.SelfieCID,
		SelfieURL:    u.SelfieURL,
		SelfieHeight: u.SelfieHeight,
		SelfieWidth:  u.SelfieWidth,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// Register создаёт нового пользователя.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Register: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.Logger.Warnw("Register: failed", "username", req.Username, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserProfileDTO(user))
}

// LoginResponse — ответ успешного логина.
type LoginResponse struct {
	Message string         `json:"message"`
	User    UserProfileDTO `json:"user"`
}

// Login проверяет Basic-креды и возвращает профиль.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, ok := r.BasicAuth()
	if !ok {
		w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	user, err := h.UserService.Authenticate(r.Context(), username, password)
	if err != nil {
		h.Logger.Warnw("Login: failed", "username", username, "error", err)
		w.Header().Set("WWW-Authenticate", `Basic realm="restricted"`)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Message: "login successful",
		User:    toUserProfileDTO(user),
	})
}

// GetProfile возвращает профиль аутентифицированного пользователя.
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, toUserProfileDTO(user))
}

// ProfileUpdateRequest — тело PUT /profile; меняются только заданные поля.
type ProfileUpdateRequest struct {
	Email        *string `json:"email,omitempty"`
	InstagramURL *string `json:"instagram_url,omitempty"`
	TwitterURL   *string `json:"twitter_url,omitempty"`
	LinkedinURL  *string `json:"linkedin_url,omitempty"`
	Description  *string `json:"description,omitempty"`
	Interests    *string `json:"interests,omitempty"`
}

// UpdateProfile частично обновляет профиль.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("UpdateProfile: invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	updated, err := h.UserService.UpdateProfile(r.Context(), user.ID, service.ProfileUpdate{
		Email:        req.Email,
		InstagramURL: req.InstagramURL,
		TwitterURL:   req.TwitterURL,
		LinkedinURL:  req.LinkedinURL,
		Description:  req.Description,
		Interests:    req.Interests,
	})
	if err != nil {
		h.Logger.Errorw("UpdateProfile: failed", "user_id", user.ID, "error", err)
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserProfileDTO(updated))
}
