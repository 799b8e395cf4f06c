package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bozor/daftar/internal/adapter/http/dto"
	"github.com/bozor/daftar/internal/adapter/http/middleware"
	"github.com/bozor/daftar/internal/domain"
	"github.com/bozor/daftar/internal/infrastructure/auth"
	"github.com/bozor/daftar/internal/usecase"
)

// ProfileService defines the behavior needed by AuthHandler.
type ProfileService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, *domain.Profile, error)
	Login(ctx context.Context, input usecase.LoginInput) (*domain.User, *domain.Profile, error)
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

// AuthHandler handles registration, login and profile lookup.
type AuthHandler struct {
	profileUC  ProfileService
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(profileUC ProfileService, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		profileUC:  profileUC,
		jwtManager: jwtManager,
	}
}

// Register creates a user account with its profile.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, profile, err := h.profileUC.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user, profile)
}

// Login verifies credentials and issues a token carrying the
// profile's role.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, profile, err := h.profileUC.Login(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	h.respondWithToken(w, http.StatusOK, user, profile)
}

// Me returns the caller's profile.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	profile, err := h.profileUC.GetProfile(r.Context(), user.ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ProfileFromDomain(profile))
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, status int, user *domain.User, profile *domain.Profile) {
	token, err := h.jwtManager.Generate(user, profile.Role)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}

	writeJSON(w, status, dto.AuthResponse{
		Token:   token,
		UserID:  user.ID,
		Email:   user.Email,
		Profile: dto.ProfileFromDomain(profile),
	})
}
