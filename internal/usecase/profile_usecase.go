package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/bozor/daftar/internal/domain"
)

// ProfileUseCase handles registration, login and profile lookup.
type ProfileUseCase struct {
	userRepo    UserRepository
	profileRepo ProfileRepository
	idGen       IDGenerator
}

// NewProfileUseCase creates a new ProfileUseCase.
func NewProfileUseCase(userRepo UserRepository, profileRepo ProfileRepository, idGen IDGenerator) *ProfileUseCase {
	return &ProfileUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		idGen:       idGen,
	}
}

// RegisterInput represents input for creating an account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
	MarketID *string
}

// Register creates a user with a hashed password and its profile row.
func (uc *ProfileUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, *domain.Profile, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, nil, err
	}

	if !input.Role.IsValid() {
		return nil, nil, errors.New("invalid role")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		HashedPassword: string(hash),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	profile := &domain.Profile{
		ID:        user.ID,
		Role:      input.Role,
		FullName:  input.FullName,
		MarketID:  input.MarketID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""
	return user, profile, nil
}

// LoginInput represents authentication input. RoleHint is the login
// toggle the clients show; it only matters when the profile row has
// to be recreated.
type LoginInput struct {
	Email    string
	Password string
	RoleHint domain.Role
}

// Login verifies credentials and returns the user with its profile.
// A missing profile after successful authentication is recreated on
// the fly with the hinted role.
func (uc *ProfileUseCase) Login(ctx context.Context, input LoginInput) (*domain.User, *domain.Profile, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil || user == nil {
		return nil, nil, domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	profile, err := uc.ensureProfile(ctx, user.ID, input.RoleHint)
	if err != nil {
		return nil, nil, err
	}

	user.HashedPassword = ""
	return user, profile, nil
}

// GetProfile retrieves the profile for a user id.
func (uc *ProfileUseCase) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return uc.profileRepo.GetByID(ctx, userID)
}

// ensureProfile self-heals a missing profile row. The hinted role is
// a heuristic from the UI login toggle, not a guaranteed-correct
// recovery.
func (uc *ProfileUseCase) ensureProfile(ctx context.Context, userID string, roleHint domain.Role) (*domain.Profile, error) {
	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err == nil {
		return profile, nil
	}

	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	role := roleHint
	if !role.IsValid() {
		role = domain.RoleSeller
	}

	now := time.Now().UTC()
	profile = &domain.Profile{
		ID:        userID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
