package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"careconnect/internal/common"
	"careconnect/internal/common/security"
	"careconnect/internal/domain/model"
	"careconnect/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo   repository.UserRepository
	tokens     *security.TokenManager
	bcryptCost int
	log        *slog.Logger
	now        func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenManager, bcryptCost int, log *slog.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log,
		now:        time.Now,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,bcrypt_len"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string         `json:"token"`
	User  model.UserView `json:"user"`
}

// Signup stores a new user with role "user". An email that already has a
// credential record yields ErrUserExists and leaves the store untouched.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return common.ErrUserExists
	} else if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("failed to look up user: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Role:           model.RoleUser,
		CreatedAt:      s.now().UTC(),
	}

	// The store's unique index still guards against a concurrent signup.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.log.InfoContext(ctx, "user signed up", "user_id", user.ID)
	return nil
}

// Login checks the administrator pair first without touching the store,
// then falls back to the credential store. Unknown email and wrong password
// both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if req.Email == model.AdminEmail && req.Password == model.AdminPassword {
		token, err := s.tokens.GenerateToken(model.AdminID, model.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to generate token: %w", err)
		}
		s.log.InfoContext(ctx, "administrator logged in")
		return &AuthResponse{Token: token, User: model.AdminView()}, nil
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Token: token, User: user.View()}, nil
}

// Verify validates a bearer token. Any malformed, expired or badly signed
// token yields ErrInvalidToken.
func (s *AuthService) Verify(ctx context.Context, token string) (*model.Principal, error) {
	id, role, err := s.tokens.ParseToken(token)
	if err != nil {
		s.log.DebugContext(ctx, "token rejected", "error", err)
		return nil, common.ErrInvalidToken
	}
	return &model.Principal{ID: id, Role: role}, nil
}
