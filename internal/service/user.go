package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"ridepool/internal/auth"
	"ridepool/internal/domain"
	"ridepool/internal/repository"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(id auth.Identity) (string, error)
}

// UserService handles registration and login.
type UserService struct {
	userRepo repository.UserRepository
	tokens   TokenIssuer
	now      func() time.Time
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		now:      time.Now,
	}
}

// RegisterRequest contains the parameters for registering a user.
type RegisterRequest struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// Register creates a rider or driver account.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if name == "" || email == "" || req.Password == "" || !req.Role.Valid() {
		return nil, ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		CreatedAt:    s.now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the user with a signed token.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrWrongCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", ErrWrongCredentials
	}

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Role: user.Role})
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
