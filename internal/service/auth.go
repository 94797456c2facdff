package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docflow/internal/auth"
	"docflow/internal/model"
	"docflow/internal/repository"
)

// RegisterInput is the payload for creating an account with its profile.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	CompanyID        string
	Role             model.Role
	MembershipStatus model.Membership
}

// AuthService defines the authentication use cases.
type AuthService interface {
	// Register creates a user and its profile. The two rows are created
	// back to back; if the profile insert fails the user row is deleted
	// again so no half-registered account survives.
	Register(ctx context.Context, in RegisterInput) (*model.User, error)

	// Login verifies credentials and issues a token pair. Unknown email
	// and wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (*auth.TokenPair, error)

	// Refresh verifies a refresh token and mints a fresh pair.
	Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error)
}

type authService struct {
	users  repository.UserRepository
	hasher *auth.Hasher
	tokens *auth.TokenManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, hasher *auth.Hasher, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, hasher: hasher, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		CompanyID:    in.CompanyID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	role := in.Role
	if role == "" {
		role = model.RoleMember
	}
	membership := in.MembershipStatus
	if membership == "" {
		membership = model.MembershipDefault
	}
	profile := &model.Profile{
		ID:               uuid.New().String(),
		UserID:           created.ID,
		Role:             role,
		MembershipStatus: membership,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if _, err := s.users.CreateProfile(ctx, profile); err != nil {
		// Compensating action: roll the user row back so registration is
		// all or nothing.
		if delErr := s.users.DeleteUser(ctx, created.ID); delErr != nil {
			return nil, fmt.Errorf("create profile failed: %v; rollback user failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("create profile failed: %w", err)
	}

	return created, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*auth.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	membership := ""
	profile, err := s.users.FindProfileByUserID(ctx, user.ID)
	switch {
	case err == nil:
		membership = string(profile.MembershipStatus)
	case errors.Is(err, sql.ErrNoRows):
		// Legacy rows without a profile fall back to the default membership.
	default:
		return nil, fmt.Errorf("lookup profile: %w", err)
	}

	pair, err := s.tokens.IssuePair(user.ID, membership)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}
	return pair, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	return s.tokens.RefreshPair(refreshToken)
}
