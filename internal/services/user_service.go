package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/baharkarakas/biblioteca-backend/internal/auth"
	"github.com/baharkarakas/biblioteca-backend/internal/models"
	repo "github.com/baharkarakas/biblioteca-backend/internal/repository"
)

type UserService struct {
	users repo.Users
	roles repo.Roles
	tm    *auth.TokenManager
}

func NewUserService(users repo.Users, roles repo.Roles, tm *auth.TokenManager) *UserService {
	return &UserService{users: users, roles: roles, tm: tm}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
	Phone    string
	Roles    []string
}

type TokenPair struct {
	Access    string
	Refresh   string
	ExpiresAt time.Time
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	u := models.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Phone:    in.Phone,
		Active:   true,
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if len(in.Password) < 6 {
		return models.User{}, errors.New("password must be at least 6 characters")
	}

	if taken, err := s.users.ExistsByUsername(ctx, u.Username); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, fmt.Errorf("%w: username %s", ErrConflict, u.Username)
	}
	if taken, err := s.users.ExistsByEmail(ctx, u.Email); err != nil {
		return models.User{}, err
	} else if taken {
		return models.User{}, fmt.Errorf("%w: email %s", ErrConflict, u.Email)
	}

	names := in.Roles
	if len(names) == 0 {
		names = []string{models.RoleUsuario}
	}
	for _, name := range names {
		if _, err := s.roles.GetByName(ctx, name); err != nil {
			return models.User{}, notFound("role", name, err)
		}
	}
	u.Roles = names

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}
	u.PasswordHash = hash

	return s.users.Create(ctx, u)
}

// Login verifies the credentials and issues a token pair. Inactive
// accounts are rejected the same way as bad credentials.
func (s *UserService) Login(ctx context.Context, username, password string) (models.User, TokenPair, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, TokenPair{}, ErrInvalidCredentials
		}
		return models.User{}, TokenPair{}, err
	}
	if !u.Active {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, TokenPair{}, ErrInvalidCredentials
	}

	access, refresh, exp, err := s.tm.GeneratePair(u.ID, u.Roles)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	return u, TokenPair{Access: access, Refresh: refresh, ExpiresAt: exp}, nil
}

// Refresh exchanges a valid refresh token for a new pair, reloading
// the role set so revoked roles do not survive a refresh.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil || !u.Active {
		return TokenPair{}, ErrInvalidCredentials
	}
	access, refresh, exp, err := s.tm.GeneratePair(u.ID, u.Roles)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh, ExpiresAt: exp}, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, notFound("user", id, err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
